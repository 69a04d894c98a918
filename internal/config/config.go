package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env      string         `yaml:"env" env-default:"local"`
	HTTP     HTTPConfig     `yaml:"http"`
	Postgres PostgresConfig `yaml:"postgres"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Redis    RedisConfig    `yaml:"redis"`
	SMTP     SMTPConfig     `yaml:"smtp"`
	SMS      SMSConfig      `yaml:"sms"`
	Payment  PaymentConfig  `yaml:"payment"`
}

type PaymentConfig struct {
	GatewayMode string `yaml:"gateway_mode" env-default:"approve"`
}

type HTTPConfig struct {
	OrderPort   int `yaml:"order_port" env-default:"8080"`
	PaymentPort int `yaml:"payment_port" env-default:"8081"`
}

type PostgresConfig struct {
	Port    string `yaml:"port"`
	Host    string `yaml:"host"`
	DbName  string `yaml:"db_name"`
	User    string `yaml:"user"`
	Pwd     string `yaml:"password" env:"POSTGRES_PASSWORD"`
	SslMode string `yaml:"sslmode" env-default:"disable"`
}

type KafkaConfig struct {
	BrokerList         []string `yaml:"broker_list"`
	CheckoutTopic      string   `yaml:"checkout_topic" env-default:"order.checkout"`
	PaymentTopic       string   `yaml:"payment_topic" env-default:"payment.processed"`
	UserTopic          string   `yaml:"user_topic" env-default:"user.registered"`
	NotificationsGroup string   `yaml:"notifications_group" env-default:"notifications"`
}

// RedisConfig backs the notification deduper. An empty Addr disables
// deduplication and duplicate broker deliveries re-send notifications.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int           `yaml:"db" env-default:"0"`
	DedupTTL time.Duration `yaml:"dedup_ttl" env-default:"24h"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port" env-default:"587"`
	Username string `yaml:"username"`
	Password string `yaml:"password" env:"SMTP_PASSWORD"`
	From     string `yaml:"from"`
	FromName string `yaml:"from_name"`
}

type SMSConfig struct {
	BaseURL  string        `yaml:"base_url"`
	Username string        `yaml:"username"`
	Password string        `yaml:"password" env:"SMS_PASSWORD"`
	From     string        `yaml:"from"`
	Timeout  time.Duration `yaml:"timeout" env-default:"10s"`
}

func InitConfig() Config {
	configPath := getConfigPath()

	if configPath == "" {
		panic("config path is not set")
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("failed to read config: " + err.Error())
	}

	return cfg
}

func getConfigPath() string {
	var path string

	flag.StringVar(&path, "config", "", "path to config file")
	flag.Parse()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	return path
}
