package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	notificationapp "github.com/tavakkoli/shop_events_system/internal/app/notification"
	"github.com/tavakkoli/shop_events_system/internal/config"
	"github.com/tavakkoli/shop_events_system/pkg/logger"
)

func main() {
	cfg := config.InitConfig()

	log := logger.SetupLogger(cfg.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	application, err := notificationapp.NewApp(ctx, log, &cfg)
	if err != nil {
		panic(fmt.Sprintf("failed to create app: %v", err))
	}

	go func() {
		if runErr := application.Run(ctx); runErr != nil {
			panic(fmt.Sprintf("consumer group stopped: %v", runErr))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)
	<-stop

	cancel()

	if err = application.Stop(); err != nil {
		panic(fmt.Sprintf("failed to stop app: %v", err))
	}

	log.Info("notification service stopped")
}
