package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	paymentapp "github.com/tavakkoli/shop_events_system/internal/app/payment"
	"github.com/tavakkoli/shop_events_system/internal/config"
	"github.com/tavakkoli/shop_events_system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.InitConfig()

	log := logger.SetupLogger(cfg.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	application, err := paymentapp.NewApp(ctx, log, &cfg)
	if err != nil {
		panic(fmt.Sprintf("failed to create app: %v", err))
	}

	go application.HTTPServer.RunWithPanic()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err = application.Stop(shutdownCtx); err != nil {
		panic(fmt.Sprintf("failed to stop app: %v", err))
	}

	log.Info("payment service stopped")
}
