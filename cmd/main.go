package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jeffleon2/draftea-payment-relay/config"
	"github.com/jeffleon2/draftea-payment-relay/internal/app"
	"github.com/jeffleon2/draftea-payment-relay/internal/logging"
	"github.com/jeffleon2/draftea-payment-relay/internal/tracing"
	"github.com/sirupsen/logrus"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.New()
	if err != nil {
		fmt.Println("Error reading config file", err)
		os.Exit(1)
	}

	closeLogs := logging.Setup(cfg.Telemetry, cfg.APP.Name)
	shutdownTracing, err := tracing.Init(ctx, cfg.Telemetry.OTLPEndpoint, cfg.APP.Name)
	if err != nil {
		logrus.Warnf("tracing disabled: %s", err.Error())
	}

	myApp := &app.App{}
	myApp.Initialize(cfg)

	if err := myApp.Run(ctx); err != nil {
		logrus.Errorf("server stopped with error: %s", err.Error())
	}

	if err := shutdownTracing(context.Background()); err != nil {
		logrus.Warnf("tracer shutdown: %s", err.Error())
	}
	logrus.Info("Payment relay stopped")
	_ = closeLogs()
}
