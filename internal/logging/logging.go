package logging

import (
	"io"
	"os"
	"strings"

	"github.com/jeffleon2/draftea-payment-relay/config"
	"github.com/sirupsen/logrus"
)

// Setup configures the standard logrus logger and returns a closer for any remote sink it opened.
func Setup(cfg config.Telemetry, job string) func() error {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if strings.EqualFold(cfg.LogFormat, "text") {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	loki := NewLokiWriter(cfg.LokiURL, job)
	if loki == nil {
		logrus.SetOutput(os.Stdout)
		return func() error { return nil }
	}
	logrus.SetOutput(io.MultiWriter(os.Stdout, loki))
	return loki.Close
}
