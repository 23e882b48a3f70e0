package app

import (
	"github.com/gin-gonic/gin"
	"github.com/jeffleon2/draftea-payment-relay/internal/handlers"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (a *App) RegisterRoutes(h *handlers.PaymentHandler) {
	a.Router.GET("/health", h.Health)
	a.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	a.Router.Any("/", h.Relay)
	app := a.Router.Group("/payments")
	app.Any("", h.Relay)
}
