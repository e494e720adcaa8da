package server

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/renthaus/enlistd/internal/handlers"
	"github.com/renthaus/enlistd/internal/middleware"
	"github.com/renthaus/enlistd/internal/observability"
	"github.com/renthaus/enlistd/internal/utils"
)

type RouterConfig struct {
	AuthMiddleware    *middleware.AuthMiddleware
	EnlistmentHandler *handlers.EnlistmentHandler
	OfferHandler      *handlers.OfferHandler
	AgreementHandler  *handlers.AgreementHandler
	PaymentHandler    *handlers.PaymentHandler
	NotifyHandler     *handlers.NotifyHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(apiMetrics())

	origins := strings.Split(utils.GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000", nil), ",")
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", handlers.HealthCheck)
	if m := observability.Current(); m != nil {
		router.GET("/metrics", gin.WrapF(m.WriteHTTP))
	}

	// Protected
	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())

	protected.GET("/notify/stream", cfg.NotifyHandler.Stream)

	enlistments := protected.Group("/enlistments")
	{
		enlistments.POST("", cfg.EnlistmentHandler.Create)
		enlistments.GET("", cfg.EnlistmentHandler.List)
		enlistments.GET("/:id", cfg.EnlistmentHandler.Get)
		enlistments.POST("/:id/approve", cfg.EnlistmentHandler.Approve)
		enlistments.POST("/:id/reject", cfg.EnlistmentHandler.Reject)

		enlistments.POST("/:id/offers", cfg.OfferHandler.Submit)
		enlistments.GET("/:id/offers", cfg.OfferHandler.List)
		enlistments.POST("/:id/offers/review", cfg.OfferHandler.Review)
		enlistments.POST("/:id/offers/cancel", cfg.OfferHandler.Cancel)

		enlistments.POST("/:id/agreements", cfg.AgreementHandler.Submit)
		enlistments.GET("/:id/agreements", cfg.AgreementHandler.List)
		enlistments.POST("/:id/agreements/review", cfg.AgreementHandler.Review)
		enlistments.POST("/:id/agreements/sign", cfg.AgreementHandler.Sign)
		enlistments.POST("/:id/agreements/cancel", cfg.AgreementHandler.Cancel)

		enlistments.POST("/:id/payments", cfg.PaymentHandler.ReceiveFirstMonth)
		enlistments.POST("/:id/payments/monthly", cfg.PaymentHandler.ReceiveMonthly)
	}

	return router
}

func apiMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		m := observability.Current()
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		m.ApiInflightInc()
		c.Next()
		m.ApiInflightDec()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveAPI(c.Request.Method, route, statusLabel(c.Writer.Status()), time.Since(start))
	}
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
