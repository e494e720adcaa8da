package app

import (
	"github.com/gin-gonic/gin"

	"github.com/renthaus/enlistd/internal/server"
)

func wireRouter(handlerset Handlers, middlewareset Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AuthMiddleware:    middlewareset.Auth,
		EnlistmentHandler: handlerset.Enlistment,
		OfferHandler:      handlerset.Offer,
		AgreementHandler:  handlerset.Agreement,
		PaymentHandler:    handlerset.Payment,
		NotifyHandler:     handlerset.Notify,
	})
}
