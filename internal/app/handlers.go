package app

import (
	"github.com/renthaus/enlistd/internal/handlers"
	"github.com/renthaus/enlistd/internal/notify"
	"github.com/renthaus/enlistd/internal/platform/logger"
)

type Handlers struct {
	Enlistment *handlers.EnlistmentHandler
	Offer      *handlers.OfferHandler
	Agreement  *handlers.AgreementHandler
	Payment    *handlers.PaymentHandler
	Notify     *handlers.NotifyHandler
}

func wireHandlers(log *logger.Logger, serviceset Services, hub *notify.Hub) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Enlistment: handlers.NewEnlistmentHandler(serviceset.Enlistment),
		Offer:      handlers.NewOfferHandler(serviceset.Enlistment),
		Agreement:  handlers.NewAgreementHandler(serviceset.Enlistment),
		Payment:    handlers.NewPaymentHandler(serviceset.Enlistment),
		Notify:     handlers.NewNotifyHandler(hub),
	}
}
