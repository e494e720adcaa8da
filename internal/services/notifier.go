package services

import (
	"context"

	redisclient "github.com/renthaus/enlistd/internal/clients/redis"
	types "github.com/renthaus/enlistd/internal/domain"
	domagg "github.com/renthaus/enlistd/internal/domain/aggregates"
	"github.com/renthaus/enlistd/internal/notify"
	"github.com/renthaus/enlistd/internal/observability"
	"github.com/renthaus/enlistd/internal/platform/logger"
)

// PaymentNotifier relays committed payment events to the owner's event
// stream. When redis is configured the message goes through the bus so every
// instance forwards it; otherwise it goes straight to the local hub.
type PaymentNotifier interface {
	PaymentReceived(ctx context.Context, owner string, result domagg.PaymentResult)
}

type paymentNotifier struct {
	log *logger.Logger
	hub *notify.Hub
	bus redisclient.NotifyBus
}

func NewPaymentNotifier(log *logger.Logger, hub *notify.Hub, bus redisclient.NotifyBus) PaymentNotifier {
	return &paymentNotifier{
		log: log.With("service", "PaymentNotifier"),
		hub: hub,
		bus: bus,
	}
}

func (n *paymentNotifier) PaymentReceived(ctx context.Context, owner string, result domagg.PaymentResult) {
	event := notify.EventPaymentReceived
	if result.Kind == types.PaymentKindFirstMonth {
		event = notify.EventAgreementCompleted
	}
	msg := notify.Message{
		Channel: owner,
		Event:   event,
		Data: map[string]any{
			"payment_id":         result.PaymentID,
			"enlistment_id":      result.EnlistmentID,
			"tenant_email":       result.TenantEmail,
			"kind":               result.Kind,
			"amount":             result.Amount,
			"status":             result.Status,
			"total_rent_paid":    result.TotalRentPaid,
			"number_of_payments": result.NumberOfPayments,
			"received_at":        result.ReceivedAt,
		},
	}
	observability.Current().IncNotifyPublished()
	if n.bus != nil {
		if err := n.bus.Publish(ctx, msg); err != nil {
			n.log.Warn("notify publish failed, falling back to local hub", "error", err)
			n.hub.Broadcast(msg)
		}
		return
	}
	if n.hub != nil {
		n.hub.Broadcast(msg)
	}
}
