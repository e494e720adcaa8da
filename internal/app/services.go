package app

import (
	"gorm.io/gorm"

	redisclient "github.com/renthaus/enlistd/internal/clients/redis"
	"github.com/renthaus/enlistd/internal/data/aggregates"
	"github.com/renthaus/enlistd/internal/notify"
	"github.com/renthaus/enlistd/internal/observability"
	"github.com/renthaus/enlistd/internal/platform/logger"
	"github.com/renthaus/enlistd/internal/services"
)

type Services struct {
	Auth       services.AuthService
	Enlistment services.EnlistmentService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, hub *notify.Hub, bus redisclient.NotifyBus) Services {
	log.Info("Wiring services...")

	var hooks aggregates.Hooks
	if m := observability.Current(); m != nil {
		hooks = m
	}
	agg := aggregates.NewEnlistmentAggregate(aggregates.EnlistmentAggregateDeps{
		Base: aggregates.BaseDeps{
			DB:    db,
			Log:   log,
			Hooks: hooks,
		},
		Enlistments: reposet.Enlistment,
		Offers:      reposet.Offer,
		Agreements:  reposet.Agreement,
		Payments:    reposet.Payment,
	})

	notifier := services.NewPaymentNotifier(log, hub, bus)

	return Services{
		Auth:       services.NewAuthService(log, cfg.JWTSecret),
		Enlistment: services.NewEnlistmentService(log, agg, notifier),
	}
}
