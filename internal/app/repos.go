package app

import (
	"gorm.io/gorm"

	"github.com/renthaus/enlistd/internal/data/repos"
	"github.com/renthaus/enlistd/internal/platform/logger"
)

type Repos struct {
	Enlistment repos.EnlistmentRepo
	Offer      repos.OfferRepo
	Agreement  repos.AgreementRepo
	Payment    repos.PaymentRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Enlistment: repos.NewEnlistmentRepo(db, log),
		Offer:      repos.NewOfferRepo(db, log),
		Agreement:  repos.NewAgreementRepo(db, log),
		Payment:    repos.NewPaymentRepo(db, log),
	}
}
