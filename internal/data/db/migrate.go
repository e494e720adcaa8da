package db

import (
	types "github.com/renthaus/enlistd/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&types.PropertyEnlistment{},
		&types.Offer{},
		&types.AgreementDraft{},
		&types.PaymentRecord{},
	)
}
