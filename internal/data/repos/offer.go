package repos

import (
	"errors"

	"github.com/google/uuid"
	types "github.com/renthaus/enlistd/internal/domain"
	"github.com/renthaus/enlistd/internal/pkg/dbctx"
	"github.com/renthaus/enlistd/internal/platform/logger"
	"gorm.io/gorm"
)

type OfferRepo interface {
	Create(dbc dbctx.Context, offer *types.Offer) error
	GetByTenant(dbc dbctx.Context, enlistmentID uuid.UUID, tenantEmail string) (*types.Offer, error)
	ListByEnlistment(dbc dbctx.Context, enlistmentID uuid.UUID) ([]*types.Offer, error)
}

type offerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOfferRepo(db *gorm.DB, baseLog *logger.Logger) OfferRepo {
	repoLog := baseLog.With("repo", "OfferRepo")
	return &offerRepo{db: db, log: repoLog}
}

func (r *offerRepo) base(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx.WithContext(dbc.Ctx)
	}
	return r.db.WithContext(dbc.Ctx)
}

func (r *offerRepo) Create(dbc dbctx.Context, offer *types.Offer) error {
	return r.base(dbc).Create(offer).Error
}

// GetByTenant returns (nil, nil) when no row exists for the tenant.
func (r *offerRepo) GetByTenant(dbc dbctx.Context, enlistmentID uuid.UUID, tenantEmail string) (*types.Offer, error) {
	var row types.Offer
	err := r.base(dbc).
		Where("enlistment_id = ? AND tenant_email = ?", enlistmentID, tenantEmail).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *offerRepo) ListByEnlistment(dbc dbctx.Context, enlistmentID uuid.UUID) ([]*types.Offer, error) {
	var rows []*types.Offer
	if err := r.base(dbc).
		Where("enlistment_id = ?", enlistmentID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
