package repos

import (
	"errors"

	"github.com/google/uuid"
	types "github.com/renthaus/enlistd/internal/domain"
	"github.com/renthaus/enlistd/internal/pkg/dbctx"
	"github.com/renthaus/enlistd/internal/platform/logger"
	"gorm.io/gorm"
)

type AgreementRepo interface {
	Create(dbc dbctx.Context, draft *types.AgreementDraft) error
	GetByTenant(dbc dbctx.Context, enlistmentID uuid.UUID, tenantEmail string) (*types.AgreementDraft, error)
	ListByEnlistment(dbc dbctx.Context, enlistmentID uuid.UUID) ([]*types.AgreementDraft, error)
}

type agreementRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAgreementRepo(db *gorm.DB, baseLog *logger.Logger) AgreementRepo {
	repoLog := baseLog.With("repo", "AgreementRepo")
	return &agreementRepo{db: db, log: repoLog}
}

func (r *agreementRepo) base(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx.WithContext(dbc.Ctx)
	}
	return r.db.WithContext(dbc.Ctx)
}

func (r *agreementRepo) Create(dbc dbctx.Context, draft *types.AgreementDraft) error {
	return r.base(dbc).Create(draft).Error
}

// GetByTenant returns (nil, nil) when no row exists for the tenant.
func (r *agreementRepo) GetByTenant(dbc dbctx.Context, enlistmentID uuid.UUID, tenantEmail string) (*types.AgreementDraft, error) {
	var row types.AgreementDraft
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

func (r *agreementRepo) ListByEnlistment(dbc dbctx.Context, enlistmentID uuid.UUID) ([]*types.AgreementDraft, error) {
	var rows []*types.AgreementDraft
	if err := r.base(dbc).
		Where("enlistment_id = ?", enlistmentID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
