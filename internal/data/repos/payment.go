package repos

import (
	"github.com/google/uuid"
	types "github.com/renthaus/enlistd/internal/domain"
	"github.com/renthaus/enlistd/internal/pkg/dbctx"
	"github.com/renthaus/enlistd/internal/platform/logger"
	"gorm.io/gorm"
)

// PaymentRepo is append-only: ledger lines are never updated or deleted.
type PaymentRepo interface {
	Create(dbc dbctx.Context, record *types.PaymentRecord) error
	ListByTenant(dbc dbctx.Context, enlistmentID uuid.UUID, tenantEmail string) ([]*types.PaymentRecord, error)
}

type paymentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPaymentRepo(db *gorm.DB, baseLog *logger.Logger) PaymentRepo {
	repoLog := baseLog.With("repo", "PaymentRepo")
	return &paymentRepo{db: db, log: repoLog}
}

func (r *paymentRepo) base(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx.WithContext(dbc.Ctx)
	}
	return r.db.WithContext(dbc.Ctx)
}

func (r *paymentRepo) Create(dbc dbctx.Context, record *types.PaymentRecord) error {
	return r.base(dbc).Create(record).Error
}

func (r *paymentRepo) ListByTenant(dbc dbctx.Context, enlistmentID uuid.UUID, tenantEmail string) ([]*types.PaymentRecord, error) {
	var rows []*types.PaymentRecord
	if err := r.base(dbc).
		Where("enlistment_id = ? AND tenant_email = ?", enlistmentID, tenantEmail).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
