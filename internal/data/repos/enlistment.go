package repos

import (
	"errors"

	"github.com/google/uuid"
	types "github.com/renthaus/enlistd/internal/domain"
	"github.com/renthaus/enlistd/internal/pkg/dbctx"
	"github.com/renthaus/enlistd/internal/platform/logger"
	"gorm.io/gorm"
)

type EnlistmentRepo interface {
	Create(dbc dbctx.Context, enlistment *types.PropertyEnlistment) error
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.PropertyEnlistment, error)
	ListByOwner(dbc dbctx.Context, ownerID string) ([]*types.PropertyEnlistment, error)
}

type enlistmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEnlistmentRepo(db *gorm.DB, baseLog *logger.Logger) EnlistmentRepo {
	repoLog := baseLog.With("repo", "EnlistmentRepo")
	return &enlistmentRepo{db: db, log: repoLog}
}

func (r *enlistmentRepo) base(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx.WithContext(dbc.Ctx)
	}
	return r.db.WithContext(dbc.Ctx)
}

func (r *enlistmentRepo) Create(dbc dbctx.Context, enlistment *types.PropertyEnlistment) error {
	return r.base(dbc).Create(enlistment).Error
}

// GetByID returns (nil, nil) when no row exists.
func (r *enlistmentRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.PropertyEnlistment, error) {
	var row types.PropertyEnlistment
	err := r.base(dbc).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *enlistmentRepo) ListByOwner(dbc dbctx.Context, ownerID string) ([]*types.PropertyEnlistment, error) {
	var rows []*types.PropertyEnlistment
	if err := r.base(dbc).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
