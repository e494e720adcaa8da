package aggregates

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/renthaus/enlistd/internal/pkg/dbctx"
)

// CASGuard performs compare-and-set updates keyed on the state a transition
// is allowed to start from. A zero rows-affected result means another writer
// moved the row first and the caller must report a conflict, not retry
// blindly.
type CASGuard struct{}

func NewCASGuard() *CASGuard { return &CASGuard{} }

// UpdateByStatus applies updates to the row only while its status column is
// one of allowedFrom. Returns the number of rows moved.
func (g *CASGuard) UpdateByStatus(dbc dbctx.Context, model any, id uuid.UUID, allowedFrom []int, updates map[string]any) (int64, error) {
	if dbc.Tx == nil {
		return 0, gorm.ErrInvalidTransaction
	}
	res := dbc.Tx.WithContext(dbc.Ctx).
		Model(model).
		Where("id = ? AND status IN ?", id, allowedFrom).
		Updates(updates)
	return res.RowsAffected, res.Error
}

// UpdateByVersion applies updates to the row only while its version column
// still matches expectedVersion, bumping the version in the same statement.
func (g *CASGuard) UpdateByVersion(dbc dbctx.Context, model any, id uuid.UUID, expectedVersion int, updates map[string]any) (int64, error) {
	if dbc.Tx == nil {
		return 0, gorm.ErrInvalidTransaction
	}
	merged := make(map[string]any, len(updates)+1)
	for k, v := range updates {
		merged[k] = v
	}
	merged["version"] = expectedVersion + 1
	res := dbc.Tx.WithContext(dbc.Ctx).
		Model(model).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(merged)
	return res.RowsAffected, res.Error
}
