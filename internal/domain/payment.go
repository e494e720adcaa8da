package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	PaymentKindFirstMonth = "first_month"
	PaymentKindMonthly    = "monthly"
)

// PaymentRecord is the append-only ledger line written whenever rent is
// received. It is committed in the same transaction as the accumulator
// update and relayed to the collaborator layer after commit.
type PaymentRecord struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EnlistmentID uuid.UUID `gorm:"type:uuid;not null;index" json:"enlistment_id"`

	TenantEmail string `gorm:"column:tenant_email;not null;index" json:"tenant_email"`
	Kind        string `gorm:"column:kind;not null" json:"kind"`
	Amount      int64  `gorm:"column:amount;not null" json:"amount"`

	Details datatypes.JSON `gorm:"column:details;type:jsonb" json:"details,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (PaymentRecord) TableName() string { return "payment_record" }
