package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OfferStatus ordinals are part of the wire contract consumed by the
// listing platform and must not be reordered.
type OfferStatus int

const (
	OfferPending OfferStatus = iota
	OfferRejected
	OfferCancelled
	OfferAccepted
)

func (s OfferStatus) String() string {
	switch s {
	case OfferPending:
		return "PENDING"
	case OfferRejected:
		return "REJECTED"
	case OfferCancelled:
		return "CANCELLED"
	case OfferAccepted:
		return "ACCEPTED"
	default:
		return fmt.Sprintf("OfferStatus(%d)", int(s))
	}
}

func (s OfferStatus) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// CanResubmit reports whether a new offer may overwrite this record.
// Pending and accepted offers must be explicitly resolved first: there are
// no silent amount updates.
func (s OfferStatus) CanResubmit() bool {
	return s == OfferRejected || s == OfferCancelled
}

// CanReview reports whether the offer is awaiting a landlord resolution.
func (s OfferStatus) CanReview() bool { return s == OfferPending }

// CanCancel reports whether the tenant side may withdraw the offer.
// Agreement-side restrictions (tenant already signed) are checked separately.
func (s OfferStatus) CanCancel() bool { return s != OfferCancelled }

// Offer is one tenant's rent proposal for an enlistment, keyed by tenant
// email. Terminal records are kept in place and overwritten on resubmission,
// never re-keyed.
type Offer struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EnlistmentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_offer_enlistment_tenant" json:"enlistment_id"`

	Initialized bool        `gorm:"column:initialized;not null" json:"initialized"`
	Amount      int64       `gorm:"column:amount;not null" json:"amount"`
	TenantName  string      `gorm:"column:tenant_name;not null" json:"tenant_name"`
	TenantEmail string      `gorm:"column:tenant_email;not null;uniqueIndex:idx_offer_enlistment_tenant" json:"tenant_email"`
	Status      OfferStatus `gorm:"column:status;not null" json:"status"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Offer) TableName() string { return "offer" }
