package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Listing lifecycle of an enlistment. Offers can only target an approved
// listing; approval/rejection is a landlord-platform concern and does not
// touch the negotiation state machine.
const (
	ListingPending   = "PENDING"
	ListingApproved  = "APPROVED"
	ListingRejected  = "REJECTED"
	ListingCancelled = "CANCELLED"
)

// PropertyEnlistment is the root aggregate row for one listed property.
// OwnerID is the only identity allowed to invoke operations on the
// enlistment or any offer/agreement under it. Locked/LockedTenant implement
// the single-deal finalization lock: set when a landlord signs an agreement,
// cleared when that tenant's offer or agreement is cancelled.
type PropertyEnlistment struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID string    `gorm:"column:owner_id;not null;index" json:"owner_id"`

	LandlordName string `gorm:"column:landlord_name;not null" json:"landlord_name"`
	StreetName   string `gorm:"column:street_name;not null" json:"street_name"`
	FloorNr      int    `gorm:"column:floor_nr" json:"floor_nr"`
	ApartmentNr  string `gorm:"column:apartment_nr;not null" json:"apartment_nr"`
	HouseNr      string `gorm:"column:house_nr;not null" json:"house_nr"`
	ZipCode      string `gorm:"column:zip_code;not null" json:"zip_code"`

	Status string `gorm:"column:status;not null;index" json:"status"`

	Locked       bool    `gorm:"column:locked;not null" json:"locked"`
	LockedTenant *string `gorm:"column:locked_tenant" json:"locked_tenant,omitempty"`

	// Version guards optimistic lock/unlock updates on the root row.
	Version int `gorm:"column:version;not null" json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (PropertyEnlistment) TableName() string { return "property_enlistment" }

// IsOwner reports whether caller is the recorded owner. Comparison is
// case-insensitive on the email, matching how tenant keys are normalized.
func (e *PropertyEnlistment) IsOwner(caller string) bool {
	caller = strings.TrimSpace(caller)
	if caller == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(e.OwnerID), caller)
}

// AcceptsOffers reports whether new offers may be submitted: the listing
// must be approved and no deal may be in final signature.
func (e *PropertyEnlistment) AcceptsOffers() bool {
	return e.Status == ListingApproved && !e.Locked
}

// HoldsLock reports whether tenant currently owns the finalization lock.
func (e *PropertyEnlistment) HoldsLock(tenant string) bool {
	return e.Locked && e.LockedTenant != nil && strings.EqualFold(*e.LockedTenant, tenant)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
