package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AgreementStatus ordinals are part of the wire contract and must not be
// reordered.
type AgreementStatus int

const (
	AgreementUninitialized AgreementStatus = iota
	AgreementPending
	AgreementRejected
	AgreementConfirmed
	AgreementCancelled
	AgreementLandlordSigned
	AgreementTenantSigned
	AgreementCompleted
)

func (s AgreementStatus) String() string {
	switch s {
	case AgreementUninitialized:
		return "UNINITIALIZED"
	case AgreementPending:
		return "PENDING"
	case AgreementRejected:
		return "REJECTED"
	case AgreementConfirmed:
		return "CONFIRMED"
	case AgreementCancelled:
		return "CANCELLED"
	case AgreementLandlordSigned:
		return "LANDLORD_SIGNED"
	case AgreementTenantSigned:
		return "TENANT_SIGNED"
	case AgreementCompleted:
		return "COMPLETED"
	default:
		return fmt.Sprintf("AgreementStatus(%d)", int(s))
	}
}

func (s AgreementStatus) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// CanSubmitDraft reports whether a new draft may be written over this
// record. A rejected or withdrawn draft is a re-entry point; a live or
// signed one is not.
func (s AgreementStatus) CanSubmitDraft() bool {
	return s == AgreementUninitialized || s == AgreementRejected || s == AgreementCancelled
}

// CanReview reports whether the draft is awaiting the tenant's resolution.
func (s AgreementStatus) CanReview() bool { return s == AgreementPending }

// CanLandlordSign reports whether the draft is confirmed and ready for the
// landlord signature. The enlistment-level lock is checked separately.
func (s AgreementStatus) CanLandlordSign() bool { return s == AgreementConfirmed }

// CanTenantSign reports whether the landlord has signed.
func (s AgreementStatus) CanTenantSign() bool { return s == AgreementLandlordSigned }

// CanCancel reports whether the draft may still be withdrawn. Once the
// tenant has signed, cancellation is no longer possible.
func (s AgreementStatus) CanCancel() bool {
	return s == AgreementPending || s == AgreementConfirmed || s == AgreementLandlordSigned
}

// CanComplete reports whether the first month rent may activate the lease.
func (s AgreementStatus) CanComplete() bool { return s == AgreementTenantSigned }

// BlocksOfferCancel reports whether this agreement pins the underlying
// offer: a tenant-signed or completed agreement makes the offer permanent.
func (s AgreementStatus) BlocksOfferCancel() bool {
	return s == AgreementTenantSigned || s == AgreementCompleted
}

// HoldsEnlistmentLock reports whether an agreement in this status is the
// one a locked enlistment is locked for.
func (s AgreementStatus) HoldsEnlistmentLock() bool {
	return s == AgreementLandlordSigned || s == AgreementTenantSigned || s == AgreementCompleted
}

// AgreementDraft is the lease contract proposal for one tenant's accepted
// offer, plus the rent accumulator that starts once the agreement completes.
// Amount is copied from the offer at submission time and never re-validated
// against later offer changes.
type AgreementDraft struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EnlistmentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_agreement_enlistment_tenant" json:"enlistment_id"`

	LandlordName string `gorm:"column:landlord_name;not null" json:"landlord_name"`
	TenantName   string `gorm:"column:tenant_name;not null" json:"tenant_name"`
	TenantEmail  string `gorm:"column:tenant_email;not null;uniqueIndex:idx_agreement_enlistment_tenant" json:"tenant_email"`

	Amount       int64  `gorm:"column:amount;not null" json:"amount"`
	LeaseStart   int64  `gorm:"column:lease_start;not null" json:"lease_start"`
	HandoverDate int64  `gorm:"column:handover_date;not null" json:"handover_date"`
	LeasePeriod  int64  `gorm:"column:lease_period;not null" json:"lease_period"`
	OtherTerms   string `gorm:"column:other_terms;type:text" json:"other_terms"`

	DraftHash             string `gorm:"column:draft_hash" json:"draft_hash"`
	LandlordSignatureHash string `gorm:"column:landlord_signature_hash" json:"landlord_signature_hash"`
	TenantSignatureHash   string `gorm:"column:tenant_signature_hash" json:"tenant_signature_hash"`

	Status AgreementStatus `gorm:"column:status;not null" json:"status"`

	TotalRentPaid      int64      `gorm:"column:total_rent_paid;not null" json:"total_rent_paid"`
	NumberOfPayments   int        `gorm:"column:number_of_payments;not null" json:"number_of_payments"`
	FirstPaymentDate   *time.Time `gorm:"column:first_payment_date" json:"first_payment_date,omitempty"`
	RentExpirationDate *time.Time `gorm:"column:rent_expiration_date" json:"rent_expiration_date,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (AgreementDraft) TableName() string { return "agreement_draft" }
