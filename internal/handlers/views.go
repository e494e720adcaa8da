package handlers

import (
	"time"

	"github.com/google/uuid"

	types "github.com/renthaus/enlistd/internal/domain"
)

// View structs fix the JSON field order the listing platform consumes.
// Struct declaration order is serialization order; do not reorder.

type EnlistmentView struct {
	ID           uuid.UUID `json:"id"`
	LandlordName string    `json:"landlordName"`
	StreetName   string    `json:"streetName"`
	FloorNr      int       `json:"floorNr"`
	ApartmentNr  string    `json:"apartmentNr"`
	HouseNr      string    `json:"houseNr"`
	ZipCode      string    `json:"zipCode"`
	Status       string    `json:"status"`
	Locked       bool      `json:"locked"`
	LockedTenant *string   `json:"lockedTenant,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func NewEnlistmentView(e *types.PropertyEnlistment) EnlistmentView {
	return EnlistmentView{
		ID:           e.ID,
		LandlordName: e.LandlordName,
		StreetName:   e.StreetName,
		FloorNr:      e.FloorNr,
		ApartmentNr:  e.ApartmentNr,
		HouseNr:      e.HouseNr,
		ZipCode:      e.ZipCode,
		Status:       e.Status,
		Locked:       e.Locked,
		LockedTenant: e.LockedTenant,
		CreatedAt:    e.CreatedAt,
	}
}

func NewEnlistmentViews(rows []*types.PropertyEnlistment) []EnlistmentView {
	out := make([]EnlistmentView, 0, len(rows))
	for _, e := range rows {
		out = append(out, NewEnlistmentView(e))
	}
	return out
}

type OfferView struct {
	Initialized bool              `json:"initialized"`
	Amount      int64             `json:"amount"`
	TenantName  string            `json:"tenantName"`
	TenantEmail string            `json:"tenantEmail"`
	Status      types.OfferStatus `json:"status"`
}

func NewOfferView(o *types.Offer) OfferView {
	return OfferView{
		Initialized: o.Initialized,
		Amount:      o.Amount,
		TenantName:  o.TenantName,
		TenantEmail: o.TenantEmail,
		Status:      o.Status,
	}
}

func NewOfferViews(rows []*types.Offer) []OfferView {
	out := make([]OfferView, 0, len(rows))
	for _, o := range rows {
		out = append(out, NewOfferView(o))
	}
	return out
}

type AgreementView struct {
	LandlordName          string                `json:"landlordName"`
	TenantName            string                `json:"tenantName"`
	TenantEmail           string                `json:"tenantEmail"`
	Amount                int64                 `json:"amount"`
	LeaseStart            int64                 `json:"leaseStart"`
	HandoverDate          int64                 `json:"handoverDate"`
	LeasePeriod           int64                 `json:"leasePeriod"`
	OtherTerms            string                `json:"otherTerms"`
	DraftHash             string                `json:"draftHash"`
	LandlordSignatureHash string                `json:"landlordSignatureHash"`
	TenantSignatureHash   string                `json:"tenantSignatureHash"`
	Status                types.AgreementStatus `json:"status"`
	TotalRentPaid         int64                 `json:"totalRentPaid"`
	NumberOfPayments      int                   `json:"numberOfPayments"`
	FirstPaymentDate      *time.Time            `json:"firstPaymentDate,omitempty"`
	RentExpirationDate    *time.Time            `json:"rentExpirationDate,omitempty"`
}

func NewAgreementView(a *types.AgreementDraft) AgreementView {
	return AgreementView{
		LandlordName:          a.LandlordName,
		TenantName:            a.TenantName,
		TenantEmail:           a.TenantEmail,
		Amount:                a.Amount,
		LeaseStart:            a.LeaseStart,
		HandoverDate:          a.HandoverDate,
		LeasePeriod:           a.LeasePeriod,
		OtherTerms:            a.OtherTerms,
		DraftHash:             a.DraftHash,
		LandlordSignatureHash: a.LandlordSignatureHash,
		TenantSignatureHash:   a.TenantSignatureHash,
		Status:                a.Status,
		TotalRentPaid:         a.TotalRentPaid,
		NumberOfPayments:      a.NumberOfPayments,
		FirstPaymentDate:      a.FirstPaymentDate,
		RentExpirationDate:    a.RentExpirationDate,
	}
}

func NewAgreementViews(rows []*types.AgreementDraft) []AgreementView {
	out := make([]AgreementView, 0, len(rows))
	for _, a := range rows {
		out = append(out, NewAgreementView(a))
	}
	return out
}

type PaymentView struct {
	PaymentID        uuid.UUID             `json:"paymentId"`
	EnlistmentID     uuid.UUID             `json:"enlistmentId"`
	TenantEmail      string                `json:"tenantEmail"`
	Kind             string                `json:"kind"`
	Amount           int64                 `json:"amount"`
	Status           types.AgreementStatus `json:"status"`
	TotalRentPaid    int64                 `json:"totalRentPaid"`
	NumberOfPayments int                   `json:"numberOfPayments"`
	ReceivedAt       time.Time             `json:"receivedAt"`
}
