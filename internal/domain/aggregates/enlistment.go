package aggregates

import (
	"context"
	"time"

	"github.com/google/uuid"
	types "github.com/renthaus/enlistd/internal/domain"
)

var EnlistmentAggregateContract = Contract{
	Name:             "Enlistment.NegotiationAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyOwnerGated,
	Notes:            "Owns atomic offer/agreement/rent lifecycle consistency per enlistment.",
}

// EnlistmentAggregate owns the negotiation lifecycle of one property
// enlistment: competing offers, the agreement draft/signature flow, the
// single finalization lock, and the post-completion rent ledger.
//
// Every method takes the caller identity and fails with CodeUnauthorized
// before any other check when the caller is not the recorded owner. Write
// failures return *aggregates.Error with codes CodeValidation,
// CodeNotFound, CodeUnauthorized, CodeConflict, CodeInvariantViolation,
// CodeRetryable, CodeInternal; a failed operation has no observable effect.
type EnlistmentAggregate interface {
	Aggregate

	// CreateEnlistment registers a new property under the caller's ownership.
	CreateEnlistment(ctx context.Context, in CreateEnlistmentInput) (*types.PropertyEnlistment, error)

	// ReviewListing approves or rejects a pending listing. Only approved
	// listings accept offers.
	ReviewListing(ctx context.Context, in ReviewListingInput) (*types.PropertyEnlistment, error)

	// SubmitOffer creates a tenant's offer, or overwrites a rejected or
	// cancelled one. Fails when a live offer exists or the enlistment is
	// locked for final signature.
	SubmitOffer(ctx context.Context, in SubmitOfferInput) (*types.Offer, error)

	// ReviewOffer resolves a pending offer to accepted or rejected.
	ReviewOffer(ctx context.Context, in ReviewOfferInput) (*types.Offer, error)

	// CancelOffer withdraws a tenant's offer and cascades onto any live
	// agreement draft, releasing the finalization lock if that tenant held it.
	CancelOffer(ctx context.Context, in CancelOfferInput) (*types.Offer, error)

	// SubmitDraft writes the agreement draft for an accepted offer, copying
	// the offer amount at submission time.
	SubmitDraft(ctx context.Context, in SubmitDraftInput) (*types.AgreementDraft, error)

	// ReviewAgreement resolves a pending draft to confirmed or rejected.
	ReviewAgreement(ctx context.Context, in ReviewAgreementInput) (*types.AgreementDraft, error)

	// LandlordSign signs a confirmed draft and locks the enlistment for the
	// tenant. Fails while another tenant holds the lock.
	LandlordSign(ctx context.Context, in SignInput) (*types.AgreementDraft, error)

	// TenantSign counter-signs a landlord-signed draft. After this the
	// agreement can no longer be cancelled.
	TenantSign(ctx context.Context, in SignInput) (*types.AgreementDraft, error)

	// CancelAgreement withdraws a pending, confirmed or landlord-signed
	// draft, releasing the finalization lock if held by the tenant.
	CancelAgreement(ctx context.Context, in CancelAgreementInput) (*types.AgreementDraft, error)

	// ReceiveFirstMonthRent activates a tenant-signed agreement and starts
	// the rent ledger.
	ReceiveFirstMonthRent(ctx context.Context, in ReceiveRentInput) (PaymentResult, error)

	// ReceiveMonthlyRent appends a payment to a completed agreement's
	// ledger. The amount is recorded as given, never validated against the
	// agreed rent.
	ReceiveMonthlyRent(ctx context.Context, in ReceiveRentInput) (PaymentResult, error)

	// Reads. Point-in-time consistent single-row snapshots, owner-gated.
	GetEnlistment(ctx context.Context, caller string, enlistmentID uuid.UUID) (*types.PropertyEnlistment, error)
	ListEnlistments(ctx context.Context, caller string) ([]*types.PropertyEnlistment, error)
	GetOffer(ctx context.Context, caller string, enlistmentID uuid.UUID, tenantEmail string) (*types.Offer, error)
	ListOffers(ctx context.Context, caller string, enlistmentID uuid.UUID) ([]*types.Offer, error)
	GetAgreement(ctx context.Context, caller string, enlistmentID uuid.UUID, tenantEmail string) (*types.AgreementDraft, error)
	ListAgreements(ctx context.Context, caller string, enlistmentID uuid.UUID) ([]*types.AgreementDraft, error)
}

type CreateEnlistmentInput struct {
	Caller       string
	LandlordName string
	StreetName   string
	FloorNr      int
	ApartmentNr  string
	HouseNr      string
	ZipCode      string
}

type ReviewListingInput struct {
	Caller       string
	EnlistmentID uuid.UUID
	Approved     bool
}

type SubmitOfferInput struct {
	Caller       string
	EnlistmentID uuid.UUID
	Amount       int64
	TenantName   string
	TenantEmail  string
}

type ReviewOfferInput struct {
	Caller       string
	EnlistmentID uuid.UUID
	TenantEmail  string
	Approved     bool
}

type CancelOfferInput struct {
	Caller       string
	EnlistmentID uuid.UUID
	TenantEmail  string
}

type SubmitDraftInput struct {
	Caller       string
	EnlistmentID uuid.UUID
	TenantEmail  string
	LandlordName string
	TenantName   string
	LeaseStart   int64
	HandoverDate int64
	LeasePeriod  int64
	OtherTerms   string
	DraftHash    string
}

type ReviewAgreementInput struct {
	Caller       string
	EnlistmentID uuid.UUID
	TenantEmail  string
	Confirmed    bool
}

type SignInput struct {
	Caller        string
	EnlistmentID  uuid.UUID
	TenantEmail   string
	SignatureHash string
}

type CancelAgreementInput struct {
	Caller       string
	EnlistmentID uuid.UUID
	TenantEmail  string
}

type ReceiveRentInput struct {
	Caller       string
	EnlistmentID uuid.UUID
	TenantEmail  string
	Amount       int64
}

// PaymentResult is returned by the rent operations and handed to the
// notification relay after commit.
type PaymentResult struct {
	PaymentID        uuid.UUID
	EnlistmentID     uuid.UUID
	TenantEmail      string
	Kind             string
	Amount           int64
	Status           types.AgreementStatus
	TotalRentPaid    int64
	NumberOfPayments int
	ReceivedAt       time.Time
}
