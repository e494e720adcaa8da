package services

import (
	"context"

	"github.com/google/uuid"

	types "github.com/renthaus/enlistd/internal/domain"
	domagg "github.com/renthaus/enlistd/internal/domain/aggregates"
	"github.com/renthaus/enlistd/internal/observability"
	"github.com/renthaus/enlistd/internal/platform/logger"
	"github.com/renthaus/enlistd/internal/requestdata"
)

// EnlistmentService is the application layer over the negotiation
// aggregate. It resolves the authenticated caller from the request context,
// delegates to the aggregate, and relays payment events after commit.
type EnlistmentService interface {
	CreateEnlistment(ctx context.Context, in domagg.CreateEnlistmentInput) (*types.PropertyEnlistment, error)
	ReviewListing(ctx context.Context, in domagg.ReviewListingInput) (*types.PropertyEnlistment, error)
	SubmitOffer(ctx context.Context, in domagg.SubmitOfferInput) (*types.Offer, error)
	ReviewOffer(ctx context.Context, in domagg.ReviewOfferInput) (*types.Offer, error)
	CancelOffer(ctx context.Context, in domagg.CancelOfferInput) (*types.Offer, error)
	SubmitDraft(ctx context.Context, in domagg.SubmitDraftInput) (*types.AgreementDraft, error)
	ReviewAgreement(ctx context.Context, in domagg.ReviewAgreementInput) (*types.AgreementDraft, error)
	LandlordSign(ctx context.Context, in domagg.SignInput) (*types.AgreementDraft, error)
	TenantSign(ctx context.Context, in domagg.SignInput) (*types.AgreementDraft, error)
	CancelAgreement(ctx context.Context, in domagg.CancelAgreementInput) (*types.AgreementDraft, error)
	ReceiveFirstMonthRent(ctx context.Context, in domagg.ReceiveRentInput) (domagg.PaymentResult, error)
	ReceiveMonthlyRent(ctx context.Context, in domagg.ReceiveRentInput) (domagg.PaymentResult, error)

	GetEnlistment(ctx context.Context, enlistmentID uuid.UUID) (*types.PropertyEnlistment, error)
	ListEnlistments(ctx context.Context) ([]*types.PropertyEnlistment, error)
	GetOffer(ctx context.Context, enlistmentID uuid.UUID, tenantEmail string) (*types.Offer, error)
	ListOffers(ctx context.Context, enlistmentID uuid.UUID) ([]*types.Offer, error)
	GetAgreement(ctx context.Context, enlistmentID uuid.UUID, tenantEmail string) (*types.AgreementDraft, error)
	ListAgreements(ctx context.Context, enlistmentID uuid.UUID) ([]*types.AgreementDraft, error)
}

type enlistmentService struct {
	log      *logger.Logger
	agg      domagg.EnlistmentAggregate
	notifier PaymentNotifier
}

func NewEnlistmentService(log *logger.Logger, agg domagg.EnlistmentAggregate, notifier PaymentNotifier) EnlistmentService {
	return &enlistmentService{
		log:      log.With("service", "EnlistmentService"),
		agg:      agg,
		notifier: notifier,
	}
}

func caller(ctx context.Context) string {
	return requestdata.CallerID(ctx)
}

func (s *enlistmentService) CreateEnlistment(ctx context.Context, in domagg.CreateEnlistmentInput) (*types.PropertyEnlistment, error) {
	in.Caller = caller(ctx)
	e, err := s.agg.CreateEnlistment(ctx, in)
	if err != nil {
		return nil, err
	}
	s.log.Info("enlistment created", "enlistment_id", e.ID, "owner_id", e.OwnerID)
	return e, nil
}

func (s *enlistmentService) ReviewListing(ctx context.Context, in domagg.ReviewListingInput) (*types.PropertyEnlistment, error) {
	in.Caller = caller(ctx)
	return s.agg.ReviewListing(ctx, in)
}

func (s *enlistmentService) SubmitOffer(ctx context.Context, in domagg.SubmitOfferInput) (*types.Offer, error) {
	in.Caller = caller(ctx)
	return s.agg.SubmitOffer(ctx, in)
}

func (s *enlistmentService) ReviewOffer(ctx context.Context, in domagg.ReviewOfferInput) (*types.Offer, error) {
	in.Caller = caller(ctx)
	return s.agg.ReviewOffer(ctx, in)
}

func (s *enlistmentService) CancelOffer(ctx context.Context, in domagg.CancelOfferInput) (*types.Offer, error) {
	in.Caller = caller(ctx)
	return s.agg.CancelOffer(ctx, in)
}

func (s *enlistmentService) SubmitDraft(ctx context.Context, in domagg.SubmitDraftInput) (*types.AgreementDraft, error) {
	in.Caller = caller(ctx)
	return s.agg.SubmitDraft(ctx, in)
}

func (s *enlistmentService) ReviewAgreement(ctx context.Context, in domagg.ReviewAgreementInput) (*types.AgreementDraft, error) {
	in.Caller = caller(ctx)
	return s.agg.ReviewAgreement(ctx, in)
}

func (s *enlistmentService) LandlordSign(ctx context.Context, in domagg.SignInput) (*types.AgreementDraft, error) {
	in.Caller = caller(ctx)
	return s.agg.LandlordSign(ctx, in)
}

func (s *enlistmentService) TenantSign(ctx context.Context, in domagg.SignInput) (*types.AgreementDraft, error) {
	in.Caller = caller(ctx)
	return s.agg.TenantSign(ctx, in)
}

func (s *enlistmentService) CancelAgreement(ctx context.Context, in domagg.CancelAgreementInput) (*types.AgreementDraft, error) {
	in.Caller = caller(ctx)
	return s.agg.CancelAgreement(ctx, in)
}

func (s *enlistmentService) ReceiveFirstMonthRent(ctx context.Context, in domagg.ReceiveRentInput) (domagg.PaymentResult, error) {
	in.Caller = caller(ctx)
	result, err := s.agg.ReceiveFirstMonthRent(ctx, in)
	if err != nil {
		return domagg.PaymentResult{}, err
	}
	s.afterPayment(ctx, in.Caller, result)
	return result, nil
}

func (s *enlistmentService) ReceiveMonthlyRent(ctx context.Context, in domagg.ReceiveRentInput) (domagg.PaymentResult, error) {
	in.Caller = caller(ctx)
	result, err := s.agg.ReceiveMonthlyRent(ctx, in)
	if err != nil {
		return domagg.PaymentResult{}, err
	}
	s.afterPayment(ctx, in.Caller, result)
	return result, nil
}

// afterPayment runs only once the transaction has committed: the relay sees
// every payment exactly as the ledger recorded it.
func (s *enlistmentService) afterPayment(ctx context.Context, owner string, result domagg.PaymentResult) {
	observability.Current().ObservePayment(result.Kind, result.Amount)
	s.log.Info("rent payment recorded",
		"enlistment_id", result.EnlistmentID,
		"tenant_email", result.TenantEmail,
		"kind", result.Kind,
		"amount", result.Amount,
		"payments", result.NumberOfPayments,
	)
	if s.notifier != nil {
		s.notifier.PaymentReceived(ctx, owner, result)
	}
}

func (s *enlistmentService) GetEnlistment(ctx context.Context, enlistmentID uuid.UUID) (*types.PropertyEnlistment, error) {
	return s.agg.GetEnlistment(ctx, caller(ctx), enlistmentID)
}

func (s *enlistmentService) ListEnlistments(ctx context.Context) ([]*types.PropertyEnlistment, error) {
	return s.agg.ListEnlistments(ctx, caller(ctx))
}

func (s *enlistmentService) GetOffer(ctx context.Context, enlistmentID uuid.UUID, tenantEmail string) (*types.Offer, error) {
	return s.agg.GetOffer(ctx, caller(ctx), enlistmentID, tenantEmail)
}

func (s *enlistmentService) ListOffers(ctx context.Context, enlistmentID uuid.UUID) ([]*types.Offer, error) {
	return s.agg.ListOffers(ctx, caller(ctx), enlistmentID)
}

func (s *enlistmentService) GetAgreement(ctx context.Context, enlistmentID uuid.UUID, tenantEmail string) (*types.AgreementDraft, error) {
	return s.agg.GetAgreement(ctx, caller(ctx), enlistmentID, tenantEmail)
}

func (s *enlistmentService) ListAgreements(ctx context.Context, enlistmentID uuid.UUID) ([]*types.AgreementDraft, error) {
	return s.agg.ListAgreements(ctx, caller(ctx), enlistmentID)
}
