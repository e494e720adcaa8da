package aggregates

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/renthaus/enlistd/internal/data/repos"
	types "github.com/renthaus/enlistd/internal/domain"
	domagg "github.com/renthaus/enlistd/internal/domain/aggregates"
	"github.com/renthaus/enlistd/internal/pkg/dbctx"
)

type EnlistmentAggregateDeps struct {
	Base BaseDeps

	Enlistments repos.EnlistmentRepo
	Offers      repos.OfferRepo
	Agreements  repos.AgreementRepo
	Payments    repos.PaymentRepo
}

type enlistmentAggregate struct {
	deps EnlistmentAggregateDeps
}

func NewEnlistmentAggregate(deps EnlistmentAggregateDeps) domagg.EnlistmentAggregate {
	deps.Base = deps.Base.withDefaults()
	return &enlistmentAggregate{deps: deps}
}

func (a *enlistmentAggregate) Contract() domagg.Contract {
	return domagg.EnlistmentAggregateContract
}

// loadOwned fetches the enlistment root and applies the caller gate. The
// gate runs before any state inspection so an impostor learns nothing about
// negotiation state.
func (a *enlistmentAggregate) loadOwned(dbc dbctx.Context, op, caller string, enlistmentID uuid.UUID) (*types.PropertyEnlistment, error) {
	if strings.TrimSpace(caller) == "" {
		return nil, UnauthorizedError(op, "missing caller identity")
	}
	if enlistmentID == uuid.Nil {
		return nil, ValidationError(op, "missing enlistment id")
	}
	e, err := a.deps.Enlistments.GetByID(dbc, enlistmentID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, NotFoundError(op, "enlistment %s not found", enlistmentID)
	}
	if !e.IsOwner(caller) {
		return nil, UnauthorizedError(op, "caller is not the enlistment owner")
	}
	return e, nil
}

func (a *enlistmentAggregate) CreateEnlistment(ctx context.Context, in domagg.CreateEnlistmentInput) (*types.PropertyEnlistment, error) {
	const op = "Enlistment.Create"
	owner := types.NormalizeEmail(in.Caller)
	if owner == "" {
		return nil, UnauthorizedError(op, "missing caller identity")
	}
	if strings.TrimSpace(in.LandlordName) == "" {
		return nil, ValidationError(op, "missing landlord name")
	}
	if strings.TrimSpace(in.StreetName) == "" {
		return nil, ValidationError(op, "missing street name")
	}
	if strings.TrimSpace(in.ApartmentNr) == "" || strings.TrimSpace(in.HouseNr) == "" || strings.TrimSpace(in.ZipCode) == "" {
		return nil, ValidationError(op, "incomplete address")
	}

	e := &types.PropertyEnlistment{
		ID:           uuid.New(),
		OwnerID:      owner,
		LandlordName: strings.TrimSpace(in.LandlordName),
		StreetName:   strings.TrimSpace(in.StreetName),
		FloorNr:      in.FloorNr,
		ApartmentNr:  strings.TrimSpace(in.ApartmentNr),
		HouseNr:      strings.TrimSpace(in.HouseNr),
		ZipCode:      strings.TrimSpace(in.ZipCode),
		Status:       types.ListingPending,
	}
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		return a.deps.Enlistments.Create(dbc, e)
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (a *enlistmentAggregate) ReviewListing(ctx context.Context, in domagg.ReviewListingInput) (*types.PropertyEnlistment, error) {
	const op = "Enlistment.ReviewListing"
	var out *types.PropertyEnlistment
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		e, err := a.loadOwned(dbc, op, in.Caller, in.EnlistmentID)
		if err != nil {
			return err
		}
		if e.Status != types.ListingPending {
			return InvariantError(op, "listing is %s, not pending review", e.Status)
		}
		next := types.ListingRejected
		if in.Approved {
			next = types.ListingApproved
		}
		n, err := a.deps.Base.CASGuard.UpdateByVersion(dbc, &types.PropertyEnlistment{}, e.ID, e.Version, map[string]any{
			"status": next,
		})
		if err != nil {
			return err
		}
		if n == 0 {
			return ConflictError(op, "enlistment changed concurrently")
		}
		e.Status = next
		e.Version++
		out = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (a *enlistmentAggregate) SubmitOffer(ctx context.Context, in domagg.SubmitOfferInput) (*types.Offer, error) {
	const op = "Enlistment.SubmitOffer"
	tenant := types.NormalizeEmail(in.TenantEmail)
	if in.Amount <= 0 {
		return nil, ValidationError(op, "offer amount must be positive")
	}
	if strings.TrimSpace(in.TenantName) == "" || tenant == "" {
		return nil, ValidationError(op, "missing tenant identity")
	}

	var out *types.Offer
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		e, err := a.loadOwned(dbc, op, in.Caller, in.EnlistmentID)
		if err != nil {
			return err
		}
		if !e.AcceptsOffers() {
			if e.Locked {
				return InvariantError(op, "enlistment is locked for final signature")
			}
			return InvariantError(op, "listing is %s and does not accept offers", e.Status)
		}
		existing, err := a.deps.Offers.GetByTenant(dbc, e.ID, tenant)
		if err != nil {
			return err
		}
		if existing == nil {
			offer := &types.Offer{
				ID:           uuid.New(),
				EnlistmentID: e.ID,
				Initialized:  true,
				Amount:       in.Amount,
				TenantName:   strings.TrimSpace(in.TenantName),
				TenantEmail:  tenant,
				Status:       types.OfferPending,
			}
			if err := a.deps.Offers.Create(dbc, offer); err != nil {
				return err
			}
			out = offer
			return nil
		}
		if !existing.Status.CanResubmit() {
			return InvariantError(op, "tenant already has a %s offer", existing.Status)
		}
		n, err := a.deps.Base.CASGuard.UpdateByStatus(dbc, &types.Offer{}, existing.ID,
			[]int{int(types.OfferRejected), int(types.OfferCancelled)},
			map[string]any{
				"amount":      in.Amount,
				"tenant_name": strings.TrimSpace(in.TenantName),
				"initialized": true,
				"status":      int(types.OfferPending),
			})
		if err != nil {
			return err
		}
		if n == 0 {
			return ConflictError(op, "offer changed concurrently")
		}
		existing.Amount = in.Amount
		existing.TenantName = strings.TrimSpace(in.TenantName)
		existing.Initialized = true
		existing.Status = types.OfferPending
		out = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (a *enlistmentAggregate) ReviewOffer(ctx context.Context, in domagg.ReviewOfferInput) (*types.Offer, error) {
	const op = "Enlistment.ReviewOffer"
	tenant := types.NormalizeEmail(in.TenantEmail)
	var out *types.Offer
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		e, err := a.loadOwned(dbc, op, in.Caller, in.EnlistmentID)
		if err != nil {
			return err
		}
		offer, err := a.deps.Offers.GetByTenant(dbc, e.ID, tenant)
		if err != nil {
			return err
		}
		if offer == nil {
			return NotFoundError(op, "no offer from %s", tenant)
		}
		if !offer.Status.CanReview() {
			return InvariantError(op, "offer is %s, not pending review", offer.Status)
		}
		next := types.OfferRejected
		if in.Approved {
			next = types.OfferAccepted
		}
		n, err := a.deps.Base.CASGuard.UpdateByStatus(dbc, &types.Offer{}, offer.ID,
			[]int{int(types.OfferPending)},
			map[string]any{"status": int(next)})
		if err != nil {
			return err
		}
		if n == 0 {
			return ConflictError(op, "offer changed concurrently")
		}
		offer.Status = next
		out = offer
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (a *enlistmentAggregate) CancelOffer(ctx context.Context, in domagg.CancelOfferInput) (*types.Offer, error) {
	const op = "Enlistment.CancelOffer"
	tenant := types.NormalizeEmail(in.TenantEmail)
	var out *types.Offer
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		e, err := a.loadOwned(dbc, op, in.Caller, in.EnlistmentID)
		if err != nil {
			return err
		}
		offer, err := a.deps.Offers.GetByTenant(dbc, e.ID, tenant)
		if err != nil {
			return err
		}
		if offer == nil {
			return NotFoundError(op, "no offer from %s", tenant)
		}
		if !offer.Status.CanCancel() {
			return InvariantError(op, "offer is already cancelled")
		}
		draft, err := a.deps.Agreements.GetByTenant(dbc, e.ID, tenant)
		if err != nil {
			return err
		}
		if draft != nil && draft.Status.BlocksOfferCancel() {
			return InvariantError(op, "agreement is %s and pins the offer", draft.Status)
		}
		n, err := a.deps.Base.CASGuard.UpdateByStatus(dbc, &types.Offer{}, offer.ID,
			[]int{int(types.OfferPending), int(types.OfferRejected), int(types.OfferAccepted)},
			map[string]any{"status": int(types.OfferCancelled)})
		if err != nil {
			return err
		}
		if n == 0 {
			return ConflictError(op, "offer changed concurrently")
		}
		offer.Status = types.OfferCancelled

		// Cascade: a live draft dies with its offer.
		if draft != nil && draft.Status.CanCancel() {
			n, err := a.deps.Base.CASGuard.UpdateByStatus(dbc, &types.AgreementDraft{}, draft.ID,
				[]int{int(types.AgreementPending), int(types.AgreementConfirmed), int(types.AgreementLandlordSigned)},
				map[string]any{"status": int(types.AgreementCancelled)})
			if err != nil {
				return err
			}
			if n == 0 {
				return ConflictError(op, "agreement changed concurrently")
			}
		}
		if e.HoldsLock(tenant) {
			if err := a.unlock(dbc, op, e); err != nil {
				return err
			}
		}
		out = offer
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (a *enlistmentAggregate) SubmitDraft(ctx context.Context, in domagg.SubmitDraftInput) (*types.AgreementDraft, error) {
	const op = "Enlistment.SubmitDraft"
	tenant := types.NormalizeEmail(in.TenantEmail)
	if tenant == "" {
		return nil, ValidationError(op, "missing tenant email")
	}
	if strings.TrimSpace(in.DraftHash) == "" {
		return nil, ValidationError(op, "missing draft hash")
	}
	if in.LeasePeriod <= 0 {
		return nil, ValidationError(op, "lease period must be positive")
	}

	var out *types.AgreementDraft
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		e, err := a.loadOwned(dbc, op, in.Caller, in.EnlistmentID)
		if err != nil {
			return err
		}
		offer, err := a.deps.Offers.GetByTenant(dbc, e.ID, tenant)
		if err != nil {
			return err
		}
		if offer == nil {
			return NotFoundError(op, "no offer from %s", tenant)
		}
		if offer.Status != types.OfferAccepted {
			return InvariantError(op, "offer is %s, draft requires an accepted offer", offer.Status)
		}
		draft, err := a.deps.Agreements.GetByTenant(dbc, e.ID, tenant)
		if err != nil {
			return err
		}
		if draft == nil {
			draft = &types.AgreementDraft{
				ID:           uuid.New(),
				EnlistmentID: e.ID,
				LandlordName: strings.TrimSpace(in.LandlordName),
				TenantName:   strings.TrimSpace(in.TenantName),
				TenantEmail:  tenant,
				Amount:       offer.Amount,
				LeaseStart:   in.LeaseStart,
				HandoverDate: in.HandoverDate,
				LeasePeriod:  in.LeasePeriod,
				OtherTerms:   in.OtherTerms,
				DraftHash:    strings.TrimSpace(in.DraftHash),
				Status:       types.AgreementPending,
			}
			if err := a.deps.Agreements.Create(dbc, draft); err != nil {
				return err
			}
			out = draft
			return nil
		}
		if !draft.Status.CanSubmitDraft() {
			return InvariantError(op, "agreement is %s, draft cannot be replaced", draft.Status)
		}
		// Resubmission rewrites the whole draft: stale signatures and any
		// rent bookkeeping from a prior negotiation round must not survive.
		n, err := a.deps.Base.CASGuard.UpdateByStatus(dbc, &types.AgreementDraft{}, draft.ID,
			[]int{int(types.AgreementUninitialized), int(types.AgreementRejected), int(types.AgreementCancelled)},
			map[string]any{
				"landlord_name":           strings.TrimSpace(in.LandlordName),
				"tenant_name":             strings.TrimSpace(in.TenantName),
				"amount":                  offer.Amount,
				"lease_start":             in.LeaseStart,
				"handover_date":           in.HandoverDate,
				"lease_period":            in.LeasePeriod,
				"other_terms":             in.OtherTerms,
				"draft_hash":              strings.TrimSpace(in.DraftHash),
				"landlord_signature_hash": "",
				"tenant_signature_hash":   "",
				"total_rent_paid":         0,
				"number_of_payments":      0,
				"first_payment_date":      nil,
				"rent_expiration_date":    nil,
				"status":                  int(types.AgreementPending),
			})
		if err != nil {
			return err
		}
		if n == 0 {
			return ConflictError(op, "agreement changed concurrently")
		}
		refreshed, err := a.deps.Agreements.GetByTenant(dbc, e.ID, tenant)
		if err != nil {
			return err
		}
		out = refreshed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (a *enlistmentAggregate) ReviewAgreement(ctx context.Context, in domagg.ReviewAgreementInput) (*types.AgreementDraft, error) {
	const op = "Enlistment.ReviewAgreement"
	tenant := types.NormalizeEmail(in.TenantEmail)
	var out *types.AgreementDraft
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		e, err := a.loadOwned(dbc, op, in.Caller, in.EnlistmentID)
		if err != nil {
			return err
		}
		draft, err := a.deps.Agreements.GetByTenant(dbc, e.ID, tenant)
		if err != nil {
			return err
		}
		if draft == nil {
			return NotFoundError(op, "no agreement draft for %s", tenant)
		}
		if !draft.Status.CanReview() {
			return InvariantError(op, "agreement is %s, not pending review", draft.Status)
		}
		next := types.AgreementRejected
		if in.Confirmed {
			next = types.AgreementConfirmed
		}
		n, err := a.deps.Base.CASGuard.UpdateByStatus(dbc, &types.AgreementDraft{}, draft.ID,
			[]int{int(types.AgreementPending)},
			map[string]any{"status": int(next)})
		if err != nil {
			return err
		}
		if n == 0 {
			return ConflictError(op, "agreement changed concurrently")
		}
		draft.Status = next
		out = draft
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (a *enlistmentAggregate) LandlordSign(ctx context.Context, in domagg.SignInput) (*types.AgreementDraft, error) {
	const op = "Enlistment.LandlordSign"
	tenant := types.NormalizeEmail(in.TenantEmail)
	if strings.TrimSpace(in.SignatureHash) == "" {
		return nil, ValidationError(op, "missing signature hash")
	}
	var out *types.AgreementDraft
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		e, err := a.loadOwned(dbc, op, in.Caller, in.EnlistmentID)
		if err != nil {
			return err
		}
		draft, err := a.deps.Agreements.GetByTenant(dbc, e.ID, tenant)
		if err != nil {
			return err
		}
		if draft == nil {
			return NotFoundError(op, "no agreement draft for %s", tenant)
		}
		if e.Locked && !e.HoldsLock(tenant) {
			return InvariantError(op, "another tenant holds the signature lock")
		}
		if !draft.Status.CanLandlordSign() {
			return InvariantError(op, "agreement is %s, signing requires a confirmed draft", draft.Status)
		}
		n, err := a.deps.Base.CASGuard.UpdateByStatus(dbc, &types.AgreementDraft{}, draft.ID,
			[]int{int(types.AgreementConfirmed)},
			map[string]any{
				"landlord_signature_hash": strings.TrimSpace(in.SignatureHash),
				"status":                  int(types.AgreementLandlordSigned),
			})
		if err != nil {
			return err
		}
		if n == 0 {
			return ConflictError(op, "agreement changed concurrently")
		}
		n, err = a.deps.Base.CASGuard.UpdateByVersion(dbc, &types.PropertyEnlistment{}, e.ID, e.Version, map[string]any{
			"locked":        true,
			"locked_tenant": tenant,
		})
		if err != nil {
			return err
		}
		if n == 0 {
			return ConflictError(op, "enlistment changed concurrently")
		}
		draft.LandlordSignatureHash = strings.TrimSpace(in.SignatureHash)
		draft.Status = types.AgreementLandlordSigned
		out = draft
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (a *enlistmentAggregate) TenantSign(ctx context.Context, in domagg.SignInput) (*types.AgreementDraft, error) {
	const op = "Enlistment.TenantSign"
	tenant := types.NormalizeEmail(in.TenantEmail)
	if strings.TrimSpace(in.SignatureHash) == "" {
		return nil, ValidationError(op, "missing signature hash")
	}
	var out *types.AgreementDraft
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		e, err := a.loadOwned(dbc, op, in.Caller, in.EnlistmentID)
		if err != nil {
			return err
		}
		draft, err := a.deps.Agreements.GetByTenant(dbc, e.ID, tenant)
		if err != nil {
			return err
		}
		if draft == nil {
			return NotFoundError(op, "no agreement draft for %s", tenant)
		}
		if !e.HoldsLock(tenant) {
			return InvariantError(op, "enlistment is not locked for this tenant")
		}
		if !draft.Status.CanTenantSign() {
			return InvariantError(op, "agreement is %s, counter-signing requires a landlord signature", draft.Status)
		}
		n, err := a.deps.Base.CASGuard.UpdateByStatus(dbc, &types.AgreementDraft{}, draft.ID,
			[]int{int(types.AgreementLandlordSigned)},
			map[string]any{
				"tenant_signature_hash": strings.TrimSpace(in.SignatureHash),
				"status":                int(types.AgreementTenantSigned),
			})
		if err != nil {
			return err
		}
		if n == 0 {
			return ConflictError(op, "agreement changed concurrently")
		}
		draft.TenantSignatureHash = strings.TrimSpace(in.SignatureHash)
		draft.Status = types.AgreementTenantSigned
		out = draft
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (a *enlistmentAggregate) CancelAgreement(ctx context.Context, in domagg.CancelAgreementInput) (*types.AgreementDraft, error) {
	const op = "Enlistment.CancelAgreement"
	tenant := types.NormalizeEmail(in.TenantEmail)
	var out *types.AgreementDraft
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		e, err := a.loadOwned(dbc, op, in.Caller, in.EnlistmentID)
		if err != nil {
			return err
		}
		draft, err := a.deps.Agreements.GetByTenant(dbc, e.ID, tenant)
		if err != nil {
			return err
		}
		if draft == nil {
			return NotFoundError(op, "no agreement draft for %s", tenant)
		}
		if !draft.Status.CanCancel() {
			return InvariantError(op, "agreement is %s and cannot be cancelled", draft.Status)
		}
		n, err := a.deps.Base.CASGuard.UpdateByStatus(dbc, &types.AgreementDraft{}, draft.ID,
			[]int{int(types.AgreementPending), int(types.AgreementConfirmed), int(types.AgreementLandlordSigned)},
			map[string]any{"status": int(types.AgreementCancelled)})
		if err != nil {
			return err
		}
		if n == 0 {
			return ConflictError(op, "agreement changed concurrently")
		}
		draft.Status = types.AgreementCancelled
		if e.HoldsLock(tenant) {
			if err := a.unlock(dbc, op, e); err != nil {
				return err
			}
		}
		out = draft
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (a *enlistmentAggregate) ReceiveFirstMonthRent(ctx context.Context, in domagg.ReceiveRentInput) (domagg.PaymentResult, error) {
	const op = "Enlistment.ReceiveFirstMonthRent"
	tenant := types.NormalizeEmail(in.TenantEmail)
	var out domagg.PaymentResult
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		e, err := a.loadOwned(dbc, op, in.Caller, in.EnlistmentID)
		if err != nil {
			return err
		}
		draft, err := a.deps.Agreements.GetByTenant(dbc, e.ID, tenant)
		if err != nil {
			return err
		}
		if draft == nil {
			return NotFoundError(op, "no agreement draft for %s", tenant)
		}
		if !draft.Status.CanComplete() {
			return InvariantError(op, "agreement is %s, activation requires both signatures", draft.Status)
		}
		now := time.Now().UTC()
		expiry := now.Add(30 * 24 * time.Hour)
		n, err := a.deps.Base.CASGuard.UpdateByStatus(dbc, &types.AgreementDraft{}, draft.ID,
			[]int{int(types.AgreementTenantSigned)},
			map[string]any{
				"status":               int(types.AgreementCompleted),
				"first_payment_date":   now,
				"rent_expiration_date": expiry,
				"total_rent_paid":      0,
				"number_of_payments":   0,
			})
		if err != nil {
			return err
		}
		if n == 0 {
			return ConflictError(op, "agreement changed concurrently")
		}
		record, err := a.recordPayment(dbc, e.ID, tenant, types.PaymentKindFirstMonth, draft.Amount, now)
		if err != nil {
			return err
		}
		out = domagg.PaymentResult{
			PaymentID:        record.ID,
			EnlistmentID:     e.ID,
			TenantEmail:      tenant,
			Kind:             types.PaymentKindFirstMonth,
			Amount:           draft.Amount,
			Status:           types.AgreementCompleted,
			TotalRentPaid:    0,
			NumberOfPayments: 0,
			ReceivedAt:       now,
		}
		return nil
	})
	if err != nil {
		return domagg.PaymentResult{}, err
	}
	return out, nil
}

func (a *enlistmentAggregate) ReceiveMonthlyRent(ctx context.Context, in domagg.ReceiveRentInput) (domagg.PaymentResult, error) {
	const op = "Enlistment.ReceiveMonthlyRent"
	tenant := types.NormalizeEmail(in.TenantEmail)
	if in.Amount <= 0 {
		return domagg.PaymentResult{}, ValidationError(op, "payment amount must be positive")
	}
	var out domagg.PaymentResult
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		e, err := a.loadOwned(dbc, op, in.Caller, in.EnlistmentID)
		if err != nil {
			return err
		}
		draft, err := a.deps.Agreements.GetByTenant(dbc, e.ID, tenant)
		if err != nil {
			return err
		}
		if draft == nil {
			return NotFoundError(op, "no agreement draft for %s", tenant)
		}
		if draft.Status != types.AgreementCompleted {
			return InvariantError(op, "agreement is %s, rent requires an active lease", draft.Status)
		}
		now := time.Now().UTC()
		// Increment in-place so concurrent payments never lose ledger lines.
		n, err := a.deps.Base.CASGuard.UpdateByStatus(dbc, &types.AgreementDraft{}, draft.ID,
			[]int{int(types.AgreementCompleted)},
			map[string]any{
				"total_rent_paid":    gorm.Expr("total_rent_paid + ?", in.Amount),
				"number_of_payments": gorm.Expr("number_of_payments + 1"),
			})
		if err != nil {
			return err
		}
		if n == 0 {
			return ConflictError(op, "agreement changed concurrently")
		}
		refreshed, err := a.deps.Agreements.GetByTenant(dbc, e.ID, tenant)
		if err != nil {
			return err
		}
		if refreshed == nil {
			return NotFoundError(op, "agreement disappeared during payment")
		}
		record, err := a.recordPayment(dbc, e.ID, tenant, types.PaymentKindMonthly, in.Amount, now)
		if err != nil {
			return err
		}
		out = domagg.PaymentResult{
			PaymentID:        record.ID,
			EnlistmentID:     e.ID,
			TenantEmail:      tenant,
			Kind:             types.PaymentKindMonthly,
			Amount:           in.Amount,
			Status:           refreshed.Status,
			TotalRentPaid:    refreshed.TotalRentPaid,
			NumberOfPayments: refreshed.NumberOfPayments,
			ReceivedAt:       now,
		}
		return nil
	})
	if err != nil {
		return domagg.PaymentResult{}, err
	}
	return out, nil
}

func (a *enlistmentAggregate) recordPayment(dbc dbctx.Context, enlistmentID uuid.UUID, tenant, kind string, amount int64, at time.Time) (*types.PaymentRecord, error) {
	details, err := json.Marshal(map[string]any{
		"kind":        kind,
		"amount":      amount,
		"received_at": at.Format(time.RFC3339Nano),
	})
	if err != nil {
		return nil, err
	}
	record := &types.PaymentRecord{
		ID:           uuid.New(),
		EnlistmentID: enlistmentID,
		TenantEmail:  tenant,
		Kind:         kind,
		Amount:       amount,
		Details:      datatypes.JSON(details),
	}
	if err := a.deps.Payments.Create(dbc, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (a *enlistmentAggregate) unlock(dbc dbctx.Context, op string, e *types.PropertyEnlistment) error {
	n, err := a.deps.Base.CASGuard.UpdateByVersion(dbc, &types.PropertyEnlistment{}, e.ID, e.Version, map[string]any{
		"locked":        false,
		"locked_tenant": nil,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return ConflictError(op, "enlistment changed concurrently")
	}
	e.Locked = false
	e.LockedTenant = nil
	e.Version++
	return nil
}

func (a *enlistmentAggregate) readCtx(ctx context.Context) dbctx.Context {
	return dbctx.Context{Ctx: ctx}
}

func (a *enlistmentAggregate) GetEnlistment(ctx context.Context, caller string, enlistmentID uuid.UUID) (*types.PropertyEnlistment, error) {
	const op = "Enlistment.Get"
	e, err := a.loadOwned(a.readCtx(ctx), op, caller, enlistmentID)
	if err != nil {
		return nil, MapError(op, err)
	}
	return e, nil
}

func (a *enlistmentAggregate) ListEnlistments(ctx context.Context, caller string) ([]*types.PropertyEnlistment, error) {
	const op = "Enlistment.List"
	owner := types.NormalizeEmail(caller)
	if owner == "" {
		return nil, UnauthorizedError(op, "missing caller identity")
	}
	rows, err := a.deps.Enlistments.ListByOwner(a.readCtx(ctx), owner)
	if err != nil {
		return nil, MapError(op, err)
	}
	return rows, nil
}

func (a *enlistmentAggregate) GetOffer(ctx context.Context, caller string, enlistmentID uuid.UUID, tenantEmail string) (*types.Offer, error) {
	const op = "Enlistment.GetOffer"
	dbc := a.readCtx(ctx)
	e, err := a.loadOwned(dbc, op, caller, enlistmentID)
	if err != nil {
		return nil, MapError(op, err)
	}
	offer, err := a.deps.Offers.GetByTenant(dbc, e.ID, types.NormalizeEmail(tenantEmail))
	if err != nil {
		return nil, MapError(op, err)
	}
	if offer == nil {
		return nil, NotFoundError(op, "no offer from %s", types.NormalizeEmail(tenantEmail))
	}
	return offer, nil
}

func (a *enlistmentAggregate) ListOffers(ctx context.Context, caller string, enlistmentID uuid.UUID) ([]*types.Offer, error) {
	const op = "Enlistment.ListOffers"
	dbc := a.readCtx(ctx)
	e, err := a.loadOwned(dbc, op, caller, enlistmentID)
	if err != nil {
		return nil, MapError(op, err)
	}
	rows, err := a.deps.Offers.ListByEnlistment(dbc, e.ID)
	if err != nil {
		return nil, MapError(op, err)
	}
	return rows, nil
}

func (a *enlistmentAggregate) GetAgreement(ctx context.Context, caller string, enlistmentID uuid.UUID, tenantEmail string) (*types.AgreementDraft, error) {
	const op = "Enlistment.GetAgreement"
	dbc := a.readCtx(ctx)
	e, err := a.loadOwned(dbc, op, caller, enlistmentID)
	if err != nil {
		return nil, MapError(op, err)
	}
	draft, err := a.deps.Agreements.GetByTenant(dbc, e.ID, types.NormalizeEmail(tenantEmail))
	if err != nil {
		return nil, MapError(op, err)
	}
	if draft == nil {
		return nil, NotFoundError(op, "no agreement draft for %s", types.NormalizeEmail(tenantEmail))
	}
	return draft, nil
}

func (a *enlistmentAggregate) ListAgreements(ctx context.Context, caller string, enlistmentID uuid.UUID) ([]*types.AgreementDraft, error) {
	const op = "Enlistment.ListAgreements"
	dbc := a.readCtx(ctx)
	e, err := a.loadOwned(dbc, op, caller, enlistmentID)
	if err != nil {
		return nil, MapError(op, err)
	}
	rows, err := a.deps.Agreements.ListByEnlistment(dbc, e.ID)
	if err != nil {
		return nil, MapError(op, err)
	}
	return rows, nil
}
