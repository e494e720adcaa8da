package domain

import (
	"encoding/json"
	"testing"
)

func TestOfferStatusOrdinals(t *testing.T) {
	// Wire contract: these ordinals are persisted and consumed externally.
	cases := []struct {
		status OfferStatus
		ord    int
		name   string
	}{
		{OfferPending, 0, "PENDING"},
		{OfferRejected, 1, "REJECTED"},
		{OfferCancelled, 2, "CANCELLED"},
		{OfferAccepted, 3, "ACCEPTED"},
	}
	for _, c := range cases {
		if int(c.status) != c.ord {
			t.Fatalf("%s ordinal: want=%d got=%d", c.name, c.ord, int(c.status))
		}
		if c.status.String() != c.name {
			t.Fatalf("ordinal %d name: want=%s got=%s", c.ord, c.name, c.status.String())
		}
	}
}

func TestAgreementStatusOrdinals(t *testing.T) {
	cases := []struct {
		status AgreementStatus
		ord    int
		name   string
	}{
		{AgreementUninitialized, 0, "UNINITIALIZED"},
		{AgreementPending, 1, "PENDING"},
		{AgreementRejected, 2, "REJECTED"},
		{AgreementConfirmed, 3, "CONFIRMED"},
		{AgreementCancelled, 4, "CANCELLED"},
		{AgreementLandlordSigned, 5, "LANDLORD_SIGNED"},
		{AgreementTenantSigned, 6, "TENANT_SIGNED"},
		{AgreementCompleted, 7, "COMPLETED"},
	}
	for _, c := range cases {
		if int(c.status) != c.ord {
			t.Fatalf("%s ordinal: want=%d got=%d", c.name, c.ord, int(c.status))
		}
		if c.status.String() != c.name {
			t.Fatalf("ordinal %d name: want=%s got=%s", c.ord, c.name, c.status.String())
		}
	}
}

func TestStatusJSONMarshalsAsName(t *testing.T) {
	raw, err := json.Marshal(OfferAccepted)
	if err != nil {
		t.Fatalf("marshal offer status: %v", err)
	}
	if string(raw) != `"ACCEPTED"` {
		t.Fatalf("offer status json: got=%s", raw)
	}
	raw, err = json.Marshal(AgreementLandlordSigned)
	if err != nil {
		t.Fatalf("marshal agreement status: %v", err)
	}
	if string(raw) != `"LANDLORD_SIGNED"` {
		t.Fatalf("agreement status json: got=%s", raw)
	}
}

func TestOfferTransitions(t *testing.T) {
	if !OfferRejected.CanResubmit() || !OfferCancelled.CanResubmit() {
		t.Fatalf("terminal offer statuses must allow resubmission")
	}
	if OfferPending.CanResubmit() || OfferAccepted.CanResubmit() {
		t.Fatalf("live offer statuses must not allow resubmission")
	}
	if !OfferPending.CanReview() {
		t.Fatalf("pending offer must be reviewable")
	}
	for _, s := range []OfferStatus{OfferRejected, OfferCancelled, OfferAccepted} {
		if s.CanReview() {
			t.Fatalf("%s must not be reviewable", s)
		}
	}
	if OfferCancelled.CanCancel() {
		t.Fatalf("cancelled offer must not cancel again")
	}
	for _, s := range []OfferStatus{OfferPending, OfferRejected, OfferAccepted} {
		if !s.CanCancel() {
			t.Fatalf("%s should be cancellable", s)
		}
	}
}

func TestAgreementTransitions(t *testing.T) {
	for _, s := range []AgreementStatus{AgreementUninitialized, AgreementRejected, AgreementCancelled} {
		if !s.CanSubmitDraft() {
			t.Fatalf("%s should accept a new draft", s)
		}
	}
	for _, s := range []AgreementStatus{AgreementPending, AgreementConfirmed, AgreementLandlordSigned, AgreementTenantSigned, AgreementCompleted} {
		if s.CanSubmitDraft() {
			t.Fatalf("%s must not accept a new draft", s)
		}
	}

	if !AgreementConfirmed.CanLandlordSign() {
		t.Fatalf("confirmed draft must allow landlord signature")
	}
	if AgreementPending.CanLandlordSign() {
		t.Fatalf("unconfirmed draft must not allow landlord signature")
	}
	if !AgreementLandlordSigned.CanTenantSign() {
		t.Fatalf("landlord-signed draft must allow tenant signature")
	}
	if AgreementConfirmed.CanTenantSign() {
		t.Fatalf("tenant cannot sign before the landlord")
	}

	for _, s := range []AgreementStatus{AgreementPending, AgreementConfirmed, AgreementLandlordSigned} {
		if !s.CanCancel() {
			t.Fatalf("%s should be cancellable", s)
		}
	}
	for _, s := range []AgreementStatus{AgreementRejected, AgreementTenantSigned, AgreementCompleted, AgreementUninitialized} {
		if s.CanCancel() {
			t.Fatalf("%s must not be cancellable", s)
		}
	}

	if !AgreementTenantSigned.CanComplete() {
		t.Fatalf("tenant-signed agreement must accept first month rent")
	}
	if AgreementLandlordSigned.CanComplete() {
		t.Fatalf("agreement without tenant signature must not complete")
	}

	for _, s := range []AgreementStatus{AgreementTenantSigned, AgreementCompleted} {
		if !s.BlocksOfferCancel() {
			t.Fatalf("%s must pin the offer", s)
		}
	}
	if AgreementLandlordSigned.BlocksOfferCancel() {
		t.Fatalf("landlord-signed agreement must not pin the offer")
	}
}

func TestEnlistmentOwnerAndLock(t *testing.T) {
	tenant := "cassian@reply.xd"
	e := &PropertyEnlistment{
		OwnerID: "john@wick.xd",
		Status:  ListingApproved,
	}
	if !e.IsOwner("john@wick.xd") || !e.IsOwner("John@Wick.xd") {
		t.Fatalf("owner check should be case-insensitive")
	}
	if e.IsOwner("") || e.IsOwner("other@mail.xd") {
		t.Fatalf("non-owner accepted")
	}
	if !e.AcceptsOffers() {
		t.Fatalf("approved unlocked enlistment should accept offers")
	}

	e.Locked = true
	e.LockedTenant = &tenant
	if e.AcceptsOffers() {
		t.Fatalf("locked enlistment must not accept offers")
	}
	if !e.HoldsLock("CASSIAN@reply.xd") {
		t.Fatalf("lock holder check should be case-insensitive")
	}
	if e.HoldsLock("morry@reply.xd") {
		t.Fatalf("non-holder reported as lock holder")
	}

	e.Locked = false
	e.Status = ListingPending
	if e.AcceptsOffers() {
		t.Fatalf("unapproved enlistment must not accept offers")
	}
}
