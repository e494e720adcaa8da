package testutil

import (
	"testing"

	"github.com/google/uuid"
	types "github.com/renthaus/enlistd/internal/domain"
	"gorm.io/gorm"
)

func SeedEnlistment(tb testing.TB, tx *gorm.DB, ownerID string) *types.PropertyEnlistment {
	tb.Helper()
	e := &types.PropertyEnlistment{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		LandlordName: "John Wick",
		StreetName:   "Baker",
		FloorNr:      1,
		ApartmentNr:  "2",
		HouseNr:      "3",
		ZipCode:      "45000",
		Status:       types.ListingApproved,
	}
	if err := tx.Create(e).Error; err != nil {
		tb.Fatalf("seed enlistment: %v", err)
	}
	return e
}

func SeedOffer(tb testing.TB, tx *gorm.DB, enlistmentID uuid.UUID, tenantEmail string, status types.OfferStatus) *types.Offer {
	tb.Helper()
	o := &types.Offer{
		ID:           uuid.New(),
		EnlistmentID: enlistmentID,
		Initialized:  true,
		Amount:       400,
		TenantName:   "Cassian",
		TenantEmail:  tenantEmail,
		Status:       status,
	}
	if err := tx.Create(o).Error; err != nil {
		tb.Fatalf("seed offer: %v", err)
	}
	return o
}

func SeedAgreement(tb testing.TB, tx *gorm.DB, enlistmentID uuid.UUID, tenantEmail string, status types.AgreementStatus) *types.AgreementDraft {
	tb.Helper()
	a := &types.AgreementDraft{
		ID:           uuid.New(),
		EnlistmentID: enlistmentID,
		LandlordName: "John Wick",
		TenantName:   "Cassian",
		TenantEmail:  tenantEmail,
		Amount:       400,
		LeaseStart:   1519580655493,
		HandoverDate: 1519580355498,
		LeasePeriod:  65493,
		OtherTerms:   "No cats, no wives",
		DraftHash:    "draftPDFH4sh",
		Status:       status,
	}
	if err := tx.Create(a).Error; err != nil {
		tb.Fatalf("seed agreement: %v", err)
	}
	return a
}
