package repos_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/renthaus/enlistd/internal/data/repos"
	"github.com/renthaus/enlistd/internal/data/repos/testutil"
	types "github.com/renthaus/enlistd/internal/domain"
	"github.com/renthaus/enlistd/internal/pkg/dbctx"
)

func TestOfferRepo_GetByTenant(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := repos.NewOfferRepo(db, testutil.Logger(t))

	e := testutil.SeedEnlistment(t, tx, "john@wick.com")
	seeded := testutil.SeedOffer(t, tx, e.ID, "cassian@contra.com", types.OfferPending)

	got, err := repo.GetByTenant(dbc, e.ID, "cassian@contra.com")
	if err != nil {
		t.Fatalf("get by tenant: %v", err)
	}
	if got == nil {
		t.Fatal("expected row, got nil")
	}
	if got.ID != seeded.ID || got.Amount != 400 {
		t.Fatalf("unexpected row: %+v", got)
	}

	missing, err := repo.GetByTenant(dbc, e.ID, "nobody@contra.com")
	if err != nil {
		t.Fatalf("get by tenant: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing tenant, got %+v", missing)
	}
}

func TestOfferRepo_ListByEnlistment(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := repos.NewOfferRepo(db, testutil.Logger(t))

	e := testutil.SeedEnlistment(t, tx, "john@wick.com")
	other := testutil.SeedEnlistment(t, tx, "john@wick.com")
	testutil.SeedOffer(t, tx, e.ID, "a@contra.com", types.OfferPending)
	testutil.SeedOffer(t, tx, e.ID, "b@contra.com", types.OfferRejected)
	testutil.SeedOffer(t, tx, other.ID, "c@contra.com", types.OfferPending)

	rows, err := repo.ListByEnlistment(dbc, e.ID)
	if err != nil {
		t.Fatalf("list by enlistment: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	for _, row := range rows {
		if row.EnlistmentID != e.ID {
			t.Fatalf("row from wrong enlistment: %+v", row)
		}
	}
}

func TestOfferRepo_CreateUsesFallbackDB(t *testing.T) {
	db := testutil.DB(t)
	repo := repos.NewOfferRepo(db, testutil.Logger(t))

	e := &types.PropertyEnlistment{
		ID:           uuid.New(),
		OwnerID:      "fallback@wick.com",
		LandlordName: "John Wick",
		StreetName:   "Baker",
		FloorNr:      1,
		ApartmentNr:  "2",
		HouseNr:      "3",
		ZipCode:      "45000",
		Status:       types.ListingApproved,
	}
	if err := db.Create(e).Error; err != nil {
		t.Fatalf("seed enlistment: %v", err)
	}

	// no Tx on the context: the repo should fall back to its own handle
	dbc := dbctx.Context{Ctx: context.Background()}
	o := &types.Offer{
		ID:           uuid.New(),
		EnlistmentID: e.ID,
		Initialized:  true,
		Amount:       250,
		TenantName:   "Cassian",
		TenantEmail:  "fallback-tenant@contra.com",
		Status:       types.OfferPending,
	}
	if err := repo.Create(dbc, o); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetByTenant(dbc, e.ID, "fallback-tenant@contra.com")
	if err != nil {
		t.Fatalf("get by tenant: %v", err)
	}
	if got == nil || got.Amount != 250 {
		t.Fatalf("unexpected row: %+v", got)
	}
}
