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

func TestEnlistmentRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := repos.NewEnlistmentRepo(db, testutil.Logger(t))

	e := &types.PropertyEnlistment{
		ID:           uuid.New(),
		OwnerID:      "john@wick.com",
		LandlordName: "John Wick",
		StreetName:   "Baker",
		FloorNr:      1,
		ApartmentNr:  "2",
		HouseNr:      "3",
		ZipCode:      "45000",
		Status:       types.ListingPending,
	}
	if err := repo.Create(dbc, e); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetByID(dbc, e.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got == nil {
		t.Fatal("expected row, got nil")
	}
	if got.OwnerID != "john@wick.com" || got.Status != types.ListingPending {
		t.Fatalf("unexpected row: %+v", got)
	}
}

func TestEnlistmentRepo_GetByIDMissing(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := repos.NewEnlistmentRepo(db, testutil.Logger(t))

	got, err := repo.GetByID(dbc, uuid.New())
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing row, got %+v", got)
	}
}

func TestEnlistmentRepo_ListByOwner(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := repos.NewEnlistmentRepo(db, testutil.Logger(t))

	owner := "owner-" + uuid.NewString() + "@wick.com"
	first := testutil.SeedEnlistment(t, tx, owner)
	second := testutil.SeedEnlistment(t, tx, owner)
	testutil.SeedEnlistment(t, tx, "someone-else@wick.com")

	rows, err := repo.ListByOwner(dbc, owner)
	if err != nil {
		t.Fatalf("list by owner: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].ID != first.ID || rows[1].ID != second.ID {
		t.Fatalf("rows out of creation order: %v then %v", rows[0].ID, rows[1].ID)
	}
}
