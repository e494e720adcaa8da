package repos_test

import (
	"context"
	"testing"

	"github.com/renthaus/enlistd/internal/data/repos"
	"github.com/renthaus/enlistd/internal/data/repos/testutil"
	types "github.com/renthaus/enlistd/internal/domain"
	"github.com/renthaus/enlistd/internal/pkg/dbctx"
)

func TestAgreementRepo_GetByTenant(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := repos.NewAgreementRepo(db, testutil.Logger(t))

	e := testutil.SeedEnlistment(t, tx, "john@wick.com")
	seeded := testutil.SeedAgreement(t, tx, e.ID, "cassian@contra.com", types.AgreementPending)

	got, err := repo.GetByTenant(dbc, e.ID, "cassian@contra.com")
	if err != nil {
		t.Fatalf("get by tenant: %v", err)
	}
	if got == nil {
		t.Fatal("expected row, got nil")
	}
	if got.ID != seeded.ID || got.DraftHash != "draftPDFH4sh" {
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

func TestAgreementRepo_ListByEnlistment(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := repos.NewAgreementRepo(db, testutil.Logger(t))

	e := testutil.SeedEnlistment(t, tx, "john@wick.com")
	testutil.SeedAgreement(t, tx, e.ID, "a@contra.com", types.AgreementPending)
	testutil.SeedAgreement(t, tx, e.ID, "b@contra.com", types.AgreementConfirmed)

	rows, err := repo.ListByEnlistment(dbc, e.ID)
	if err != nil {
		t.Fatalf("list by enlistment: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
}
