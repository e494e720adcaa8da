package aggregates_test

import (
	"context"
	"testing"

	"github.com/renthaus/enlistd/internal/data/aggregates"
	repotest "github.com/renthaus/enlistd/internal/data/repos/testutil"
	types "github.com/renthaus/enlistd/internal/domain"
	"github.com/renthaus/enlistd/internal/pkg/dbctx"
)

func TestCASGuard_UpdateByStatus(t *testing.T) {
	db := repotest.DB(t)
	e := repotest.SeedEnlistment(t, db, "guard@owner.com")
	offer := repotest.SeedOffer(t, db, e.ID, "guard@tenant.com", types.OfferPending)

	guard := aggregates.NewCASGuard()
	dbc := dbctx.Context{Ctx: context.Background(), Tx: db}

	n, err := guard.UpdateByStatus(dbc, &types.Offer{}, offer.ID,
		[]int{int(types.OfferPending)},
		map[string]any{"status": int(types.OfferAccepted)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 row, got %d", n)
	}

	// stale guard: the row is no longer pending
	n, err = guard.UpdateByStatus(dbc, &types.Offer{}, offer.ID,
		[]int{int(types.OfferPending)},
		map[string]any{"status": int(types.OfferRejected)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 rows on stale guard, got %d", n)
	}
}

func TestCASGuard_UpdateByVersion(t *testing.T) {
	db := repotest.DB(t)
	e := repotest.SeedEnlistment(t, db, "guard2@owner.com")

	guard := aggregates.NewCASGuard()
	dbc := dbctx.Context{Ctx: context.Background(), Tx: db}

	n, err := guard.UpdateByVersion(dbc, &types.PropertyEnlistment{}, e.ID, e.Version,
		map[string]any{"locked": true, "locked_tenant": "guard2@tenant.com"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 row, got %d", n)
	}

	var row types.PropertyEnlistment
	if err := db.First(&row, "id = ?", e.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if row.Version != e.Version+1 || !row.Locked {
		t.Fatalf("unexpected row: %+v", row)
	}

	// stale version loses
	n, err = guard.UpdateByVersion(dbc, &types.PropertyEnlistment{}, e.ID, e.Version,
		map[string]any{"locked": false})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 rows on stale version, got %d", n)
	}
}
