package repos_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/renthaus/enlistd/internal/data/repos"
	"github.com/renthaus/enlistd/internal/data/repos/testutil"
	types "github.com/renthaus/enlistd/internal/domain"
	"github.com/renthaus/enlistd/internal/pkg/dbctx"
	"gorm.io/datatypes"
)

func TestPaymentRepo_CreateAndListByTenant(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := repos.NewPaymentRepo(db, testutil.Logger(t))

	e := testutil.SeedEnlistment(t, tx, "john@wick.com")
	tenant := "cassian@contra.com"

	first := &types.PaymentRecord{
		ID:           uuid.New(),
		EnlistmentID: e.ID,
		TenantEmail:  tenant,
		Kind:         types.PaymentKindFirstMonth,
		Amount:       400,
		Details:      datatypes.JSON([]byte(`{"kind":"first_month","amount":400}`)),
	}
	if err := repo.Create(dbc, first); err != nil {
		t.Fatalf("create first: %v", err)
	}
	monthly := &types.PaymentRecord{
		ID:           uuid.New(),
		EnlistmentID: e.ID,
		TenantEmail:  tenant,
		Kind:         types.PaymentKindMonthly,
		Amount:       400,
	}
	if err := repo.Create(dbc, monthly); err != nil {
		t.Fatalf("create monthly: %v", err)
	}

	rows, err := repo.ListByTenant(dbc, e.ID, tenant)
	if err != nil {
		t.Fatalf("list by tenant: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 ledger lines, got %d", len(rows))
	}
	if rows[0].Kind != types.PaymentKindFirstMonth || rows[1].Kind != types.PaymentKindMonthly {
		t.Fatalf("ledger out of order: %s then %s", rows[0].Kind, rows[1].Kind)
	}

	other, err := repo.ListByTenant(dbc, e.ID, "nobody@contra.com")
	if err != nil {
		t.Fatalf("list by tenant: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("expected empty ledger for other tenant, got %d", len(other))
	}
}
