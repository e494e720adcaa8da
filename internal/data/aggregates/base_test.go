package aggregates_test

import (
	"context"
	"errors"
	"testing"

	"github.com/renthaus/enlistd/internal/data/aggregates"
	aggtest "github.com/renthaus/enlistd/internal/data/aggregates/testutil"
	repotest "github.com/renthaus/enlistd/internal/data/repos/testutil"
	domagg "github.com/renthaus/enlistd/internal/domain/aggregates"
	"github.com/renthaus/enlistd/internal/pkg/dbctx"
)

func TestExecuteWrite_Telemetry(t *testing.T) {
	runner := &aggtest.InjectedTxRunner{}
	hooks := &aggtest.HooksRecorder{}

	agg := aggregates.NewEnlistmentAggregate(aggregates.EnlistmentAggregateDeps{
		Base: aggregates.BaseDeps{Log: repotest.Logger(t), Runner: runner, Hooks: hooks},
	})

	// a missing enlistment id fails validation inside the tx body, before
	// any repo access
	_, err := agg.ReviewListing(context.Background(), domagg.ReviewListingInput{Caller: "x@y.com"})
	if domagg.CodeOf(err) != domagg.CodeValidation {
		t.Fatalf("expected validation, got %v", err)
	}
	if len(hooks.Operations) != 1 {
		t.Fatalf("expected 1 observed op, got %d", len(hooks.Operations))
	}
	if hooks.Operations[0].Status != string(domagg.CodeValidation) {
		t.Fatalf("unexpected status: %q", hooks.Operations[0].Status)
	}
	if runner.RollbackCalls != 1 || runner.CommitCalls != 0 {
		t.Fatalf("expected rollback, got commits=%d rollbacks=%d", runner.CommitCalls, runner.RollbackCalls)
	}
}

func TestExecuteWrite_ConflictSignal(t *testing.T) {
	hooks := &aggtest.HooksRecorder{}
	runner := &fnRunner{err: aggregates.ConflictError("Enlistment.ReviewListing", "lost race")}

	agg := aggregates.NewEnlistmentAggregate(aggregates.EnlistmentAggregateDeps{
		Base: aggregates.BaseDeps{Log: repotest.Logger(t), Runner: runner, Hooks: hooks},
	})
	_, err := agg.ReviewListing(context.Background(), domagg.ReviewListingInput{Caller: "x@y.com"})
	if domagg.CodeOf(err) != domagg.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if len(hooks.Conflicts) != 1 {
		t.Fatalf("expected conflict signal, got %+v", hooks.Conflicts)
	}
}

func TestExecuteWrite_RetrySignal(t *testing.T) {
	hooks := &aggtest.HooksRecorder{}
	runner := &fnRunner{err: errors.New("database is locked")}

	agg := aggregates.NewEnlistmentAggregate(aggregates.EnlistmentAggregateDeps{
		Base: aggregates.BaseDeps{Log: repotest.Logger(t), Runner: runner, Hooks: hooks},
	})
	_, err := agg.CreateEnlistment(context.Background(), domagg.CreateEnlistmentInput{
		Caller: "x@y.com", LandlordName: "L", StreetName: "S",
		ApartmentNr: "1", HouseNr: "1", ZipCode: "1",
	})
	if domagg.CodeOf(err) != domagg.CodeRetryable {
		t.Fatalf("expected retryable, got %v", err)
	}
	if len(hooks.Retries) != 1 {
		t.Fatalf("expected retry signal, got %+v", hooks.Retries)
	}
}

// fnRunner fails every transaction with a fixed error.
type fnRunner struct{ err error }

func (r *fnRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	return r.err
}
