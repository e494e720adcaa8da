package aggregates

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	domagg "github.com/renthaus/enlistd/internal/domain/aggregates"
	"github.com/renthaus/enlistd/internal/pkg/dbctx"
	"github.com/renthaus/enlistd/internal/platform/logger"
)

type BaseDeps struct {
	DB       *gorm.DB
	Log      *logger.Logger
	Runner   TxRunner
	Hooks    Hooks
	CASGuard *CASGuard
}

func (d BaseDeps) withDefaults() BaseDeps {
	if d.Runner == nil {
		d.Runner = NewTxRunner(d.DB)
	}
	if d.Hooks == nil {
		d.Hooks = noopHooks{}
	}
	if d.CASGuard == nil {
		d.CASGuard = NewCASGuard()
	}
	return d
}

func executeWrite(ctx context.Context, deps BaseDeps, op string, fn func(dbc dbctx.Context) error) error {
	start := time.Now()
	deps = deps.withDefaults()
	op = strings.TrimSpace(op)
	if op == "" {
		op = "aggregate.write"
	}
	err := deps.Runner.InTx(ctx, fn)
	mapped := MapError(op, err)

	status := "success"
	if mapped != nil {
		status = aggregateErrorStatus(mapped)
		if domagg.IsCode(mapped, domagg.CodeConflict) {
			deps.Hooks.IncConflict(op)
		}
		if domagg.IsCode(mapped, domagg.CodeRetryable) {
			deps.Hooks.IncRetry(op)
		}
	}
	deps.Hooks.ObserveOperation(op, status, time.Since(start))
	return mapped
}

func aggregateErrorStatus(err error) string {
	if err == nil {
		return "success"
	}
	code := strings.TrimSpace(string(domagg.CodeOf(err)))
	if code == "" {
		return "failure"
	}
	return code
}
