package uow

import (
	"context"

	"github.com/samnaidups/CordaProjects/internal/domain/loan"
)

type Repos struct {
	Records loan.Repository
}

// UnitOfWork commits a transition atomically: consuming the inputs and
// inserting the outputs either all happen or none do.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// WithinRecordTx locks the live version of the given logical loan
	// first, then passes it in.
	WithinRecordTx(ctx context.Context, linearID string, fn func(r Repos, v *loan.Version) error) error
}
