// Package oracle supplies the externally attested payable amount consumed by
// loan settlement. The figure is opaque and trusted; the validator never
// calls the oracle itself, the runtime materializes the value beforehand.
package oracle

import "context"

type BalanceOracle interface {
	// AttestedPayable returns the amount attested as payable for the given
	// loan in the current settlement round.
	AttestedPayable(ctx context.Context, linearID string) (int64, error)
}

// Static always attests the same figure. Used when the attestation source is
// configured out-of-band.
type Static struct{ Value int64 }

func (s Static) AttestedPayable(context.Context, string) (int64, error) { return s.Value, nil }

// Func adapts a plain function, mostly for tests.
type Func func(ctx context.Context, linearID string) (int64, error)

func (f Func) AttestedPayable(ctx context.Context, linearID string) (int64, error) {
	return f(ctx, linearID)
}
