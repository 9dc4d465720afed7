package loan

import "context"

type Repository interface {
	Insert(ctx context.Context, v *Version) error
	// GetUnconsumedByLinearID returns the single live version of a logical
	// loan, or ErrNotFound when none exists.
	GetUnconsumedByLinearID(ctx context.Context, linearID string) (*Version, error)
	// GetUnconsumedByLinearIDForUpdate locks the live version inside the
	// surrounding transaction.
	GetUnconsumedByLinearIDForUpdate(ctx context.Context, linearID string) (*Version, error)
	// MarkConsumed retires a version. Returns ErrConsumed when it was
	// already spent by a concurrent transition.
	MarkConsumed(ctx context.Context, id uint64) error
	// History lists every version of a logical loan, oldest first.
	History(ctx context.Context, linearID string) ([]Version, error)
}
