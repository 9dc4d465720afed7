package mysql

import (
	"context"

	loanDomain "github.com/samnaidups/CordaProjects/internal/domain/loan"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RecordRepository struct{ db *gorm.DB }

func NewRecordRepository(db *gorm.DB) *RecordRepository { return &RecordRepository{db: db} }

// Tx runs fn in a db transaction, passing a repo bound to the tx
func (r *RecordRepository) Tx(ctx context.Context, fn func(repo loanDomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&RecordRepository{db: tx})
	})
}

func (r *RecordRepository) Insert(ctx context.Context, v *loanDomain.Version) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *RecordRepository) GetUnconsumedByLinearID(ctx context.Context, linearID string) (*loanDomain.Version, error) {
	var out loanDomain.Version
	res := r.db.WithContext(ctx).
		Where("linear_id = ? AND consumed = ?", linearID, false).
		Order("id DESC").
		First(&out)
	return &out, res.Error
}

func (r *RecordRepository) GetUnconsumedByLinearIDForUpdate(ctx context.Context, linearID string) (*loanDomain.Version, error) {
	var out loanDomain.Version
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("linear_id = ? AND consumed = ?", linearID, false).
		Order("id DESC").
		First(&out)
	return &out, res.Error
}

// MarkConsumed retires a version. The consumed guard in the predicate makes
// a double spend surface as ErrConsumed instead of silently re-updating.
func (r *RecordRepository) MarkConsumed(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).
		Model(&loanDomain.Version{}).
		Where("id = ? AND consumed = ?", id, false).
		Update("consumed", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return loanDomain.ErrConsumed
	}
	return nil
}

func (r *RecordRepository) History(ctx context.Context, linearID string) ([]loanDomain.Version, error) {
	var out []loanDomain.Version
	res := r.db.WithContext(ctx).
		Where("linear_id = ?", linearID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}
