package mysql

import (
	"context"

	"github.com/samnaidups/CordaProjects/internal/domain/loan"
	"github.com/samnaidups/CordaProjects/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(uow.Repos{Records: &RecordRepository{db: tx}})
	})
}

func (u *GormUoW) WithinRecordTx(ctx context.Context, linearID string, fn func(r uow.Repos, v *loan.Version) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := uow.Repos{Records: &RecordRepository{db: tx}}
		// lock the live version up-front to prevent races
		v, err := r.Records.GetUnconsumedByLinearIDForUpdate(ctx, linearID)
		if err != nil {
			return err
		}
		return fn(r, v)
	})
}
