// Package uowmock provides an in-memory unit of work backed by a slice of
// record versions, so usecase tests can run whole lifecycles without a
// database.
package uowmock

import (
	"context"
	"sync"

	"github.com/samnaidups/CordaProjects/internal/domain/loan"
	"github.com/samnaidups/CordaProjects/internal/domain/uow"

	"gorm.io/gorm"
)

var _ uow.UnitOfWork = (*UoW)(nil)

type UoW struct {
	mu       sync.Mutex
	nextID   uint64
	versions []*loan.Version
}

func New() *UoW { return &UoW{nextID: 1} }

// Versions returns a snapshot of every stored version, oldest first.
func (m *UoW) Versions() []loan.Version {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]loan.Version, 0, len(m.versions))
	for _, v := range m.versions {
		out = append(out, *v)
	}
	return out
}

func (m *UoW) WithinTx(_ context.Context, fn func(r uow.Repos) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(uow.Repos{Records: (*repo)(m)})
}

func (m *UoW) WithinRecordTx(ctx context.Context, linearID string, fn func(r uow.Repos, v *loan.Version) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := (*repo)(m)
	v, err := r.live(linearID)
	if err != nil {
		return err
	}
	return fn(uow.Repos{Records: r}, v)
}

// repo implements loan.Repository on the same store. It mirrors the gorm
// adapter's error behavior, including gorm.ErrRecordNotFound on misses.
type repo UoW

var _ loan.Repository = (*repo)(nil)

func (r *repo) live(linearID string) (*loan.Version, error) {
	for i := len(r.versions) - 1; i >= 0; i-- {
		if r.versions[i].LinearID == linearID && !r.versions[i].Consumed {
			return r.versions[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *repo) Insert(_ context.Context, v *loan.Version) error {
	v.ID = r.nextID
	r.nextID++
	cp := *v
	r.versions = append(r.versions, &cp)
	return nil
}

func (r *repo) GetUnconsumedByLinearID(_ context.Context, linearID string) (*loan.Version, error) {
	v, err := r.live(linearID)
	if err != nil {
		return nil, err
	}
	cp := *v
	return &cp, nil
}

func (r *repo) GetUnconsumedByLinearIDForUpdate(ctx context.Context, linearID string) (*loan.Version, error) {
	return r.GetUnconsumedByLinearID(ctx, linearID)
}

func (r *repo) MarkConsumed(_ context.Context, id uint64) error {
	for _, v := range r.versions {
		if v.ID == id {
			if v.Consumed {
				return loan.ErrConsumed
			}
			v.Consumed = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *repo) History(_ context.Context, linearID string) ([]loan.Version, error) {
	var out []loan.Version
	for _, v := range r.versions {
		if v.LinearID == linearID {
			out = append(out, *v)
		}
	}
	return out, nil
}
