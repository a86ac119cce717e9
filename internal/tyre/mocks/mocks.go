// Package mocks holds testify mocks for the tyre interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-tyre-service/internal/model"
	"github.com/fekuna/omnipos-tyre-service/internal/tyre/dto"
	"github.com/stretchr/testify/mock"
)

type Repository struct {
	mock.Mock
}

func (m *Repository) Create(ctx context.Context, t *model.Tyre) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *Repository) FindByID(ctx context.Context, id string) (*model.Tyre, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*model.Tyre)
	return t, args.Error(1)
}

func (m *Repository) FindAll(ctx context.Context, f *dto.TyreFilters) ([]model.Tyre, error) {
	args := m.Called(ctx, f)
	items, _ := args.Get(0).([]model.Tyre)
	return items, args.Error(1)
}

func (m *Repository) UpdatePricing(ctx context.Context, t *model.Tyre) (*model.Tyre, error) {
	args := m.Called(ctx, t)
	updated, _ := args.Get(0).(*model.Tyre)
	return updated, args.Error(1)
}

func (m *Repository) DeleteWithSales(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type Cache struct {
	mock.Mock
}

func (m *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	args := m.Called(ctx, key)
	data, _ := args.Get(0).([]byte)
	return data, args.Bool(1), args.Error(2)
}

func (m *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *Cache) Incr(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	n, _ := args.Get(0).(int64)
	return n, args.Error(1)
}

func (m *Cache) DeletePattern(ctx context.Context, pattern string) error {
	args := m.Called(ctx, pattern)
	return args.Error(0)
}

type SearchIndex struct {
	mock.Mock
}

func (m *SearchIndex) Index(ctx context.Context, t *model.Tyre) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *SearchIndex) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *SearchIndex) SearchIDs(ctx context.Context, query string) ([]string, error) {
	args := m.Called(ctx, query)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

type UseCase struct {
	mock.Mock
}

func (m *UseCase) AddTyre(ctx context.Context, input *dto.CreateTyreInput) (*model.Tyre, error) {
	args := m.Called(ctx, input)
	t, _ := args.Get(0).(*model.Tyre)
	return t, args.Error(1)
}

func (m *UseCase) GetTyre(ctx context.Context, id string) (*model.Tyre, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*model.Tyre)
	return t, args.Error(1)
}

func (m *UseCase) EditTyre(ctx context.Context, input *dto.EditTyreInput) (*model.Tyre, error) {
	args := m.Called(ctx, input)
	t, _ := args.Get(0).(*model.Tyre)
	return t, args.Error(1)
}

func (m *UseCase) DeleteTyre(ctx context.Context, input *dto.DeleteTyreInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

func (m *UseCase) ListTyres(ctx context.Context, filters *dto.TyreFilters) ([]model.Tyre, error) {
	args := m.Called(ctx, filters)
	items, _ := args.Get(0).([]model.Tyre)
	return items, args.Error(1)
}

func (m *UseCase) RebuildSearchIndex(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
