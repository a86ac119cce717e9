package tyre

import (
	"context"
	"errors"
	"time"

	"github.com/fekuna/omnipos-tyre-service/internal/model"
	"github.com/fekuna/omnipos-tyre-service/internal/tyre/dto"
)

type UseCase interface {
	AddTyre(ctx context.Context, input *dto.CreateTyreInput) (*model.Tyre, error)
	GetTyre(ctx context.Context, id string) (*model.Tyre, error)
	EditTyre(ctx context.Context, input *dto.EditTyreInput) (*model.Tyre, error)
	DeleteTyre(ctx context.Context, input *dto.DeleteTyreInput) error
	ListTyres(ctx context.Context, filters *dto.TyreFilters) ([]model.Tyre, error)
	// RebuildSearchIndex writes every stored tyre to the search index and
	// returns how many were indexed.
	RebuildSearchIndex(ctx context.Context) (int, error)
}

// Cache backs the tyre list. Any write to tyres, including a sale, must go
// through InvalidateListCache.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Incr(ctx context.Context, key string) (int64, error)
	DeletePattern(ctx context.Context, pattern string) error
}

const (
	ListCachePrefix  = "tyres:list:"
	ListCachePattern = ListCachePrefix + "*"
	ListCacheTTL     = 5 * time.Minute

	// ListCacheVersionKey is part of every list key. It sits outside
	// ListCachePattern so DeletePattern never resets it.
	ListCacheVersionKey = "tyres:list-version"
)

// InvalidateListCache bumps the list version, so an entry written by a read
// that started before the bump is never served, then drops the old keys.
func InvalidateListCache(ctx context.Context, c Cache) error {
	_, incrErr := c.Incr(ctx, ListCacheVersionKey)
	return errors.Join(incrErr, c.DeletePattern(ctx, ListCachePattern))
}

// SearchMaxHits caps the ids one search returns. A result that reaches the cap
// may be truncated.
const SearchMaxHits = 500

// SearchIndex is the full-text side index over brand and model. It returns
// ids only; rows are always read back from Postgres.
type SearchIndex interface {
	Index(ctx context.Context, tyre *model.Tyre) error
	Delete(ctx context.Context, id string) error
	SearchIDs(ctx context.Context, query string) ([]string, error)
}
