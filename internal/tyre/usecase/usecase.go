package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-tyre-service/internal/apperr"
	"github.com/fekuna/omnipos-tyre-service/internal/model"
	"github.com/fekuna/omnipos-tyre-service/internal/tyre"
	"github.com/fekuna/omnipos-tyre-service/internal/tyre/dto"
	"github.com/fekuna/omnipos-tyre-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type tyreUseCase struct {
	repo   tyre.Repository
	cache  tyre.Cache       // optional
	index  tyre.SearchIndex // optional
	logger logger.ZapLogger
	now    func() time.Time
}

func NewTyreUseCase(repo tyre.Repository, cache tyre.Cache, index tyre.SearchIndex, log logger.ZapLogger) tyre.UseCase {
	return &tyreUseCase{
		repo:   repo,
		cache:  cache,
		index:  index,
		logger: log,
		now:    time.Now,
	}
}

func (uc *tyreUseCase) AddTyre(ctx context.Context, input *dto.CreateTyreInput) (*model.Tyre, error) {
	t, err := input.Validate()
	if err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	t.BaseModel = model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now}

	if err := uc.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	uc.logger.Info("tyre added",
		zap.String("tyre_id", t.ID),
		zap.String("tyre", t.String()),
		zap.String("user_id", input.UserID),
	)

	uc.invalidateListCache(ctx)
	uc.syncToIndex(ctx, t)

	return t, nil
}

func (uc *tyreUseCase) GetTyre(ctx context.Context, id string) (*model.Tyre, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperr.ErrNotFound
	}

	t, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperr.ErrNotFound
	}
	return t, nil
}

func (uc *tyreUseCase) EditTyre(ctx context.Context, input *dto.EditTyreInput) (*model.Tyre, error) {
	t, err := uc.GetTyre(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	pricing, err := input.Validate()
	if err != nil {
		return nil, err
	}

	t.InvoicePrice = pricing.InvoicePrice
	t.AmazonListed = pricing.AmazonListed
	t.AmazonPrice = pricing.AmazonPrice
	t.UpdatedAt = uc.now().UTC()

	updated, err := uc.repo.UpdatePricing(ctx, t)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("tyre updated",
		zap.String("tyre_id", updated.ID),
		zap.String("invoice_price", updated.InvoicePrice.StringFixed(2)),
		zap.Bool("amazon_listed", updated.AmazonListed),
		zap.String("user_id", input.UserID),
	)

	uc.invalidateListCache(ctx)

	return updated, nil
}

func (uc *tyreUseCase) DeleteTyre(ctx context.Context, input *dto.DeleteTyreInput) error {
	if _, err := uuid.Parse(input.ID); err != nil {
		return apperr.ErrNotFound
	}

	if err := uc.repo.DeleteWithSales(ctx, input.ID); err != nil {
		return err
	}

	uc.logger.Info("tyre deleted", zap.String("tyre_id", input.ID), zap.String("user_id", input.UserID))

	uc.invalidateListCache(ctx)
	if uc.index != nil {
		if err := uc.index.Delete(ctx, input.ID); err != nil {
			uc.logger.Error("failed to delete tyre from search index", zap.String("tyre_id", input.ID), zap.Error(err))
		}
	}

	return nil
}

func (uc *tyreUseCase) ListTyres(ctx context.Context, filters *dto.TyreFilters) ([]model.Tyre, error) {
	// The key carries the list version read before Postgres, so a result that
	// races with an invalidation is stored under a key nobody reads again.
	cacheKey := uc.cacheKey(ctx, filters)
	if cacheKey != "" {
		if data, ok, err := uc.cache.Get(ctx, cacheKey); err == nil && ok {
			var cached []model.Tyre
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		} else if err != nil {
			uc.logger.Warn("tyre list cache read failed", zap.Error(err))
		}
	}

	query := *filters
	if query.SearchQuery != "" && uc.index != nil {
		ids, err := uc.index.SearchIDs(ctx, query.SearchQuery)
		switch {
		case err != nil:
			uc.logger.Error("search index failed, falling back to DB", zap.Error(err))
		case len(ids) >= tyre.SearchMaxHits:
			uc.logger.Warn("search index result truncated, falling back to DB",
				zap.String("query", query.SearchQuery), zap.Int("hits", len(ids)))
		default:
			query.IDs = ids
			query.SearchQuery = ""
		}
	}

	tyres, err := uc.repo.FindAll(ctx, &query)
	if err != nil {
		return nil, err
	}

	if cacheKey != "" {
		if data, err := json.Marshal(tyres); err == nil {
			if err := uc.cache.Set(ctx, cacheKey, data, tyre.ListCacheTTL); err != nil {
				uc.logger.Warn("tyre list cache write failed", zap.Error(err))
			}
		}
	}

	return tyres, nil
}

func (uc *tyreUseCase) RebuildSearchIndex(ctx context.Context) (int, error) {
	if uc.index == nil {
		return 0, nil
	}

	tyres, err := uc.repo.FindAll(ctx, &dto.TyreFilters{})
	if err != nil {
		return 0, err
	}

	indexed := 0
	var errs []error
	for i := range tyres {
		if err := uc.index.Index(ctx, &tyres[i]); err != nil {
			errs = append(errs, fmt.Errorf("index tyre %s: %w", tyres[i].ID, err))
			continue
		}
		indexed++
	}

	uc.logger.Info("search index rebuilt", zap.Int("indexed", indexed), zap.Int("failed", len(errs)))
	return indexed, errors.Join(errs...)
}

// cacheKey is empty when caching is disabled or the list version is unknown.
func (uc *tyreUseCase) cacheKey(ctx context.Context, filters *dto.TyreFilters) string {
	if uc.cache == nil {
		return ""
	}

	version := "0"
	data, ok, err := uc.cache.Get(ctx, tyre.ListCacheVersionKey)
	if err != nil {
		uc.logger.Warn("tyre list cache version read failed", zap.Error(err))
		return ""
	}
	if ok {
		version = string(data)
	}

	raw, err := json.Marshal(filters)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s%s:%x", tyre.ListCachePrefix, version, md5.Sum(raw))
}

func (uc *tyreUseCase) invalidateListCache(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := tyre.InvalidateListCache(ctx, uc.cache); err != nil {
		uc.logger.Error("failed to invalidate tyre list cache", zap.Error(err))
	}
}

func (uc *tyreUseCase) syncToIndex(ctx context.Context, t *model.Tyre) {
	if uc.index == nil {
		return
	}
	if err := uc.index.Index(ctx, t); err != nil {
		uc.logger.Error("failed to index tyre", zap.String("tyre_id", t.ID), zap.Error(err))
	}
}
