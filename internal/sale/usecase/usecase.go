package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/omnipos-tyre-service/internal/apperr"
	"github.com/fekuna/omnipos-tyre-service/internal/model"
	"github.com/fekuna/omnipos-tyre-service/internal/sale"
	"github.com/fekuna/omnipos-tyre-service/internal/sale/dto"
	"github.com/fekuna/omnipos-tyre-service/internal/sale/export"
	"github.com/fekuna/omnipos-tyre-service/internal/tyre"
	"github.com/fekuna/omnipos-tyre-service/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type Options struct {
	Cache     tyre.Cache          // optional, tyre list cache to invalidate
	Publisher sale.EventPublisher // optional
	Metrics   sale.Metrics        // optional
	Tracer    trace.Tracer
	Location  *time.Location // business time zone for date filters
}

type saleUseCase struct {
	repo      sale.Repository
	cache     tyre.Cache
	publisher sale.EventPublisher
	metrics   sale.Metrics
	tracer    trace.Tracer
	loc       *time.Location
	logger    logger.ZapLogger
	now       func() time.Time
}

func NewSaleUseCase(repo sale.Repository, opts Options, log logger.ZapLogger) sale.UseCase {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = otel.Tracer("github.com/fekuna/omnipos-tyre-service/internal/sale")
	}
	return &saleUseCase{
		repo:      repo,
		cache:     opts.Cache,
		publisher: opts.Publisher,
		metrics:   opts.Metrics,
		tracer:    tracer,
		loc:       loc,
		logger:    log,
		now:       time.Now,
	}
}

// SellTyre records one sale. The tyre row stays locked from the stock check
// until the ledger row is written, so concurrent sales of the same tyre are
// serialised and stock never goes negative.
func (uc *saleUseCase) SellTyre(ctx context.Context, input *dto.SellTyreInput) (*model.SaleLog, error) {
	ctx, span := uc.tracer.Start(ctx, "sale.SellTyre", trace.WithAttributes(
		attribute.String("tyre.id", input.TyreID),
		attribute.String("sale.shop", input.ShopCode),
		attribute.String("sale.customer_type", input.CustomerType),
		attribute.Int("sale.quantity", input.Quantity),
	))
	defer span.End()

	s, stockLeft, err := uc.sell(ctx, input)
	if err != nil {
		reason := apperr.Reason(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, reason)
		if uc.metrics != nil {
			uc.metrics.SaleRejected(reason)
		}
		if reason == "internal" {
			uc.logger.Error("sale failed", zap.String("tyre_id", input.TyreID), zap.Error(err))
		} else {
			uc.logger.Info("sale rejected", zap.String("tyre_id", input.TyreID), zap.String("reason", reason))
		}
		return nil, err
	}

	span.SetAttributes(attribute.String("sale.id", s.ID), attribute.String("sale.profit", s.Profit.StringFixed(2)))
	uc.logger.Info("sale recorded",
		zap.String("sale_id", s.ID),
		zap.String("tyre_id", s.TyreID),
		zap.String("shop", string(s.ShopCode)),
		zap.String("customer_type", string(s.CustomerType)),
		zap.Int("quantity", s.QuantitySold),
		zap.String("total", s.TotalAmount.StringFixed(2)),
		zap.String("user_id", input.UserID),
	)

	if uc.metrics != nil {
		uc.metrics.SaleRecorded(s.ShopCode, s.CustomerType, s.QuantitySold)
	}
	if uc.cache != nil {
		if err := tyre.InvalidateListCache(ctx, uc.cache); err != nil {
			uc.logger.Error("failed to invalidate tyre list cache", zap.Error(err))
		}
	}
	uc.publishSaleRecorded(ctx, s, stockLeft)

	return s, nil
}

func (uc *saleUseCase) sell(ctx context.Context, input *dto.SellTyreInput) (*model.SaleLog, int, error) {
	if err := input.Validate(); err != nil {
		return nil, 0, err
	}
	if _, err := uuid.Parse(input.TyreID); err != nil {
		return nil, 0, apperr.ErrNotFound
	}

	shop := model.ShopCode(input.ShopCode)
	channel := model.CustomerType(input.CustomerType)

	tx, err := uc.repo.BeginTx(ctx)
	if err != nil {
		return nil, 0, err
	}
	defer tx.Rollback()

	t, err := uc.repo.GetTyreForUpdate(ctx, tx, input.TyreID)
	if err != nil {
		return nil, 0, err
	}
	if t == nil {
		return nil, 0, apperr.ErrNotFound
	}

	available := t.Available(shop)
	if input.Quantity > available {
		return nil, 0, &apperr.InsufficientStockError{Shop: string(shop), Available: available}
	}

	var unitPrice decimal.Decimal
	switch channel {
	case model.CustomerAmazon:
		if !t.AmazonListed || !t.AmazonPrice.Valid {
			return nil, 0, apperr.ErrMissingAmazonPrice
		}
		unitPrice = t.AmazonPrice.Decimal
	case model.CustomerRetail:
		if !input.CustomPrice.Valid {
			return nil, 0, apperr.ErrMissingCustomPrice
		}
		unitPrice = input.CustomPrice.Decimal
	}

	if unitPrice.LessThan(t.InvoicePrice) {
		return nil, 0, &apperr.PriceBelowCostError{InvoicePrice: t.InvoicePrice}
	}

	qty := decimal.NewFromInt(int64(input.Quantity))
	total := unitPrice.Mul(qty)

	s := &model.SaleLog{
		ID:           uuid.New().String(),
		TyreID:       t.ID,
		ShopCode:     shop,
		CustomerType: channel,
		CustomerName: input.CustomerName,
		QuantitySold: input.Quantity,
		UnitPrice:    unitPrice,
		TotalAmount:  total,
		Profit:       total.Sub(t.InvoicePrice.Mul(qty)),
		SoldAt:       uc.now().UTC(),
		TyreBrand:    string(t.Brand),
		TyreModel:    t.ModelWithSize,
		TyreTubeType: string(t.TubeType),
	}
	if input.UserID != "" {
		userID := input.UserID
		s.UpdatedBy = &userID
	}

	if err := uc.repo.DecreaseStock(ctx, tx, t.ID, shop, input.Quantity); err != nil {
		return nil, 0, err
	}
	if err := uc.repo.InsertSale(ctx, tx, s); err != nil {
		return nil, 0, err
	}
	if err := tx.Commit(); err != nil {
		return nil, 0, apperr.Storage("commit sale", err)
	}

	return s, available - input.Quantity, nil
}

func (uc *saleUseCase) publishSaleRecorded(ctx context.Context, s *model.SaleLog, stockLeft int) {
	if uc.publisher == nil {
		return
	}

	event := dto.SaleRecordedEvent{
		EventID:   uuid.New().String(),
		EventType: dto.EventSaleRecorded,
		Timestamp: s.SoldAt,
		Payload: dto.SaleEventPayload{
			SaleID:       s.ID,
			TyreID:       s.TyreID,
			ShopCode:     string(s.ShopCode),
			CustomerType: string(s.CustomerType),
			QuantitySold: s.QuantitySold,
			UnitPrice:    s.UnitPrice.StringFixed(2),
			TotalAmount:  s.TotalAmount.StringFixed(2),
			Profit:       s.Profit.StringFixed(2),
			StockLeft:    stockLeft,
		},
	}
	if s.UpdatedBy != nil {
		event.Payload.UpdatedBy = *s.UpdatedBy
	}

	data, err := json.Marshal(event)
	if err != nil {
		uc.logger.Error("failed to marshal sale event", zap.Error(err))
		return
	}
	// Keyed by tyre so events for one tyre stay ordered on a partition.
	if err := uc.publisher.Publish(ctx, s.TyreID, data); err != nil {
		uc.logger.Error("failed to publish sale event", zap.String("sale_id", s.ID), zap.Error(err))
	}
}

func (uc *saleUseCase) ListSales(ctx context.Context, input *dto.ListSalesInput) ([]model.SaleLog, decimal.Decimal, error) {
	filters, err := input.Validate(uc.loc)
	if err != nil {
		return nil, decimal.Zero, err
	}

	rows, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, decimal.Zero, err
	}

	total := decimal.Zero
	for _, s := range rows {
		total = total.Add(s.Profit)
	}
	return rows, total, nil
}

func (uc *saleUseCase) ExportSales(ctx context.Context, input *dto.ListSalesInput) ([]byte, error) {
	rows, total, err := uc.ListSales(ctx, input)
	if err != nil {
		return nil, err
	}
	return export.Workbook(rows, total, uc.loc)
}
