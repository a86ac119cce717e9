package sale

import (
	"context"

	"github.com/fekuna/omnipos-tyre-service/internal/model"
	"github.com/fekuna/omnipos-tyre-service/internal/sale/dto"
	"github.com/shopspring/decimal"
)

type UseCase interface {
	SellTyre(ctx context.Context, input *dto.SellTyreInput) (*model.SaleLog, error)
	ListSales(ctx context.Context, input *dto.ListSalesInput) ([]model.SaleLog, decimal.Decimal, error)
	ExportSales(ctx context.Context, input *dto.ListSalesInput) ([]byte, error)
}

// EventPublisher sends domain events to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, key string, value []byte) error
}

// Metrics records sale outcomes.
type Metrics interface {
	SaleRecorded(shop model.ShopCode, channel model.CustomerType, qty int)
	SaleRejected(reason string)
}
