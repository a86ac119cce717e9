package sale

import (
	"context"

	"github.com/fekuna/omnipos-tyre-service/internal/model"
	"github.com/fekuna/omnipos-tyre-service/internal/sale/dto"
)

// Tx is a unit of work opened by BeginTx. Every statement of one sale runs
// inside the same Tx.
type Tx interface {
	Commit() error
	Rollback() error
}

type Repository interface {
	BeginTx(ctx context.Context) (Tx, error)

	// GetTyreForUpdate locks the tyre row until tx ends. Returns nil, nil
	// when the tyre does not exist.
	GetTyreForUpdate(ctx context.Context, tx Tx, tyreID string) (*model.Tyre, error)
	DecreaseStock(ctx context.Context, tx Tx, tyreID string, shop model.ShopCode, qty int) error
	InsertSale(ctx context.Context, tx Tx, s *model.SaleLog) error

	// Ledger
	FindAll(ctx context.Context, filters *dto.SaleFilters) ([]model.SaleLog, error)
}
