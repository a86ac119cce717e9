package tyre

import (
	"context"

	"github.com/fekuna/omnipos-tyre-service/internal/model"
	"github.com/fekuna/omnipos-tyre-service/internal/tyre/dto"
)

type Repository interface {
	Create(ctx context.Context, tyre *model.Tyre) error
	FindByID(ctx context.Context, id string) (*model.Tyre, error)
	FindAll(ctx context.Context, filters *dto.TyreFilters) ([]model.Tyre, error)

	// UpdatePricing writes the invoice and Amazon fields only. Stock columns
	// are owned by the sale engine.
	UpdatePricing(ctx context.Context, tyre *model.Tyre) (*model.Tyre, error)

	// DeleteWithSales removes the tyre and its ledger rows in one transaction.
	DeleteWithSales(ctx context.Context, id string) error
}
