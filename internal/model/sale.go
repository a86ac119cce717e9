package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type CustomerType string

const (
	CustomerAmazon CustomerType = "Amazon"
	CustomerRetail CustomerType = "Retail"
)

func (c CustomerType) Valid() bool {
	return c == CustomerAmazon || c == CustomerRetail
}

// SaleLog is one immutable ledger row. Prices are captured at the time of sale.
type SaleLog struct {
	ID           string          `db:"id" json:"id"`
	TyreID       string          `db:"tyre_id" json:"tyre_id"`
	ShopCode     ShopCode        `db:"shop_code" json:"shop_code"`
	CustomerType CustomerType    `db:"customer_type" json:"customer_type"`
	CustomerName string          `db:"customer_name" json:"customer_name"`
	QuantitySold int             `db:"quantity_sold" json:"quantity_sold"`
	UnitPrice    decimal.Decimal `db:"unit_price" json:"unit_price"`
	TotalAmount  decimal.Decimal `db:"total_amount" json:"total_amount"`
	Profit       decimal.Decimal `db:"profit" json:"profit"`
	SoldAt       time.Time       `db:"sold_at" json:"sold_at"`
	UpdatedBy    *string         `db:"updated_by" json:"updated_by"`

	// Joined from tyres on read.
	TyreBrand    string `db:"tyre_brand" json:"tyre_brand,omitempty"`
	TyreModel    string `db:"tyre_model" json:"tyre_model,omitempty"`
	TyreTubeType string `db:"tyre_tube_type" json:"tyre_tube_type,omitempty"`
}
