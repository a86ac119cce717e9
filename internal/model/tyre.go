package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type Brand string

const (
	BrandCEAT   Brand = "CEAT"
	BrandApollo Brand = "APOLLO"
	BrandJK     Brand = "JK"
)

var Brands = []Brand{BrandCEAT, BrandApollo, BrandJK}

type TubeType string

const (
	TubeTypeTube     TubeType = "Tube"
	TubeTypeTubeless TubeType = "Tubeless"
)

// ShopCode identifies one of the two physical stock locations.
type ShopCode string

const (
	ShopTirupur ShopCode = "TS"
	ShopGobi    ShopCode = "GS"
)

func (s ShopCode) Valid() bool {
	return s == ShopTirupur || s == ShopGobi
}

// StockColumn is the tyres column holding this shop's quantity. Only valid
// codes map to a column.
func (s ShopCode) StockColumn() (string, bool) {
	switch s {
	case ShopTirupur:
		return "quantity_ts", true
	case ShopGobi:
		return "quantity_gs", true
	}
	return "", false
}

type Tyre struct {
	BaseModel
	Brand         Brand               `db:"brand" json:"brand"`
	ModelWithSize string              `db:"model_with_size" json:"model_with_size"` // e.g. "Secura Drive 195/55 R16"
	TubeType      TubeType            `db:"tube_type" json:"tube_type"`
	QuantityTS    int                 `db:"quantity_ts" json:"quantity_ts"`
	QuantityGS    int                 `db:"quantity_gs" json:"quantity_gs"`
	InvoicePrice  decimal.Decimal     `db:"invoice_price" json:"invoice_price"`
	AmazonListed  bool                `db:"amazon_listed" json:"amazon_listed"`
	AmazonPrice   decimal.NullDecimal `db:"amazon_price" json:"amazon_price"`
}

// Available returns the stock held at shop.
func (t *Tyre) Available(shop ShopCode) int {
	if shop == ShopGobi {
		return t.QuantityGS
	}
	return t.QuantityTS
}

func (t *Tyre) String() string {
	return fmt.Sprintf("%s - %s (%s)", t.Brand, t.ModelWithSize, t.TubeType)
}
