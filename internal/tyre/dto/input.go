package dto

import (
	"strings"

	"github.com/fekuna/omnipos-tyre-service/internal/apperr"
	"github.com/fekuna/omnipos-tyre-service/internal/model"
	"github.com/fekuna/omnipos-tyre-service/internal/validation"
	"github.com/shopspring/decimal"
)

type CreateTyreInput struct {
	Brand         string              `json:"brand" validate:"required,oneof=CEAT APOLLO JK"`
	ModelWithSize string              `json:"model_with_size" validate:"required,max=150"`
	TubeType      string              `json:"tube_type" validate:"required,oneof=Tube Tubeless"`
	QuantityTS    int                 `json:"quantity_ts" validate:"min=0"`
	QuantityGS    int                 `json:"quantity_gs" validate:"min=0"`
	InvoicePrice  decimal.NullDecimal `json:"invoice_price"`
	AmazonListed  bool                `json:"amazon_listed"`
	AmazonPrice   decimal.NullDecimal `json:"amazon_price"`
	UserID        string              `json:"-"`
}

// Validate returns the tyre to persist, without id or timestamps.
func (in *CreateTyreInput) Validate() (*model.Tyre, error) {
	in.ModelWithSize = strings.TrimSpace(in.ModelWithSize)

	var verr apperr.ValidationError
	validation.Struct(&verr, in)
	validation.RequiredMoney(&verr, "invoice_price", in.InvoicePrice)
	amazonPrice := validation.AmazonPrice(&verr, in.AmazonListed, in.AmazonPrice)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	return &model.Tyre{
		Brand:         model.Brand(in.Brand),
		ModelWithSize: in.ModelWithSize,
		TubeType:      model.TubeType(in.TubeType),
		QuantityTS:    in.QuantityTS,
		QuantityGS:    in.QuantityGS,
		InvoicePrice:  in.InvoicePrice.Decimal,
		AmazonListed:  in.AmazonListed,
		AmazonPrice:   amazonPrice,
	}, nil
}

// EditTyreInput covers the fields editable after creation.
type EditTyreInput struct {
	ID           string              `json:"-"`
	InvoicePrice decimal.NullDecimal `json:"invoice_price"`
	AmazonListed bool                `json:"amazon_listed"`
	AmazonPrice  decimal.NullDecimal `json:"amazon_price"`
	UserID       string              `json:"-"`
}

type Pricing struct {
	InvoicePrice decimal.Decimal
	AmazonListed bool
	AmazonPrice  decimal.NullDecimal
}

func (in *EditTyreInput) Validate() (*Pricing, error) {
	var verr apperr.ValidationError
	validation.RequiredMoney(&verr, "invoice_price", in.InvoicePrice)
	amazonPrice := validation.AmazonPrice(&verr, in.AmazonListed, in.AmazonPrice)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	return &Pricing{
		InvoicePrice: in.InvoicePrice.Decimal,
		AmazonListed: in.AmazonListed,
		AmazonPrice:  amazonPrice,
	}, nil
}

type DeleteTyreInput struct {
	ID     string
	UserID string
}
