package dto

import (
	"testing"

	"github.com/fekuna/omnipos-tyre-service/internal/apperr"
	"github.com/fekuna/omnipos-tyre-service/internal/model"
	"github.com/fekuna/omnipos-tyre-service/internal/validation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func validCreateInput() *CreateTyreInput {
	return &CreateTyreInput{
		Brand:         "CEAT",
		ModelWithSize: "  Secura Drive 195/55 R16 ",
		TubeType:      "Tubeless",
		QuantityTS:    5,
		QuantityGS:    2,
		InvoicePrice:  money("1000"),
		AmazonListed:  true,
		AmazonPrice:   money("1200"),
	}
}

func TestCreateTyreInput_Validate(t *testing.T) {
	tyre, err := validCreateInput().Validate()
	require.NoError(t, err)

	assert.Equal(t, model.BrandCEAT, tyre.Brand)
	assert.Equal(t, "Secura Drive 195/55 R16", tyre.ModelWithSize)
	assert.Equal(t, model.TubeTypeTubeless, tyre.TubeType)
	assert.Equal(t, 5, tyre.QuantityTS)
	assert.Equal(t, 2, tyre.QuantityGS)
	assert.True(t, tyre.InvoicePrice.Equal(decimal.NewFromInt(1000)))
	assert.True(t, tyre.AmazonPrice.Valid)
}

func TestCreateTyreInput_AmazonPriceRequired(t *testing.T) {
	in := validCreateInput()
	in.AmazonPrice = decimal.NullDecimal{}

	tyre, err := in.Validate()

	assert.Nil(t, tyre)
	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, validation.AmazonPriceRequired, verr.Fields[0].Message)
}

func TestCreateTyreInput_NotListedDropsAmazonPrice(t *testing.T) {
	in := validCreateInput()
	in.AmazonListed = false

	tyre, err := in.Validate()

	require.NoError(t, err)
	assert.False(t, tyre.AmazonPrice.Valid)
}

func TestCreateTyreInput_FieldErrors(t *testing.T) {
	in := &CreateTyreInput{
		Brand:      "MRF",
		TubeType:   "Radial",
		QuantityTS: -1,
	}

	_, err := in.Validate()

	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)
	fields := map[string]bool{}
	for _, f := range verr.Fields {
		fields[f.Field] = true
	}
	for _, want := range []string{"brand", "model_with_size", "tube_type", "quantity_ts", "invoice_price"} {
		assert.True(t, fields[want], want)
	}
}

func TestEditTyreInput_Validate(t *testing.T) {
	in := &EditTyreInput{
		ID:           "id",
		InvoicePrice: money("950.50"),
		AmazonListed: true,
	}
	_, err := in.Validate()
	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)

	in.AmazonPrice = money("1100")
	pricing, err := in.Validate()
	require.NoError(t, err)
	assert.Equal(t, "950.5", pricing.InvoicePrice.String())
	assert.True(t, pricing.AmazonListed)
	assert.Equal(t, "1100", pricing.AmazonPrice.Decimal.String())
}
