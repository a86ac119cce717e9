package dto

import (
	"strings"
	"time"

	"github.com/fekuna/omnipos-tyre-service/internal/apperr"
	"github.com/fekuna/omnipos-tyre-service/internal/model"
	"github.com/fekuna/omnipos-tyre-service/internal/validation"
	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format accepted by the sales filters.
const DateLayout = "2006-01-02"

type SellTyreInput struct {
	TyreID       string              `json:"-"`
	ShopCode     string              `json:"-"`
	CustomerType string              `json:"customer_type" validate:"required,oneof=Amazon Retail"`
	CustomerName string              `json:"customer_name" validate:"max=100"`
	Quantity     int                 `json:"quantity"`
	CustomPrice  decimal.NullDecimal `json:"custom_price"`
	UserID       string              `json:"-"`
}

// Validate normalises the input in place. Shop and quantity are checked
// first and reported with their own errors.
func (in *SellTyreInput) Validate() error {
	in.ShopCode = strings.ToUpper(strings.TrimSpace(in.ShopCode))
	if !model.ShopCode(in.ShopCode).Valid() {
		return apperr.ErrInvalidShop
	}
	if in.Quantity < 1 {
		return apperr.ErrInvalidQuantity
	}

	in.CustomerName = strings.TrimSpace(in.CustomerName)

	var verr apperr.ValidationError
	validation.Struct(&verr, in)
	if in.CustomPrice.Valid {
		validation.Money(&verr, "custom_price", in.CustomPrice.Decimal)
	}
	if err := verr.OrNil(); err != nil {
		return err
	}

	if model.CustomerType(in.CustomerType) != model.CustomerRetail {
		in.CustomerName = ""
	}
	return nil
}

type ListSalesInput struct {
	StartDate    string `form:"start_date"`
	EndDate      string `form:"end_date"`
	ShopCode     string `form:"shop"`
	CustomerType string `form:"type"`
}

// Validate resolves the calendar dates in loc. The end date is inclusive, so
// the upper bound is the following midnight.
func (in *ListSalesInput) Validate(loc *time.Location) (*SaleFilters, error) {
	var verr apperr.ValidationError
	f := &SaleFilters{}

	if in.StartDate != "" {
		d, err := time.ParseInLocation(DateLayout, in.StartDate, loc)
		if err != nil {
			verr.Add("start_date", "must be a date in YYYY-MM-DD format")
		} else {
			f.From = &d
		}
	}
	if in.EndDate != "" {
		d, err := time.ParseInLocation(DateLayout, in.EndDate, loc)
		if err != nil {
			verr.Add("end_date", "must be a date in YYYY-MM-DD format")
		} else {
			next := d.AddDate(0, 0, 1)
			f.To = &next
		}
	}

	if in.ShopCode != "" {
		shop := strings.ToUpper(in.ShopCode)
		if !model.ShopCode(shop).Valid() {
			verr.Add("shop", "must be one of: TS, GS")
		}
		f.ShopCode = shop
	}
	if in.CustomerType != "" {
		if !model.CustomerType(in.CustomerType).Valid() {
			verr.Add("type", "must be one of: Amazon, Retail")
		}
		f.CustomerType = in.CustomerType
	}

	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return f, nil
}
