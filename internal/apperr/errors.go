package apperr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound           = errors.New("tyre not found")
	ErrInvalidShop        = errors.New("unknown shop, use TS or GS")
	ErrInvalidQuantity    = errors.New("enter a valid quantity (> 0)")
	ErrMissingAmazonPrice = errors.New("this tyre is not listed on Amazon or Amazon price is missing")
	ErrMissingCustomPrice = errors.New("enter custom price for retail sale")
	ErrUnauthorized       = errors.New("invalid username or password")

	// Storage failures. Repositories wrap the driver error with one of these.
	ErrUnavailable = errors.New("storage unavailable")
	ErrIntegrity   = errors.New("storage integrity violation")
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every field-level problem found in one request.
// An empty Field marks a rule that spans several fields.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// OrNil returns nil when no field errors were collected.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		if f.Field == "" {
			parts = append(parts, f.Message)
			continue
		}
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

type InsufficientStockError struct {
	Shop      string
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough stock in %s, available: %d", ShopName(e.Shop), e.Available)
}

type PriceBelowCostError struct {
	InvoicePrice decimal.Decimal
}

func (e *PriceBelowCostError) Error() string {
	return fmt.Sprintf("unit price cannot be less than invoice price (%s)", e.InvoicePrice.StringFixed(2))
}

// ShopName maps a shop code to the branch name used in messages.
func ShopName(code string) string {
	switch code {
	case "TS":
		return "Tirupur"
	case "GS":
		return "Gobi"
	}
	return code
}

// Reason returns a short, stable label for a sale rejection, used for metrics.
func Reason(err error) string {
	var stock *InsufficientStockError
	var floor *PriceBelowCostError
	var invalid *ValidationError
	switch {
	case errors.As(err, &stock):
		return "insufficient_stock"
	case errors.As(err, &floor):
		return "price_below_cost"
	case errors.As(err, &invalid):
		return "validation"
	case errors.Is(err, ErrInvalidShop):
		return "invalid_shop"
	case errors.Is(err, ErrInvalidQuantity):
		return "invalid_quantity"
	case errors.Is(err, ErrMissingAmazonPrice):
		return "missing_amazon_price"
	case errors.Is(err, ErrMissingCustomPrice):
		return "missing_custom_price"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	}
	return "internal"
}
