// Package validation holds the shared rules used by every request DTO. All
// functions are pure: they only append to the supplied ValidationError.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/fekuna/omnipos-tyre-service/internal/apperr"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const AmazonPriceRequired = "Amazon price is required if the tyre is listed on Amazon."

// maxMoney is the first value that no longer fits NUMERIC(10,2).
var maxMoney = decimal.New(1, 8)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Struct runs the `validate` tag rules of s.
func Struct(verr *apperr.ValidationError, s any) {
	err := validate.Struct(s)
	if err == nil {
		return
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		verr.Add("", err.Error())
		return
	}
	for _, fe := range fieldErrs {
		verr.Add(fe.Field(), message(fe))
	}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	}
	return fmt.Sprintf("failed %q rule", fe.Tag())
}

// Money checks a currency amount against NUMERIC(10,2): non-negative, at most
// two decimal places and eight integer digits.
func Money(verr *apperr.ValidationError, field string, d decimal.Decimal) {
	switch {
	case d.IsNegative():
		verr.Add(field, "must not be negative")
	case !d.Equal(d.Round(2)):
		verr.Add(field, "must have no more than 2 decimal places")
	case d.GreaterThanOrEqual(maxMoney):
		verr.Add(field, "must have no more than 10 digits in total")
	}
}

// RequiredMoney is Money for a field that must be present.
func RequiredMoney(verr *apperr.ValidationError, field string, d decimal.NullDecimal) {
	if !d.Valid {
		verr.Add(field, "this field is required")
		return
	}
	Money(verr, field, d.Decimal)
}

// AmazonPrice enforces amazon_listed => amazon_price present. It returns the
// price to store: nil when the tyre is not listed.
func AmazonPrice(verr *apperr.ValidationError, listed bool, price decimal.NullDecimal) decimal.NullDecimal {
	if !listed {
		return decimal.NullDecimal{}
	}
	if !price.Valid {
		verr.Add("", AmazonPriceRequired)
		return decimal.NullDecimal{}
	}
	Money(verr, "amazon_price", price.Decimal)
	return price
}
