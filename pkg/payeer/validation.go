package payeer

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/amirasaad/payeer/pkg/currency"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	amountPattern       = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
	decimalPattern      = regexp.MustCompile(`^\d+(\.\d+)?$`)
	currencyCodePattern = regexp.MustCompile(`^[A-Z]{3,5}$`)
)

// NormalizeAmount checks that amount is a positive decimal with at most two
// fraction digits and returns it with exactly two, e.g. "10" -> "10.00".
func NormalizeAmount(amount string) (string, error) {
	amount = strings.TrimSpace(amount)
	if !amountPattern.MatchString(amount) {
		return "", &ValidationError{Field: "amount", Reason: "must be a decimal with at most 2 fraction digits"}
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return "", &ValidationError{Field: "amount", Reason: "not a number", Err: err}
	}
	if !d.IsPositive() {
		return "", &ValidationError{Field: "amount", Reason: "must be positive"}
	}
	return d.StringFixed(2), nil
}

// IsPositiveDecimal reports whether s is a plain positive decimal of any precision.
func IsPositiveDecimal(s string) bool {
	if !decimalPattern.MatchString(s) {
		return false
	}
	d, err := decimal.NewFromString(s)
	return err == nil && d.IsPositive()
}

// NewValidator returns a validator with the payeer tags registered:
//
//	amount   positive decimal, at most 2 fraction digits
//	decimal  positive decimal
//	currency code in currencies, or any 3-5 letter code when currencies is nil
//	language a merchant page language
//	wallet   P followed by 7-12 digits
//
// Field names in errors come from the json tag.
func NewValidator(currencies *currency.CurrencyRegistry) *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("amount", func(fl validator.FieldLevel) bool {
		_, err := NormalizeAmount(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("decimal", func(fl validator.FieldLevel) bool {
		return IsPositiveDecimal(fl.Field().String())
	})
	_ = v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
		code := fl.Field().String()
		if currencies == nil {
			return currencyCodePattern.MatchString(code)
		}
		return currencies.IsSupported(code)
	})
	_ = v.RegisterValidation("language", func(fl validator.FieldLevel) bool {
		return IsLanguage(fl.Field().String())
	})
	_ = v.RegisterValidation("wallet", func(fl validator.FieldLevel) bool {
		return ValidateWallet(fl.Field().String()) == nil
	})
	return v
}

// ValidateStruct runs v against s and converts the first failure into a *ValidationError.
func ValidateStruct(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Field: "request", Reason: err.Error(), Err: err}
	}
	fe := fieldErrs[0]
	verr := &ValidationError{Field: fe.Field(), Reason: reasonFor(fe)}
	if fe.Tag() == "wallet" {
		verr.Err = ErrInvalidWallet
	}
	return verr
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "amount":
		return "must be a positive decimal with at most 2 fraction digits"
	case "decimal":
		return "must be a positive decimal"
	case "currency":
		return "unsupported currency"
	case "language":
		return "unsupported language"
	case "wallet":
		return "must be P followed by 7 to 12 digits"
	case "oneof":
		return "must be one of " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	default:
		return "failed " + fe.Tag()
	}
}
