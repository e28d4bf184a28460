package validate

import (
	"reflect"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	TagPrice      = "price"
	TagCardNumber = "cardnumber"
	TagCardExpiry = "cardexpiry"
	TagCardCvc    = "cardcvc"
)

var (
	cardNumberRegex = regexp.MustCompile(`^\d{4} \d{4} \d{4} \d{4}$`)
	cardExpiryRegex = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cardCvcRegex    = regexp.MustCompile(`^\d{3,4}$`)
)

// New returns a validator with the storefront's custom tags registered.
func New() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterCustomTypeFunc(PriceValue, decimal.Decimal{})
	_ = validate.RegisterValidation(TagPrice, ValidatePrice)
	_ = validate.RegisterValidation(TagCardNumber, matches(cardNumberRegex))
	_ = validate.RegisterValidation(TagCardExpiry, matches(cardExpiryRegex))
	_ = validate.RegisterValidation(TagCardCvc, matches(cardCvcRegex))
	return validate
}

// ValidatePrice accepts non-negative decimal strings.
func ValidatePrice(fl validator.FieldLevel) bool {
	value, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return false
	}
	return !d.IsNegative()
}

// PriceValue exposes decimals to the validator as strings.
func PriceValue(v reflect.Value) interface{} {
	n, ok := v.Interface().(decimal.Decimal)
	if !ok {
		return nil
	}
	return n.String()
}

func matches(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}
