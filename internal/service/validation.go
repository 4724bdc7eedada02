package service

import (
	"errors"
	"reflect"

	"inventory-dashboard/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// decimal.Decimal is validated through its float value so numeric tags
	// such as gte apply to prices.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	return v
}

var productFieldLabels = map[string]string{
	"Name":       "product name",
	"Quantity":   "quantity",
	"Price":      "price",
	"CategoryID": "category",
}

// validateNewProduct checks a product insert and returns the first
// violation as a validation error.
func validateNewProduct(p model.NewProduct) error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	var violations validator.ValidationErrors
	if !errors.As(err, &violations) || len(violations) == 0 {
		return model.NewValidationError("invalid product: %v", err)
	}

	fe := violations[0]
	label := productFieldLabels[fe.Field()]
	if label == "" {
		label = fe.Field()
	}

	switch fe.Tag() {
	case "required":
		return model.NewValidationError("%s is required", label)
	case "gte":
		return model.NewValidationError("%s must not be negative", label)
	case "lte", "lt":
		return model.NewValidationError("%s is too large", label)
	case "gt":
		return model.NewValidationError("%s must be selected", label)
	default:
		return model.NewValidationError("%s is invalid", label)
	}
}
