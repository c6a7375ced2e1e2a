package http

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-2xx answer. Code is stable and machine-readable.
type ErrorResponse struct {
	Error   string       `json:"error"`
	Code    string       `json:"code"`
	Details []FieldError `json:"details,omitempty"`
}

var reHex32 = regexp.MustCompile(`^[a-f0-9]{32}$`)

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()

	// Report json names, not Go field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// Decimals are validated through their canonical string form.
	v.RegisterCustomTypeFunc(func(f reflect.Value) any {
		if d, ok := f.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	// entity ids = 32-char lowercase hex
	_ = v.RegisterValidation("hex32", func(fl validator.FieldLevel) bool {
		return reHex32.MatchString(fl.Field().String())
	})
	// decN: at most N decimal places (money is dec2, liters dec3, unit prices dec4)
	_ = v.RegisterValidation("dec2", maxPlaces(2))
	_ = v.RegisterValidation("dec3", maxPlaces(3))
	_ = v.RegisterValidation("dec4", maxPlaces(4))

	return &CustomValidator{v: v}
}

func maxPlaces(n int32) validator.Func {
	return func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && d.Equal(d.Round(n))
	}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// ToFieldErrors maps validator.ValidationErrors to readable field messages.
func ToFieldErrors(err error) []FieldError {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		field := e.Field()
		var msg string
		switch e.Tag() {
		case "required":
			msg = "is required"
		case "hex32":
			msg = "must be 32-char lowercase hex"
		case "dec2", "dec3", "dec4":
			msg = "must have at most " + strings.TrimPrefix(e.Tag(), "dec") + " decimal places"
		case "email":
			msg = "must be a valid email address"
		case "oneof":
			msg = "must be one of " + strings.ReplaceAll(e.Param(), " ", ", ")
		case "datetime":
			msg = "must match layout " + e.Param()
		case "max":
			msg = "must be at most " + e.Param() + " characters"
		case "gte":
			msg = "must be greater than or equal to " + e.Param()
		case "lte":
			msg = "must be less than or equal to " + e.Param()
		default:
			msg = e.Tag() + " validation failed"
		}
		out = append(out, FieldError{Field: field, Message: msg})
	}
	return out
}
