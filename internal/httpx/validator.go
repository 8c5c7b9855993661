package httpx

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"olreader/internal/platform/openlibrary"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	_ = validate.RegisterValidation("isbn", validateISBN)
	_ = validate.RegisterValidation("olid", validateOLID)
}

func validateISBN(fl validator.FieldLevel) bool {
	return openlibrary.ValidISBN(fl.Field().String())
}

// validateOLID accepts bare identifiers and "/works/OL1W" style keys.
func validateOLID(fl validator.FieldLevel) bool {
	return openlibrary.ValidID(openlibrary.StripKey(fl.Field().String()))
}

// ValidateStruct returns one detail per failed field, or nil.
func ValidateStruct(s any) []ErrorDetail {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []ErrorDetail{{Field: "", Message: err.Error()}}
	}

	details := make([]ErrorDetail, 0, len(verrs))
	for _, e := range verrs {
		field := e.Field()
		param := e.Param()

		var message string
		switch e.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "min":
			message = fmt.Sprintf("%s must be at least %s", field, param)
		case "max":
			message = fmt.Sprintf("%s must be at most %s", field, param)
		case "isbn":
			message = fmt.Sprintf("%s must be a valid ISBN (10 or 13 digits)", field)
		case "olid":
			message = fmt.Sprintf("%s must be an Open Library identifier such as OL9242915W", field)
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", field, param)
		case "gte", "lte":
			message = fmt.Sprintf("%s must be between %s", field, param)
		default:
			message = fmt.Sprintf("%s is invalid", field)
		}

		details = append(details, ErrorDetail{
			Field:   strings.ToLower(field[:1]) + field[1:],
			Message: message,
		})
	}
	return details
}
