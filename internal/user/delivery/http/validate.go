package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/tair/user-service/internal/user/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report violations under the json field names the caller sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeAndValidate binds the request body into dto and runs declarative
// validation before any usecase is invoked.
func decodeAndValidate(r *http.Request, dto *domain.UserDTO) error {
	if err := json.NewDecoder(r.Body).Decode(dto); err != nil {
		return &domain.ValidationError{Fields: []domain.FieldError{
			{Field: "body", Reason: "must be valid JSON"},
		}}
	}
	return validateDTO(dto)
}

func validateDTO(dto *domain.UserDTO) error {
	err := validate.Struct(dto)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make([]domain.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, domain.FieldError{
			Field:  fe.Field(),
			Reason: reasonForTag(fe),
		})
	}
	return &domain.ValidationError{Fields: fields}
}

func reasonForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	default:
		return "is invalid"
	}
}
