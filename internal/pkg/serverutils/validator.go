package serverutils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidationError carries the field-level messages for a 400 response.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}

func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		invalid, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		fields := make([]string, 0, len(invalid))
		for _, f := range invalid {
			fields = append(fields, fmt.Sprintf("%s failed on '%s'", f.Field(), f.Tag()))
		}
		return &ValidationError{Fields: fields}
	}
	return nil
}
