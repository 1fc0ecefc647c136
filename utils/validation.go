package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors converts a binding failure into a field → message map so
// clients get per-field detail instead of one opaque string.
func FieldErrors(err error) map[string]string {
	out := map[string]string{}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["_"] = err.Error()
		return out
	}

	for _, fe := range verrs {
		field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
		switch fe.Tag() {
		case "required":
			out[field] = "is required"
		case "email":
			out[field] = "must be a valid email address"
		case "min":
			out[field] = fmt.Sprintf("must be at least %s characters", fe.Param())
		case "max":
			out[field] = fmt.Sprintf("must be at most %s characters", fe.Param())
		case "gte":
			out[field] = fmt.Sprintf("must be %s or more", fe.Param())
		case "lte":
			out[field] = fmt.Sprintf("must be %s or less", fe.Param())
		default:
			out[field] = fmt.Sprintf("failed %s validation", fe.Tag())
		}
	}
	return out
}
