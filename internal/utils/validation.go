package utils

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Validate performs validation on a struct.
func Validate(s interface{}) error {
	validate := validator.New()
	return validate.Struct(s)
}

// ValidationErrorMap flattens validator errors into a field to message map
// matching the Errors part of the response envelope.
func ValidationErrorMap(err error) map[string]string {
	fields := make(map[string]string)
	if errs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range errs {
			field := strings.ToLower(e.Field()[:1]) + e.Field()[1:]
			switch e.Tag() {
			case "required":
				fields[field] = "This field is required."
			case "email":
				fields[field] = "Must be a valid email address."
			case "uuid":
				fields[field] = "Must be a valid identifier."
			case "oneof":
				fields[field] = "Must be one of: " + e.Param() + "."
			case "min":
				fields[field] = "Must be at least " + e.Param() + "."
			case "max":
				fields[field] = "Must not exceed " + e.Param() + "."
			default:
				fields[field] = "Invalid value."
			}
		}
	}
	return fields
}

// BindAndValidate binds the request body to a struct and validates it.
// If binding or validation fails, it sends a BadRequest response carrying
// per-field errors where available and returns false.
func BindAndValidate(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		if fields := ValidationErrorMap(err); len(fields) > 0 {
			FieldErrors(c, http.StatusBadRequest, "Validation failed", fields)
		} else {
			BadRequest(c, "Invalid request payload: "+err.Error())
		}
		return false
	}
	if err := Validate(obj); err != nil {
		if fields := ValidationErrorMap(err); len(fields) > 0 {
			FieldErrors(c, http.StatusBadRequest, "Validation failed", fields)
			return false
		}
		BadRequest(c, "Validation failed: "+err.Error())
		return false
	}
	return true
}
