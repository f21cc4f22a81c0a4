package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func BindJson(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			validationErrorResponse(c, bindingFieldErrors(vErrs))
			return err
		}
		errorResponse(c, http.StatusBadRequest, "Invalid request format", nil)
		return err
	}
	return nil
}

func BindQuery(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindQuery(obj); err != nil {
		errorResponse(c, http.StatusBadRequest, "Invalid request format", nil)
		return err
	}
	return nil
}

// bindingFieldErrors turns validator failures into the field-keyed message
// map the envelope expects under "errors".
func bindingFieldErrors(vErrs validator.ValidationErrors) map[string][]string {
	out := make(map[string][]string)
	for _, fieldErr := range vErrs {
		field := strings.ToLower(fieldErr.Field())
		out[field] = append(out[field], fieldErrorMessage(field, fieldErr.Tag()))
	}
	return out
}

func fieldErrorMessage(field, tag string) string {
	switch tag {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "email":
		return "Please provide a valid email address."
	case "max":
		return fmt.Sprintf("The %s may not be greater than 255 characters.", field)
	default:
		return fmt.Sprintf("The %s field is invalid.", field)
	}
}
