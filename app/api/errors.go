package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/lysyi3m/space-prime/app/catalog"
	"github.com/lysyi3m/space-prime/app/imagery"
	"github.com/lysyi3m/space-prime/app/news"
)

const internalErrorMessage = "Something went wrong on our end, please try again later."

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError rejects caller input before any provider call.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "invalid request: " + strings.Join(parts, "; ")
}

func fieldError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

type errorBody struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

var registerTagName sync.Once

// useFormTagNames makes validator report query parameter names.
func useFormTagNames() {
	registerTagName.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(func(field reflect.StructField) string {
				name, _, _ := strings.Cut(field.Tag.Get("form"), ",")
				if name == "" || name == "-" {
					return field.Name
				}
				return name
			})
		}
	})
}

func bindQuery(c *gin.Context, obj any) error {
	err := c.ShouldBindQuery(obj)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fieldError("query", err.Error())
	}

	fields := make([]FieldError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fields = append(fields, FieldError{Field: fe.Field(), Message: validationMessage(fe)})
	}
	return &ValidationError{Fields: fields}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "min":
		return "must be at least " + fe.Param()
	default:
		return fmt.Sprintf("failed on '%s'", fe.Tag())
	}
}

func (h *Handler) respondError(c *gin.Context, err error) {
	var validationErr *ValidationError
	var catalogErr *catalog.Error

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": errorBody{
			Code:    "validation_error",
			Message: "Invalid request parameters",
			Fields:  validationErr.Fields,
		}})
	case errors.Is(err, imagery.ErrNoMatchingCameras):
		c.JSON(http.StatusNotFound, gin.H{"error": errorBody{
			Code:    "not_found",
			Message: "None of the requested cameras is mounted on the requested rovers.",
		}})
	case errors.As(err, &catalogErr):
		slog.Error("Catalog error", "path", c.Request.URL.Path, "error", err)
		h.internalError(c)
	case errors.Is(err, imagery.ErrProvidersUnavailable), errors.Is(err, news.ErrSourcesUnavailable):
		slog.Error("Providers unavailable", "path", c.Request.URL.Path, "error", err)
		h.internalError(c)
	default:
		slog.Error("Request failed", "path", c.Request.URL.Path, "error", err)
		h.internalError(c)
	}
}

func (h *Handler) internalError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": errorBody{
		Code:    "internal_error",
		Message: internalErrorMessage,
	}})
}
