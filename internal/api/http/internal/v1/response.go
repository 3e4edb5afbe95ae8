package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/esp-integration/backend/internal/esp"
	"github.com/esp-integration/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Every response leaves through one of these two shapes. The envelope is a
// boundary concern only: the service layer returns plain results and
// classified errors, the wrapping happens here.

type successEnvelope struct {
	Success  bool   `json:"success"`
	Provider string `json:"provider,omitempty"`
	Data     any    `json:"data"`
} // @name SuccessEnvelope

type errorEnvelope struct {
	Success bool      `json:"success"`
	Error   errorBody `json:"error"`
} // @name ErrorEnvelope

type errorBody struct {
	StatusCode int    `json:"statusCode"`
	Path       string `json:"path"`
	Message    string `json:"message"`
}

func successResponse(c *gin.Context, provider string, data any) {
	c.JSON(http.StatusOK, successEnvelope{
		Success:  true,
		Provider: provider,
		Data:     data,
	})
}

// errorResponse turns any error escaping the orchestrator into a stable
// (status, message) pair. Classification is total, so the default arm only
// catches programming mistakes.
func errorResponse(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	var espErr *esp.Error
	switch {
	case errors.Is(err, service.ErrIntegrationNotFound):
		status = http.StatusNotFound
		message = service.ErrIntegrationNotFound.Error()
	case errors.As(err, &espErr):
		status = espErr.HTTPStatus()
		message = espErr.Message
	}

	c.AbortWithStatusJSON(status, errorEnvelope{
		Error: errorBody{
			StatusCode: status,
			Path:       c.Request.URL.Path,
			Message:    message,
		},
	})
}

type validationError struct {
	FieldKey     string `json:"field_key"`
	ErrorMessage string `json:"error_message"`
}

type validationErrorBody struct {
	StatusCode int               `json:"statusCode"`
	Path       string            `json:"path"`
	Message    string            `json:"message"`
	Errors     []validationError `json:"validation_errors"`
}

func validationErrorResponse(c *gin.Context, err error) {
	body := validationErrorBody{
		StatusCode: http.StatusBadRequest,
		Path:       c.Request.URL.Path,
		Message:    "validation error",
	}

	var verr validator.ValidationErrors
	if errors.As(err, &verr) {
		out := make([]validationError, len(verr))
		for i, ferr := range verr {
			out[i] = validationError{ferr.Field(), msgForTag(ferr.Tag(), ferr.Param())}
		}
		body.Errors = out
	} else {
		body.Message = err.Error()
	}

	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   body,
	})
}

func msgForTag(tag string, value string) string {
	switch tag {
	case "required":
		return "this field is required"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", value)
	case "min":
		return fmt.Sprintf("minimum length is %s", value)
	case "max":
		return fmt.Sprintf("maximum length is %s", value)
	}
	return tag
}
