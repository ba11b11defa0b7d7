package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorBody is the JSON shape of jar endpoint failures.
type ErrorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ResultBody is the JSON shape of the contact endpoint.
type ResultBody struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Error   string            `json:"error,omitempty"`
	Fields  []ValidationError `json:"fields,omitempty"`
}

// ValidationError represents validation error detail.
type ValidationError struct {
	Code    string                 `json:"code,omitempty" example:"ERR_REQUIRED"`
	Field   string                 `json:"field,omitempty" example:"name"`
	Message string                 `json:"message,omitempty" example:"name is required"`
	Params  map[string]interface{} `json:"params,omitempty"`
}

// SuccessResponse writes 200 with the payload as-is.
func SuccessResponse(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

// ErrorResponse writes {"error", "details"} with the given status.
func ErrorResponse(c echo.Context, status int, message, details string) error {
	return c.JSON(status, ErrorBody{Error: message, Details: details})
}

// AppErrorResponse writes application error response.
func AppErrorResponse(c echo.Context, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return ErrorResponse(c, appErr.Status, appErr.Message, appErr.Details)
	}
	return InternalServerErrorResponse(c)
}

// InternalServerErrorResponse writes internal server error.
func InternalServerErrorResponse(c echo.Context) error {
	return ErrorResponse(c, http.StatusInternalServerError, "Server error", "")
}

// ResultResponse writes the success/failure envelope used by form endpoints.
func ResultResponse(c echo.Context, status int, body ResultBody) error {
	return c.JSON(status, body)
}
