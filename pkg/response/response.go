package response

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	apperrors "studymarket/pkg/errors"
	"studymarket/pkg/logger"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Error      string `json:"error"`
}

type PaginatedResponse struct {
	Items      interface{} `json:"items"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalItems int         `json:"totalItems"`
}

func Success(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

func Created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, data)
}

func Paginated(c echo.Context, items interface{}, count, page, pageSize int) error {
	return c.JSON(http.StatusOK, PaginatedResponse{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: count,
	})
}

func Error(c echo.Context, err error) error {
	status, message := Resolve(err)
	return c.JSON(status, ErrorResponse{
		StatusCode: status,
		Message:    message,
		Error:      http.StatusText(status),
	})
}

// Resolve maps err onto the status code and client-safe message it is reported with.
func Resolve(err error) (int, string) {
	var validationErr validator.ValidationErrors
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, validationMessage(validationErr)
	}

	if appErr, ok := apperrors.As(err); ok {
		if appErr.Status >= http.StatusInternalServerError {
			logger.Error("%s: %v", appErr.Message, appErr.Err)
			return appErr.Status, http.StatusText(appErr.Status)
		}
		return appErr.Status, appErr.Message
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if msg, ok := httpErr.Message.(string); ok {
			return httpErr.Code, msg
		}
		return httpErr.Code, http.StatusText(httpErr.Code)
	}

	logger.Error("unhandled error: %v", err)
	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}

func validationMessage(validationErr validator.ValidationErrors) string {
	for _, err := range validationErr {
		field := err.Field()
		param := err.Param()

		switch err.Tag() {
		case "required":
			return field + " is required"
		case "min", "gte":
			return field + " must be at least " + param
		case "max", "lte":
			return field + " must be at most " + param
		case "gt":
			return field + " must be greater than " + param
		case "oneof":
			return field + " must be one of: " + param
		case "email":
			return field + " must be a valid email address"
		case "url":
			return field + " must be a valid URL"
		default:
			return field + " is invalid"
		}
	}
	return "Validation failed"
}
