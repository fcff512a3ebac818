package api

import (
	"github.com/labstack/echo/v4"

	"studymarket/pkg/logger"
	"studymarket/pkg/response"
)

// ErrorHandler renders errors that escape handlers (unknown routes, binder
// failures, panics turned into errors by Recover) in the common error body.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	if writeErr := response.Error(c, err); writeErr != nil {
		logger.Error("failed to write error response: %v", writeErr)
	}
}
