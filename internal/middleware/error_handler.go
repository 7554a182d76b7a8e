package middleware

import (
	"errors"
	"myWellnessCentre/pkg/logger"
	"net/http"
	"strings"

	jsonres "myWellnessCentre/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler renders errors that escaped the handlers. Only echo's own HTTP errors keep
// their message; anything else becomes a generic 500.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	body := jsonres.Error("INTERNAL_ERROR", "Internal server error", nil)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		body = jsonres.Error(errorCode(code), http.StatusText(code), nil)
		if msg, ok := he.Message.(string); ok {
			body.Message = msg
		}
	} else {
		logger.Error("Unhandled error", "path", c.Path(), "error", err)
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(code)
	} else {
		writeErr = c.JSON(code, body)
	}
	if writeErr != nil {
		logger.Error("Failed to write error response", writeErr)
	}
}

func errorCode(status int) string {
	return strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))
}
