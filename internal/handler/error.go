package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"notes-service/internal/apperr"
	"notes-service/pkg/logger"
)

// HTTPErrorHandler converts errors bubbling out of handlers into JSON
// responses. Application errors map through their kind; anything unexpected
// is logged and collapsed to a generic 500 that reveals no internals.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	log := logger.FromEcho(c)

	if e, ok := apperr.As(err); ok {
		if e.Kind == apperr.KindInternal {
			log.Error("Internal error", zap.Error(err))
			writeError(c, http.StatusInternalServerError, "internal error")
			return
		}
		writeError(c, e.HTTPStatus(), e.Message)
		return
	}

	if he, ok := err.(*echo.HTTPError); ok {
		writeError(c, he.Code, fmt.Sprintf("%v", he.Message))
		return
	}

	log.Error("Unhandled error", zap.Error(err))
	writeError(c, http.StatusInternalServerError, "internal error")
}

func writeError(c echo.Context, status int, message string) {
	if err := c.JSON(status, echo.Map{"error": message}); err != nil {
		logger.FromEcho(c).Error("Failed to write error response", zap.Error(err))
	}
}
