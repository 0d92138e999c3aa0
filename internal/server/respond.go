package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/julianstephens/daybook/internal/errors"
	"github.com/julianstephens/daybook/internal/logger"
)

// fail writes the error envelope. Unclassified errors are logged and
// reported with the fallback message.
func fail(c *gin.Context, err error, fallback string) {
	if fallback == "" {
		fallback = "internal server error"
	}
	status := apperrors.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", "path", c.Request.URL.Path, "error", err)
	}
	c.AbortWithStatusJSON(status, gin.H{
		"error": apperrors.Banner(err, fallback),
		"code":  apperrors.Code(err),
	})
}

func badRequest(c *gin.Context, err error) {
	logger.Debug("Rejected request body", "path", c.Request.URL.Path, "error", err)
	fail(c, apperrors.Validation("invalid request body"), "")
}
