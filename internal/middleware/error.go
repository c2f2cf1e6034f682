package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "github.com/somnathbasteai/jeni-bot/internal/errors"
	"github.com/somnathbasteai/jeni-bot/internal/logger"
)

// ErrorHandler logs every error attached with c.Error and, when the handler
// has not answered yet, writes the {error:{code,message}} body for the last one.
// Handlers that already replied (chat keeps its flat error shape) are only logged.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		for _, ginErr := range c.Errors {
			logError(c, ginErr.Err)
		}
		if c.Writer.Written() {
			return
		}

		appErr := apperrors.ErrInternalServer
		var target *apperrors.AppError
		if errors.As(c.Errors.Last().Err, &target) {
			appErr = target
		}
		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
	}
}

func logError(c *gin.Context, err error) {
	fields := []interface{}{
		"request_id", c.GetString(requestIDKey),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	}
	if userID := c.GetString(UserIDKey); userID != "" {
		fields = append(fields, "user_id", userID)
	}

	var appErr *apperrors.AppError
	switch {
	case !errors.As(err, &appErr):
		logger.Get().Errorw("unexpected error", append(fields, "error", err.Error())...)
	case appErr.Internal != nil:
		logger.Get().Errorw("app error", append(fields,
			"code", appErr.Code, "message", appErr.Message, "internal", appErr.Internal.Error())...)
	case appErr.StatusCode >= 500:
		logger.Get().Errorw("app error", append(fields, "code", appErr.Code)...)
	}
}
