package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/phenixmation/payables/internal/config"
	ierr "github.com/phenixmation/payables/internal/errors"
	"github.com/phenixmation/payables/internal/logger"
	"github.com/phenixmation/payables/internal/sentry"
	"github.com/phenixmation/payables/internal/types"
)

// ErrorHandler middleware renders the last error of the request. Server side
// failures are logged and reported to sentry.
func ErrorHandler(cfg *config.Configuration, log *logger.Logger, sentrySvc *sentry.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		status := ierr.HTTPStatusFromErr(err)
		response := ierr.ErrorResponse{
			Success: false,
			Error: ierr.ErrorDetail{
				Display: getDisplayMessage(err),
				Details: getSafeDetails(err),
			},
		}
		if cfg.Deployment.Mode == types.ModeLocal {
			response.Error.InternalError = err.Error()
		}

		if status >= http.StatusInternalServerError {
			log.Errorw("request failed",
				"method", c.Request.Method,
				"path", c.FullPath(),
				"status", status,
				"request_id", types.GetRequestID(c.Request.Context()),
				"error", err,
			)
			sentrySvc.CaptureException(err)
		}

		c.JSON(status, response)
	}
}

func getDisplayMessage(err error) string {
	if hints := errors.GetAllHints(err); len(hints) > 0 {
		// Get the first non-empty hint - GetAllHints is post-order traversal
		for _, hint := range hints {
			if hint = strings.TrimSpace(hint); hint != "" {
				return hint
			}
		}
	}

	// fallback to the error message
	return "An unexpected error occurred"
}

func getSafeDetails(err error) map[string]any {
	details := make(map[string]any)

	for _, sdp := range errors.GetAllSafeDetails(err) {
		for _, payload := range sdp.SafeDetails {
			jsonStr, ok := strings.CutPrefix(payload, "__json__:")
			if !ok {
				continue
			}
			var jsonDetails map[string]any
			if err := json.Unmarshal([]byte(jsonStr), &jsonDetails); err == nil {
				for k, v := range jsonDetails {
					details[k] = v
				}
			}
		}
	}

	return details
}
