package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/phenixmation/payables/internal/logger"
	"github.com/phenixmation/payables/internal/session"
)

type HealthHandler struct {
	session *session.Session
	logger  *logger.Logger
}

func NewHealthHandler(
	session *session.Session,
	logger *logger.Logger,
) *HealthHandler {
	return &HealthHandler{
		session: session,
		logger:  logger,
	}
}

// @Summary Health check
// @Description Health check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"logged_in": h.session.IsLoggedIn(),
	})
}
