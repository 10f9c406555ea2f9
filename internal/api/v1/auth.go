package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/phenixmation/payables/internal/api/dto"
	"github.com/phenixmation/payables/internal/logger"
	"github.com/phenixmation/payables/internal/service"
)

type AuthHandler struct {
	authService service.AuthService
	logger      *logger.Logger
}

func NewAuthHandler(authService service.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// @Summary Login
// @Description Exchange email and password for a session with the invoice API
// @Tags Auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login request"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 401 {object} ierr.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Logout
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.SuccessResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context()); err != nil {
		h.logger.Errorw("failed to log out", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "logged out"})
}

// @Summary Session status
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.SessionResponse
// @Router /auth/session [get]
func (h *AuthHandler) Session(c *gin.Context) {
	resp, err := h.authService.Status(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
