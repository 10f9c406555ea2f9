package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/phenixmation/payables/internal/logger"
	"github.com/phenixmation/payables/internal/service"
)

func NewUserHandler(userService service.UserService, logger *logger.Logger) *UserHandler {
	return &UserHandler{userService: userService, logger: logger}
}

type UserHandler struct {
	userService service.UserService
	logger      *logger.Logger
}

// @Summary List users
// @Description List the accounts of the invoice API
// @Tags Users
// @Produce json
// @Success 200 {object} dto.ListUsersResponse
// @Failure 401 {object} ierr.ErrorResponse
// @Failure 502 {object} ierr.ErrorResponse
// @Router /utilisateurs [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	resp, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
