package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-tyre-service/internal/response"
	"github.com/fekuna/omnipos-tyre-service/internal/user"
	"github.com/fekuna/omnipos-tyre-service/internal/user/dto"
	"github.com/fekuna/omnipos-tyre-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler struct {
	uc     user.UseCase
	logger logger.ZapLogger
}

func NewUserHandler(uc user.UseCase, log logger.ZapLogger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		logger: log,
	}
}

// Register mounts the public auth routes.
func (h *UserHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/auth/login", h.Login)
}

func (h *UserHandler) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err)
		return
	}

	res, err := h.uc.Login(c.Request.Context(), &input)
	if err != nil {
		if status, _ := response.Render(err); status >= http.StatusInternalServerError {
			h.logger.Error("login failed", zap.Error(err))
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "login successful", res)
}
