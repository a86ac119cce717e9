package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-tyre-service/internal/auth"
	"github.com/fekuna/omnipos-tyre-service/internal/response"
	"github.com/fekuna/omnipos-tyre-service/internal/tyre"
	"github.com/fekuna/omnipos-tyre-service/internal/tyre/dto"
	"github.com/fekuna/omnipos-tyre-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type TyreHandler struct {
	uc     tyre.UseCase
	logger logger.ZapLogger
}

func NewTyreHandler(uc tyre.UseCase, log logger.ZapLogger) *TyreHandler {
	return &TyreHandler{
		uc:     uc,
		logger: log,
	}
}

// Register mounts the tyre routes on an authenticated group.
func (h *TyreHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/tyres", h.AddTyre)
	rg.GET("/tyres", h.ListTyres)
	rg.GET("/tyres/:id", h.GetTyre)
	rg.PUT("/tyres/:id", h.EditTyre)
	rg.DELETE("/tyres/:id", h.DeleteTyre)
}

func (h *TyreHandler) AddTyre(c *gin.Context) {
	var input dto.CreateTyreInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err)
		return
	}
	input.UserID = auth.GetUserID(c.Request.Context())

	t, err := h.uc.AddTyre(c.Request.Context(), &input)
	if err != nil {
		h.fail(c, "failed to add tyre", err)
		return
	}

	response.Success(c, http.StatusCreated, "tyre added", t)
}

func (h *TyreHandler) ListTyres(c *gin.Context) {
	filters := &dto.TyreFilters{
		SearchQuery: c.Query("q"),
		TubeType:    c.Query("tube_type"),
	}

	tyres, err := h.uc.ListTyres(c.Request.Context(), filters)
	if err != nil {
		h.fail(c, "failed to list tyres", err)
		return
	}

	response.Success(c, http.StatusOK, "tyres", tyres)
}

func (h *TyreHandler) GetTyre(c *gin.Context) {
	t, err := h.uc.GetTyre(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "failed to get tyre", err)
		return
	}

	response.Success(c, http.StatusOK, "tyre", t)
}

func (h *TyreHandler) EditTyre(c *gin.Context) {
	var input dto.EditTyreInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err)
		return
	}
	input.ID = c.Param("id")
	input.UserID = auth.GetUserID(c.Request.Context())

	t, err := h.uc.EditTyre(c.Request.Context(), &input)
	if err != nil {
		h.fail(c, "failed to edit tyre", err)
		return
	}

	response.Success(c, http.StatusOK, "tyre updated", t)
}

func (h *TyreHandler) DeleteTyre(c *gin.Context) {
	input := &dto.DeleteTyreInput{
		ID:     c.Param("id"),
		UserID: auth.GetUserID(c.Request.Context()),
	}

	if err := h.uc.DeleteTyre(c.Request.Context(), input); err != nil {
		h.fail(c, "failed to delete tyre", err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *TyreHandler) fail(c *gin.Context, msg string, err error) {
	status, _ := response.Render(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(msg, zap.Error(err))
	}
	response.Error(c, err)
}
