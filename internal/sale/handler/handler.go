package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/fekuna/omnipos-tyre-service/internal/auth"
	"github.com/fekuna/omnipos-tyre-service/internal/response"
	"github.com/fekuna/omnipos-tyre-service/internal/sale"
	"github.com/fekuna/omnipos-tyre-service/internal/sale/dto"
	"github.com/fekuna/omnipos-tyre-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type SaleHandler struct {
	uc     sale.UseCase
	logger logger.ZapLogger
}

func NewSaleHandler(uc sale.UseCase, log logger.ZapLogger) *SaleHandler {
	return &SaleHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *SaleHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/tyres/:id/sell/:shop", h.SellTyre)
	rg.GET("/sales", h.ListSales)
	rg.GET("/sales/export", h.ExportSales)
}

type listSalesResponse struct {
	Sales       any    `json:"sales"`
	TotalProfit string `json:"total_profit"`
}

func (h *SaleHandler) SellTyre(c *gin.Context) {
	var input dto.SellTyreInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err)
		return
	}
	input.TyreID = c.Param("id")
	input.ShopCode = c.Param("shop")
	input.UserID = auth.GetUserID(c.Request.Context())

	s, err := h.uc.SellTyre(c.Request.Context(), &input)
	if err != nil {
		h.fail(c, "failed to sell tyre", err)
		return
	}

	response.Success(c, http.StatusCreated, "sale recorded", s)
}

func (h *SaleHandler) ListSales(c *gin.Context) {
	var input dto.ListSalesInput
	if err := c.ShouldBindQuery(&input); err != nil {
		response.BadRequest(c, err)
		return
	}

	rows, total, err := h.uc.ListSales(c.Request.Context(), &input)
	if err != nil {
		h.fail(c, "failed to list sales", err)
		return
	}

	response.Success(c, http.StatusOK, "sales", listSalesResponse{
		Sales:       rows,
		TotalProfit: total.StringFixed(2),
	})
}

func (h *SaleHandler) ExportSales(c *gin.Context) {
	var input dto.ListSalesInput
	if err := c.ShouldBindQuery(&input); err != nil {
		response.BadRequest(c, err)
		return
	}

	data, err := h.uc.ExportSales(c.Request.Context(), &input)
	if err != nil {
		h.fail(c, "failed to export sales", err)
		return
	}

	filename := fmt.Sprintf("sales_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

func (h *SaleHandler) fail(c *gin.Context, msg string, err error) {
	status, _ := response.Render(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(msg, zap.Error(err))
	}
	response.Error(c, err)
}
