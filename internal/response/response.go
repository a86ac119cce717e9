package response

import (
	"errors"
	"net/http"

	"github.com/fekuna/omnipos-tyre-service/internal/apperr"
	"github.com/gin-gonic/gin"
)

func Success(c *gin.Context, status int, message string, data any) {
	c.JSON(status, gin.H{
		"message": message,
		"data":    data,
	})
}

// Error writes the failure envelope for err. Business rejections carry the
// extra context a client needs to correct the request.
func Error(c *gin.Context, err error) {
	status, body := Render(err)
	c.AbortWithStatusJSON(status, body)
}

// Render maps err to an HTTP status and the JSON error envelope.
func Render(err error) (int, gin.H) {
	var (
		verr  *apperr.ValidationError
		stock *apperr.InsufficientStockError
		floor *apperr.PriceBelowCostError
	)

	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, gin.H{
			"message": "validation failed",
			"error":   err.Error(),
			"fields":  verr.Fields,
		}
	case errors.Is(err, apperr.ErrInvalidShop), errors.Is(err, apperr.ErrInvalidQuantity):
		return http.StatusBadRequest, gin.H{"message": "invalid request", "error": err.Error()}
	case errors.As(err, &stock):
		return http.StatusUnprocessableEntity, gin.H{
			"message":   "sale rejected",
			"error":     err.Error(),
			"available": stock.Available,
		}
	case errors.As(err, &floor):
		return http.StatusUnprocessableEntity, gin.H{
			"message":       "sale rejected",
			"error":         err.Error(),
			"invoice_price": floor.InvoicePrice.StringFixed(2),
		}
	case errors.Is(err, apperr.ErrMissingAmazonPrice), errors.Is(err, apperr.ErrMissingCustomPrice):
		return http.StatusUnprocessableEntity, gin.H{"message": "sale rejected", "error": err.Error()}
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound, gin.H{"message": "not found", "error": err.Error()}
	case errors.Is(err, apperr.ErrUnauthorized):
		return http.StatusUnauthorized, gin.H{"message": "unauthorized", "error": err.Error()}
	case errors.Is(err, apperr.ErrIntegrity):
		return http.StatusConflict, gin.H{"message": "conflict", "error": apperr.ErrIntegrity.Error()}
	case errors.Is(err, apperr.ErrUnavailable):
		return http.StatusServiceUnavailable, gin.H{"message": "service unavailable", "error": apperr.ErrUnavailable.Error()}
	}
	return http.StatusInternalServerError, gin.H{"message": "internal error", "error": "internal server error"}
}

// BadRequest reports a body or query that could not be decoded.
func BadRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"message": "invalid request body",
		"error":   err.Error(),
	})
}
