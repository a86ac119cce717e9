package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fekuna/omnipos-tyre-service/internal/apperr"
	"github.com/fekuna/omnipos-tyre-service/internal/auth"
	"github.com/fekuna/omnipos-tyre-service/internal/model"
	"github.com/fekuna/omnipos-tyre-service/internal/tyre/dto"
	"github.com/fekuna/omnipos-tyre-service/internal/tyre/mocks"
	"github.com/fekuna/omnipos-tyre-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newRouter(uc *mocks.UseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api", func(c *gin.Context) {
		c.Request = c.Request.WithContext(auth.WithUser(c.Request.Context(), "user-1", "admin"))
	})
	NewTyreHandler(uc, logger.NewNop()).Register(api)
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAddTyre(t *testing.T) {
	uc := new(mocks.UseCase)
	r := newRouter(uc)
	uc.On("AddTyre", mock.Anything, mock.MatchedBy(func(in *dto.CreateTyreInput) bool {
		return in.UserID == "user-1" && in.Brand == "CEAT" && in.InvoicePrice.Decimal.Equal(decimal.NewFromInt(1000))
	})).Return(&model.Tyre{BaseModel: model.BaseModel{ID: "t-1"}, Brand: model.BrandCEAT}, nil)

	rec := do(r, http.MethodPost, "/api/tyres",
		`{"brand":"CEAT","model_with_size":"Secura","tube_type":"Tube","invoice_price":"1000"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var body struct {
		Data model.Tyre `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "t-1", body.Data.ID)
	uc.AssertExpectations(t)
}

func TestAddTyre_ValidationError(t *testing.T) {
	uc := new(mocks.UseCase)
	r := newRouter(uc)
	verr := &apperr.ValidationError{}
	verr.Add("", "Amazon price is required if the tyre is listed on Amazon.")
	uc.On("AddTyre", mock.Anything, mock.Anything).Return(nil, verr)

	rec := do(r, http.MethodPost, "/api/tyres", `{"brand":"CEAT","amazon_listed":true}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Amazon price is required")
}

func TestAddTyre_MalformedBody(t *testing.T) {
	uc := new(mocks.UseCase)
	r := newRouter(uc)

	rec := do(r, http.MethodPost, "/api/tyres", `{"brand":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	uc.AssertNotCalled(t, "AddTyre", mock.Anything, mock.Anything)
}

func TestListTyres(t *testing.T) {
	uc := new(mocks.UseCase)
	r := newRouter(uc)
	uc.On("ListTyres", mock.Anything, &dto.TyreFilters{SearchQuery: "ceat", TubeType: "tube"}).
		Return([]model.Tyre{{Brand: model.BrandCEAT}}, nil)

	rec := do(r, http.MethodGet, "/api/tyres?q=ceat&tube_type=tube", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	uc.AssertExpectations(t)
}

func TestGetTyre_NotFound(t *testing.T) {
	uc := new(mocks.UseCase)
	r := newRouter(uc)
	uc.On("GetTyre", mock.Anything, "nope").Return(nil, apperr.ErrNotFound)

	rec := do(r, http.MethodGet, "/api/tyres/nope", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEditTyre(t *testing.T) {
	uc := new(mocks.UseCase)
	r := newRouter(uc)
	uc.On("EditTyre", mock.Anything, mock.MatchedBy(func(in *dto.EditTyreInput) bool {
		return in.ID == "t-1" && in.UserID == "user-1" && !in.AmazonListed
	})).Return(&model.Tyre{BaseModel: model.BaseModel{ID: "t-1"}}, nil)

	rec := do(r, http.MethodPut, "/api/tyres/t-1", `{"invoice_price":950,"amazon_listed":false}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	uc.AssertExpectations(t)
}

func TestDeleteTyre(t *testing.T) {
	uc := new(mocks.UseCase)
	r := newRouter(uc)
	uc.On("DeleteTyre", mock.Anything, &dto.DeleteTyreInput{ID: "t-1", UserID: "user-1"}).Return(nil)
	uc.On("DeleteTyre", mock.Anything, &dto.DeleteTyreInput{ID: "t-2", UserID: "user-1"}).
		Return(apperr.ErrUnavailable)

	rec := do(r, http.MethodDelete, "/api/tyres/t-1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(r, http.MethodDelete, "/api/tyres/t-2", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
