package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/fekuna/omnipos-tyre-service/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWorkbook(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	rows := []model.SaleLog{
		{
			TyreID:       "t-1",
			ShopCode:     model.ShopTirupur,
			CustomerType: model.CustomerAmazon,
			QuantitySold: 2,
			UnitPrice:    decimal.NewFromInt(1200),
			TotalAmount:  decimal.NewFromInt(2400),
			Profit:       decimal.NewFromInt(400),
			SoldAt:       time.Date(2024, 3, 1, 18, 45, 0, 0, time.UTC),
			TyreBrand:    "CEAT",
			TyreModel:    "Secura Drive 195/55 R16",
			TyreTubeType: "Tubeless",
		},
		{
			TyreID:       "t-2",
			ShopCode:     model.ShopGobi,
			CustomerType: model.CustomerRetail,
			CustomerName: "Ravi",
			QuantitySold: 1,
			UnitPrice:    decimal.RequireFromString("850.50"),
			TotalAmount:  decimal.RequireFromString("850.50"),
			Profit:       decimal.RequireFromString("50.50"),
			SoldAt:       time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		},
	}

	data, err := Workbook(rows, decimal.RequireFromString("450.50"), loc)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, got, 4)

	assert.Equal(t, "Sold At", got[0][0])
	assert.Equal(t, "2024-03-02 00:15", got[1][0])
	assert.Equal(t, "CEAT - Secura Drive 195/55 R16 (Tubeless)", got[1][1])
	assert.Equal(t, "Tirupur (TS)", got[1][2])
	assert.Equal(t, "t-2", got[2][1])
	assert.Equal(t, "Ravi", got[2][4])
	assert.Equal(t, "Total Profit", got[3][7])
	assert.Equal(t, "450.50", got[3][8])
}

func TestWorkbook_Empty(t *testing.T) {
	data, err := Workbook(nil, decimal.Zero, time.UTC)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Total Profit", got[1][7])
}
