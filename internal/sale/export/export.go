// Package export renders the sales ledger as an XLSX workbook.
package export

import (
	"fmt"
	"time"

	"github.com/fekuna/omnipos-tyre-service/internal/apperr"
	"github.com/fekuna/omnipos-tyre-service/internal/model"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const SheetName = "Sales"

var header = []any{
	"Sold At", "Tyre", "Shop", "Customer Type", "Customer Name",
	"Quantity", "Unit Price", "Total Amount", "Profit",
}

// Workbook writes one row per sale, newest first as given, followed by the
// total profit row. Timestamps are shown in loc.
func Workbook(rows []model.SaleLog, totalProfit decimal.Decimal, loc *time.Location) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return nil, err
	}

	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(SheetName, "A1", "I1", bold); err != nil {
		return nil, err
	}

	for i, s := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := []any{
			s.SoldAt.In(loc).Format("2006-01-02 15:04"),
			tyreLabel(s),
			fmt.Sprintf("%s (%s)", apperr.ShopName(string(s.ShopCode)), s.ShopCode),
			string(s.CustomerType),
			s.CustomerName,
			s.QuantitySold,
			s.UnitPrice.InexactFloat64(),
			s.TotalAmount.InexactFloat64(),
			s.Profit.InexactFloat64(),
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return nil, err
		}
	}

	last := len(rows) + 1
	if last > 1 {
		from, _ := excelize.CoordinatesToCellName(7, 2)
		to, _ := excelize.CoordinatesToCellName(9, last)
		if err := f.SetCellStyle(SheetName, from, to, money); err != nil {
			return nil, err
		}
	}

	totalRow := last + 1
	labelCell, _ := excelize.CoordinatesToCellName(8, totalRow)
	valueCell, _ := excelize.CoordinatesToCellName(9, totalRow)
	if err := f.SetCellValue(SheetName, labelCell, "Total Profit"); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(SheetName, valueCell, totalProfit.InexactFloat64()); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(SheetName, labelCell, labelCell, bold); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(SheetName, valueCell, valueCell, money); err != nil {
		return nil, err
	}

	if err := f.SetColWidth(SheetName, "A", "I", 18); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(SheetName, "B", "B", 40); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func tyreLabel(s model.SaleLog) string {
	if s.TyreBrand == "" {
		return s.TyreID
	}
	return fmt.Sprintf("%s - %s (%s)", s.TyreBrand, s.TyreModel, s.TyreTubeType)
}
