package services

import (
	"bytes"
	"fmt"

	"financialamigo/src/models"
	"financialamigo/src/utils"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

type ExportFormat string

const (
	ExportXLSX ExportFormat = "xlsx"
	ExportCSV  ExportFormat = "csv"

	transactionsSheet = "Transactions"
)

var transactionColumns = []string{
	"Date", "Account", "Type", "Symbol", "Quantity", "Price", "Commission", "Currency", "Total", "Description",
}

type ExportServiceI interface {
	ExportTransactions(format ExportFormat, transactions []models.Transaction, accountNames map[string]string) ([]byte, error)
}

type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

// ContentType returns the MIME type of the format.
func (f ExportFormat) ContentType() (string, error) {
	switch f {
	case ExportXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil
	case ExportCSV:
		return "text/csv", nil
	}
	return "", utils.BadRequest(fmt.Sprintf("unsupported export format %q, expected xlsx or csv", string(f)))
}

func (es *ExportService) ExportTransactions(format ExportFormat, transactions []models.Transaction, accountNames map[string]string) ([]byte, error) {
	rows := make([][]string, 0, len(transactions))
	for _, t := range transactions {
		description := ""
		if t.Description != nil {
			description = *t.Description
		}
		rows = append(rows, []string{
			t.Date.Format(utils.ShortDashDateLayout),
			accountNames[t.AccountID.String()],
			string(t.Type),
			t.Symbol,
			t.Quantity.String(),
			t.PriceNative.String(),
			t.CommissionNative.String(),
			string(t.Currency),
			formatAmount(t.TotalNative, string(t.Currency)),
			description,
		})
	}

	switch format {
	case ExportCSV:
		var buf bytes.Buffer
		if err := utils.WriteCSV(&buf, transactionColumns, rows); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case ExportXLSX:
		return es.writeXLSX(rows)
	}
	_, err := format.ContentType()
	return nil, err
}

// formatAmount rounds to the minor unit of the currency.
func formatAmount(amount decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return amount.String()
	}
	return amount.StringFixed(int32(cur.Fraction))
}

func (es *ExportService) writeXLSX(rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), transactionsSheet); err != nil {
		return nil, err
	}

	for colIndex, header := range transactionColumns {
		cell := fmt.Sprintf("%s%d", es.toAlphaString(colIndex+1), 1)
		if err := f.SetCellValue(transactionsSheet, cell, header); err != nil {
			return nil, err
		}
	}

	numericStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return nil, err
	}

	for rowIndex, row := range rows {
		for colIndex, value := range row {
			cell := fmt.Sprintf("%s%d", es.toAlphaString(colIndex+1), rowIndex+2)
			if number, err := decimal.NewFromString(value); err == nil && isNumericColumn(colIndex) {
				if err := f.SetCellValue(transactionsSheet, cell, number.InexactFloat64()); err != nil {
					return nil, err
				}
				if err := f.SetCellStyle(transactionsSheet, cell, cell, numericStyle); err != nil {
					return nil, err
				}
				continue
			}
			if err := f.SetCellValue(transactionsSheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	if err := es.applyStyles(f, len(rows)+1); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isNumericColumn(colIndex int) bool {
	// Quantity, Price, Commission and Total.
	return colIndex >= 4 && colIndex <= 8 && colIndex != 7
}

func (es *ExportService) toAlphaString(column int) string {
	result := ""
	for column > 0 {
		column--
		result = string(rune('A'+column%26)) + result
		column /= 26
	}
	return result
}

func (es *ExportService) applyStyles(f *excelize.File, lastRow int) error {
	lastCol := es.toAlphaString(len(transactionColumns))

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6E6E6"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return err
	}

	if err := f.SetCellStyle(transactionsSheet, "A1", lastCol+"1", headerStyle); err != nil {
		return err
	}
	if err := f.SetPanes(transactionsSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}
	if lastRow > 1 {
		if err := f.AutoFilter(transactionsSheet, fmt.Sprintf("A1:%s%d", lastCol, lastRow), nil); err != nil {
			return err
		}
	}
	return f.SetColWidth(transactionsSheet, "A", lastCol, 15)
}
