package cli

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ogurasousui/employee-directory/internal/client/api"
)

const exportSheet = "Employees"

// exportWorkbook は従業員一覧を 1 シートの xlsx として書き出します。
func exportWorkbook(path string, employees []api.Employee) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headers := []string{"ID", "Name", "Email", "Position", "Created At"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(exportSheet, cell, header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for row, e := range employees {
		values := []any{e.ID, e.Name, e.Email, e.Position, e.CreatedAt.Format("2006-01-02 15:04:05")}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return fmt.Errorf("data cell: %w", err)
			}
			if err := f.SetCellValue(exportSheet, cell, value); err != nil {
				return fmt.Errorf("write row %d: %w", row+1, err)
			}
		}
	}

	return f.SaveAs(path)
}
