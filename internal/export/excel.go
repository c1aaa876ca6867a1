package export

import (
	"fmt"
	"os"
	"path/filepath"

	"shareit/internal/models"

	"github.com/xuri/excelize/v2"
)

const bookingsSheet = "Bookings"

var bookingsHeader = []string{"ID", "Item", "Booker", "Start", "End", "Status", "Created"}

// BuildBookingsWorkbook renders booking rows into an xlsx workbook.
func BuildBookingsWorkbook(rows []models.BookingExportRow) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(bookingsSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}

	for col, title := range bookingsHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(bookingsSheet, cell, title); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, row := range rows {
		values := []interface{}{
			row.ID,
			row.ItemName,
			row.BookerName,
			row.Start.Format(models.DateTimeLayout),
			row.End.Format(models.DateTimeLayout),
			string(row.Status),
			row.CreatedAt.Format(models.DateTimeLayout),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(bookingsSheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
			}
		}
	}

	return f, nil
}

// WriteBookingsFile builds the workbook and saves it under dir.
func WriteBookingsFile(dir, name string, rows []models.BookingExportRow) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	f, err := BuildBookingsWorkbook(rows)
	if err != nil {
		return "", err
	}
	defer f.Close()

	path := filepath.Join(dir, name)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save export file: %w", err)
	}
	return path, nil
}
