package excel

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/example/murojaahbot/internal/api"
	"github.com/example/murojaahbot/internal/progress"
	"github.com/example/murojaahbot/pkg/models"
	"github.com/xuri/excelize/v2"
)

// ErrRangeTooLong is returned when an export spans more days than allowed
var ErrRangeTooLong = errors.New("date range too long")

// ExportConfig defines the export configuration
type ExportConfig struct {
	FilePath  string // Path of the .xlsx or .csv file to write
	SheetName string // Name of the sheet holding the rows
}

// DefaultExportConfig returns the default export configuration
func DefaultExportConfig() ExportConfig {
	return ExportConfig{
		FilePath:  "murojaah.xlsx",
		SheetName: "Murojaah",
	}
}

// ExportResult holds the result of an export operation
type ExportResult struct {
	Days     int
	Sessions int
	Totals   progress.Totals
}

// LogSource fetches the log of one date
type LogSource interface {
	DailyLog(ctx context.Context, sess api.Session, date time.Time) (*models.DailyLog, error)
}

var header = []string{
	"Tanggal",
	"Waktu Murojaah",
	"Target Awal",
	"Target Akhir",
	"Selesai Sampai",
	"Target (hal)",
	"Selesai (hal)",
	"Status",
	"Persentase",
	"Catatan",
}

// FetchRange collects the logs of every date in [from, to]
func FetchRange(ctx context.Context, src LogSource, sess api.Session, from, to time.Time, maxDays int) ([]models.DailyLog, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("end date %s is before start date %s", to.Format(api.DateLayout), from.Format(api.DateLayout))
	}

	days := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days++
	}
	if maxDays > 0 && days > maxDays {
		return nil, fmt.Errorf("%w: %d days, at most %d", ErrRangeTooLong, days, maxDays)
	}

	logs := make([]models.DailyLog, 0, days)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		daily, err := src.DailyLog(ctx, sess, d)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch log of %s: %w", d.Format(api.DateLayout), err)
		}
		logs = append(logs, *daily)
	}
	return logs, nil
}

// Export writes logs to config.FilePath, as CSV when the extension is .csv
// and as an Excel workbook otherwise
func Export(config ExportConfig, logs []models.DailyLog) (*ExportResult, error) {
	if dir := filepath.Dir(config.FilePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %v", err)
		}
	}

	file, err := os.Create(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %v", err)
	}
	defer file.Close()

	if strings.ToLower(filepath.Ext(config.FilePath)) == ".csv" {
		return WriteCSV(file, logs)
	}
	return WriteXLSX(file, config.SheetName, logs)
}

// WriteXLSX writes logs as a workbook with one sheet
func WriteXLSX(w io.Writer, sheet string, logs []models.DailyLog) (*ExportResult, error) {
	rows, result := buildRows(logs)

	f := excelize.NewFile()
	defer f.Close()

	if sheet == "" {
		sheet = DefaultExportConfig().SheetName
	}
	f.SetSheetName(f.GetSheetName(0), sheet)

	for i, row := range append([][]interface{}{headerRow()}, rows...) {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve cell: %v", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write cell %s: %v", cell, err)
			}
		}
	}

	if err := f.SetColWidth(sheet, "A", "E", 16); err != nil {
		return nil, fmt.Errorf("failed to set column width: %v", err)
	}
	if err := f.SetColWidth(sheet, "J", "J", 32); err != nil {
		return nil, fmt.Errorf("failed to set column width: %v", err)
	}

	if err := f.Write(w); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %v", err)
	}
	return result, nil
}

// WriteCSV writes logs as comma separated rows
func WriteCSV(w io.Writer, logs []models.DailyLog) (*ExportResult, error) {
	rows, result := buildRows(logs)

	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %v", err)
	}
	for _, row := range rows {
		record := make([]string, len(row))
		for i, value := range row {
			record[i] = formatValue(value)
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %v", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %v", err)
	}
	return result, nil
}

// buildRows lays out one row per session, a total row after each day and a
// grand total row at the end. Days without sessions are left out.
func buildRows(logs []models.DailyLog) ([][]interface{}, *ExportResult) {
	result := &ExportResult{}
	var rows [][]interface{}

	for _, daily := range logs {
		if len(daily.DetailLogs) == 0 {
			continue
		}
		result.Days++

		for _, d := range daily.DetailLogs {
			p := d.Evaluate()
			rows = append(rows, []interface{}{
				daily.Tanggal,
				d.WaktuMurojaah.Label(),
				d.Target().Start.String(),
				d.Target().End.String(),
				d.CompletedEnd().String(),
				p.TargetPages,
				p.CompletedPages,
				p.Status.String(),
				round2(p.Percent),
				d.Catatan,
			})
			result.Sessions++
		}

		totals := daily.Totals()
		rows = append(rows, totalRow(daily.Tanggal, "Total", totals))
		result.Totals = result.Totals.Add(totals)
	}

	if result.Days > 0 {
		rows = append(rows, totalRow("", "Jumlah", result.Totals))
	}
	return rows, result
}

func totalRow(tanggal, label string, t progress.Totals) []interface{} {
	return []interface{}{tanggal, label, "", "", "", t.TargetSum, t.CompletedSum, "", round2(t.Percent()), ""}
}

func headerRow() []interface{} {
	row := make([]interface{}, len(header))
	for i, h := range header {
		row[i] = h
	}
	return row
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func formatValue(value interface{}) string {
	switch v := value.(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', 2, 64)
	case int:
		return strconv.Itoa(v)
	case string:
		return v
	}
	return fmt.Sprint(value)
}
