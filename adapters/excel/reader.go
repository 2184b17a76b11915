// Package excel reads constant-stimulus observation tables from spreadsheet
// and CSV files. Expected columns: intensity, correct, trials (a header row
// is detected and skipped).
package excel

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"psyfit/domain/trials"
)

// DataReader handles reading observation blocks from Excel and CSV files
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(filePath string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// ReadBlocks reads the file into a validated observation dataset
func (r *DataReader) ReadBlocks() (*trials.Dataset, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
	if err != nil {
		return nil, err
	}

	return parseBlocks(rows)
}

func (r *DataReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	log.Printf("[DataReader] %s: read %d rows from sheet %s", r.filePath, len(rows), sheet)
	return rows, nil
}

func (r *DataReader) readCSVRows() ([][]string, error) {
	f, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	log.Printf("[DataReader] %s: read %d rows", r.filePath, len(rows))
	return rows, nil
}

func parseBlocks(rows [][]string) (*trials.Dataset, error) {
	blocks := make([]trials.Block, 0, len(rows))
	for i, row := range rows {
		if len(row) < 3 {
			if i == 0 {
				continue
			}
			return nil, fmt.Errorf("row %d has %d columns, want 3 (intensity, correct, trials)", i+1, len(row))
		}

		intensity, err1 := strconv.ParseFloat(strings.TrimSpace(row[0]), 64)
		correct, err2 := strconv.Atoi(strings.TrimSpace(row[1]))
		ntrials, err3 := strconv.Atoi(strings.TrimSpace(row[2]))
		if err1 != nil || err2 != nil || err3 != nil {
			// First non-numeric row is treated as a header
			if i == 0 {
				continue
			}
			return nil, fmt.Errorf("row %d is not numeric: %v", i+1, row)
		}

		blocks = append(blocks, trials.Block{Intensity: intensity, Correct: correct, Trials: ntrials})
	}

	return trials.NewDataset(blocks)
}
