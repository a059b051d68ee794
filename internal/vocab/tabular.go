// ABOUTME: CSV and XLSX deck readers.
// ABOUTME: Columns are id, word, meaning, pronunciation, example after one header row.
package vocab

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/harperreed/freely/internal/models"
	"github.com/xuri/excelize/v2"
)

func readCSV(path string) ([]models.Word, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read CSV rows: %w", err)
	}
	return wordsFromRows(rows)
}

func readXLSX(path string) ([]models.Word, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("get rows: %w", err)
	}
	return wordsFromRows(rows)
}

func wordsFromRows(rows [][]string) ([]models.Word, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	words := make([]models.Word, 0, len(rows)-1)
	for i, row := range rows[1:] {
		w := models.Word{
			Word:          cell(row, 1),
			Meaning:       cell(row, 2),
			Pronunciation: cell(row, 3),
			Example:       cell(row, 4),
		}
		if id := cell(row, 0); id != "" {
			n, err := strconv.Atoi(id)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid id %q", i+2, id)
			}
			w.ID = n
		}
		words = append(words, w)
	}
	return words, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
