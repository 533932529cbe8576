// Package importer reads cargo manifests from CSV and Excel files.
// It supports automatic delimiter detection, flexible column mapping, and
// case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/LoadPlanner/internal/debug"
	"github.com/piwi3910/LoadPlanner/internal/model"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Items    []model.CargoItem
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
// A value of -1 means the column is absent.
type ColumnMapping struct {
	ID          int
	Description int
	Length      int
	Width       int
	Height      int
	Weight      int
	Quantity    int
	Stackable   int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"id":          {"id", "item id", "sku", "ref"},
	"description": {"description", "desc", "name", "item", "cargo", "label", "piece"},
	"length":      {"length", "len", "l", "length (in)"},
	"width":       {"width", "w", "width (in)"},
	"height":      {"height", "h", "height (in)"},
	"weight":      {"weight", "wt", "weight (lb)", "lbs", "lb", "mass"},
	"quantity":    {"quantity", "qty", "count", "pcs", "pieces", "units"},
	"stackable":   {"stackable", "stack", "stackable?", "can stack"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := newCSVReader(bytes.NewReader(data), delim)
		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or the positional
// mapping (description, length, width, height, weight, quantity, stackable)
// and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{-1, -1, -1, -1, -1, -1, -1, -1}
	slots := map[string]*int{
		"id":          &mapping.ID,
		"description": &mapping.Description,
		"length":      &mapping.Length,
		"width":       &mapping.Width,
		"height":      &mapping.Height,
		"weight":      &mapping.Weight,
		"quantity":    &mapping.Quantity,
		"stackable":   &mapping.Stackable,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				if slot := slots[role]; *slot == -1 {
					*slot = i
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{
			ID:          -1,
			Description: 0,
			Length:      1,
			Width:       2,
			Height:      3,
			Weight:      4,
			Quantity:    5,
			Stackable:   6,
		}, false
	}

	return mapping, true
}

// parseStackable converts a stackable cell to a bool. The second return
// reports whether the text was recognized.
func parseStackable(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "t", "1", "x":
		return true, true
	case "", "no", "n", "false", "f", "0", "-":
		return false, true
	default:
		return false, false
	}
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseNumber(row []string, idx int, name, rowLabel string) (float64, string) {
	s := getCell(row, idx)
	if s == "" {
		return 0, fmt.Sprintf("%s: Missing %s value", rowLabel, name)
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, name, s)
	}
	return v, ""
}

// parseRow extracts a CargoItem from a row using the given column mapping.
// Returns the item, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, itemCount int) (model.CargoItem, string, string) {
	desc := getCell(row, mapping.Description)
	if desc == "" {
		desc = fmt.Sprintf("Item %d", itemCount+1)
	}

	var dims [4]float64
	for i, col := range []struct {
		idx  int
		name string
	}{
		{mapping.Length, "length"},
		{mapping.Width, "width"},
		{mapping.Height, "height"},
		{mapping.Weight, "weight"},
	} {
		v, errMsg := parseNumber(row, col.idx, col.name, rowLabel)
		if errMsg != "" {
			return model.CargoItem{}, errMsg, ""
		}
		dims[i] = v
	}

	qty := 1
	if qtyStr := getCell(row, mapping.Quantity); qtyStr != "" {
		n, err := strconv.Atoi(qtyStr)
		if err != nil {
			return model.CargoItem{}, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr), ""
		}
		qty = n
	}

	item := model.NewCargoItem(desc, dims[0], dims[1], dims[2], dims[3], qty)
	if !item.Usable() {
		return model.CargoItem{}, fmt.Sprintf("%s: Length, width, height, weight, and quantity must be positive", rowLabel), ""
	}
	if id := getCell(row, mapping.ID); id != "" {
		item.ID = id
	}

	var warning string
	if s := getCell(row, mapping.Stackable); s != "" {
		stackable, ok := parseStackable(s)
		if ok {
			item.Stackable = stackable
		} else {
			warning = fmt.Sprintf("%s: Unknown stackable value '%s', defaulting to No", rowLabel, s)
		}
	}

	return item, "", warning
}

// uniqueID returns id with the lowest numeric suffix not already in seen.
func uniqueID(id string, seen map[string]bool) string {
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d", id, n)
		if !seen[candidate] {
			return candidate
		}
	}
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func newCSVReader(r io.Reader, delimiter rune) *csv.Reader {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	return reader
}

// ImportFile picks the CSV or Excel importer from the file extension.
func ImportFile(path string) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx":
		return ImportExcel(path)
	default:
		return ImportCSV(path)
	}
}

// ImportCSV imports cargo items from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}
	debug.Log("import", "csv manifest", "path", path, "delimiter", string(delimiter))

	records, err := newCSVReader(bytes.NewReader(data), delimiter).ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports cargo items from a CSV reader with a specific delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	records, err := newCSVReader(reader, delimiter).ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports cargo items from the first sheet of an Excel workbook.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}
	debug.Log("import", "excel manifest", "path", path, "sheet", sheets[0])

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		var missing []string
		for _, col := range []struct {
			idx  int
			name string
		}{
			{mapping.Length, "Length"},
			{mapping.Width, "Width"},
			{mapping.Height, "Height"},
			{mapping.Weight, "Weight"},
		} {
			if col.idx == -1 {
				missing = append(missing, col.name)
			}
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 5 {
		// A non-numeric length cell means an unrecognized header row
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][1]), 64); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	seen := make(map[string]bool)
	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		item, errMsg, warning := parseRow(row, mapping, rowLabel, len(result.Items))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}
		if seen[item.ID] {
			id := uniqueID(item.ID, seen)
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: Duplicate id '%s', renamed to '%s'", rowLabel, item.ID, id))
			item.ID = id
		}
		seen[item.ID] = true
		debug.Trace("import", "row parsed", "row", rowLabel, "item", item.ID, "qty", item.Quantity)

		result.Items = append(result.Items, item)
	}

	debug.Log("import", "manifest parsed", "items", len(result.Items), "errors", len(result.Errors))
	return result
}
