package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/xuri/excelize/v2"
)

// TemplateField describes one column in a tariff import file.
type TemplateField struct {
	Key            string // internal name, matches PocketBase field name
	Label          string // human-readable header
	ExampleValue   string
	AlwaysRequired bool
}

// ProductTemplateFields returns the ordered list of columns for tariff imports.
func ProductTemplateFields() []TemplateField {
	return []TemplateField{
		{Key: "reference", Label: "Reference", ExampleValue: "A1-125", AlwaysRequired: true},
		{Key: "description", Label: "Description", ExampleValue: "Cutting disc 125mm", AlwaysRequired: true},
		{Key: "standard_price", Label: "Standard Price", ExampleValue: "10.50", AlwaysRequired: true},
		{Key: "net_condition", Label: "Net Condition", ExampleValue: "8,50 € a partir de 24 uds"},
	}
}

// ValidationError represents a single field-level error on one row.
type ValidationError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult is returned after parsing and validating an uploaded file.
type ValidationResult struct {
	TotalRows  int                 `json:"total_rows"`
	ValidRows  int                 `json:"valid_rows"`
	ErrorRows  int                 `json:"error_rows"`
	Errors     []ValidationError   `json:"errors"`
	ParsedRows []map[string]string `json:"-"`
	FileName   string              `json:"-"`
}

// parseCSV reads a CSV file and returns headers + data rows.
func parseCSV(file io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(allRows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	headers := allRows[0]
	dataRows := allRows[1:]
	return headers, dataRows, nil
}

// parseExcel reads an xlsx file and returns headers + data rows from the first sheet.
func parseExcel(file multipart.File) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	headers := rows[0]
	dataRows := rows[1:]
	return headers, dataRows, nil
}

// mapHeadersToFields maps uploaded column headers to TemplateField keys.
// Returns an ordered list of field keys (one per column, "" for columns that
// were not recognized) plus the unrecognized header labels.
func mapHeadersToFields(headers []string, fields []TemplateField) ([]string, []string) {
	labelToKey := make(map[string]string, len(fields))
	for _, f := range fields {
		normalized := strings.ToLower(strings.TrimSpace(f.Label))
		labelToKey[normalized] = f.Key
		// Accept the internal key as a header too.
		labelToKey[f.Key] = f.Key
	}

	mapped := make([]string, len(headers))
	var unrecognized []string

	for i, h := range headers {
		norm := strings.ToLower(strings.TrimSpace(h))
		norm = strings.TrimSuffix(norm, " *")
		norm = strings.TrimSpace(norm)

		if key, ok := labelToKey[norm]; ok {
			mapped[i] = key
		} else {
			mapped[i] = ""
			unrecognized = append(unrecognized, h)
		}
	}
	return mapped, unrecognized
}

// ValidateTariffFile parses and validates an uploaded tariff file
// (.csv or .xlsx) against the product template columns.
func ValidateTariffFile(file multipart.File, fileName string) (*ValidationResult, error) {
	fields := ProductTemplateFields()

	var headers []string
	var dataRows [][]string
	var err error

	lowerName := strings.ToLower(fileName)
	switch {
	case strings.HasSuffix(lowerName, ".csv"):
		headers, dataRows, err = parseCSV(file)
	case strings.HasSuffix(lowerName, ".xlsx"):
		headers, dataRows, err = parseExcel(file)
	default:
		return nil, fmt.Errorf("unsupported file format: must be .csv or .xlsx")
	}
	if err != nil {
		return nil, err
	}

	columnKeys, _ := mapHeadersToFields(headers, fields)

	keyToLabel := make(map[string]string, len(fields))
	isRequired := make(map[string]bool)
	for _, f := range fields {
		keyToLabel[f.Key] = f.Label
		if f.AlwaysRequired {
			isRequired[f.Key] = true
		}
	}

	result := &ValidationResult{
		TotalRows:  len(dataRows),
		FileName:   fileName,
		ParsedRows: make([]map[string]string, 0, len(dataRows)),
	}

	seenRefs := make(map[string]int)

	for rowIdx, row := range dataRows {
		rowNum := rowIdx + 2 // 1-indexed, +1 for header row
		rowData := make(map[string]string)
		var rowErrors []ValidationError

		for colIdx, key := range columnKeys {
			if key == "" {
				continue
			}
			value := ""
			if colIdx < len(row) {
				value = strings.TrimSpace(row[colIdx])
			}
			rowData[key] = value
		}

		for key := range isRequired {
			if rowData[key] == "" {
				rowErrors = append(rowErrors, ValidationError{
					Row:     rowNum,
					Field:   keyToLabel[key],
					Message: fmt.Sprintf("%s is required", keyToLabel[key]),
				})
			}
		}

		if raw := rowData["standard_price"]; raw != "" {
			price, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
			if err != nil || price < 0 {
				rowErrors = append(rowErrors, ValidationError{
					Row:     rowNum,
					Field:   "Standard Price",
					Message: "must be a non-negative number",
				})
			}
		}

		if ref := rowData["reference"]; ref != "" {
			if prev, dup := seenRefs[ref]; dup {
				rowErrors = append(rowErrors, ValidationError{
					Row:     rowNum,
					Field:   "Reference",
					Message: fmt.Sprintf("duplicate of row %d", prev),
				})
			} else {
				seenRefs[ref] = rowNum
			}
		}

		if len(rowErrors) > 0 {
			result.Errors = append(result.Errors, rowErrors...)
			result.ErrorRows++
		} else {
			result.ValidRows++
		}
		result.ParsedRows = append(result.ParsedRows, rowData)
	}

	return result, nil
}

// ImportResult holds the outcome of a tariff commit.
type ImportResult struct {
	TotalRows int               `json:"total_rows"`
	Imported  int               `json:"imported"`
	Updated   int               `json:"updated"`
	Failed    int               `json:"failed"`
	Errors    []ValidationError `json:"errors,omitempty"`
}

// CommitTariffImport upserts validated tariff rows into the products
// collection, keyed by reference. The net condition text is parsed into its
// structured minimum quantity and net unit price here, at load time, so the
// pricing path never touches free text.
func CommitTariffImport(app *pocketbase.PocketBase, parsedRows []map[string]string) (*ImportResult, error) {
	col, err := app.FindCollectionByNameOrId("products")
	if err != nil {
		return nil, fmt.Errorf("products collection not found: %w", err)
	}

	result := &ImportResult{TotalRows: len(parsedRows)}

	for rowIdx, rowData := range parsedRows {
		rowNum := rowIdx + 2

		ref := rowData["reference"]
		price, err := strconv.ParseFloat(strings.ReplaceAll(rowData["standard_price"], ",", "."), 64)
		if ref == "" || rowData["description"] == "" || err != nil || price < 0 {
			result.Failed++
			result.Errors = append(result.Errors, ValidationError{
				Row:     rowNum,
				Field:   "Reference",
				Message: "row failed revalidation",
			})
			continue
		}

		record, findErr := app.FindFirstRecordByData(col, "reference", ref)
		updated := findErr == nil && record != nil
		if !updated {
			record = core.NewRecord(col)
			record.Set("reference", ref)
		}

		nc := ParseNetCondition(rowData["net_condition"])
		record.Set("description", rowData["description"])
		record.Set("standard_price", price)
		record.Set("net_condition", nc.Note)
		record.Set("min_qty", nc.MinQty)
		record.Set("net_unit_price", nc.NetUnitPrice)

		if err := app.Save(record); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, ValidationError{
				Row:     rowNum,
				Field:   "Reference",
				Message: fmt.Sprintf("save failed: %v", err),
			})
			continue
		}

		if updated {
			result.Updated++
		} else {
			result.Imported++
		}
	}

	return result, nil
}
