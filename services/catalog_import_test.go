package services

import (
	"bytes"
	"strings"
	"testing"

	"catalogquote/testhelpers"
)

// memFile adapts an in-memory buffer to multipart.File for tests.
type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

func newMemFile(data []byte) memFile {
	return memFile{bytes.NewReader(data)}
}

func TestParseCSV_Valid(t *testing.T) {
	input := "Reference,Description,Standard Price\nA1,Cutting disc,10.50\nB2,Drill bit,25\n"
	headers, rows, err := parseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parseCSV() error = %v", err)
	}
	if len(headers) != 3 {
		t.Errorf("expected 3 headers, got %d", len(headers))
	}
	if len(rows) != 2 {
		t.Errorf("expected 2 data rows, got %d", len(rows))
	}
}

func TestParseCSV_HeaderOnly(t *testing.T) {
	input := "Reference,Description\n"
	_, _, err := parseCSV(strings.NewReader(input))
	if err == nil {
		t.Error("expected error for header-only file")
	}
	if !strings.Contains(err.Error(), "at least one data row") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestParseCSV_Empty(t *testing.T) {
	_, _, err := parseCSV(strings.NewReader(""))
	if err == nil {
		t.Error("expected error for empty file")
	}
}

func TestMapHeadersToFields(t *testing.T) {
	fields := ProductTemplateFields()

	t.Run("label match", func(t *testing.T) {
		headers := []string{"Reference", "Description", "Standard Price", "Net Condition"}
		mapped, unrecognized := mapHeadersToFields(headers, fields)
		want := []string{"reference", "description", "standard_price", "net_condition"}
		for i, key := range want {
			if mapped[i] != key {
				t.Errorf("column %d mapped to %q, want %q", i, mapped[i], key)
			}
		}
		if len(unrecognized) != 0 {
			t.Errorf("unexpected unrecognized headers: %v", unrecognized)
		}
	})

	t.Run("key and case tolerance", func(t *testing.T) {
		headers := []string{"reference", "DESCRIPTION", "standard_price"}
		mapped, _ := mapHeadersToFields(headers, fields)
		if mapped[0] != "reference" || mapped[1] != "description" || mapped[2] != "standard_price" {
			t.Errorf("unexpected mapping: %v", mapped)
		}
	})

	t.Run("unknown columns ignored", func(t *testing.T) {
		headers := []string{"Reference", "Warehouse Aisle"}
		mapped, unrecognized := mapHeadersToFields(headers, fields)
		if mapped[1] != "" {
			t.Errorf("unknown column mapped to %q", mapped[1])
		}
		if len(unrecognized) != 1 || unrecognized[0] != "Warehouse Aisle" {
			t.Errorf("unrecognized = %v", unrecognized)
		}
	})
}

func TestValidateTariffFile(t *testing.T) {
	csvData := "Reference,Description,Standard Price,Net Condition\n" +
		"A1,Cutting disc,10.50,\"8,50 € a partir de 24 uds\"\n" +
		",Missing ref,5.00,\n" +
		"B2,Bad price,abc,\n" +
		"A1,Duplicate ref,7.00,\n"

	result, err := ValidateTariffFile(newMemFile([]byte(csvData)), "tariff.csv")
	if err != nil {
		t.Fatalf("ValidateTariffFile() error = %v", err)
	}

	if result.TotalRows != 4 {
		t.Errorf("totalRows = %d, want 4", result.TotalRows)
	}
	if result.ValidRows != 1 {
		t.Errorf("validRows = %d, want 1", result.ValidRows)
	}
	if result.ErrorRows != 3 {
		t.Errorf("errorRows = %d, want 3", result.ErrorRows)
	}

	var messages []string
	for _, e := range result.Errors {
		messages = append(messages, e.Message)
	}
	joined := strings.Join(messages, "; ")
	for _, want := range []string{"Reference is required", "non-negative number", "duplicate of row"} {
		if !strings.Contains(joined, want) {
			t.Errorf("errors missing %q in %q", want, joined)
		}
	}
}

func TestValidateTariffFile_UnsupportedFormat(t *testing.T) {
	_, err := ValidateTariffFile(newMemFile([]byte("x")), "tariff.txt")
	if err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestCommitTariffImport(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	rows := []map[string]string{
		{"reference": "A1", "description": "Cutting disc", "standard_price": "10,50", "net_condition": "8,50 € a partir de 24 uds"},
		{"reference": "B2", "description": "Drill bit", "standard_price": "25.00"},
	}

	result, err := CommitTariffImport(app, rows)
	if err != nil {
		t.Fatalf("CommitTariffImport() error = %v", err)
	}
	if result.Imported != 2 || result.Failed != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}

	rec, err := app.FindFirstRecordByData("products", "reference", "A1")
	if err != nil {
		t.Fatalf("imported product not found: %v", err)
	}
	if got := rec.GetFloat("standard_price"); got != 10.5 {
		t.Errorf("standard_price = %v, want 10.5", got)
	}
	// Net condition parsed into structured fields at load time.
	if got := rec.GetInt("min_qty"); got != 24 {
		t.Errorf("min_qty = %d, want 24", got)
	}
	if got := rec.GetFloat("net_unit_price"); got != 8.5 {
		t.Errorf("net_unit_price = %v, want 8.5", got)
	}

	// Re-import updates by reference instead of duplicating.
	rows[0]["standard_price"] = "11.00"
	result, err = CommitTariffImport(app, rows[:1])
	if err != nil {
		t.Fatalf("CommitTariffImport() update error = %v", err)
	}
	if result.Updated != 1 || result.Imported != 0 {
		t.Fatalf("unexpected update result: %+v", result)
	}

	all, err := app.FindRecordsByFilter("products", "reference = {:ref}", "", 0, 0, map[string]any{"ref": "A1"})
	if err != nil {
		t.Fatalf("find after update: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("expected 1 record for A1 after re-import, got %d", len(all))
	}
}

func TestCommitTariffImport_BadRow(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	rows := []map[string]string{
		{"reference": "", "description": "No ref", "standard_price": "5"},
	}

	result, err := CommitTariffImport(app, rows)
	if err != nil {
		t.Fatalf("CommitTariffImport() error = %v", err)
	}
	if result.Failed != 1 || result.Imported != 0 {
		t.Errorf("unexpected result: %+v", result)
	}
}
