package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"catalogquote/cart"
	"catalogquote/services"
	"catalogquote/templates"
)

// HandleImportPage renders the tariff upload form.
// Route: GET /catalog/import
func HandleImportPage(app *pocketbase.PocketBase, store *cart.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data := templates.ImportPageData{}
		for _, f := range services.ProductTemplateFields() {
			data.Fields = append(data.Fields, templates.ImportField{
				Label:    f.Label,
				Example:  f.ExampleValue,
				Required: f.AlwaysRequired,
			})
		}

		if e.Request.Header.Get("HX-Request") == "true" {
			return templates.ImportPage(data).Render(e.Request.Context(), e.Response)
		}
		page := templates.Layout("Import tariff", store.Len(), templates.ImportPage(data))
		return page.Render(e.Request.Context(), e.Response)
	}
}

// HandleImportValidate receives a tariff file upload, validates it, and
// returns the validation report as an HTMX partial.
// Route: POST /catalog/import
func HandleImportValidate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		// Parse multipart form (max 10MB)
		if err := e.Request.ParseMultipartForm(10 << 20); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "File too large or invalid form data")
		}

		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Please select a file to upload")
		}
		defer file.Close()

		result, err := services.ValidateTariffFile(file, header.Filename)
		if err != nil {
			log.Printf("import_validate: %v", err)
			return ErrorToast(e, http.StatusBadRequest, err.Error())
		}

		data := templates.ImportReportData{
			FileName:  result.FileName,
			TotalRows: result.TotalRows,
			ValidRows: result.ValidRows,
			ErrorRows: result.ErrorRows,
			CanCommit: result.ErrorRows == 0 && result.ValidRows > 0,
		}
		for _, ve := range result.Errors {
			data.Errors = append(data.Errors, templates.ImportErrorRow{
				Row:     ve.Row,
				Field:   ve.Field,
				Message: ve.Message,
			})
		}
		if data.CanCommit {
			b, err := json.Marshal(result.ParsedRows)
			if err != nil {
				log.Printf("import_validate: marshal parsed rows: %v", err)
				data.CanCommit = false
			} else {
				data.ParsedRowsJSON = string(b)
			}
		}

		return templates.ImportReport(data).Render(e.Request.Context(), e.Response)
	}
}

// HandleImportCommit writes the validated rows to the products collection.
// Route: POST /catalog/import/commit
func HandleImportCommit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		var parsedRows []map[string]string
		if err := json.Unmarshal([]byte(e.Request.FormValue("rows")), &parsedRows); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid import data")
		}
		if len(parsedRows) == 0 {
			return ErrorToast(e, http.StatusBadRequest, "Nothing to import")
		}

		result, err := services.CommitTariffImport(app, parsedRows)
		if err != nil {
			log.Printf("import_commit: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Import failed")
		}

		SetToast(e, "success", fmt.Sprintf("Imported %d products", result.Imported+result.Updated))
		data := templates.ImportResultData{
			Imported: result.Imported,
			Updated:  result.Updated,
			Failed:   result.Failed,
		}
		return templates.ImportResult(data).Render(e.Request.Context(), e.Response)
	}
}
