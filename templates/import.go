package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

type ImportField struct {
	Label    string
	Example  string
	Required bool
}

type ImportPageData struct {
	Fields []ImportField
}

type ImportErrorRow struct {
	Row     int
	Field   string
	Message string
}

type ImportReportData struct {
	FileName  string
	TotalRows int
	ValidRows int
	ErrorRows int
	Errors    []ImportErrorRow
	CanCommit bool
	// ParsedRowsJSON carries the validated rows into the commit form.
	ParsedRowsJSON string
}

type ImportResultData struct {
	Imported int
	Updated  int
	Failed   int
}

// ImportPage renders the tariff upload form and the expected column
// layout.
func ImportPage(data ImportPageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<section class="import">
<h2>Import tariff</h2>
<form hx-post="/catalog/import" hx-target="#import-report" hx-swap="innerHTML" enctype="multipart/form-data">
<input type="file" name="file" accept=".csv,.xlsx" required>
<button type="submit">Validate</button>
</form>
<table class="import-fields">
<thead><tr><th>Column</th><th>Example</th></tr></thead>
<tbody>
`); err != nil {
			return err
		}
		for _, f := range data.Fields {
			label := templ.EscapeString(f.Label)
			if f.Required {
				label += " *"
			}
			if _, err := fmt.Fprintf(w, `<tr><td>%s</td><td>%s</td></tr>
`, label, templ.EscapeString(f.Example)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</tbody>
</table>
<div id="import-report"></div>
</section>
`)
		return err
	})
}

// ImportReport renders the validation summary for an uploaded file.
func ImportReport(data ImportReportData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<div class="import-report">
<h3>%s</h3>
<p>%d rows checked, %d valid, %d with errors.</p>
`, templ.EscapeString(data.FileName), data.TotalRows, data.ValidRows, data.ErrorRows); err != nil {
			return err
		}
		if len(data.Errors) > 0 {
			if _, err := io.WriteString(w, `<ul class="import-errors">
`); err != nil {
				return err
			}
			for _, e := range data.Errors {
				if _, err := fmt.Fprintf(w, `<li>Row %d, %s: %s</li>
`, e.Row, templ.EscapeString(e.Field), templ.EscapeString(e.Message)); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, `</ul>
`); err != nil {
				return err
			}
		}
		if data.CanCommit {
			if _, err := fmt.Fprintf(w, `<form hx-post="/catalog/import/commit" hx-target="#import-report" hx-swap="innerHTML">
<input type="hidden" name="rows" value="%s">
<button type="submit">Import valid rows</button>
</form>
`, templ.EscapeString(data.ParsedRowsJSON)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>
`)
		return err
	})
}

// ImportResult renders the outcome of a committed import.
func ImportResult(data ImportResultData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div class="import-result">
<p>%d products imported, %d updated, %d failed.</p>
<a href="/" class="button">Back to search</a>
</div>
`, data.Imported, data.Updated, data.Failed)
		return err
	})
}
