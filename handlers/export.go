package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase/core"

	"catalogquote/cart"
	"catalogquote/services"
)

func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}

// HandleCartExportExcel generates and downloads the cart cost summary as
// an Excel file.
func HandleCartExportExcel(store *cart.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if store.Len() == 0 {
			return ErrorToast(e, http.StatusBadRequest, "The cart is empty")
		}

		data := services.BuildExportData(store.Items(), time.Now())

		xlsxBytes, err := services.GenerateExcel(data)
		if err != nil {
			log.Printf("export_excel: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := fmt.Sprintf("Cart_%s.xlsx", sanitizeFilename(data.CreatedDate))

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleCartExportPDF generates and downloads the client quote as a PDF.
// The margin percentage comes from the "margin" query parameter.
func HandleCartExportPDF(store *cart.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if store.Len() == 0 {
			return ErrorToast(e, http.StatusBadRequest, "The cart is empty")
		}

		margin := services.ParseMargin(e.Request.URL.Query().Get("margin"))
		quote := services.BuildClientQuote(store.Items(), margin, time.Now())

		pdfBytes, err := services.GenerateQuotePDF(quote)
		if err != nil {
			log.Printf("export_pdf: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate PDF file")
		}

		filename := fmt.Sprintf("Quote_%s.pdf", sanitizeFilename(quote.Reference))

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}
