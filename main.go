package main

import (
	"log"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"catalogquote/cart"
	"catalogquote/collections"
	"catalogquote/handlers"
	"catalogquote/services"
)

func main() {
	app := pocketbase.New()

	// One cart and one quote flow per running instance.
	store := cart.NewStore()
	flow := services.NewMarginFlow()

	// Create collections and seed the demo catalog on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// Serve static files from ./static
		se.Router.GET("/static/{path...}", apis.Static(os.DirFS("./static"), false))

		// ── Catalog search ──────────────────────────────────────
		se.Router.GET("/", handlers.HandleHome(app, store))
		se.Router.GET("/search", handlers.HandleSearch(app))

		// ── Cart ────────────────────────────────────────────────
		se.Router.GET("/cart", handlers.HandleCartPanel(store))
		se.Router.POST("/cart/items", handlers.HandleCartAdd(app, store))
		se.Router.DELETE("/cart/items/{index}", handlers.HandleCartRemove(store))
		se.Router.DELETE("/cart", handlers.HandleCartClear(store))

		// ── Client quote flow ───────────────────────────────────
		se.Router.GET("/quote/new", handlers.HandleQuoteNew(store, flow))
		se.Router.POST("/quote/confirm", handlers.HandleQuoteConfirm(app, store, flow))
		se.Router.POST("/quote/cancel", handlers.HandleQuoteCancel(store, flow))

		// ── Supplier order ──────────────────────────────────────
		se.Router.POST("/order/supplier", handlers.HandleSupplierOrder(store))

		// ── Cart exports ────────────────────────────────────────
		se.Router.GET("/cart/export/excel", handlers.HandleCartExportExcel(store))
		se.Router.GET("/cart/export/pdf", handlers.HandleCartExportPDF(store))

		// ── Tariff import ───────────────────────────────────────
		se.Router.GET("/catalog/import", handlers.HandleImportPage(app, store))
		se.Router.POST("/catalog/import", handlers.HandleImportValidate(app))
		se.Router.POST("/catalog/import/commit", handlers.HandleImportCommit(app))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
