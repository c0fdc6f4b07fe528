package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// ── Definition structs ───────────────────────────────────────────────────

type productDef struct {
	reference    string
	description  string
	price        float64
	netCondition string
	minQty       int
	netPrice     float64
}

type stockDef struct {
	reference string
	state     string
	qty       int
}

// Seed populates the products and stock_levels collections with a starter
// tariff so the tool is usable immediately. The net tier columns hold the
// structured extraction of each net condition, the same shape the tariff
// import writes. It is safe to call on every startup because it returns
// early if any product records already exist.
func Seed(app *pocketbase.PocketBase) error {
	// ── idempotency: skip if products already exist ──────────────────
	productsCol, err := app.FindCollectionByNameOrId("products")
	if err != nil {
		return fmt.Errorf("seed: could not find products collection: %w", err)
	}
	existing, err := app.FindAllRecords(productsCol)
	if err != nil {
		return fmt.Errorf("seed: could not query products: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: products collection is empty – inserting seed data …")

	stockCol, err := app.FindCollectionByNameOrId("stock_levels")
	if err != nil {
		return fmt.Errorf("seed: could not find stock_levels collection: %w", err)
	}

	products := []productDef{
		{"CD-125", "Cutting disc 125mm inox", 1.85, "1,40 € a partir de 50 uds", 50, 1.40},
		{"CD-230", "Cutting disc 230mm steel", 3.20, "2,60 € a partir de 25 uds", 25, 2.60},
		{"FD-125", "Flap disc 125mm grain 60", 2.40, "", 0, 0},
		{"DB-SET10", "Drill bit set HSS 1-10mm", 24.90, "neto 19,90 desde 10 uds", 10, 19.90},
		{"WB-180", "Wire brush cup 180mm", 8.75, "", 0, 0},
		{"GL-NIT9", "Nitrile work gloves size 9", 1.95, "1,50 € por 12 pcs", 12, 1.50},
		{"SB-40", "Sanding belt 40 grain", 4.10, "3,30 € a partir de 20 uds", 20, 3.30},
		{"MH-750", "Demolition hammer chisel 750mm", 31.00, "", 0, 0},
	}

	stock := []stockDef{
		{"CD-125", "in_stock", 240},
		{"CD-230", "in_stock", 0},
		{"FD-125", "build_3_5", 0},
		{"DB-SET10", "in_stock", 18},
		{"WB-180", "build_10_15", 0},
		{"GL-NIT9", "in_stock", 500},
		{"SB-40", "unavailable", 0},
	}

	for _, p := range products {
		record := core.NewRecord(productsCol)
		record.Set("reference", p.reference)
		record.Set("description", p.description)
		record.Set("standard_price", p.price)
		record.Set("net_condition", p.netCondition)
		record.Set("min_qty", p.minQty)
		record.Set("net_unit_price", p.netPrice)
		if err := app.Save(record); err != nil {
			return fmt.Errorf("seed: could not save product %s: %w", p.reference, err)
		}
	}

	for _, s := range stock {
		record := core.NewRecord(stockCol)
		record.Set("reference", s.reference)
		record.Set("state", s.state)
		record.Set("qty", s.qty)
		if err := app.Save(record); err != nil {
			return fmt.Errorf("seed: could not save stock for %s: %w", s.reference, err)
		}
	}

	log.Printf("seed: inserted %d products and %d stock rows", len(products), len(stock))
	return nil
}
