// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"catalogquote/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestProduct creates a product record and returns it. The net
// condition fields are stored as given, mirroring what the tariff import
// writes after parsing.
func CreateTestProduct(t *testing.T, app *pocketbase.PocketBase, reference, description string, price float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("products")
	if err != nil {
		t.Fatalf("failed to find products collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("reference", reference)
	record.Set("description", description)
	record.Set("standard_price", price)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test product: %v", err)
	}

	return record
}

// CreateTestProductWithNet creates a product carrying a parsed net tier.
func CreateTestProductWithNet(t *testing.T, app *pocketbase.PocketBase, reference, description string, price float64, minQty int, netPrice float64, condition string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("products")
	if err != nil {
		t.Fatalf("failed to find products collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("reference", reference)
	record.Set("description", description)
	record.Set("standard_price", price)
	record.Set("net_condition", condition)
	record.Set("min_qty", minQty)
	record.Set("net_unit_price", netPrice)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test product: %v", err)
	}

	return record
}

// CreateTestStock creates a stock_levels record for a reference.
func CreateTestStock(t *testing.T, app *pocketbase.PocketBase, reference, state string, qty int) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("stock_levels")
	if err != nil {
		t.Fatalf("failed to find stock_levels collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("reference", reference)
	record.Set("state", state)
	record.Set("qty", qty)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test stock row: %v", err)
	}

	return record
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
