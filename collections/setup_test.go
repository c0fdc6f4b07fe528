package collections_test

import (
	"testing"

	"github.com/pocketbase/pocketbase/core"

	"catalogquote/collections"
	"catalogquote/testhelpers"
)

// expectedCollections is the full list of collections that Setup() must create.
var expectedCollections = []string{
	"products",
	"stock_levels",
}

func TestSetup_AllCollectionsExist(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	for _, name := range expectedCollections {
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			t.Errorf("collection %q not found after Setup(): %v", name, err)
			continue
		}
		if col.Name != name {
			t.Errorf("expected collection name %q, got %q", name, col.Name)
		}
	}
}

func TestSetup_ProductFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	col, err := app.FindCollectionByNameOrId("products")
	if err != nil {
		t.Fatalf("products collection not found: %v", err)
	}

	for _, field := range []string{"reference", "description", "standard_price", "net_condition", "min_qty", "net_unit_price"} {
		if col.Fields.GetByName(field) == nil {
			t.Errorf("products collection missing field %q", field)
		}
	}
}

func TestSetup_StockStateValues(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	col, err := app.FindCollectionByNameOrId("stock_levels")
	if err != nil {
		t.Fatalf("stock_levels collection not found: %v", err)
	}

	field, ok := col.Fields.GetByName("state").(*core.SelectField)
	if !ok {
		t.Fatal("state field is not a select field")
	}
	want := map[string]bool{"in_stock": true, "build_3_5": true, "build_10_15": true, "unavailable": true}
	if len(field.Values) != len(want) {
		t.Errorf("state values = %v", field.Values)
	}
	for _, v := range field.Values {
		if !want[v] {
			t.Errorf("unexpected state value %q", v)
		}
	}
}

func TestSetup_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	// Running setup again must not fail or duplicate collections.
	collections.Setup(app)

	if _, err := app.FindCollectionByNameOrId("products"); err != nil {
		t.Errorf("products collection missing after second Setup(): %v", err)
	}
}
