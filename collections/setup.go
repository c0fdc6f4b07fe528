package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures the products and stock_levels
// collections exist. Products carry both the free-text net condition from
// the tariff feed and its structured extraction (min_qty, net_unit_price),
// parsed once at load time.
func Setup(app *pocketbase.PocketBase) {
	ensureCollection(app, "products", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "reference", Required: true})
		c.Fields.Add(&core.TextField{Name: "description", Required: true})
		c.Fields.Add(&core.NumberField{Name: "standard_price", Required: true})
		c.Fields.Add(&core.TextField{Name: "net_condition", Required: false})
		c.Fields.Add(&core.NumberField{Name: "min_qty", Required: false})
		c.Fields.Add(&core.NumberField{Name: "net_unit_price", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
		c.AddIndex("idx_products_reference", true, "reference", "")
	})

	ensureCollection(app, "stock_levels", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "reference", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "state",
			Required:  true,
			Values:    []string{"in_stock", "build_3_5", "build_10_15", "unavailable"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "qty", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
		c.AddIndex("idx_stock_levels_reference", true, "reference", "")
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
