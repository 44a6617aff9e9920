// Package database handles database connections and schema inspection.
//
// It wraps GORM to open MySQL connections (production) or sqlite connections (local
// runs and tests) from the application's configuration.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns let callers verify that a table has the columns
// a loader expects before querying it. The schema catalog uses this to report a
// readable error when the schema_items table is missing or incomplete.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    return err
//	}
//	missing, err := database.MissingColumns(db, "schema_items", []string{"defindex", "item_slot"})
package database
