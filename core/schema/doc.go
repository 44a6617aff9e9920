// Package schema provides item metadata lookups by definition index.
//
// The encoder needs a small amount of static data per item definition (most
// importantly the item slot, which decides how unusual effects are encoded). This
// package loads that data from a schema dump and serves it from memory.
//
// # Sources
//
//   - storage: a JSON schema dump kept in the object storage bucket (MinIO/S3).
//   - database: the schema_items table, read through GORM.
//
// # Store
//
// Store wraps a load function with a TTL and singleflight so that concurrent reloads
// share one fetch, the same way the reconcile cache protects itself from stampedes.
//
//	store := schema.NewStore(func(ctx context.Context) (*schema.Catalog, error) {
//	    return schema.LoadFromStorage(ctx, client, bucket, "schema/items.json")
//	}, 0)
//	_, err := store.Reload(ctx)
//	meta, ok := store.GetItemByDefindex(5021)
package schema
