package schema

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"listing-manager/core/database"
	"listing-manager/core/storage"
	"listing-manager/core/utils"

	"github.com/minio/minio-go/v7"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrNoItems is returned when a schema source yields no item definitions.
	ErrNoItems = errors.New("schema contains no items")
	// ErrTableIncomplete is returned when schema_items lacks required columns.
	ErrTableIncomplete = errors.New("schema_items table is missing columns")
)

// requiredColumns are the columns LoadFromDB cannot work without.
var requiredColumns = []string{"defindex", "item_slot"}

// LoadFromStorage reads a schema dump object from storage and builds a Catalog.
func LoadFromStorage(ctx context.Context, client storage.Client, bucket, object string) (*Catalog, error) {
	if client == nil {
		return nil, fmt.Errorf("storage client is nil")
	}

	reader, err := client.GetObject(ctx, bucket, object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get schema object %s: %w", object, err)
	}
	defer reader.Close()

	items, err := DecodeItems(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to decode schema object %s: %w", object, err)
	}

	return NewCatalog(items), nil
}

// LoadFromDB reads every row of the schema_items table and builds a Catalog.
func LoadFromDB(ctx context.Context, db *gorm.DB) (*Catalog, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	missing, err := database.MissingColumns(db.WithContext(ctx), ItemMetadata{}.TableName(), requiredColumns)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrTableIncomplete, missing)
	}

	var items []ItemMetadata
	if err := db.WithContext(ctx).Order("defindex").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to query schema items: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	return NewCatalog(items), nil
}

// SaveToDB creates the schema_items table if needed and upserts items in batches.
func SaveToDB(ctx context.Context, db *gorm.DB, items []ItemMetadata) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}
	if len(items) == 0 {
		return ErrNoItems
	}

	if err := db.WithContext(ctx).AutoMigrate(&ItemMetadata{}); err != nil {
		return fmt.Errorf("failed to migrate schema_items: %w", err)
	}

	err := db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		CreateInBatches(items, 500).Error
	if err != nil {
		return fmt.Errorf("failed to save schema items: %w", err)
	}
	return nil
}

// Publish uploads a schema dump to storage after checking that it decodes.
func Publish(ctx context.Context, client storage.Client, bucket, object string, data []byte) (int, error) {
	items, err := DecodeItems(bytes.NewReader(data))
	if err != nil {
		return 0, err
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return 0, fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return 0, fmt.Errorf("failed to create bucket %s: %w", bucket, err)
		}
	}

	_, err = client.PutObject(ctx, bucket, object, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return 0, fmt.Errorf("failed to upload schema object %s: %w", object, err)
	}

	return len(items), nil
}

// DecodeItems parses a schema dump. Three layouts are accepted: a bare array of
// items, an object with an "items" array, or the full schema wrapper
// {"raw":{"schema":{"items":[...]}}}. Numeric fields may be encoded as strings.
func DecodeItems(r io.Reader) ([]ItemMetadata, error) {
	var doc any
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid schema json: %w", err)
	}

	rows := findItems(doc)
	if len(rows) == 0 {
		return nil, ErrNoItems
	}

	items := make([]ItemMetadata, 0, len(rows))
	for _, row := range rows {
		m, ok := row.(map[string]any)
		if !ok {
			continue
		}
		if _, ok := m["defindex"]; !ok {
			continue
		}
		items = append(items, ItemMetadata{
			Defindex:    utils.ToInt(m["defindex"]),
			Name:        stringField(m, "name"),
			ItemName:    stringField(m, "item_name"),
			ItemClass:   stringField(m, "item_class"),
			ItemSlot:    stringField(m, "item_slot"),
			ItemQuality: utils.ToInt(m["item_quality"]),
			CraftClass:  stringField(m, "craft_class"),
		})
	}

	if len(items) == 0 {
		return nil, ErrNoItems
	}
	return items, nil
}

func findItems(doc any) []any {
	switch v := doc.(type) {
	case []any:
		return v
	case map[string]any:
		if items, ok := v["items"].([]any); ok {
			return items
		}
		if raw, ok := v["raw"].(map[string]any); ok {
			return findItems(raw["schema"])
		}
		if schema, ok := v["schema"].(map[string]any); ok {
			return findItems(schema)
		}
	}
	return nil
}

func stringField(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	return utils.ToString(v)
}
