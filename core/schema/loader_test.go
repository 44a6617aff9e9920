package schema

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"testing"

	"listing-manager/core/database"
	"listing-manager/core/storage/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

const sampleSchema = `{
  "items": [
    {"defindex": 200, "name": "Upgradeable TF_WEAPON_SCATTERGUN", "item_name": "Scattergun", "item_class": "tf_weapon_scattergun", "item_slot": "primary", "item_quality": 6, "craft_class": "weapon"},
    {"defindex": 1157, "name": "Kazotsky Kick", "item_name": "Taunt: Kazotsky Kick", "item_class": "tf_wearable", "item_slot": "taunt", "item_quality": 6}
  ]
}`

func TestLoadFromStorage(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "bucket", "schema/items.json", mock.Anything).
		Return(io.NopCloser(bytes.NewReader([]byte(sampleSchema))), nil)

	catalog, err := LoadFromStorage(context.Background(), client, "bucket", "schema/items.json")
	require.NoError(t, err)
	assert.Equal(t, 2, catalog.Len())

	item, ok := catalog.GetItemByDefindex(200)
	require.True(t, ok)
	assert.Equal(t, "Scattergun", item.ItemName)
	assert.Equal(t, "weapon", item.CraftClass)
	client.AssertExpectations(t)
}

func TestLoadFromStorage_GetError(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "bucket", "schema/items.json", mock.Anything).
		Return(nil, fmt.Errorf("no such key"))

	catalog, err := LoadFromStorage(context.Background(), client, "bucket", "schema/items.json")
	assert.Nil(t, catalog)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no such key")
}

func TestPublish(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "bucket").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "bucket", mock.Anything).Return(nil)
	client.On("PutObject", mock.Anything, "bucket", "schema/items.json", mock.Anything, int64(len(sampleSchema)),
		mock.MatchedBy(func(opts minio.PutObjectOptions) bool { return opts.ContentType == "application/json" })).
		Return(minio.UploadInfo{}, nil)

	count, err := Publish(context.Background(), client, "bucket", "schema/items.json", []byte(sampleSchema))
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	client.AssertExpectations(t)
}

func TestPublish_RejectsInvalidDump(t *testing.T) {
	client := new(mocks.Client)

	_, err := Publish(context.Background(), client, "bucket", "schema/items.json", []byte(`{"items": []}`))
	assert.ErrorIs(t, err, ErrNoItems)
	client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSaveAndLoadFromDB(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	items, err := DecodeItems(bytes.NewReader([]byte(sampleSchema)))
	require.NoError(t, err)
	require.NoError(t, SaveToDB(context.Background(), db, items))

	// Saving again upserts instead of failing on the primary key.
	items[1].ItemName = "Taunt: Kazotsky Kick (renamed)"
	require.NoError(t, SaveToDB(context.Background(), db, items))

	catalog, err := LoadFromDB(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, 2, catalog.Len())

	taunt, ok := catalog.GetItemByDefindex(1157)
	require.True(t, ok)
	assert.True(t, taunt.IsTaunt())
	assert.Equal(t, "Taunt: Kazotsky Kick (renamed)", taunt.ItemName)
}

func TestLoadFromDB_EmptyTable(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&ItemMetadata{}))

	_, err = LoadFromDB(context.Background(), db)
	assert.ErrorIs(t, err, ErrNoItems)
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestLoadFromDB_IncompleteTable(t *testing.T) {
	db, sqlMock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("defindex", "int(11)", "NO", "PRI", nil, "")
	sqlMock.ExpectQuery(regexp.QuoteMeta("SHOW COLUMNS FROM `schema_items`")).WillReturnRows(rows)

	_, err := LoadFromDB(context.Background(), db)
	assert.ErrorIs(t, err, ErrTableIncomplete)
	assert.Contains(t, err.Error(), "item_slot")
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestLoadFromDB_MySQL(t *testing.T) {
	db, sqlMock := setupMockDB(t)

	columns := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("defindex", "int(11)", "NO", "PRI", nil, "").
		AddRow("item_slot", "varchar(32)", "YES", "", nil, "")
	sqlMock.ExpectQuery(regexp.QuoteMeta("SHOW COLUMNS FROM `schema_items`")).WillReturnRows(columns)

	items := sqlmock.NewRows([]string{"defindex", "name", "item_name", "item_class", "item_slot", "item_quality", "craft_class"}).
		AddRow(1157, "Kazotsky Kick", "Taunt: Kazotsky Kick", "tf_wearable", "taunt", 6, "")
	sqlMock.ExpectQuery("SELECT (.+) FROM `schema_items`").WillReturnRows(items)

	catalog, err := LoadFromDB(context.Background(), db)
	require.NoError(t, err)

	item, ok := catalog.GetItemByDefindex(1157)
	require.True(t, ok)
	assert.True(t, item.IsTaunt())
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}
