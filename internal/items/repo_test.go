package items

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/svaldeco/atelierq-backend/pkg/db/models"
	"github.com/svaldeco/atelierq-backend/pkg/enums"
)

func setupItemsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	items := `
CREATE TABLE IF NOT EXISTS items (
  id TEXT PRIMARY KEY,
  board_id TEXT NOT NULL,
  owner_user_id TEXT NOT NULL,
  title TEXT NOT NULL,
  description TEXT,
  item_type TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'active',
  sourcing_type TEXT,
  product_category TEXT,
  quantity INTEGER NOT NULL DEFAULT 1,
  dimension_width_original REAL,
  dimension_depth_original REAL,
  dimension_height_original REAL,
  dimension_units_original TEXT,
  dimension_width_cm REAL,
  dimension_depth_cm REAL,
  dimension_height_cm REAL,
  cbm REAL,
  timeline_type TEXT,
  timeline_structure TEXT,
  finish_notes TEXT,
  internal_notes TEXT,
  delivery_address TEXT,
  tags TEXT,
  metadata TEXT,
  version INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	editRecords := `
CREATE TABLE IF NOT EXISTS item_edit_records (
  id TEXT PRIMARY KEY,
  item_id TEXT NOT NULL,
  field_name TEXT NOT NULL,
  old_value TEXT,
  new_value TEXT,
  editor_user_id TEXT NOT NULL,
  editor_role TEXT NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(items).Error)
	require.NoError(t, db.Exec(editRecords).Error)
	return db
}

func createTestItem(t *testing.T, repo Repository, boardID uuid.UUID, title string, created time.Time) *models.Item {
	t.Helper()

	item := &models.Item{
		ID:          uuid.New(),
		BoardID:     boardID,
		OwnerUserID: uuid.New(),
		Title:       title,
		ItemType:    enums.ItemTypeFurniture,
		Status:      enums.ItemStatusActive,
		Quantity:    1,
		Version:     1,
		CreatedAt:   created,
		UpdatedAt:   created,
	}
	require.NoError(t, repo.Create(context.Background(), item))
	return item
}

func TestRepositoryFindByID(t *testing.T) {
	db := setupItemsTestDB(t)
	repo := NewRepository(db)

	item := createTestItem(t, repo, uuid.New(), "Oak Side Table", time.Now().UTC())

	found, err := repo.FindByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, found.ID)
	assert.Equal(t, "Oak Side Table", found.Title)
	assert.Equal(t, enums.ItemTypeFurniture, found.ItemType)

	_, err = repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryListByBoard_pagination(t *testing.T) {
	db := setupItemsTestDB(t)
	repo := NewRepository(db)

	boardID := uuid.New()
	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		createTestItem(t, repo, boardID, "Item", base.Add(time.Duration(i)*time.Minute))
	}
	createTestItem(t, repo, uuid.New(), "Other board", base)

	page, next, err := repo.ListByBoard(context.Background(), boardID, 2, nil)
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.NotNil(t, next)

	rest, last, err := repo.ListByBoard(context.Background(), boardID, 2, next)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Nil(t, last)

	// newest first
	assert.True(t, page[0].CreatedAt.After(page[1].CreatedAt))
}

func TestRepositorySavePersistsDerivedFields(t *testing.T) {
	db := setupItemsTestDB(t)
	repo := NewRepository(db)

	item := createTestItem(t, repo, uuid.New(), "Marble Console", time.Now().UTC())

	width := 120.0
	cm := 120.0
	cbm := 0.6
	unit := enums.DimensionUnitCentimeter
	item.DimensionWidthOriginal = &width
	item.DimensionUnitsOriginal = &unit
	item.DimensionWidthCM = &cm
	item.CBM = &cbm
	item.Version = 2
	require.NoError(t, repo.Save(context.Background(), item))

	found, err := repo.FindByID(context.Background(), item.ID)
	require.NoError(t, err)
	require.NotNil(t, found.CBM)
	assert.InDelta(t, 0.6, *found.CBM, 1e-9)
	assert.Equal(t, 2, found.Version)
}

func TestRepositoryEditRecordsRoundTrip(t *testing.T) {
	db := setupItemsTestDB(t)
	repo := NewRepository(db)

	item := createTestItem(t, repo, uuid.New(), "Linen Armchair", time.Now().UTC())

	oldQty := "1"
	newQty := "3"
	records := []models.ItemEditRecord{
		{
			ID:           uuid.New(),
			ItemID:       item.ID,
			FieldName:    "quantity",
			OldValue:     &oldQty,
			NewValue:     &newQty,
			EditorUserID: item.OwnerUserID,
			EditorRole:   enums.EditorRoleUser,
			CreatedAt:    time.Now().UTC(),
		},
	}
	require.NoError(t, repo.InsertEditRecords(context.Background(), records))
	require.NoError(t, repo.InsertEditRecords(context.Background(), nil))

	listed, err := repo.ListEditRecords(context.Background(), item.ID, 10)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "quantity", listed[0].FieldName)
	require.NotNil(t, listed[0].NewValue)
	assert.Equal(t, "3", *listed[0].NewValue)
}
