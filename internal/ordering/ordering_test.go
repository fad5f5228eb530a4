package ordering

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type orderedItem struct {
	ID           string `gorm:"primaryKey"`
	OwnerID      string
	Name         string
	DisplayOrder int
}

func (orderedItem) TableName() string { return "ordered_items" }

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&orderedItem{}))
	return db
}

func seedItems(t *testing.T, db *gorm.DB, ownerID string, names ...string) {
	t.Helper()
	for i, name := range names {
		require.NoError(t, db.Create(&orderedItem{
			ID:           fmt.Sprintf("%s-%s", ownerID, name),
			OwnerID:      ownerID,
			Name:         name,
			DisplayOrder: i + 1,
		}).Error)
	}
}

func orderOf(t *testing.T, db *gorm.DB, ownerID string) []string {
	t.Helper()
	var items []orderedItem
	require.NoError(t, db.Where("owner_id = ?", ownerID).Order("display_order").Find(&items).Error)
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
		assert.Equal(t, i+1, item.DisplayOrder, "sequence must stay dense")
	}
	return names
}

// moveItem exercises both halves of the reorder contract the way a
// service would: shift the others, then set the moved row, in one
// transaction.
func moveItem(t *testing.T, db *gorm.DB, list List, ownerID, name string, newPos int) {
	t.Helper()
	err := db.Transaction(func(tx *gorm.DB) error {
		var item orderedItem
		if err := tx.First(&item, "owner_id = ? AND name = ?", ownerID, name).Error; err != nil {
			return err
		}
		if err := list.Reorder(tx, item.ID, ownerID, item.DisplayOrder, newPos); err != nil {
			return err
		}
		return tx.Model(&item).Update("display_order", newPos).Error
	})
	require.NoError(t, err)
}

func TestNextPosition(t *testing.T) {
	db := openTestDB(t)
	list := List{Table: "ordered_items", OwnerColumn: "owner_id"}

	pos, err := list.NextPosition(db, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, pos, "empty list starts at 1")

	seedItems(t, db, "u1", "a", "b", "c")

	pos, err = list.NextPosition(db, "u1")
	require.NoError(t, err)
	assert.Equal(t, 4, pos)

	pos, err = list.NextPosition(db, "u2")
	require.NoError(t, err)
	assert.Equal(t, 1, pos, "other owners are not affected")
}

func TestReorderToEarlierPosition(t *testing.T) {
	db := openTestDB(t)
	list := List{Table: "ordered_items", OwnerColumn: "owner_id"}
	seedItems(t, db, "u1", "a", "b", "c", "d")

	moveItem(t, db, list, "u1", "c", 1)

	assert.Equal(t, []string{"c", "a", "b", "d"}, orderOf(t, db, "u1"))
}

func TestReorderToLaterPosition(t *testing.T) {
	db := openTestDB(t)
	list := List{Table: "ordered_items", OwnerColumn: "owner_id"}
	seedItems(t, db, "u1", "a", "b", "c", "d")

	moveItem(t, db, list, "u1", "a", 3)

	assert.Equal(t, []string{"b", "c", "a", "d"}, orderOf(t, db, "u1"))
}

func TestReorderSamePositionIsNoop(t *testing.T) {
	db := openTestDB(t)
	list := List{Table: "ordered_items", OwnerColumn: "owner_id"}
	seedItems(t, db, "u1", "a", "b", "c")

	require.NoError(t, list.Reorder(db, "u1-b", "u1", 2, 2))

	assert.Equal(t, []string{"a", "b", "c"}, orderOf(t, db, "u1"))
}

func TestReorderScopedToOwner(t *testing.T) {
	db := openTestDB(t)
	list := List{Table: "ordered_items", OwnerColumn: "owner_id"}
	seedItems(t, db, "u1", "a", "b", "c")
	seedItems(t, db, "u2", "x", "y", "z")

	moveItem(t, db, list, "u1", "c", 1)

	assert.Equal(t, []string{"c", "a", "b"}, orderOf(t, db, "u1"))
	assert.Equal(t, []string{"x", "y", "z"}, orderOf(t, db, "u2"))
}

func TestShiftFromOpensGap(t *testing.T) {
	db := openTestDB(t)
	list := List{Table: "ordered_items", OwnerColumn: "owner_id"}
	seedItems(t, db, "u1", "a", "b", "c")

	require.NoError(t, list.ShiftFrom(db, "u1", 2))

	var items []orderedItem
	require.NoError(t, db.Where("owner_id = ?", "u1").Order("display_order").Find(&items).Error)
	assert.Equal(t, 1, items[0].DisplayOrder)
	assert.Equal(t, 3, items[1].DisplayOrder)
	assert.Equal(t, 4, items[2].DisplayOrder)
}

func TestShiftAfterDeleteClosesGap(t *testing.T) {
	db := openTestDB(t)
	list := List{Table: "ordered_items", OwnerColumn: "owner_id"}
	seedItems(t, db, "u1", "a", "b", "c")

	require.NoError(t, db.Delete(&orderedItem{}, "id = ?", "u1-b").Error)
	require.NoError(t, list.ShiftAfterDelete(db, "u1", 2))

	assert.Equal(t, []string{"a", "c"}, orderOf(t, db, "u1"))
}
