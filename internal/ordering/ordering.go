// Package ordering maintains a dense per-owner display_order sequence.
// Applications and technologies share one implementation parameterized
// by table and owner column instead of carrying two copies of the same
// shift logic.
package ordering

import (
	"gorm.io/gorm"
)

// List describes one ordered collection: which table holds it and which
// column scopes it to an owner.
type List struct {
	Table       string
	OwnerColumn string
}

// ShiftFrom opens a gap at startPos: every row of the owner with
// display_order >= startPos moves up by one. Single bulk UPDATE.
func (l List) ShiftFrom(db *gorm.DB, ownerID string, startPos int) error {
	return db.Table(l.Table).
		Where(l.OwnerColumn+" = ? AND display_order >= ?", ownerID, startPos).
		Update("display_order", gorm.Expr("display_order + ?", 1)).Error
}

// Reorder shifts the other rows of the owner to make room for moving
// one row from oldPos to newPos. The moved row itself is excluded and
// NOT repositioned here; the caller must set its display_order to
// newPos as the second half of the contract, inside the same
// transaction.
func (l List) Reorder(db *gorm.DB, id, ownerID string, oldPos, newPos int) error {
	if oldPos == newPos {
		return nil
	}

	if newPos < oldPos {
		// Moving earlier: push [newPos, oldPos) down the list.
		return db.Table(l.Table).
			Where("id != ? AND "+l.OwnerColumn+" = ? AND display_order >= ? AND display_order < ?",
				id, ownerID, newPos, oldPos).
			Update("display_order", gorm.Expr("display_order + ?", 1)).Error
	}

	// Moving later: close the gap left behind, (oldPos, newPos].
	return db.Table(l.Table).
		Where("id != ? AND "+l.OwnerColumn+" = ? AND display_order > ? AND display_order <= ?",
			id, ownerID, oldPos, newPos).
		Update("display_order", gorm.Expr("display_order - ?", 1)).Error
}

// ShiftAfterDelete closes the gap a deletion left: every row of the
// owner past deletedPos moves down by one.
func (l List) ShiftAfterDelete(db *gorm.DB, ownerID string, deletedPos int) error {
	return db.Table(l.Table).
		Where(l.OwnerColumn+" = ? AND display_order > ?", ownerID, deletedPos).
		Update("display_order", gorm.Expr("display_order - ?", 1)).Error
}

// NextPosition returns the append position for a new row: MAX+1, base 1.
func (l List) NextPosition(db *gorm.DB, ownerID string) (int, error) {
	var maxOrder int
	err := db.Table(l.Table).
		Where(l.OwnerColumn+" = ?", ownerID).
		Select("COALESCE(MAX(display_order), 0)").
		Scan(&maxOrder).Error
	if err != nil {
		return 0, err
	}
	return maxOrder + 1, nil
}
