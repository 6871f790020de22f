package items

import (
	"github.com/google/uuid"

	"github.com/svaldeco/atelierq-backend/pkg/db/models"
	"github.com/svaldeco/atelierq-backend/pkg/enums"
)

// Editor identifies who is making an update and in which capacity. Admins
// bypass the ownership check; everyone else must own the item.
type Editor struct {
	UserID  uuid.UUID
	Role    enums.EditorRole
	IsAdmin bool
}

// UpdateResult is what a committed (or no-op) update returns to the caller.
type UpdateResult struct {
	Item                *models.Item
	EditRecords         []models.ItemEditRecord
	Events              []string
	NoChanges           bool
	Revision            int
	RevisionIncremented bool
	StaleBidIDs         []uuid.UUID
	NotifiedSupplierIDs []uuid.UUID
}

// CreateItemInput is the minimal payload for creating an item on a board.
type CreateItemInput struct {
	BoardID     uuid.UUID
	Title       string
	Description *string
	ItemType    string
	Status      string
	Quantity    int
	Tags        []string
}
