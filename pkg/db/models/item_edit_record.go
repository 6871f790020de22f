package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/svaldeco/atelierq-backend/pkg/enums"
)

// ItemEditRecord is one row of the append-only audit trail: exactly one
// record per changed field per committed update, never written when the old
// and new values match.
type ItemEditRecord struct {
	ID           uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ItemID       uuid.UUID        `gorm:"column:item_id;type:uuid;not null;index"`
	FieldName    string           `gorm:"column:field_name;not null"`
	OldValue     *string          `gorm:"column:old_value"`
	NewValue     *string          `gorm:"column:new_value"`
	EditorUserID uuid.UUID        `gorm:"column:editor_user_id;type:uuid;not null"`
	EditorRole   enums.EditorRole `gorm:"column:editor_role;type:editor_role;not null"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime"`
}
