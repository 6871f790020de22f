package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/svaldeco/atelierq-backend/pkg/enums"
)

// Notification stores in-app notification payloads for users and suppliers.
type Notification struct {
	ID            uuid.UUID              `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	RecipientKind enums.RecipientKind    `gorm:"column:recipient_kind;type:recipient_kind;not null"`
	RecipientID   uuid.UUID              `gorm:"column:recipient_id;type:uuid;not null"`
	Type          enums.NotificationType `gorm:"type:notification_type;not null"`
	Title         string                 `gorm:"type:text;not null"`
	Message       string                 `gorm:"type:text;not null"`
	ItemID        *uuid.UUID             `gorm:"column:item_id;type:uuid"`
	BoardID       *uuid.UUID             `gorm:"column:board_id;type:uuid"`
	ReadAt        *time.Time             `gorm:"type:timestamptz"`
	CreatedAt     time.Time              `gorm:"type:timestamptz;default:now()"`
}
