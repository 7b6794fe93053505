package models

import (
	"time"

	"gorm.io/datatypes"
)

type ActivityLog struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	Action    string            `gorm:"size:20;not null;index" json:"action"`
	Entity    string            `gorm:"size:50;not null;index" json:"entity"`
	EntityID  uint              `gorm:"index" json:"entityId"`
	Changes   datatypes.JSONMap `json:"changes,omitempty"`
	CreatedAt time.Time         `gorm:"index" json:"createdAt"`
}
