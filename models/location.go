package models

import "time"

type Location struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"size:255;not null" json:"title"`
	Image         *string   `gorm:"type:text" json:"image"`
	HrefLink      *string   `gorm:"type:text" json:"hrefLink"`
	Description   *string   `gorm:"type:text" json:"description"`
	DestinationID uint      `gorm:"not null;index" json:"destinationId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	Destination *DestinationRef `gorm:"foreignKey:DestinationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"destination,omitempty"`
}
