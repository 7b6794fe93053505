package models

import "time"

// Content is an itinerary/offer entry shown on a destination page.
type Content struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"size:255;not null" json:"title"`
	SubTitle      *string   `gorm:"size:255" json:"subTitle"`
	Description   string    `gorm:"type:text;not null" json:"description"`
	Image1        *string   `gorm:"type:text" json:"image1"`
	Image2        *string   `gorm:"type:text" json:"image2"`
	Image3        *string   `gorm:"type:text" json:"image3"`
	Image4        *string   `gorm:"type:text" json:"image4"`
	Image5        *string   `gorm:"type:text" json:"image5"`
	ImageMain     *string   `gorm:"type:text" json:"imageMain"`
	DateAvailable time.Time `gorm:"not null" json:"dateAvailable"`
	IsAvailable   bool      `gorm:"not null" json:"isAvailable"`
	DestinationID uint      `gorm:"not null;index" json:"destinationId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	Destination *DestinationRef `gorm:"foreignKey:DestinationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"destination,omitempty"`
}
