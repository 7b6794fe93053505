package models

import "time"

type Image struct {
	ID  uint   `gorm:"primaryKey" json:"id"`
	URL string `gorm:"type:text;not null" json:"url"`
	// PublicID is the hosted asset identifier; older rows may only have the URL.
	PublicID      string    `gorm:"size:255" json:"publicId,omitempty"`
	DestinationID *uint     `gorm:"index" json:"destinationId"`
	PackageID     *uint     `gorm:"index" json:"packageId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	Destination *DestinationRef `gorm:"foreignKey:DestinationID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"destination"`
	Package     *PackageRef     `gorm:"foreignKey:PackageID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"package"`
}

type ImageRef struct {
	ID        uint   `json:"id"`
	URL       string `json:"url"`
	PackageID *uint  `json:"-"`
}

func (ImageRef) TableName() string { return "images" }
