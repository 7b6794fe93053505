package models

import "time"

// Package is a sellable tour package, optionally tied to a category and destination.
type Package struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"size:255;not null" json:"title"`
	Description   string    `gorm:"type:text;not null" json:"description"`
	Price         float64   `gorm:"not null;default:0;index" json:"price"`
	CategoryID    *uint     `gorm:"index" json:"categoryId"`
	DestinationID *uint     `gorm:"index" json:"destinationId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	Category    *CategoryRef    `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"category"`
	Destination *DestinationRef `gorm:"foreignKey:DestinationID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"destination"`
	Images      []ImageRef      `gorm:"foreignKey:PackageID" json:"images,omitempty"`

	Count *PackageCount `gorm:"-" json:"_count,omitempty"`
}

type PackageCount struct {
	Images int64 `json:"images"`
}

type PackageRef struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

func (PackageRef) TableName() string { return "packages" }
