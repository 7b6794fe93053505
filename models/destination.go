package models

import "time"

type Destination struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Price       float64   `gorm:"not null;default:0" json:"price"`
	CategoryID  uint      `gorm:"not null;index" json:"categoryId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Category *CategoryRef `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"category,omitempty"`

	Count *DestinationCount `gorm:"-" json:"_count,omitempty"`
}

type DestinationCount struct {
	Images    int64 `json:"images"`
	Locations int64 `json:"locations"`
	Contents  int64 `json:"contents"`
	Packages  int64 `json:"packages"`
}

type DestinationRef struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

func (DestinationRef) TableName() string { return "destinations" }
