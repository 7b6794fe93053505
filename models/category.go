package models

import "time"

type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:150;not null" json:"name"`
	Slug        string    `gorm:"size:150;not null;uniqueIndex" json:"slug"`
	Description *string   `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Loaded only on the detail endpoint.
	Destinations []Destination `gorm:"foreignKey:CategoryID" json:"destinations,omitempty"`
	Packages     []Package     `gorm:"foreignKey:CategoryID" json:"packages,omitempty"`

	Count *CategoryCount `gorm:"-" json:"_count,omitempty"`
}

type CategoryCount struct {
	Destinations int64 `json:"destinations"`
	Packages     int64 `json:"packages"`
}

// CategoryRef is the shallow projection embedded in other resources.
type CategoryRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (CategoryRef) TableName() string { return "categories" }
