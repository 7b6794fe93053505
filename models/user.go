package models

import "time"

// User is a dashboard operator. Password holds a bcrypt hash and is never serialized.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:191;not null;uniqueIndex" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Name      string    `gorm:"size:255" json:"name"`
	Role      string    `gorm:"size:50;not null;default:admin" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
