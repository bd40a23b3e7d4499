package application

import (
	"time"

	"github.com/google/uuid"
)

// Application represents one submitted application record. The two file
// fields hold blob-store paths, never file bytes.
type Application struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name              string    `gorm:"not null" json:"name"`
	Mobile            string    `gorm:"not null" json:"mobile"`
	Email             string    `gorm:"not null" json:"email"`
	Gender            string    `gorm:"not null" json:"gender"`
	ApplicationAmount float64   `gorm:"not null" json:"applicationAmount"`
	ProfilePicture    string    `gorm:"not null" json:"profilePicture"`
	MarkSheet         string    `gorm:"not null" json:"markSheet"`
	CreatedAt         time.Time `gorm:"default:now()" json:"-"`
	UpdatedAt         time.Time `gorm:"default:now()" json:"-"`
}

func (Application) TableName() string {
	return "applications"
}

// UpdateFields carries a partial update. Zero values mean "not supplied" and
// leave the stored value unchanged, so an explicit empty string or zero
// amount cannot overwrite an existing value.
type UpdateFields struct {
	Name              string  `json:"name"`
	Mobile            string  `json:"mobile"`
	Email             string  `json:"email"`
	Gender            string  `json:"gender"`
	ApplicationAmount float64 `json:"applicationAmount"`
}
