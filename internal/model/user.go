package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a marketplace account. A user is both a buyer and a
// potential seller; there is no separate seller entity.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	DisplayName  string    `json:"displayName" gorm:"size:50;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	// Relations
	Image   *UserImage   `json:"image,omitempty" gorm:"foreignKey:UserID"`
	Profile *UserProfile `json:"profile,omitempty" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// UserImage is a user's single profile image. Re-uploading replaces the URL
// in place rather than creating a second row.
type UserImage struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID `json:"userId" gorm:"type:char(36);uniqueIndex;not null"`
	URL       string    `json:"url" gorm:"size:512;not null"`
	IsPrimary bool      `json:"isPrimary" gorm:"default:true"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (i *UserImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// UserSummary is the seller shape embedded in catalog responses.
type UserSummary struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"displayName"`
	Email       string    `json:"email,omitempty"`
	ImageURL    string    `json:"image,omitempty"`
}

// Summary strips a user down to the fields safe to embed in catalog views.
func (u *User) Summary() UserSummary {
	s := UserSummary{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		Email:       u.Email,
	}
	if u.Image != nil {
		s.ImageURL = u.Image.URL
	}
	return s
}
