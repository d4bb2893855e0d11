package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserProfile extends User with the contact details needed for shipping.
// Created and updated via upsert; a user has at most one profile.
type UserProfile struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID      uuid.UUID `json:"userId" gorm:"type:char(36);uniqueIndex;not null"`
	FullName    string    `json:"fullName" gorm:"size:100;not null"`
	PhoneNumber string    `json:"phoneNumber" gorm:"uniqueIndex;size:20;not null"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Relations
	Address *Address `json:"address,omitempty" gorm:"foreignKey:ProfileID"`
	User    *User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (p *UserProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Address is the 1:1 sub-entity of a profile.
type Address struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	ProfileID uuid.UUID `json:"-" gorm:"type:char(36);uniqueIndex;not null"`
	Street    string    `json:"street" gorm:"size:255"`
	City      string    `json:"city" gorm:"size:100"`
	State     string    `json:"state" gorm:"size:100"`
	Country   string    `json:"country" gorm:"size:100"`
	ZipCode   string    `json:"zipCode" gorm:"size:20"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (a *Address) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
