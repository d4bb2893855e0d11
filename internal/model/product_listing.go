package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ListingStatus represents the publication state of a listed product.
type ListingStatus string

const (
	ListingStatusActive   ListingStatus = "ACTIVE"
	ListingStatusSold     ListingStatus = "SOLD"
	ListingStatusReserved ListingStatus = "RESERVED"
	// ListingStatusUnlisted is synthetic: reported for products without a
	// listing row, never stored.
	ListingStatusUnlisted ListingStatus = "UNLISTED"
)

// ParseListingStatus normalizes input to a storable status. UNLISTED is not
// accepted since products without a listing simply have no row.
func ParseListingStatus(s string) (ListingStatus, bool) {
	v := ListingStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch v {
	case ListingStatusActive, ListingStatusSold, ListingStatusReserved:
		return v, true
	}
	return "", false
}

// ProductListing is the 1:1 publication record of a Product. Name, price and
// category are denormalized copies taken at creation time.
type ProductListing struct {
	ID        uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	ProductID uuid.UUID       `json:"productId" gorm:"type:char(36);uniqueIndex;not null"`
	SellerID  uuid.UUID       `json:"sellerId" gorm:"type:char(36);not null;index"`
	Name      string          `json:"name" gorm:"size:255;not null"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Category  ProductCategory `json:"category" gorm:"type:varchar(20);not null;index"`
	Status    ListingStatus   `json:"status" gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`

	// Relations
	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// BeforeCreate sets UUID before creating the record.
func (l *ProductListing) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
