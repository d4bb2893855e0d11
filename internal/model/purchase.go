package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PurchaseStatus represents the state of a completed-checkout record.
type PurchaseStatus string

const (
	PurchaseStatusPending   PurchaseStatus = "PENDING"
	PurchaseStatusCompleted PurchaseStatus = "COMPLETED"
	PurchaseStatusCancelled PurchaseStatus = "CANCELLED"
)

// ParsePurchaseStatus normalizes input to a purchase status.
func ParsePurchaseStatus(s string) (PurchaseStatus, bool) {
	v := PurchaseStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch v {
	case PurchaseStatusPending, PurchaseStatusCompleted, PurchaseStatusCancelled:
		return v, true
	}
	return "", false
}

// Purchase records a transaction. PriceAtPurchase is a snapshot taken at
// checkout and is deliberately decoupled from the product's current price.
type Purchase struct {
	ID              uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	UserID          uuid.UUID       `json:"userId" gorm:"type:char(36);not null;index"`
	ProductID       uuid.UUID       `json:"productId" gorm:"type:char(36);not null;index"`
	Quantity        int             `json:"quantity" gorm:"not null"`
	PriceAtPurchase decimal.Decimal `json:"priceAtPurchase" gorm:"type:decimal(10,2);not null"`
	Status          PurchaseStatus  `json:"status" gorm:"type:varchar(20);not null;default:'PENDING';index"`
	PurchaseDate    time.Time       `json:"purchaseDate" gorm:"not null;index"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`

	// Relations
	User    *User    `json:"-" gorm:"foreignKey:UserID"`
	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Purchase) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
