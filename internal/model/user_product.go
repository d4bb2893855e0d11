package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InteractionKind discriminates the user-product edge.
type InteractionKind string

const (
	InteractionCart     InteractionKind = "CART"
	InteractionFavorite InteractionKind = "FAVORITE"
	InteractionViewed   InteractionKind = "VIEWED"
	InteractionWishlist InteractionKind = "WISHLIST"
)

// ParseInteraction normalizes input to an interaction kind.
func ParseInteraction(s string) (InteractionKind, bool) {
	v := InteractionKind(strings.ToUpper(strings.TrimSpace(s)))
	switch v {
	case InteractionCart, InteractionFavorite, InteractionViewed, InteractionWishlist:
		return v, true
	}
	return "", false
}

// UserProduct is a typed edge between a user and a product. The composite
// unique index guarantees at most one row per (user, product, kind); repeated
// writes are upserts, never duplicates. CART rows additionally carry quantity.
type UserProduct struct {
	ID          uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	UserID      uuid.UUID       `json:"userId" gorm:"type:char(36);not null;uniqueIndex:idx_user_product_kind,priority:1"`
	ProductID   uuid.UUID       `json:"productId" gorm:"type:char(36);not null;uniqueIndex:idx_user_product_kind,priority:2"`
	Interaction InteractionKind `json:"interaction" gorm:"type:varchar(20);not null;uniqueIndex:idx_user_product_kind,priority:3"`
	Quantity    int             `json:"quantity" gorm:"default:1"`
	Notes       *string         `json:"notes" gorm:"size:500"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`

	// Relations
	User    *User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// BeforeCreate sets UUID before creating the record.
func (up *UserProduct) BeforeCreate(tx *gorm.DB) error {
	if up.ID == uuid.Nil {
		up.ID = uuid.New()
	}
	return nil
}
