package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductCategory enumerates the catalog categories.
type ProductCategory string

const (
	CategoryClothing    ProductCategory = "CLOTHING"
	CategoryElectronics ProductCategory = "ELECTRONICS"
	CategoryFurniture   ProductCategory = "FURNITURE"
	CategoryBooks       ProductCategory = "BOOKS"
	CategorySports      ProductCategory = "SPORTS"
	CategoryOther       ProductCategory = "OTHER"
)

// AllCategories returns every category value in display order. The grouped
// catalog view iterates this, so the order here is the order clients see.
func AllCategories() []ProductCategory {
	return []ProductCategory{
		CategoryClothing,
		CategoryElectronics,
		CategoryFurniture,
		CategoryBooks,
		CategorySports,
		CategoryOther,
	}
}

// ParseCategory normalizes free-form input ("electronics", "Electronics")
// to the enumerated value. Returns false when the value is not a category.
func ParseCategory(s string) (ProductCategory, bool) {
	c := ProductCategory(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range AllCategories() {
		if c == known {
			return c, true
		}
	}
	return "", false
}

// Product is a sellable second-hand item. A Product may exist without a
// ProductListing (unlisted draft); publication is a separate row.
type Product struct {
	ID          uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	Title       string          `json:"title" gorm:"size:255;not null"`
	Category    ProductCategory `json:"category" gorm:"type:varchar(20);not null;index"`
	Description string          `json:"description" gorm:"type:text;not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Quantity    int             `json:"quantity" gorm:"not null;default:0"`
	Condition   string          `json:"condition" gorm:"size:50;not null"`

	// Optional physical-spec fields, all independently nullable.
	YearOfManufacture    *int     `json:"yearOfManufacture"`
	Brand                *string  `json:"brand" gorm:"size:100"`
	Model                *string  `json:"model" gorm:"size:100"`
	Length               *float64 `json:"length"`
	Width                *float64 `json:"width"`
	Height               *float64 `json:"height"`
	Weight               *float64 `json:"weight"`
	Material             *string  `json:"material" gorm:"size:100"`
	Color                *string  `json:"color" gorm:"size:50"`
	HasOriginalPackaging bool     `json:"hasOriginalPackaging" gorm:"default:false"`
	HasManual            bool     `json:"hasManual" gorm:"default:false"`
	WorkingCondition     string   `json:"workingCondition" gorm:"type:text;not null"`

	SellerID  uuid.UUID `json:"sellerId" gorm:"type:char(36);not null;index"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Images  []ProductImage  `json:"images,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Seller  *User           `json:"seller,omitempty" gorm:"foreignKey:SellerID"`
	Listing *ProductListing `json:"productList,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// PrimaryImageURL picks the single representative image: the one flagged
// primary, else the first in returned order, else empty.
func (p *Product) PrimaryImageURL() string {
	for _, img := range p.Images {
		if img.IsPrimary {
			return img.URL
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0].URL
	}
	return ""
}

// ProductImage is one of a product's zero-or-more images. At most one should
// carry IsPrimary per product; readers tolerate violations via the tie-break
// in PrimaryImageURL.
type ProductImage struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	ProductID uuid.UUID `json:"productId" gorm:"type:char(36);not null;index"`
	URL       string    `json:"url" gorm:"size:512;not null"`
	IsPrimary bool      `json:"isPrimary" gorm:"default:false"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (i *ProductImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
