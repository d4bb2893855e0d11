package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"ecofinds/internal/model"
)

// ListingFilter is a conjunctive filter over product listings. Unset fields
// are simply not applied. SortBy must already be a validated column name.
type ListingFilter struct {
	Category *model.ProductCategory
	Status   *model.ListingStatus
	SellerID *uuid.UUID
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	SortBy   string
	SortDesc bool
	Offset   int
	Limit    int
}

// ListingRepository defines product listing persistence operations.
type ListingRepository interface {
	Create(ctx context.Context, listing *model.ProductListing) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ProductListing, error)
	FindByIDWithProduct(ctx context.Context, id uuid.UUID) (*model.ProductListing, error)
	FindByProductID(ctx context.Context, productID uuid.UUID) (*model.ProductListing, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.ListingStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, filter ListingFilter) ([]model.ProductListing, int64, error)
	CountBySellerPerStatus(ctx context.Context, sellerID uuid.UUID) (map[model.ListingStatus]int64, error)
}

type listingRepository struct {
	db *gorm.DB
}

// NewListingRepository creates a new listing repository.
func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepository{db: db}
}

func (r *listingRepository) Create(ctx context.Context, listing *model.ProductListing) error {
	return r.db.WithContext(ctx).Create(listing).Error
}

func (r *listingRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ProductListing, error) {
	var listing model.ProductListing
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&listing).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *listingRepository) FindByIDWithProduct(ctx context.Context, id uuid.UUID) (*model.ProductListing, error) {
	var listing model.ProductListing
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Product.Images").
		Preload("Product.Seller").
		Preload("Product.Seller.Image").
		Where("id = ?", id).
		First(&listing).Error
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *listingRepository) FindByProductID(ctx context.Context, productID uuid.UUID) (*model.ProductListing, error) {
	var listing model.ProductListing
	if err := r.db.WithContext(ctx).Where("product_id = ?", productID).First(&listing).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *listingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ListingStatus) error {
	return r.db.WithContext(ctx).Model(&model.ProductListing{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *listingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ProductListing{}).Error
}

// Search applies the conjunctive filter, both price bounds inclusive.
func (r *listingRepository) Search(ctx context.Context, filter ListingFilter) ([]model.ProductListing, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.ProductListing{})
	if filter.Category != nil {
		base = base.Where("category = ?", *filter.Category)
	}
	if filter.Status != nil {
		base = base.Where("status = ?", *filter.Status)
	}
	if filter.SellerID != nil {
		base = base.Where("seller_id = ?", *filter.SellerID)
	}
	if filter.MinPrice != nil {
		base = base.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		base = base.Where("price <= ?", *filter.MaxPrice)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := filter.SortBy
	if order == "" {
		order = "created_at"
	}
	if filter.SortDesc {
		order += " DESC"
	} else {
		order += " ASC"
	}

	var listings []model.ProductListing
	err := base.Session(&gorm.Session{}).
		Preload("Product").
		Preload("Product.Images").
		Preload("Product.Seller").
		Preload("Product.Seller.Image").
		Order(order).
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&listings).Error
	if err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

func (r *listingRepository) CountBySellerPerStatus(ctx context.Context, sellerID uuid.UUID) (map[model.ListingStatus]int64, error) {
	var rows []struct {
		Status model.ListingStatus `gorm:"column:status"`
		Total  int64               `gorm:"column:total"`
	}
	err := r.db.WithContext(ctx).Model(&model.ProductListing{}).
		Select("status, COUNT(*) AS total").
		Where("seller_id = ?", sellerID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[model.ListingStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}
