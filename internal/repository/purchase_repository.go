package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"ecofinds/internal/model"
)

// PurchaseFilter narrows a user's purchase history. Date bounds are
// inclusive; SortBy must already be a validated column name.
type PurchaseFilter struct {
	Status    *model.PurchaseStatus
	StartDate *time.Time
	EndDate   *time.Time
	SortBy    string
	SortDesc  bool
	Offset    int
	Limit     int
}

// PurchaseSummary aggregates a user's COMPLETED purchases. TotalSpent sums
// the price snapshots as recorded, mirroring the observed history response.
type PurchaseSummary struct {
	TotalPurchases int64           `gorm:"column:total_purchases"`
	TotalItems     int64           `gorm:"column:total_items"`
	TotalSpent     decimal.Decimal `gorm:"column:total_spent"`
}

// PurchaseRepository defines purchase persistence operations.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *model.Purchase) error
	Search(ctx context.Context, userID uuid.UUID, filter PurchaseFilter) ([]model.Purchase, int64, error)
	FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*model.Purchase, error)
	LifetimeSummary(ctx context.Context, userID uuid.UUID) (*PurchaseSummary, error)
}

type purchaseRepository struct {
	db *gorm.DB
}

// NewPurchaseRepository creates a new purchase repository.
func NewPurchaseRepository(db *gorm.DB) PurchaseRepository {
	return &purchaseRepository{db: db}
}

func (r *purchaseRepository) Create(ctx context.Context, purchase *model.Purchase) error {
	return r.db.WithContext(ctx).Create(purchase).Error
}

func (r *purchaseRepository) Search(ctx context.Context, userID uuid.UUID, filter PurchaseFilter) ([]model.Purchase, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.Purchase{}).Where("user_id = ?", userID)
	if filter.Status != nil {
		base = base.Where("status = ?", *filter.Status)
	}
	if filter.StartDate != nil {
		base = base.Where("purchase_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		base = base.Where("purchase_date <= ?", *filter.EndDate)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := filter.SortBy
	if order == "" {
		order = "purchase_date"
	}
	if filter.SortDesc {
		order += " DESC"
	} else {
		order += " ASC"
	}

	var purchases []model.Purchase
	err := base.Session(&gorm.Session{}).
		Preload("Product").
		Preload("Product.Images").
		Preload("Product.Seller").
		Preload("Product.Seller.Image").
		Preload("Product.Seller.Profile").
		Order(order).
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&purchases).Error
	if err != nil {
		return nil, 0, err
	}
	return purchases, total, nil
}

// FindByIDForUser scopes by owner so a foreign purchase id reads as not found.
func (r *purchaseRepository) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*model.Purchase, error) {
	var purchase model.Purchase
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Product.Images").
		Preload("Product.Seller").
		Preload("Product.Seller.Image").
		Preload("Product.Seller.Profile").
		Preload("Product.Seller.Profile.Address").
		Where("id = ? AND user_id = ?", id, userID).
		First(&purchase).Error
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

// LifetimeSummary aggregates COMPLETED purchases only, regardless of any
// filters the caller applied to the paginated history.
func (r *purchaseRepository) LifetimeSummary(ctx context.Context, userID uuid.UUID) (*PurchaseSummary, error) {
	var summary PurchaseSummary
	err := r.db.WithContext(ctx).Model(&model.Purchase{}).
		Select("COUNT(*) AS total_purchases, "+
			"COALESCE(SUM(quantity), 0) AS total_items, "+
			"COALESCE(SUM(price_at_purchase), 0) AS total_spent").
		Where("user_id = ? AND status = ?", userID, model.PurchaseStatusCompleted).
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
