package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"ecofinds/internal/model"
)

// SellerProductFilter narrows a seller's products. Status filters through the
// joined listing row; SortBy must already be a validated column name.
type SellerProductFilter struct {
	Status   *model.ListingStatus
	Category *model.ProductCategory
	SortBy   string
	SortDesc bool
	Offset   int
	Limit    int
}

// SellerOverview aggregates a seller's catalog in one scan. Zero values stand
// in for absent data so responses never carry nulls.
type SellerOverview struct {
	TotalListings int64           `gorm:"column:total_listings"`
	TotalQuantity int64           `gorm:"column:total_quantity"`
	AveragePrice  decimal.Decimal `gorm:"column:average_price"`
	MinPrice      decimal.Decimal `gorm:"column:min_price"`
	MaxPrice      decimal.Decimal `gorm:"column:max_price"`
}

// ProductRepository defines product and product-image persistence operations.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindDetailByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindWithImagesAndSeller(ctx context.Context, id uuid.UUID) (*model.Product, error)
	List(ctx context.Context, offset, limit int) ([]model.Product, int64, error)
	ListByCategory(ctx context.Context, category model.ProductCategory, offset, limit int) ([]model.Product, int64, error)
	ListAllByCategory(ctx context.Context, category model.ProductCategory) ([]model.Product, error)
	ListRelated(ctx context.Context, category model.ProductCategory, excludeID uuid.UUID, limit int) ([]model.Product, error)
	ListBySeller(ctx context.Context, sellerID, excludeID uuid.UUID, limit int) ([]model.Product, error)
	SearchSellerProducts(ctx context.Context, sellerID uuid.UUID, filter SellerProductFilter) ([]model.Product, int64, error)
	SellerOverview(ctx context.Context, sellerID uuid.UUID) (*SellerOverview, error)
	CountBySellerPerCategory(ctx context.Context, sellerID uuid.UUID) (map[model.ProductCategory]int64, error)
	AddImage(ctx context.Context, image *model.ProductImage) error
	AddImages(ctx context.Context, images []model.ProductImage) error
	FindImageByID(ctx context.Context, id uuid.UUID) (*model.ProductImage, error)
	DeleteImage(ctx context.Context, id uuid.UUID) error
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository.
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// UpdateFields applies a partial update. Only the supplied columns change.
func (r *productRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// Delete hard-deletes the product; images and the listing row follow via the
// cascade constraint.
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&model.ProductImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&model.ProductListing{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&model.UserProduct{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Product{}).Error
	})
}

func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindDetailByID loads the full detail view: images, seller with profile and
// address, and the listing row.
func (r *productRepository) FindDetailByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Preload("Images").
		Preload("Seller").
		Preload("Seller.Image").
		Preload("Seller.Profile").
		Preload("Seller.Profile.Address").
		Preload("Listing").
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindWithImagesAndSeller(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Preload("Images").
		Preload("Seller").
		Preload("Seller.Image").
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) List(ctx context.Context, offset, limit int) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Product{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.WithContext(ctx).
		Preload("Images").
		Preload("Seller").
		Preload("Seller.Image").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *productRepository) ListByCategory(ctx context.Context, category model.ProductCategory, offset, limit int) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("category = ?", category).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.WithContext(ctx).
		Preload("Images").
		Preload("Seller").
		Preload("Seller.Image").
		Where("category = ?", category).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// ListAllByCategory returns every product of one category, newest first. The
// grouped catalog view consumes whole buckets, so this is unpaginated.
func (r *productRepository) ListAllByCategory(ctx context.Context, category model.ProductCategory) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Preload("Images").
		Preload("Seller").
		Preload("Seller.Image").
		Where("category = ?", category).
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// ListRelated returns same-category products excluding one id, newest first.
func (r *productRepository) ListRelated(ctx context.Context, category model.ProductCategory, excludeID uuid.UUID, limit int) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Preload("Images").
		Preload("Seller").
		Preload("Seller.Image").
		Where("category = ? AND id <> ?", category, excludeID).
		Order("created_at DESC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// ListBySeller returns a seller's other products excluding one id, newest first.
func (r *productRepository) ListBySeller(ctx context.Context, sellerID, excludeID uuid.UUID, limit int) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Preload("Images").
		Where("seller_id = ? AND id <> ?", sellerID, excludeID).
		Order("created_at DESC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) SearchSellerProducts(ctx context.Context, sellerID uuid.UUID, filter SellerProductFilter) ([]model.Product, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.Product{}).Where("seller_id = ?", sellerID)
	if filter.Category != nil {
		base = base.Where("category = ?", *filter.Category)
	}
	if filter.Status != nil {
		base = base.Where("id IN (?)", r.db.Model(&model.ProductListing{}).
			Select("product_id").
			Where("status = ?", *filter.Status))
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

	var products []model.Product
	err := base.Session(&gorm.Session{}).
		Preload("Images").
		Preload("Listing").
		Order(order).
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *productRepository) SellerOverview(ctx context.Context, sellerID uuid.UUID) (*SellerOverview, error) {
	var overview SellerOverview
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Select("COUNT(*) AS total_listings, "+
			"COALESCE(SUM(quantity), 0) AS total_quantity, "+
			"COALESCE(AVG(price), 0) AS average_price, "+
			"COALESCE(MIN(price), 0) AS min_price, "+
			"COALESCE(MAX(price), 0) AS max_price").
		Where("seller_id = ?", sellerID).
		Scan(&overview).Error
	if err != nil {
		return nil, err
	}
	return &overview, nil
}

func (r *productRepository) CountBySellerPerCategory(ctx context.Context, sellerID uuid.UUID) (map[model.ProductCategory]int64, error) {
	var rows []struct {
		Category model.ProductCategory `gorm:"column:category"`
		Total    int64                 `gorm:"column:total"`
	}
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Select("category, COUNT(*) AS total").
		Where("seller_id = ?", sellerID).
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[model.ProductCategory]int64, len(rows))
	for _, row := range rows {
		counts[row.Category] = row.Total
	}
	return counts, nil
}

func (r *productRepository) AddImage(ctx context.Context, image *model.ProductImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *productRepository) AddImages(ctx context.Context, images []model.ProductImage) error {
	if len(images) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&images).Error
}

func (r *productRepository) FindImageByID(ctx context.Context, id uuid.UUID) (*model.ProductImage, error) {
	var image model.ProductImage
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&image).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *productRepository) DeleteImage(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ProductImage{}).Error
}
