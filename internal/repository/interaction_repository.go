package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ecofinds/internal/model"
)

// InteractionRepository defines user-product edge persistence operations.
type InteractionRepository interface {
	Upsert(ctx context.Context, row *model.UserProduct) (*model.UserProduct, error)
	FindByKey(ctx context.Context, userID, productID uuid.UUID, kind model.InteractionKind) (*model.UserProduct, error)
	FindCartItem(ctx context.Context, itemID, userID uuid.UUID) (*model.UserProduct, error)
	ListCart(ctx context.Context, userID uuid.UUID) ([]model.UserProduct, error)
	ListByUserAndKind(ctx context.Context, userID uuid.UUID, kind model.InteractionKind) ([]model.UserProduct, error)
	ListByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) ([]model.UserProduct, error)
	ListForProduct(ctx context.Context, productID uuid.UUID, kinds ...model.InteractionKind) ([]model.UserProduct, error)
	UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
	DeleteByKey(ctx context.Context, userID, productID uuid.UUID, kind model.InteractionKind) (int64, error)
	DeleteAllByUserAndKind(ctx context.Context, userID uuid.UUID, kind model.InteractionKind) error
	CountForProduct(ctx context.Context, productID uuid.UUID, kinds ...model.InteractionKind) (int64, error)
	CountForProducts(ctx context.Context, productIDs []uuid.UUID, kinds ...model.InteractionKind) (map[uuid.UUID]int64, error)
	CountBySellerPerKind(ctx context.Context, sellerID uuid.UUID, kinds ...model.InteractionKind) (map[model.InteractionKind]int64, error)
}

type interactionRepository struct {
	db *gorm.DB
}

// NewInteractionRepository creates a new interaction repository.
func NewInteractionRepository(db *gorm.DB) InteractionRepository {
	return &interactionRepository{db: db}
}

// Upsert writes the row atomically: the unique (user, product, interaction)
// key turns concurrent creates into updates, so re-favoriting is idempotent
// and cart re-adds replace the quantity instead of duplicating the row.
func (r *interactionRepository) Upsert(ctx context.Context, row *model.UserProduct) (*model.UserProduct, error) {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"}, {Name: "product_id"}, {Name: "interaction"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"quantity", "notes", "updated_at"}),
	}).Create(row).Error
	if err != nil {
		return nil, err
	}
	// Re-read so the caller sees the canonical row id and timestamps.
	return r.FindByKey(ctx, row.UserID, row.ProductID, row.Interaction)
}

func (r *interactionRepository) FindByKey(ctx context.Context, userID, productID uuid.UUID, kind model.InteractionKind) (*model.UserProduct, error) {
	var row model.UserProduct
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ? AND interaction = ?", userID, productID, kind).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// FindCartItem scopes by both item id and owner so a foreign id reads as not
// found rather than leaking existence.
func (r *interactionRepository) FindCartItem(ctx context.Context, itemID, userID uuid.UUID) (*model.UserProduct, error) {
	var row model.UserProduct
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("id = ? AND user_id = ? AND interaction = ?", itemID, userID, model.InteractionCart).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// ListCart loads the caller's cart rows with everything the cart view joins:
// product, images, seller with profile phone, and the listing status.
func (r *interactionRepository) ListCart(ctx context.Context, userID uuid.UUID) ([]model.UserProduct, error) {
	var rows []model.UserProduct
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Product.Images").
		Preload("Product.Seller").
		Preload("Product.Seller.Image").
		Preload("Product.Seller.Profile").
		Preload("Product.Listing").
		Where("user_id = ? AND interaction = ?", userID, model.InteractionCart).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *interactionRepository) ListByUserAndKind(ctx context.Context, userID uuid.UUID, kind model.InteractionKind) ([]model.UserProduct, error) {
	var rows []model.UserProduct
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Product.Images").
		Preload("Product.Seller").
		Preload("Product.Seller.Image").
		Where("user_id = ? AND interaction = ?", userID, kind).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *interactionRepository) ListByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) ([]model.UserProduct, error) {
	var rows []model.UserProduct
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *interactionRepository) ListForProduct(ctx context.Context, productID uuid.UUID, kinds ...model.InteractionKind) ([]model.UserProduct, error) {
	q := r.db.WithContext(ctx).
		Preload("User").
		Preload("User.Image").
		Where("product_id = ?", productID)
	if len(kinds) > 0 {
		q = q.Where("interaction IN ?", kinds)
	}
	var rows []model.UserProduct
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *interactionRepository) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error {
	return r.db.WithContext(ctx).Model(&model.UserProduct{}).
		Where("id = ?", id).
		Update("quantity", quantity).Error
}

func (r *interactionRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.UserProduct{}).Error
}

func (r *interactionRepository) DeleteByKey(ctx context.Context, userID, productID uuid.UUID, kind model.InteractionKind) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ? AND interaction = ?", userID, productID, kind).
		Delete(&model.UserProduct{})
	return res.RowsAffected, res.Error
}

func (r *interactionRepository) DeleteAllByUserAndKind(ctx context.Context, userID uuid.UUID, kind model.InteractionKind) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND interaction = ?", userID, kind).
		Delete(&model.UserProduct{}).Error
}

func (r *interactionRepository) CountForProduct(ctx context.Context, productID uuid.UUID, kinds ...model.InteractionKind) (int64, error) {
	q := r.db.WithContext(ctx).Model(&model.UserProduct{}).Where("product_id = ?", productID)
	if len(kinds) > 0 {
		q = q.Where("interaction IN ?", kinds)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// CountForProducts returns per-product counts for a batch of ids in one
// grouped query instead of a query per product.
func (r *interactionRepository) CountForProducts(ctx context.Context, productIDs []uuid.UUID, kinds ...model.InteractionKind) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(productIDs))
	if len(productIDs) == 0 {
		return counts, nil
	}
	q := r.db.WithContext(ctx).Model(&model.UserProduct{}).
		Select("product_id, COUNT(*) AS total").
		Where("product_id IN ?", productIDs)
	if len(kinds) > 0 {
		q = q.Where("interaction IN ?", kinds)
	}
	var rows []struct {
		ProductID uuid.UUID `gorm:"column:product_id"`
		Total     int64     `gorm:"column:total"`
	}
	if err := q.Group("product_id").Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.ProductID] = row.Total
	}
	return counts, nil
}

// CountBySellerPerKind counts interactions across all of a seller's products,
// grouped by kind.
func (r *interactionRepository) CountBySellerPerKind(ctx context.Context, sellerID uuid.UUID, kinds ...model.InteractionKind) (map[model.InteractionKind]int64, error) {
	q := r.db.WithContext(ctx).Model(&model.UserProduct{}).
		Select("interaction, COUNT(*) AS total").
		Where("product_id IN (?)", r.db.Model(&model.Product{}).
			Select("id").
			Where("seller_id = ?", sellerID))
	if len(kinds) > 0 {
		q = q.Where("interaction IN ?", kinds)
	}
	var rows []struct {
		Interaction model.InteractionKind `gorm:"column:interaction"`
		Total       int64                 `gorm:"column:total"`
	}
	if err := q.Group("interaction").Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[model.InteractionKind]int64, len(rows))
	for _, row := range rows {
		counts[row.Interaction] = row.Total
	}
	return counts, nil
}
