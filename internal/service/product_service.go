package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"ecofinds/internal/cache"
	apperrors "ecofinds/internal/errors"
	"ecofinds/internal/model"
	"ecofinds/internal/repository"
)

// CreateProductInput carries a new product's fields, already parsed. Seller
// identity comes from the caller's token, never from the payload.
type CreateProductInput struct {
	Title            string
	Category         model.ProductCategory
	Description      string
	Price            decimal.Decimal
	Quantity         int
	Condition        string
	WorkingCondition string

	YearOfManufacture    *int
	Brand                *string
	Model                *string
	Length               *float64
	Width                *float64
	Height               *float64
	Weight               *float64
	Material             *string
	Color                *string
	HasOriginalPackaging bool
	HasManual            bool
}

// UpdateProductInput carries a partial update; nil fields are left untouched.
type UpdateProductInput struct {
	Title            *string
	Category         *model.ProductCategory
	Description      *string
	Price            *decimal.Decimal
	Quantity         *int
	Condition        *string
	WorkingCondition *string

	YearOfManufacture    *int
	Brand                *string
	Model                *string
	Length               *float64
	Width                *float64
	Height               *float64
	Weight               *float64
	Material             *string
	Color                *string
	HasOriginalPackaging *bool
	HasManual            *bool
}

// ProductService handles product CRUD on behalf of sellers.
type ProductService interface {
	Create(ctx context.Context, sellerID uuid.UUID, input CreateProductInput) (*model.Product, error)
	Update(ctx context.Context, id, callerID uuid.UUID, input UpdateProductInput) (*model.Product, error)
	Delete(ctx context.Context, id, callerID uuid.UUID) error
}

type productService struct {
	productRepo repository.ProductRepository
	cache       *cache.Client
}

// NewProductService creates the product write service.
func NewProductService(productRepo repository.ProductRepository, cache *cache.Client) ProductService {
	return &productService{productRepo: productRepo, cache: cache}
}

// Create inserts the product and returns it with its (initially empty) image
// list and seller summary.
func (s *productService) Create(ctx context.Context, sellerID uuid.UUID, input CreateProductInput) (*model.Product, error) {
	product := &model.Product{
		Title:                input.Title,
		Category:             input.Category,
		Description:          input.Description,
		Price:                input.Price,
		Quantity:             input.Quantity,
		Condition:            input.Condition,
		WorkingCondition:     input.WorkingCondition,
		YearOfManufacture:    input.YearOfManufacture,
		Brand:                input.Brand,
		Model:                input.Model,
		Length:               input.Length,
		Width:                input.Width,
		Height:               input.Height,
		Weight:               input.Weight,
		Material:             input.Material,
		Color:                input.Color,
		HasOriginalPackaging: input.HasOriginalPackaging,
		HasManual:            input.HasManual,
		SellerID:             sellerID,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	s.invalidate(ctx, product.ID)

	created, err := s.productRepo.FindWithImagesAndSeller(ctx, product.ID)
	if err != nil {
		return nil, fmt.Errorf("reload product: %w", err)
	}
	return created, nil
}

// Update applies a partial update after the ownership check.
func (s *productService) Update(ctx context.Context, id, callerID uuid.UUID, input UpdateProductInput) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	if product.SellerID != callerID {
		return nil, apperrors.ErrNotOwner
	}

	fields := map[string]interface{}{}
	setIf := func(column string, v interface{}, present bool) {
		if present {
			fields[column] = v
		}
	}
	setIf("title", deref(input.Title), input.Title != nil)
	setIf("category", derefCategory(input.Category), input.Category != nil)
	setIf("description", deref(input.Description), input.Description != nil)
	setIf("condition", deref(input.Condition), input.Condition != nil)
	setIf("working_condition", deref(input.WorkingCondition), input.WorkingCondition != nil)
	if input.Price != nil {
		fields["price"] = *input.Price
	}
	if input.Quantity != nil {
		fields["quantity"] = *input.Quantity
	}
	if input.YearOfManufacture != nil {
		fields["year_of_manufacture"] = *input.YearOfManufacture
	}
	setIf("brand", deref(input.Brand), input.Brand != nil)
	setIf("model", deref(input.Model), input.Model != nil)
	if input.Length != nil {
		fields["length"] = *input.Length
	}
	if input.Width != nil {
		fields["width"] = *input.Width
	}
	if input.Height != nil {
		fields["height"] = *input.Height
	}
	if input.Weight != nil {
		fields["weight"] = *input.Weight
	}
	setIf("material", deref(input.Material), input.Material != nil)
	setIf("color", deref(input.Color), input.Color != nil)
	if input.HasOriginalPackaging != nil {
		fields["has_original_packaging"] = *input.HasOriginalPackaging
	}
	if input.HasManual != nil {
		fields["has_manual"] = *input.HasManual
	}

	if len(fields) > 0 {
		if err := s.productRepo.UpdateFields(ctx, id, fields); err != nil {
			return nil, fmt.Errorf("update product: %w", err)
		}
	}
	s.invalidate(ctx, id)

	updated, err := s.productRepo.FindWithImagesAndSeller(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload product: %w", err)
	}
	return updated, nil
}

// Delete hard-deletes the product and its dependents after the ownership
// check, leaving nothing for subsequent reads.
func (s *productService) Delete(ctx context.Context, id, callerID uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrProductNotFound
		}
		return fmt.Errorf("find product: %w", err)
	}
	if product.SellerID != callerID {
		return apperrors.ErrNotOwner
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *productService) invalidate(ctx context.Context, id uuid.UUID) {
	_ = s.cache.Delete(ctx, productDetailCacheKey(id), byCategoryCacheKeyAll, byCategoryCacheKeyNonEmpty)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefCategory(c *model.ProductCategory) model.ProductCategory {
	if c == nil {
		return ""
	}
	return *c
}
