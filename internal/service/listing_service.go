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

// ListingSearchParams are the raw query inputs of the filtered search.
// Empty strings mean "filter not applied".
type ListingSearchParams struct {
	Category  string
	Status    string
	SellerID  string
	MinPrice  string
	MaxPrice  string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// ListingPage is a paginated slice of listings with their products.
type ListingPage struct {
	Items      []model.ProductListing `json:"items"`
	Pagination Pagination             `json:"pagination"`
}

// ListingService handles product listing CRUD and search.
type ListingService interface {
	Create(ctx context.Context, productID uuid.UUID, status string) (*model.ProductListing, error)
	Search(ctx context.Context, params ListingSearchParams) (*ListingPage, error)
	UpdateStatus(ctx context.Context, id, callerID uuid.UUID, status string) (*model.ProductListing, error)
	Delete(ctx context.Context, id, callerID uuid.UUID) error
}

type listingService struct {
	listingRepo repository.ListingRepository
	productRepo repository.ProductRepository
	cache       *cache.Client
}

// NewListingService creates the listing service.
func NewListingService(
	listingRepo repository.ListingRepository,
	productRepo repository.ProductRepository,
	cache *cache.Client,
) ListingService {
	return &listingService{listingRepo: listingRepo, productRepo: productRepo, cache: cache}
}

// Create publishes a product. Name, price and category are copied from the
// product at this moment; a product can carry at most one listing.
func (s *listingService) Create(ctx context.Context, productID uuid.UUID, status string) (*model.ProductListing, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	if _, err := s.listingRepo.FindByProductID(ctx, productID); err == nil {
		return nil, apperrors.ErrListingExists
	} else if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check existing listing: %w", err)
	}

	listingStatus := model.ListingStatusActive
	if status != "" {
		parsed, ok := model.ParseListingStatus(status)
		if !ok {
			return nil, apperrors.ErrInvalidStatus
		}
		listingStatus = parsed
	}

	listing := &model.ProductListing{
		ProductID: product.ID,
		SellerID:  product.SellerID,
		Name:      product.Title,
		Price:     product.Price,
		Category:  product.Category,
		Status:    listingStatus,
	}
	if err := s.listingRepo.Create(ctx, listing); err != nil {
		// The unique product_id index decides the loser of a create race.
		if err == gorm.ErrDuplicatedKey {
			return nil, apperrors.ErrListingExists
		}
		return nil, fmt.Errorf("create listing: %w", err)
	}
	s.invalidate(ctx, productID)

	created, err := s.listingRepo.FindByIDWithProduct(ctx, listing.ID)
	if err != nil {
		return nil, fmt.Errorf("reload listing: %w", err)
	}
	return created, nil
}

// Search applies the conjunctive filter; unknown or omitted filters are
// simply not applied.
func (s *listingService) Search(ctx context.Context, params ListingSearchParams) (*ListingPage, error) {
	filter := repository.ListingFilter{
		SortBy:   listingSortColumn(params.SortBy),
		SortDesc: params.SortOrder != "asc",
	}
	if params.Category != "" {
		if cat, ok := model.ParseCategory(params.Category); ok {
			filter.Category = &cat
		}
	}
	if params.Status != "" {
		if st, ok := model.ParseListingStatus(params.Status); ok {
			filter.Status = &st
		}
	}
	if params.SellerID != "" {
		if sellerID, err := uuid.Parse(params.SellerID); err == nil {
			filter.SellerID = &sellerID
		}
	}
	if params.MinPrice != "" {
		if min, err := decimal.NewFromString(params.MinPrice); err == nil {
			filter.MinPrice = &min
		}
	}
	if params.MaxPrice != "" {
		if max, err := decimal.NewFromString(params.MaxPrice); err == nil {
			filter.MaxPrice = &max
		}
	}

	page, limit, offset := normalizePaging(params.Page, params.Limit)
	filter.Offset = offset
	filter.Limit = limit

	listings, total, err := s.listingRepo.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("search listings: %w", err)
	}
	return &ListingPage{
		Items:      listings,
		Pagination: NewPagination(page, limit, len(listings), total),
	}, nil
}

// UpdateStatus patches only the status, owner-only.
func (s *listingService) UpdateStatus(ctx context.Context, id, callerID uuid.UUID, status string) (*model.ProductListing, error) {
	listing, err := s.listingRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrListingNotFound
		}
		return nil, fmt.Errorf("find listing: %w", err)
	}
	if listing.SellerID != callerID {
		return nil, apperrors.ErrNotOwner
	}

	parsed, ok := model.ParseListingStatus(status)
	if !ok {
		return nil, apperrors.ErrInvalidStatus
	}
	if err := s.listingRepo.UpdateStatus(ctx, id, parsed); err != nil {
		return nil, fmt.Errorf("update listing status: %w", err)
	}
	s.invalidate(ctx, listing.ProductID)

	updated, err := s.listingRepo.FindByIDWithProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload listing: %w", err)
	}
	return updated, nil
}

// Delete removes the listing row, leaving the product intact (unlisted).
func (s *listingService) Delete(ctx context.Context, id, callerID uuid.UUID) error {
	listing, err := s.listingRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrListingNotFound
		}
		return fmt.Errorf("find listing: %w", err)
	}
	if listing.SellerID != callerID {
		return apperrors.ErrNotOwner
	}

	if err := s.listingRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}
	s.invalidate(ctx, listing.ProductID)
	return nil
}

func (s *listingService) invalidate(ctx context.Context, productID uuid.UUID) {
	_ = s.cache.Delete(ctx, productDetailCacheKey(productID), byCategoryCacheKeyAll, byCategoryCacheKeyNonEmpty)
}

// listingSortColumn whitelists sortable fields; anything else falls back to
// the creation timestamp.
func listingSortColumn(field string) string {
	switch field {
	case "price":
		return "price"
	case "name":
		return "name"
	case "category":
		return "category"
	case "status":
		return "status"
	case "updatedAt":
		return "updated_at"
	case "createdAt", "":
		return "created_at"
	default:
		return "created_at"
	}
}
