package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ecofinds/internal/cache"
	apperrors "ecofinds/internal/errors"
	"ecofinds/internal/model"
	"ecofinds/internal/repository"
)

const (
	relatedProductsLimit     = 6
	sellerOtherProductsLimit = 4
	catalogCacheTTL          = 2 * time.Minute
)

// SellerLocation is the city-level location surfaced on product detail.
type SellerLocation struct {
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
}

// DetailedProduct is the main product on the detail view: full row with
// images, seller, listing, plus the computed fields.
type DetailedProduct struct {
	model.Product
	PrimaryImage     string              `json:"primaryImage,omitempty"`
	FavoriteCount    int64               `json:"favoriteCount"`
	UserInteractions []model.UserProduct `json:"userInteractions"`
	SellerLocation   SellerLocation      `json:"sellerLocation"`
}

// ProductDetail bundles the detail view with its two recommendation strips.
type ProductDetail struct {
	Product             DetailedProduct `json:"product"`
	RelatedProducts     []ProductCard   `json:"relatedProducts"`
	SellerOtherProducts []ProductCard   `json:"sellerOtherProducts"`
}

// CategoryBucket is one bucket of the grouped catalog view.
type CategoryBucket struct {
	Category model.ProductCategory `json:"category"`
	Products []ProductCard         `json:"products"`
}

// ProductPage is a paginated slice of raw products (images and seller kept).
type ProductPage struct {
	Products   []model.Product `json:"products"`
	Pagination Pagination      `json:"pagination"`
}

// CardPage is a paginated slice of shaped product cards.
type CardPage struct {
	Products   []ProductCard `json:"products"`
	Pagination Pagination    `json:"pagination"`
}

// CatalogService composes store queries into denormalized, UI-ready views.
// It never mutates anything.
type CatalogService interface {
	ListProducts(ctx context.Context, page, limit int) (*ProductPage, error)
	GetProductDetail(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*ProductDetail, error)
	ListByCategory(ctx context.Context, category string, page, limit int) (*CardPage, error)
	GroupByCategory(ctx context.Context, hideEmpty bool) ([]CategoryBucket, error)
}

type catalogService struct {
	productRepo     repository.ProductRepository
	interactionRepo repository.InteractionRepository
	cache           *cache.Client
}

// NewCatalogService creates the catalog read service.
func NewCatalogService(
	productRepo repository.ProductRepository,
	interactionRepo repository.InteractionRepository,
	cache *cache.Client,
) CatalogService {
	return &catalogService{
		productRepo:     productRepo,
		interactionRepo: interactionRepo,
		cache:           cache,
	}
}

// ListProducts returns the catalog newest first, paginated.
func (s *catalogService) ListProducts(ctx context.Context, page, limit int) (*ProductPage, error) {
	page, limit, offset := normalizePaging(page, limit)
	products, total, err := s.productRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return &ProductPage{
		Products:   products,
		Pagination: NewPagination(page, limit, len(products), total),
	}, nil
}

// GetProductDetail assembles the full detail view: product with images,
// seller and listing, favorite count, the viewer's own interaction rows, and
// the related/seller-other recommendation strips.
func (s *catalogService) GetProductDetail(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*ProductDetail, error) {
	// Anonymous detail views are cacheable; a viewer's own interaction rows
	// make the authenticated variant per-user.
	if viewerID == nil {
		var cached ProductDetail
		if s.cache.GetJSON(ctx, productDetailCacheKey(id), &cached) {
			return &cached, nil
		}
	}

	product, err := s.productRepo.FindDetailByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	favoriteCount, err := s.interactionRepo.CountForProduct(ctx, id, model.InteractionFavorite)
	if err != nil {
		return nil, fmt.Errorf("count favorites: %w", err)
	}

	interactions := []model.UserProduct{}
	if viewerID != nil {
		interactions, err = s.interactionRepo.ListByUserAndProduct(ctx, *viewerID, id)
		if err != nil {
			return nil, fmt.Errorf("list viewer interactions: %w", err)
		}
	}

	related, err := s.productRepo.ListRelated(ctx, product.Category, id, relatedProductsLimit)
	if err != nil {
		return nil, fmt.Errorf("list related products: %w", err)
	}
	sellerOther, err := s.productRepo.ListBySeller(ctx, product.SellerID, id, sellerOtherProductsLimit)
	if err != nil {
		return nil, fmt.Errorf("list seller products: %w", err)
	}

	stripIDs := append(productIDs(related), productIDs(sellerOther)...)
	favorites, err := s.interactionRepo.CountForProducts(ctx, stripIDs, model.InteractionFavorite)
	if err != nil {
		return nil, fmt.Errorf("count strip favorites: %w", err)
	}

	detail := &ProductDetail{
		Product: DetailedProduct{
			Product:          *product,
			PrimaryImage:     product.PrimaryImageURL(),
			FavoriteCount:    favoriteCount,
			UserInteractions: interactions,
			SellerLocation:   sellerLocationOf(product),
		},
		RelatedProducts:     newProductCards(related, favorites),
		SellerOtherProducts: newProductCards(sellerOther, favorites),
	}

	if viewerID == nil {
		s.cache.SetJSON(ctx, productDetailCacheKey(id), detail, catalogCacheTTL)
	}
	return detail, nil
}

// ListByCategory returns one category's products newest first, paginated.
// The sort is fixed; it is not client-selectable on this operation.
func (s *catalogService) ListByCategory(ctx context.Context, category string, page, limit int) (*CardPage, error) {
	cat, ok := model.ParseCategory(category)
	if !ok {
		return nil, apperrors.ErrInvalidCategory
	}

	page, limit, offset := normalizePaging(page, limit)
	products, total, err := s.productRepo.ListByCategory(ctx, cat, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list category products: %w", err)
	}

	favorites, err := s.interactionRepo.CountForProducts(ctx, productIDs(products), model.InteractionFavorite)
	if err != nil {
		return nil, fmt.Errorf("count favorites: %w", err)
	}

	return &CardPage{
		Products:   newProductCards(products, favorites),
		Pagination: NewPagination(page, limit, len(products), total),
	}, nil
}

// GroupByCategory enumerates every category value in order, one bucket each.
// With hideEmpty set, empty buckets are dropped. Buckets are fetched one
// query per category, so latency grows with the enum; fine while it is small.
func (s *catalogService) GroupByCategory(ctx context.Context, hideEmpty bool) ([]CategoryBucket, error) {
	cacheKey := byCategoryCacheKeyAll
	if hideEmpty {
		cacheKey = byCategoryCacheKeyNonEmpty
	}
	var cached []CategoryBucket
	if s.cache.GetJSON(ctx, cacheKey, &cached) {
		return cached, nil
	}

	buckets := make([]CategoryBucket, 0, len(model.AllCategories()))
	for _, cat := range model.AllCategories() {
		products, err := s.productRepo.ListAllByCategory(ctx, cat)
		if err != nil {
			return nil, fmt.Errorf("list %s products: %w", cat, err)
		}
		if hideEmpty && len(products) == 0 {
			continue
		}
		favorites, err := s.interactionRepo.CountForProducts(ctx, productIDs(products), model.InteractionFavorite)
		if err != nil {
			return nil, fmt.Errorf("count favorites: %w", err)
		}
		buckets = append(buckets, CategoryBucket{
			Category: cat,
			Products: newProductCards(products, favorites),
		})
	}

	s.cache.SetJSON(ctx, cacheKey, buckets, catalogCacheTTL)
	return buckets, nil
}

func sellerLocationOf(p *model.Product) SellerLocation {
	if p.Seller == nil || p.Seller.Profile == nil || p.Seller.Profile.Address == nil {
		return SellerLocation{}
	}
	addr := p.Seller.Profile.Address
	return SellerLocation{City: addr.City, State: addr.State, Country: addr.Country}
}
