package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "ecofinds/internal/errors"
	"ecofinds/internal/model"
	"ecofinds/internal/repository"
)

const recentViewersLimit = 5

// SellerListingsParams are the query inputs of the seller listings view.
type SellerListingsParams struct {
	Status       string
	Category     string
	SortBy       string
	SortOrder    string
	Page         int
	Limit        int
	IncludeStats bool
}

// SellerListingItem is one row of the seller's own listings view.
type SellerListingItem struct {
	ID           uuid.UUID             `json:"id"`
	Title        string                `json:"title"`
	Price        decimal.Decimal       `json:"price"`
	Category     model.ProductCategory `json:"category"`
	Condition    string                `json:"condition"`
	Quantity     int                   `json:"quantity"`
	Status       model.ListingStatus   `json:"status"`
	PrimaryImage string                `json:"primaryImage,omitempty"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
	Stats        SellerListingCounts   `json:"stats"`
}

// SellerListingCounts is the per-listing engagement block.
type SellerListingCounts struct {
	Views     int64 `json:"views"`
	Favorites int64 `json:"favorites"`
}

// SellerListingStats is the optional aggregate block of the listings view.
type SellerListingStats struct {
	TotalListings int64                           `json:"totalListings"`
	TotalQuantity int64                           `json:"totalQuantity"`
	ByStatus      map[model.ListingStatus]int64   `json:"byStatus"`
	ByCategory    map[model.ProductCategory]int64 `json:"byCategory"`
}

// SellerListingsPage is the full seller listings response.
type SellerListingsPage struct {
	Listings   []SellerListingItem `json:"listings"`
	Pagination Pagination          `json:"pagination"`
	Stats      *SellerListingStats `json:"stats,omitempty"`
}

// SellerStats is the standalone statistics response. The status and category
// histograms are sparse: only values that actually occur appear, while the
// overview always carries all five figures (zeroed for an empty catalog).
type SellerStats struct {
	Overview             SellerStatsOverview             `json:"overview"`
	StatusDistribution   map[model.ListingStatus]int64   `json:"statusDistribution"`
	CategoryDistribution map[model.ProductCategory]int64 `json:"categoryDistribution"`
	Interactions         map[string]int64                `json:"interactions"`
}

// SellerStatsOverview aggregates price and quantity over all the seller's
// products.
type SellerStatsOverview struct {
	TotalListings int64           `json:"totalListings"`
	TotalQuantity int64           `json:"totalQuantity"`
	AveragePrice  decimal.Decimal `json:"averagePrice"`
	MinPrice      decimal.Decimal `json:"minPrice"`
	MaxPrice      decimal.Decimal `json:"maxPrice"`
}

// ListingSpecs groups the optional physical attributes of a product.
type ListingSpecs struct {
	YearOfManufacture    *int              `json:"yearOfManufacture"`
	Brand                *string           `json:"brand"`
	Model                *string           `json:"model"`
	Dimensions           ListingDimensions `json:"dimensions"`
	Material             *string           `json:"material"`
	Color                *string           `json:"color"`
	HasOriginalPackaging bool              `json:"hasOriginalPackaging"`
	HasManual            bool              `json:"hasManual"`
	WorkingCondition     string            `json:"workingCondition"`
}

// ListingDimensions is the size/weight sub-block of ListingSpecs.
type ListingDimensions struct {
	Length *float64 `json:"length"`
	Width  *float64 `json:"width"`
	Height *float64 `json:"height"`
	Weight *float64 `json:"weight"`
}

// RecentViewer is one of the last users who viewed a listing.
type RecentViewer struct {
	UserID      uuid.UUID `json:"userId"`
	DisplayName string    `json:"displayName"`
	ImageURL    string    `json:"imageUrl,omitempty"`
}

// SellerListingDetailStats extends the per-listing counts with viewers.
type SellerListingDetailStats struct {
	Views         int64          `json:"views"`
	Favorites     int64          `json:"favorites"`
	RecentViewers []RecentViewer `json:"recentViewers"`
}

// ListingDates collects the listing's lifecycle timestamps. Listed is nil for
// unlisted products.
type ListingDates struct {
	Created time.Time  `json:"created"`
	Updated time.Time  `json:"updated"`
	Listed  *time.Time `json:"listed"`
}

// SellerListingDetail is the owner-facing detail of one listing.
type SellerListingDetail struct {
	ID          uuid.UUID                `json:"id"`
	Title       string                   `json:"title"`
	Description string                   `json:"description"`
	Price       decimal.Decimal          `json:"price"`
	Category    model.ProductCategory    `json:"category"`
	Condition   string                   `json:"condition"`
	Quantity    int                      `json:"quantity"`
	Status      model.ListingStatus      `json:"status"`
	Images      []model.ProductImage     `json:"images"`
	Specs       ListingSpecs             `json:"specs"`
	Stats       SellerListingDetailStats `json:"stats"`
	Dates       ListingDates             `json:"dates"`
}

// SellerService serves the authenticated seller's own listings and stats.
type SellerService interface {
	Listings(ctx context.Context, sellerID uuid.UUID, params SellerListingsParams) (*SellerListingsPage, error)
	Stats(ctx context.Context, sellerID uuid.UUID) (*SellerStats, error)
	ListingDetail(ctx context.Context, sellerID, productID uuid.UUID) (*SellerListingDetail, error)
}

type sellerService struct {
	productRepo     repository.ProductRepository
	listingRepo     repository.ListingRepository
	interactionRepo repository.InteractionRepository
}

// NewSellerService creates the seller service.
func NewSellerService(
	productRepo repository.ProductRepository,
	listingRepo repository.ListingRepository,
	interactionRepo repository.InteractionRepository,
) SellerService {
	return &sellerService{productRepo: productRepo, listingRepo: listingRepo, interactionRepo: interactionRepo}
}

// Listings returns the seller's products (listed or not) with engagement
// counts, optionally with the aggregate stats block. Products without a
// listing row read as UNLISTED.
func (s *sellerService) Listings(ctx context.Context, sellerID uuid.UUID, params SellerListingsParams) (*SellerListingsPage, error) {
	filter := repository.SellerProductFilter{
		SortBy:   productSortColumn(params.SortBy),
		SortDesc: params.SortOrder != "asc",
	}
	if params.Status != "" {
		if st, ok := model.ParseListingStatus(params.Status); ok {
			filter.Status = &st
		}
	}
	if params.Category != "" {
		if cat, ok := model.ParseCategory(params.Category); ok {
			filter.Category = &cat
		}
	}
	page, limit, offset := normalizePaging(params.Page, params.Limit)
	filter.Offset = offset
	filter.Limit = limit

	products, total, err := s.productRepo.SearchSellerProducts(ctx, sellerID, filter)
	if err != nil {
		return nil, fmt.Errorf("search seller products: %w", err)
	}

	ids := productIDs(products)
	views, err := s.interactionRepo.CountForProducts(ctx, ids, model.InteractionFavorite, model.InteractionViewed)
	if err != nil {
		return nil, fmt.Errorf("count views: %w", err)
	}
	// Favorites are only broken out when the client opts into stats.
	var favorites map[uuid.UUID]int64
	if params.IncludeStats {
		favorites, err = s.interactionRepo.CountForProducts(ctx, ids, model.InteractionFavorite)
		if err != nil {
			return nil, fmt.Errorf("count favorites: %w", err)
		}
	}

	items := make([]SellerListingItem, 0, len(products))
	for i := range products {
		p := &products[i]
		items = append(items, SellerListingItem{
			ID:           p.ID,
			Title:        p.Title,
			Price:        p.Price,
			Category:     p.Category,
			Condition:    p.Condition,
			Quantity:     p.Quantity,
			Status:       listingStatusOf(p),
			PrimaryImage: p.PrimaryImageURL(),
			CreatedAt:    p.CreatedAt,
			UpdatedAt:    p.UpdatedAt,
			Stats: SellerListingCounts{
				Views:     views[p.ID],
				Favorites: favorites[p.ID],
			},
		})
	}

	result := &SellerListingsPage{
		Listings:   items,
		Pagination: NewPagination(page, limit, len(products), total),
	}
	if params.IncludeStats {
		stats, err := s.listingStats(ctx, sellerID)
		if err != nil {
			return nil, err
		}
		result.Stats = stats
	}
	return result, nil
}

func (s *sellerService) listingStats(ctx context.Context, sellerID uuid.UUID) (*SellerListingStats, error) {
	overview, err := s.productRepo.SellerOverview(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("seller overview: %w", err)
	}
	byStatus, err := s.listingRepo.CountBySellerPerStatus(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("count per status: %w", err)
	}
	byCategory, err := s.productRepo.CountBySellerPerCategory(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("count per category: %w", err)
	}
	return &SellerListingStats{
		TotalListings: overview.TotalListings,
		TotalQuantity: overview.TotalQuantity,
		ByStatus:      byStatus,
		ByCategory:    byCategory,
	}, nil
}

// Stats returns the standalone statistics view.
func (s *sellerService) Stats(ctx context.Context, sellerID uuid.UUID) (*SellerStats, error) {
	overview, err := s.productRepo.SellerOverview(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("seller overview: %w", err)
	}
	byStatus, err := s.listingRepo.CountBySellerPerStatus(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("count per status: %w", err)
	}
	byCategory, err := s.productRepo.CountBySellerPerCategory(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("count per category: %w", err)
	}
	perKind, err := s.interactionRepo.CountBySellerPerKind(ctx, sellerID, model.InteractionViewed, model.InteractionFavorite)
	if err != nil {
		return nil, fmt.Errorf("count interactions: %w", err)
	}

	interactions := make(map[string]int64, len(perKind))
	for kind, total := range perKind {
		interactions[lowerKind(kind)] = total
	}

	return &SellerStats{
		Overview: SellerStatsOverview{
			TotalListings: overview.TotalListings,
			TotalQuantity: overview.TotalQuantity,
			AveragePrice:  overview.AveragePrice,
			MinPrice:      overview.MinPrice,
			MaxPrice:      overview.MaxPrice,
		},
		StatusDistribution:   byStatus,
		CategoryDistribution: byCategory,
		Interactions:         interactions,
	}, nil
}

// ListingDetail returns one of the caller's own products in full, including
// who viewed it recently. A product owned by someone else reads as not found.
func (s *sellerService) ListingDetail(ctx context.Context, sellerID, productID uuid.UUID) (*SellerListingDetail, error) {
	p, err := s.productRepo.FindDetailByID(ctx, productID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrListingNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	if p.SellerID != sellerID {
		return nil, apperrors.ErrListingNotFound
	}

	edges, err := s.interactionRepo.ListForProduct(ctx, productID, model.InteractionFavorite, model.InteractionViewed)
	if err != nil {
		return nil, fmt.Errorf("list interactions: %w", err)
	}

	var views, favorites int64
	viewed := make([]model.UserProduct, 0, len(edges))
	for _, edge := range edges {
		views++
		switch edge.Interaction {
		case model.InteractionFavorite:
			favorites++
		case model.InteractionViewed:
			viewed = append(viewed, edge)
		}
	}
	sort.Slice(viewed, func(i, j int) bool {
		return viewed[i].UpdatedAt.After(viewed[j].UpdatedAt)
	})
	if len(viewed) > recentViewersLimit {
		viewed = viewed[:recentViewersLimit]
	}

	viewers := make([]RecentViewer, 0, len(viewed))
	for _, edge := range viewed {
		if edge.User == nil {
			continue
		}
		v := RecentViewer{UserID: edge.User.ID, DisplayName: edge.User.DisplayName}
		if edge.User.Image != nil {
			v.ImageURL = edge.User.Image.URL
		}
		viewers = append(viewers, v)
	}

	detail := &SellerListingDetail{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		Condition:   p.Condition,
		Quantity:    p.Quantity,
		Status:      listingStatusOf(p),
		Images:      p.Images,
		Specs: ListingSpecs{
			YearOfManufacture: p.YearOfManufacture,
			Brand:             p.Brand,
			Model:             p.Model,
			Dimensions: ListingDimensions{
				Length: p.Length,
				Width:  p.Width,
				Height: p.Height,
				Weight: p.Weight,
			},
			Material:             p.Material,
			Color:                p.Color,
			HasOriginalPackaging: p.HasOriginalPackaging,
			HasManual:            p.HasManual,
			WorkingCondition:     p.WorkingCondition,
		},
		Stats: SellerListingDetailStats{
			Views:         views,
			Favorites:     favorites,
			RecentViewers: viewers,
		},
		Dates: ListingDates{
			Created: p.CreatedAt,
			Updated: p.UpdatedAt,
		},
	}
	if p.Listing != nil {
		listed := p.Listing.CreatedAt
		detail.Dates.Listed = &listed
	}
	if detail.Images == nil {
		detail.Images = []model.ProductImage{}
	}
	return detail, nil
}

// productSortColumn whitelists sortable product fields.
func productSortColumn(field string) string {
	switch field {
	case "price":
		return "price"
	case "title":
		return "title"
	case "category":
		return "category"
	case "quantity":
		return "quantity"
	case "updatedAt":
		return "updated_at"
	default:
		return "created_at"
	}
}

func lowerKind(kind model.InteractionKind) string {
	switch kind {
	case model.InteractionViewed:
		return "viewed"
	case model.InteractionFavorite:
		return "favorite"
	case model.InteractionCart:
		return "cart"
	default:
		return "wishlist"
	}
}
