package service

import (
	"fmt"

	"github.com/google/uuid"

	"ecofinds/internal/model"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// Pagination is the block attached to every paginated response.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalItems  int64 `json:"totalItems"`
	HasMore     bool  `json:"hasMore"`
}

// NewPagination derives the pagination block from the request paging and the
// returned slice. hasMore holds exactly when skip+returned < total.
func NewPagination(page, limit, returned int, total int64) Pagination {
	skip := (page - 1) * limit
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  total,
		HasMore:     int64(skip+returned) < total,
	}
}

// normalizePaging clamps page and limit to sane bounds and returns the
// resulting offset.
func normalizePaging(page, limit int) (int, int, int) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit, (page - 1) * limit
}

// ProductCard is the shaped product summary used anywhere a single
// representative image is surfaced: the raw image collection is stripped once
// primaryImage is chosen, and the seller collapses to a summary.
type ProductCard struct {
	model.Product
	Seller        *model.UserSummary `json:"seller,omitempty"`
	PrimaryImage  string             `json:"primaryImage,omitempty"`
	FavoriteCount int64              `json:"favoriteCount"`
}

// NewProductCard shapes a product row into a card.
func NewProductCard(p model.Product, favoriteCount int64) ProductCard {
	card := ProductCard{
		Product:       p,
		PrimaryImage:  p.PrimaryImageURL(),
		FavoriteCount: favoriteCount,
	}
	if p.Seller != nil {
		s := p.Seller.Summary()
		card.Seller = &s
	}
	card.Product.Images = nil
	card.Product.Seller = nil
	card.Product.Listing = nil
	return card
}

// newProductCards shapes a batch, looking favorite counts up per product id.
func newProductCards(products []model.Product, favorites map[uuid.UUID]int64) []ProductCard {
	cards := make([]ProductCard, 0, len(products))
	for _, p := range products {
		cards = append(cards, NewProductCard(p, favorites[p.ID]))
	}
	return cards
}

func productIDs(products []model.Product) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return ids
}

// listingStatusOf reports a product's publication status, falling back to the
// synthetic UNLISTED for products without a listing row.
func listingStatusOf(p *model.Product) model.ListingStatus {
	if p != nil && p.Listing != nil {
		return p.Listing.Status
	}
	return model.ListingStatusUnlisted
}

// Cache keys shared between the catalog read path and the write paths that
// invalidate it.

func productDetailCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("catalog:product:%s", id)
}

const (
	byCategoryCacheKeyAll      = "catalog:by-category:all"
	byCategoryCacheKeyNonEmpty = "catalog:by-category:nonempty"
)
