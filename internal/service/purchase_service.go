package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "ecofinds/internal/errors"
	"ecofinds/internal/model"
	"ecofinds/internal/repository"
)

// PurchaseHistoryParams are the query inputs of the history view. Dates are
// parsed leniently; an unparseable bound is ignored rather than rejected.
type PurchaseHistoryParams struct {
	Status    string
	StartDate string
	EndDate   string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// PurchaseHistoryItem is one row of the purchase history.
type PurchaseHistoryItem struct {
	ID              uuid.UUID            `json:"id"`
	Product         PurchaseProductBrief `json:"product"`
	Seller          CartItemSeller       `json:"seller"`
	Quantity        int                  `json:"quantity"`
	PriceAtPurchase decimal.Decimal      `json:"priceAtPurchase"`
	TotalAmount     decimal.Decimal      `json:"totalAmount"`
	Status          model.PurchaseStatus `json:"status"`
	PurchaseDate    time.Time            `json:"purchaseDate"`
	UpdatedAt       time.Time            `json:"updatedAt"`
}

// PurchaseProductBrief is the minimal product block in history rows.
type PurchaseProductBrief struct {
	ID           uuid.UUID             `json:"id"`
	Name         string                `json:"name"`
	Category     model.ProductCategory `json:"category"`
	PrimaryImage string                `json:"primaryImage,omitempty"`
}

// PurchaseLifetimeSummary aggregates the caller's COMPLETED purchases,
// independent of the filters applied to the page.
type PurchaseLifetimeSummary struct {
	TotalPurchases int64           `json:"totalPurchases"`
	TotalItems     int64           `json:"totalItems"`
	TotalSpent     decimal.Decimal `json:"totalSpent"`
}

// PurchaseHistoryPage is the full history response.
type PurchaseHistoryPage struct {
	Purchases  []PurchaseHistoryItem   `json:"purchases"`
	Pagination Pagination              `json:"pagination"`
	Summary    PurchaseLifetimeSummary `json:"summary"`
}

// PurchaseDetailView is the full single-purchase response.
type PurchaseDetailView struct {
	ID       uuid.UUID             `json:"id"`
	Product  PurchaseProductDetail `json:"product"`
	Seller   PurchaseSellerDetail  `json:"seller"`
	Purchase PurchaseLine          `json:"purchase"`
}

// PurchaseProductDetail is the expanded product block of the detail view.
type PurchaseProductDetail struct {
	ID             uuid.UUID             `json:"id"`
	Name           string                `json:"name"`
	Description    string                `json:"description"`
	Category       model.ProductCategory `json:"category"`
	Condition      string                `json:"condition"`
	Images         []model.ProductImage  `json:"images"`
	Specifications ListingSpecs          `json:"specifications"`
}

// PurchaseSellerDetail extends the seller contact block with the shipping
// address.
type PurchaseSellerDetail struct {
	ID      uuid.UUID      `json:"id"`
	Name    string         `json:"name"`
	Email   string         `json:"email"`
	Image   string         `json:"image,omitempty"`
	Phone   string         `json:"phone,omitempty"`
	Address *model.Address `json:"address"`
}

// PurchaseLine is the transaction block of the detail view.
type PurchaseLine struct {
	Quantity        int                  `json:"quantity"`
	PriceAtPurchase decimal.Decimal      `json:"priceAtPurchase"`
	TotalAmount     decimal.Decimal      `json:"totalAmount"`
	Status          model.PurchaseStatus `json:"status"`
	PurchaseDate    time.Time            `json:"purchaseDate"`
	UpdatedAt       time.Time            `json:"updatedAt"`
}

// PurchaseService serves the caller's purchase history.
type PurchaseService interface {
	History(ctx context.Context, userID uuid.UUID, params PurchaseHistoryParams) (*PurchaseHistoryPage, error)
	Detail(ctx context.Context, id, userID uuid.UUID) (*PurchaseDetailView, error)
}

type purchaseService struct {
	purchaseRepo repository.PurchaseRepository
}

// NewPurchaseService creates the purchase service.
func NewPurchaseService(purchaseRepo repository.PurchaseRepository) PurchaseService {
	return &purchaseService{purchaseRepo: purchaseRepo}
}

// History returns the filtered, paginated purchases plus the lifetime
// summary over COMPLETED rows.
func (s *purchaseService) History(ctx context.Context, userID uuid.UUID, params PurchaseHistoryParams) (*PurchaseHistoryPage, error) {
	filter := repository.PurchaseFilter{
		SortBy:   purchaseSortColumn(params.SortBy),
		SortDesc: params.SortOrder != "asc",
	}
	if params.Status != "" {
		if st, ok := model.ParsePurchaseStatus(params.Status); ok {
			filter.Status = &st
		}
	}
	if t, err := time.Parse(time.RFC3339, params.StartDate); err == nil {
		filter.StartDate = &t
	} else if t, err := time.Parse("2006-01-02", params.StartDate); err == nil {
		filter.StartDate = &t
	}
	if t, err := time.Parse(time.RFC3339, params.EndDate); err == nil {
		filter.EndDate = &t
	} else if t, err := time.Parse("2006-01-02", params.EndDate); err == nil {
		filter.EndDate = &t
	}

	page, limit, offset := normalizePaging(params.Page, params.Limit)
	filter.Offset = offset
	filter.Limit = limit

	purchases, total, err := s.purchaseRepo.Search(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("search purchases: %w", err)
	}
	summary, err := s.purchaseRepo.LifetimeSummary(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("purchase summary: %w", err)
	}

	items := make([]PurchaseHistoryItem, 0, len(purchases))
	for _, purchase := range purchases {
		item := PurchaseHistoryItem{
			ID:              purchase.ID,
			Quantity:        purchase.Quantity,
			PriceAtPurchase: purchase.PriceAtPurchase,
			TotalAmount:     purchase.PriceAtPurchase.Mul(decimal.NewFromInt(int64(purchase.Quantity))),
			Status:          purchase.Status,
			PurchaseDate:    purchase.PurchaseDate,
			UpdatedAt:       purchase.UpdatedAt,
		}
		if p := purchase.Product; p != nil {
			item.Product = PurchaseProductBrief{
				ID:           p.ID,
				Name:         p.Title,
				Category:     p.Category,
				PrimaryImage: p.PrimaryImageURL(),
			}
			if p.Seller != nil {
				item.Seller = CartItemSeller{
					ID:    p.Seller.ID,
					Name:  p.Seller.DisplayName,
					Email: p.Seller.Email,
				}
				if p.Seller.Image != nil {
					item.Seller.Image = p.Seller.Image.URL
				}
				if p.Seller.Profile != nil {
					item.Seller.Phone = p.Seller.Profile.PhoneNumber
				}
			}
		}
		items = append(items, item)
	}

	return &PurchaseHistoryPage{
		Purchases:  items,
		Pagination: NewPagination(page, limit, len(purchases), total),
		Summary: PurchaseLifetimeSummary{
			TotalPurchases: summary.TotalPurchases,
			TotalItems:     summary.TotalItems,
			TotalSpent:     summary.TotalSpent,
		},
	}, nil
}

// Detail returns one of the caller's purchases in full. A purchase belonging
// to someone else reads as not found.
func (s *purchaseService) Detail(ctx context.Context, id, userID uuid.UUID) (*PurchaseDetailView, error) {
	purchase, err := s.purchaseRepo.FindByIDForUser(ctx, id, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrPurchaseNotFound
		}
		return nil, fmt.Errorf("find purchase: %w", err)
	}

	view := &PurchaseDetailView{
		ID: purchase.ID,
		Purchase: PurchaseLine{
			Quantity:        purchase.Quantity,
			PriceAtPurchase: purchase.PriceAtPurchase,
			TotalAmount:     purchase.PriceAtPurchase.Mul(decimal.NewFromInt(int64(purchase.Quantity))),
			Status:          purchase.Status,
			PurchaseDate:    purchase.PurchaseDate,
			UpdatedAt:       purchase.UpdatedAt,
		},
	}
	if p := purchase.Product; p != nil {
		view.Product = PurchaseProductDetail{
			ID:          p.ID,
			Name:        p.Title,
			Description: p.Description,
			Category:    p.Category,
			Condition:   p.Condition,
			Images:      p.Images,
			Specifications: ListingSpecs{
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
		}
		if view.Product.Images == nil {
			view.Product.Images = []model.ProductImage{}
		}
		if p.Seller != nil {
			view.Seller = PurchaseSellerDetail{
				ID:    p.Seller.ID,
				Name:  p.Seller.DisplayName,
				Email: p.Seller.Email,
			}
			if p.Seller.Image != nil {
				view.Seller.Image = p.Seller.Image.URL
			}
			if p.Seller.Profile != nil {
				view.Seller.Phone = p.Seller.Profile.PhoneNumber
				view.Seller.Address = p.Seller.Profile.Address
			}
		}
	}
	return view, nil
}

// purchaseSortColumn whitelists sortable purchase fields.
func purchaseSortColumn(field string) string {
	switch field {
	case "status":
		return "status"
	case "quantity":
		return "quantity"
	case "priceAtPurchase":
		return "price_at_purchase"
	case "updatedAt":
		return "updated_at"
	default:
		return "purchase_date"
	}
}
