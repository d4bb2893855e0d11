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

// CartRow is the shaped row returned by cart mutations: the interaction row
// with its product collapsed into a card.
type CartRow struct {
	model.UserProduct
	Product *ProductCard `json:"product,omitempty"`
}

// CartItemView is one entry of the detailed cart read.
type CartItemView struct {
	ID         uuid.UUID       `json:"id"`
	Product    CartItemProduct `json:"product"`
	Seller     CartItemSeller  `json:"seller"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	ItemTotal  decimal.Decimal `json:"itemTotal"`
	AddedAt    time.Time       `json:"addedAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// CartItemProduct is the trimmed product inside a cart item.
type CartItemProduct struct {
	ID       uuid.UUID             `json:"id"`
	Name     string                `json:"name"`
	Category model.ProductCategory `json:"category"`
	ImageURL string                `json:"imageUrl,omitempty"`
	Price    decimal.Decimal       `json:"price"`
	Stock    int                   `json:"stock"`
	Status   model.ListingStatus   `json:"status"`
}

// CartItemSeller is the seller contact block inside a cart item.
type CartItemSeller struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Image string    `json:"image,omitempty"`
	Phone string    `json:"phone,omitempty"`
}

// CategoryLine is one row of the cart's per-category breakdown.
type CategoryLine struct {
	Category  model.ProductCategory `json:"category"`
	ItemCount int                   `json:"itemCount"`
	Subtotal  decimal.Decimal       `json:"subtotal"`
}

// CartDetails is the aggregate summary over the whole cart.
type CartDetails struct {
	TotalItems      int             `json:"totalItems"`
	UniqueItems     int             `json:"uniqueItems"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	ItemsByCategory []CategoryLine  `json:"itemsByCategory"`
}

// CartView is the full cart read response.
type CartView struct {
	CartDetails CartDetails    `json:"cartDetails"`
	Items       []CartItemView `json:"items"`
}

// CartService handles the caller's shopping cart.
type CartService interface {
	Add(ctx context.Context, userID, productID uuid.UUID, quantity int) (*CartRow, error)
	Get(ctx context.Context, userID uuid.UUID) (*CartView, error)
	UpdateQuantity(ctx context.Context, itemID, userID uuid.UUID, quantity int) (*CartRow, error)
	Remove(ctx context.Context, itemID, userID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

type cartService struct {
	interactionRepo repository.InteractionRepository
	productRepo     repository.ProductRepository
}

// NewCartService creates the cart service.
func NewCartService(interactionRepo repository.InteractionRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{interactionRepo: interactionRepo, productRepo: productRepo}
}

// Add puts a product in the caller's cart. Re-adding replaces the quantity in
// place; the unique interaction key guarantees a single row per product even
// under concurrent adds.
func (s *cartService) Add(ctx context.Context, userID, productID uuid.UUID, quantity int) (*CartRow, error) {
	if quantity < 1 {
		return nil, apperrors.ErrInvalidQuantity
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	if product.Quantity < quantity {
		return nil, &apperrors.InsufficientStockError{Available: product.Quantity}
	}

	row, err := s.interactionRepo.Upsert(ctx, &model.UserProduct{
		UserID:      userID,
		ProductID:   productID,
		Interaction: model.InteractionCart,
		Quantity:    quantity,
	})
	if err != nil {
		return nil, fmt.Errorf("upsert cart row: %w", err)
	}
	return s.shapeRow(ctx, row)
}

// Get returns the cart with per-item totals and the aggregate summary,
// most-recently-added first.
func (s *cartService) Get(ctx context.Context, userID uuid.UUID) (*CartView, error) {
	rows, err := s.interactionRepo.ListCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}

	view := &CartView{
		Items: make([]CartItemView, 0, len(rows)),
	}
	byCategory := make(map[model.ProductCategory]*CategoryLine)
	order := make([]model.ProductCategory, 0)
	subtotal := decimal.Zero

	for _, row := range rows {
		if row.Product == nil {
			continue
		}
		p := row.Product
		itemTotal := p.Price.Mul(decimal.NewFromInt(int64(row.Quantity)))

		view.CartDetails.TotalItems += row.Quantity
		view.CartDetails.UniqueItems++
		subtotal = subtotal.Add(itemTotal)

		line, ok := byCategory[p.Category]
		if !ok {
			line = &CategoryLine{Category: p.Category}
			byCategory[p.Category] = line
			order = append(order, p.Category)
		}
		line.ItemCount += row.Quantity
		line.Subtotal = line.Subtotal.Add(itemTotal)

		item := CartItemView{
			ID: row.ID,
			Product: CartItemProduct{
				ID:       p.ID,
				Name:     p.Title,
				Category: p.Category,
				ImageURL: p.PrimaryImageURL(),
				Price:    p.Price,
				Stock:    p.Quantity,
				Status:   cartItemStatus(p),
			},
			Quantity:   row.Quantity,
			TotalPrice: itemTotal,
			ItemTotal:  itemTotal.Round(2),
			AddedAt:    row.CreatedAt,
			UpdatedAt:  row.UpdatedAt,
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
		view.Items = append(view.Items, item)
	}

	view.CartDetails.Subtotal = subtotal.Round(2)
	view.CartDetails.ItemsByCategory = make([]CategoryLine, 0, len(order))
	for _, cat := range order {
		line := byCategory[cat]
		line.Subtotal = line.Subtotal.Round(2)
		view.CartDetails.ItemsByCategory = append(view.CartDetails.ItemsByCategory, *line)
	}
	return view, nil
}

// UpdateQuantity changes an existing cart row's quantity, re-validating stock.
// A foreign item id matches nothing and reads as not found.
func (s *cartService) UpdateQuantity(ctx context.Context, itemID, userID uuid.UUID, quantity int) (*CartRow, error) {
	if quantity < 1 {
		return nil, apperrors.ErrInvalidQuantity
	}

	row, err := s.interactionRepo.FindCartItem(ctx, itemID, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrCartItemNotFound
		}
		return nil, fmt.Errorf("find cart item: %w", err)
	}
	if row.Product == nil {
		return nil, apperrors.ErrProductNotFound
	}
	if row.Product.Quantity < quantity {
		return nil, &apperrors.InsufficientStockError{Available: row.Product.Quantity}
	}

	if err := s.interactionRepo.UpdateQuantity(ctx, row.ID, quantity); err != nil {
		return nil, fmt.Errorf("update cart quantity: %w", err)
	}
	row.Quantity = quantity
	return s.shapeRow(ctx, row)
}

// Remove deletes one cart row scoped to the caller.
func (s *cartService) Remove(ctx context.Context, itemID, userID uuid.UUID) error {
	row, err := s.interactionRepo.FindCartItem(ctx, itemID, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrCartItemNotFound
		}
		return fmt.Errorf("find cart item: %w", err)
	}
	if err := s.interactionRepo.DeleteByID(ctx, row.ID); err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}
	return nil
}

// Clear empties the caller's cart. Clearing an already-empty cart succeeds.
func (s *cartService) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.interactionRepo.DeleteAllByUserAndKind(ctx, userID, model.InteractionCart); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

// shapeRow reloads the product with images and seller and collapses it into a
// card for the mutation response.
func (s *cartService) shapeRow(ctx context.Context, row *model.UserProduct) (*CartRow, error) {
	product, err := s.productRepo.FindWithImagesAndSeller(ctx, row.ProductID)
	if err != nil {
		return nil, fmt.Errorf("reload cart product: %w", err)
	}
	card := NewProductCard(*product, 0)
	shaped := &CartRow{UserProduct: *row, Product: &card}
	shaped.UserProduct.Product = nil
	return shaped, nil
}

// cartItemStatus reports the product's listing status; products without a
// listing row read as ACTIVE inside the cart.
func cartItemStatus(p *model.Product) model.ListingStatus {
	if p.Listing != nil {
		return p.Listing.Status
	}
	return model.ListingStatusActive
}
