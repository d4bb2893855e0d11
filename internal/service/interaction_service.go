package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "ecofinds/internal/errors"
	"ecofinds/internal/model"
	"ecofinds/internal/repository"
)

// UpsertInteractionInput carries the write for a generic interaction edge.
type UpsertInteractionInput struct {
	ProductID uuid.UUID
	Kind      string
	Quantity  *int
	Notes     *string
}

// InteractionService handles the non-cart interaction kinds (favorite, view,
// wishlist) plus the generic upsert the cart also rides on.
type InteractionService interface {
	Upsert(ctx context.Context, userID uuid.UUID, input UpsertInteractionInput) (*model.UserProduct, error)
	ListByKind(ctx context.Context, userID uuid.UUID, kind string) ([]CartRow, error)
	Remove(ctx context.Context, userID, productID uuid.UUID, kind string) error
}

type interactionService struct {
	interactionRepo repository.InteractionRepository
	productRepo     repository.ProductRepository
}

// NewInteractionService creates the interaction service.
func NewInteractionService(interactionRepo repository.InteractionRepository, productRepo repository.ProductRepository) InteractionService {
	return &interactionService{interactionRepo: interactionRepo, productRepo: productRepo}
}

// Upsert records an interaction. Repeating the same (product, kind) write
// updates the existing row in place, so favoriting twice stays one row.
func (s *interactionService) Upsert(ctx context.Context, userID uuid.UUID, input UpsertInteractionInput) (*model.UserProduct, error) {
	kind, ok := model.ParseInteraction(input.Kind)
	if !ok {
		return nil, apperrors.ErrMissingFields
	}

	if _, err := s.productRepo.FindByID(ctx, input.ProductID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	row := &model.UserProduct{
		UserID:      userID,
		ProductID:   input.ProductID,
		Interaction: kind,
		Quantity:    1,
		Notes:       input.Notes,
	}
	if input.Quantity != nil && *input.Quantity >= 1 {
		row.Quantity = *input.Quantity
	}

	saved, err := s.interactionRepo.Upsert(ctx, row)
	if err != nil {
		return nil, fmt.Errorf("upsert interaction: %w", err)
	}
	return saved, nil
}

// ListByKind returns the caller's rows of one kind, each with the product
// shaped into a card.
func (s *interactionService) ListByKind(ctx context.Context, userID uuid.UUID, kind string) ([]CartRow, error) {
	parsed, ok := model.ParseInteraction(kind)
	if !ok {
		return nil, apperrors.ErrMissingFields
	}

	rows, err := s.interactionRepo.ListByUserAndKind(ctx, userID, parsed)
	if err != nil {
		return nil, fmt.Errorf("list interactions: %w", err)
	}

	shaped := make([]CartRow, 0, len(rows))
	for _, row := range rows {
		item := CartRow{UserProduct: row}
		if row.Product != nil {
			card := NewProductCard(*row.Product, 0)
			item.Product = &card
		}
		item.UserProduct.Product = nil
		shaped = append(shaped, item)
	}
	return shaped, nil
}

// Remove deletes the (user, product, kind) row. Deleting an absent row is an
// error so clients can tell a toggle-off from a no-op.
func (s *interactionService) Remove(ctx context.Context, userID, productID uuid.UUID, kind string) error {
	parsed, ok := model.ParseInteraction(kind)
	if !ok {
		return apperrors.ErrMissingFields
	}

	affected, err := s.interactionRepo.DeleteByKey(ctx, userID, productID, parsed)
	if err != nil {
		return fmt.Errorf("remove interaction: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrInteractionNotFound
	}
	return nil
}
