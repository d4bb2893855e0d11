package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "ecofinds/internal/errors"
	"ecofinds/internal/model"
)

func TestInteractionService_Upsert(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()
	quantityTwo := 2

	tests := []struct {
		name          string
		input         UpsertInteractionInput
		setupMock     func(*MockInteractionRepository, *MockProductRepository)
		expectedError error
	}{
		{
			name:  "favorite defaults quantity to one",
			input: UpsertInteractionInput{ProductID: productID, Kind: "favorite"},
			setupMock: func(mi *MockInteractionRepository, mp *MockProductRepository) {
				mp.On("FindByID", mock.Anything, productID).Return(&model.Product{ID: productID}, nil)
				mi.On("Upsert", mock.Anything, mock.MatchedBy(func(row *model.UserProduct) bool {
					return row.UserID == userID &&
						row.ProductID == productID &&
						row.Interaction == model.InteractionFavorite &&
						row.Quantity == 1
				})).Return(&model.UserProduct{UserID: userID, ProductID: productID, Interaction: model.InteractionFavorite, Quantity: 1}, nil)
			},
			expectedError: nil,
		},
		{
			name:  "explicit quantity is kept",
			input: UpsertInteractionInput{ProductID: productID, Kind: "CART", Quantity: &quantityTwo},
			setupMock: func(mi *MockInteractionRepository, mp *MockProductRepository) {
				mp.On("FindByID", mock.Anything, productID).Return(&model.Product{ID: productID}, nil)
				mi.On("Upsert", mock.Anything, mock.MatchedBy(func(row *model.UserProduct) bool {
					return row.Interaction == model.InteractionCart && row.Quantity == 2
				})).Return(&model.UserProduct{UserID: userID, ProductID: productID, Interaction: model.InteractionCart, Quantity: 2}, nil)
			},
			expectedError: nil,
		},
		{
			name:          "unknown kind",
			input:         UpsertInteractionInput{ProductID: productID, Kind: "LIKED"},
			setupMock:     func(mi *MockInteractionRepository, mp *MockProductRepository) {},
			expectedError: apperrors.ErrMissingFields,
		},
		{
			name:  "product not found",
			input: UpsertInteractionInput{ProductID: productID, Kind: "wishlist"},
			setupMock: func(mi *MockInteractionRepository, mp *MockProductRepository) {
				mp.On("FindByID", mock.Anything, productID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrProductNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockInteractions := new(MockInteractionRepository)
			mockProducts := new(MockProductRepository)
			tt.setupMock(mockInteractions, mockProducts)

			service := NewInteractionService(mockInteractions, mockProducts)
			row, err := service.Upsert(context.Background(), userID, tt.input)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, row)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, row)
			}

			mockInteractions.AssertExpectations(t)
			mockProducts.AssertExpectations(t)
		})
	}
}

func TestInteractionService_ListByKind(t *testing.T) {
	userID := uuid.New()
	product := &model.Product{
		ID:    uuid.New(),
		Title: "Go Programming Books Bundle",
		Images: []model.ProductImage{
			{URL: "books.jpg", IsPrimary: true},
		},
	}
	rows := []model.UserProduct{
		{ID: uuid.New(), UserID: userID, ProductID: product.ID, Interaction: model.InteractionWishlist, Product: product},
	}

	mockInteractions := new(MockInteractionRepository)
	mockProducts := new(MockProductRepository)
	mockInteractions.On("ListByUserAndKind", mock.Anything, userID, model.InteractionWishlist).Return(rows, nil)

	service := NewInteractionService(mockInteractions, mockProducts)
	shaped, err := service.ListByKind(context.Background(), userID, "wishlist")

	assert.NoError(t, err)
	assert.Len(t, shaped, 1)
	assert.NotNil(t, shaped[0].Product)
	assert.Equal(t, "books.jpg", shaped[0].Product.PrimaryImage)
	// The raw relation collapses into the card.
	assert.Nil(t, shaped[0].UserProduct.Product)

	mockInteractions.AssertExpectations(t)
}

func TestInteractionService_Remove(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()

	tests := []struct {
		name          string
		kind          string
		setupMock     func(*MockInteractionRepository)
		expectedError error
	}{
		{
			name: "successful remove",
			kind: "favorite",
			setupMock: func(mi *MockInteractionRepository) {
				mi.On("DeleteByKey", mock.Anything, userID, productID, model.InteractionFavorite).Return(int64(1), nil)
			},
			expectedError: nil,
		},
		{
			name: "absent row is not found",
			kind: "favorite",
			setupMock: func(mi *MockInteractionRepository) {
				mi.On("DeleteByKey", mock.Anything, userID, productID, model.InteractionFavorite).Return(int64(0), nil)
			},
			expectedError: apperrors.ErrInteractionNotFound,
		},
		{
			name:          "unknown kind",
			kind:          "starred",
			setupMock:     func(mi *MockInteractionRepository) {},
			expectedError: apperrors.ErrMissingFields,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockInteractions := new(MockInteractionRepository)
			mockProducts := new(MockProductRepository)
			tt.setupMock(mockInteractions)

			service := NewInteractionService(mockInteractions, mockProducts)
			err := service.Remove(context.Background(), userID, productID, tt.kind)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
			} else {
				assert.NoError(t, err)
			}

			mockInteractions.AssertExpectations(t)
		})
	}
}
