package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "ecofinds/internal/errors"
	"ecofinds/internal/model"
	"ecofinds/internal/repository"
)

func TestSellerService_Listings(t *testing.T) {
	sellerID := uuid.New()
	listed := model.Product{
		ID:       uuid.New(),
		Title:    "Vintage Denim Jacket",
		Category: model.CategoryClothing,
		Quantity: 1,
		SellerID: sellerID,
		Listing:  &model.ProductListing{Status: model.ListingStatusActive},
	}
	draft := model.Product{
		ID:       uuid.New(),
		Title:    "Oak Bookshelf",
		Category: model.CategoryFurniture,
		Quantity: 1,
		SellerID: sellerID,
	}

	mockProducts := new(MockProductRepository)
	mockListings := new(MockListingRepository)
	mockInteractions := new(MockInteractionRepository)

	mockProducts.On("SearchSellerProducts", mock.Anything, sellerID, mock.AnythingOfType("repository.SellerProductFilter")).
		Return([]model.Product{listed, draft}, int64(2), nil)
	mockInteractions.On("CountForProducts", mock.Anything, mock.Anything, model.InteractionFavorite, model.InteractionViewed).
		Return(map[uuid.UUID]int64{listed.ID: 9}, nil)

	service := NewSellerService(mockProducts, mockListings, mockInteractions)
	page, err := service.Listings(context.Background(), sellerID, SellerListingsParams{Page: 1, Limit: 10})

	assert.NoError(t, err)
	assert.NotNil(t, page)
	assert.Len(t, page.Listings, 2)
	assert.Equal(t, model.ListingStatusActive, page.Listings[0].Status)
	// Drafts without a listing row read as UNLISTED.
	assert.Equal(t, model.ListingStatusUnlisted, page.Listings[1].Status)
	assert.Equal(t, int64(9), page.Listings[0].Stats.Views)
	// Favorites are only broken out when stats are requested.
	assert.Equal(t, int64(0), page.Listings[0].Stats.Favorites)
	assert.Nil(t, page.Stats)

	mockProducts.AssertExpectations(t)
	mockInteractions.AssertExpectations(t)
}

func TestSellerService_Listings_WithStats(t *testing.T) {
	sellerID := uuid.New()
	product := model.Product{
		ID:       uuid.New(),
		Title:    "Mechanical Keyboard",
		Category: model.CategoryElectronics,
		Quantity: 3,
		SellerID: sellerID,
		Listing:  &model.ProductListing{Status: model.ListingStatusActive},
	}

	mockProducts := new(MockProductRepository)
	mockListings := new(MockListingRepository)
	mockInteractions := new(MockInteractionRepository)

	mockProducts.On("SearchSellerProducts", mock.Anything, sellerID, mock.AnythingOfType("repository.SellerProductFilter")).
		Return([]model.Product{product}, int64(1), nil)
	mockInteractions.On("CountForProducts", mock.Anything, mock.Anything, model.InteractionFavorite, model.InteractionViewed).
		Return(map[uuid.UUID]int64{product.ID: 12}, nil)
	mockInteractions.On("CountForProducts", mock.Anything, mock.Anything, model.InteractionFavorite).
		Return(map[uuid.UUID]int64{product.ID: 4}, nil)
	mockProducts.On("SellerOverview", mock.Anything, sellerID).Return(&repository.SellerOverview{
		TotalListings: 1,
		TotalQuantity: 3,
	}, nil)
	mockListings.On("CountBySellerPerStatus", mock.Anything, sellerID).
		Return(map[model.ListingStatus]int64{model.ListingStatusActive: 1}, nil)
	mockProducts.On("CountBySellerPerCategory", mock.Anything, sellerID).
		Return(map[model.ProductCategory]int64{model.CategoryElectronics: 1}, nil)

	service := NewSellerService(mockProducts, mockListings, mockInteractions)
	page, err := service.Listings(context.Background(), sellerID, SellerListingsParams{Page: 1, Limit: 10, IncludeStats: true})

	assert.NoError(t, err)
	assert.NotNil(t, page)
	assert.Equal(t, int64(12), page.Listings[0].Stats.Views)
	assert.Equal(t, int64(4), page.Listings[0].Stats.Favorites)
	assert.NotNil(t, page.Stats)
	assert.Equal(t, int64(1), page.Stats.TotalListings)
	assert.Equal(t, int64(3), page.Stats.TotalQuantity)
	assert.Equal(t, int64(1), page.Stats.ByStatus[model.ListingStatusActive])

	mockProducts.AssertExpectations(t)
	mockListings.AssertExpectations(t)
	mockInteractions.AssertExpectations(t)
}

func TestSellerService_Stats(t *testing.T) {
	sellerID := uuid.New()

	mockProducts := new(MockProductRepository)
	mockListings := new(MockListingRepository)
	mockInteractions := new(MockInteractionRepository)

	mockProducts.On("SellerOverview", mock.Anything, sellerID).Return(&repository.SellerOverview{
		TotalListings: 4,
		TotalQuantity: 7,
		AveragePrice:  decimal.NewFromFloat(52.25),
		MinPrice:      decimal.NewFromFloat(15),
		MaxPrice:      decimal.NewFromFloat(120),
	}, nil)
	mockListings.On("CountBySellerPerStatus", mock.Anything, sellerID).
		Return(map[model.ListingStatus]int64{model.ListingStatusActive: 3, model.ListingStatusSold: 1}, nil)
	mockProducts.On("CountBySellerPerCategory", mock.Anything, sellerID).
		Return(map[model.ProductCategory]int64{model.CategoryClothing: 2, model.CategoryBooks: 2}, nil)
	mockInteractions.On("CountBySellerPerKind", mock.Anything, sellerID, model.InteractionViewed, model.InteractionFavorite).
		Return(map[model.InteractionKind]int64{model.InteractionViewed: 30, model.InteractionFavorite: 8}, nil)

	service := NewSellerService(mockProducts, mockListings, mockInteractions)
	stats, err := service.Stats(context.Background(), sellerID)

	assert.NoError(t, err)
	assert.NotNil(t, stats)
	assert.Equal(t, int64(4), stats.Overview.TotalListings)
	assert.True(t, decimal.NewFromFloat(52.25).Equal(stats.Overview.AveragePrice))
	assert.Equal(t, int64(3), stats.StatusDistribution[model.ListingStatusActive])
	assert.Equal(t, int64(2), stats.CategoryDistribution[model.CategoryBooks])
	// Interaction keys are lowercased in the response.
	assert.Equal(t, int64(30), stats.Interactions["viewed"])
	assert.Equal(t, int64(8), stats.Interactions["favorite"])

	mockProducts.AssertExpectations(t)
	mockListings.AssertExpectations(t)
	mockInteractions.AssertExpectations(t)
}

func TestSellerService_ListingDetail(t *testing.T) {
	sellerID := uuid.New()
	productID := uuid.New()

	t.Run("someone else's product reads as not found", func(t *testing.T) {
		mockProducts := new(MockProductRepository)
		mockListings := new(MockListingRepository)
		mockInteractions := new(MockInteractionRepository)
		mockProducts.On("FindDetailByID", mock.Anything, productID).
			Return(&model.Product{ID: productID, SellerID: uuid.New()}, nil)

		service := NewSellerService(mockProducts, mockListings, mockInteractions)
		detail, err := service.ListingDetail(context.Background(), sellerID, productID)

		assert.Error(t, err)
		assert.Equal(t, apperrors.ErrListingNotFound, err)
		assert.Nil(t, detail)
		mockProducts.AssertExpectations(t)
	})

	t.Run("missing product", func(t *testing.T) {
		mockProducts := new(MockProductRepository)
		mockListings := new(MockListingRepository)
		mockInteractions := new(MockInteractionRepository)
		mockProducts.On("FindDetailByID", mock.Anything, productID).Return(nil, gorm.ErrRecordNotFound)

		service := NewSellerService(mockProducts, mockListings, mockInteractions)
		detail, err := service.ListingDetail(context.Background(), sellerID, productID)

		assert.Error(t, err)
		assert.Equal(t, apperrors.ErrListingNotFound, err)
		assert.Nil(t, detail)
		mockProducts.AssertExpectations(t)
	})

	t.Run("viewers and counts", func(t *testing.T) {
		now := time.Now()
		product := &model.Product{
			ID:       productID,
			Title:    "Oak Bookshelf",
			Category: model.CategoryFurniture,
			SellerID: sellerID,
			Listing:  &model.ProductListing{Status: model.ListingStatusActive, CreatedAt: now.Add(-24 * time.Hour)},
		}

		edges := []model.UserProduct{
			{Interaction: model.InteractionFavorite, UpdatedAt: now},
		}
		for i := 0; i < 6; i++ {
			viewer := &model.User{ID: uuid.New(), DisplayName: "Viewer"}
			edges = append(edges, model.UserProduct{
				Interaction: model.InteractionViewed,
				UpdatedAt:   now.Add(-time.Duration(i) * time.Minute),
				User:        viewer,
			})
		}

		mockProducts := new(MockProductRepository)
		mockListings := new(MockListingRepository)
		mockInteractions := new(MockInteractionRepository)
		mockProducts.On("FindDetailByID", mock.Anything, productID).Return(product, nil)
		mockInteractions.On("ListForProduct", mock.Anything, productID, model.InteractionFavorite, model.InteractionViewed).
			Return(edges, nil)

		service := NewSellerService(mockProducts, mockListings, mockInteractions)
		detail, err := service.ListingDetail(context.Background(), sellerID, productID)

		assert.NoError(t, err)
		assert.NotNil(t, detail)
		// Views count every favorite and view edge combined.
		assert.Equal(t, int64(7), detail.Stats.Views)
		assert.Equal(t, int64(1), detail.Stats.Favorites)
		assert.Len(t, detail.Stats.RecentViewers, recentViewersLimit)
		assert.Equal(t, model.ListingStatusActive, detail.Status)
		assert.NotNil(t, detail.Dates.Listed)
		assert.NotNil(t, detail.Images)

		mockProducts.AssertExpectations(t)
		mockInteractions.AssertExpectations(t)
	})
}
