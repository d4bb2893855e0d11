package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"ecofinds/internal/model"
	"ecofinds/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpsertImage(ctx context.Context, userID uuid.UUID, url string) (*model.UserImage, error) {
	args := m.Called(ctx, userID, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserImage), args.Error(1)
}

// MockProductRepository is a mock implementation of ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *model.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) FindDetailByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) FindWithImagesAndSeller(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context, offset, limit int) ([]model.Product, int64, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) ListByCategory(ctx context.Context, category model.ProductCategory, offset, limit int) ([]model.Product, int64, error) {
	args := m.Called(ctx, category, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) ListAllByCategory(ctx context.Context, category model.ProductCategory) ([]model.Product, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) ListRelated(ctx context.Context, category model.ProductCategory, excludeID uuid.UUID, limit int) ([]model.Product, error) {
	args := m.Called(ctx, category, excludeID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) ListBySeller(ctx context.Context, sellerID, excludeID uuid.UUID, limit int) ([]model.Product, error) {
	args := m.Called(ctx, sellerID, excludeID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) SearchSellerProducts(ctx context.Context, sellerID uuid.UUID, filter repository.SellerProductFilter) ([]model.Product, int64, error) {
	args := m.Called(ctx, sellerID, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) SellerOverview(ctx context.Context, sellerID uuid.UUID) (*repository.SellerOverview, error) {
	args := m.Called(ctx, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.SellerOverview), args.Error(1)
}

func (m *MockProductRepository) CountBySellerPerCategory(ctx context.Context, sellerID uuid.UUID) (map[model.ProductCategory]int64, error) {
	args := m.Called(ctx, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[model.ProductCategory]int64), args.Error(1)
}

func (m *MockProductRepository) AddImage(ctx context.Context, image *model.ProductImage) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}

func (m *MockProductRepository) AddImages(ctx context.Context, images []model.ProductImage) error {
	args := m.Called(ctx, images)
	return args.Error(0)
}

func (m *MockProductRepository) FindImageByID(ctx context.Context, id uuid.UUID) (*model.ProductImage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProductImage), args.Error(1)
}

func (m *MockProductRepository) DeleteImage(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockListingRepository is a mock implementation of ListingRepository.
type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) Create(ctx context.Context, listing *model.ProductListing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

func (m *MockListingRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ProductListing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProductListing), args.Error(1)
}

func (m *MockListingRepository) FindByIDWithProduct(ctx context.Context, id uuid.UUID) (*model.ProductListing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProductListing), args.Error(1)
}

func (m *MockListingRepository) FindByProductID(ctx context.Context, productID uuid.UUID) (*model.ProductListing, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProductListing), args.Error(1)
}

func (m *MockListingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ListingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockListingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockListingRepository) Search(ctx context.Context, filter repository.ListingFilter) ([]model.ProductListing, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.ProductListing), args.Get(1).(int64), args.Error(2)
}

func (m *MockListingRepository) CountBySellerPerStatus(ctx context.Context, sellerID uuid.UUID) (map[model.ListingStatus]int64, error) {
	args := m.Called(ctx, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[model.ListingStatus]int64), args.Error(1)
}

// MockInteractionRepository is a mock implementation of InteractionRepository.
type MockInteractionRepository struct {
	mock.Mock
}

func (m *MockInteractionRepository) Upsert(ctx context.Context, row *model.UserProduct) (*model.UserProduct, error) {
	args := m.Called(ctx, row)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserProduct), args.Error(1)
}

func (m *MockInteractionRepository) FindByKey(ctx context.Context, userID, productID uuid.UUID, kind model.InteractionKind) (*model.UserProduct, error) {
	args := m.Called(ctx, userID, productID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserProduct), args.Error(1)
}

func (m *MockInteractionRepository) FindCartItem(ctx context.Context, itemID, userID uuid.UUID) (*model.UserProduct, error) {
	args := m.Called(ctx, itemID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserProduct), args.Error(1)
}

func (m *MockInteractionRepository) ListCart(ctx context.Context, userID uuid.UUID) ([]model.UserProduct, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.UserProduct), args.Error(1)
}

func (m *MockInteractionRepository) ListByUserAndKind(ctx context.Context, userID uuid.UUID, kind model.InteractionKind) ([]model.UserProduct, error) {
	args := m.Called(ctx, userID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.UserProduct), args.Error(1)
}

func (m *MockInteractionRepository) ListByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) ([]model.UserProduct, error) {
	args := m.Called(ctx, userID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.UserProduct), args.Error(1)
}

func (m *MockInteractionRepository) ListForProduct(ctx context.Context, productID uuid.UUID, kinds ...model.InteractionKind) ([]model.UserProduct, error) {
	callArgs := make([]interface{}, 0, len(kinds)+2)
	callArgs = append(callArgs, ctx, productID)
	for _, k := range kinds {
		callArgs = append(callArgs, k)
	}
	args := m.Called(callArgs...)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.UserProduct), args.Error(1)
}

func (m *MockInteractionRepository) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

func (m *MockInteractionRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInteractionRepository) DeleteByKey(ctx context.Context, userID, productID uuid.UUID, kind model.InteractionKind) (int64, error) {
	args := m.Called(ctx, userID, productID, kind)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInteractionRepository) DeleteAllByUserAndKind(ctx context.Context, userID uuid.UUID, kind model.InteractionKind) error {
	args := m.Called(ctx, userID, kind)
	return args.Error(0)
}

func (m *MockInteractionRepository) CountForProduct(ctx context.Context, productID uuid.UUID, kinds ...model.InteractionKind) (int64, error) {
	callArgs := make([]interface{}, 0, len(kinds)+2)
	callArgs = append(callArgs, ctx, productID)
	for _, k := range kinds {
		callArgs = append(callArgs, k)
	}
	args := m.Called(callArgs...)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInteractionRepository) CountForProducts(ctx context.Context, productIDs []uuid.UUID, kinds ...model.InteractionKind) (map[uuid.UUID]int64, error) {
	callArgs := make([]interface{}, 0, len(kinds)+2)
	callArgs = append(callArgs, ctx, productIDs)
	for _, k := range kinds {
		callArgs = append(callArgs, k)
	}
	args := m.Called(callArgs...)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]int64), args.Error(1)
}

func (m *MockInteractionRepository) CountBySellerPerKind(ctx context.Context, sellerID uuid.UUID, kinds ...model.InteractionKind) (map[model.InteractionKind]int64, error) {
	callArgs := make([]interface{}, 0, len(kinds)+2)
	callArgs = append(callArgs, ctx, sellerID)
	for _, k := range kinds {
		callArgs = append(callArgs, k)
	}
	args := m.Called(callArgs...)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[model.InteractionKind]int64), args.Error(1)
}

// MockPurchaseRepository is a mock implementation of PurchaseRepository.
type MockPurchaseRepository struct {
	mock.Mock
}

func (m *MockPurchaseRepository) Create(ctx context.Context, purchase *model.Purchase) error {
	args := m.Called(ctx, purchase)
	return args.Error(0)
}

func (m *MockPurchaseRepository) Search(ctx context.Context, userID uuid.UUID, filter repository.PurchaseFilter) ([]model.Purchase, int64, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.Purchase), args.Get(1).(int64), args.Error(2)
}

func (m *MockPurchaseRepository) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*model.Purchase, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) LifetimeSummary(ctx context.Context, userID uuid.UUID) (*repository.PurchaseSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PurchaseSummary), args.Error(1)
}

// MockProfileRepository is a mock implementation of ProfileRepository.
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserProfile), args.Error(1)
}

func (m *MockProfileRepository) Upsert(ctx context.Context, userID uuid.UUID, fullName, phoneNumber string, address model.Address) (*model.UserProfile, error) {
	args := m.Called(ctx, userID, fullName, phoneNumber, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserProfile), args.Error(1)
}

func (m *MockProfileRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}
