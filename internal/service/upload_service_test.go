package service

import (
	"bytes"
	"context"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "ecofinds/internal/errors"
	"ecofinds/internal/model"
)

// newFileHeader builds a real multipart file header so store() can open and
// copy it.
func newFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("image", filename)
	assert.NoError(t, err)
	_, err = fw.Write(content)
	assert.NoError(t, err)
	assert.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	assert.NoError(t, err)
	return form.File["image"][0]
}

func TestUploadService_ProductImage(t *testing.T) {
	productID := uuid.New()

	tests := []struct {
		name          string
		file          *multipart.FileHeader
		setupMock     func(*MockProductRepository)
		expectedError error
	}{
		{
			name: "unsupported extension",
			file: &multipart.FileHeader{Filename: "animation.gif"},
			setupMock: func(m *MockProductRepository) {
				m.On("FindByID", mock.Anything, productID).Return(&model.Product{ID: productID}, nil)
			},
			expectedError: apperrors.ErrUnsupportedFile,
		},
		{
			name: "missing file",
			file: nil,
			setupMock: func(m *MockProductRepository) {
				m.On("FindByID", mock.Anything, productID).Return(&model.Product{ID: productID}, nil)
			},
			expectedError: apperrors.ErrNoFile,
		},
		{
			name: "product not found",
			file: &multipart.FileHeader{Filename: "photo.jpg"},
			setupMock: func(m *MockProductRepository) {
				m.On("FindByID", mock.Anything, productID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrProductNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockProducts := new(MockProductRepository)
			mockUsers := new(MockUserRepository)
			tt.setupMock(mockProducts)

			service := NewUploadService(mockProducts, mockUsers, nil, t.TempDir(), "http://localhost:8080")
			uploaded, err := service.ProductImage(context.Background(), productID, tt.file)

			assert.Error(t, err)
			assert.Equal(t, tt.expectedError, err)
			assert.Nil(t, uploaded)

			mockProducts.AssertExpectations(t)
		})
	}
}

func TestUploadService_ProductImage_StoresAndInvalidates(t *testing.T) {
	productID := uuid.New()

	mockProducts := new(MockProductRepository)
	mockUsers := new(MockUserRepository)
	mockProducts.On("FindByID", mock.Anything, productID).Return(&model.Product{ID: productID}, nil)
	mockProducts.On("AddImage", mock.Anything, mock.MatchedBy(func(img *model.ProductImage) bool {
		return img.ProductID == productID && img.IsPrimary
	})).Return(nil)

	service := NewUploadService(mockProducts, mockUsers, nil, t.TempDir(), "http://localhost:8080/")
	file := newFileHeader(t, "photo.jpg", []byte("jpeg-bytes"))
	uploaded, err := service.ProductImage(context.Background(), productID, file)

	assert.NoError(t, err)
	assert.NotNil(t, uploaded)
	assert.True(t, uploaded.IsPrimary)
	assert.True(t, strings.HasPrefix(uploaded.ImageURL, "http://localhost:8080/uploads/products/"))
	assert.True(t, strings.HasSuffix(uploaded.ImageURL, ".jpg"))

	mockProducts.AssertExpectations(t)
}

func TestUploadService_ProductImages(t *testing.T) {
	productID := uuid.New()

	mockProducts := new(MockProductRepository)
	mockUsers := new(MockUserRepository)
	mockProducts.On("FindByID", mock.Anything, productID).Return(&model.Product{ID: productID}, nil)
	mockProducts.On("AddImages", mock.Anything, mock.MatchedBy(func(images []model.ProductImage) bool {
		return len(images) == 2 && images[0].IsPrimary && !images[1].IsPrimary
	})).Return(nil)

	service := NewUploadService(mockProducts, mockUsers, nil, t.TempDir(), "http://localhost:8080")
	files := []*multipart.FileHeader{
		newFileHeader(t, "front.jpg", []byte("front")),
		newFileHeader(t, "back.png", []byte("back")),
	}
	uploaded, err := service.ProductImages(context.Background(), productID, files)

	assert.NoError(t, err)
	assert.Len(t, uploaded, 2)
	// Only the first image of a batch is primary.
	assert.True(t, uploaded[0].IsPrimary)
	assert.False(t, uploaded[1].IsPrimary)

	mockProducts.AssertExpectations(t)
}

func TestUploadService_ProductImages_Empty(t *testing.T) {
	mockProducts := new(MockProductRepository)
	mockUsers := new(MockUserRepository)

	service := NewUploadService(mockProducts, mockUsers, nil, t.TempDir(), "http://localhost:8080")
	uploaded, err := service.ProductImages(context.Background(), uuid.New(), nil)

	assert.Error(t, err)
	assert.Equal(t, apperrors.ErrNoFile, err)
	assert.Nil(t, uploaded)
}

func TestUploadService_ProfileImage_UnsupportedFile(t *testing.T) {
	mockProducts := new(MockProductRepository)
	mockUsers := new(MockUserRepository)

	service := NewUploadService(mockProducts, mockUsers, nil, t.TempDir(), "http://localhost:8080")
	uploaded, err := service.ProfileImage(context.Background(), uuid.New(), &multipart.FileHeader{Filename: "avatar.webp"})

	assert.Error(t, err)
	assert.Equal(t, apperrors.ErrUnsupportedFile, err)
	assert.Nil(t, uploaded)
}
