package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ecofinds/internal/cache"
	apperrors "ecofinds/internal/errors"
	"ecofinds/internal/model"
	"ecofinds/internal/repository"
)

const maxImagesPerUpload = 5

// UploadedImage is the response shape of an image upload.
type UploadedImage struct {
	ID        uuid.UUID `json:"id"`
	ImageURL  string    `json:"imageUrl"`
	IsPrimary bool      `json:"isPrimary"`
}

// UploadService stores image files on local disk and records their URLs.
type UploadService interface {
	ProductImage(ctx context.Context, productID uuid.UUID, file *multipart.FileHeader) (*UploadedImage, error)
	ProductImages(ctx context.Context, productID uuid.UUID, files []*multipart.FileHeader) ([]UploadedImage, error)
	ProfileImage(ctx context.Context, userID uuid.UUID, file *multipart.FileHeader) (*UploadedImage, error)
}

type uploadService struct {
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	cache       *cache.Client
	dir         string
	baseURL     string
}

// NewUploadService creates the upload service. dir is created on first use.
func NewUploadService(productRepo repository.ProductRepository, userRepo repository.UserRepository, cache *cache.Client, dir, baseURL string) UploadService {
	return &uploadService{
		productRepo: productRepo,
		userRepo:    userRepo,
		cache:       cache,
		dir:         dir,
		baseURL:     strings.TrimRight(baseURL, "/"),
	}
}

// ProductImage stores a single product image and flags it primary.
func (s *uploadService) ProductImage(ctx context.Context, productID uuid.UUID, file *multipart.FileHeader) (*UploadedImage, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	url, err := s.store(file, "products")
	if err != nil {
		return nil, err
	}
	image := &model.ProductImage{ProductID: productID, URL: url, IsPrimary: true}
	if err := s.productRepo.AddImage(ctx, image); err != nil {
		return nil, fmt.Errorf("save product image: %w", err)
	}
	s.invalidate(ctx, productID)
	return &UploadedImage{ID: image.ID, ImageURL: image.URL, IsPrimary: image.IsPrimary}, nil
}

// ProductImages stores up to five images; the first becomes primary.
func (s *uploadService) ProductImages(ctx context.Context, productID uuid.UUID, files []*multipart.FileHeader) ([]UploadedImage, error) {
	if len(files) == 0 {
		return nil, apperrors.ErrNoFile
	}
	if len(files) > maxImagesPerUpload {
		files = files[:maxImagesPerUpload]
	}
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	images := make([]model.ProductImage, 0, len(files))
	for i, file := range files {
		url, err := s.store(file, "products")
		if err != nil {
			return nil, err
		}
		images = append(images, model.ProductImage{
			ProductID: productID,
			URL:       url,
			IsPrimary: i == 0,
		})
	}
	if err := s.productRepo.AddImages(ctx, images); err != nil {
		return nil, fmt.Errorf("save product images: %w", err)
	}
	s.invalidate(ctx, productID)

	uploaded := make([]UploadedImage, 0, len(images))
	for _, img := range images {
		uploaded = append(uploaded, UploadedImage{ID: img.ID, ImageURL: img.URL, IsPrimary: img.IsPrimary})
	}
	return uploaded, nil
}

// ProfileImage stores the caller's avatar, replacing any previous one.
func (s *uploadService) ProfileImage(ctx context.Context, userID uuid.UUID, file *multipart.FileHeader) (*UploadedImage, error) {
	url, err := s.store(file, "profiles")
	if err != nil {
		return nil, err
	}
	image, err := s.userRepo.UpsertImage(ctx, userID, url)
	if err != nil {
		return nil, fmt.Errorf("save profile image: %w", err)
	}
	return &UploadedImage{ID: image.ID, ImageURL: image.URL, IsPrimary: image.IsPrimary}, nil
}

// invalidate drops the cached views that carry a product's primary image.
func (s *uploadService) invalidate(ctx context.Context, productID uuid.UUID) {
	_ = s.cache.Delete(ctx, productDetailCacheKey(productID), byCategoryCacheKeyAll, byCategoryCacheKeyNonEmpty)
}

// store writes the file under dir/sub with a random name and returns its
// public URL.
func (s *uploadService) store(file *multipart.FileHeader, sub string) (string, error) {
	if file == nil {
		return "", apperrors.ErrNoFile
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png":
	default:
		return "", apperrors.ErrUnsupportedFile
	}

	dir := filepath.Join(s.dir, sub)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := uuid.NewString() + ext
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return fmt.Sprintf("%s/uploads/%s/%s", s.baseURL, sub, name), nil
}
