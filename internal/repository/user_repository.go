package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ecofinds/internal/model"
)

// UserRepository defines account persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	UpsertImage(ctx context.Context, userID uuid.UUID, url string) (*model.UserImage, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Preload("Image").Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpsertImage replaces the user's single profile image URL, creating the row
// on first upload.
func (r *userRepository) UpsertImage(ctx context.Context, userID uuid.UUID, url string) (*model.UserImage, error) {
	var image model.UserImage
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&image).Error
	switch {
	case err == nil:
		image.URL = url
		if err := r.db.WithContext(ctx).Save(&image).Error; err != nil {
			return nil, err
		}
		return &image, nil
	case err == gorm.ErrRecordNotFound:
		image = model.UserImage{UserID: userID, URL: url, IsPrimary: true}
		if err := r.db.WithContext(ctx).Create(&image).Error; err != nil {
			return nil, err
		}
		return &image, nil
	default:
		return nil, err
	}
}
