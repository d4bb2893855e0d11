package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ecofinds/internal/model"
)

// ProfileRepository defines user profile persistence operations.
type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*model.UserProfile, error)
	Upsert(ctx context.Context, userID uuid.UUID, fullName, phoneNumber string, address model.Address) (*model.UserProfile, error)
	DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.UserProfile, error) {
	var profile model.UserProfile
	err := r.db.WithContext(ctx).
		Preload("Address").
		Preload("User").
		Preload("User.Image").
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Upsert creates or updates the profile and its nested address in one
// transaction. Phone uniqueness violations surface as gorm.ErrDuplicatedKey.
func (r *profileRepository) Upsert(ctx context.Context, userID uuid.UUID, fullName, phoneNumber string, address model.Address) (*model.UserProfile, error) {
	var result *model.UserProfile
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var profile model.UserProfile
		err := tx.Where("user_id = ?", userID).First(&profile).Error
		switch {
		case err == nil:
			profile.FullName = fullName
			profile.PhoneNumber = phoneNumber
			if err := tx.Save(&profile).Error; err != nil {
				return err
			}
		case err == gorm.ErrRecordNotFound:
			profile = model.UserProfile{UserID: userID, FullName: fullName, PhoneNumber: phoneNumber}
			if err := tx.Create(&profile).Error; err != nil {
				return err
			}
		default:
			return err
		}

		var existing model.Address
		err = tx.Where("profile_id = ?", profile.ID).First(&existing).Error
		switch {
		case err == nil:
			existing.Street = address.Street
			existing.City = address.City
			existing.State = address.State
			existing.Country = address.Country
			existing.ZipCode = address.ZipCode
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			profile.Address = &existing
		case err == gorm.ErrRecordNotFound:
			created := address
			created.ID = uuid.Nil
			created.ProfileID = profile.ID
			if err := tx.Create(&created).Error; err != nil {
				return err
			}
			profile.Address = &created
		default:
			return err
		}

		result = &profile
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *profileRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.UserProfile{})
	return res.RowsAffected, res.Error
}
