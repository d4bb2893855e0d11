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

// UpsertProfileInput carries a full profile write. All fields are required;
// the address replaces the stored one wholesale.
type UpsertProfileInput struct {
	FullName    string
	PhoneNumber string
	Address     model.Address
}

// ProfileService handles the caller's contact profile.
type ProfileService interface {
	Get(ctx context.Context, userID uuid.UUID) (*model.UserProfile, error)
	Upsert(ctx context.Context, userID uuid.UUID, input UpsertProfileInput) (*model.UserProfile, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

type profileService struct {
	profileRepo repository.ProfileRepository
}

// NewProfileService creates the profile service.
func NewProfileService(profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

func (s *profileService) Get(ctx context.Context, userID uuid.UUID) (*model.UserProfile, error) {
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return profile, nil
}

// Upsert creates the profile on first write and replaces it afterwards. The
// phone number is globally unique; a clash surfaces as a conflict.
func (s *profileService) Upsert(ctx context.Context, userID uuid.UUID, input UpsertProfileInput) (*model.UserProfile, error) {
	if input.FullName == "" || input.PhoneNumber == "" {
		return nil, apperrors.ErrMissingFields
	}

	profile, err := s.profileRepo.Upsert(ctx, userID, input.FullName, input.PhoneNumber, input.Address)
	if err != nil {
		if err == gorm.ErrDuplicatedKey {
			return nil, apperrors.ErrPhoneTaken
		}
		return nil, fmt.Errorf("upsert profile: %w", err)
	}
	return profile, nil
}

// Delete removes the profile and its address. Deleting an absent profile is
// not found.
func (s *profileService) Delete(ctx context.Context, userID uuid.UUID) error {
	affected, err := s.profileRepo.DeleteByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrProfileNotFound
	}
	return nil
}
