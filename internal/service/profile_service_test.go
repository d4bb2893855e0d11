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

func TestProfileService_Get(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name          string
		setupMock     func(*MockProfileRepository)
		expectedError error
	}{
		{
			name: "existing profile",
			setupMock: func(m *MockProfileRepository) {
				m.On("FindByUserID", mock.Anything, userID).Return(&model.UserProfile{
					UserID:      userID,
					FullName:    "Alice Example",
					PhoneNumber: "+1-555-0100",
				}, nil)
			},
			expectedError: nil,
		},
		{
			name: "no profile yet",
			setupMock: func(m *MockProfileRepository) {
				m.On("FindByUserID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrProfileNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockProfiles := new(MockProfileRepository)
			tt.setupMock(mockProfiles)

			service := NewProfileService(mockProfiles)
			profile, err := service.Get(context.Background(), userID)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, profile)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, profile)
				assert.Equal(t, "Alice Example", profile.FullName)
			}

			mockProfiles.AssertExpectations(t)
		})
	}
}

func TestProfileService_Upsert(t *testing.T) {
	userID := uuid.New()
	address := model.Address{Street: "1 Main St", City: "Portland", Country: "USA"}

	tests := []struct {
		name          string
		input         UpsertProfileInput
		setupMock     func(*MockProfileRepository)
		expectedError error
	}{
		{
			name:  "successful upsert",
			input: UpsertProfileInput{FullName: "Alice Example", PhoneNumber: "+1-555-0100", Address: address},
			setupMock: func(m *MockProfileRepository) {
				m.On("Upsert", mock.Anything, userID, "Alice Example", "+1-555-0100", address).Return(&model.UserProfile{
					UserID:      userID,
					FullName:    "Alice Example",
					PhoneNumber: "+1-555-0100",
					Address:     &address,
				}, nil)
			},
			expectedError: nil,
		},
		{
			name:          "missing full name",
			input:         UpsertProfileInput{PhoneNumber: "+1-555-0100", Address: address},
			setupMock:     func(m *MockProfileRepository) {},
			expectedError: apperrors.ErrMissingFields,
		},
		{
			name:          "missing phone number",
			input:         UpsertProfileInput{FullName: "Alice Example", Address: address},
			setupMock:     func(m *MockProfileRepository) {},
			expectedError: apperrors.ErrMissingFields,
		},
		{
			name:  "phone number already in use",
			input: UpsertProfileInput{FullName: "Alice Example", PhoneNumber: "+1-555-0100", Address: address},
			setupMock: func(m *MockProfileRepository) {
				m.On("Upsert", mock.Anything, userID, "Alice Example", "+1-555-0100", address).Return(nil, gorm.ErrDuplicatedKey)
			},
			expectedError: apperrors.ErrPhoneTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockProfiles := new(MockProfileRepository)
			tt.setupMock(mockProfiles)

			service := NewProfileService(mockProfiles)
			profile, err := service.Upsert(context.Background(), userID, tt.input)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, profile)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, profile)
				assert.NotNil(t, profile.Address)
			}

			mockProfiles.AssertExpectations(t)
		})
	}
}

func TestProfileService_Delete(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name          string
		setupMock     func(*MockProfileRepository)
		expectedError error
	}{
		{
			name: "successful delete",
			setupMock: func(m *MockProfileRepository) {
				m.On("DeleteByUserID", mock.Anything, userID).Return(int64(1), nil)
			},
			expectedError: nil,
		},
		{
			name: "absent profile is not found",
			setupMock: func(m *MockProfileRepository) {
				m.On("DeleteByUserID", mock.Anything, userID).Return(int64(0), nil)
			},
			expectedError: apperrors.ErrProfileNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockProfiles := new(MockProfileRepository)
			tt.setupMock(mockProfiles)

			service := NewProfileService(mockProfiles)
			err := service.Delete(context.Background(), userID)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
			} else {
				assert.NoError(t, err)
			}

			mockProfiles.AssertExpectations(t)
		})
	}
}
