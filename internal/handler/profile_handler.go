package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ecofinds/internal/model"
	"ecofinds/internal/service"
)

// ProfileHandler handles user profile endpoints.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// AddressRequest represents the address block of a profile write.
type AddressRequest struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	ZipCode string `json:"zipCode"`
}

// UpsertProfileRequest represents a profile create-or-replace request.
type UpsertProfileRequest struct {
	FullName    string         `json:"fullName" validate:"required,max=100"`
	PhoneNumber string         `json:"phoneNumber" validate:"required,max=20"`
	Address     AddressRequest `json:"address" validate:"required"`
}

// Get godoc
// @Summary Read the caller's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	profile, err := h.profileService.Get(c.Request().Context(), userID)
	if err != nil {
		return respondError(err)
	}
	return respondOK(c, "", profile)
}

// Upsert godoc
// @Summary Create or replace the caller's profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpsertProfileRequest true "Profile data"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/profile [post]
func (h *ProfileHandler) Upsert(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req UpsertProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.profileService.Upsert(c.Request().Context(), userID, service.UpsertProfileInput{
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Address: model.Address{
			Street:  req.Address.Street,
			City:    req.Address.City,
			State:   req.Address.State,
			Country: req.Address.Country,
			ZipCode: req.Address.ZipCode,
		},
	})
	if err != nil {
		return respondError(err)
	}
	return respondOK(c, "Profile saved successfully", profile)
}

// Delete godoc
// @Summary Delete the caller's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/profile [delete]
func (h *ProfileHandler) Delete(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	if err := h.profileService.Delete(c.Request().Context(), userID); err != nil {
		return respondError(err)
	}
	return respondOK(c, "Profile deleted successfully", nil)
}
