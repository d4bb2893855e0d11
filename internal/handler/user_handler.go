package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"ecofinds/internal/service"
)

// UserHandler handles the authenticated seller's listing views.
type UserHandler struct {
	sellerService service.SellerService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(sellerService service.SellerService) *UserHandler {
	return &UserHandler{sellerService: sellerService}
}

// Listings godoc
// @Summary List the caller's own products
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param status query string false "Listing status filter"
// @Param category query string false "Category filter"
// @Param sortBy query string false "Sort field"
// @Param sortOrder query string false "asc or desc"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param includeStats query bool false "Attach aggregate stats"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/listings [get]
func (h *UserHandler) Listings(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.sellerService.Listings(c.Request().Context(), userID, service.SellerListingsParams{
		Status:       c.QueryParam("status"),
		Category:     c.QueryParam("category"),
		SortBy:       c.QueryParam("sortBy"),
		SortOrder:    c.QueryParam("sortOrder"),
		Page:         page,
		Limit:        limit,
		IncludeStats: c.QueryParam("includeStats") == "true",
	})
	if err != nil {
		return respondError(err)
	}
	return respondOK(c, "", result)
}

// Stats godoc
// @Summary Aggregate statistics over the caller's products
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/listings/stats [get]
func (h *UserHandler) Stats(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	stats, err := h.sellerService.Stats(c.Request().Context(), userID)
	if err != nil {
		return respondError(err)
	}
	return respondOK(c, "", stats)
}

// ListingDetail godoc
// @Summary One of the caller's products with engagement details
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/listings/{id} [get]
func (h *UserHandler) ListingDetail(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.sellerService.ListingDetail(c.Request().Context(), userID, id)
	if err != nil {
		return respondError(err)
	}
	return respondOK(c, "", detail)
}
