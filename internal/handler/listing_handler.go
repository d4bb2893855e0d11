package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"ecofinds/internal/service"
)

// ListingHandler handles product list endpoints.
type ListingHandler struct {
	listingService service.ListingService
}

// NewListingHandler creates a new listing handler.
func NewListingHandler(listingService service.ListingService) *ListingHandler {
	return &ListingHandler{listingService: listingService}
}

// CreateListingRequest represents a listing creation request.
type CreateListingRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Status    string    `json:"status"`
}

// UpdateListingStatusRequest represents a status patch.
type UpdateListingStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Create godoc
// @Summary Publish a product
// @Tags product-lists
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateListingRequest true "Listing data"
// @Success 201 {object} SuccessResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /product-lists [post]
func (h *ListingHandler) Create(c echo.Context) error {
	if _, err := currentUserID(c); err != nil {
		return err
	}

	var req CreateListingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	listing, err := h.listingService.Create(c.Request().Context(), req.ProductID, req.Status)
	if err != nil {
		return respondError(err)
	}
	return respondCreated(c, "Product list entry created successfully", listing)
}

// Search godoc
// @Summary Search listings
// @Tags product-lists
// @Produce json
// @Param category query string false "Category filter"
// @Param status query string false "Status filter"
// @Param sellerId query string false "Seller filter"
// @Param minPrice query number false "Inclusive lower price bound"
// @Param maxPrice query number false "Inclusive upper price bound"
// @Param sortBy query string false "Sort field"
// @Param sortOrder query string false "asc or desc"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} SuccessResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /product-lists [get]
func (h *ListingHandler) Search(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.listingService.Search(c.Request().Context(), service.ListingSearchParams{
		Category:  c.QueryParam("category"),
		Status:    c.QueryParam("status"),
		SellerID:  c.QueryParam("sellerId"),
		MinPrice:  c.QueryParam("minPrice"),
		MaxPrice:  c.QueryParam("maxPrice"),
		SortBy:    c.QueryParam("sortBy"),
		SortOrder: c.QueryParam("sortOrder"),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		return respondError(err)
	}
	return respondOK(c, "", result)
}

// UpdateStatus godoc
// @Summary Change a listing's status
// @Tags product-lists
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Param request body UpdateListingStatusRequest true "New status"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /product-lists/{id}/status [patch]
func (h *ListingHandler) UpdateStatus(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req UpdateListingStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	listing, err := h.listingService.UpdateStatus(c.Request().Context(), id, userID, req.Status)
	if err != nil {
		return respondError(err)
	}
	return respondOK(c, "Status updated successfully", listing)
}

// Delete godoc
// @Summary Unlist a product
// @Tags product-lists
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /product-lists/{id} [delete]
func (h *ListingHandler) Delete(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.listingService.Delete(c.Request().Context(), id, userID); err != nil {
		return respondError(err)
	}
	return respondOK(c, "Product list entry deleted successfully", nil)
}
