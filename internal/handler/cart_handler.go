package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"ecofinds/internal/service"
)

// CartHandler handles shopping cart endpoints.
type CartHandler struct {
	cartService service.CartService
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// AddToCartRequest represents a cart add request. Quantity defaults to 1.
type AddToCartRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity"`
}

// UpdateCartItemRequest represents a quantity change.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// Add godoc
// @Summary Add a product to the cart
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AddToCartRequest true "Cart item"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /cart/add [post]
func (h *CartHandler) Add(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req AddToCartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	item, err := h.cartService.Add(c.Request().Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		return respondError(err)
	}
	return respondOK(c, "Product added to cart successfully", item)
}

// Get godoc
// @Summary Read the cart with summary
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /cart [get]
func (h *CartHandler) Get(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	view, err := h.cartService.Get(c.Request().Context(), userID)
	if err != nil {
		return respondError(err)
	}
	return respondOK(c, "", view)
}

// Update godoc
// @Summary Change a cart item's quantity
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param itemId path string true "Cart item ID"
// @Param request body UpdateCartItemRequest true "New quantity"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /cart/update/{itemId} [patch]
func (h *CartHandler) Update(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	itemID, err := parseUUIDParam(c, "itemId")
	if err != nil {
		return err
	}

	var req UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.cartService.UpdateQuantity(c.Request().Context(), itemID, userID, req.Quantity)
	if err != nil {
		return respondError(err)
	}
	return respondOK(c, "Cart item updated successfully", item)
}

// Remove godoc
// @Summary Remove one cart item
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Param itemId path string true "Cart item ID"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /cart/remove/{itemId} [delete]
func (h *CartHandler) Remove(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	itemID, err := parseUUIDParam(c, "itemId")
	if err != nil {
		return err
	}

	if err := h.cartService.Remove(c.Request().Context(), itemID, userID); err != nil {
		return respondError(err)
	}
	return respondOK(c, "Item removed from cart successfully", nil)
}

// Clear godoc
// @Summary Empty the cart
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /cart/clear [delete]
func (h *CartHandler) Clear(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	if err := h.cartService.Clear(c.Request().Context(), userID); err != nil {
		return respondError(err)
	}
	return respondOK(c, "Cart cleared successfully", nil)
}
