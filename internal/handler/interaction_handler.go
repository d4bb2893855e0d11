package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"ecofinds/internal/service"
)

// InteractionHandler handles generic user-product interaction endpoints
// (favorite, viewed, wishlist).
type InteractionHandler struct {
	interactionService service.InteractionService
}

// NewInteractionHandler creates a new interaction handler.
func NewInteractionHandler(interactionService service.InteractionService) *InteractionHandler {
	return &InteractionHandler{interactionService: interactionService}
}

// UpsertInteractionRequest represents an interaction write.
type UpsertInteractionRequest struct {
	ProductID   uuid.UUID `json:"productId" validate:"required"`
	Interaction string    `json:"interaction" validate:"required"`
	Quantity    *int      `json:"quantity"`
	Notes       *string   `json:"notes"`
}

// Upsert godoc
// @Summary Record a product interaction
// @Tags user-products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpsertInteractionRequest true "Interaction"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /user-products [post]
func (h *InteractionHandler) Upsert(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req UpsertInteractionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	row, err := h.interactionService.Upsert(c.Request().Context(), userID, service.UpsertInteractionInput{
		ProductID: req.ProductID,
		Kind:      req.Interaction,
		Quantity:  req.Quantity,
		Notes:     req.Notes,
	})
	if err != nil {
		return respondError(err)
	}
	return respondOK(c, "Product interaction added successfully", row)
}

// ListByKind godoc
// @Summary List the caller's interactions of one kind
// @Tags user-products
// @Produce json
// @Security BearerAuth
// @Param interaction path string true "Interaction kind"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /user-products/{interaction} [get]
func (h *InteractionHandler) ListByKind(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	rows, err := h.interactionService.ListByKind(c.Request().Context(), userID, c.Param("interaction"))
	if err != nil {
		return respondError(err)
	}
	return respondOK(c, "", rows)
}

// Remove godoc
// @Summary Remove a product interaction
// @Tags user-products
// @Produce json
// @Security BearerAuth
// @Param productId path string true "Product ID"
// @Param interaction path string true "Interaction kind"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /user-products/{productId}/{interaction} [delete]
func (h *InteractionHandler) Remove(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	productID, err := parseUUIDParam(c, "productId")
	if err != nil {
		return err
	}

	if err := h.interactionService.Remove(c.Request().Context(), userID, productID, c.Param("interaction")); err != nil {
		return respondError(err)
	}
	return respondOK(c, "Product interaction removed successfully", nil)
}
