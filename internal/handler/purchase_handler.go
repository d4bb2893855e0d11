package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"ecofinds/internal/service"
)

// PurchaseHandler handles purchase history endpoints.
type PurchaseHandler struct {
	purchaseService service.PurchaseService
}

// NewPurchaseHandler creates a new purchase handler.
func NewPurchaseHandler(purchaseService service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

// History godoc
// @Summary The caller's purchase history with lifetime summary
// @Tags purchases
// @Produce json
// @Security BearerAuth
// @Param status query string false "Purchase status filter"
// @Param startDate query string false "Inclusive lower date bound"
// @Param endDate query string false "Inclusive upper date bound"
// @Param sortBy query string false "Sort field"
// @Param sortOrder query string false "asc or desc"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /purchases/history [get]
func (h *PurchaseHandler) History(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.purchaseService.History(c.Request().Context(), userID, service.PurchaseHistoryParams{
		Status:    c.QueryParam("status"),
		StartDate: c.QueryParam("startDate"),
		EndDate:   c.QueryParam("endDate"),
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

// Detail godoc
// @Summary One purchase in full
// @Tags purchases
// @Produce json
// @Security BearerAuth
// @Param id path string true "Purchase ID"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /purchases/{id} [get]
func (h *PurchaseHandler) Detail(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.purchaseService.Detail(c.Request().Context(), id, userID)
	if err != nil {
		return respondError(err)
	}
	return respondOK(c, "", detail)
}
