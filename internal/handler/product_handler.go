package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	apperrors "ecofinds/internal/errors"
	"ecofinds/internal/model"
	"ecofinds/internal/service"
)

// ProductHandler handles product CRUD and catalog read endpoints.
type ProductHandler struct {
	productService service.ProductService
	catalogService service.CatalogService
}

// NewProductHandler creates a new product handler.
func NewProductHandler(productService service.ProductService, catalogService service.CatalogService) *ProductHandler {
	return &ProductHandler{productService: productService, catalogService: catalogService}
}

// CreateProductRequest represents a product creation request.
type CreateProductRequest struct {
	Title            string          `json:"title" validate:"required,max=255"`
	Category         string          `json:"category" validate:"required"`
	Description      string          `json:"description" validate:"required"`
	Price            decimal.Decimal `json:"price" validate:"required"`
	Quantity         int             `json:"quantity" validate:"required,min=1"`
	Condition        string          `json:"condition" validate:"required"`
	WorkingCondition string          `json:"workingCondition" validate:"required"`

	YearOfManufacture    *int     `json:"yearOfManufacture"`
	Brand                *string  `json:"brand"`
	Model                *string  `json:"model"`
	Length               *float64 `json:"length"`
	Width                *float64 `json:"width"`
	Height               *float64 `json:"height"`
	Weight               *float64 `json:"weight"`
	Material             *string  `json:"material"`
	Color                *string  `json:"color"`
	HasOriginalPackaging bool     `json:"hasOriginalPackaging"`
	HasManual            bool     `json:"hasManual"`
}

// UpdateProductRequest represents a partial product update. Absent fields are
// left untouched.
type UpdateProductRequest struct {
	Title            *string          `json:"title"`
	Category         *string          `json:"category"`
	Description      *string          `json:"description"`
	Price            *decimal.Decimal `json:"price"`
	Quantity         *int             `json:"quantity"`
	Condition        *string          `json:"condition"`
	WorkingCondition *string          `json:"workingCondition"`

	YearOfManufacture    *int     `json:"yearOfManufacture"`
	Brand                *string  `json:"brand"`
	Model                *string  `json:"model"`
	Length               *float64 `json:"length"`
	Width                *float64 `json:"width"`
	Height               *float64 `json:"height"`
	Weight               *float64 `json:"weight"`
	Material             *string  `json:"material"`
	Color                *string  `json:"color"`
	HasOriginalPackaging *bool    `json:"hasOriginalPackaging"`
	HasManual            *bool    `json:"hasManual"`
}

// Create godoc
// @Summary Create a product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateProductRequest true "Product data"
// @Success 201 {object} SuccessResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	category, ok := model.ParseCategory(req.Category)
	if !ok {
		return respondError(apperrors.ErrInvalidCategory)
	}

	product, err := h.productService.Create(c.Request().Context(), userID, service.CreateProductInput{
		Title:                req.Title,
		Category:             category,
		Description:          req.Description,
		Price:                req.Price,
		Quantity:             req.Quantity,
		Condition:            req.Condition,
		WorkingCondition:     req.WorkingCondition,
		YearOfManufacture:    req.YearOfManufacture,
		Brand:                req.Brand,
		Model:                req.Model,
		Length:               req.Length,
		Width:                req.Width,
		Height:               req.Height,
		Weight:               req.Weight,
		Material:             req.Material,
		Color:                req.Color,
		HasOriginalPackaging: req.HasOriginalPackaging,
		HasManual:            req.HasManual,
	})
	if err != nil {
		return respondError(err)
	}
	return respondCreated(c, "Product created successfully", product)
}

// List godoc
// @Summary List products
// @Tags products
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} SuccessResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.catalogService.ListProducts(c.Request().Context(), page, limit)
	if err != nil {
		return respondError(err)
	}
	return respondOK(c, "", result)
}

// GetDetail godoc
// @Summary Get a product with related and seller strips
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /products/{id} [get]
func (h *ProductHandler) GetDetail(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.catalogService.GetProductDetail(c.Request().Context(), id, optionalUserID(c))
	if err != nil {
		return respondError(err)
	}
	return respondOK(c, "", detail)
}

// ByCategory godoc
// @Summary List products of one category
// @Tags products
// @Produce json
// @Param category path string true "Category"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /products/category/{category} [get]
func (h *ProductHandler) ByCategory(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.catalogService.ListByCategory(c.Request().Context(), c.Param("category"), page, limit)
	if err != nil {
		return respondError(err)
	}
	return respondOK(c, "", result)
}

// Grouped godoc
// @Summary Group the whole catalog by category
// @Tags products
// @Produce json
// @Param hideEmpty query bool false "Drop empty categories"
// @Success 200 {object} SuccessResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /products/by-category [get]
func (h *ProductHandler) Grouped(c echo.Context) error {
	hideEmpty := c.QueryParam("hideEmpty") == "true"

	buckets, err := h.catalogService.GroupByCategory(c.Request().Context(), hideEmpty)
	if err != nil {
		return respondError(err)
	}
	return respondOK(c, "", buckets)
}

// Update godoc
// @Summary Update a product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param request body UpdateProductRequest true "Fields to update"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	input := service.UpdateProductInput{
		Title:                req.Title,
		Description:          req.Description,
		Price:                req.Price,
		Quantity:             req.Quantity,
		Condition:            req.Condition,
		WorkingCondition:     req.WorkingCondition,
		YearOfManufacture:    req.YearOfManufacture,
		Brand:                req.Brand,
		Model:                req.Model,
		Length:               req.Length,
		Width:                req.Width,
		Height:               req.Height,
		Weight:               req.Weight,
		Material:             req.Material,
		Color:                req.Color,
		HasOriginalPackaging: req.HasOriginalPackaging,
		HasManual:            req.HasManual,
	}
	if req.Category != nil {
		category, ok := model.ParseCategory(*req.Category)
		if !ok {
			return respondError(apperrors.ErrInvalidCategory)
		}
		input.Category = &category
	}

	product, err := h.productService.Update(c.Request().Context(), id, userID, input)
	if err != nil {
		return respondError(err)
	}
	return respondOK(c, "Product updated successfully", product)
}

// Delete godoc
// @Summary Delete a product and its dependents
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.productService.Delete(c.Request().Context(), id, userID); err != nil {
		return respondError(err)
	}
	return respondOK(c, "Product deleted successfully", nil)
}
