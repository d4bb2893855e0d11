package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "ecofinds/internal/errors"
	"ecofinds/internal/service"
)

// UploadHandler handles image upload endpoints.
type UploadHandler struct {
	uploadService service.UploadService
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(uploadService service.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// Single godoc
// @Summary Upload one product image
// @Tags upload
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Image file"
// @Param productId formData string true "Product ID"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /upload/upload [post]
func (h *UploadHandler) Single(c echo.Context) error {
	if _, err := currentUserID(c); err != nil {
		return err
	}
	productID, err := uuid.Parse(c.FormValue("productId"))
	if err != nil {
		return badRequest("invalid productId")
	}
	file, err := c.FormFile("image")
	if err != nil {
		return respondError(apperrors.ErrNoFile)
	}

	image, err := h.uploadService.ProductImage(c.Request().Context(), productID, file)
	if err != nil {
		return respondError(err)
	}
	return respondOK(c, "Image uploaded successfully", image)
}

// Multiple godoc
// @Summary Upload up to five product images
// @Tags upload
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param images formData file true "Image files"
// @Param productId formData string true "Product ID"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /upload/upload-multiple [post]
func (h *UploadHandler) Multiple(c echo.Context) error {
	if _, err := currentUserID(c); err != nil {
		return err
	}
	productID, err := uuid.Parse(c.FormValue("productId"))
	if err != nil {
		return badRequest("invalid productId")
	}
	form, err := c.MultipartForm()
	if err != nil {
		return respondError(apperrors.ErrNoFile)
	}
	files := form.File["images"]

	images, err := h.uploadService.ProductImages(c.Request().Context(), productID, files)
	if err != nil {
		return respondError(err)
	}
	return respondOK(c, "Images uploaded successfully", images)
}

// ProfileImage godoc
// @Summary Upload or replace the caller's avatar
// @Tags upload
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Image file"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /upload/profile-image [post]
func (h *UploadHandler) ProfileImage(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	file, err := c.FormFile("image")
	if err != nil {
		return respondError(apperrors.ErrNoFile)
	}

	image, err := h.uploadService.ProfileImage(c.Request().Context(), userID, file)
	if err != nil {
		return respondError(err)
	}
	return respondOK(c, "Profile image uploaded successfully", image)
}
