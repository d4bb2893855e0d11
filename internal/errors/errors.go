package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrProductNotFound is returned when a product id does not resolve.
	ErrProductNotFound = errors.New("product not found")
	// ErrListingNotFound is returned when a product list entry is not found.
	ErrListingNotFound = errors.New("product list entry not found")
	// ErrCartItemNotFound is returned when a cart item does not exist or is
	// not visible to the caller.
	ErrCartItemNotFound = errors.New("cart item not found")
	// ErrPurchaseNotFound is returned when a purchase is not found.
	ErrPurchaseNotFound = errors.New("purchase not found")
	// ErrProfileNotFound is returned when a user has no profile yet.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrInteractionNotFound is returned when an interaction row is absent.
	ErrInteractionNotFound = errors.New("product interaction not found")
	// ErrImageNotFound is returned when an image id does not resolve.
	ErrImageNotFound = errors.New("image not found")
	// ErrNotOwner is returned when the caller does not own the resource.
	ErrNotOwner = errors.New("not authorized to modify this resource")
	// ErrEmailTaken is returned when signing up with a registered email.
	ErrEmailTaken = errors.New("email is already registered")
	// ErrPhoneTaken is returned when a profile phone number is in use.
	ErrPhoneTaken = errors.New("phone number already exists")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrListingExists is returned when a product already has a list entry.
	ErrListingExists = errors.New("product already has a list entry")
	// ErrInvalidCategory is returned for values outside the category enum.
	ErrInvalidCategory = errors.New("invalid category")
	// ErrInvalidStatus is returned for values outside a status enum.
	ErrInvalidStatus = errors.New("invalid status")
	// ErrInvalidQuantity is returned when quantity is below 1.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	// ErrMissingFields is returned when required fields are absent.
	ErrMissingFields = errors.New("missing required fields")
	// ErrNoFile is returned when an upload request carries no file.
	ErrNoFile = errors.New("no image file provided")
	// ErrUnsupportedFile is returned for non-image upload content.
	ErrUnsupportedFile = errors.New("only .jpg, .jpeg and .png files are allowed")
)

// InsufficientStockError reports a cart quantity exceeding available stock.
// The available quantity travels with the error so handlers can surface it.
type InsufficientStockError struct {
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough stock available (%d left)", e.Available)
}

// ErrorResponse is the envelope body for failed requests.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	// AvailableQuantity is set only for stock-insufficient failures.
	AvailableQuantity *int `json:"availableQuantity,omitempty"`
}

// HTTPError carries an HTTP status alongside a classified domain error.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Available  *int
}

func (e *HTTPError) Error() string {
	return e.Message
}

// ToErrorResponse converts an HTTPError to the response envelope.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Success:           false,
		Message:           e.Message,
		Code:              e.Code,
		AvailableQuantity: e.Available,
	}
}

func newHTTPError(status int, message, code string) *HTTPError {
	return &HTTPError{StatusCode: status, Message: message, Code: code}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Anything it cannot
// classify becomes a 500 with the underlying message surfaced, matching the
// internal-tool propagation policy.
func MapErrorToHTTP(err error) *HTTPError {
	var stock *InsufficientStockError
	if errors.As(err, &stock) {
		he := newHTTPError(http.StatusBadRequest, "Not enough stock available", "INSUFFICIENT_STOCK")
		avail := stock.Available
		he.Available = &avail
		return he
	}

	switch {
	case errors.Is(err, ErrProductNotFound):
		return newHTTPError(http.StatusNotFound, err.Error(), "PRODUCT_NOT_FOUND")
	case errors.Is(err, ErrListingNotFound):
		return newHTTPError(http.StatusNotFound, err.Error(), "LISTING_NOT_FOUND")
	case errors.Is(err, ErrCartItemNotFound):
		return newHTTPError(http.StatusNotFound, err.Error(), "CART_ITEM_NOT_FOUND")
	case errors.Is(err, ErrPurchaseNotFound):
		return newHTTPError(http.StatusNotFound, err.Error(), "PURCHASE_NOT_FOUND")
	case errors.Is(err, ErrProfileNotFound):
		return newHTTPError(http.StatusNotFound, err.Error(), "PROFILE_NOT_FOUND")
	case errors.Is(err, ErrInteractionNotFound):
		return newHTTPError(http.StatusNotFound, err.Error(), "INTERACTION_NOT_FOUND")
	case errors.Is(err, ErrImageNotFound):
		return newHTTPError(http.StatusNotFound, err.Error(), "IMAGE_NOT_FOUND")
	case errors.Is(err, ErrNotOwner):
		return newHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrEmailTaken):
		return newHTTPError(http.StatusBadRequest, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrPhoneTaken):
		return newHTTPError(http.StatusBadRequest, err.Error(), "PHONE_TAKEN")
	case errors.Is(err, ErrInvalidCredentials):
		return newHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrListingExists):
		return newHTTPError(http.StatusConflict, err.Error(), "LISTING_EXISTS")
	case errors.Is(err, ErrInvalidCategory),
		errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrInvalidQuantity),
		errors.Is(err, ErrMissingFields),
		errors.Is(err, ErrNoFile),
		errors.Is(err, ErrUnsupportedFile):
		return newHTTPError(http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
	default:
		return newHTTPError(http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
	}
}
