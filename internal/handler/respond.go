package handler

import (
	"net/http"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"ecofinds/internal/auth"
	"ecofinds/internal/errors"
)

// SuccessResponse is the envelope body for successful requests.
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func respondOK(c echo.Context, message string, data interface{}) error {
	return c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: message, Data: data})
}

func respondCreated(c echo.Context, message string, data interface{}) error {
	return c.JSON(http.StatusCreated, SuccessResponse{Success: true, Message: message, Data: data})
}

// respondError maps a domain error onto the HTTP envelope.
func respondError(err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func badRequest(message string) error {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Success: false,
		Message: message,
		Code:    "VALIDATION_ERROR",
	})
}

// currentUserID extracts the authenticated user's id from the JWT middleware
// context. Routes behind the auth group always have it set.
func currentUserID(c echo.Context) (uuid.UUID, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
	}
	return claims.UserID, nil
}

// optionalUserID is currentUserID for routes where authentication is not
// required; it returns nil for anonymous callers.
func optionalUserID(c echo.Context) *uuid.UUID {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok {
		return nil
	}
	id := claims.UserID
	return &id
}

// parseUUIDParam parses a path parameter as a UUID.
func parseUUIDParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, badRequest("invalid " + name)
	}
	return id, nil
}
