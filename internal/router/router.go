package router

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"ecofinds/internal/auth"
	"ecofinds/internal/config"
	"ecofinds/internal/handler"
	"ecofinds/internal/metrics"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	authHandler *handler.AuthHandler,
	productHandler *handler.ProductHandler,
	listingHandler *handler.ListingHandler,
	cartHandler *handler.CartHandler,
	interactionHandler *handler.InteractionHandler,
	userHandler *handler.UserHandler,
	purchaseHandler *handler.PurchaseHandler,
	profileHandler *handler.ProfileHandler,
	uploadHandler *handler.UploadHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(metrics.Middleware)

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", metrics.Handler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Uploaded images are served straight off disk.
	e.Static("/uploads", cfg.UploadDir)

	api := e.Group("/api")

	jwtConfig := echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}

	// Public routes
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/login", authHandler.Login)

	// Catalog reads are public; product detail additionally personalizes for
	// authenticated callers, so it parses the token when one is present.
	api.GET("/products", productHandler.List)
	api.GET("/products/by-category", productHandler.Grouped)
	api.GET("/products/category/:category", productHandler.ByCategory)
	api.GET("/products/:id", productHandler.GetDetail, optionalAuth(jwtService))
	api.GET("/product-lists", listingHandler.Search)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(jwtConfig))

	secured.POST("/products", productHandler.Create)
	secured.PUT("/products/:id", productHandler.Update)
	secured.DELETE("/products/:id", productHandler.Delete)

	secured.POST("/product-lists", listingHandler.Create)
	secured.PATCH("/product-lists/:id/status", listingHandler.UpdateStatus)
	secured.DELETE("/product-lists/:id", listingHandler.Delete)

	secured.POST("/cart/add", cartHandler.Add)
	secured.GET("/cart", cartHandler.Get)
	secured.PATCH("/cart/update/:itemId", cartHandler.Update)
	secured.DELETE("/cart/remove/:itemId", cartHandler.Remove)
	secured.DELETE("/cart/clear", cartHandler.Clear)

	secured.POST("/user-products", interactionHandler.Upsert)
	secured.GET("/user-products/:interaction", interactionHandler.ListByKind)
	secured.DELETE("/user-products/:productId/:interaction", interactionHandler.Remove)

	secured.GET("/users/listings", userHandler.Listings)
	secured.GET("/users/listings/stats", userHandler.Stats)
	secured.GET("/users/listings/:id", userHandler.ListingDetail)
	secured.GET("/users/profile", profileHandler.Get)
	secured.POST("/users/profile", profileHandler.Upsert)
	secured.DELETE("/users/profile", profileHandler.Delete)

	secured.GET("/purchases/history", purchaseHandler.History)
	secured.GET("/purchases/:id", purchaseHandler.Detail)

	secured.POST("/upload/upload", uploadHandler.Single)
	secured.POST("/upload/upload-multiple", uploadHandler.Multiple)
	secured.POST("/upload/profile-image", uploadHandler.ProfileImage)
}

// optionalAuth parses a bearer token when one is present but lets anonymous
// requests through untouched.
func optionalAuth(jwtService *auth.JWTService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if after, found := strings.CutPrefix(header, "Bearer "); found {
				if claims, err := jwtService.ValidateToken(after); err == nil {
					c.Set("user", &jwt.Token{Claims: claims, Valid: true})
				}
			}
			return next(c)
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
