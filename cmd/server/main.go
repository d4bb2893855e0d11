package main

import (
	"net/http"
	"os"

	_ "ecofinds/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"ecofinds/internal/auth"
	"ecofinds/internal/cache"
	"ecofinds/internal/config"
	"ecofinds/internal/db"
	"ecofinds/internal/handler"
	"ecofinds/internal/logger"
	"ecofinds/internal/model"
	"ecofinds/internal/repository"
	"ecofinds/internal/router"
	"ecofinds/internal/service"
)

// @title EcoFinds API
// @version 1.0
// @description Second-hand marketplace API: auth, products, listings, cart, purchases, profiles and image upload.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	log := logger.Get()
	defer log.Sync()

	cfg := config.Load()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal("database init", zap.Error(err))
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Info("RESET_DB=true detected, dropping all tables")
		tables := []interface{}{
			&model.Purchase{},
			&model.UserProduct{},
			&model.ProductListing{},
			&model.ProductImage{},
			&model.Product{},
			&model.Address{},
			&model.UserProfile{},
			&model.UserImage{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Warn("drop table failed (may not exist)", zap.Error(err))
			}
		}
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.UserImage{},
		&model.UserProfile{},
		&model.Address{},
		&model.Product{},
		&model.ProductImage{},
		&model.ProductListing{},
		&model.UserProduct{},
		&model.Purchase{},
	); err != nil {
		log.Fatal("auto-migrate", zap.Error(err))
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	profileRepo := repository.NewProfileRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)
	listingRepo := repository.NewListingRepository(gormDB)
	interactionRepo := repository.NewInteractionRepository(gormDB)
	purchaseRepo := repository.NewPurchaseRepository(gormDB)

	jwtService := auth.NewJWTService(cfg.JWTSecret)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService)
	catalogService := service.NewCatalogService(productRepo, interactionRepo, cacheClient)
	productService := service.NewProductService(productRepo, cacheClient)
	listingService := service.NewListingService(listingRepo, productRepo, cacheClient)
	cartService := service.NewCartService(interactionRepo, productRepo)
	interactionService := service.NewInteractionService(interactionRepo, productRepo)
	sellerService := service.NewSellerService(productRepo, listingRepo, interactionRepo)
	purchaseService := service.NewPurchaseService(purchaseRepo)
	profileService := service.NewProfileService(profileRepo)
	uploadService := service.NewUploadService(productRepo, userRepo, cacheClient, cfg.UploadDir, cfg.BaseURL)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(productService, catalogService)
	listingHandler := handler.NewListingHandler(listingService)
	cartHandler := handler.NewCartHandler(cartService)
	interactionHandler := handler.NewInteractionHandler(interactionService)
	userHandler := handler.NewUserHandler(sellerService)
	purchaseHandler := handler.NewPurchaseHandler(purchaseService)
	profileHandler := handler.NewProfileHandler(profileService)
	uploadHandler := handler.NewUploadHandler(uploadService)

	// Register routes
	router.Register(
		e,
		cfg,
		jwtService,
		authHandler,
		productHandler,
		listingHandler,
		cartHandler,
		interactionHandler,
		userHandler,
		purchaseHandler,
		profileHandler,
		uploadHandler,
	)

	log.Info("starting server",
		zap.String("port", cfg.ServerPort),
		zap.String("swagger", cfg.BaseURL+"/swagger/index.html"))

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatal("server start", zap.Error(err))
	}
}
