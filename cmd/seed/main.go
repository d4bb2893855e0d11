package main

import (
	"log"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ecofinds/internal/config"
	"ecofinds/internal/db"
	"ecofinds/internal/model"
)

const demoPassword = "password123"

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

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
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	var existing int64
	if err := gormDB.Model(&model.User{}).Count(&existing).Error; err != nil {
		log.Fatalf("Failed to check existing data: %v", err)
	}
	if existing > 0 {
		log.Printf("Database already has %d users, skipping seed", existing)
		return
	}

	if err := gormDB.Transaction(seed); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}
	log.Println("Seed completed")
}

func seed(tx *gorm.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	alice := model.User{DisplayName: "Alice", Email: "alice@example.com", PasswordHash: string(hash)}
	bob := model.User{DisplayName: "Bob", Email: "bob@example.com", PasswordHash: string(hash)}
	carol := model.User{DisplayName: "Carol", Email: "carol@example.com", PasswordHash: string(hash)}
	for _, u := range []*model.User{&alice, &bob, &carol} {
		if err := tx.Create(u).Error; err != nil {
			return err
		}
	}
	log.Println("Created 3 demo users (password: " + demoPassword + ")")

	profile := model.UserProfile{
		UserID:      alice.ID,
		FullName:    "Alice Anderson",
		PhoneNumber: "+15550100",
	}
	if err := tx.Create(&profile).Error; err != nil {
		return err
	}
	if err := tx.Create(&model.Address{
		ProfileID: profile.ID,
		Street:    "12 Green Lane",
		City:      "Portland",
		State:     "OR",
		Country:   "USA",
		ZipCode:   "97201",
	}).Error; err != nil {
		return err
	}

	year := 2021
	brand := "Acme"
	products := []model.Product{
		{
			Title:            "Vintage Denim Jacket",
			Category:         model.CategoryClothing,
			Description:      "Classic 90s denim jacket, lightly worn.",
			Price:            decimal.NewFromFloat(39.99),
			Quantity:         3,
			Condition:        "GOOD",
			WorkingCondition: "N/A",
			SellerID:         alice.ID,
		},
		{
			Title:             "Mechanical Keyboard",
			Category:          model.CategoryElectronics,
			Description:       "Tenkeyless board with brown switches.",
			Price:             decimal.NewFromFloat(55),
			Quantity:          1,
			Condition:         "LIKE_NEW",
			WorkingCondition:  "Fully functional",
			YearOfManufacture: &year,
			Brand:             &brand,
			SellerID:          alice.ID,
		},
		{
			Title:            "Oak Bookshelf",
			Category:         model.CategoryFurniture,
			Description:      "Solid oak, five shelves, minor scratches.",
			Price:            decimal.NewFromFloat(120),
			Quantity:         1,
			Condition:        "FAIR",
			WorkingCondition: "Stable",
			SellerID:         bob.ID,
		},
		{
			Title:            "Go Programming Books Bundle",
			Category:         model.CategoryBooks,
			Description:      "Three well-kept programming books.",
			Price:            decimal.NewFromFloat(25.50),
			Quantity:         5,
			Condition:        "GOOD",
			WorkingCondition: "N/A",
			SellerID:         bob.ID,
		},
	}
	for i := range products {
		if err := tx.Create(&products[i]).Error; err != nil {
			return err
		}
	}
	log.Printf("Created %d demo products", len(products))

	for i := range products {
		if err := tx.Create(&model.ProductImage{
			ProductID: products[i].ID,
			URL:       "/uploads/products/demo-" + products[i].ID.String() + ".jpg",
			IsPrimary: true,
		}).Error; err != nil {
			return err
		}
	}

	// List everything except the bookshelf, which stays an unlisted draft.
	for i := range products[:2] {
		p := products[i]
		if err := tx.Create(&model.ProductListing{
			ProductID: p.ID,
			SellerID:  p.SellerID,
			Name:      p.Title,
			Price:     p.Price,
			Category:  p.Category,
			Status:    model.ListingStatusActive,
		}).Error; err != nil {
			return err
		}
	}
	books := products[3]
	if err := tx.Create(&model.ProductListing{
		ProductID: books.ID,
		SellerID:  books.SellerID,
		Name:      books.Title,
		Price:     books.Price,
		Category:  books.Category,
		Status:    model.ListingStatusActive,
	}).Error; err != nil {
		return err
	}

	interactions := []model.UserProduct{
		{UserID: carol.ID, ProductID: products[0].ID, Interaction: model.InteractionFavorite, Quantity: 1},
		{UserID: carol.ID, ProductID: products[0].ID, Interaction: model.InteractionViewed, Quantity: 1},
		{UserID: carol.ID, ProductID: products[1].ID, Interaction: model.InteractionViewed, Quantity: 1},
		{UserID: bob.ID, ProductID: products[0].ID, Interaction: model.InteractionViewed, Quantity: 1},
		{UserID: carol.ID, ProductID: products[3].ID, Interaction: model.InteractionCart, Quantity: 2},
	}
	for i := range interactions {
		if err := tx.Create(&interactions[i]).Error; err != nil {
			return err
		}
	}

	purchases := []model.Purchase{
		{
			UserID:          carol.ID,
			ProductID:       products[1].ID,
			Quantity:        1,
			PriceAtPurchase: products[1].Price,
			Status:          model.PurchaseStatusCompleted,
			PurchaseDate:    time.Now().AddDate(0, 0, -14),
		},
		{
			UserID:          carol.ID,
			ProductID:       products[3].ID,
			Quantity:        2,
			PriceAtPurchase: products[3].Price,
			Status:          model.PurchaseStatusPending,
			PurchaseDate:    time.Now().AddDate(0, 0, -2),
		},
	}
	for i := range purchases {
		if err := tx.Create(&purchases[i]).Error; err != nil {
			return err
		}
	}
	log.Printf("Created %d demo purchases", len(purchases))

	return nil
}
