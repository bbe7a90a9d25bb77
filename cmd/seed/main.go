// Seeds a demo store account with sample catalog, branch, and settings data.
//
// Usage: go run ./cmd/seed -email demo@example.com -password secret123
package main

import (
	"flag"
	"log"

	"retail-pos-api/internal/model"
	"retail-pos-api/internal/repository"
	"retail-pos-api/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	email := flag.String("email", "demo@example.com", "store account email")
	password := flag.String("password", "demo12345", "store account password")
	name := flag.String("name", "Demo Store", "store account name")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	db := database.ConnectDB()
	db.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Customer{},
		&model.Branch{},
		&model.StoreSettings{},
		&model.Sale{},
		&model.SaleItem{},
	)

	userRepo := repository.NewUserRepo(db)
	productRepo := repository.NewProductRepo(db)
	branchRepo := repository.NewBranchRepo(db)
	settingsRepo := repository.NewSettingsRepo(db)

	user, err := userRepo.FindByEmail(*email)
	if err != nil {
		user = &model.User{Email: *email, Name: *name}
		if err := user.SetPassword(*password); err != nil {
			log.Fatal("Failed to hash password: ", err)
		}
		if err := userRepo.Create(user); err != nil {
			log.Fatal("Failed to create store account: ", err)
		}
		log.Printf("Store account created: %s", *email)
	} else {
		log.Printf("Store account already exists: %s", *email)
	}
	ownerID := user.ID.String()

	existing, err := productRepo.FindAll(ownerID)
	if err != nil {
		log.Fatal("Failed to check catalog: ", err)
	}
	if len(existing) > 0 {
		log.Printf("Catalog already seeded (%d products), nothing to do", len(existing))
		return
	}

	products := []model.Product{
		{OwnerID: ownerID, Name: "Espresso Beans 1kg", Category: "Groceries", Price: 450, Stock: 40},
		{OwnerID: ownerID, Name: "Ceramic Mug", Category: "Homeware", Price: 120, Stock: 25},
		{OwnerID: ownerID, Name: "French Press", Category: "Homeware", Price: 850, Stock: 8},
		{OwnerID: ownerID, Name: "Green Tea Box", Category: "Groceries", Price: 180, Stock: 60},
		{OwnerID: ownerID, Name: "Travel Tumbler", Category: "Accessories", Price: 350, Stock: 15},
	}
	for i := range products {
		if err := productRepo.Create(&products[i]); err != nil {
			log.Fatal("Failed to seed product: ", err)
		}
	}

	branches := []model.Branch{
		{OwnerID: ownerID, Name: "Main Street", Location: "12 Main Street", Size: "Large", Manager: "A. Kumar"},
		{OwnerID: ownerID, Name: "Riverside", Location: "3 Riverside Walk", Size: "Small"},
	}
	for i := range branches {
		if err := branchRepo.Create(&branches[i]); err != nil {
			log.Fatal("Failed to seed branch: ", err)
		}
	}

	settings := model.DefaultStoreSettings(ownerID)
	settings.AdminEmail = *email
	settings.Notifications.LowStockEmail = true
	if err := settingsRepo.Upsert(settings); err != nil {
		log.Fatal("Failed to seed settings: ", err)
	}

	log.Printf("Seeded %d products and %d branches for %s", len(products), len(branches), *email)
}
