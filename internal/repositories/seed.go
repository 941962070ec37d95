package repositories

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/Udaypole/Market-System/internal/models"
)

type seedProduct struct {
	category    int // index into the seeded categories
	name        string
	description string
	price       float64
	imageURL    string
	inventory   int
	sku         string
}

// Seed populates the repositories with the demo dataset: one admin and two
// regular users, five categories and twenty products. Intended for the
// in-memory store at startup; calling it twice duplicates everything.
func Seed(users UserRepository, categories CategoryRepository, products ProductRepository) error {
	seedUsers := []struct {
		email, password, firstName, lastName, role string
	}{
		{"admin@marketplace.com", "admin123", "Admin", "User", models.RoleAdmin},
		{"john@example.com", "user123", "John", "Doe", models.RoleUser},
		{"jane@example.com", "user123", "Jane", "Smith", models.RoleUser},
	}
	for _, u := range seedUsers {
		hashed, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash seed password: %w", err)
		}
		user := models.User{
			Email:     u.email,
			Password:  string(hashed),
			FirstName: u.firstName,
			LastName:  u.lastName,
			Role:      u.role,
		}
		if err := users.Create(&user); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.email, err)
		}
	}

	seedCategories := []models.Category{
		{Name: "Electronics", Description: "Electronic devices and gadgets", Slug: "electronics"},
		{Name: "Clothing", Description: "Fashion and apparel", Slug: "clothing"},
		{Name: "Books", Description: "Books and educational materials", Slug: "books"},
		{Name: "Home & Garden", Description: "Home improvement and gardening supplies", Slug: "home-garden"},
		{Name: "Sports", Description: "Sports equipment and accessories", Slug: "sports"},
	}
	categoryIDs := make([]string, len(seedCategories))
	for i := range seedCategories {
		if err := categories.Create(&seedCategories[i]); err != nil {
			return fmt.Errorf("failed to seed category %s: %w", seedCategories[i].Name, err)
		}
		categoryIDs[i] = seedCategories[i].ID
	}

	seedProducts := []seedProduct{
		{0, "Wireless Bluetooth Headphones", "High-quality wireless headphones with noise cancellation", 199.99, "/placeholder-4i3s1.png", 50, "WBH-001"},
		{0, "Smartphone Case", "Protective case for smartphones with drop protection", 29.99, "/placeholder-uzrzw.png", 100, "SPC-001"},
		{1, "Cotton T-Shirt", "Comfortable 100% cotton t-shirt in various colors", 24.99, "/plain-cotton-tee.png", 75, "CTS-001"},
		{1, "Denim Jeans", "Classic fit denim jeans with premium quality", 79.99, "/denim-jeans.png", 30, "DJ-001"},
		{2, "JavaScript Programming Guide", "Complete guide to modern JavaScript programming", 39.99, "/javascript-programming-book.png", 25, "JPG-001"},
		{2, "React Programming Book", "Learn React.js from basics to advanced concepts", 44.99, "/react-programming-book.png", 20, "RPB-001"},
		{0, "Wireless Mouse", "Ergonomic wireless mouse with precision tracking", 49.99, "/wireless-mouse.png", 60, "WM-001"},
		{0, "Mechanical Keyboard", "RGB mechanical keyboard with blue switches", 129.99, "/mechanical-keyboard.png", 25, "MK-001"},
		{4, "Running Shoes", "Lightweight running shoes for daily training", 89.99, "/running-shoes.png", 40, "RS-001"},
		{4, "Yoga Mat", "Non-slip yoga mat for home workouts", 34.99, "/yoga-mat.png", 80, "YM-001"},
		{3, "Garden Hose", "50ft expandable garden hose with spray nozzle", 39.99, "/garden-hose.png", 35, "GH-001"},
		{3, "Plant Pot Set", "Set of 3 ceramic plant pots with drainage", 24.99, "/plant-pot-set.png", 50, "PPS-001"},
		{1, "Winter Jacket", "Waterproof winter jacket with insulation", 149.99, "/winter-jacket.png", 20, "WJ-001"},
		{1, "Sneakers", "Casual sneakers for everyday wear", 69.99, "/sneakers.png", 45, "SN-001"},
		{0, "Tablet Stand", "Adjustable aluminum tablet stand", 19.99, "/tablet-stand.png", 70, "TS-001"},
		{2, "Cookbook Collection", "Set of 3 popular cookbooks", 59.99, "/cookbook-collection.png", 15, "CC-001"},
		{4, "Fitness Tracker", "Waterproof fitness tracker with heart rate monitor", 99.99, "/fitness-tracker.png", 30, "FT-001"},
		{3, "LED Desk Lamp", "Adjustable LED desk lamp with USB charging", 54.99, "/led-desk-lamp.png", 40, "LDL-001"},
		{0, "Bluetooth Speaker", "Portable Bluetooth speaker with 12-hour battery", 79.99, "/bluetooth-speaker.png", 55, "BS-001"},
		{1, "Baseball Cap", "Adjustable baseball cap in multiple colors", 19.99, "/baseball-cap.png", 90, "BC-001"},
	}
	for _, p := range seedProducts {
		product := models.Product{
			Name:        p.name,
			Description: p.description,
			Price:       p.price,
			CategoryID:  categoryIDs[p.category],
			ImageURL:    p.imageURL,
			Images:      []string{p.imageURL},
			Inventory:   p.inventory,
			SKU:         p.sku,
			Status:      models.StatusActive,
		}
		if err := products.Create(&product); err != nil {
			return fmt.Errorf("failed to seed product %s: %w", p.name, err)
		}
	}

	return nil
}
