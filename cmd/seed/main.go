package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"teabloom-be/internal/product"
	"teabloom-be/internal/recordstore"
	"teabloom-be/internal/user"
)

func main() {
	_ = godotenv.Load()

	file := flag.String("file", "", "JSON file with products to seed (defaults to the built-in catalog)")
	flag.Parse()

	storeURL := os.Getenv("RECORDSTORE_URL")
	if storeURL == "" {
		log.Fatal("RECORDSTORE_URL not set in environment")
	}

	ctx := context.Background()
	store := recordstore.NewClient(storeURL)

	if email := os.Getenv("RECORDSTORE_EMAIL"); email != "" {
		if _, err := store.AuthWithPassword(ctx, user.Collection, email, os.Getenv("RECORDSTORE_PASSWORD")); err != nil {
			log.Fatalf("failed to authenticate against record store: %v", err)
		}
	}

	products, err := loadProducts(*file)
	if err != nil {
		log.Fatal(err)
	}

	if err := run(ctx, product.NewRepository(store), products); err != nil {
		log.Fatal(err)
	}
}

func loadProducts(file string) ([]product.NewProduct, error) {
	if file == "" {
		return defaultCatalog, nil
	}

	content, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file, err)
	}

	var products []product.NewProduct
	if err := json.Unmarshal(content, &products); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", file, err)
	}
	return products, nil
}

// run inserts each product that is not already present, keyed by name,
// so re-running the seeder never duplicates the catalog.
func run(ctx context.Context, repo product.Repository, products []product.NewProduct) error {
	existing, err := repo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list existing products: %w", err)
	}

	known := make(map[string]bool, len(existing))
	for _, p := range existing {
		known[p.Name] = true
	}

	for _, p := range products {
		if known[p.Name] {
			fmt.Printf("⏭ Skipping existing product: %s\n", p.Name)
			continue
		}

		created, err := repo.Create(ctx, p)
		if err != nil {
			return fmt.Errorf("❌ Seeding failed (%s): %w", p.Name, err)
		}
		fmt.Printf("🚀 Seeded product: %s (%s)\n", created.Name, created.ID)
	}

	fmt.Println("✅ Catalog seeding complete.")
	return nil
}

var defaultCatalog = []product.NewProduct{
	{
		Name:             "Sencha",
		ShortDescription: "Bright everyday Japanese green tea",
		Price:            10.00,
		SalePrice:        8.00,
		Stock:            40,
		DisplayOrder:     5,
		Preparation:      &product.Preparation{Amount: "1 tsp / 200ml", Temperature: "75°C", Time: "1-2 min", Taste: "grassy, sweet"},
	},
	{
		Name:             "Earl Grey",
		ShortDescription: "Black tea scented with bergamot",
		Price:            24.00,
		Stock:            25,
		DisplayOrder:     4,
		Preparation:      &product.Preparation{Amount: "1 tsp / 200ml", Temperature: "95°C", Time: "3-4 min", Taste: "citrus, malty"},
	},
	{
		Name:             "Tieguanyin Oolong",
		ShortDescription: "Floral rolled oolong from Anxi",
		Price:            32.00,
		Stock:            15,
		DisplayOrder:     3,
		Preparation:      &product.Preparation{Amount: "5g / 150ml", Temperature: "90°C", Time: "45 sec", Taste: "orchid, creamy"},
	},
	{
		Name:             "Silver Needle",
		ShortDescription: "Delicate white tea, buds only",
		Price:            45.00,
		Stock:            8,
		DisplayOrder:     2,
		Preparation:      &product.Preparation{Amount: "2 tsp / 200ml", Temperature: "80°C", Time: "4-5 min", Taste: "honeydew, soft"},
	},
	{
		Name:             "Ripe Pu-erh",
		ShortDescription: "Earthy aged dark tea from Yunnan",
		Price:            28.00,
		Stock:            12,
		DisplayOrder:     1,
		Preparation:      &product.Preparation{Amount: "5g / 150ml", Temperature: "100°C", Time: "30 sec", Taste: "earthy, smooth"},
	},
}
