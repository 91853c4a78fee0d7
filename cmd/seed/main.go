package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/adudhe01/runroom/internal/catalog"
	"github.com/adudhe01/runroom/internal/config"
	"github.com/adudhe01/runroom/internal/database"
	"github.com/adudhe01/runroom/internal/database/postgres"
)

// seed wipes the item catalog and re-inserts the default items. Existing
// users keep their inventory references because item IDs are stable SKUs.
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	connString := cfg.GetDBConnString()

	if err := database.Migrate(connString); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	pool, err := database.NewPool(connString,
		database.DefaultMaxConnections,
		database.DefaultMaxIdleTime,
		database.DefaultMaxLifetime)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer pool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	items := postgres.NewItemRepository(pool)

	fmt.Println("Clearing existing items...")
	if err := items.DeleteAll(ctx); err != nil {
		log.Fatalf("Failed to clear items: %v", err)
	}

	for i := range catalog.DefaultItems {
		item := catalog.DefaultItems[i]
		if err := items.UpsertBySKU(ctx, &item); err != nil {
			log.Fatalf("Failed to insert item %s: %v", item.SKU, err)
		}
		fmt.Printf("Inserted %s (%d points)\n", item.Name, item.Cost)
	}

	fmt.Printf("Seeded %d items successfully.\n", len(catalog.DefaultItems))
}
