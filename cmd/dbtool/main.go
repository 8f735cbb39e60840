package main

import (
	"context"
	"flag"
	"log"
	"os"
	"sea-route-service/internal/adapters/cache"
	"sea-route-service/internal/config"
	"sea-route-service/internal/platform/db"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// dbtool prepares the persistent route cache.
//
//	dbtool            create the reference_route_cache schema
//	dbtool -purge 72h also delete rows older than 72h
func main() {
	purge := flag.Duration("purge", 0, "delete cached routes older than this age (0 keeps all)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}
	driver := config.Get("DB_DRIVER", "pgx")

	dialect, err := cache.DialectForDriver(driver)
	if err != nil {
		log.Fatal(err)
	}

	conn, err := db.Open(driver, databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	log.Println("Initializing route cache schema...")
	if err := cache.InitSchema(ctx, conn, dialect); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	if *purge > 0 {
		n, err := cache.PurgeExpired(ctx, conn, dialect, time.Now().Add(-*purge))
		if err != nil {
			log.Fatalf("purge failed: %v", err)
		}
		log.Printf("Purged %d cached routes older than %s.", n, *purge)
	}
}
