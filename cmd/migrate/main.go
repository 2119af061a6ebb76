package main

import (
	"context"
	"fmt"
	"os"

	"smartone-ap/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.ConnectionString())
	if err != nil {
		fmt.Printf("Failed to connect to DB: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	sqlFile, err := os.ReadFile("migrations/001_schema.sql")
	if err != nil {
		fmt.Printf("Failed to read sql file: %v\n", err)
		os.Exit(1)
	}

	if _, err := pool.Exec(ctx, string(sqlFile)); err != nil {
		fmt.Printf("Migration failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Migration successful.")
}
