package main

import (
	"context"
	"flag"
	"log"

	"bookcatalog/internal/book"
	"bookcatalog/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	reset := flag.Bool("reset", false, "Truncate the books table before seeding")
	flag.Parse()

	config.LoadEnvFiles()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to connect to database (%s): %v", config.RedactDSN(cfg.Database.DSN), err)
	}
	defer pool.Close()

	if *reset {
		if _, err := pool.Exec(ctx, "TRUNCATE books"); err != nil {
			log.Fatalf("Failed to truncate books: %v", err)
		}
		log.Println("books table truncated")
	}

	repo := book.NewPostgresRepo(pool, cfg.Database.QueryTimeout)
	existing, err := repo.ListAll(ctx)
	if err != nil {
		log.Fatalf("Failed to count books: %v", err)
	}
	if len(existing) > 0 {
		log.Printf("books table already holds %d books, skipping (use -reset to reseed)", len(existing))
		return
	}

	seeds := book.SeedBooks()
	for _, b := range seeds {
		created, err := repo.Create(ctx, b)
		if err != nil {
			log.Fatalf("Failed to insert %q: %v", b.Title, err)
		}
		if created.ID != b.ID {
			log.Printf("warning: %q stored with id %d, expected %d", b.Title, created.ID, b.ID)
		}
	}

	log.Printf("Successfully inserted %d books!", len(seeds))
}
