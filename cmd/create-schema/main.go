package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"praktikasud-backend/config"
	"praktikasud-backend/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	printOnly := flag.Bool("print", false, "print the DDL instead of applying it")
	flag.Parse()

	cfg, warnings := config.Load()
	for _, w := range warnings {
		log.Printf("Warning: %s", w)
	}

	dialect, err := repository.ParseDialect(cfg.DBDriver)
	if err != nil {
		log.Fatalf("Failed to resolve database driver: %v", err)
	}
	statements := repository.Schema(dialect)

	if *printOnly {
		fmt.Println(strings.Join(statements, ";\n\n") + ";")
		return
	}

	ctx := context.Background()
	if dialect == repository.DialectPostgres {
		if err := applyPostgres(ctx, cfg.DatabaseURL, statements); err != nil {
			log.Fatalf("Failed to create schema: %v", err)
		}
	} else {
		db, err := repository.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer db.Close()
		if err := db.InitSchema(ctx); err != nil {
			log.Fatalf("Failed to create schema: %v", err)
		}
	}

	log.Printf("✓ Schema created (%s, %d statements)", dialect, len(statements))
}

// applyPostgres runs the DDL in one transaction
func applyPostgres(ctx context.Context, connString string, statements []string) error {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, stmt := range statements {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute %q: %w", firstLine(stmt), err)
		}
	}
	return tx.Commit(ctx)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
