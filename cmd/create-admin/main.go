package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"

	"praktikasud-backend/config"
	"praktikasud-backend/models"
	"praktikasud-backend/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	key := flag.String("key", "", "admin key to hash (generated when empty)")
	adminID := flag.Int64("id", 0, "chat user ID to register in the CRM as an administrator")
	name := flag.String("name", "Администратор", "first name of the registered administrator")
	flag.Parse()

	cfg, warnings := config.Load()
	for _, w := range warnings {
		log.Printf("Warning: %s", w)
	}

	if *key == "" {
		*key = uuid.NewString()
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(*key), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash admin key: %v", err)
	}

	if *adminID != 0 {
		if err := registerAdmin(context.Background(), cfg, *adminID, *name); err != nil {
			log.Fatalf("Failed to register admin: %v", err)
		}
		if !cfg.IsAdmin(*adminID) {
			log.Printf("Warning: %d is not listed in ADMIN_IDS", *adminID)
		}
	}

	fmt.Printf("✅ Admin key created successfully!\n")
	fmt.Printf("   Key: %s\n", *key)
	fmt.Printf("   ADMIN_KEY_HASH=%s\n", hashed)
}

func registerAdmin(ctx context.Context, cfg *config.Config, id int64, name string) error {
	db, err := repository.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.InitSchema(ctx); err != nil {
		return err
	}

	repo := repository.NewActivityRepository(db)
	existing, err := repo.GetUser(ctx, id)
	if err == nil {
		log.Printf("User %d already exists (%s)", id, existing.DisplayName())
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	user := &models.User{UserID: id, FirstName: name}
	if err := repo.UpsertUser(ctx, user); err != nil {
		return err
	}
	log.Printf("User %d registered", id)
	return nil
}
