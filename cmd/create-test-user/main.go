package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"

	"neighborhelp-backend/auth"
	"neighborhelp-backend/config"
	"neighborhelp-backend/repository"
	"neighborhelp-backend/service"
)

func main() {
	email := flag.String("email", "test@example.com", "account email")
	password := flag.String("password", "testpassword123", "account password")
	name := flag.String("name", "Test User", "display name")
	flag.Parse()

	cfg := config.Load()

	ctx := context.Background()

	pool, err := repository.NewPostgresPool(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	authService := service.NewAuthService(
		service.WithAccountRepository(repository.NewAccountRepository(pool)),
		service.WithPasswordHasher(auth.NewHasher(cfg.BcryptCost)),
	)

	result, err := authService.Register(ctx, service.RegisterRequest{
		Name:     *name,
		Email:    *email,
		Address:  "1 Test Street",
		Contact:  "555-0100",
		Password: *password,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			log.Printf("Account with email %s already exists", *email)
			return
		}
		log.Fatalf("Failed to create test account: %v", err)
	}

	fmt.Println("✓ Test account created successfully!")
	fmt.Printf("  ID: %s\n", result.Account.ID)
	fmt.Printf("  Email: %s\n", result.Account.Email)
	fmt.Printf("  Password: %s\n", *password)
}
