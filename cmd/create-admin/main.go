package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/lumina-accesorios/lumina-backend/internal/users"
	"github.com/lumina-accesorios/lumina-backend/pkg/config"
	"github.com/lumina-accesorios/lumina-backend/pkg/db"
	"github.com/lumina-accesorios/lumina-backend/pkg/logger"
	"github.com/lumina-accesorios/lumina-backend/pkg/security"
)

// Creates an admin account. There is no public registration surface, so
// operators run this once per environment.
func main() {
	logg := logger.New(logger.Options{ServiceName: "create-admin"})

	_ = godotenv.Load()

	email := flag.String("email", "", "admin email")
	password := flag.String("password", "", "admin password")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "both -email and -password are required")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	hash, err := security.HashPassword(*password, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to hash password", err)
		os.Exit(1)
	}

	repo := users.NewRepository(dbClient.DB())
	user, err := repo.Create(context.Background(), users.CreateUserDTO{
		Email:        strings.ToLower(strings.TrimSpace(*email)),
		PasswordHash: hash,
		IsAdmin:      true,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create admin", err)
		os.Exit(1)
	}

	fmt.Println("created admin:", user.ID)
}
