package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/judn/backend/internal/domain/identity"
	"github.com/judn/backend/internal/infrastructure/config"
	"github.com/judn/backend/internal/infrastructure/logger"
	"github.com/judn/backend/internal/infrastructure/persistence"
)

// setup provisions the initial admin account. It is idempotent: if the
// email already has an account, nothing is changed.
func main() {
	var (
		name     string
		email    string
		password string
	)
	flag.StringVar(&name, "name", envOr("JUDN_SETUP_ADMIN_NAME", "Administrator"), "Admin display name")
	flag.StringVar(&email, "email", os.Getenv("JUDN_SETUP_ADMIN_EMAIL"), "Admin email")
	flag.StringVar(&password, "password", os.Getenv("JUDN_SETUP_ADMIN_PASSWORD"), "Admin password")
	flag.Parse()

	log, err := logger.New(config.LogConfig{Level: "info", Format: "console", Output: "stdout"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	if email == "" || password == "" {
		log.Fatal("Admin email and password are required",
			zap.String("hint", "set JUDN_SETUP_ADMIN_EMAIL and JUDN_SETUP_ADMIN_PASSWORD or pass -email/-password"))
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	userRepo := persistence.NewGormUserRepository(db.DB)

	exists, err := userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		log.Fatal("Failed to check for existing account", zap.Error(err))
	}
	if exists {
		log.Info("Account already exists, nothing to do", zap.String("email", email))
		return
	}

	admin, err := identity.NewUser(name, email, password, identity.RoleAdmin)
	if err != nil {
		log.Fatal("Failed to build admin account", zap.Error(err))
	}
	if err := userRepo.Save(ctx, admin); err != nil {
		log.Fatal("Failed to save admin account", zap.Error(err))
	}

	log.Info("Admin account created",
		zap.String("user_id", admin.ID.String()),
		zap.String("email", admin.Email),
	)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
