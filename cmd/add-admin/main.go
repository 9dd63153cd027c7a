package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go-inventory-reorder/internal/repository"
	"go-inventory-reorder/internal/service"
	"go-inventory-reorder/pkg/config"
	"go-inventory-reorder/pkg/database"
	"go-inventory-reorder/pkg/logger"

	"github.com/joho/godotenv"
)

// add-admin creates the admin account, or with -reset sets a new password on it.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	username := flag.String("username", cfg.Admin.Username, "admin username")
	password := flag.String("password", cfg.Admin.Password, "admin password (defaults to ADMIN_PASSWORD)")
	reset := flag.Bool("reset", false, "reset the password of an existing admin")
	flag.Parse()

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	if *password == "" {
		log.Fatal().Msg("password is required: pass -password or set ADMIN_PASSWORD")
	}

	db, err := database.ConnectDB(cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate schema")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	users := service.NewUserService(repository.NewUserRepo(db))

	if *reset {
		if err := users.ResetPassword(ctx, *username, *password); err != nil {
			log.Fatal().Err(err).Str("username", *username).Msg("failed to reset password")
		}
		log.Info().Str("username", *username).Msg("password reset")
		return
	}

	created, err := users.EnsureAdmin(ctx, *username, *password)
	if err != nil {
		log.Fatal().Err(err).Str("username", *username).Msg("failed to create admin")
	}
	if !created {
		log.Info().Str("username", *username).Msg("user already exists, use -reset to change the password")
		return
	}
	log.Info().Str("username", *username).Msg("admin user created")
}
