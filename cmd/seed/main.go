package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-task-tracker/config"
	"github.com/oksasatya/go-task-tracker/internal/domain/entity"
	"github.com/oksasatya/go-task-tracker/internal/domain/repository"
	pginfra "github.com/oksasatya/go-task-tracker/internal/infrastructure/postgres"
	"github.com/oksasatya/go-task-tracker/pkg/helpers"
)

// seed creates a demo user with a couple of tasks. Running it twice is safe.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		logger.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()
	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		logger.Fatalf("migration failed: %v", err)
	}

	users := pginfra.NewUserRepository(pool, cfg.DBQueryTimeout)
	tasks := pginfra.NewTaskRepository(pool, cfg.DBQueryTimeout)
	hasher := helpers.NewPasswordHasher(cfg.BcryptCost)

	email := "demo@example.com"
	password := "password123"

	u, err := users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		logger.Infof("seed user already exists: id=%s email=%s", u.ID, u.Email)
		return
	case !errors.Is(err, repository.ErrNotFound):
		logger.Fatalf("lookup seed user: %v", err)
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		logger.Fatalf("failed to hash password: %v", err)
	}
	u, err = entity.NewUser(email, "Demo User", hash)
	if err != nil {
		logger.Fatalf("build seed user: %v", err)
	}
	if err := users.Create(ctx, u); err != nil {
		logger.Fatalf("failed to seed user: %v", err)
	}

	for _, title := range []string{"Finish project", "Review pull requests"} {
		t, err := entity.NewTask(u.ID, title, "seeded demo task")
		if err != nil {
			logger.Fatalf("build seed task: %v", err)
		}
		if err := tasks.Create(ctx, t); err != nil {
			logger.Fatalf("failed to seed task: %v", err)
		}
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s (2 tasks)\n", u.ID, email, password)
}
