package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/academia-hq/backend/auth"
	"github.com/academia-hq/backend/config"
	"github.com/academia-hq/backend/middleware"
	"github.com/academia-hq/backend/repositories"
	"github.com/academia-hq/backend/repositories/postgres"
)

// Dependencies holds all application dependencies. This is the central
// wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	DB     *postgres.DB
	Logger *zap.Logger

	// Repository Factory
	RepoFactory *postgres.RepositoryFactory

	// Repositories
	Catalogs  repositories.CatalogRepository
	Players   repositories.PlayerRepository
	News      repositories.NewsRepository
	Ownership repositories.OwnershipValidator

	// Auth
	AuthMiddleware *middleware.AuthMiddleware
}

// NewDependencies creates and wires up all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initDatabase(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	deps.initRepositories()
	deps.initAuth(cfg)

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// initDatabase initializes the PostgreSQL database connection and factory
func (d *Dependencies) initDatabase(ctx context.Context, cfg *config.Config) error {
	factory, err := postgres.NewRepositoryFactory(cfg, d.Logger)
	if err != nil {
		return fmt.Errorf("failed to create repository factory: %w", err)
	}

	d.RepoFactory = factory
	d.DB = factory.GetDB()

	if err := d.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	return nil
}

// initRepositories initializes all repository instances
func (d *Dependencies) initRepositories() {
	repos := d.RepoFactory.NewRepositories()

	d.Catalogs = repos.Catalogs
	d.Players = repos.Players
	d.News = repos.News
	d.Ownership = repos.Ownership

	d.Logger.Info("repositories initialized")
}

// initAuth initializes the token verifier and auth middleware
func (d *Dependencies) initAuth(cfg *config.Config) {
	verifier := auth.NewVerifier(auth.VerifierConfig{
		Secret:   cfg.Auth.JWTSecret,
		Issuer:   cfg.Auth.Issuer,
		Audience: cfg.Auth.Audience,
	})
	d.AuthMiddleware = middleware.NewAuthMiddleware(verifier, d.Logger)
}

// Close releases all held resources
func (d *Dependencies) Close() error {
	if d.RepoFactory != nil {
		return d.RepoFactory.Close()
	}
	return nil
}
