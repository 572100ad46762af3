package database

import (
	"context"
	"fmt"

	"github.com/sangkips/billmaster-api/internal/config"
	"github.com/sangkips/billmaster-api/internal/domain/entity"
	"github.com/sangkips/billmaster-api/internal/domain/enum"
	"github.com/sangkips/billmaster-api/internal/domain/repository"
	"github.com/sangkips/billmaster-api/pkg/utils"
	"go.uber.org/zap"
)

// SeedDefaultData loads the starter catalog into an empty store and creates
// the configured admin account if it does not exist yet. It works against
// any backend.
func SeedDefaultData(ctx context.Context, products repository.ProductRepository, users repository.UserRepository, admin config.AdminConfig, log *zap.Logger) error {
	existing, err := products.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to read catalog: %w", err)
	}
	if len(existing) == 0 {
		catalog := entity.DefaultCatalog()
		if err := products.ReplaceAll(ctx, catalog); err != nil {
			return fmt.Errorf("failed to seed catalog: %w", err)
		}
		log.Info("default catalog seeded", zap.Int("products", len(catalog)))
	}

	if admin.Email == "" || admin.Password == "" {
		log.Warn("ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	user, err := users.GetByEmail(ctx, admin.Email)
	if err != nil {
		return fmt.Errorf("failed to look up admin: %w", err)
	}
	if user != nil {
		log.Debug("admin user already exists", zap.String("email", admin.Email))
		return nil
	}

	hashed, err := utils.HashPassword(admin.Password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	name := admin.Name
	if name == "" {
		name = "Administrator"
	}
	if err := users.Create(ctx, &entity.User{
		Name:         name,
		Email:        admin.Email,
		PasswordHash: hashed,
		Role:         enum.UserRoleAdmin,
	}); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	log.Info("admin user created", zap.String("email", admin.Email))
	return nil
}
