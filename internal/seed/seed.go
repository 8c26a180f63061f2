// Package seed creates the default admin account on first startup
package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/ecetin/edushare/internal/app/models"
	appRepos "github.com/ecetin/edushare/internal/app/repositories"
	"github.com/ecetin/edushare/internal/pkg/auth"
)

const (
	defaultAdminUsername = "admin"
	defaultAdminEmail    = "admin@edushare.local"
	defaultAdminPassword = "Admin123!"
)

// CreateDefaultAdmin creates the built-in admin account if no admin exists.
// Registration never produces an admin, so a fresh database would otherwise
// have nobody able to approve the first accounts.
func CreateDefaultAdmin(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	hasAdmin, err := userRepo.HasAdmin(ctx)
	if err != nil {
		return fmt.Errorf("failed to check for existing admin: %w", err)
	}
	if hasAdmin {
		lgr.Debug().Msg("Admin account already exists, skipping seed")
		return nil
	}

	lgr.Info().Msg("Creating default admin account...")

	hashedPassword, err := auth.HashPassword(defaultAdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &appModels.User{
		Username:   defaultAdminUsername,
		Email:      defaultAdminEmail,
		Password:   hashedPassword,
		RoleType:   appModels.RoleAdmin,
		IsApproved: true,
	}

	adminID, err := userRepo.Create(ctx, admin)
	if err != nil {
		return fmt.Errorf("failed to create default admin: %w", err)
	}

	lgr.Info().Int64("adminID", adminID).Str("email", defaultAdminEmail).Msg("Default admin account created")
	return nil
}
