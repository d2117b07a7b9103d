package seed

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/mentorlink/backend/internal/app/models"
	appRepos "github.com/mentorlink/backend/internal/app/repositories"
	"github.com/mentorlink/backend/internal/config"
	pkgAuth "github.com/mentorlink/backend/internal/pkg/auth"
)

const defaultAdminEmail = "admin@mentorlink.app"

// CreateDefaultData ensures the default admin account exists.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	exists, err := userRepo.EmailExists(ctx, defaultAdminEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking for default admin account")
		return err
	}
	if exists {
		return nil
	}

	password := config.GetEnv("ADMIN_PASSWORD", "ChangeMe123!")
	hashed, err := pkgAuth.HashPassword(password)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing default admin password")
		return err
	}

	admin := &appModels.User{
		Email:      defaultAdminEmail,
		Password:   hashed,
		FirstName:  "MentorLink",
		LastName:   "Admin",
		RoleType:   appModels.RoleAdmin,
		IsActive:   true,
		IsVerified: true,
	}

	id, err := userRepo.Create(ctx, nil, admin)
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating default admin account")
		return err
	}

	lgr.Info().Int64("userId", id).Str("email", defaultAdminEmail).Msg("Default admin account created")
	return nil
}
