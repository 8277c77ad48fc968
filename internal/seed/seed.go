package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/pastoral/providencia/internal/app/models"
	appRepos "github.com/pastoral/providencia/internal/app/repositories"
	"github.com/pastoral/providencia/internal/pkg/apperrors"
	"github.com/pastoral/providencia/internal/pkg/auth"
)

const (
	defaultAdminEmail    = "admin@providencia.app"
	defaultAdminPassword = "Mudar123!"
	defaultAdminPhone    = "41999990000"
)

// CreateDefaultData creates the default administrator account if none
// exists yet. The password must be changed on first login.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	personRepo := appRepos.NewPersonRepository(dbPool)

	exists, err := userRepo.ExistsByEmail(ctx, defaultAdminEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if default admin exists")
		return err
	}
	if exists {
		return nil
	}

	lgr.Info().Msg("Creating default administrator account...")

	hashed, err := auth.HashPassword(defaultAdminPassword)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing default admin password")
		return err
	}

	user := &appModels.User{
		Email:    defaultAdminEmail,
		Password: hashed,
		IsActive: true,
	}
	if err := userRepo.Create(ctx, user); err != nil {
		lgr.Error().Err(err).Msg("Error creating default admin user")
		return err
	}

	email := user.Email
	person, err := personRepo.FindByPhone(ctx, defaultAdminPhone)
	switch {
	case err == nil:
		person.Role = appModels.RoleAdministrator
		person.Email = &email
		person.UserID = &user.ID
		if err := personRepo.Update(ctx, person); err != nil {
			lgr.Error().Err(err).Msg("Error promoting existing person to administrator")
			return err
		}
		if err := personRepo.LinkUser(ctx, person.ID, user.ID); err != nil {
			return err
		}
	case errors.Is(err, apperrors.ErrPhoneNotRegistered):
		person = &appModels.Person{
			Name:   "Administrador",
			Phone:  defaultAdminPhone,
			Email:  &email,
			Role:   appModels.RoleAdministrator,
			UserID: &user.ID,
		}
		if err := personRepo.Create(ctx, person); err != nil {
			lgr.Error().Err(err).Msg("Error creating default admin person record")
			return err
		}
		if err := personRepo.LinkUser(ctx, person.ID, user.ID); err != nil {
			return err
		}
	default:
		return err
	}

	lgr.Info().
		Int64("userID", user.ID).
		Int64("personID", person.ID).
		Msg("Default administrator account created")
	return nil
}
