package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// AdminSeeder adds emails to the admin list
type AdminSeeder interface {
	EnsureAdmins(ctx context.Context, emails []string) (int, error)
}

// SettingsSeeder creates the settings row when it is missing
type SettingsSeeder interface {
	EnsureDefaults(ctx context.Context) error
}

// CreateDefaultData makes sure the settings row exists and every configured
// admin email is on the admin list. Failures are joined so one missing piece
// does not hide another.
func CreateDefaultData(ctx context.Context, admins AdminSeeder, settings SettingsSeeder, adminEmails []string, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (settings/admins)...")
	var finalErr error

	if err := settings.EnsureDefaults(ctx); err != nil {
		lgr.Error().Err(err).Msg("Error creating default settings")
		finalErr = errors.Join(finalErr, err)
	}

	if len(adminEmails) == 0 {
		lgr.Warn().Msg("No admin emails configured; nobody can sign in to the admin area until one is added")
		return finalErr
	}

	added, err := admins.EnsureAdmins(ctx, adminEmails)
	if err != nil {
		lgr.Error().Err(err).Msg("Error seeding admin emails")
		finalErr = errors.Join(finalErr, err)
	} else if added > 0 {
		lgr.Info().Int("added", added).Msg("Seeded admin emails")
	}

	return finalErr
}
