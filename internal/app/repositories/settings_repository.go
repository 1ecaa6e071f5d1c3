package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/acemedformatics/acemed/internal/app/models"
	"github.com/acemedformatics/acemed/internal/db"
	"github.com/acemedformatics/acemed/internal/pkg/logger"
	"github.com/jackc/pgx/v5"
)

var settingsColumns = []string{
	"id", "site_name", "contact_email", "enable_mentorship",
	"enable_programs", "enable_research", "created_at", "updated_at",
}

// SettingsRepository reads and writes the single admin_settings row
type SettingsRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewSettingsRepository creates a new SettingsRepository
func NewSettingsRepository(conn db.DBTX) *SettingsRepository {
	return &SettingsRepository{
		db: conn,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Get returns the settings row, or the defaults when it was never saved
func (r *SettingsRepository) Get(ctx context.Context) (*models.Settings, error) {
	sql, args, err := r.sb.Select(settingsColumns...).
		From(TableSettings).
		Where(squirrel.Eq{"id": models.SettingsID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build settings query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying settings")
		return nil, fmt.Errorf("error querying settings: %w", err)
	}
	s, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[models.Settings])
	if errors.Is(err, pgx.ErrNoRows) {
		return models.DefaultSettings(), nil
	}
	if err != nil {
		logger.Error().Err(err).Msg("Error scanning settings")
		return nil, fmt.Errorf("error scanning settings: %w", err)
	}
	return s, nil
}

// Upsert inserts or replaces the settings row
func (r *SettingsRepository) Upsert(ctx context.Context, s *models.Settings) (*models.Settings, error) {
	now := time.Now().UTC()
	sql, args, err := r.sb.Insert(TableSettings).
		Columns("id", "site_name", "contact_email", "enable_mentorship", "enable_programs", "enable_research", "updated_at").
		Values(models.SettingsID, s.SiteName, s.ContactEmail, s.EnableMentorship, s.EnablePrograms, s.EnableResearch, now).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			site_name = EXCLUDED.site_name,
			contact_email = EXCLUDED.contact_email,
			enable_mentorship = EXCLUDED.enable_mentorship,
			enable_programs = EXCLUDED.enable_programs,
			enable_research = EXCLUDED.enable_research,
			updated_at = EXCLUDED.updated_at
		RETURNING id, site_name, contact_email, enable_mentorship, enable_programs, enable_research, created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build settings upsert: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error upserting settings")
		return nil, fmt.Errorf("error upserting settings: %w", err)
	}
	saved, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[models.Settings])
	if err != nil {
		logger.Error().Err(err).Msg("Error upserting settings")
		return nil, fmt.Errorf("error upserting settings: %w", err)
	}
	return saved, nil
}

// EnsureDefaults creates the settings row when it is missing
func (r *SettingsRepository) EnsureDefaults(ctx context.Context) error {
	d := models.DefaultSettings()
	_, err := r.db.Exec(ctx, `
		INSERT INTO admin_settings (id, site_name, contact_email, enable_mentorship, enable_programs, enable_research)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING`,
		models.SettingsID, d.SiteName, d.ContactEmail, d.EnableMentorship, d.EnablePrograms, d.EnableResearch)
	if err != nil {
		return fmt.Errorf("error seeding settings: %w", err)
	}
	return nil
}
