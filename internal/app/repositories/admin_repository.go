package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/acemedformatics/acemed/internal/db"
	"github.com/acemedformatics/acemed/internal/pkg/logger"
)

// AdminRepository answers the admin gate's "is this email an admin" question
type AdminRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewAdminRepository creates a new AdminRepository
func NewAdminRepository(conn db.DBTX) *AdminRepository {
	return &AdminRepository{
		db: conn,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// IsAdmin reports whether email is listed in admins, ignoring case
func (r *AdminRepository) IsAdmin(ctx context.Context, email string) (bool, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return false, nil
	}

	sql, args, err := r.sb.Select("1").
		Prefix("SELECT EXISTS (").
		From(TableAdmins).
		Where(squirrel.Expr("lower(email) = lower(?)", email)).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build admin lookup: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		logger.Error().Err(err).Msg("Error looking up admin email")
		return false, fmt.Errorf("error looking up admin: %w", err)
	}
	return exists, nil
}

// EnsureAdmins inserts the emails that are not yet admins and returns how many were added
func (r *AdminRepository) EnsureAdmins(ctx context.Context, emails []string) (int, error) {
	added := 0
	for _, email := range emails {
		email = strings.ToLower(strings.TrimSpace(email))
		if email == "" {
			continue
		}

		tag, err := r.db.Exec(ctx, `
			INSERT INTO admins (email)
			SELECT $1::text
			WHERE NOT EXISTS (SELECT 1 FROM admins WHERE lower(email) = $1::text)`, email)
		if err != nil {
			return added, fmt.Errorf("error adding admin %s: %w", email, err)
		}
		added += int(tag.RowsAffected())
	}
	return added, nil
}
