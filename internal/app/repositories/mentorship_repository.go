package repositories

import (
	"context"
	"fmt"

	"github.com/acemedformatics/acemed/internal/app/models"
	"github.com/acemedformatics/acemed/internal/db"
	"github.com/acemedformatics/acemed/internal/pkg/apperrors"
	"github.com/acemedformatics/acemed/internal/pkg/logger"
	"github.com/jackc/pgx/v5"
)

// MentorshipRepository moves applications through review
type MentorshipRepository struct {
	db           *db.PostgresDB
	applications *ResourceRepository[models.MentorshipApplication]
	mentees      *ResourceRepository[models.Mentee]
}

// NewMentorshipRepository creates a new MentorshipRepository
func NewMentorshipRepository(database *db.PostgresDB, applications *ResourceRepository[models.MentorshipApplication], mentees *ResourceRepository[models.Mentee]) *MentorshipRepository {
	return &MentorshipRepository{
		db:           database,
		applications: applications,
		mentees:      mentees,
	}
}

// Approve marks the application approved and creates its mentee in one transaction
func (r *MentorshipRepository) Approve(ctx context.Context, id int64, cohortYear int) (*models.MentorshipApplication, *models.Mentee, error) {
	var (
		app    *models.MentorshipApplication
		mentee *models.Mentee
	)

	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		if err = lockApplication(ctx, tx, id); err != nil {
			return err
		}

		apps := r.applications.WithTx(tx)
		current, err := apps.Get(ctx, id)
		if err != nil {
			return err
		}
		if current.Status != models.StatusPending {
			return apperrors.NewConflictError(fmt.Sprintf("application %d is already %s", id, current.Status))
		}

		app, err = apps.Patch(ctx, id, map[string]interface{}{
			"status":    string(models.StatusApproved),
			"is_active": false,
		})
		if err != nil {
			return err
		}

		mentee, err = r.mentees.WithTx(tx).Create(ctx, current.ToMentee(cohortYear))
		return err
	})
	if err != nil {
		logger.FromContext(ctx).Error().Err(err).Int64("applicationID", id).Msg("Mentorship approval rolled back")
		return nil, nil, err
	}
	return app, mentee, nil
}

// Reject marks a pending application rejected
func (r *MentorshipRepository) Reject(ctx context.Context, id int64) (*models.MentorshipApplication, error) {
	var app *models.MentorshipApplication

	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := lockApplication(ctx, tx, id); err != nil {
			return err
		}

		apps := r.applications.WithTx(tx)
		current, err := apps.Get(ctx, id)
		if err != nil {
			return err
		}
		if current.Status != models.StatusPending {
			return apperrors.NewConflictError(fmt.Sprintf("application %d is already %s", id, current.Status))
		}

		app, err = apps.Patch(ctx, id, map[string]interface{}{
			"status":    string(models.StatusRejected),
			"is_active": false,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return app, nil
}

// lockApplication serialises concurrent reviews of the same application
func lockApplication(ctx context.Context, tx pgx.Tx, id int64) error {
	if _, err := tx.Exec(ctx, `SELECT 1 FROM mentorship_applications WHERE id = $1 FOR UPDATE`, id); err != nil {
		return fmt.Errorf("error locking application %d: %w", id, err)
	}
	return nil
}
