package postgres

import (
	"context"
	"fmt"
	"time"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type gdprRepo struct {
	db *pgxpool.Pool
}

func NewGDPRRepository(db *pgxpool.Pool) domain.GDPRRepository {
	return &gdprRepo{db: db}
}

// AnonymizeSubject runs the whole deletion in one transaction: child rows and
// the profile are hard-deleted, application rows are rewritten to the token.
// There is no reverse mapping; once committed the subject is gone.
func (r *gdprRepo) AnonymizeSubject(ctx context.Context, subjectID, token string) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	for _, table := range []string{"portfolio_items", "educations", "work_experiences", "contact_requests"} {
		query := fmt.Sprintf("DELETE FROM %s WHERE subject_id = $1", table)
		if table == "contact_requests" {
			query = "DELETE FROM contact_requests WHERE target_id = $1"
		}
		if _, err := tx.Exec(ctx, query, subjectID); err != nil {
			return 0, fmt.Errorf("failed to delete from %s: %w", table, err)
		}
	}

	cmdTag, err := tx.Exec(ctx, `
		UPDATE applications
		SET candidate_id = $2, anonymized = TRUE
		WHERE candidate_id = $1`, subjectID, token)
	if err != nil {
		return 0, fmt.Errorf("failed to anonymize applications: %w", err)
	}
	retained := cmdTag.RowsAffected()

	if _, err := tx.Exec(ctx, `DELETE FROM privacy_settings WHERE subject_id = $1`, subjectID); err != nil {
		return 0, fmt.Errorf("failed to delete privacy settings: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM candidate_profiles WHERE subject_id = $1`, subjectID); err != nil {
		return 0, fmt.Errorf("failed to delete profile: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return retained, nil
}

// ListExpiredSubjects finds subjects whose retention window has elapsed since
// last profile activity. Per-subject overrides win over the default.
func (r *gdprRepo) ListExpiredSubjects(ctx context.Context, now time.Time, defaultDays int) ([]string, error) {
	query := `
		SELECT p.subject_id
		FROM candidate_profiles p
		LEFT JOIN privacy_settings s ON s.subject_id = p.subject_id
		WHERE p.updated_at < $1 - make_interval(days => COALESCE(s.data_retention_days, $2))
		ORDER BY p.updated_at ASC`

	rows, err := r.db.Query(ctx, query, now, defaultDays)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
