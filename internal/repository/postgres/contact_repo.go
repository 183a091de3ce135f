package postgres

import (
	"context"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type contactRepo struct {
	db *pgxpool.Pool
}

func NewContactRepository(db *pgxpool.Pool) domain.ContactRepository {
	return &contactRepo{db: db}
}

func (r *contactRepo) Create(ctx context.Context, rec *domain.ContactRecord) error {
	query := `
		INSERT INTO contact_requests (viewer_id, target_id, subject, message, job_id, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at`

	return r.db.QueryRow(ctx, query,
		rec.ViewerID, rec.TargetID, rec.Subject, rec.Message, rec.JobID,
	).Scan(&rec.ID, &rec.CreatedAt)
}

func (r *contactRepo) ListByTarget(ctx context.Context, targetID string) ([]domain.ContactRecord, error) {
	query := `
		SELECT id, viewer_id, target_id, subject, message, job_id, created_at
		FROM contact_requests
		WHERE target_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, targetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []domain.ContactRecord{}
	for rows.Next() {
		var rec domain.ContactRecord
		if err := rows.Scan(&rec.ID, &rec.ViewerID, &rec.TargetID, &rec.Subject, &rec.Message, &rec.JobID, &rec.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
