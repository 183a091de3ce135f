package postgres

import (
	"context"
	"errors"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type verificationRepo struct {
	db *pgxpool.Pool
}

func NewVerificationRepository(db *pgxpool.Pool) domain.VerificationRepository {
	return &verificationRepo{db: db}
}

// GetStatus returns the verification flags for a user. A missing row means the
// account has completed none of the checks.
func (r *verificationRepo) GetStatus(ctx context.Context, userID string) (domain.VerificationStatus, error) {
	query := `
		SELECT email_verified, profile_complete, id_verified
		FROM account_verifications
		WHERE user_id = $1`

	var status domain.VerificationStatus
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&status.EmailVerified, &status.ProfileComplete, &status.IDVerified,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.VerificationStatus{}, nil
	}
	if err != nil {
		return domain.VerificationStatus{}, err
	}
	return status, nil
}
