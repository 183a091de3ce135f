package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type privacySettingsRepo struct {
	db *pgxpool.Pool
}

func NewPrivacySettingsRepository(db *pgxpool.Pool) domain.PrivacySettingsRepository {
	return &privacySettingsRepo{db: db}
}

func (r *privacySettingsRepo) GetBySubjectID(ctx context.Context, subjectID string) (*domain.PrivacySettings, error) {
	query := `
		SELECT subject_id, privacy_level, field_visibility,
		       searchable_by_recruiters, allow_direct_contact,
		       show_salary_expectations, data_retention_days,
		       created_at, updated_at
		FROM privacy_settings WHERE subject_id = $1`

	var s domain.PrivacySettings
	var level string
	var fieldVisibility []byte

	err := r.db.QueryRow(ctx, query, subjectID).Scan(
		&s.SubjectID, &level, &fieldVisibility,
		&s.SearchableByRecruiters, &s.AllowDirectContact,
		&s.ShowSalaryExpectations, &s.DataRetentionDays,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	s.PrivacyLevel = domain.PrivacyLevel(level)
	if len(fieldVisibility) > 0 {
		if err := json.Unmarshal(fieldVisibility, &s.FieldVisibility); err != nil {
			return nil, fmt.Errorf("failed to decode field visibility: %w", err)
		}
	}
	return &s, nil
}

func (r *privacySettingsRepo) Upsert(ctx context.Context, settings *domain.PrivacySettings) error {
	fieldVisibility, err := json.Marshal(settings.FieldVisibility)
	if err != nil {
		return fmt.Errorf("failed to encode field visibility: %w", err)
	}

	query := `
		INSERT INTO privacy_settings (
			subject_id, privacy_level, field_visibility,
			searchable_by_recruiters, allow_direct_contact,
			show_salary_expectations, data_retention_days,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		ON CONFLICT (subject_id) DO UPDATE SET
			privacy_level = EXCLUDED.privacy_level,
			field_visibility = EXCLUDED.field_visibility,
			searchable_by_recruiters = EXCLUDED.searchable_by_recruiters,
			allow_direct_contact = EXCLUDED.allow_direct_contact,
			show_salary_expectations = EXCLUDED.show_salary_expectations,
			data_retention_days = EXCLUDED.data_retention_days,
			updated_at = NOW()`

	_, err = r.db.Exec(ctx, query,
		settings.SubjectID, string(settings.PrivacyLevel), fieldVisibility,
		settings.SearchableByRecruiters, settings.AllowDirectContact,
		settings.ShowSalaryExpectations, settings.DataRetentionDays,
	)
	return err
}
