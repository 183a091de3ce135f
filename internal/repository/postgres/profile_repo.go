package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type profileRepo struct {
	db *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) domain.ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) GetBySubjectID(ctx context.Context, subjectID string) (*domain.FullProfile, error) {
	query := `
		SELECT
			subject_id, display_name, COALESCE(full_name, ''), COALESCE(email, ''),
			COALESCE(phone_number, ''), COALESCE(location, ''), skills,
			COALESCE(resume_url, ''), salary_expectation_min, salary_expectation_max,
			COALESCE(salary_currency, ''), created_at, updated_at
		FROM candidate_profiles WHERE subject_id = $1`

	var p domain.FullProfile
	var skills []string

	err := r.db.QueryRow(ctx, query, subjectID).Scan(
		&p.ID, &p.DisplayName, &p.FullName, &p.Email,
		&p.PhoneNumber, &p.Location, pq.Array(&skills),
		&p.ResumeURL, &p.SalaryExpectationMin, &p.SalaryExpectationMax,
		&p.SalaryCurrency, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	p.Skills = skills

	if p.WorkExperiences, err = r.workExperiences(ctx, subjectID); err != nil {
		return nil, err
	}
	if p.Educations, err = r.educations(ctx, subjectID); err != nil {
		return nil, err
	}
	if p.Portfolio, err = r.portfolio(ctx, subjectID); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepo) workExperiences(ctx context.Context, subjectID string) ([]domain.WorkExperience, error) {
	query := `
		SELECT id, subject_id, company_name, job_title, start_date, end_date, COALESCE(description, '')
		FROM work_experiences WHERE subject_id = $1 ORDER BY start_date DESC`

	rows, err := r.db.Query(ctx, query, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch work experiences: %w", err)
	}
	defer rows.Close()

	out := []domain.WorkExperience{}
	for rows.Next() {
		var w domain.WorkExperience
		var startDate *time.Time
		var endDate *time.Time
		if err := rows.Scan(&w.ID, &w.SubjectID, &w.CompanyName, &w.JobTitle, &startDate, &endDate, &w.Description); err != nil {
			return nil, err
		}
		if startDate != nil {
			w.StartDate = startDate.Format("2006-01-02")
		}
		if endDate != nil {
			ed := endDate.Format("2006-01-02")
			w.EndDate = &ed
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (r *profileRepo) educations(ctx context.Context, subjectID string) ([]domain.Education, error) {
	query := `
		SELECT id, subject_id, institution, degree, COALESCE(field_of_study, ''), start_date, end_date
		FROM educations WHERE subject_id = $1 ORDER BY start_date DESC`

	rows, err := r.db.Query(ctx, query, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch educations: %w", err)
	}
	defer rows.Close()

	out := []domain.Education{}
	for rows.Next() {
		var e domain.Education
		var startDate *time.Time
		var endDate *time.Time
		if err := rows.Scan(&e.ID, &e.SubjectID, &e.Institution, &e.Degree, &e.FieldOfStudy, &startDate, &endDate); err != nil {
			return nil, err
		}
		if startDate != nil {
			e.StartDate = startDate.Format("2006-01-02")
		}
		if endDate != nil {
			ed := endDate.Format("2006-01-02")
			e.EndDate = &ed
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *profileRepo) portfolio(ctx context.Context, subjectID string) ([]domain.PortfolioItem, error) {
	query := `
		SELECT id, subject_id, title, COALESCE(url, ''), COALESCE(summary, '')
		FROM portfolio_items WHERE subject_id = $1 ORDER BY id`

	rows, err := r.db.Query(ctx, query, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch portfolio items: %w", err)
	}
	defer rows.Close()

	out := []domain.PortfolioItem{}
	for rows.Next() {
		var item domain.PortfolioItem
		if err := rows.Scan(&item.ID, &item.SubjectID, &item.Title, &item.URL, &item.Summary); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *profileRepo) Update(ctx context.Context, profile *domain.FullProfile) error {
	query := `
		UPDATE candidate_profiles SET
			display_name = $1, full_name = $2, email = $3, phone_number = $4,
			location = $5, skills = $6, resume_url = $7,
			salary_expectation_min = $8, salary_expectation_max = $9,
			salary_currency = $10, updated_at = NOW()
		WHERE subject_id = $11`
	_, err := r.db.Exec(ctx, query,
		profile.DisplayName, profile.FullName, profile.Email, profile.PhoneNumber,
		profile.Location, pq.Array(profile.Skills), profile.ResumeURL,
		profile.SalaryExpectationMin, profile.SalaryExpectationMax,
		profile.SalaryCurrency, profile.ID,
	)
	return err
}

// Search is the raw candidate list producer. Ranking is a plain text match
// score; relevance quality is not this layer's concern.
func (r *profileRepo) Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	sql := `
		SELECT subject_id, display_name, COALESCE(location, ''), skills
		FROM candidate_profiles
		WHERE $1 = ''
		   OR display_name ILIKE '%' || $1 || '%'
		   OR location ILIKE '%' || $1 || '%'
		   OR EXISTS (SELECT 1 FROM unnest(skills) s WHERE s ILIKE '%' || $1 || '%')
		ORDER BY updated_at DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, sql, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.SearchResult
	for rows.Next() {
		var item domain.SearchResult
		var skills []string
		if err := rows.Scan(&item.SubjectID, &item.DisplayName, &item.Location, pq.Array(&skills)); err != nil {
			return nil, err
		}
		item.Skills = skills
		results = append(results, item)
	}
	return results, rows.Err()
}
