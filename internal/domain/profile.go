package domain

import (
	"context"
	"time"
)

// FullProfile is the complete candidate profile as stored, children included.
// Only the owner (or the GDPR export path) ever sees this whole.
type FullProfile struct {
	ID                   string           `json:"id"`
	DisplayName          string           `json:"display_name"`
	FullName             string           `json:"full_name"`
	Email                string           `json:"email"`
	PhoneNumber          string           `json:"phone_number"`
	Location             string           `json:"location"`
	Skills               []string         `json:"skills"`
	WorkExperiences      []WorkExperience `json:"work_experiences"`
	Educations           []Education      `json:"educations"`
	Portfolio            []PortfolioItem  `json:"portfolio"`
	ResumeURL            string           `json:"resume_url"`
	SalaryExpectationMin *int64           `json:"salary_expectation_min,omitempty"`
	SalaryExpectationMax *int64           `json:"salary_expectation_max,omitempty"`
	SalaryCurrency       string           `json:"salary_currency,omitempty"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`
}

type WorkExperience struct {
	ID          int64   `json:"id"`
	SubjectID   string  `json:"subject_id"`
	CompanyName string  `json:"company_name"`
	JobTitle    string  `json:"job_title"`
	StartDate   string  `json:"start_date"`
	EndDate     *string `json:"end_date,omitempty"`
	Description string  `json:"description"`
}

type Education struct {
	ID          int64   `json:"id"`
	SubjectID   string  `json:"subject_id"`
	Institution string  `json:"institution"`
	Degree      string  `json:"degree"`
	FieldOfStudy string `json:"field_of_study"`
	StartDate   string  `json:"start_date"`
	EndDate     *string `json:"end_date,omitempty"`
}

type PortfolioItem struct {
	ID        int64  `json:"id"`
	SubjectID string `json:"subject_id"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Summary   string `json:"summary"`
}

// ProfileView is the field-reduced view a particular viewer is entitled to
// see. Absent fields are omitted entirely rather than zeroed, so the response
// does not leak which fields exist but were hidden.
type ProfileView struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	// PublicProfile is set to false only on the minimal stub returned for
	// subjects without a settings row.
	PublicProfile        *bool            `json:"public_profile,omitempty"`
	FullName             *string          `json:"full_name,omitempty"`
	Email                *string          `json:"email,omitempty"`
	PhoneNumber          *string          `json:"phone_number,omitempty"`
	Location             *string          `json:"location,omitempty"`
	Skills               []string         `json:"skills,omitempty"`
	WorkExperiences      []WorkExperience `json:"work_experiences,omitempty"`
	Educations           []Education      `json:"educations,omitempty"`
	Portfolio            []PortfolioItem  `json:"portfolio,omitempty"`
	ResumeURL            *string          `json:"resume_url,omitempty"`
	SalaryExpectationMin *int64           `json:"salary_expectation_min,omitempty"`
	SalaryExpectationMax *int64           `json:"salary_expectation_max,omitempty"`
	SalaryCurrency       *string          `json:"salary_currency,omitempty"`
}

// SearchResult is one raw, already-ranked item produced by the search layer
// before privacy filtering.
type SearchResult struct {
	SubjectID   string   `json:"subject_id"`
	DisplayName string   `json:"display_name"`
	Location    string   `json:"location"`
	Skills      []string `json:"skills"`
}

// ProfileRepository is the persistence boundary for profiles and their child
// rows. Getters return (nil, nil) when the subject does not exist.
type ProfileRepository interface {
	GetBySubjectID(ctx context.Context, subjectID string) (*FullProfile, error)
	Update(ctx context.Context, profile *FullProfile) error
	// Search returns candidates ranked by the search layer; ranking quality is
	// not this subsystem's concern, order just has to be stable downstream.
	Search(ctx context.Context, query string, limit int) ([]SearchResult, error)
}

// ProfileUsecase exposes gated, field-filtered profile reads.
type ProfileUsecase interface {
	// GetOwnProfile returns the full, unfiltered profile of the principal.
	GetOwnProfile(ctx context.Context, principal Principal) (*FullProfile, error)
	// GetProfileView runs the decision engine for read and, when allowed,
	// applies the field visibility filter.
	GetProfileView(ctx context.Context, principal Principal, subjectID string) (*ProfileView, error)
	// FilterProfileFields reduces an already-authorized profile to the view
	// the principal may see. Callers must have obtained a read ALLOW first.
	FilterProfileFields(profile *FullProfile, principal Principal, settings *PrivacySettings) *ProfileView
}

// SearchUsecase applies the privacy-scoped result filter on top of the raw
// search layer.
type SearchUsecase interface {
	SearchCandidates(ctx context.Context, principal Principal, query string, limit int) ([]ProfileView, error)
	// FilterResults retains only searchable subjects, preserving input order.
	FilterResults(ctx context.Context, principal Principal, results []SearchResult) ([]SearchResult, error)
}
