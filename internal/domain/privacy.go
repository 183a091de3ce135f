package domain

import (
	"context"
	"time"
)

// PrivacyLevel governs baseline readability of a profile by non-owners.
type PrivacyLevel string

const (
	PrivacyPublic      PrivacyLevel = "PUBLIC"
	PrivacySemiPrivate PrivacyLevel = "SEMI_PRIVATE"
	PrivacyPrivate     PrivacyLevel = "PRIVATE"
)

func (l PrivacyLevel) Valid() bool {
	switch l {
	case PrivacyPublic, PrivacySemiPrivate, PrivacyPrivate:
		return true
	}
	return false
}

// ProfileField names an optional profile field that can be toggled on or off
// in a subject's visibility settings. Fields not in this set default to
// excluded when filtering.
type ProfileField string

const (
	FieldFullName       ProfileField = "fullName"
	FieldEmail          ProfileField = "email"
	FieldPhoneNumber    ProfileField = "phoneNumber"
	FieldLocation       ProfileField = "location"
	FieldWorkExperience ProfileField = "workExperience"
	FieldEducation      ProfileField = "education"
	FieldSkills         ProfileField = "skills"
	FieldPortfolio      ProfileField = "portfolio"
)

// KnownProfileFields is the closed set of toggleable fields.
var KnownProfileFields = []ProfileField{
	FieldFullName, FieldEmail, FieldPhoneNumber, FieldLocation,
	FieldWorkExperience, FieldEducation, FieldSkills, FieldPortfolio,
}

// PrivacySettings is the subject-owned record controlling who can see what.
// One row per candidate profile.
type PrivacySettings struct {
	SubjectID              string                `json:"subject_id"`
	PrivacyLevel           PrivacyLevel          `json:"privacy_level" validate:"required,oneof=PUBLIC SEMI_PRIVATE PRIVATE"`
	FieldVisibility        map[ProfileField]bool `json:"field_visibility"`
	SearchableByRecruiters bool                  `json:"searchable_by_recruiters"`
	AllowDirectContact     bool                  `json:"allow_direct_contact"`
	ShowSalaryExpectations bool                  `json:"show_salary_expectations"`
	// DataRetentionDays overrides the default retention window when set.
	DataRetentionDays *int      `json:"data_retention_days,omitempty" validate:"omitempty,gt=0"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// FieldVisible reports whether a field is included for non-owner viewers.
// Unknown fields are excluded.
func (s *PrivacySettings) FieldVisible(f ProfileField) bool {
	if s == nil || s.FieldVisibility == nil {
		return false
	}
	return s.FieldVisibility[f]
}

// DefaultRestrictedSettings is the single fail-closed fallback applied at the
// engine boundary when a subject has no settings row (or the store is
// unreachable): PRIVATE, nothing visible, not searchable, not contactable.
func DefaultRestrictedSettings(subjectID string) *PrivacySettings {
	return &PrivacySettings{
		SubjectID:       subjectID,
		PrivacyLevel:    PrivacyPrivate,
		FieldVisibility: map[ProfileField]bool{},
	}
}

// NewDefaultPrivacySettings returns the permissive defaults a settings row is
// created with alongside a new profile. Salary expectations stay hidden until
// explicitly enabled.
func NewDefaultPrivacySettings(subjectID string) *PrivacySettings {
	fv := make(map[ProfileField]bool, len(KnownProfileFields))
	for _, f := range KnownProfileFields {
		fv[f] = true
	}
	fv[FieldEmail] = false
	fv[FieldPhoneNumber] = false
	return &PrivacySettings{
		SubjectID:              subjectID,
		PrivacyLevel:           PrivacyPublic,
		FieldVisibility:        fv,
		SearchableByRecruiters: true,
		AllowDirectContact:     true,
		ShowSalaryExpectations: false,
	}
}

// PrivacySettingsRepository is the persistence boundary for settings rows.
// GetBySubjectID returns (nil, nil) when no row exists.
type PrivacySettingsRepository interface {
	GetBySubjectID(ctx context.Context, subjectID string) (*PrivacySettings, error)
	Upsert(ctx context.Context, settings *PrivacySettings) error
}

// PrivacyUsecase manages a subject's own settings. Admin updates on behalf of
// a subject are allowed but audited.
type PrivacyUsecase interface {
	GetSettings(ctx context.Context, principal Principal, subjectID string) (*PrivacySettings, error)
	UpdateSettings(ctx context.Context, principal Principal, settings *PrivacySettings) error
}
