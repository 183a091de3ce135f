package domain

import (
	"context"
	"time"
)

// DefaultRetentionDays is the retention window applied when a subject has not
// set a dataRetentionDays override: 3 years from last activity.
const DefaultRetentionDays = 3 * 365

// ExportBundle is the full data dump the owner receives. Nothing in it is
// field-filtered; export bypasses the visibility filter by design.
type ExportBundle struct {
	Profile         *FullProfile     `json:"profile"`
	PrivacySettings *PrivacySettings `json:"privacy_settings"`
	Applications    []Application    `json:"applications"`
	ContactRequests []ContactRecord  `json:"contact_requests"`
	ExportedAt      time.Time        `json:"exported_at"`
}

// AnonymizeConfirmation reports the outcome of a delete-and-anonymize run.
// The anonymized token itself is not returned; the mapping is one-way and
// dies with the subject.
type AnonymizeConfirmation struct {
	SubjectID            string    `json:"subject_id"`
	Status               string    `json:"status"` // always "anonymized"
	ApplicationsRetained int64     `json:"applications_retained"`
	CompletedAt          time.Time `json:"completed_at"`
}

// GDPRRepository performs the destructive half of the lifecycle in a single
// transaction.
type GDPRRepository interface {
	// AnonymizeSubject hard-deletes the profile, its child rows, CV documents
	// and privacy settings, and rewrites application references to token.
	// Returns the number of application rows retained under the token.
	AnonymizeSubject(ctx context.Context, subjectID, token string) (int64, error)
	// ListExpiredSubjects returns subjects whose retention window (per-subject
	// override or defaultDays) has elapsed since last activity. Consumed by
	// the external retention sweep job.
	ListExpiredSubjects(ctx context.Context, now time.Time, defaultDays int) ([]string, error)
}

// GDPRUsecase is the lifecycle manager: export and anonymized deletion, both
// gated by the decision engine.
type GDPRUsecase interface {
	ExportSubjectData(ctx context.Context, principal Principal, targetSubjectID string) (*ExportBundle, error)
	DeleteAndAnonymize(ctx context.Context, principal Principal, targetSubjectID string) (*AnonymizeConfirmation, error)
	ListExpiredSubjects(ctx context.Context, now time.Time) ([]string, error)
}
