package domain

import (
	"context"
	"time"
)

// Application is a historical job application. After the candidate is
// anonymized the row survives with CandidateID replaced by an opaque token,
// so employer compliance records stay intact without re-identifying anyone.
type Application struct {
	ID          int64     `json:"id"`
	JobID       int64     `json:"job_id"`
	JobTitle    string    `json:"job_title"`
	CandidateID string    `json:"candidate_id"`
	Status      string    `json:"status"`
	AppliedAt   time.Time `json:"applied_at"`
}

type ApplicationRepository interface {
	ListByCandidate(ctx context.Context, candidateID string) ([]Application, error)
}
