package domain

import (
	"context"
	"time"
)

// ContactRequest is the payload a recruiter submits to reach a candidate.
type ContactRequest struct {
	Subject string `json:"subject" binding:"required,max=200"`
	Message string `json:"message" binding:"required,max=2000"`
	JobID   *int64 `json:"job_id,omitempty"`
}

// ContactRecord is the persisted trace of a delivered contact request.
type ContactRecord struct {
	ID        int64     `json:"id"`
	ViewerID  string    `json:"viewer_id"`
	TargetID  string    `json:"target_id"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	JobID     *int64    `json:"job_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type ContactRepository interface {
	Create(ctx context.Context, rec *ContactRecord) error
	ListByTarget(ctx context.Context, targetID string) ([]ContactRecord, error)
}

// ContactUsecase gates and records direct contact requests.
type ContactUsecase interface {
	RequestContact(ctx context.Context, principal Principal, targetSubjectID string, req *ContactRequest) error
}
