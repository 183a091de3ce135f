package domain

import (
	"context"
	"time"
)

type User struct {
	ID         string    `json:"id"` // Auth provider UUID
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	IsDisabled bool      `json:"is_disabled"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*User, error)
}

// VerificationStatus carries the three checks that together make an account
// "verified". All three are required.
type VerificationStatus struct {
	EmailVerified   bool `json:"email_verified"`
	ProfileComplete bool `json:"profile_complete"`
	IDVerified      bool `json:"id_verified"`
}

func (v VerificationStatus) FullyVerified() bool {
	return v.EmailVerified && v.ProfileComplete && v.IDVerified
}

type VerificationRepository interface {
	GetStatus(ctx context.Context, userID string) (VerificationStatus, error)
}
