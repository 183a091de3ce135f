package usecase

import (
	"context"
	"strings"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/email"
	"go-jobboard-backend/pkg/logger"
)

type contactUsecase struct {
	access       domain.AccessUsecase
	profileRepo  domain.ProfileRepository
	contactRepo  domain.ContactRepository
	emailService *email.EmailService
}

func NewContactUsecase(access domain.AccessUsecase, profileRepo domain.ProfileRepository, contactRepo domain.ContactRepository, emailService *email.EmailService) domain.ContactUsecase {
	return &contactUsecase{
		access:       access,
		profileRepo:  profileRepo,
		contactRepo:  contactRepo,
		emailService: emailService,
	}
}

// RequestContact gates and delivers a direct contact request. The message is
// relayed; the sender never sees the candidate's address.
func (u *contactUsecase) RequestContact(ctx context.Context, principal domain.Principal, targetSubjectID string, req *domain.ContactRequest) error {
	if principal.IsAnonymous() {
		return apperror.Unauthorized("User not authenticated")
	}
	if strings.TrimSpace(req.Subject) == "" || strings.TrimSpace(req.Message) == "" {
		return apperror.BadRequest("subject and message are required")
	}
	// Unverified recruiter accounts cannot reach candidates.
	if principal.Role == domain.RoleEmployer && !principal.IsVerified {
		return apperror.Forbidden("Only verified accounts can contact candidates")
	}

	decision, err := u.access.Decide(ctx, principal, targetSubjectID, domain.ActionContact)
	if err != nil {
		return err
	}
	if !decision.Allowed {
		return apperror.AccessDenied(string(decision.Reason))
	}

	profile, err := u.profileRepo.GetBySubjectID(ctx, targetSubjectID)
	if err != nil {
		return apperror.Internal(err)
	}
	if profile == nil {
		return apperror.NotFound("Candidate not found")
	}

	rec := &domain.ContactRecord{
		ViewerID:  principal.ID,
		TargetID:  targetSubjectID,
		Subject:   strings.TrimSpace(req.Subject),
		Message:   strings.TrimSpace(req.Message),
		JobID:     req.JobID,
		CreatedAt: time.Now().UTC(),
	}
	if err := u.contactRepo.Create(ctx, rec); err != nil {
		return apperror.Internal(err)
	}

	// The in-app record is the source of truth; the email relay is
	// best-effort on top of it.
	if u.emailService != nil && u.emailService.IsConfigured() && profile.Email != "" {
		data := email.ContactEmailData{
			RecipientEmail: profile.Email,
			RecruiterName:  principal.ID,
			Subject:        rec.Subject,
			Message:        rec.Message,
		}
		if err := u.emailService.SendContactEmail(data); err != nil {
			logger.Log.Warn("contact email relay failed",
				"target_id", targetSubjectID, "error", err)
		}
	}

	return nil
}
