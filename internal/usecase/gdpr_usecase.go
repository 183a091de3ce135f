package usecase

import (
	"context"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/audit"
	"go-jobboard-backend/pkg/logger"

	"github.com/google/uuid"
)

type gdprUsecase struct {
	access       domain.AccessUsecase
	profileRepo  domain.ProfileRepository
	settingsRepo domain.PrivacySettingsRepository
	appRepo      domain.ApplicationRepository
	contactRepo  domain.ContactRepository
	gdprRepo     domain.GDPRRepository
	auditRec     audit.Recorder
}

func NewGDPRUsecase(
	access domain.AccessUsecase,
	profileRepo domain.ProfileRepository,
	settingsRepo domain.PrivacySettingsRepository,
	appRepo domain.ApplicationRepository,
	contactRepo domain.ContactRepository,
	gdprRepo domain.GDPRRepository,
	auditRec audit.Recorder,
) domain.GDPRUsecase {
	return &gdprUsecase{
		access:       access,
		profileRepo:  profileRepo,
		settingsRepo: settingsRepo,
		appRepo:      appRepo,
		contactRepo:  contactRepo,
		gdprRepo:     gdprRepo,
		auditRec:     auditRec,
	}
}

// ExportSubjectData assembles the owner's full data bundle. Export bypasses
// the field filter on purpose: the owner gets everything, verbatim.
func (u *gdprUsecase) ExportSubjectData(ctx context.Context, principal domain.Principal, targetSubjectID string) (*domain.ExportBundle, error) {
	decision, err := u.access.Decide(ctx, principal, targetSubjectID, domain.ActionExport)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, apperror.AccessDenied(string(decision.Reason))
	}

	profile, err := u.profileRepo.GetBySubjectID(ctx, targetSubjectID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if profile == nil {
		// Anonymized or never existed; either way there is nothing to export.
		return nil, apperror.NotFound("Subject not found")
	}

	settings, err := u.settingsRepo.GetBySubjectID(ctx, targetSubjectID)
	if err != nil {
		return nil, apperror.Unavailable("Privacy settings unavailable", err)
	}

	apps, err := u.appRepo.ListByCandidate(ctx, targetSubjectID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	contacts, err := u.contactRepo.ListByTarget(ctx, targetSubjectID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	u.record(ctx, audit.Event{
		Event:    audit.EventGDPRExport,
		ViewerID: principal.ID,
		TargetID: targetSubjectID,
		Action:   string(domain.ActionExport),
		Reason:   string(decision.Reason),
	})

	return &domain.ExportBundle{
		Profile:         profile,
		PrivacySettings: settings,
		Applications:    apps,
		ContactRequests: contacts,
		ExportedAt:      time.Now().UTC(),
	}, nil
}

// DeleteAndAnonymize is the ACTIVE -> ANONYMIZED transition. Terminal: the
// anonymized token is generated fresh and the mapping is never stored.
func (u *gdprUsecase) DeleteAndAnonymize(ctx context.Context, principal domain.Principal, targetSubjectID string) (*domain.AnonymizeConfirmation, error) {
	decision, err := u.access.Decide(ctx, principal, targetSubjectID, domain.ActionDelete)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, apperror.AccessDenied(string(decision.Reason))
	}

	profile, err := u.profileRepo.GetBySubjectID(ctx, targetSubjectID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if profile == nil {
		return nil, apperror.NotFound("Subject not found")
	}

	token := "anon-" + uuid.NewString()
	retained, err := u.gdprRepo.AnonymizeSubject(ctx, targetSubjectID, token)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	u.record(ctx, audit.Event{
		Event:    audit.EventGDPRDelete,
		ViewerID: principal.ID,
		TargetID: targetSubjectID,
		Action:   string(domain.ActionDelete),
		Reason:   string(decision.Reason),
		Details:  map[string]interface{}{"applications_retained": retained},
	})

	return &domain.AnonymizeConfirmation{
		SubjectID:            targetSubjectID,
		Status:               "anonymized",
		ApplicationsRetained: retained,
		CompletedAt:          time.Now().UTC(),
	}, nil
}

// ListExpiredSubjects feeds the external retention sweep job.
func (u *gdprUsecase) ListExpiredSubjects(ctx context.Context, now time.Time) ([]string, error) {
	return u.gdprRepo.ListExpiredSubjects(ctx, now, domain.DefaultRetentionDays)
}

func (u *gdprUsecase) record(ctx context.Context, event audit.Event) {
	if u.auditRec == nil {
		return
	}
	if reqID, ok := ctx.Value(domain.KeyRequestID).(string); ok {
		event.RequestID = reqID
	}
	if err := u.auditRec.Record(ctx, event); err != nil {
		logger.Log.Warn("audit record failed", "event", string(event.Event), "error", err)
	}
}
