package usecase

import (
	"context"
	"strings"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/audit"
	"go-jobboard-backend/pkg/logger"
	"go-jobboard-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type privacyUsecase struct {
	settingsRepo domain.PrivacySettingsRepository
	auditRec     audit.Recorder
	validate     *validator.Validate
}

func NewPrivacyUsecase(settingsRepo domain.PrivacySettingsRepository, auditRec audit.Recorder, validate *validator.Validate) domain.PrivacyUsecase {
	return &privacyUsecase{
		settingsRepo: settingsRepo,
		auditRec:     auditRec,
		validate:     validate,
	}
}

func (u *privacyUsecase) GetSettings(ctx context.Context, principal domain.Principal, subjectID string) (*domain.PrivacySettings, error) {
	if principal.IsAnonymous() {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	if principal.ID != subjectID && principal.Role != domain.RoleAdmin {
		return nil, apperror.Forbidden("You can only view your own privacy settings")
	}

	settings, err := u.settingsRepo.GetBySubjectID(ctx, subjectID)
	if err != nil {
		return nil, apperror.Unavailable("Privacy settings unavailable", err)
	}
	if settings == nil {
		return nil, apperror.NotFound("Privacy settings not found")
	}
	return settings, nil
}

// UpdateSettings writes a subject's settings. Only the owning subject may
// change them; an admin may too, but the change is audited.
func (u *privacyUsecase) UpdateSettings(ctx context.Context, principal domain.Principal, settings *domain.PrivacySettings) error {
	if principal.IsAnonymous() {
		return apperror.Unauthorized("User not authenticated")
	}

	isAdmin := principal.Role == domain.RoleAdmin
	if !isAdmin {
		// Force the subject to the caller so nobody edits someone else's
		// settings through the payload.
		settings.SubjectID = principal.ID
	}
	if settings.SubjectID == "" {
		return apperror.InvalidRequest("subject id is required")
	}

	// Drop unknown field names before persisting; schema evolution on this
	// map must stay fail-closed.
	if settings.FieldVisibility != nil {
		known := make(map[domain.ProfileField]bool, len(settings.FieldVisibility))
		for _, f := range domain.KnownProfileFields {
			if v, ok := settings.FieldVisibility[f]; ok {
				known[f] = v
			}
		}
		settings.FieldVisibility = known
	}

	if err := u.validate.Struct(settings); err != nil {
		return apperror.BadRequest(strings.Join(validation.FormatValidationErrors(err), "; "))
	}

	if err := u.settingsRepo.Upsert(ctx, settings); err != nil {
		return apperror.Unavailable("Failed to save privacy settings", err)
	}

	if isAdmin && principal.ID != settings.SubjectID {
		event := audit.Event{
			Event:    audit.EventSettingsChanged,
			ViewerID: principal.ID,
			TargetID: settings.SubjectID,
			Action:   string(domain.ActionWrite),
			Details:  map[string]interface{}{"changed_by": "admin"},
		}
		if reqID, ok := ctx.Value(domain.KeyRequestID).(string); ok {
			event.RequestID = reqID
		}
		if err := u.auditRec.Record(ctx, event); err != nil {
			logger.Log.Warn("audit record failed", "event", string(event.Event), "error", err)
		}
	}

	return nil
}
