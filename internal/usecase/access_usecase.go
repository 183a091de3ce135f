package usecase

import (
	"context"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/audit"
	"go-jobboard-backend/pkg/logger"
)

// contactRoles is the role set allowed to initiate direct contact. Admins are
// covered by the override branch before this gate is reached.
var contactRoles = map[domain.Role]bool{
	domain.RoleEmployer: true,
	domain.RoleAdmin:    true,
}

type accessUsecase struct {
	settingsRepo domain.PrivacySettingsRepository
	auditRec     audit.Recorder
}

func NewAccessUsecase(settingsRepo domain.PrivacySettingsRepository, auditRec audit.Recorder) domain.AccessUsecase {
	return &accessUsecase{
		settingsRepo: settingsRepo,
		auditRec:     auditRec,
	}
}

func (u *accessUsecase) Decide(ctx context.Context, principal domain.Principal, targetSubjectID string, action domain.Action) (domain.AccessDecision, error) {
	settings, err := u.settingsRepo.GetBySubjectID(ctx, targetSubjectID)
	if err != nil {
		// Store unreachable is decided exactly like a missing row (fail
		// closed); it only differs for alerting.
		logger.Log.Error("privacy settings lookup failed",
			"target_id", targetSubjectID, "error", err)
		settings = nil
	}
	return u.DecideWith(ctx, principal, targetSubjectID, action, settings)
}

func (u *accessUsecase) DecideWith(ctx context.Context, principal domain.Principal, targetSubjectID string, action domain.Action, settings *domain.PrivacySettings) (domain.AccessDecision, error) {
	// Malformed input is a caller bug, not a DENY.
	if targetSubjectID == "" {
		return domain.AccessDecision{}, apperror.InvalidRequest("target subject id is required")
	}
	if !principal.Role.Valid() {
		return domain.AccessDecision{}, apperror.InvalidRequest("principal is required")
	}
	if !action.Valid() {
		return domain.AccessDecision{}, apperror.InvalidRequest("unknown action")
	}

	decision := evaluate(principal, targetSubjectID, action, settings)

	// Admin access is privileged but never silent.
	if decision.Reason == domain.ReasonAdminOverride {
		u.record(ctx, audit.Event{
			Event:    audit.EventAdminOverride,
			ViewerID: principal.ID,
			TargetID: targetSubjectID,
			Action:   string(action),
		})
	}

	// Contact abuse is a support concern: both outcomes are recorded.
	if action == domain.ActionContact {
		eventType := audit.EventContactDenied
		if decision.Allowed {
			eventType = audit.EventContactAllowed
		}
		u.record(ctx, audit.Event{
			Event:    eventType,
			ViewerID: principal.ID,
			TargetID: targetSubjectID,
			Action:   string(action),
			Reason:   string(decision.Reason),
		})
	}

	return decision, nil
}

// evaluate runs the rule chain. First match wins; the chain order is fixed
// and every branch is exhaustive over the closed Action set.
func evaluate(principal domain.Principal, targetSubjectID string, action domain.Action, settings *domain.PrivacySettings) domain.AccessDecision {
	// 1. Self-access is absolute, regardless of the subject's own settings.
	if principal.ID != "" && principal.ID == targetSubjectID {
		return domain.Allow(domain.ReasonOwnership)
	}

	// 2. Admin override.
	if principal.Role == domain.RoleAdmin {
		return domain.Allow(domain.ReasonAdminOverride)
	}

	// 3. No settings row: maximally restricted. The read stub (id + display
	// name) is produced by the field filter, not granted here.
	if settings == nil {
		return domain.Deny(domain.ReasonMissingSettings)
	}

	// 4. Role gate.
	if action == domain.ActionContact && !contactRoles[principal.Role] {
		return domain.Deny(domain.ReasonRoleRestriction)
	}

	// 5. Per-action privacy rule.
	switch action {
	case domain.ActionRead:
		if readAllowed(principal, settings) {
			return domain.Allow(domain.ReasonPrivacyLevel)
		}
		return domain.Deny(domain.ReasonPrivacyLevel)

	case domain.ActionWrite, domain.ActionDelete, domain.ActionExport:
		// Ownership is the only grant for these; admin was handled above.
		return domain.Deny(domain.ReasonOwnership)

	case domain.ActionContact:
		if !readAllowed(principal, settings) {
			return domain.Deny(domain.ReasonPrivacyLevel)
		}
		if !settings.AllowDirectContact {
			return domain.Deny(domain.ReasonContactPreference)
		}
		return domain.Allow(domain.ReasonContactPreference)
	}

	// 6. Default.
	return domain.Deny(domain.ReasonDefaultDeny)
}

// readAllowed is the shared read rule: PUBLIC for everyone, SEMI_PRIVATE for
// any authenticated principal, PRIVATE for no non-owner.
func readAllowed(principal domain.Principal, settings *domain.PrivacySettings) bool {
	switch settings.PrivacyLevel {
	case domain.PrivacyPublic:
		return true
	case domain.PrivacySemiPrivate:
		return !principal.IsAnonymous()
	}
	return false
}

func (u *accessUsecase) record(ctx context.Context, event audit.Event) {
	if u.auditRec == nil {
		return
	}
	if reqID, ok := ctx.Value(domain.KeyRequestID).(string); ok {
		event.RequestID = reqID
	}
	if err := u.auditRec.Record(ctx, event); err != nil {
		// A lost audit record is a monitoring gap, never a request failure.
		logger.Log.Warn("audit record failed", "event", string(event.Event), "error", err)
	}
}
