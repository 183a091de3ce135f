package domain

import "context"

// DecisionReason explains why a decision came out the way it did. It is kept
// for audit logging and never shown verbatim to end users.
type DecisionReason string

const (
	ReasonOwnership         DecisionReason = "ownership"
	ReasonAdminOverride     DecisionReason = "admin_override"
	ReasonPrivacyLevel      DecisionReason = "privacy_level"
	ReasonRoleRestriction   DecisionReason = "role_restriction"
	ReasonContactPreference DecisionReason = "contact_preference"
	ReasonMissingSettings   DecisionReason = "missing_settings"
	ReasonDefaultDeny       DecisionReason = "default_deny"
)

// AccessDecision is the outcome of the decision engine for one
// (principal, target, action) triple.
type AccessDecision struct {
	Allowed bool           `json:"allowed"`
	Reason  DecisionReason `json:"reason"`
}

func Allow(reason DecisionReason) AccessDecision {
	return AccessDecision{Allowed: true, Reason: reason}
}

func Deny(reason DecisionReason) AccessDecision {
	return AccessDecision{Allowed: false, Reason: reason}
}

// AccessUsecase is the decision engine. Decide fetches the target's settings
// and evaluates the rule chain; it never errors on a well-formed input and
// fails closed on missing or unreachable settings. Malformed input (empty
// principal or target id) is a caller contract violation and returns an
// InvalidRequest error instead of a silent DENY.
type AccessUsecase interface {
	Decide(ctx context.Context, principal Principal, targetSubjectID string, action Action) (AccessDecision, error)

	// DecideWith evaluates the rule chain against an already-fetched settings
	// snapshot. Pure except for the audit side effects on the admin and
	// contact branches.
	DecideWith(ctx context.Context, principal Principal, targetSubjectID string, action Action, settings *PrivacySettings) (AccessDecision, error)
}
