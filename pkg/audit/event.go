package audit

import (
	"context"
	"time"
)

// EventType classifies a privacy audit event
type EventType string

const (
	EventAdminOverride   EventType = "admin_override"
	EventContactAllowed  EventType = "contact_allowed"
	EventContactDenied   EventType = "contact_denied"
	EventSettingsChanged EventType = "settings_changed"
	EventGDPRExport      EventType = "gdpr_export"
	EventGDPRDelete      EventType = "gdpr_delete"
	EventAccessDenied    EventType = "access_denied"
	EventAnchorCreated   EventType = "anchor_created"
	EventChainBreak      EventType = "chain_break"
)

// Severity is derived from EventType, never caller-provided, so SOC triage
// cannot be gamed by the request path.
type Severity string

const (
	SeverityINFO Severity = "INFO"
	SeverityWARN Severity = "WARN"
	SeverityHIGH Severity = "HIGH"
)

var eventSeverityMap = map[EventType]Severity{
	EventAdminOverride:   SeverityHIGH,
	EventContactAllowed:  SeverityINFO,
	EventContactDenied:   SeverityINFO,
	EventSettingsChanged: SeverityINFO,
	EventGDPRExport:      SeverityWARN,
	EventGDPRDelete:      SeverityHIGH,
	EventAccessDenied:    SeverityINFO,
	EventAnchorCreated:   SeverityINFO,
	EventChainBreak:      SeverityHIGH,
}

// SeverityFor returns the hard-coded severity for an event type.
func SeverityFor(t EventType) Severity {
	if s, ok := eventSeverityMap[t]; ok {
		return s
	}
	return SeverityWARN
}

// Event is one privacy audit record. ViewerID/TargetID are the principal and
// subject of the decision that produced it.
type Event struct {
	ID        int64                  `json:"id,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Service   string                 `json:"service"`
	Event     EventType              `json:"event"`
	Severity  Severity               `json:"severity"`
	ViewerID  string                 `json:"viewer_id,omitempty"`
	TargetID  string                 `json:"target_id,omitempty"`
	Action    string                 `json:"action,omitempty"`
	Reason    string                 `json:"reason,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

// Recorder is what the usecases depend on. Record is best-effort from the
// caller's point of view: a failed write is the recorder's problem to log and
// retry, never grounds to fail the request that produced the event.
type Recorder interface {
	Record(ctx context.Context, event Event) error
}
