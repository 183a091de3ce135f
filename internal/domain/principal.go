package domain

import "fmt"

// Role is the closed set of actor roles. Keeping this a dedicated type (instead
// of loose strings) forces every decision branch to be updated when a new role
// is added.
type Role string

const (
	RoleCandidate Role = "candidate"
	RoleEmployer  Role = "employer"
	RoleAdmin     Role = "admin"
	RoleAnonymous Role = "anonymous"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCandidate, RoleEmployer, RoleAdmin, RoleAnonymous:
		return true
	}
	return false
}

// ParseRole maps a stored role string to a Role, rejecting unknown values.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role: %q", s)
	}
	return r, nil
}

// Action is the closed set of data-access operations the decision engine
// gates.
type Action string

const (
	ActionRead    Action = "read"
	ActionWrite   Action = "write"
	ActionDelete  Action = "delete"
	ActionExport  Action = "export"
	ActionContact Action = "contact"
)

func (a Action) Valid() bool {
	switch a {
	case ActionRead, ActionWrite, ActionDelete, ActionExport, ActionContact:
		return true
	}
	return false
}

// Principal is the authenticated actor making a request. It is built fresh per
// request by the auth middleware and never persisted.
type Principal struct {
	ID         string `json:"id"`
	Role       Role   `json:"role"`
	IsVerified bool   `json:"is_verified"`
}

// AnonymousPrincipal is used for unauthenticated requests on public routes.
func AnonymousPrincipal() Principal {
	return Principal{Role: RoleAnonymous}
}

func (p Principal) IsAnonymous() bool {
	return p.ID == "" || p.Role == RoleAnonymous
}
