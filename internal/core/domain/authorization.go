package domain

import "fmt"

// Rule is a declarative per-route access policy.
type Rule struct {
	AllowedRoles []Role
	// RequiredTask only applies to RoleStaff. Empty means no task is needed.
	RequiredTask Task
}

// DenyReason classifies an authorization denial.
type DenyReason string

const (
	ReasonAccountRestricted DenyReason = "AccountRestricted"
	ReasonRoleNotAllowed    DenyReason = "RoleNotAllowed"
	ReasonTaskNotAssigned   DenyReason = "TaskNotAssigned"
	ReasonCannotManage      DenyReason = "CannotManageTarget"
)

// Decision is the outcome of an authorization check. The zero value denies.
type Decision struct {
	Allowed bool
	Reason  DenyReason
	Message string
}

var allow = Decision{Allowed: true}

func deny(reason DenyReason, format string, args ...any) Decision {
	return Decision{Reason: reason, Message: fmt.Sprintf(format, args...)}
}

// Err converts a denial into an *AuthorizationError; an allow yields nil.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return &AuthorizationError{Reason: d.Reason, Message: d.Message}
}

// Authorize is a pure, total function of its inputs. Restricted accounts are
// denied before roles and tasks are looked at. Owner and Admin skip the task
// check.
func Authorize(p Principal, r Rule) Decision {
	if reason := p.Restriction(); reason != "" {
		return deny(ReasonAccountRestricted, "%s", reason)
	}

	if !roleIn(p.Role, r.AllowedRoles) {
		return deny(ReasonRoleNotAllowed, "role %q may not perform this action", p.Role)
	}

	if p.Role == RoleStaff && r.RequiredTask != "" && !p.HasTask(r.RequiredTask) {
		return deny(ReasonTaskNotAssigned, "task %q is not assigned to this account", r.RequiredTask)
	}

	return allow
}

// CanManage is the owner-management rule: Owner manages Admin and Staff,
// Admin manages Staff only, and nobody manages an Owner account.
func CanManage(actor, target Role) Decision {
	if target == RoleOwner {
		return deny(ReasonCannotManage, "owner accounts cannot be managed")
	}

	switch actor {
	case RoleOwner:
		if target == RoleAdmin || target == RoleStaff {
			return allow
		}
	case RoleAdmin:
		if target == RoleStaff {
			return allow
		}
	}
	return deny(ReasonCannotManage, "role %q cannot manage %q accounts", actor, target)
}

// CanReassign checks a role change: the actor must be able to manage the
// target's current role and the role being assigned.
func CanReassign(actor, current, next Role) Decision {
	if d := CanManage(actor, current); !d.Allowed {
		return d
	}
	return CanManage(actor, next)
}

func roleIn(role Role, roles []Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
