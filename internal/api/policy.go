package api

import "github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/domain"

// Access rules, one per route family. Owner and Admin pass every staff rule
// without a task; Staff must hold the named task.
var (
	anyPrincipal = domain.Rule{AllowedRoles: []domain.Role{
		domain.RoleOwner, domain.RoleAdmin, domain.RoleStaff, domain.RoleGuest,
	}}
	guestOnly = domain.Rule{AllowedRoles: []domain.Role{domain.RoleGuest}}
	managers  = domain.Rule{AllowedRoles: []domain.Role{domain.RoleOwner, domain.RoleAdmin}}
)

func staffWith(task domain.Task) domain.Rule {
	return domain.Rule{
		AllowedRoles: []domain.Role{domain.RoleOwner, domain.RoleAdmin, domain.RoleStaff},
		RequiredTask: task,
	}
}

// guestOrStaffWith admits guests as well; the service narrows what a guest
// may do.
func guestOrStaffWith(task domain.Task) domain.Rule {
	r := staffWith(task)
	r.AllowedRoles = append(r.AllowedRoles, domain.RoleGuest)
	return r
}
