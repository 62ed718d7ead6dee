package domain

import "strings"

// Category is the caller category declared in the From header.
type Category string

const (
	CategoryGuest Category = "guest"
	CategoryStaff Category = "staff"
)

// ParseCategory accepts "guest" or "staff" in any case.
func ParseCategory(s string) (Category, bool) {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case CategoryGuest:
		return CategoryGuest, true
	case CategoryStaff:
		return CategoryStaff, true
	}
	return "", false
}

// Role is a closed set of principal roles. Guests always carry RoleGuest.
type Role string

const (
	RoleOwner Role = "Owner"
	RoleAdmin Role = "Admin"
	RoleStaff Role = "Staff"
	RoleGuest Role = "Guest"
)

// ParseRole maps a stored role string onto the closed set. Unknown titles
// return false; callers keep them out of every allow-list.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "owner":
		return RoleOwner, true
	case "admin":
		return RoleAdmin, true
	case "staff":
		return RoleStaff, true
	case "guest":
		return RoleGuest, true
	}
	return Role(s), false
}

// StaffRoles are the roles a staff account may hold.
var StaffRoles = []Role{RoleOwner, RoleAdmin, RoleStaff}

// Task is an operational domain assigned to a Staff principal.
type Task string

const (
	TaskBooking        Task = "booking"
	TaskLaundry        Task = "laundry"
	TaskDish           Task = "dish"
	TaskHall           Task = "hall"
	TaskServiceRequest Task = "serviceRequest"
	TaskGuest          Task = "guest"
	TaskInventory      Task = "inventory"
)

var knownTasks = map[Task]struct{}{
	TaskBooking:        {},
	TaskLaundry:        {},
	TaskDish:           {},
	TaskHall:           {},
	TaskServiceRequest: {},
	TaskGuest:          {},
	TaskInventory:      {},
}

// ParseTask is case-insensitive so that "ServiceRequest" and "servicerequest"
// both resolve to TaskServiceRequest.
func ParseTask(s string) (Task, bool) {
	needle := strings.TrimSpace(s)
	for t := range knownTasks {
		if strings.EqualFold(string(t), needle) {
			return t, true
		}
	}
	return "", false
}

// ParseTasks normalises a list of task labels, dropping duplicates. The first
// unknown label is returned with ok=false.
func ParseTasks(labels []string) (tasks []Task, unknown string, ok bool) {
	seen := make(map[Task]struct{}, len(labels))
	tasks = make([]Task, 0, len(labels))
	for _, l := range labels {
		t, known := ParseTask(l)
		if !known {
			return nil, l, false
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		tasks = append(tasks, t)
	}
	return tasks, "", true
}

// Principal is the authenticated caller attached to a request. It is built
// fresh from the persisted record on every request and never cached.
type Principal struct {
	ID       string   `json:"id"`
	Category Category `json:"category"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Role     Role     `json:"role"`
	Tasks    []Task   `json:"tasks,omitempty"`
	Blocked  bool     `json:"is_blocked"`
	Banned   bool     `json:"is_banned"`
	Deleted  bool     `json:"is_deleted"`
}

// HasTask reports whether t is in the principal's assigned task set.
func (p Principal) HasTask(t Task) bool {
	for _, have := range p.Tasks {
		if have == t {
			return true
		}
	}
	return false
}

// Restriction returns a human-readable reason when the account is blocked,
// banned or deleted, and "" otherwise.
func (p Principal) Restriction() string {
	switch {
	case p.Deleted:
		return "account has been deleted"
	case p.Banned:
		return "account has been banned"
	case p.Blocked:
		return "account is blocked"
	}
	return ""
}
