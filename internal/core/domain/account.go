package domain

import "time"

// Guest is a hotel customer account.
type Guest struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	FullName     string    `json:"full_name" bson:"full_name"`
	Email        string    `json:"email" bson:"email"`
	Phone        string    `json:"phone,omitempty" bson:"phone,omitempty"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	IsBlocked    bool      `json:"is_blocked" bson:"is_blocked"`
	IsBanned     bool      `json:"is_banned" bson:"is_banned"`
	IsDeleted    bool      `json:"is_deleted" bson:"is_deleted"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// Principal projects the guest record onto a request principal.
func (g *Guest) Principal() Principal {
	return Principal{
		ID:       g.ID,
		Category: CategoryGuest,
		Name:     g.FullName,
		Email:    g.Email,
		Role:     RoleGuest,
		Blocked:  g.IsBlocked,
		Banned:   g.IsBanned,
		Deleted:  g.IsDeleted,
	}
}

// Staff is an employee account. Role is stored as a string so that legacy
// titles survive a round trip; Principal maps it onto the closed Role set.
type Staff struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	FullName     string    `json:"full_name" bson:"full_name"`
	Email        string    `json:"email" bson:"email"`
	Phone        string    `json:"phone,omitempty" bson:"phone,omitempty"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         Role      `json:"role" bson:"role"`
	Tasks        []Task    `json:"tasks" bson:"tasks"`
	IsBlocked    bool      `json:"is_blocked" bson:"is_blocked"`
	IsDeleted    bool      `json:"is_deleted" bson:"is_deleted"`
	CreatedBy    string    `json:"created_by,omitempty" bson:"created_by,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// Principal projects the staff record onto a request principal. Unknown role
// titles are kept verbatim and therefore match no allow-list.
func (s *Staff) Principal() Principal {
	role, _ := ParseRole(string(s.Role))
	tasks := make([]Task, len(s.Tasks))
	copy(tasks, s.Tasks)
	return Principal{
		ID:       s.ID,
		Category: CategoryStaff,
		Name:     s.FullName,
		Email:    s.Email,
		Role:     role,
		Tasks:    tasks,
		Blocked:  s.IsBlocked,
		Deleted:  s.IsDeleted,
	}
}
