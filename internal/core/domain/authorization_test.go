package domain

import "testing"

var everyRule = []Rule{
	{AllowedRoles: []Role{RoleOwner}},
	{AllowedRoles: []Role{RoleOwner, RoleAdmin}},
	{AllowedRoles: StaffRoles, RequiredTask: TaskLaundry},
	{AllowedRoles: []Role{RoleGuest}},
	{AllowedRoles: []Role{RoleGuest, RoleOwner, RoleAdmin, RoleStaff}, RequiredTask: TaskBooking},
	{},
}

func TestAuthorize_RestrictedPrincipalAlwaysDenied(t *testing.T) {
	roles := []Role{RoleOwner, RoleAdmin, RoleStaff, RoleGuest}
	flags := []func(*Principal){
		func(p *Principal) { p.Blocked = true },
		func(p *Principal) { p.Banned = true },
		func(p *Principal) { p.Deleted = true },
	}

	for _, role := range roles {
		for i, set := range flags {
			p := Principal{ID: "p1", Role: role, Tasks: []Task{TaskLaundry, TaskBooking}}
			set(&p)
			for j, rule := range everyRule {
				d := Authorize(p, rule)
				if d.Allowed {
					t.Fatalf("role %s flag %d rule %d: expected deny", role, i, j)
				}
				if d.Reason != ReasonAccountRestricted {
					t.Errorf("role %s flag %d rule %d: reason = %s, want %s", role, i, j, d.Reason, ReasonAccountRestricted)
				}
				if d.Message == "" {
					t.Errorf("role %s flag %d rule %d: empty message", role, i, j)
				}
			}
		}
	}
}

func TestAuthorize_TaskCheckOnlyAppliesToStaff(t *testing.T) {
	rule := Rule{AllowedRoles: StaffRoles, RequiredTask: TaskLaundry}

	cases := []struct {
		name   string
		p      Principal
		allow  bool
		reason DenyReason
	}{
		{"staff without task", Principal{Role: RoleStaff, Tasks: []Task{TaskBooking}}, false, ReasonTaskNotAssigned},
		{"staff with no tasks", Principal{Role: RoleStaff}, false, ReasonTaskNotAssigned},
		{"staff with task", Principal{Role: RoleStaff, Tasks: []Task{TaskBooking, TaskLaundry}}, true, ""},
		{"owner without task", Principal{Role: RoleOwner}, true, ""},
		{"admin without task", Principal{Role: RoleAdmin}, true, ""},
		{"guest not in allow list", Principal{Role: RoleGuest}, false, ReasonRoleNotAllowed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := Authorize(tc.p, rule)
			if d.Allowed != tc.allow {
				t.Fatalf("allowed = %v, want %v (%s)", d.Allowed, tc.allow, d.Message)
			}
			if d.Reason != tc.reason {
				t.Errorf("reason = %q, want %q", d.Reason, tc.reason)
			}
		})
	}
}

func TestAuthorize_RoleNotInAllowList(t *testing.T) {
	rule := Rule{AllowedRoles: []Role{RoleOwner, RoleAdmin}}

	d := Authorize(Principal{Role: RoleStaff, Tasks: []Task{TaskBooking}}, rule)
	if d.Allowed || d.Reason != ReasonRoleNotAllowed {
		t.Fatalf("expected RoleNotAllowed, got %+v", d)
	}
}

func TestAuthorize_UnknownTitleMatchesNothing(t *testing.T) {
	role, ok := ParseRole("Receptionist")
	if ok {
		t.Fatal("expected unknown title to be reported")
	}

	p := Principal{Role: role, Tasks: []Task{TaskBooking}}
	for i, rule := range everyRule {
		if d := Authorize(p, rule); d.Allowed {
			t.Errorf("rule %d: unknown title must not be allowed", i)
		}
	}
}

func TestDecision_Err(t *testing.T) {
	if err := Authorize(Principal{Role: RoleOwner}, Rule{AllowedRoles: []Role{RoleOwner}}).Err(); err != nil {
		t.Fatalf("allow must yield nil error, got %v", err)
	}

	err := Authorize(Principal{Role: RoleGuest}, Rule{AllowedRoles: []Role{RoleOwner}}).Err()
	ae, ok := err.(*AuthorizationError)
	if !ok {
		t.Fatalf("expected *AuthorizationError, got %T", err)
	}
	if ae.Reason != ReasonRoleNotAllowed {
		t.Errorf("unexpected reason %s", ae.Reason)
	}
}

func TestCanManage(t *testing.T) {
	cases := []struct {
		actor, target Role
		allow         bool
	}{
		{RoleOwner, RoleAdmin, true},
		{RoleOwner, RoleStaff, true},
		{RoleOwner, RoleOwner, false},
		{RoleAdmin, RoleStaff, true},
		{RoleAdmin, RoleAdmin, false},
		{RoleAdmin, RoleOwner, false},
		{RoleStaff, RoleStaff, false},
		{RoleGuest, RoleStaff, false},
	}

	for _, tc := range cases {
		d := CanManage(tc.actor, tc.target)
		if d.Allowed != tc.allow {
			t.Errorf("%s managing %s: allowed = %v, want %v", tc.actor, tc.target, d.Allowed, tc.allow)
		}
		if !d.Allowed && d.Reason != ReasonCannotManage {
			t.Errorf("%s managing %s: reason = %s", tc.actor, tc.target, d.Reason)
		}
	}
}

func TestCanReassign(t *testing.T) {
	if d := CanReassign(RoleAdmin, RoleStaff, RoleOwner); d.Allowed {
		t.Error("admin must not promote staff to owner")
	}
	if d := CanReassign(RoleAdmin, RoleStaff, RoleAdmin); d.Allowed {
		t.Error("admin must not promote staff to admin")
	}
	if d := CanReassign(RoleAdmin, RoleStaff, RoleStaff); !d.Allowed {
		t.Error("admin editing a staff target should succeed")
	}
	if d := CanReassign(RoleOwner, RoleAdmin, RoleStaff); !d.Allowed {
		t.Error("owner demoting an admin should succeed")
	}
	if d := CanReassign(RoleOwner, RoleStaff, RoleOwner); d.Allowed {
		t.Error("owner must not create another owner")
	}
}

func TestParseTasks(t *testing.T) {
	tasks, _, ok := ParseTasks([]string{"Laundry", "serviceRequest", "laundry", "SERVICEREQUEST"})
	if !ok {
		t.Fatal("expected known tasks to parse")
	}
	if len(tasks) != 2 || tasks[0] != TaskLaundry || tasks[1] != TaskServiceRequest {
		t.Fatalf("unexpected tasks %v", tasks)
	}

	_, unknown, ok := ParseTasks([]string{"booking", "spa"})
	if ok || unknown != "spa" {
		t.Fatalf("expected spa to be rejected, got ok=%v unknown=%q", ok, unknown)
	}
}
