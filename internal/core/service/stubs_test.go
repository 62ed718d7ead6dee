package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/domain"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Collaborators
// ---------------------------------------------------------------------------

type stubNotifier struct {
	mu   sync.Mutex
	sent []ports.Notification
}

func (n *stubNotifier) Notify(x ports.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, x)
}

func (n *stubNotifier) events() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []string
	for _, x := range n.sent {
		if x.Event != nil {
			out = append(out, x.Event.Type)
		}
	}
	return out
}

// stubTx runs fn directly and records whether the caller asked for a
// transaction.
type stubTx struct {
	calls int
}

func (t *stubTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

type stubRefs struct {
	n int
}

func (r *stubRefs) Generate(prefix string) string {
	r.n++
	return fmt.Sprintf("%s-%04d", prefix, r.n)
}

type stubDedup struct {
	dupResult bool
	dupErr    error
	markErr   error
	marked    []string
}

func (d *stubDedup) IsDuplicate(_ context.Context, _ string) (bool, error) {
	return d.dupResult, d.dupErr
}

func (d *stubDedup) Mark(_ context.Context, key string) error {
	if d.markErr != nil {
		return d.markErr
	}
	d.marked = append(d.marked, key)
	return nil
}

// ---------------------------------------------------------------------------
// Accounts
// ---------------------------------------------------------------------------

type stubGuestRepo struct {
	byID map[string]*domain.Guest
	err  error
}

func newStubGuestRepo(guests ...*domain.Guest) *stubGuestRepo {
	r := &stubGuestRepo{byID: map[string]*domain.Guest{}}
	for _, g := range guests {
		r.byID[g.ID] = g
	}
	return r
}

func (r *stubGuestRepo) Create(_ context.Context, g *domain.Guest) error {
	if g.ID == "" {
		g.ID = fmt.Sprintf("guest-%d", len(r.byID)+1)
	}
	clone := *g
	r.byID[g.ID] = &clone
	return nil
}

func (r *stubGuestRepo) FindByID(_ context.Context, id string) (*domain.Guest, error) {
	if r.err != nil {
		return nil, r.err
	}
	g, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrGuestNotFound
	}
	clone := *g
	return &clone, nil
}

func (r *stubGuestRepo) FindByEmail(_ context.Context, email string) (*domain.Guest, error) {
	for _, g := range r.byID {
		if g.Email == email {
			clone := *g
			return &clone, nil
		}
	}
	return nil, domain.ErrGuestNotFound
}

func (r *stubGuestRepo) List(_ context.Context, _ ports.AccountFilter) ([]*domain.Guest, int64, error) {
	out := make([]*domain.Guest, 0, len(r.byID))
	for _, g := range r.byID {
		out = append(out, g)
	}
	return out, int64(len(out)), nil
}

func (r *stubGuestRepo) Update(_ context.Context, g *domain.Guest) error {
	if _, ok := r.byID[g.ID]; !ok {
		return domain.ErrGuestNotFound
	}
	clone := *g
	r.byID[g.ID] = &clone
	return nil
}

func (r *stubGuestRepo) UpdatePassword(_ context.Context, id, hash string) error {
	g, ok := r.byID[id]
	if !ok {
		return domain.ErrGuestNotFound
	}
	g.PasswordHash = hash
	return nil
}

type stubStaffRepo struct {
	byID map[string]*domain.Staff
}

func newStubStaffRepo(staff ...*domain.Staff) *stubStaffRepo {
	r := &stubStaffRepo{byID: map[string]*domain.Staff{}}
	for _, s := range staff {
		r.byID[s.ID] = s
	}
	return r
}

func (r *stubStaffRepo) Create(_ context.Context, s *domain.Staff) error {
	if s.ID == "" {
		s.ID = fmt.Sprintf("staff-%d", len(r.byID)+1)
	}
	clone := *s
	r.byID[s.ID] = &clone
	return nil
}

func (r *stubStaffRepo) FindByID(_ context.Context, id string) (*domain.Staff, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrStaffNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *stubStaffRepo) FindByEmail(_ context.Context, email string) (*domain.Staff, error) {
	for _, s := range r.byID {
		if s.Email == email {
			clone := *s
			return &clone, nil
		}
	}
	return nil, domain.ErrStaffNotFound
}

func (r *stubStaffRepo) List(_ context.Context, _ ports.AccountFilter) ([]*domain.Staff, int64, error) {
	out := make([]*domain.Staff, 0, len(r.byID))
	for _, s := range r.byID {
		out = append(out, s)
	}
	return out, int64(len(out)), nil
}

func (r *stubStaffRepo) Update(_ context.Context, s *domain.Staff) error {
	if _, ok := r.byID[s.ID]; !ok {
		return domain.ErrStaffNotFound
	}
	clone := *s
	r.byID[s.ID] = &clone
	return nil
}

func (r *stubStaffRepo) UpdatePassword(_ context.Context, id, hash string) error {
	s, ok := r.byID[id]
	if !ok {
		return domain.ErrStaffNotFound
	}
	s.PasswordHash = hash
	return nil
}

// stubTokens issues predictable tokens of the form "<kind>:<id>".
type stubTokens struct{}

func (stubTokens) IssueAccess(p domain.Principal) (string, time.Time, error) {
	return "access:" + p.ID, time.Now().Add(time.Hour), nil
}

func (stubTokens) IssueReset(p domain.Principal) (string, error) {
	return "reset:" + string(p.Category) + ":" + p.ID, nil
}

func (stubTokens) VerifyReset(token string, category domain.Category) (string, error) {
	prefix := "reset:" + string(category) + ":"
	if !strings.HasPrefix(token, prefix) {
		return "", domain.Rejectf(domain.KindInvalidCredential, "bad reset token")
	}
	return strings.TrimPrefix(token, prefix), nil
}

// ---------------------------------------------------------------------------
// Payables
// ---------------------------------------------------------------------------

type stubPayables struct {
	docs    map[string]*ports.Payable
	markErr error
	paid    []string
}

func newStubPayables(docs ...*ports.Payable) *stubPayables {
	s := &stubPayables{docs: map[string]*ports.Payable{}}
	for _, d := range docs {
		s.docs[d.ID] = d
	}
	return s
}

func (s *stubPayables) FindPayable(_ context.Context, id string) (*ports.Payable, error) {
	d, ok := s.docs[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	clone := *d
	return &clone, nil
}

func (s *stubPayables) MarkPaid(_ context.Context, id string) error {
	if s.markErr != nil {
		return s.markErr
	}
	d, ok := s.docs[id]
	if !ok {
		return domain.ErrBookingNotFound
	}
	d.PaymentStatus = domain.Paid
	s.paid = append(s.paid, id)
	return nil
}
