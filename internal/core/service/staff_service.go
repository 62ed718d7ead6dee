package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/domain"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/ports"
)

// StaffService administers staff accounts. Every mutation is checked
// against the owner-management rule using the actor's role and the target's.
type StaffService struct {
	repo     ports.StaffRepository
	notifier ports.Notifier
	log      zerolog.Logger
}

func NewStaffService(repo ports.StaffRepository, notifier ports.Notifier, log zerolog.Logger) *StaffService {
	return &StaffService{repo: repo, notifier: notifier, log: log}
}

func (s *StaffService) Create(ctx context.Context, actor domain.Principal, in ports.CreateStaffInput) (*domain.Staff, error) {
	role, err := parseStaffRole(in.Role)
	if err != nil {
		return nil, err
	}
	if err := domain.CanManage(actor.Role, role).Err(); err != nil {
		return nil, err
	}

	tasks, err := parseTasks(in.Tasks)
	if err != nil {
		return nil, err
	}

	email := normalizeEmail(in.Email)
	if email == "" || strings.TrimSpace(in.FullName) == "" {
		return nil, fmt.Errorf("%w: full name and email are required", domain.ErrInvalidInput)
	}
	if len(in.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLength)
	}
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrStaffNotFound) {
		return nil, fmt.Errorf("create staff: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	st := &domain.Staff{
		FullName:     strings.TrimSpace(in.FullName),
		Email:        email,
		Phone:        strings.TrimSpace(in.Phone),
		PasswordHash: string(hash),
		Role:         role,
		Tasks:        tasks,
		CreatedBy:    actor.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, st); err != nil {
		return nil, err
	}

	s.notifier.Notify(ports.Notification{
		Key: st.Email,
		Email: &ports.Email{
			To:       st.Email,
			Name:     st.FullName,
			Subject:  "Your staff account",
			Template: TemplateStaffInvitation,
			Data:     map[string]any{"Name": st.FullName, "Role": st.Role, "Tasks": st.Tasks},
		},
	})
	s.log.Info().Str("staff_id", st.ID).Str("role", string(role)).Str("actor", actor.ID).Msg("staff created")
	return st, nil
}

func (s *StaffService) Get(ctx context.Context, id string) (*domain.Staff, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *StaffService) List(ctx context.Context, f ports.AccountFilter) (*ports.ListResult[*domain.Staff], error) {
	f.Page = f.Page.Normalize()
	items, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	return ports.NewListResult(items, total, f.Page), nil
}

func (s *StaffService) Update(ctx context.Context, actor domain.Principal, id string, in ports.UpdateStaffInput) (*domain.Staff, error) {
	st, err := s.manageable(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if in.Role != nil {
		next, err := parseStaffRole(*in.Role)
		if err != nil {
			return nil, err
		}
		if err := domain.CanReassign(actor.Role, st.Principal().Role, next).Err(); err != nil {
			return nil, err
		}
		st.Role = next
	}
	if in.Tasks != nil {
		tasks, err := parseTasks(*in.Tasks)
		if err != nil {
			return nil, err
		}
		st.Tasks = tasks
	}
	if in.FullName != nil && strings.TrimSpace(*in.FullName) != "" {
		st.FullName = strings.TrimSpace(*in.FullName)
	}
	if in.Phone != nil {
		st.Phone = strings.TrimSpace(*in.Phone)
	}

	st.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, st); err != nil {
		return nil, err
	}
	s.log.Info().Str("staff_id", st.ID).Str("actor", actor.ID).Msg("staff updated")
	return st, nil
}

func (s *StaffService) SetBlocked(ctx context.Context, actor domain.Principal, id string, blocked bool) (*domain.Staff, error) {
	st, err := s.manageable(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	st.IsBlocked = blocked
	st.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, st); err != nil {
		return nil, err
	}
	s.log.Info().Str("staff_id", st.ID).Bool("blocked", blocked).Str("actor", actor.ID).Msg("staff block state changed")
	return st, nil
}

// Delete soft-deletes the account; the record stays for audit.
func (s *StaffService) Delete(ctx context.Context, actor domain.Principal, id string) error {
	st, err := s.manageable(ctx, actor, id)
	if err != nil {
		return err
	}

	st.IsDeleted = true
	st.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, st); err != nil {
		return err
	}
	s.log.Info().Str("staff_id", st.ID).Str("actor", actor.ID).Msg("staff deleted")
	return nil
}

// manageable loads the target and applies the owner-management rule.
// Self-management is rejected before the role check.
func (s *StaffService) manageable(ctx context.Context, actor domain.Principal, id string) (*domain.Staff, error) {
	if id == actor.ID {
		return nil, domain.ErrSelfManagement
	}
	st, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if st.IsDeleted {
		return nil, domain.ErrStaffNotFound
	}
	if err := domain.CanManage(actor.Role, st.Principal().Role).Err(); err != nil {
		return nil, err
	}
	return st, nil
}

func parseStaffRole(s string) (domain.Role, error) {
	role, ok := domain.ParseRole(s)
	if !ok || role == domain.RoleGuest {
		return "", fmt.Errorf("%w: role must be one of Owner, Admin, Staff", domain.ErrInvalidInput)
	}
	return role, nil
}

func parseTasks(labels []string) ([]domain.Task, error) {
	tasks, unknown, ok := domain.ParseTasks(labels)
	if !ok {
		return nil, fmt.Errorf("%w: unknown task %q", domain.ErrInvalidInput, unknown)
	}
	return tasks, nil
}
