package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/domain"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/ports"
)

type GuestService struct {
	repo ports.GuestRepository
	log  zerolog.Logger
}

func NewGuestService(repo ports.GuestRepository, log zerolog.Logger) *GuestService {
	return &GuestService{repo: repo, log: log}
}

func (s *GuestService) Get(ctx context.Context, id string) (*domain.Guest, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *GuestService) List(ctx context.Context, f ports.AccountFilter) (*ports.ListResult[*domain.Guest], error) {
	f.Page = f.Page.Normalize()
	items, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}
	return ports.NewListResult(items, total, f.Page), nil
}

func (s *GuestService) SetBlocked(ctx context.Context, id string, blocked bool) (*domain.Guest, error) {
	return s.mutate(ctx, id, func(g *domain.Guest) { g.IsBlocked = blocked })
}

// Ban is permanent; there is no unban route.
func (s *GuestService) Ban(ctx context.Context, id string) (*domain.Guest, error) {
	return s.mutate(ctx, id, func(g *domain.Guest) { g.IsBanned = true })
}

// Delete soft-deletes the account; bookings and payments keep pointing at it.
func (s *GuestService) Delete(ctx context.Context, id string) error {
	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if g.IsDeleted {
		return domain.ErrGuestNotFound
	}
	_, err = s.mutate(ctx, id, func(g *domain.Guest) { g.IsDeleted = true })
	return err
}

func (s *GuestService) mutate(ctx context.Context, id string, fn func(*domain.Guest)) (*domain.Guest, error) {
	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	fn(g)
	g.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, g); err != nil {
		return nil, err
	}
	s.log.Info().Str("guest_id", g.ID).Bool("blocked", g.IsBlocked).Bool("banned", g.IsBanned).Bool("deleted", g.IsDeleted).Msg("guest restrictions changed")
	return g, nil
}
