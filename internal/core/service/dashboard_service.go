package service

import (
	"context"
	"fmt"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/ports"
)

type DashboardService struct {
	repo ports.DashboardRepository
}

func NewDashboardService(repo ports.DashboardRepository) *DashboardService {
	return &DashboardService{repo: repo}
}

func (s *DashboardService) Summary(ctx context.Context) (*ports.DashboardSummary, error) {
	sum, err := s.repo.Summary(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard summary: %w", err)
	}
	return sum, nil
}
