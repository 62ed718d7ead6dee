package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/domain"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/ports"
)

const maxImagesPerUpload = 7

type RoomService struct {
	repo   ports.RoomRepository
	images ports.ImageStore
	log    zerolog.Logger
}

func NewRoomService(repo ports.RoomRepository, images ports.ImageStore, log zerolog.Logger) *RoomService {
	return &RoomService{repo: repo, images: images, log: log}
}

func (s *RoomService) Create(ctx context.Context, in ports.RoomInput) (*domain.Room, error) {
	status, err := parseRoomStatus(in.Status, domain.RoomAvailable)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	r := &domain.Room{
		Number:      strings.TrimSpace(in.Number),
		Type:        strings.TrimSpace(in.Type),
		Description: in.Description,
		Price:       in.Price,
		Capacity:    in.Capacity,
		Amenities:   nonNil(in.Amenities),
		Images:      []string{},
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	s.log.Info().Str("room_id", r.ID).Str("number", r.Number).Msg("room created")
	return r, nil
}

func (s *RoomService) Get(ctx context.Context, id string) (*domain.Room, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *RoomService) List(ctx context.Context, f ports.RoomFilter) (*ports.ListResult[*domain.Room], error) {
	f.Page = f.Page.Normalize()
	items, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return ports.NewListResult(items, total, f.Page), nil
}

// Update edits the room's descriptive fields. Booked is owned by the
// booking flow and cannot be set or cleared here.
func (s *RoomService) Update(ctx context.Context, id string, in ports.RoomInput) (*domain.Room, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Status != "" {
		status, err := parseRoomStatus(in.Status, r.Status)
		if err != nil {
			return nil, err
		}
		if status != r.Status && (status == domain.RoomBooked || r.Status == domain.RoomBooked) {
			return nil, fmt.Errorf("%w: room bookings control the Booked status", domain.ErrRoomUnavailable)
		}
		r.Status = status
	}
	if in.Number != "" {
		r.Number = strings.TrimSpace(in.Number)
	}
	if in.Type != "" {
		r.Type = strings.TrimSpace(in.Type)
	}
	if in.Description != "" {
		r.Description = in.Description
	}
	if in.Price > 0 {
		r.Price = in.Price
	}
	if in.Capacity > 0 {
		r.Capacity = in.Capacity
	}
	if in.Amenities != nil {
		r.Amenities = in.Amenities
	}

	r.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *RoomService) Delete(ctx context.Context, id string) error {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if r.Status == domain.RoomBooked {
		return fmt.Errorf("%w: room has an active booking", domain.ErrRoomUnavailable)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	removeImages(ctx, s.images, r.Images, s.log)
	return nil
}

func (s *RoomService) AddImages(ctx context.Context, id string, files []ports.Upload) (*domain.Room, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}

	urls, err := uploadImages(ctx, s.images, "rooms", "room_"+id, files)
	if err != nil {
		return nil, err
	}
	if err := s.repo.AddImages(ctx, id, urls); err != nil {
		removeImages(ctx, s.images, urls, s.log)
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func parseRoomStatus(s string, fallback domain.RoomStatus) (domain.RoomStatus, error) {
	if s == "" {
		return fallback, nil
	}
	switch st := domain.RoomStatus(s); st {
	case domain.RoomAvailable, domain.RoomBooked, domain.RoomMaintenance:
		return st, nil
	}
	return "", fmt.Errorf("%w: unknown room status %q", domain.ErrInvalidInput, s)
}

// uploadImages stores every file under folder. On failure the images already
// uploaded are left in place; the caller has not recorded them yet.
func uploadImages(ctx context.Context, store ports.ImageStore, folder, prefix string, files []ports.Upload) ([]string, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: image storage is not configured", domain.ErrInvalidInput)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: at least one image is required", domain.ErrInvalidInput)
	}
	if len(files) > maxImagesPerUpload {
		return nil, fmt.Errorf("%w: at most %d images per upload", domain.ErrInvalidInput, maxImagesPerUpload)
	}

	urls := make([]string, 0, len(files))
	for i, f := range files {
		name := fmt.Sprintf("%s_%d_%d", prefix, time.Now().UnixNano(), i)
		u, err := store.Upload(ctx, folder, name, f.Reader)
		if err != nil {
			return nil, fmt.Errorf("upload %s: %w", f.Name, err)
		}
		urls = append(urls, u)
	}
	return urls, nil
}

// removeImages is best effort; failures are only logged.
func removeImages(ctx context.Context, store ports.ImageStore, urls []string, log zerolog.Logger) {
	if store == nil {
		return
	}
	for _, u := range urls {
		if err := store.Remove(ctx, u); err != nil {
			log.Warn().Err(err).Str("url", u).Msg("failed to remove image")
		}
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
