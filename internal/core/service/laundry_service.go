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

// LaundryConfig tunes the laundry pricing policy.
type LaundryConfig struct {
	// RejectUnknownItems fails an order that references a missing catalog
	// item instead of pricing the remaining lines.
	RejectUnknownItems bool
}

type LaundryService struct {
	items    ports.LaundryItemRepository
	orders   ports.LaundryOrderRepository
	refs     ports.ReferenceGenerator
	notifier ports.Notifier
	cfg      LaundryConfig
	log      zerolog.Logger
}

func NewLaundryService(
	items ports.LaundryItemRepository,
	orders ports.LaundryOrderRepository,
	refs ports.ReferenceGenerator,
	notifier ports.Notifier,
	cfg LaundryConfig,
	log zerolog.Logger,
) *LaundryService {
	return &LaundryService{items: items, orders: orders, refs: refs, notifier: notifier, cfg: cfg, log: log}
}

func (s *LaundryService) CreateItem(ctx context.Context, in ports.LaundryItemInput) (*domain.LaundryItem, error) {
	if err := validateLaundryItem(in); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	item := &domain.LaundryItem{
		Name:             strings.TrimSpace(in.Name),
		Category:         in.Category,
		BasePrice:        in.BasePrice,
		WashPrice:        in.WashPrice,
		IronPrice:        in.IronPrice,
		WashAndIronPrice: in.WashAndIronPrice,
		ImageURL:         in.ImageURL,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *LaundryService) GetItem(ctx context.Context, id string) (*domain.LaundryItem, error) {
	return s.items.FindByID(ctx, id)
}

func (s *LaundryService) ListItems(ctx context.Context, category string, p ports.Page) (*ports.ListResult[*domain.LaundryItem], error) {
	p = p.Normalize()
	items, total, err := s.items.List(ctx, category, p)
	if err != nil {
		return nil, fmt.Errorf("list laundry items: %w", err)
	}
	return ports.NewListResult(items, total, p), nil
}

// UpdateItem changes catalog prices. Existing orders keep the prices they
// were created with.
func (s *LaundryService) UpdateItem(ctx context.Context, id string, in ports.LaundryItemInput) (*domain.LaundryItem, error) {
	if err := validateLaundryItem(in); err != nil {
		return nil, err
	}
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	item.Name = strings.TrimSpace(in.Name)
	item.Category = in.Category
	item.BasePrice = in.BasePrice
	item.WashPrice = in.WashPrice
	item.IronPrice = in.IronPrice
	item.WashAndIronPrice = in.WashAndIronPrice
	if in.ImageURL != "" {
		item.ImageURL = in.ImageURL
	}
	item.UpdatedAt = time.Now().UTC()
	if err := s.items.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *LaundryService) DeleteItem(ctx context.Context, id string) error {
	return s.items.Delete(ctx, id)
}

func (s *LaundryService) CreateOrder(ctx context.Context, guest domain.Principal, in ports.CreateLaundryOrderInput) (*ports.LaundryOrderResult, error) {
	q, err := s.price(ctx, in.Lines, domain.Fees{UrgentFee: in.UrgentFee, ServiceCharge: in.ServiceCharge}, in.DiscountRequested)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	order := &domain.LaundryOrder{
		Reference:         s.refs.Generate("LD"),
		GuestID:           guest.ID,
		GuestName:         guest.Name,
		GuestEmail:        guest.Email,
		RoomNumber:        in.RoomNumber,
		DiscountRequested: in.DiscountRequested,
		Status:            domain.LaundryPending,
		PaymentStatus:     domain.Unpaid,
		Notes:             in.Notes,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	order.ApplyQuote(q)

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	s.announce(order, "laundry.created", "Laundry order received")
	s.log.Info().
		Str("order_id", order.ID).
		Int("quantity", order.TotalQuantity).
		Float64("total", order.Total).
		Msg("laundry order created")

	return &ports.LaundryOrderResult{Order: order, Dropped: q.Dropped}, nil
}

func (s *LaundryService) GetOrder(ctx context.Context, id string) (*domain.LaundryOrder, error) {
	return s.orders.FindByID(ctx, id)
}

func (s *LaundryService) ListOrders(ctx context.Context, f ports.LaundryOrderFilter) (*ports.ListResult[*domain.LaundryOrder], error) {
	f.Page = f.Page.Normalize()
	items, total, err := s.orders.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list laundry orders: %w", err)
	}
	return ports.NewListResult(items, total, f.Page), nil
}

// UpdateOrder edits an order that is still Pending or In Progress. New lines
// are priced from the current catalog; fee or discount edits requote the
// persisted lines at their frozen prices.
func (s *LaundryService) UpdateOrder(ctx context.Context, id string, in ports.UpdateLaundryOrderInput) (*ports.LaundryOrderResult, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.Status.Editable() {
		return nil, fmt.Errorf("%w: order is %s", domain.ErrOrderLocked, order.Status)
	}

	fees := order.Fees()
	if in.UrgentFee != nil {
		fees.UrgentFee = *in.UrgentFee
	}
	if in.ServiceCharge != nil {
		fees.ServiceCharge = *in.ServiceCharge
	}
	discount := order.DiscountRequested
	if in.DiscountRequested != nil {
		discount = *in.DiscountRequested
	}

	var q domain.Quote
	if in.Lines != nil {
		q, err = s.price(ctx, *in.Lines, fees, discount)
	} else {
		q, err = domain.QuoteLines(order.Lines, fees, discount)
	}
	if err != nil {
		return nil, err
	}

	order.ApplyQuote(q)
	order.DiscountRequested = discount
	if in.Notes != nil {
		order.Notes = *in.Notes
	}
	order.UpdatedAt = time.Now().UTC()

	if err := s.orders.Reprice(ctx, order); err != nil {
		return nil, err
	}

	s.log.Info().Str("order_id", id).Bool("lines_replaced", in.Lines != nil).Float64("total", order.Total).Msg("laundry order repriced")
	return &ports.LaundryOrderResult{Order: order, Dropped: q.Dropped}, nil
}

func (s *LaundryService) UpdateOrderStatus(ctx context.Context, id string, to domain.LaundryStatus) (*domain.LaundryOrder, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(to) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, order.Status, to)
	}
	if err := s.orders.UpdateStatus(ctx, id, order.Status, to); err != nil {
		return nil, err
	}
	order.Status = to
	order.UpdatedAt = time.Now().UTC()

	s.announce(order, "laundry.status_changed", "Laundry order "+string(to))
	return order, nil
}

// price resolves the requested lines against the catalog and runs the
// pricing engine.
func (s *LaundryService) price(ctx context.Context, reqs []domain.LineRequest, fees domain.Fees, discount bool) (domain.Quote, error) {
	ids := make([]string, 0, len(reqs))
	for _, r := range reqs {
		ids = append(ids, r.ItemID)
	}
	catalog, err := s.items.FindByIDs(ctx, ids)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("load laundry catalog: %w", err)
	}

	q, err := domain.PriceOrder(reqs, catalog, fees, discount, s.cfg.RejectUnknownItems)
	if err != nil {
		return domain.Quote{}, err
	}
	if len(q.Dropped) > 0 {
		s.log.Warn().Strs("item_ids", q.Dropped).Msg("laundry items missing from catalog were dropped")
	}
	return q, nil
}

func (s *LaundryService) announce(o *domain.LaundryOrder, event, subject string) {
	s.notifier.Notify(ports.Notification{
		Key: o.GuestID,
		Email: statusEmail(o.GuestEmail, o.GuestName, subject, TemplateLaundryStatus, map[string]any{
			"Reference": o.Reference,
			"Status":    string(o.Status),
			"Total":     o.Total,
		}),
		Event: domainEvent(event, o.ID, o),
	})
}

func validateLaundryItem(in ports.LaundryItemInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if in.BasePrice < 0 || in.WashPrice < 0 || in.IronPrice < 0 || in.WashAndIronPrice < 0 {
		return fmt.Errorf("%w: prices cannot be negative", domain.ErrInvalidInput)
	}
	return nil
}
