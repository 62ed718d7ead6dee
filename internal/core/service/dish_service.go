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

// DishService manages the menu and food orders. Stock is taken when an
// order is placed and returned when it is cancelled, each inside the same
// transaction as the order write.
type DishService struct {
	tx       ports.TxRunner
	dishes   ports.DishRepository
	orders   ports.DishOrderRepository
	images   ports.ImageStore
	refs     ports.ReferenceGenerator
	notifier ports.Notifier
	log      zerolog.Logger
}

func NewDishService(
	tx ports.TxRunner,
	dishes ports.DishRepository,
	orders ports.DishOrderRepository,
	images ports.ImageStore,
	refs ports.ReferenceGenerator,
	notifier ports.Notifier,
	log zerolog.Logger,
) *DishService {
	return &DishService{tx: tx, dishes: dishes, orders: orders, images: images, refs: refs, notifier: notifier, log: log}
}

func (s *DishService) Create(ctx context.Context, in ports.DishInput) (*domain.Dish, error) {
	if err := validateDish(in); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	d := &domain.Dish{
		Name:        strings.TrimSpace(in.Name),
		Category:    in.Category,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.dishes.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *DishService) Get(ctx context.Context, id string) (*domain.Dish, error) {
	return s.dishes.FindByID(ctx, id)
}

func (s *DishService) List(ctx context.Context, category string, p ports.Page) (*ports.ListResult[*domain.Dish], error) {
	p = p.Normalize()
	items, total, err := s.dishes.List(ctx, category, p)
	if err != nil {
		return nil, fmt.Errorf("list dishes: %w", err)
	}
	return ports.NewListResult(items, total, p), nil
}

func (s *DishService) Update(ctx context.Context, id string, in ports.DishInput) (*domain.Dish, error) {
	if err := validateDish(in); err != nil {
		return nil, err
	}
	d, err := s.dishes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d.Name = strings.TrimSpace(in.Name)
	d.Category = in.Category
	d.Description = in.Description
	d.Price = in.Price
	d.Stock = in.Stock
	d.UpdatedAt = time.Now().UTC()
	if err := s.dishes.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *DishService) Delete(ctx context.Context, id string) error {
	d, err := s.dishes.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.dishes.Delete(ctx, id); err != nil {
		return err
	}
	if d.ImageURL != "" {
		removeImages(ctx, s.images, []string{d.ImageURL}, s.log)
	}
	return nil
}

func (s *DishService) SetImage(ctx context.Context, id string, file ports.Upload) (*domain.Dish, error) {
	d, err := s.dishes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	urls, err := uploadImages(ctx, s.images, "dishes", "dish_"+id, []ports.Upload{file})
	if err != nil {
		return nil, err
	}
	if err := s.dishes.SetImage(ctx, id, urls[0]); err != nil {
		removeImages(ctx, s.images, urls, s.log)
		return nil, err
	}
	if d.ImageURL != "" {
		removeImages(ctx, s.images, []string{d.ImageURL}, s.log)
	}
	d.ImageURL = urls[0]
	return d, nil
}

// PlaceOrder snapshots dish prices and takes stock for every line. Any line
// without enough stock aborts the whole order.
func (s *DishService) PlaceOrder(ctx context.Context, guest domain.Principal, in ports.CreateDishOrderInput) (*domain.DishOrder, error) {
	if len(in.Lines) == 0 {
		return nil, fmt.Errorf("%w: at least one dish is required", domain.ErrInvalidInput)
	}
	merged := mergeDishLines(in.Lines)
	for _, l := range merged {
		if l.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be greater than 0", domain.ErrInvalidInput)
		}
	}

	var order *domain.DishOrder
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		lines := make([]domain.DishOrderLine, 0, len(merged))
		for _, l := range merged {
			d, err := s.dishes.FindByID(ctx, l.DishID)
			if err != nil {
				return err
			}
			if err := s.dishes.TakeStock(ctx, d.ID, l.Quantity); err != nil {
				return fmt.Errorf("%s: %w", d.Name, err)
			}
			lines = append(lines, domain.DishOrderLine{
				DishID:    d.ID,
				Name:      d.Name,
				UnitPrice: d.Price,
				Quantity:  l.Quantity,
			})
		}

		now := time.Now().UTC()
		order = &domain.DishOrder{
			Reference:     s.refs.Generate("DS"),
			GuestID:       guest.ID,
			GuestName:     guest.Name,
			GuestEmail:    guest.Email,
			RoomNumber:    in.RoomNumber,
			Lines:         lines,
			Total:         domain.PriceDishLines(lines),
			Notes:         in.Notes,
			Status:        domain.DishOrderPending,
			PaymentStatus: domain.Unpaid,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		return s.orders.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.announce(order, "dish_order.created", "Order received")
	s.log.Info().Str("order_id", order.ID).Float64("total", order.Total).Msg("dish order placed")
	return order, nil
}

func (s *DishService) GetOrder(ctx context.Context, id string) (*domain.DishOrder, error) {
	return s.orders.FindByID(ctx, id)
}

func (s *DishService) ListOrders(ctx context.Context, f ports.DishOrderFilter) (*ports.ListResult[*domain.DishOrder], error) {
	f.Page = f.Page.Normalize()
	items, total, err := s.orders.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list dish orders: %w", err)
	}
	return ports.NewListResult(items, total, f.Page), nil
}

func (s *DishService) UpdateOrderStatus(ctx context.Context, id string, to domain.DishOrderStatus) (*domain.DishOrder, error) {
	var order *domain.DishOrder
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		o, err := s.orders.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !o.Status.CanTransitionTo(to) {
			return fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, o.Status, to)
		}
		if err := s.orders.UpdateStatus(ctx, id, o.Status, to); err != nil {
			return err
		}
		if to == domain.DishOrderCancelled {
			for _, l := range o.Lines {
				if err := s.dishes.ReturnStock(ctx, l.DishID, l.Quantity); err != nil {
					return fmt.Errorf("return stock for %s: %w", l.Name, err)
				}
			}
		}
		o.Status = to
		o.UpdatedAt = time.Now().UTC()
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.announce(order, "dish_order.status_changed", "Order "+string(to))
	return order, nil
}

func (s *DishService) announce(o *domain.DishOrder, event, subject string) {
	s.notifier.Notify(ports.Notification{
		Key: o.GuestID,
		Email: statusEmail(o.GuestEmail, o.GuestName, subject, TemplateDishOrderStatus, map[string]any{
			"Reference": o.Reference,
			"Status":    string(o.Status),
			"Total":     o.Total,
		}),
		Event: domainEvent(event, o.ID, o),
	})
}

// mergeDishLines folds repeated dishes into one line, keeping first-seen order.
func mergeDishLines(in []ports.DishOrderLineInput) []ports.DishOrderLineInput {
	idx := make(map[string]int, len(in))
	out := make([]ports.DishOrderLineInput, 0, len(in))
	for _, l := range in {
		if i, ok := idx[l.DishID]; ok {
			out[i].Quantity += l.Quantity
			continue
		}
		idx[l.DishID] = len(out)
		out = append(out, l)
	}
	return out
}

func validateDish(in ports.DishInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if in.Price < 0 || in.Stock < 0 {
		return fmt.Errorf("%w: price and stock cannot be negative", domain.ErrInvalidInput)
	}
	return nil
}
