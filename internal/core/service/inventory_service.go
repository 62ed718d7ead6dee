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

type InventoryService struct {
	suppliers ports.SupplierRepository
	items     ports.InventoryRepository
	notifier  ports.Notifier
	log       zerolog.Logger
}

func NewInventoryService(suppliers ports.SupplierRepository, items ports.InventoryRepository, notifier ports.Notifier, log zerolog.Logger) *InventoryService {
	return &InventoryService{suppliers: suppliers, items: items, notifier: notifier, log: log}
}

func (s *InventoryService) CreateSupplier(ctx context.Context, in ports.SupplierInput) (*domain.Supplier, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: supplier name is required", domain.ErrInvalidInput)
	}
	now := time.Now().UTC()
	sp := &domain.Supplier{CreatedAt: now}
	applySupplier(sp, in, now)
	if err := s.suppliers.Create(ctx, sp); err != nil {
		return nil, err
	}
	return sp, nil
}

func (s *InventoryService) GetSupplier(ctx context.Context, id string) (*domain.Supplier, error) {
	return s.suppliers.FindByID(ctx, id)
}

func (s *InventoryService) ListSuppliers(ctx context.Context, p ports.Page) (*ports.ListResult[*domain.Supplier], error) {
	p = p.Normalize()
	items, total, err := s.suppliers.List(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	return ports.NewListResult(items, total, p), nil
}

func (s *InventoryService) UpdateSupplier(ctx context.Context, id string, in ports.SupplierInput) (*domain.Supplier, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: supplier name is required", domain.ErrInvalidInput)
	}
	sp, err := s.suppliers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applySupplier(sp, in, time.Now().UTC())
	if err := s.suppliers.Update(ctx, sp); err != nil {
		return nil, err
	}
	return sp, nil
}

// DeleteSupplier refuses while items still reference the supplier.
func (s *InventoryService) DeleteSupplier(ctx context.Context, id string) error {
	if _, err := s.suppliers.FindByID(ctx, id); err != nil {
		return err
	}
	_, n, err := s.items.List(ctx, ports.InventoryFilter{SupplierID: id, Page: ports.Page{Page: 1, Limit: 1}})
	if err != nil {
		return fmt.Errorf("check supplier items: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("%w: supplier still has %d inventory items", domain.ErrInvalidInput, n)
	}
	return s.suppliers.Delete(ctx, id)
}

func (s *InventoryService) CreateItem(ctx context.Context, in ports.InventoryItemInput) (*domain.InventoryItem, error) {
	if err := s.validateItem(ctx, in); err != nil {
		return nil, err
	}
	if in.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity cannot be negative", domain.ErrInvalidInput)
	}
	now := time.Now().UTC()
	item := &domain.InventoryItem{
		Name:         strings.TrimSpace(in.Name),
		Category:     in.Category,
		Unit:         in.Unit,
		Quantity:     in.Quantity,
		ReorderLevel: in.ReorderLevel,
		UnitCost:     in.UnitCost,
		SupplierID:   in.SupplierID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *InventoryService) GetItem(ctx context.Context, id string) (*domain.InventoryItem, error) {
	return s.items.FindByID(ctx, id)
}

func (s *InventoryService) ListItems(ctx context.Context, f ports.InventoryFilter) (*ports.ListResult[*domain.InventoryItem], error) {
	f.Page = f.Page.Normalize()
	items, total, err := s.items.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	return ports.NewListResult(items, total, f.Page), nil
}

// UpdateItem edits everything but the quantity, which only moves via Adjust.
func (s *InventoryService) UpdateItem(ctx context.Context, id string, in ports.InventoryItemInput) (*domain.InventoryItem, error) {
	if err := s.validateItem(ctx, in); err != nil {
		return nil, err
	}
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	item.Name = strings.TrimSpace(in.Name)
	item.Category = in.Category
	item.Unit = in.Unit
	item.ReorderLevel = in.ReorderLevel
	item.UnitCost = in.UnitCost
	item.SupplierID = in.SupplierID
	item.UpdatedAt = time.Now().UTC()
	if err := s.items.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *InventoryService) DeleteItem(ctx context.Context, id string) error {
	return s.items.Delete(ctx, id)
}

// Adjust moves stock by delta. The movement record is best effort; the
// quantity change is not rolled back when it fails.
func (s *InventoryService) Adjust(ctx context.Context, actor domain.Principal, id string, delta int, note string) (*domain.InventoryItem, error) {
	if delta == 0 {
		return nil, fmt.Errorf("%w: delta cannot be zero", domain.ErrInvalidInput)
	}
	item, err := s.items.Adjust(ctx, id, delta)
	if err != nil {
		return nil, err
	}

	mv := &domain.StockMovement{
		ItemID:    item.ID,
		Delta:     delta,
		Balance:   item.Quantity,
		Note:      note,
		ActorID:   actor.ID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.items.InsertMovement(ctx, mv); err != nil {
		s.log.Warn().Err(err).Str("item_id", item.ID).Msg("failed to record stock movement")
	}

	if delta < 0 && item.LowStock() {
		s.log.Warn().Str("item_id", item.ID).Int("quantity", item.Quantity).Msg("inventory item below reorder level")
		s.notifier.Notify(ports.Notification{
			Key:   item.ID,
			Event: domainEvent("inventory.low_stock", item.ID, item),
		})
	}
	return item, nil
}

func (s *InventoryService) validateItem(ctx context.Context, in ports.InventoryItemInput) error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Unit) == "" {
		return fmt.Errorf("%w: name and unit are required", domain.ErrInvalidInput)
	}
	if in.ReorderLevel < 0 || in.UnitCost < 0 {
		return fmt.Errorf("%w: reorder level and unit cost cannot be negative", domain.ErrInvalidInput)
	}
	if in.SupplierID != "" {
		if _, err := s.suppliers.FindByID(ctx, in.SupplierID); err != nil {
			return err
		}
	}
	return nil
}

func applySupplier(sp *domain.Supplier, in ports.SupplierInput, now time.Time) {
	sp.Name = strings.TrimSpace(in.Name)
	sp.ContactName = in.ContactName
	sp.Email = normalizeEmail(in.Email)
	sp.Phone = in.Phone
	sp.Address = in.Address
	sp.Categories = nonNil(in.Categories)
	sp.UpdatedAt = now
}
