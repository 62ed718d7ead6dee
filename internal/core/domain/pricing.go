package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// DiscountMinQuantity is the total piece count from which a requested
	// discount is granted.
	DiscountMinQuantity = 20
)

// discountRate is 10%.
var discountRate = decimal.New(10, -2)

// LineRequest is one requested line before catalog resolution.
type LineRequest struct {
	ItemID      string
	ServiceType string
	Quantity    int
}

// Fees are the optional flat charges added after the discount.
type Fees struct {
	UrgentFee     float64
	ServiceCharge float64
}

// Quote is the Pricing Engine result.
type Quote struct {
	Lines         []LaundryLine
	TotalQuantity int
	Subtotal      float64
	Discount      float64
	UrgentFee     float64
	ServiceCharge float64
	Total         float64
	// Dropped lists requested item ids that were not in the catalog.
	Dropped []string
}

// ResolveUnitPrice picks the variant price by case-insensitive substring
// match: "wash" and "iron" together select the combined price, either alone
// selects its own price, anything else falls back to the base price.
func ResolveUnitPrice(item LaundryItem, variant string) float64 {
	v := strings.ToLower(variant)
	wash := strings.Contains(v, "wash")
	iron := strings.Contains(v, "iron")

	switch {
	case wash && iron:
		return item.WashAndIronPrice
	case wash:
		return item.WashPrice
	case iron:
		return item.IronPrice
	}
	return item.BasePrice
}

// SnapshotLines resolves each request against the catalog and freezes the
// unit price into the line. Requests for items missing from the catalog are
// skipped and reported in dropped.
func SnapshotLines(reqs []LineRequest, catalog map[string]LaundryItem) (lines []LaundryLine, dropped []string, err error) {
	if len(reqs) == 0 {
		return nil, nil, &PricingError{Message: "at least one item is required"}
	}

	lines = make([]LaundryLine, 0, len(reqs))
	for i, r := range reqs {
		if strings.TrimSpace(r.ItemID) == "" {
			return nil, nil, &PricingError{Message: fmt.Sprintf("item[%d]: item id is required", i)}
		}
		if r.Quantity <= 0 {
			return nil, nil, &PricingError{Message: fmt.Sprintf("item[%d]: quantity must be greater than 0", i)}
		}

		item, ok := catalog[r.ItemID]
		if !ok {
			dropped = append(dropped, r.ItemID)
			continue
		}

		lines = append(lines, LaundryLine{
			ItemID:      item.ID,
			ItemName:    item.Name,
			ServiceType: r.ServiceType,
			UnitPrice:   ResolveUnitPrice(item, r.ServiceType),
			Quantity:    r.Quantity,
		})
	}
	return lines, dropped, nil
}

// QuoteLines prices already-frozen lines:
//
//	total = (subtotal - discount) + urgentFee + serviceCharge
//
// where discount is 10% of the subtotal only when requested and the total
// quantity reaches DiscountMinQuantity.
func QuoteLines(lines []LaundryLine, fees Fees, discountRequested bool) (Quote, error) {
	if fees.UrgentFee < 0 || fees.ServiceCharge < 0 {
		return Quote{}, &PricingError{Message: "fees cannot be negative"}
	}

	priced := make([]LaundryLine, len(lines))
	subtotal := decimal.Zero
	qty := 0
	for i, l := range lines {
		if l.Quantity <= 0 {
			return Quote{}, &PricingError{Message: fmt.Sprintf("line %d: quantity must be greater than 0", i)}
		}
		lineTotal := decimal.NewFromFloat(l.UnitPrice).Mul(decimal.NewFromInt(int64(l.Quantity)))
		l.LineTotal = lineTotal.Round(2).InexactFloat64()
		priced[i] = l

		subtotal = subtotal.Add(lineTotal)
		qty += l.Quantity
	}

	discount := decimal.Zero
	if discountRequested && qty >= DiscountMinQuantity {
		discount = subtotal.Mul(discountRate)
	}

	urgent := decimal.NewFromFloat(fees.UrgentFee)
	service := decimal.NewFromFloat(fees.ServiceCharge)
	total := subtotal.Sub(discount).Add(urgent).Add(service)

	return Quote{
		Lines:         priced,
		TotalQuantity: qty,
		Subtotal:      subtotal.Round(2).InexactFloat64(),
		Discount:      discount.Round(2).InexactFloat64(),
		UrgentFee:     urgent.Round(2).InexactFloat64(),
		ServiceCharge: service.Round(2).InexactFloat64(),
		Total:         total.Round(2).InexactFloat64(),
	}, nil
}

// PriceOrder runs the full engine: catalog resolution followed by QuoteLines.
// When rejectUnknown is set a missing catalog item fails the whole order.
func PriceOrder(reqs []LineRequest, catalog map[string]LaundryItem, fees Fees, discountRequested, rejectUnknown bool) (Quote, error) {
	lines, dropped, err := SnapshotLines(reqs, catalog)
	if err != nil {
		return Quote{}, err
	}
	if len(dropped) > 0 && rejectUnknown {
		return Quote{}, &PricingError{Message: "unknown laundry item " + dropped[0]}
	}
	if len(lines) == 0 {
		return Quote{}, &PricingError{Message: "none of the requested items exist in the catalog"}
	}

	q, err := QuoteLines(lines, fees, discountRequested)
	if err != nil {
		return Quote{}, err
	}
	q.Dropped = dropped
	return q, nil
}
