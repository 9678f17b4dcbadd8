// Package cart reconciles a client-held shopping cart against the
// authoritative catalog inventory.
package cart

import (
	"github.com/atelier/storefront/internal/domain/catalog"
	"github.com/google/uuid"
)

// PatchType is the kind of correction the client must apply to a cart line
type PatchType string

const (
	PatchMarkUnavailable PatchType = "markUnavailable"
	PatchUpdateQuantity  PatchType = "updateQuantity"
)

// UnavailableReason explains why a cart line can no longer be ordered
type UnavailableReason string

const (
	ReasonDeleted        UnavailableReason = "deleted"
	ReasonOutOfStock     UnavailableReason = "outOfStock"
	ReasonUniqueItemSold UnavailableReason = "uniqueItemSold"
)

// Line is one product held in a cart
type Line struct {
	ProductID uuid.UUID
	Quantity  int
}

// Patch is a correction for a single cart line
type Patch struct {
	Type      PatchType
	ProductID uuid.UUID
	Reason    UnavailableReason // set for PatchMarkUnavailable
	Quantity  int               // set for PatchUpdateQuantity
}

// Result is the outcome of a reconciliation pass
type Result struct {
	Valid            bool
	UnavailableItems []uuid.UUID
	UpdatesToApply   []Patch
}

// Reconcile compares cart lines with current inventory and returns the
// patches that bring the cart back in line with it. Lines are visited once,
// in input order, and each line yields at most one patch.
func Reconcile(lines []Line, products map[uuid.UUID]*catalog.Product) Result {
	result := Result{
		UnavailableItems: make([]uuid.UUID, 0),
		UpdatesToApply:   make([]Patch, 0),
	}

	for _, line := range lines {
		patch, ok := reconcileLine(line, products[line.ProductID])
		if !ok {
			continue
		}
		if patch.Type == PatchMarkUnavailable {
			result.UnavailableItems = append(result.UnavailableItems, line.ProductID)
		}
		result.UpdatesToApply = append(result.UpdatesToApply, patch)
	}

	result.Valid = len(result.UpdatesToApply) == 0
	return result
}

func reconcileLine(line Line, product *catalog.Product) (Patch, bool) {
	if product == nil {
		return unavailable(line.ProductID, ReasonDeleted), true
	}
	if product.IsUnique && !product.IsAvailable() {
		return unavailable(line.ProductID, ReasonUniqueItemSold), true
	}
	if !product.IsAvailable() {
		return unavailable(line.ProductID, ReasonOutOfStock), true
	}

	if product.StockQuantity != nil && *product.StockQuantity < line.Quantity {
		return resize(line.ProductID, *product.StockQuantity), true
	}
	if product.IsUnique && line.Quantity > 1 {
		return resize(line.ProductID, 1), true
	}
	if line.Quantity < 1 {
		return resize(line.ProductID, 1), true
	}
	return Patch{}, false
}

func unavailable(id uuid.UUID, reason UnavailableReason) Patch {
	return Patch{Type: PatchMarkUnavailable, ProductID: id, Reason: reason}
}

func resize(id uuid.UUID, quantity int) Patch {
	return Patch{Type: PatchUpdateQuantity, ProductID: id, Quantity: quantity}
}
