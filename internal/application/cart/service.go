// Package cart verifies client-held carts against the catalog.
package cart

import (
	"context"

	"github.com/atelier/storefront/internal/domain/cart"
	"github.com/atelier/storefront/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Service reconciles carts with current inventory
type Service struct {
	productRepo catalog.ProductRepository
}

// NewService creates a new cart Service
func NewService(productRepo catalog.ProductRepository) *Service {
	return &Service{productRepo: productRepo}
}

// Verify loads every referenced product in one query and reconciles the cart
func (s *Service) Verify(ctx context.Context, req VerifyRequest) (*VerifyResponse, error) {
	result, err := Reconcile(ctx, s.productRepo, ToLines(req.Items))
	if err != nil {
		return nil, err
	}
	resp := ToVerifyResponse(result)
	return &resp, nil
}

// Reconcile reconciles lines against the products currently in repo
func Reconcile(ctx context.Context, repo catalog.ProductRepository, lines []cart.Line) (cart.Result, error) {
	ids := lo.Uniq(lo.Map(lines, func(l cart.Line, _ int) uuid.UUID { return l.ProductID }))
	products := make(map[uuid.UUID]*catalog.Product, len(ids))
	if len(ids) > 0 {
		found, err := repo.FindByIDs(ctx, ids)
		if err != nil {
			return cart.Result{}, err
		}
		for i := range found {
			products[found[i].ID] = &found[i]
		}
	}
	return cart.Reconcile(lines, products), nil
}
