package trade

import (
	"context"
	"errors"
	"slices"

	appcart "github.com/atelier/storefront/internal/application/cart"
	"github.com/atelier/storefront/internal/domain/catalog"
	"github.com/atelier/storefront/internal/domain/shared"
	"github.com/atelier/storefront/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// totalTolerance is the largest accepted gap between the client and server totals
var totalTolerance = decimal.RequireFromString("0.01")

// OrderService handles checkout and order management
type OrderService struct {
	productRepo    catalog.ProductRepository
	orderRepo      trade.OrderRepository
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	productRepo catalog.ProductRepository,
	orderRepo trade.OrderRepository,
	txScope TransactionScope,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		productRepo: productRepo,
		orderRepo:   orderRepo,
		txScope:     txScope,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Place captures a checkout. The cart is reconciled first; stock is then
// reserved under row locks and the order persisted in one transaction.
func (s *OrderService) Place(ctx context.Context, req PlaceOrderRequest) (*OrderResponse, error) {
	if err := trade.ValidateEmail(req.CustomerEmail); err != nil {
		return nil, err
	}
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "An order needs at least one item")
	}

	lines := appcart.ToLines(lo.Map(req.Items, func(item PlaceOrderItemRequest, _ int) appcart.LineRequest {
		return appcart.LineRequest{ProductID: item.ProductID, Quantity: item.Quantity}
	}))
	reconciliation, err := appcart.Reconcile(ctx, s.productRepo, lines)
	if err != nil {
		return nil, err
	}
	if !reconciliation.Valid {
		return nil, &CartOutOfDateError{Reconciliation: appcart.ToVerifyResponse(reconciliation)}
	}

	var (
		order  *trade.Order
		events []shared.DomainEvent
	)
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		products, err := lockProducts(ctx, repos.ProductRepo(), lo.Map(req.Items, func(item PlaceOrderItemRequest, _ int) uuid.UUID {
			return item.ProductID
		}))
		if err != nil {
			return err
		}

		items := make([]trade.OrderItem, 0, len(req.Items))
		for _, line := range req.Items {
			product := products[line.ProductID]
			if err := product.Reserve(line.Quantity); err != nil {
				return err
			}
			item, err := trade.NewOrderItem(product.ID, product.Name, product.Price, line.Quantity, product.MainImageURL())
			if err != nil {
				return err
			}
			items = append(items, item)
		}

		order, err = trade.NewOrder(req.CustomerName, req.CustomerEmail, items)
		if err != nil {
			return err
		}
		if req.TotalAmount != nil && req.TotalAmount.Sub(order.TotalAmount).Abs().GreaterThan(totalTolerance) {
			return shared.ErrTotalMismatch
		}

		for _, product := range products {
			if err := repos.ProductRepo().Save(ctx, product); err != nil {
				return err
			}
			events = append(events, product.GetDomainEvents()...)
			product.ClearDomainEvents()
		}
		if err := repos.OrderRepo().Save(ctx, order); err != nil {
			return err
		}
		events = append(events, order.GetDomainEvents()...)
		order.ClearDomainEvents()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order placed",
		zap.String("order_id", order.ID.String()),
		zap.Int("item_count", order.ItemCount()),
		zap.String("total", order.TotalAmount.StringFixed(2)),
	)
	s.publish(ctx, events)

	response := ToOrderResponse(order)
	return &response, nil
}

// List retrieves a paginated list of orders
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) ([]OrderResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Filters:  make(map[string]interface{}),
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToOrderResponses(orders), total, nil
}

// GetByID retrieves an order by ID
func (s *OrderService) GetByID(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// UpdateStatus moves an order along its lifecycle. Cancelling releases the
// reserved stock in the same transaction.
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateOrderStatusRequest) (*OrderResponse, error) {
	target := trade.OrderStatus(req.Status)

	var (
		order  *trade.Order
		events []shared.DomainEvent
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.OrderRepo().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		changed, err := order.ChangeStatus(target)
		if err != nil || !changed {
			return err
		}

		if target == trade.OrderStatusCancelled {
			if err := s.releaseStock(ctx, repos.ProductRepo(), order); err != nil {
				return err
			}
		}
		if err := repos.OrderRepo().Save(ctx, order); err != nil {
			return err
		}
		events = order.GetDomainEvents()
		order.ClearDomainEvents()
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(events) > 0 {
		s.logger.Info("Order status changed",
			zap.String("order_id", order.ID.String()),
			zap.String("status", string(order.Status)),
		)
	}
	s.publish(ctx, events)

	response := ToOrderResponse(order)
	return &response, nil
}

func (s *OrderService) releaseStock(ctx context.Context, repo catalog.ProductRepository, order *trade.Order) error {
	ids := lo.Uniq(lo.Map(order.Items, func(item trade.OrderItem, _ int) uuid.UUID { return item.ProductID }))
	slices.SortFunc(ids, compareUUID)
	for _, id := range ids {
		product, err := repo.FindByIDForUpdate(ctx, id)
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Cancelled order references a deleted product",
				zap.String("order_id", order.ID.String()),
				zap.String("product_id", id.String()),
			)
			continue
		}
		if err != nil {
			return err
		}
		quantity := lo.SumBy(order.Items, func(item trade.OrderItem) int {
			if item.ProductID == id {
				return item.Quantity
			}
			return 0
		})
		if err := product.Release(quantity); err != nil {
			return err
		}
		if err := repo.Save(ctx, product); err != nil {
			return err
		}
	}
	return nil
}

func (s *OrderService) publish(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish order events", zap.Error(err))
	}
}

// lockProducts loads and row-locks every product once, in ID order so
// concurrent checkouts acquire locks in the same sequence.
func lockProducts(ctx context.Context, repo catalog.ProductRepository, ids []uuid.UUID) (map[uuid.UUID]*catalog.Product, error) {
	ids = lo.Uniq(ids)
	slices.SortFunc(ids, compareUUID)

	products := make(map[uuid.UUID]*catalog.Product, len(ids))
	for _, id := range ids {
		product, err := repo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		products[id] = product
	}
	return products, nil
}

func compareUUID(a, b uuid.UUID) int {
	return slices.Compare(a[:], b[:])
}
