package admin

import (
	"context"

	apptrade "github.com/atelier/storefront/internal/application/trade"
	"github.com/atelier/storefront/internal/domain/catalog"
	"github.com/atelier/storefront/internal/domain/shared"
	"github.com/atelier/storefront/internal/domain/trade"
	"golang.org/x/sync/errgroup"
)

const recentActivityLimit = 5

// StatsService aggregates dashboard figures
type StatsService struct {
	productRepo catalog.ProductRepository
	orderRepo   trade.OrderRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(productRepo catalog.ProductRepository, orderRepo trade.OrderRepository) *StatsService {
	return &StatsService{productRepo: productRepo, orderRepo: orderRepo}
}

// Stats computes the dashboard figures concurrently
func (s *StatsService) Stats(ctx context.Context) (*StatsResponse, error) {
	var (
		resp     StatsResponse
		byStatus map[trade.OrderStatus]int64
		recent   []trade.Order
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		resp.TotalProducts, err = s.productRepo.Count(gctx, shared.DefaultFilter())
		return err
	})
	g.Go(func() (err error) {
		byStatus, err = s.orderRepo.CountByStatus(gctx)
		return err
	})
	g.Go(func() (err error) {
		resp.Revenue, err = s.orderRepo.SumRevenue(gctx)
		return err
	})
	g.Go(func() (err error) {
		filter := shared.DefaultFilter()
		filter.PageSize = recentActivityLimit
		recent, err = s.orderRepo.FindAll(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	resp.OrdersByStatus = make(map[string]int64, len(trade.AllOrderStatuses))
	for _, status := range trade.AllOrderStatuses {
		count := byStatus[status]
		resp.OrdersByStatus[string(status)] = count
		resp.TotalOrders += count
	}
	resp.RecentActivity = apptrade.ToOrderResponses(recent)
	return &resp, nil
}
