package order

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

// Service is the interface the UI layer talks to. Mutations fail loudly,
// statistics reads fail quietly and degrade to empty results.
type Service interface {
	AddOrder(ctx context.Context, o *Order) (int64, error)
	Orders(ctx context.Context) ([]Order, error)
	DeleteOrder(ctx context.Context, id int64) error
	RevenueStats(ctx context.Context, days int) []RevenuePoint
	GeneralStatistics(ctx context.Context) GeneralStats
}

type service struct {
	repo Repository

	// mu сериализует мутации: запись заказа и дельта агрегата не должны
	// чередоваться с другими мутациями.
	mu sync.Mutex
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// AddOrder stores the order as-is: input validation belongs to the calling
// layer, the store accepts whatever it is given.
func (s *service) AddOrder(ctx context.Context, o *Order) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o.Status = StatusProcessing

	id, err := s.repo.CreateOrder(ctx, o)
	if err != nil {
		log.Error().Err(err).Str("customer", o.CustomerName).Msg("service: failed to add order")
		return 0, fmt.Errorf("service: failed to add order: %w", err)
	}

	log.Info().
		Int64("order_id", id).
		Str("customer", o.CustomerName).
		Float64("line_total", o.LineTotal()).
		Msg("service: order added")

	return id, nil
}

func (s *service) Orders(ctx context.Context) ([]Order, error) {
	orders, err := s.repo.GetAllOrders(ctx)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to fetch orders")
		return nil, fmt.Errorf("service: failed to fetch orders: %w", err)
	}

	return orders, nil
}

// DeleteOrder removes the order by id. Deleting an id that does not exist is
// success, not an error.
func (s *service) DeleteOrder(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.DeleteOrder(ctx, id); err != nil {
		log.Error().Err(err).Int64("order_id", id).Msg("service: failed to delete order")
		return fmt.Errorf("service: failed to delete order: %w", err)
	}

	log.Info().Int64("order_id", id).Msg("service: order deleted")

	return nil
}

// RevenueStats never fails: the series feeds a display widget, so storage
// errors degrade to an empty result.
func (s *service) RevenueStats(ctx context.Context, days int) []RevenuePoint {
	points, err := s.repo.RevenueByDay(ctx, days)
	if err != nil {
		log.Warn().Err(err).Int("days", days).Msg("service: failed to fetch revenue stats")
		return []RevenuePoint{}
	}

	return points
}

// GeneralStatistics never fails; storage errors degrade to the all-zero result.
func (s *service) GeneralStatistics(ctx context.Context) GeneralStats {
	count, revenue, err := s.repo.OrderTotals(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("service: failed to fetch general statistics")
		return GeneralStats{}
	}

	stats := GeneralStats{TotalOrders: count, TotalRevenue: revenue}
	if count > 0 {
		stats.AverageOrderValue = revenue / float64(count)
	}

	return stats
}
