package service

import (
	"context"
	"sort"
	"time"

	"go-inventory-reorder/internal/repository"
)

type DashboardService interface {
	GetStockMovement(ctx context.Context, days int) ([]repository.StockMovementData, error)
	GetDashboardStats(ctx context.Context) (*repository.DashboardStats, error)
}

type dashboardService struct {
	txRepo    repository.TransactionRepository
	orderRepo repository.OrderRequestRepository
	now       func() time.Time
}

func NewDashboardService(txRepo repository.TransactionRepository, orderRepo repository.OrderRequestRepository) DashboardService {
	return &dashboardService{txRepo: txRepo, orderRepo: orderRepo, now: time.Now}
}

// GetStockMovement returns received and issued quantities per day over the
// last days, together with the number of order requests raised each day.
// Days with only order requests still get an entry.
func (s *dashboardService) GetStockMovement(ctx context.Context, days int) ([]repository.StockMovementData, error) {
	endDate := s.now()
	startDate := endDate.AddDate(0, 0, -days)

	movement, err := s.txRepo.GetStockMovement(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}
	requests, err := s.orderRepo.CountCreatedByDay(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]int, len(movement))
	for i, m := range movement {
		byDate[m.Date] = i
	}
	for _, r := range requests {
		if i, ok := byDate[r.Date]; ok {
			movement[i].OrderRequests = r.Count
			continue
		}
		movement = append(movement, repository.StockMovementData{Date: r.Date, OrderRequests: r.Count})
	}

	sort.Slice(movement, func(i, j int) bool { return movement[i].Date < movement[j].Date })
	return movement, nil
}

func (s *dashboardService) GetDashboardStats(ctx context.Context) (*repository.DashboardStats, error) {
	return s.txRepo.GetDashboardStats(ctx)
}
