package service

import (
	"time"

	"go-flowcash/internal/repository"
)

type DashboardService interface {
	GetStats() (*repository.DashboardStats, error)
	GetSalesMovement(days int) ([]repository.SalesMovementData, error)
}

type dashboardService struct {
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
}

func NewDashboardService(pRepo repository.ProductRepository, oRepo repository.OrderRepository) DashboardService {
	return &dashboardService{productRepo: pRepo, orderRepo: oRepo}
}

func (s *dashboardService) GetStats() (*repository.DashboardStats, error) {
	stats, err := s.productRepo.GetDashboardStats()
	if err != nil {
		return nil, storage("dashboard stats", err)
	}
	return stats, nil
}

func (s *dashboardService) GetSalesMovement(days int) ([]repository.SalesMovementData, error) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)

	movement, err := s.orderRepo.GetSalesMovement(startDate, endDate)
	if err != nil {
		return nil, storage("sales movement", err)
	}
	return movement, nil
}
