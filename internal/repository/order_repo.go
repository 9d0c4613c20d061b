package repository

import (
	"time"

	"go-flowcash/internal/model"

	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(tx *gorm.DB, order *model.SaleOrder) error
	FindAll() ([]model.SaleOrder, error)
	FindByID(id uint) (*model.SaleOrder, error)
	GetSalesMovement(startDate, endDate time.Time) ([]SalesMovementData, error)
}

// SalesMovementData is one chart point: sales recorded on a calendar day.
type SalesMovementData struct {
	Date   string `json:"date"`
	Orders int    `json:"orders"`
	Units  int    `json:"units"`
}

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) OrderRepository {
	return &orderRepo{db}
}

// Create runs on the caller's transaction so the order row and the stock
// decrement commit together.
func (r *orderRepo) Create(tx *gorm.DB, order *model.SaleOrder) error {
	return tx.Create(order).Error
}

func (r *orderRepo) FindAll() ([]model.SaleOrder, error) {
	var orders []model.SaleOrder
	err := r.db.Preload("Product").Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepo) FindByID(id uint) (*model.SaleOrder, error) {
	var order model.SaleOrder
	if err := r.db.Preload("Product").First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) GetSalesMovement(startDate, endDate time.Time) ([]SalesMovementData, error) {
	var results []SalesMovementData

	rows, err := r.db.Model(&model.SaleOrder{}).
		Select(`
			DATE(created_at) as date,
			COUNT(*) as orders,
			COALESCE(SUM(quantity), 0) as units
		`).
		Where("created_at BETWEEN ? AND ?", startDate, endDate).
		Group("DATE(created_at)").
		Order("date ASC").
		Rows()

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data SalesMovementData
		if err := rows.Scan(&data.Date, &data.Orders, &data.Units); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, rows.Err()
}
