package repository

import (
	"go-flowcash/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	FindByID(id uint) (*model.Product, error)
	Update(product *model.Product) error
	Delete(id uint) (int64, error)
	DeleteAll() (int64, error)
	AddStock(id uint, added int) (int64, error)
	TakeStock(tx *gorm.DB, id uint, quantity int) (int64, error)
	GetDashboardStats() (*DashboardStats, error)
}

// DashboardStats is the inventory overview block.
type DashboardStats struct {
	TotalProducts  int64           `json:"total_products"`
	LowStockCount  int64           `json:"low_stock_count"`
	TotalValuation decimal.Decimal `json:"total_valuation"`
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

// FindAll returns the full current snapshot in insertion order.
func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Order("id ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uint) (*model.Product, error) {
	var product model.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepo) Delete(id uint) (int64, error) {
	res := r.db.Delete(&model.Product{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *productRepo) DeleteAll() (int64, error) {
	res := r.db.Where("1 = 1").Delete(&model.Product{})
	return res.RowsAffected, res.Error
}

// AddStock increments count in a single statement so a concurrent replenish
// and sale on the same product never lose a write.
func (r *productRepo) AddStock(id uint, added int) (int64, error) {
	res := r.db.Model(&model.Product{}).
		Where("id = ?", id).
		Update("count", gorm.Expr("count + ?", added))
	return res.RowsAffected, res.Error
}

// TakeStock decrements count only when enough stock remains. Zero rows
// affected means the stock guard (or the id) failed; the caller tells the
// two apart.
func (r *productRepo) TakeStock(tx *gorm.DB, id uint, quantity int) (int64, error) {
	res := tx.Model(&model.Product{}).
		Where("id = ? AND count >= ?", id, quantity).
		Update("count", gorm.Expr("count - ?", quantity))
	return res.RowsAffected, res.Error
}

func (r *productRepo) GetDashboardStats() (*DashboardStats, error) {
	var stats DashboardStats

	if err := r.db.Model(&model.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}

	// Low stock threshold (count < 10)
	if err := r.db.Model(&model.Product{}).Where("count < ?", 10).Count(&stats.LowStockCount).Error; err != nil {
		return nil, err
	}

	// Total valuation (SUM of count * unit_cost)
	if err := r.db.Model(&model.Product{}).
		Select("COALESCE(SUM(count * unit_cost), 0)").
		Scan(&stats.TotalValuation).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
