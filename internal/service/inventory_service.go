package service

import (
	"errors"
	"strconv"

	"go-flowcash/internal/model"
	"go-flowcash/internal/repository"
	"go-flowcash/internal/ws"
	"go-flowcash/pkg/money"
	"go-flowcash/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InventoryService interface {
	CreateProduct(in *model.ProductInput) (*model.Product, error)
	EditProduct(id uint, in *model.ProductInput) (*model.Product, error)
	Replenish(id uint, in *model.ReplenishInput) (*model.Product, error)
	DeleteProduct(id uint) error
	Sell(in *model.SaleInput) (*model.SaleOrder, error)
	ResetAll() error
	ListProducts() ([]model.Product, error)
	ListOrders() ([]model.SaleOrder, error)
	GetOrder(id uint) (*model.SaleOrder, error)
}

type inventoryService struct {
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	db          *gorm.DB
	hub         *ws.Hub
}

func NewInventoryService(pRepo repository.ProductRepository, oRepo repository.OrderRepository, db *gorm.DB, hub *ws.Hub) InventoryService {
	return &inventoryService{
		productRepo: pRepo,
		orderRepo:   oRepo,
		db:          db,
		hub:         hub,
	}
}

// buildProduct validates raw form input and converts the string count/cost
// fields into their storage types.
func (s *inventoryService) buildProduct(in *model.ProductInput) (*model.Product, error) {
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		first := errs[0]
		return nil, invalid(first.FailedField, "failed on '"+first.Tag+"'")
	}

	count, err := strconv.Atoi(in.Count)
	if err != nil || count < 0 {
		return nil, invalid("count", "must be a non-negative integer")
	}

	cost, err := money.Parse(in.UnitCost)
	if err != nil || cost.IsNegative() {
		return nil, invalid("unit_cost", "must be a non-negative amount")
	}

	return &model.Product{Name: in.Name, Count: count, UnitCost: cost}, nil
}

func (s *inventoryService) CreateProduct(in *model.ProductInput) (*model.Product, error) {
	product, err := s.buildProduct(in)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Create(product); err != nil {
		return nil, storage("create product", err)
	}

	s.hub.Publish(ws.EventProductCreated, product)
	return product, nil
}

// EditProduct is a full overwrite of the mutable fields. Unlike delete, a
// missing target is an error here.
func (s *inventoryService) EditProduct(id uint, in *model.ProductInput) (*model.Product, error) {
	existing, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storage("find product", err)
	}

	next, err := s.buildProduct(in)
	if err != nil {
		return nil, err
	}

	existing.Name = next.Name
	existing.Count = next.Count
	existing.UnitCost = next.UnitCost

	if err := s.productRepo.Update(existing); err != nil {
		return nil, storage("update product", err)
	}

	s.hub.Publish(ws.EventProductUpdated, existing)
	return existing, nil
}

func (s *inventoryService) Replenish(id uint, in *model.ReplenishInput) (*model.Product, error) {
	added, err := strconv.Atoi(in.Amount)
	if err != nil || added <= 0 {
		return nil, invalid("amount", "must be a positive integer")
	}

	rows, err := s.productRepo.AddStock(id, added)
	if err != nil {
		return nil, storage("replenish product", err)
	}
	if rows == 0 {
		return nil, ErrNotFound
	}

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, storage("reload product", err)
	}

	s.hub.Publish(ws.EventProductUpdated, product)
	return product, nil
}

// DeleteProduct is idempotent: removing a product that is already gone is a
// no-op, not an error.
func (s *inventoryService) DeleteProduct(id uint) error {
	rows, err := s.productRepo.Delete(id)
	if err != nil {
		return storage("delete product", err)
	}
	if rows > 0 {
		s.hub.Publish(ws.EventProductDeleted, map[string]uint{"id": id})
	}
	return nil
}

// Sell decrements stock and records the sale order in one transaction. The
// decrement is a guarded single statement, so two concurrent sales can
// never drive the count below zero.
func (s *inventoryService) Sell(in *model.SaleInput) (*model.SaleOrder, error) {
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		first := errs[0]
		return nil, invalid(first.FailedField, "failed on '"+first.Tag+"'")
	}

	quantity, err := strconv.Atoi(in.Quantity)
	if err != nil || quantity <= 0 {
		return nil, invalid("quantity", "must be a positive integer")
	}

	var order *model.SaleOrder
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var product model.Product
		if err := tx.First(&product, "id = ?", in.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		rows, err := s.productRepo.TakeStock(tx, product.ID, quantity)
		if err != nil {
			return err
		}
		if rows == 0 {
			return &InsufficientStockError{
				ProductID: product.ID,
				Requested: quantity,
				Available: product.Count,
			}
		}

		order = &model.SaleOrder{
			ProductID:     product.ID,
			ReceiptNumber: uuid.New().String(),
			ClientName:    in.ClientName,
			Quantity:      quantity,
			UnitCost:      product.UnitCost, // snapshot, survives later price edits
		}
		if err := s.orderRepo.Create(tx, order); err != nil {
			return err
		}
		order.Product = product
		return nil
	})

	if err != nil {
		var stockErr *InsufficientStockError
		if errors.Is(err, ErrNotFound) || errors.As(err, &stockErr) {
			return nil, err
		}
		return nil, storage("record sale", err)
	}

	s.hub.Publish(ws.EventSaleRecorded, order)
	return order, nil
}

// ResetAll empties the inventory. An already-empty store is reported as
// ErrNothingToReset so the caller can show a notice instead of a failure.
func (s *inventoryService) ResetAll() error {
	rows, err := s.productRepo.DeleteAll()
	if err != nil {
		return storage("reset inventory", err)
	}
	if rows == 0 {
		return ErrNothingToReset
	}

	s.hub.Publish(ws.EventInventoryReset, map[string]int64{"removed": rows})
	return nil
}

func (s *inventoryService) ListProducts() ([]model.Product, error) {
	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, storage("list products", err)
	}
	return products, nil
}

func (s *inventoryService) ListOrders() ([]model.SaleOrder, error) {
	orders, err := s.orderRepo.FindAll()
	if err != nil {
		return nil, storage("list orders", err)
	}
	return orders, nil
}

func (s *inventoryService) GetOrder(id uint) (*model.SaleOrder, error) {
	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storage("find order", err)
	}
	return order, nil
}
