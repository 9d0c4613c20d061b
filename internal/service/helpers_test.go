package service_test

import (
	"testing"

	"go-flowcash/internal/model"
	"go-flowcash/internal/repository"
	"go-flowcash/internal/service"
	"go-flowcash/internal/ws"
	"go-flowcash/pkg/database"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// openTestDB opens an in-memory sqlite database. The pool is capped at one
// connection because each pooled connection would otherwise get its own
// private :memory: database.
func openTestDB(t *testing.T, models ...interface{}) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("access pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(models...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func openProductsDB(t *testing.T) *gorm.DB {
	t.Helper()
	return openTestDB(t, &model.Product{}, &model.SaleOrder{}, &model.User{})
}

func openCashflowDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := openTestDB(t, &model.CashflowEntry{})
	if err := database.MigrateCashflowViews(db); err != nil {
		t.Fatalf("migrate views: %v", err)
	}
	return db
}

func newInventoryService(t *testing.T) (service.InventoryService, *gorm.DB) {
	t.Helper()
	db := openProductsDB(t)
	productRepo := repository.NewProductRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	return service.NewInventoryService(productRepo, orderRepo, db, ws.NewHub()), db
}

func newCashflowService(t *testing.T) (service.CashflowService, *gorm.DB) {
	t.Helper()
	db := openCashflowDB(t)
	return service.NewCashflowService(repository.NewCashflowRepo(db), ws.NewHub()), db
}

func newReportService(t *testing.T) (service.ReportService, service.CashflowService, service.InventoryService) {
	t.Helper()
	cashflowDB := openCashflowDB(t)
	productsDB := openProductsDB(t)

	cashflowRepo := repository.NewCashflowRepo(cashflowDB)
	productRepo := repository.NewProductRepo(productsDB)
	orderRepo := repository.NewOrderRepo(productsDB)

	reports := service.NewReportService(cashflowRepo, productRepo, orderRepo, cashflowDB)
	cashflow := service.NewCashflowService(cashflowRepo, ws.NewHub())
	inventory := service.NewInventoryService(productRepo, orderRepo, productsDB, ws.NewHub())
	return reports, cashflow, inventory
}
