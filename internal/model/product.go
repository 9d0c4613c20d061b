package model

import "github.com/shopspring/decimal"

// Product is one inventory line. Count never goes negative: every stock
// mutation is a guarded single-statement update.
type Product struct {
	BaseModel
	Name     string          `gorm:"type:varchar(255);not null" json:"name"`
	Count    int             `gorm:"not null;default:0;check:count >= 0" json:"count"`
	UnitCost decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_cost"`
}

// ProductInput carries the raw form values for create and edit. Count and
// UnitCost arrive as the strings the user typed; the service normalizes
// them before anything is written.
type ProductInput struct {
	Name     string `json:"name" validate:"required"`
	Count    string `json:"count" validate:"required"`
	UnitCost string `json:"unit_cost" validate:"required,brl"`
}

// ReplenishInput carries the raw quantity to add to stock.
type ReplenishInput struct {
	Amount string `json:"amount" validate:"required"`
}
