package model

import "github.com/shopspring/decimal"

// SaleOrder is the persisted record of a sale. UnitCost is the price
// captured at sale time, not a live reference, so receipts stay correct
// after later product edits.
type SaleOrder struct {
	BaseModel
	ProductID     uint            `gorm:"not null;index" json:"product_id"`
	Product       Product         `json:"product,omitempty"`
	ReceiptNumber string          `gorm:"type:varchar(64);uniqueIndex;not null" json:"receipt_number"`
	ClientName    string          `gorm:"type:varchar(255);not null" json:"client_name"`
	Quantity      int             `gorm:"not null" json:"quantity"`
	UnitCost      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_cost"`
}

// Total is the receipt total: quantity times the captured unit cost.
func (o SaleOrder) Total() decimal.Decimal {
	return o.UnitCost.Mul(decimal.NewFromInt(int64(o.Quantity)))
}

// SaleInput carries the raw point-of-sale form values.
type SaleInput struct {
	ProductID  uint   `json:"product_id" validate:"required"`
	ClientName string `json:"client_name" validate:"required"`
	Quantity   string `json:"quantity" validate:"required"`
}
