package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type EntryType string

const (
	EntryIn  EntryType = "entrada"
	EntryOut EntryType = "saida"
)

type PaymentMethod string

const (
	MethodPix      PaymentMethod = "pix"
	MethodCard     PaymentMethod = "cartao"
	MethodCash     PaymentMethod = "dinheiro"
	MethodTransfer PaymentMethod = "transferencia"
)

// CashflowEntry is one ledger line. Amount is always a positive magnitude;
// the sign is implied by Type when aggregating. CreatedAt is set once at
// insertion and never touched again — updates are column-scoped.
type CashflowEntry struct {
	ID              uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Description     string          `gorm:"not null" json:"description"`
	Type            EntryType       `gorm:"type:varchar(10);not null;check:chk_cashflow_type,type IN ('entrada','saida')" json:"type"`
	Amount          decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Method          PaymentMethod   `gorm:"type:varchar(20);not null" json:"method"`
	TransactionDate string          `gorm:"type:date;not null;index" json:"transaction_date"`
	CreatedAt       time.Time       `json:"created_at"`
}

// CashflowInput carries the raw form values for record and update.
type CashflowInput struct {
	Description     string `json:"description" validate:"required"`
	Type            string `json:"type" validate:"required,oneof=entrada saida"`
	Amount          string `json:"amount" validate:"required,brl"`
	Method          string `json:"method" validate:"required,oneof=pix cartao dinheiro transferencia"`
	TransactionDate string `json:"transaction_date" validate:"required,datetime=2006-01-02"`
}
