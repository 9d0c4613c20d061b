package service

import (
	"go-flowcash/internal/model"
	"go-flowcash/internal/repository"
	"go-flowcash/internal/ws"
	"go-flowcash/pkg/money"
	"go-flowcash/pkg/validator"

	"github.com/shopspring/decimal"
)

type CashflowService interface {
	Record(in *model.CashflowInput) (*model.CashflowEntry, error)
	Update(id uint, in *model.CashflowInput) (*model.CashflowEntry, error)
	Delete(id uint) error
	ResetAll() error
	ListAll() ([]model.CashflowEntry, error)
}

type cashflowService struct {
	repo repository.CashflowRepository
	hub  *ws.Hub
}

func NewCashflowService(repo repository.CashflowRepository, hub *ws.Hub) CashflowService {
	return &cashflowService{repo: repo, hub: hub}
}

// parseAmount normalizes the locale-formatted string and rejects anything
// that is not a strictly positive magnitude. The sign of an entry comes
// from its type, never from the amount.
func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := money.Parse(raw)
	if err != nil {
		return decimal.Zero, invalid("amount", "must be a valid amount")
	}
	if !amount.IsPositive() {
		return decimal.Zero, invalid("amount", "must be greater than zero")
	}
	return amount, nil
}

func validateEntry(in *model.CashflowInput) error {
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		first := errs[0]
		return invalid(first.FailedField, "failed on '"+first.Tag+"'")
	}
	return nil
}

func (s *cashflowService) Record(in *model.CashflowInput) (*model.CashflowEntry, error) {
	if err := validateEntry(in); err != nil {
		return nil, err
	}
	amount, err := parseAmount(in.Amount)
	if err != nil {
		return nil, err
	}

	entry := &model.CashflowEntry{
		Description:     in.Description,
		Type:            model.EntryType(in.Type),
		Amount:          amount,
		Method:          model.PaymentMethod(in.Method),
		TransactionDate: in.TransactionDate,
	}
	if err := s.repo.Create(entry); err != nil {
		return nil, storage("record entry", err)
	}

	s.hub.Publish(ws.EventCashflowRecorded, entry)
	return entry, nil
}

// Update overwrites every user-editable field. The column-scoped update in
// the repository leaves created_at untouched.
func (s *cashflowService) Update(id uint, in *model.CashflowInput) (*model.CashflowEntry, error) {
	if err := validateEntry(in); err != nil {
		return nil, err
	}
	amount, err := parseAmount(in.Amount)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.UpdateFields(id, map[string]interface{}{
		"description":      in.Description,
		"type":             in.Type,
		"amount":           amount,
		"method":           in.Method,
		"transaction_date": in.TransactionDate,
	})
	if err != nil {
		return nil, storage("update entry", err)
	}
	if rows == 0 {
		return nil, ErrNotFound
	}

	entry, err := s.repo.FindByID(id)
	if err != nil {
		return nil, storage("reload entry", err)
	}

	s.hub.Publish(ws.EventCashflowUpdated, entry)
	return entry, nil
}

// Delete is idempotent.
func (s *cashflowService) Delete(id uint) error {
	rows, err := s.repo.Delete(id)
	if err != nil {
		return storage("delete entry", err)
	}
	if rows > 0 {
		s.hub.Publish(ws.EventCashflowDeleted, map[string]uint{"id": id})
	}
	return nil
}

// ResetAll deletes every entry. The aggregate views recompute on read, so
// no separate invalidation is needed.
func (s *cashflowService) ResetAll() error {
	rows, err := s.repo.DeleteAll()
	if err != nil {
		return storage("reset cashflow", err)
	}

	s.hub.Publish(ws.EventCashflowReset, map[string]int64{"removed": rows})
	return nil
}

func (s *cashflowService) ListAll() ([]model.CashflowEntry, error) {
	entries, err := s.repo.FindAll()
	if err != nil {
		return nil, storage("list entries", err)
	}
	return entries, nil
}
