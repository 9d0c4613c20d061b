package repository

import (
	"go-flowcash/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CashflowRepository interface {
	Create(entry *model.CashflowEntry) error
	FindAll() ([]model.CashflowEntry, error)
	FindByID(id uint) (*model.CashflowEntry, error)
	UpdateFields(id uint, fields map[string]interface{}) (int64, error)
	Delete(id uint) (int64, error)
	DeleteAll() (int64, error)

	DailyFlow() ([]DailyFlowRow, error)
	MonthlyFlow() ([]MonthlyFlowRow, error)
	MethodFlow() ([]MethodFlowRow, error)
	AnnualFlow() ([]AnnualFlowRow, error)
	CumulativeIn() ([]CumulativeRow, error)
	CumulativeOut() ([]CumulativeRow, error)
	CumulativeNet() ([]NetSummaryRow, error)
}

// DailyFlowRow is one line of the daily_flow view.
type DailyFlowRow struct {
	Date     string          `json:"date"`
	TotalIn  decimal.Decimal `json:"total_in"`
	TotalOut decimal.Decimal `json:"total_out"`
	Balance  decimal.Decimal `json:"balance"`
}

// MonthlyFlowRow is one line of the monthly_flow view. Month is "YYYY-MM".
type MonthlyFlowRow struct {
	Month    string          `json:"month"`
	TotalIn  decimal.Decimal `json:"total_in"`
	TotalOut decimal.Decimal `json:"total_out"`
	Balance  decimal.Decimal `json:"balance"`
}

// MethodFlowRow is one line of the method_flow view.
type MethodFlowRow struct {
	Method   string          `json:"method"`
	TotalIn  decimal.Decimal `json:"total_in"`
	TotalOut decimal.Decimal `json:"total_out"`
	Balance  decimal.Decimal `json:"balance"`
}

// AnnualFlowRow is one line of the annual_flow view. Income only.
type AnnualFlowRow struct {
	Year    string          `json:"year"`
	TotalIn decimal.Decimal `json:"total_in"`
}

// CumulativeRow is the single-row result of cumulative_in / cumulative_out.
type CumulativeRow struct {
	Date  string          `json:"date"`
	Total decimal.Decimal `json:"total"`
}

// NetSummaryRow is the single-row result of cumulative_net.
type NetSummaryRow struct {
	Date     string          `json:"date"`
	TotalIn  decimal.Decimal `json:"total_in"`
	TotalOut decimal.Decimal `json:"total_out"`
	Balance  decimal.Decimal `json:"balance"`
}

type cashflowRepo struct {
	db *gorm.DB
}

func NewCashflowRepo(db *gorm.DB) CashflowRepository {
	return &cashflowRepo{db}
}

func (r *cashflowRepo) Create(entry *model.CashflowEntry) error {
	return r.db.Create(entry).Error
}

func (r *cashflowRepo) FindAll() ([]model.CashflowEntry, error) {
	var entries []model.CashflowEntry
	err := r.db.Order("created_at DESC").Find(&entries).Error
	return entries, err
}

func (r *cashflowRepo) FindByID(id uint) (*model.CashflowEntry, error) {
	var entry model.CashflowEntry
	if err := r.db.First(&entry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpdateFields performs a column-scoped update, which is what keeps
// created_at immutable: it is simply never in the map.
func (r *cashflowRepo) UpdateFields(id uint, fields map[string]interface{}) (int64, error) {
	res := r.db.Model(&model.CashflowEntry{}).Where("id = ?", id).Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *cashflowRepo) Delete(id uint) (int64, error) {
	res := r.db.Delete(&model.CashflowEntry{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *cashflowRepo) DeleteAll() (int64, error) {
	res := r.db.Where("1 = 1").Delete(&model.CashflowEntry{})
	return res.RowsAffected, res.Error
}

func (r *cashflowRepo) DailyFlow() ([]DailyFlowRow, error) {
	var rows []DailyFlowRow
	err := r.db.Raw(`SELECT date, total_in, total_out, balance FROM daily_flow ORDER BY date DESC`).Scan(&rows).Error
	return rows, err
}

func (r *cashflowRepo) MonthlyFlow() ([]MonthlyFlowRow, error) {
	var rows []MonthlyFlowRow
	err := r.db.Raw(`SELECT month, total_in, total_out, balance FROM monthly_flow ORDER BY month DESC`).Scan(&rows).Error
	return rows, err
}

func (r *cashflowRepo) MethodFlow() ([]MethodFlowRow, error) {
	var rows []MethodFlowRow
	err := r.db.Raw(`SELECT method, total_in, total_out, balance FROM method_flow ORDER BY balance DESC`).Scan(&rows).Error
	return rows, err
}

func (r *cashflowRepo) AnnualFlow() ([]AnnualFlowRow, error) {
	var rows []AnnualFlowRow
	err := r.db.Raw(`SELECT year, total_in FROM annual_flow ORDER BY year DESC`).Scan(&rows).Error
	return rows, err
}

func (r *cashflowRepo) CumulativeIn() ([]CumulativeRow, error) {
	return r.cumulative("cumulative_in")
}

func (r *cashflowRepo) CumulativeOut() ([]CumulativeRow, error) {
	return r.cumulative("cumulative_out")
}

// cumulative reads a single-row sum view. With no entries the SUM comes
// back NULL; that row is dropped so callers see an empty sequence instead
// of a zero-value placeholder.
func (r *cashflowRepo) cumulative(view string) ([]CumulativeRow, error) {
	var raw []struct {
		Date  string
		Total decimal.NullDecimal
	}
	if err := r.db.Raw(`SELECT date, total FROM ` + view).Scan(&raw).Error; err != nil {
		return nil, err
	}

	rows := make([]CumulativeRow, 0, len(raw))
	for _, row := range raw {
		if !row.Total.Valid {
			continue
		}
		rows = append(rows, CumulativeRow{Date: row.Date, Total: row.Total.Decimal})
	}
	return rows, nil
}

func (r *cashflowRepo) CumulativeNet() ([]NetSummaryRow, error) {
	var raw []struct {
		Date     string
		TotalIn  decimal.NullDecimal
		TotalOut decimal.NullDecimal
		Balance  decimal.NullDecimal
	}
	if err := r.db.Raw(`SELECT date, total_in, total_out, balance FROM cumulative_net`).Scan(&raw).Error; err != nil {
		return nil, err
	}

	rows := make([]NetSummaryRow, 0, len(raw))
	for _, row := range raw {
		if !row.Balance.Valid {
			continue
		}
		rows = append(rows, NetSummaryRow{
			Date:     row.Date,
			TotalIn:  row.TotalIn.Decimal,
			TotalOut: row.TotalOut.Decimal,
			Balance:  row.Balance.Decimal,
		})
	}
	return rows, nil
}
