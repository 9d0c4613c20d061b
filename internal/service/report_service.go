package service

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"
	"time"

	"go-flowcash/internal/repository"
	"go-flowcash/pkg/database"
	"go-flowcash/pkg/money"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// Aggregates bundles every derived breakdown of the cashflow table. All of
// them are recomputed from the base table on each call.
type Aggregates struct {
	Daily         []repository.DailyFlowRow   `json:"daily"`
	Monthly       []repository.MonthlyFlowRow `json:"monthly"`
	Method        []repository.MethodFlowRow  `json:"method"`
	Annual        []repository.AnnualFlowRow  `json:"annual"`
	CumulativeIn  []repository.CumulativeRow  `json:"cumulative_in"`
	CumulativeOut []repository.CumulativeRow  `json:"cumulative_out"`
	Summary       []repository.NetSummaryRow  `json:"summary"`
}

type ReportService interface {
	GetAggregates() (*Aggregates, error)
	ExportCSV() ([]byte, error)
	ExportXLSX() ([]byte, error)
	ExportProductsCSV() ([]byte, error)
	BuildFinancialReportHTML() ([]byte, error)
	BuildReceiptHTML(orderID uint) ([]byte, error)
	RebuildViews() error
}

type reportService struct {
	cashflowRepo repository.CashflowRepository
	productRepo  repository.ProductRepository
	orderRepo    repository.OrderRepository
	cashflowDB   *gorm.DB
	now          func() time.Time
}

func NewReportService(cRepo repository.CashflowRepository, pRepo repository.ProductRepository, oRepo repository.OrderRepository, cashflowDB *gorm.DB) ReportService {
	return &reportService{
		cashflowRepo: cRepo,
		productRepo:  pRepo,
		orderRepo:    oRepo,
		cashflowDB:   cashflowDB,
		now:          time.Now,
	}
}

func (s *reportService) GetAggregates() (*Aggregates, error) {
	agg := &Aggregates{}
	var err error

	if agg.Daily, err = s.cashflowRepo.DailyFlow(); err != nil {
		return nil, storage("daily flow", err)
	}
	if agg.Monthly, err = s.cashflowRepo.MonthlyFlow(); err != nil {
		return nil, storage("monthly flow", err)
	}
	if agg.Method, err = s.cashflowRepo.MethodFlow(); err != nil {
		return nil, storage("method flow", err)
	}
	if agg.Annual, err = s.cashflowRepo.AnnualFlow(); err != nil {
		return nil, storage("annual flow", err)
	}
	if agg.CumulativeIn, err = s.cashflowRepo.CumulativeIn(); err != nil {
		return nil, storage("cumulative in", err)
	}
	if agg.CumulativeOut, err = s.cashflowRepo.CumulativeOut(); err != nil {
		return nil, storage("cumulative out", err)
	}
	if agg.Summary, err = s.cashflowRepo.CumulativeNet(); err != nil {
		return nil, storage("cumulative net", err)
	}

	return agg, nil
}

// RebuildViews drops and recreates every aggregate view. Data is untouched:
// the views carry no state.
func (s *reportService) RebuildViews() error {
	if err := database.DropCashflowViews(s.cashflowDB); err != nil {
		return storage("drop views", err)
	}
	if err := database.MigrateCashflowViews(s.cashflowDB); err != nil {
		return storage("recreate views", err)
	}
	return nil
}

// formatDateBR turns "2006-01-02" into "02/01/2006".
func formatDateBR(iso string) string {
	parts := strings.SplitN(iso, "-", 3)
	if len(parts) != 3 {
		return iso
	}
	return parts[2] + "/" + parts[1] + "/" + parts[0]
}

// formatMonthBR turns "2006-01" into "01/2006".
func formatMonthBR(yearMonth string) string {
	parts := strings.SplitN(yearMonth, "-", 2)
	if len(parts) != 2 {
		return yearMonth
	}
	return parts[1] + "/" + parts[0]
}

// financialRows flattens every breakdown into the shared export row format:
// Tipo, Período/Data, Entradas, Saídas, Saldo. Annual rows keep a fixed
// "0.00" saídas column because the annual view aggregates income only.
func financialRows(agg *Aggregates) [][]string {
	var rows [][]string
	for _, d := range agg.Daily {
		rows = append(rows, []string{"Diário", formatDateBR(d.Date), money.FormatCanonical(d.TotalIn), money.FormatCanonical(d.TotalOut), money.FormatCanonical(d.Balance)})
	}
	for _, m := range agg.Monthly {
		rows = append(rows, []string{"Mensal", formatMonthBR(m.Month), money.FormatCanonical(m.TotalIn), money.FormatCanonical(m.TotalOut), money.FormatCanonical(m.Balance)})
	}
	for _, f := range agg.Method {
		rows = append(rows, []string{"Método", f.Method, money.FormatCanonical(f.TotalIn), money.FormatCanonical(f.TotalOut), money.FormatCanonical(f.Balance)})
	}
	for _, a := range agg.Annual {
		rows = append(rows, []string{"Anual", a.Year, money.FormatCanonical(a.TotalIn), "0.00", money.FormatCanonical(a.TotalIn)})
	}
	return rows
}

var financialCSVHeader = []string{"Tipo", "Período/Data", "Entradas", "Saídas", "Saldo"}

func (s *reportService) ExportCSV() ([]byte, error) {
	agg, err := s.GetAggregates()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(financialCSVHeader); err != nil {
		return nil, &ExportError{Op: "csv", Err: err}
	}
	for _, row := range financialRows(agg) {
		if err := w.Write(row); err != nil {
			return nil, &ExportError{Op: "csv", Err: err}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, &ExportError{Op: "csv", Err: err}
	}
	return buf.Bytes(), nil
}

func (s *reportService) ExportXLSX() ([]byte, error) {
	agg, err := s.GetAggregates()
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Relatório"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, &ExportError{Op: "xlsx", Err: err}
	}

	write := func(rowIdx int, values []string) error {
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
		return nil
	}

	if err := write(1, financialCSVHeader); err != nil {
		return nil, &ExportError{Op: "xlsx", Err: err}
	}
	for i, row := range financialRows(agg) {
		if err := write(i+2, row); err != nil {
			return nil, &ExportError{Op: "xlsx", Err: err}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, &ExportError{Op: "xlsx", Err: err}
	}
	return buf.Bytes(), nil
}

// ExportProductsCSV dumps the current inventory snapshot.
func (s *reportService) ExportProductsCSV() ([]byte, error) {
	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, storage("list products", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"ID", "Nome do Produto", "Quantidade", "Custo (R$)"}); err != nil {
		return nil, &ExportError{Op: "products csv", Err: err}
	}
	for _, p := range products {
		row := []string{
			strconv.FormatUint(uint64(p.ID), 10),
			p.Name,
			strconv.Itoa(p.Count),
			money.FormatCanonical(p.UnitCost),
		}
		if err := w.Write(row); err != nil {
			return nil, &ExportError{Op: "products csv", Err: err}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, &ExportError{Op: "products csv", Err: err}
	}
	return buf.Bytes(), nil
}
