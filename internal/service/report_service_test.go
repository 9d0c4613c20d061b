package service_test

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"go-flowcash/internal/model"
	"go-flowcash/internal/service"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// seedMarch records one entrada and one saida on the same day.
func seedMarch(t *testing.T, cashflow service.CashflowService) {
	t.Helper()

	_, err := cashflow.Record(&model.CashflowInput{
		Description:     "Venda",
		Type:            "entrada",
		Amount:          "150,00",
		Method:          "pix",
		TransactionDate: "2024-03-01",
	})
	if err != nil {
		t.Fatalf("seed entrada: %v", err)
	}

	_, err = cashflow.Record(&model.CashflowInput{
		Description:     "Compra",
		Type:            "saida",
		Amount:          "30,50",
		Method:          "dinheiro",
		TransactionDate: "2024-03-01",
	})
	if err != nil {
		t.Fatalf("seed saida: %v", err)
	}
}

func eq(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}

func TestGetAggregates(t *testing.T) {
	reports, cashflow, _ := newReportService(t)
	seedMarch(t, cashflow)

	agg, err := reports.GetAggregates()
	if err != nil {
		t.Fatalf("GetAggregates: %v", err)
	}

	if len(agg.Daily) != 1 {
		t.Fatalf("Daily rows = %d, want 1", len(agg.Daily))
	}
	d := agg.Daily[0]
	if d.Date != "2024-03-01" {
		t.Errorf("Daily date = %q", d.Date)
	}
	eq(t, "daily TotalIn", d.TotalIn, "150.00")
	eq(t, "daily TotalOut", d.TotalOut, "30.50")
	eq(t, "daily Balance", d.Balance, "119.50")

	if len(agg.Monthly) != 1 || agg.Monthly[0].Month != "2024-03" {
		t.Fatalf("Monthly = %+v", agg.Monthly)
	}
	eq(t, "monthly Balance", agg.Monthly[0].Balance, "119.50")

	if len(agg.Method) != 2 {
		t.Fatalf("Method rows = %d, want 2", len(agg.Method))
	}
	byMethod := map[string]decimal.Decimal{}
	for _, m := range agg.Method {
		byMethod[m.Method] = m.Balance
	}
	eq(t, "pix balance", byMethod["pix"], "150.00")
	eq(t, "dinheiro balance", byMethod["dinheiro"], "-30.50")

	// Annual aggregates income only.
	if len(agg.Annual) != 1 || agg.Annual[0].Year != "2024" {
		t.Fatalf("Annual = %+v", agg.Annual)
	}
	eq(t, "annual TotalIn", agg.Annual[0].TotalIn, "150.00")

	if len(agg.CumulativeIn) != 1 {
		t.Fatalf("CumulativeIn rows = %d, want 1", len(agg.CumulativeIn))
	}
	eq(t, "cumulative in", agg.CumulativeIn[0].Total, "150.00")
	if len(agg.CumulativeOut) != 1 {
		t.Fatalf("CumulativeOut rows = %d, want 1", len(agg.CumulativeOut))
	}
	eq(t, "cumulative out", agg.CumulativeOut[0].Total, "30.50")

	if len(agg.Summary) != 1 {
		t.Fatalf("Summary rows = %d, want 1", len(agg.Summary))
	}
	eq(t, "summary Balance", agg.Summary[0].Balance, "119.50")
}

func TestDailyMatchesCumulative(t *testing.T) {
	reports, cashflow, _ := newReportService(t)

	entries := []model.CashflowInput{
		{Description: "a", Type: "entrada", Amount: "100,00", Method: "pix", TransactionDate: "2024-01-10"},
		{Description: "b", Type: "saida", Amount: "40,00", Method: "cartao", TransactionDate: "2024-01-10"},
		{Description: "c", Type: "entrada", Amount: "25,50", Method: "dinheiro", TransactionDate: "2024-02-03"},
		{Description: "d", Type: "saida", Amount: "5,25", Method: "transferencia", TransactionDate: "2024-02-20"},
	}
	for i := range entries {
		if _, err := cashflow.Record(&entries[i]); err != nil {
			t.Fatalf("Record %d: %v", i, err)
		}
	}

	agg, err := reports.GetAggregates()
	if err != nil {
		t.Fatalf("GetAggregates: %v", err)
	}

	var sumIn, sumOut decimal.Decimal
	for _, d := range agg.Daily {
		if !d.Balance.Equal(d.TotalIn.Sub(d.TotalOut)) {
			t.Errorf("day %s: balance %s != in %s - out %s", d.Date, d.Balance, d.TotalIn, d.TotalOut)
		}
		sumIn = sumIn.Add(d.TotalIn)
		sumOut = sumOut.Add(d.TotalOut)
	}

	if len(agg.CumulativeIn) != 1 || !agg.CumulativeIn[0].Total.Equal(sumIn) {
		t.Errorf("cumulative in %+v, daily sum %s", agg.CumulativeIn, sumIn)
	}
	if len(agg.CumulativeOut) != 1 || !agg.CumulativeOut[0].Total.Equal(sumOut) {
		t.Errorf("cumulative out %+v, daily sum %s", agg.CumulativeOut, sumOut)
	}
	if len(agg.Summary) != 1 || !agg.Summary[0].Balance.Equal(sumIn.Sub(sumOut)) {
		t.Errorf("summary %+v, want balance %s", agg.Summary, sumIn.Sub(sumOut))
	}

	// Daily rows come back newest first.
	if len(agg.Daily) != 3 || agg.Daily[0].Date != "2024-02-20" || agg.Daily[2].Date != "2024-01-10" {
		t.Errorf("daily order = %+v", agg.Daily)
	}
}

func TestGetAggregatesEmptyLedger(t *testing.T) {
	reports, _, _ := newReportService(t)

	agg, err := reports.GetAggregates()
	if err != nil {
		t.Fatalf("GetAggregates: %v", err)
	}

	if len(agg.Daily) != 0 || len(agg.Monthly) != 0 || len(agg.Method) != 0 || len(agg.Annual) != 0 {
		t.Errorf("grouped aggregates not empty: %+v", agg)
	}
	// The single-row sum views come back NULL on an empty table and are
	// dropped, not zero-filled.
	if len(agg.CumulativeIn) != 0 || len(agg.CumulativeOut) != 0 || len(agg.Summary) != 0 {
		t.Errorf("cumulative aggregates not empty: %+v", agg)
	}
}

func TestAggregatesAfterReset(t *testing.T) {
	reports, cashflow, _ := newReportService(t)
	seedMarch(t, cashflow)

	if err := cashflow.ResetAll(); err != nil {
		t.Fatalf("ResetAll: %v", err)
	}

	agg, err := reports.GetAggregates()
	if err != nil {
		t.Fatalf("GetAggregates: %v", err)
	}
	if len(agg.Daily) != 0 || len(agg.Summary) != 0 {
		t.Errorf("aggregates survived reset: %+v", agg)
	}
}

func TestRebuildViews(t *testing.T) {
	reports, cashflow, _ := newReportService(t)
	seedMarch(t, cashflow)

	if err := reports.RebuildViews(); err != nil {
		t.Fatalf("RebuildViews: %v", err)
	}

	agg, err := reports.GetAggregates()
	if err != nil {
		t.Fatalf("GetAggregates after rebuild: %v", err)
	}
	if len(agg.Daily) != 1 {
		t.Errorf("Daily rows = %d after rebuild, want 1", len(agg.Daily))
	}
}

func TestExportCSV(t *testing.T) {
	reports, cashflow, _ := newReportService(t)
	seedMarch(t, cashflow)

	data, err := reports.ExportCSV()
	if err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}

	wantHeader := []string{"Tipo", "Período/Data", "Entradas", "Saídas", "Saldo"}
	for i, col := range wantHeader {
		if records[0][i] != col {
			t.Errorf("header[%d] = %q, want %q", i, records[0][i], col)
		}
	}

	want := map[string][]string{
		"Diário": {"Diário", "01/03/2024", "150.00", "30.50", "119.50"},
		"Mensal": {"Mensal", "03/2024", "150.00", "30.50", "119.50"},
		"Anual":  {"Anual", "2024", "150.00", "0.00", "150.00"},
	}
	seen := map[string]bool{}
	for _, rec := range records[1:] {
		expected, ok := want[rec[0]]
		if !ok {
			continue
		}
		seen[rec[0]] = true
		for i := range expected {
			if rec[i] != expected[i] {
				t.Errorf("%s row col %d = %q, want %q", rec[0], i, rec[i], expected[i])
			}
		}
	}
	for tipo := range want {
		if !seen[tipo] {
			t.Errorf("missing %s row", tipo)
		}
	}
}

func TestExportXLSX(t *testing.T) {
	reports, cashflow, _ := newReportService(t)
	seedMarch(t, cashflow)

	data, err := reports.ExportXLSX()
	if err != nil {
		t.Fatalf("ExportXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open xlsx: %v", err)
	}
	defer f.Close()

	got, err := f.GetCellValue("Relatório", "A1")
	if err != nil {
		t.Fatalf("read cell: %v", err)
	}
	if got != "Tipo" {
		t.Errorf("A1 = %q, want Tipo", got)
	}

	rows, err := f.GetRows("Relatório")
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) < 2 {
		t.Fatalf("xlsx has %d rows, want header plus data", len(rows))
	}
}

func TestExportProductsCSV(t *testing.T) {
	reports, _, inventory := newReportService(t)

	if _, err := inventory.CreateProduct(&model.ProductInput{Name: "Ração Premium", Count: "10", UnitCost: "1.234,56"}); err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	data, err := reports.ExportProductsCSV()
	if err != nil {
		t.Fatalf("ExportProductsCSV: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}

	wantHeader := []string{"ID", "Nome do Produto", "Quantidade", "Custo (R$)"}
	for i, col := range wantHeader {
		if records[0][i] != col {
			t.Errorf("header[%d] = %q, want %q", i, records[0][i], col)
		}
	}

	if len(records) != 2 {
		t.Fatalf("rows = %d, want 2", len(records))
	}
	row := records[1]
	if row[1] != "Ração Premium" || row[2] != "10" || row[3] != "1234.56" {
		t.Errorf("product row = %v", row)
	}
}

func TestBuildFinancialReportHTML(t *testing.T) {
	reports, cashflow, _ := newReportService(t)
	seedMarch(t, cashflow)

	html, err := reports.BuildFinancialReportHTML()
	if err != nil {
		t.Fatalf("BuildFinancialReportHTML: %v", err)
	}

	doc := string(html)
	for _, want := range []string{
		"Relatório Financeiro",
		"Fluxo Diário",
		"Fluxo Mensal",
		"Fluxo por Método",
		"Fluxo Anual",
		"R$ 150.00",
		"R$ 30.50",
		"R$ 119.50",
		"Saldo Geral",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestBuildFinancialReportHTMLEmpty(t *testing.T) {
	reports, _, _ := newReportService(t)

	html, err := reports.BuildFinancialReportHTML()
	if err != nil {
		t.Fatalf("BuildFinancialReportHTML: %v", err)
	}

	doc := string(html)
	if !strings.Contains(doc, "Sem dados para Fluxo Diário") {
		t.Error("empty report missing placeholder text")
	}
	if strings.Contains(doc, "Saldo Geral") {
		t.Error("empty report rendered a summary block")
	}
}

func TestBuildReceiptHTML(t *testing.T) {
	reports, _, inventory := newReportService(t)

	product, err := inventory.CreateProduct(&model.ProductInput{Name: "Ração", Count: "10", UnitCost: "25,00"})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	order, err := inventory.Sell(&model.SaleInput{ProductID: product.ID, ClientName: "Maria Silva", Quantity: "4"})
	if err != nil {
		t.Fatalf("Sell: %v", err)
	}

	html, err := reports.BuildReceiptHTML(order.ID)
	if err != nil {
		t.Fatalf("BuildReceiptHTML: %v", err)
	}

	doc := string(html)
	for _, want := range []string{
		"Boleto de Venda",
		order.ReceiptNumber,
		"Maria Silva",
		"Ração",
		"R$ 25.00",
		"R$ 100.00",
		order.CreatedAt.Format("02/01/2006"),
		order.CreatedAt.AddDate(0, 0, 3).Format("02/01/2006"),
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("receipt missing %q", want)
		}
	}
}

func TestBuildReceiptHTMLNotFound(t *testing.T) {
	reports, _, _ := newReportService(t)

	_, err := reports.BuildReceiptHTML(999)
	if !errors.Is(err, service.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}
