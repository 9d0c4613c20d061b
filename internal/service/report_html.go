package service

import (
	"bytes"
	"errors"
	"html/template"
	"strconv"

	"go-flowcash/pkg/money"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// The HTML builders produce the documents the caller hands to an external
// HTML-to-PDF collaborator. The contract ends at well-formed HTML.

type reportCell struct {
	Text  string
	Class string
}

type reportTable struct {
	Title   string
	Headers []string
	Rows    [][]reportCell
}

type summaryBlock struct {
	TotalIn      string
	TotalOut     string
	Balance      string
	BalanceClass string
}

type financialReportData struct {
	GeneratedDate string
	GeneratedTime string
	Summary       *summaryBlock
	Tables        []reportTable
}

var financialReportTmpl = template.Must(template.New("financial-report").Parse(`<html>
<head>
<meta charset="UTF-8" />
<style>
  body { font-family: 'Helvetica', 'Arial', sans-serif; padding: 20px; color: #333; }
  h1 { color: #6A1B9A; text-align: center; margin-bottom: 5px; font-size: 22px; }
  .subtitle { text-align: center; color: #666; font-size: 14px; margin-bottom: 30px; }
  h2 { color: #6A1B9A; border-bottom: 2px solid #6A1B9A; padding-bottom: 5px; margin-top: 25px; font-size: 18px; }
  table { width: 100%; border-collapse: collapse; margin-top: 10px; font-size: 14px; }
  th, td { border: 1px solid #ddd; padding: 10px; text-align: left; }
  th { background-color: #f8f9fa; color: #444; font-weight: bold; }
  tr:nth-child(even) { background-color: #f9f9f9; }
  .amount { text-align: right; font-family: 'Courier New', monospace; font-weight: 500; }
  .green { color: #2e7d32; }
  .red { color: #c62828; }
  .footer { margin-top: 50px; text-align: center; font-size: 12px; color: #999; border-top: 1px solid #eee; padding-top: 20px; }
  .summary-box { background-color: #f3e5f5; padding: 15px; border-radius: 8px; margin-bottom: 20px; }
  .summary-item { display: flex; justify-content: space-between; margin-bottom: 5px; font-size: 16px; }
  .summary-total { font-weight: bold; font-size: 18px; border-top: 1px solid #d1c4e9; padding-top: 10px; margin-top: 5px; }
</style>
</head>
<body>
  <h1>Relatório Financeiro</h1>
  <div class="subtitle">Gerado em {{.GeneratedDate}} às {{.GeneratedTime}}</div>
{{if .Summary}}
  <div class="summary-box">
    <div class="summary-item">
      <span>Total Entradas:</span>
      <span class="green">{{.Summary.TotalIn}}</span>
    </div>
    <div class="summary-item">
      <span>Total Saídas:</span>
      <span class="red">{{.Summary.TotalOut}}</span>
    </div>
    <div class="summary-item summary-total">
      <span>Saldo Geral:</span>
      <span class="{{.Summary.BalanceClass}}">{{.Summary.Balance}}</span>
    </div>
  </div>
{{end}}
{{range .Tables}}
  <div class="section">
    <h2>{{.Title}}</h2>
{{if .Rows}}
    <table>
      <thead><tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr></thead>
      <tbody>
{{range .Rows}}      <tr>{{range .}}<td class="{{.Class}}">{{.Text}}</td>{{end}}</tr>
{{end}}      </tbody>
    </table>
{{else}}
    <p>Sem dados para {{.Title}}</p>
{{end}}
  </div>
{{end}}
  <div class="footer">
    <p>Relatório gerado pelo FlowCash</p>
  </div>
</body>
</html>
`))

func labelCell(text string) reportCell {
	return reportCell{Text: text}
}

// moneyCell renders an amount with the R$ prefix and red/green coloring on
// the sign.
func moneyCell(v decimal.Decimal) reportCell {
	class := "amount green"
	if v.IsNegative() {
		class = "amount red"
	}
	return reportCell{Text: money.FormatBRL(v), Class: class}
}

func (s *reportService) BuildFinancialReportHTML() ([]byte, error) {
	agg, err := s.GetAggregates()
	if err != nil {
		return nil, err
	}

	now := s.now()
	data := financialReportData{
		GeneratedDate: now.Format("02/01/2006"),
		GeneratedTime: now.Format("15:04:05"),
	}

	if len(agg.Summary) > 0 {
		g := agg.Summary[0]
		balanceClass := "green"
		if g.Balance.IsNegative() {
			balanceClass = "red"
		}
		data.Summary = &summaryBlock{
			TotalIn:      money.FormatBRL(g.TotalIn),
			TotalOut:     money.FormatBRL(g.TotalOut),
			Balance:      money.FormatBRL(g.Balance),
			BalanceClass: balanceClass,
		}
	}

	daily := reportTable{Title: "Fluxo Diário", Headers: []string{"Data", "Entradas", "Saídas", "Saldo"}}
	for _, d := range agg.Daily {
		daily.Rows = append(daily.Rows, []reportCell{
			labelCell(formatDateBR(d.Date)), moneyCell(d.TotalIn), moneyCell(d.TotalOut), moneyCell(d.Balance),
		})
	}

	monthly := reportTable{Title: "Fluxo Mensal", Headers: []string{"Mês", "Entradas", "Saídas", "Saldo"}}
	for _, m := range agg.Monthly {
		monthly.Rows = append(monthly.Rows, []reportCell{
			labelCell(formatMonthBR(m.Month)), moneyCell(m.TotalIn), moneyCell(m.TotalOut), moneyCell(m.Balance),
		})
	}

	method := reportTable{Title: "Fluxo por Método", Headers: []string{"Método", "Entradas", "Saídas", "Saldo"}}
	for _, f := range agg.Method {
		method.Rows = append(method.Rows, []reportCell{
			labelCell(f.Method), moneyCell(f.TotalIn), moneyCell(f.TotalOut), moneyCell(f.Balance),
		})
	}

	annual := reportTable{Title: "Fluxo Anual", Headers: []string{"Ano", "Total Entradas"}}
	for _, a := range agg.Annual {
		annual.Rows = append(annual.Rows, []reportCell{
			labelCell(a.Year), moneyCell(a.TotalIn),
		})
	}

	data.Tables = []reportTable{daily, monthly, method, annual}

	var buf bytes.Buffer
	if err := financialReportTmpl.Execute(&buf, data); err != nil {
		return nil, &ExportError{Op: "financial report", Err: err}
	}
	return buf.Bytes(), nil
}

type receiptData struct {
	ReceiptNumber string
	ClientName    string
	ProductName   string
	Quantity      string
	UnitCost      string
	Total         string
	IssuedAt      string
	DueDate       string
}

var receiptTmpl = template.Must(template.New("receipt").Parse(`<html>
<head>
<meta charset="UTF-8" />
<style>
  body { font-family: Arial, sans-serif; padding: 30px; background-color: #f5f5f5; }
  .container { background-color: #fff; border-radius: 10px; box-shadow: 0 4px 12px rgba(0, 0, 0, 0.15); padding: 25px; max-width: 600px; margin: auto; border-top: 6px solid #6A1B9A; }
  .header { text-align: center; padding-bottom: 15px; border-bottom: 2px solid #e0e0e0; }
  .header h1 { color: #6A1B9A; margin: 0; font-size: 22px; }
  .receipt-number { color: #999; font-size: 12px; margin-top: 5px; }
  .row { display: flex; justify-content: space-between; padding: 10px 0; border-bottom: 1px solid #eee; }
  .label { color: #666; }
  .value { font-weight: bold; color: #333; }
  .total { font-size: 18px; border-bottom: none; margin-top: 10px; }
  .total .value { color: #6A1B9A; }
</style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>Boleto de Venda</h1>
      <div class="receipt-number">Nº {{.ReceiptNumber}}</div>
    </div>
    <div class="row"><span class="label">Cliente:</span><span class="value">{{.ClientName}}</span></div>
    <div class="row"><span class="label">Produto:</span><span class="value">{{.ProductName}}</span></div>
    <div class="row"><span class="label">Quantidade:</span><span class="value">{{.Quantity}}</span></div>
    <div class="row"><span class="label">Valor unitário:</span><span class="value">{{.UnitCost}}</span></div>
    <div class="row"><span class="label">Data de emissão:</span><span class="value">{{.IssuedAt}}</span></div>
    <div class="row"><span class="label">Vencimento:</span><span class="value">{{.DueDate}}</span></div>
    <div class="row total"><span class="label">Total:</span><span class="value">{{.Total}}</span></div>
  </div>
</body>
</html>
`))

// BuildReceiptHTML renders the boleto for a recorded sale. The unit cost is
// the snapshot captured when the sale was made.
func (s *reportService) BuildReceiptHTML(orderID uint) ([]byte, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storage("find order", err)
	}

	// Payment is due three days after issue.
	dueDate := order.CreatedAt.AddDate(0, 0, 3)

	data := receiptData{
		ReceiptNumber: order.ReceiptNumber,
		ClientName:    order.ClientName,
		ProductName:   order.Product.Name,
		Quantity:      strconv.Itoa(order.Quantity),
		UnitCost:      money.FormatBRL(order.UnitCost),
		Total:         money.FormatBRL(order.Total()),
		IssuedAt:      order.CreatedAt.Format("02/01/2006"),
		DueDate:       dueDate.Format("02/01/2006"),
	}

	var buf bytes.Buffer
	if err := receiptTmpl.Execute(&buf, data); err != nil {
		return nil, &ExportError{Op: "receipt", Err: err}
	}
	return buf.Bytes(), nil
}
