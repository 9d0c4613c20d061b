package handler

import (
	"go-flowcash/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

func (h *ReportHandler) GetAggregates(c *fiber.Ctx) error {
	agg, err := h.service.GetAggregates()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(agg)
}

func (h *ReportHandler) RebuildViews(c *fiber.Ctx) error {
	if err := h.service.RebuildViews(); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Views rebuilt"})
}

func (h *ReportHandler) ExportCSV(c *fiber.Ctx) error {
	data, err := h.service.ExportCSV()
	if err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="relatorio_financeiro.csv"`)
	return c.Send(data)
}

func (h *ReportHandler) ExportXLSX(c *fiber.Ctx) error {
	data, err := h.service.ExportXLSX()
	if err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="relatorio_financeiro.xlsx"`)
	return c.Send(data)
}

func (h *ReportHandler) ExportProductsCSV(c *fiber.Ctx) error {
	data, err := h.service.ExportProductsCSV()
	if err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="estoque_produtos.csv"`)
	return c.Send(data)
}

// FinancialReport serves the printable HTML document. PDF conversion is up
// to the caller.
func (h *ReportHandler) FinancialReport(c *fiber.Ctx) error {
	data, err := h.service.BuildFinancialReportHTML()
	if err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(data)
}

func (h *ReportHandler) Receipt(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	data, err := h.service.BuildReceiptHTML(id)
	if err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(data)
}
