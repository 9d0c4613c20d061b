package handler

import (
	"go-flowcash/internal/model"
	"go-flowcash/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CashflowHandler struct {
	service service.CashflowService
}

func NewCashflowHandler(s service.CashflowService) *CashflowHandler {
	return &CashflowHandler{service: s}
}

func (h *CashflowHandler) Record(c *fiber.Ctx) error {
	var in model.CashflowInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	entry, err := h.service.Record(&in)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Entry recorded", "data": entry})
}

func (h *CashflowHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid entry ID"})
	}

	var in model.CashflowInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	entry, err := h.service.Update(id, &in)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Entry updated", "data": entry})
}

func (h *CashflowHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid entry ID"})
	}

	if err := h.service.Delete(id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Entry deleted"})
}

func (h *CashflowHandler) Reset(c *fiber.Ctx) error {
	if err := h.service.ResetAll(); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Cashflow reset"})
}

func (h *CashflowHandler) GetEntries(c *fiber.Ctx) error {
	entries, err := h.service.ListAll()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entries)
}
