package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wpuckar/hexastock-api/internal/application/dto"
	"github.com/wpuckar/hexastock-api/internal/application/registry"
)

// EquipmentHandler atende as rotas do registro de equipamentos.
type EquipmentHandler struct {
	uc *registry.UseCase
}

// NewEquipmentHandler constrói o handler.
func NewEquipmentHandler(uc *registry.UseCase) *EquipmentHandler {
	return &EquipmentHandler{uc: uc}
}

// List devolve os equipamentos; ?q= filtra por texto, ?all=true inclui os
// baixados.
func (h *EquipmentHandler) List(c *fiber.Ctx) error {
	items, err := h.uc.List(c.Context(), c.QueryBool("all"), c.Query("q"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(items), "items": items})
}

// Get devolve um equipamento com a quantidade derivada do ledger.
func (h *EquipmentHandler) Get(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return badRequest(c, "id inválido")
	}
	eq, qty, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromEquipment(eq, qty))
}

// Register cadastra um equipamento novo.
func (h *EquipmentHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterEquipmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "corpo inválido")
	}
	eq, err := h.uc.Register(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromEquipment(eq, eq.Quantity))
}

// Edit aplica uma atualização parcial dos campos mutáveis.
func (h *EquipmentHandler) Edit(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return badRequest(c, "id inválido")
	}
	var in dto.EditEquipmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "corpo inválido")
	}
	eq, err := h.uc.Edit(c.Context(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromEquipment(eq, eq.Quantity))
}

// Retire faz a baixa lógica do equipamento.
func (h *EquipmentHandler) Retire(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return badRequest(c, "id inválido")
	}
	if err := h.uc.Retire(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "equipamento baixado"})
}

// Options devolve as listas da tabela config para os formulários.
func (h *EquipmentHandler) Options(c *fiber.Ctx) error {
	opts, err := h.uc.Options(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(opts)
}
