package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wpuckar/hexastock-api/internal/application/dto"
	"github.com/wpuckar/hexastock-api/internal/application/ledger"
)

// MovementHandler atende as rotas do ledger de movimentações de estoque.
type MovementHandler struct {
	uc *ledger.UseCase
}

// NewMovementHandler constrói o handler.
func NewMovementHandler(uc *ledger.UseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// Record registra uma movimentação (Saída, Entrada ou Descarte).
func (h *MovementHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "corpo inválido")
	}
	mov, err := h.uc.RecordMovement(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromMovement(mov))
}

// List devolve o histórico: ?equipment_id= filtra por equipamento,
// ?from=/&to= (AAAA-MM-DD) recortam o período inclusivo.
func (h *MovementHandler) List(c *fiber.Ctx) error {
	if v := c.QueryInt("equipment_id"); v > 0 {
		movs, err := h.uc.ListByEquipment(c.Context(), int64(v))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"total": len(movs), "movements": dto.FromMovements(movs)})
	}
	from, to, ok := parsePeriod(c)
	if !ok {
		return badRequest(c, "datas devem estar no formato AAAA-MM-DD")
	}
	movs, err := h.uc.ListByPeriod(c.Context(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(movs), "movements": dto.FromMovements(movs)})
}

// LastExit devolve a sugestão de origem de devolução de um equipamento; 204
// quando nunca houve saída.
func (h *MovementHandler) LastExit(c *fiber.Ctx) error {
	id := c.QueryInt("equipment_id")
	if id <= 0 {
		return badRequest(c, "equipment_id é obrigatório")
	}
	last, err := h.uc.LastExit(c.Context(), int64(id))
	if err != nil {
		return respondError(c, err)
	}
	if last == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(last)
}
