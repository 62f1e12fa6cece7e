package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wpuckar/hexastock-api/internal/application/dto"
	"github.com/wpuckar/hexastock-api/internal/application/transfer"
)

// TransferHandler atende as rotas das transferências entre setores.
type TransferHandler struct {
	uc *transfer.UseCase
}

// NewTransferHandler constrói o handler.
func NewTransferHandler(uc *transfer.UseCase) *TransferHandler {
	return &TransferHandler{uc: uc}
}

// Record registra uma transferência (item único ou kit).
func (h *TransferHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "corpo inválido")
	}
	tr, err := h.uc.RecordTransfer(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromTransfer(tr))
}

// List devolve o histórico filtrado por ?status=, ?from= e ?to=.
func (h *TransferHandler) List(c *fiber.Ctx) error {
	from, to, ok := parsePeriod(c)
	if !ok {
		return badRequest(c, "datas devem estar no formato AAAA-MM-DD")
	}
	list, err := h.uc.ListTransfers(c.Context(), dto.TransferFilter{
		Status: c.Query("status"),
		From:   from,
		To:     to,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "transfers": dto.FromTransfers(list)})
}

// Regularize marca a transferência como regularizada; repetições devolvem
// 409 para que o chamador perceba a dupla regularização.
func (h *TransferHandler) Regularize(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return badRequest(c, "id inválido")
	}
	if err := h.uc.Regularize(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "transferência regularizada"})
}
