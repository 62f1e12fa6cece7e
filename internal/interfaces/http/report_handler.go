package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wpuckar/hexastock-api/internal/application/report"
)

// ReportHandler atende as projeções de leitura: relatórios e painel.
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler constrói o handler.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Stock devolve o snapshot do estoque; ?history=true anexa as movimentações
// do período indicado por ?from= e ?to=.
func (h *ReportHandler) Stock(c *fiber.Ctx) error {
	from, to, ok := parsePeriod(c)
	if !ok {
		return badRequest(c, "datas devem estar no formato AAAA-MM-DD")
	}
	includeHistory := c.QueryBool("history")
	rep, err := h.uc.BuildStockReport(c.Context(), includeHistory, from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rep)
}

// Transfers devolve o relatório de transferências filtrado por ?status=,
// ?from= e ?to=.
func (h *ReportHandler) Transfers(c *fiber.Ctx) error {
	from, to, ok := parsePeriod(c)
	if !ok {
		return badRequest(c, "datas devem estar no formato AAAA-MM-DD")
	}
	rep, err := h.uc.BuildTransferReport(c.Context(), c.Query("status"), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rep)
}

// Dashboard devolve os cartões de estatística da tela inicial.
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.BuildDashboard(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
