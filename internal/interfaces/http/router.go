package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wpuckar/hexastock-api/internal/application/ledger"
	"github.com/wpuckar/hexastock-api/internal/application/registry"
	"github.com/wpuckar/hexastock-api/internal/application/report"
	"github.com/wpuckar/hexastock-api/internal/application/transfer"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	RegistryUC *registry.UseCase
	LedgerUC   *ledger.UseCase
	TransferUC *transfer.UseCase
	ReportUC   *report.UseCase
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Equipamentos
	equipment := api.Group("/equipment")
	equipmentHandler := NewEquipmentHandler(deps.RegistryUC)
	equipment.Get("/", equipmentHandler.List)
	equipment.Post("/", equipmentHandler.Register)
	equipment.Get("/:id", equipmentHandler.Get)
	equipment.Put("/:id", equipmentHandler.Edit)
	equipment.Post("/:id/retire", equipmentHandler.Retire)

	// Movimentações de estoque
	movements := api.Group("/movements")
	movementHandler := NewMovementHandler(deps.LedgerUC)
	movements.Post("/", movementHandler.Record)
	movements.Get("/", movementHandler.List)
	movements.Get("/last-exit", movementHandler.LastExit)

	// Transferências entre setores
	transfers := api.Group("/transfers")
	transferHandler := NewTransferHandler(deps.TransferUC)
	transfers.Post("/", transferHandler.Record)
	transfers.Get("/", transferHandler.List)
	transfers.Post("/:id/regularize", transferHandler.Regularize)

	// Relatórios e painel
	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/stock", reportHandler.Stock)
	reports.Get("/transfers", reportHandler.Transfers)
	api.Get("/dashboard", reportHandler.Dashboard)

	// Listas da configuração para os formulários
	api.Get("/options", equipmentHandler.Options)
}
