// Package report implementa as projeções de leitura consumidas pelo
// renderizador externo: relatório de estoque, relatório de transferências e
// o painel de estatísticas. Nenhuma operação daqui escreve no armazenamento.
package report

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/wpuckar/hexastock-api/internal/application/dto"
	"github.com/wpuckar/hexastock-api/internal/domain/entity"
	"github.com/wpuckar/hexastock-api/internal/domain/repository"
)

// UseCase consultas de relatório sobre os dois ledgers.
type UseCase struct {
	equipRepo    repository.EquipmentRepository
	movRepo      repository.StockMovementRepository
	transferRepo repository.SectorTransferRepository
}

// New constrói o caso de uso.
func New(
	equipRepo repository.EquipmentRepository,
	movRepo repository.StockMovementRepository,
	transferRepo repository.SectorTransferRepository,
) *UseCase {
	return &UseCase{equipRepo: equipRepo, movRepo: movRepo, transferRepo: transferRepo}
}

// BuildStockReport monta o snapshot do estoque com quantidades derivadas do
// ledger e, quando pedido, o histórico de movimentações do período
// inclusivo. Sem dados, devolve um relatório vazio válido.
func (uc *UseCase) BuildStockReport(ctx context.Context, includeHistory bool, from, to *time.Time) (*dto.StockReport, error) {
	list, err := uc.equipRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	movs, err := uc.movRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	totals := entity.SumByEquipment(movs)

	rep := &dto.StockReport{
		GeneratedAt: time.Now(),
		Items:       make([]dto.EquipmentResponse, 0, len(list)),
	}
	for _, eq := range list {
		rep.Items = append(rep.Items, dto.FromEquipment(eq, totals[eq.ID]))
	}
	sort.Slice(rep.Items, func(i, j int) bool { return rep.Items[i].ID < rep.Items[j].ID })

	if includeHistory {
		filtered := make([]*entity.StockMovement, 0, len(movs))
		for _, m := range movs {
			if inPeriod(m.Date, from, to) {
				filtered = append(filtered, m)
			}
		}
		sort.SliceStable(filtered, func(i, j int) bool {
			if filtered[i].Date.Equal(filtered[j].Date) {
				return filtered[i].ID < filtered[j].ID
			}
			return filtered[i].Date.Before(filtered[j].Date)
		})
		rep.Movements = dto.FromMovements(filtered)
	}
	return rep, nil
}

// BuildTransferReport filtra as transferências por status e período
// inclusivo, em ordem ascendente de data. Filtros vazios devolvem tudo;
// estreitar o período só remove linhas.
func (uc *UseCase) BuildTransferReport(ctx context.Context, status string, from, to *time.Time) (*dto.TransferReport, error) {
	all, err := uc.transferRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	status = strings.TrimSpace(status)
	filtered := make([]*entity.SectorTransfer, 0, len(all))
	for _, t := range all {
		if status != "" && !strings.EqualFold(t.Status, status) {
			continue
		}
		if !inPeriod(t.Date, from, to) {
			continue
		}
		filtered = append(filtered, t)
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].Date.Equal(filtered[j].Date) {
			return filtered[i].ID < filtered[j].ID
		}
		return filtered[i].Date.Before(filtered[j].Date)
	})
	return &dto.TransferReport{
		GeneratedAt: time.Now(),
		Transfers:   dto.FromTransfers(filtered),
	}, nil
}

// BuildDashboard calcula os quatro cartões do painel: unidades totais e
// tipos únicos dos equipamentos ativos, itens abaixo do mínimo e
// movimentações do mês corrente.
func (uc *UseCase) BuildDashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	list, err := uc.equipRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	movs, err := uc.movRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	totals := entity.SumByEquipment(movs)

	out := &dto.DashboardResponse{}
	for _, eq := range list {
		if !eq.Active() {
			continue
		}
		qty := totals[eq.ID]
		out.TotalUnits += qty
		out.UniqueItems++
		if qty < eq.MinStock {
			out.LowStockItems++
		}
	}

	now := time.Now()
	for _, m := range movs {
		if m.Date.Year() == now.Year() && m.Date.Month() == now.Month() {
			out.MovementsThisMonth++
		}
	}
	return out, nil
}

func inPeriod(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}
