// Package ledger implementa o livro de movimentações de estoque: lançamentos
// imutáveis de saída, entrada e descarte, com revalidação do estado mais
// recente imediatamente antes de cada append.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wpuckar/hexastock-api/internal/application/dto"
	"github.com/wpuckar/hexastock-api/internal/domain"
	"github.com/wpuckar/hexastock-api/internal/domain/entity"
	"github.com/wpuckar/hexastock-api/internal/domain/repository"
	"github.com/wpuckar/hexastock-api/pkg/logger"
)

// Tentativas de atualização da célula de cache de quantidade antes de
// desistir e deixar a divergência para a detecção de leitura.
const cacheRefreshAttempts = 3

// UseCase casos de uso do ledger de estoque.
type UseCase struct {
	equipRepo  repository.EquipmentRepository
	movRepo    repository.StockMovementRepository
	configRepo repository.ConfigRepository
	log        *logger.Logger
}

// New constrói o caso de uso.
func New(
	equipRepo repository.EquipmentRepository,
	movRepo repository.StockMovementRepository,
	configRepo repository.ConfigRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{equipRepo: equipRepo, movRepo: movRepo, configRepo: configRepo, log: log}
}

// RecordMovement valida e grava um lançamento. As regras correm nesta ordem
// e a primeira falha encerra: equipamento existe e está ativo; tipo
// conhecido; campos obrigatórios; saldo suficiente para Saída/Descarte;
// motivo presente em Descarte. Nada é gravado quando qualquer regra falha.
func (uc *UseCase) RecordMovement(ctx context.Context, in dto.RecordMovementRequest) (*entity.StockMovement, error) {
	eq, err := uc.equipRepo.GetByID(ctx, in.EquipmentID)
	if err != nil {
		return nil, err
	}
	if eq == nil {
		return nil, fmt.Errorf("%w: equipamento %d", domain.ErrNotFound, in.EquipmentID)
	}
	if !eq.Active() {
		return nil, fmt.Errorf("%w: equipamento %d está baixado", domain.ErrInvalidState, in.EquipmentID)
	}

	if !entity.ValidMovementType(in.Type) {
		return nil, fmt.Errorf("%w: tipo de movimentação desconhecido %q", domain.ErrValidation, in.Type)
	}
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantidade deve ser positiva", domain.ErrValidation)
	}
	if strings.TrimSpace(in.Handler) == "" {
		return nil, fmt.Errorf("%w: responsável é obrigatório", domain.ErrValidation)
	}

	sector := strings.TrimSpace(in.Sector)
	if in.Type == entity.MovementExit || in.Type == entity.MovementReturn {
		if sector == "" {
			return nil, fmt.Errorf("%w: setor de destino/origem é obrigatório", domain.ErrValidation)
		}
		cfg, err := uc.configRepo.Load(ctx)
		if err != nil {
			return nil, err
		}
		if !cfg.ValidDestination(sector) {
			return nil, fmt.Errorf("%w: setor %q não consta na configuração", domain.ErrValidation, sector)
		}
	}

	// Releitura do ledger imediatamente antes da validação de saldo: o
	// armazenamento não dá isolamento, então o melhor possível é minimizar a
	// janela entre validação e append.
	movs, err := uc.movRepo.ListByEquipment(ctx, in.EquipmentID)
	if err != nil {
		return nil, err
	}
	var current int
	for _, m := range movs {
		current += m.SignedQuantity()
	}

	if in.Type == entity.MovementExit || in.Type == entity.MovementDisposal {
		if in.Quantity > current {
			return nil, fmt.Errorf("%w: solicitado %d, disponível %d",
				domain.ErrInsufficientStock, in.Quantity, current)
		}
	}
	if in.Type == entity.MovementDisposal && strings.TrimSpace(in.Reason) == "" {
		return nil, fmt.Errorf("%w: descarte exige motivo/laudo", domain.ErrValidation)
	}

	mov := &entity.StockMovement{
		EquipmentID: in.EquipmentID,
		Type:        in.Type,
		Quantity:    in.Quantity,
		Sector:      sector,
		Requester:   strings.TrimSpace(in.Requester),
		Ticket:      strings.TrimSpace(in.Ticket),
		Handler:     strings.TrimSpace(in.Handler),
		Date:        time.Now(),
		Reason:      strings.TrimSpace(in.Reason),
	}
	if err := uc.movRepo.Append(ctx, mov); err != nil {
		return nil, err
	}

	uc.refreshQuantityCache(ctx, in.EquipmentID)

	uc.log.Info().
		Int64("equipment_id", in.EquipmentID).
		Str("tipo", in.Type).
		Int("quantidade", in.Quantity).
		Msg("movimentação registrada")
	return mov, nil
}

// refreshQuantityCache reescreve a célula quantidade do equipamento com a
// soma recém-derivada do ledger. A célula é só cache de exibição: se a
// guarda otimista perder todas as tentativas, ou o gateway falhar aqui, o
// lançamento já está gravado e a leitura detecta a divergência depois.
func (uc *UseCase) refreshQuantityCache(ctx context.Context, equipmentID int64) {
	for attempt := 0; attempt < cacheRefreshAttempts; attempt++ {
		eq, err := uc.equipRepo.GetByID(ctx, equipmentID)
		if err != nil || eq == nil {
			break
		}
		movs, err := uc.movRepo.ListByEquipment(ctx, equipmentID)
		if err != nil {
			break
		}
		total := 0
		for _, m := range movs {
			total += m.SignedQuantity()
		}
		if total < 0 {
			// Só acontece se clientes concorrentes perderam a corrida de
			// validação; a célula fica em zero e o desvio vai para o log.
			uc.log.Warn().Int64("equipment_id", equipmentID).Int("ledger", total).
				Msg("ledger negativo após corrida de escrita")
			total = 0
		}
		if eq.Quantity == total {
			return
		}
		err = uc.equipRepo.UpdateQuantity(ctx, equipmentID, eq.Quantity, total)
		if err == nil {
			return
		}
		if !errors.Is(err, domain.ErrConflict) {
			uc.log.Warn().Err(err).Int64("equipment_id", equipmentID).
				Msg("falha ao atualizar célula de quantidade")
			return
		}
	}
	uc.log.Warn().Int64("equipment_id", equipmentID).
		Msg("célula de quantidade não convergiu; ledger prevalece")
}

// ListByEquipment devolve o histórico de um equipamento na ordem do ledger.
func (uc *UseCase) ListByEquipment(ctx context.Context, equipmentID int64) ([]*entity.StockMovement, error) {
	eq, err := uc.equipRepo.GetByID(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	if eq == nil {
		return nil, fmt.Errorf("%w: equipamento %d", domain.ErrNotFound, equipmentID)
	}
	return uc.movRepo.ListByEquipment(ctx, equipmentID)
}

// ListByPeriod devolve os lançamentos do intervalo inclusivo; limites nulos
// não filtram.
func (uc *UseCase) ListByPeriod(ctx context.Context, from, to *time.Time) ([]*entity.StockMovement, error) {
	all, err := uc.movRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []*entity.StockMovement
	for _, m := range all {
		if inPeriod(m.Date, from, to) {
			out = append(out, m)
		}
	}
	return out, nil
}

// LastExit devolve destino e solicitante da saída mais recente do
// equipamento, para sugerir a origem de uma devolução; (nil, nil) quando
// nunca houve saída.
func (uc *UseCase) LastExit(ctx context.Context, equipmentID int64) (*dto.LastExitResponse, error) {
	movs, err := uc.ListByEquipment(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	var last *entity.StockMovement
	for _, m := range movs {
		if m.Type != entity.MovementExit {
			continue
		}
		if last == nil || m.ID > last.ID {
			last = m
		}
	}
	if last == nil {
		return nil, nil
	}
	return &dto.LastExitResponse{Sector: last.Sector, Requester: last.Requester}, nil
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
