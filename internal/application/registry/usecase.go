// Package registry implementa o registro de equipamentos: cadastro, edição
// de campos mutáveis, baixa lógica e as consultas de quantidade derivada.
package registry

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

// Setor simbólico do lançamento de entrada que materializa a quantidade
// inicial de um cadastro no ledger.
const initialStockSector = "Estoque inicial"

// UseCase casos de uso do registro de equipamentos. A quantidade nunca é
// editada diretamente: ela é sempre a soma assinada do ledger, e a célula
// quantidade da tabela funciona como cache validado.
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

// Register valida e cadastra um equipamento novo. Quantidade inicial maior
// que zero vira um lançamento de entrada no ledger, para que a derivação
// da quantidade tenha uma única fonte de verdade.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterEquipmentRequest) (*entity.Equipment, error) {
	cfg, err := uc.configRepo.Load(ctx)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	category := strings.TrimSpace(in.Category)
	if name == "" {
		return nil, fmt.Errorf("%w: nome é obrigatório", domain.ErrValidation)
	}
	if category == "" {
		return nil, fmt.Errorf("%w: categoria é obrigatória", domain.ErrValidation)
	}
	if !cfg.ValidCategory(category) {
		return nil, fmt.Errorf("%w: categoria %q não consta na configuração", domain.ErrValidation, category)
	}
	if in.InitialQuantity < 0 {
		return nil, fmt.Errorf("%w: quantidade inicial não pode ser negativa", domain.ErrValidation)
	}
	minStock := cfg.DefaultMinStock
	if in.MinStock != nil {
		if *in.MinStock < 0 {
			return nil, fmt.Errorf("%w: estoque mínimo não pode ser negativo", domain.ErrValidation)
		}
		minStock = *in.MinStock
	}
	serial := strings.TrimSpace(in.SerialNumber)
	if serial != "" {
		existing, err := uc.equipRepo.GetBySerial(ctx, serial)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: número de série %q já cadastrado no equipamento %d",
				domain.ErrValidation, serial, existing.ID)
		}
	}

	now := time.Now()
	eq := &entity.Equipment{
		Name:         name,
		SerialNumber: serial,
		Description:  strings.TrimSpace(in.Description),
		// A célula de quantidade nasce zerada e só sobe junto com o
		// lançamento de entrada: se o append falhar, célula e ledger
		// continuam de acordo.
		Quantity:     0,
		Status:       entity.EquipmentActive,
		RegisteredAt: now,
		MinStock:     minStock,
		Category:     category,
	}
	if err := uc.equipRepo.Create(ctx, eq); err != nil {
		return nil, err
	}

	if in.InitialQuantity > 0 {
		handler := strings.TrimSpace(in.RegisteredBy)
		if handler == "" {
			handler = "Cadastro"
		}
		mov := &entity.StockMovement{
			EquipmentID: eq.ID,
			Type:        entity.MovementReturn,
			Quantity:    in.InitialQuantity,
			Sector:      initialStockSector,
			Handler:     handler,
			Date:        now,
		}
		if err := uc.movRepo.Append(ctx, mov); err != nil {
			return nil, fmt.Errorf("registrar entrada inicial do equipamento %d: %w", eq.ID, err)
		}
		eq.Quantity = in.InitialQuantity
		if err := uc.equipRepo.UpdateQuantity(ctx, eq.ID, 0, in.InitialQuantity); err != nil {
			// Cache de exibição: o ledger já tem a entrada e a leitura
			// detecta a divergência depois.
			uc.log.Warn().Err(err).Int64("equipment_id", eq.ID).
				Msg("falha ao atualizar célula de quantidade após o cadastro")
		}
	}

	uc.log.Info().Int64("equipment_id", eq.ID).Str("nome", eq.Name).Msg("equipamento cadastrado")
	return eq, nil
}

// Edit aplica uma atualização parcial dos campos mutáveis. Quantidade,
// status e data de cadastro são preservados da leitura fresca.
func (uc *UseCase) Edit(ctx context.Context, id int64, in dto.EditEquipmentRequest) (*entity.Equipment, error) {
	eq, err := uc.equipRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if eq == nil {
		return nil, fmt.Errorf("%w: equipamento %d", domain.ErrNotFound, id)
	}

	cfg, err := uc.configRepo.Load(ctx)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: nome não pode ficar vazio", domain.ErrValidation)
		}
		eq.Name = name
	}
	if in.Category != nil {
		category := strings.TrimSpace(*in.Category)
		if category == "" {
			return nil, fmt.Errorf("%w: categoria não pode ficar vazia", domain.ErrValidation)
		}
		if !cfg.ValidCategory(category) {
			return nil, fmt.Errorf("%w: categoria %q não consta na configuração", domain.ErrValidation, category)
		}
		eq.Category = category
	}
	if in.Description != nil {
		eq.Description = strings.TrimSpace(*in.Description)
	}
	if in.MinStock != nil {
		if *in.MinStock < 0 {
			return nil, fmt.Errorf("%w: estoque mínimo não pode ser negativo", domain.ErrValidation)
		}
		eq.MinStock = *in.MinStock
	}
	if in.SerialNumber != nil {
		serial := strings.TrimSpace(*in.SerialNumber)
		if serial != "" {
			existing, err := uc.equipRepo.GetBySerial(ctx, serial)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != id {
				return nil, fmt.Errorf("%w: número de série %q já cadastrado no equipamento %d",
					domain.ErrValidation, serial, existing.ID)
			}
		}
		eq.SerialNumber = serial
	}

	if err := uc.equipRepo.Update(ctx, eq); err != nil {
		return nil, err
	}
	return eq, nil
}

// Retire faz a baixa lógica do equipamento: ele some das listagens ativas e
// bloqueia movimentações novas, mas permanece no histórico. Uma baixa
// repetida (inclusive concorrente) falha com ErrInvalidState.
func (uc *UseCase) Retire(ctx context.Context, id int64) error {
	eq, err := uc.equipRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if eq == nil {
		return fmt.Errorf("%w: equipamento %d", domain.ErrNotFound, id)
	}
	if !eq.Active() {
		return fmt.Errorf("%w: equipamento %d já baixado", domain.ErrInvalidState, id)
	}
	err = uc.equipRepo.SetStatus(ctx, id, entity.EquipmentActive, entity.EquipmentRetired)
	if errors.Is(err, domain.ErrConflict) {
		return fmt.Errorf("%w: equipamento %d já baixado", domain.ErrInvalidState, id)
	}
	if err != nil {
		return err
	}
	uc.log.Info().Int64("equipment_id", id).Msg("equipamento baixado")
	return nil
}

// Get devolve o equipamento com a quantidade derivada do ledger.
func (uc *UseCase) Get(ctx context.Context, id int64) (*entity.Equipment, int, error) {
	eq, err := uc.equipRepo.GetByID(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	if eq == nil {
		return nil, 0, fmt.Errorf("%w: equipamento %d", domain.ErrNotFound, id)
	}
	qty, err := uc.derive(ctx, eq)
	if err != nil {
		return nil, 0, err
	}
	return eq, qty, nil
}

// CurrentQuantity devolve a soma assinada das movimentações aceitas.
func (uc *UseCase) CurrentQuantity(ctx context.Context, id int64) (int, error) {
	_, qty, err := uc.Get(ctx, id)
	return qty, err
}

// IsLowStock indica quantidade derivada estritamente abaixo do mínimo.
func (uc *UseCase) IsLowStock(ctx context.Context, id int64) (bool, error) {
	eq, qty, err := uc.Get(ctx, id)
	if err != nil {
		return false, err
	}
	return qty < eq.MinStock, nil
}

// List devolve os equipamentos com quantidade derivada, filtrando baixados
// (salvo includeRetired) e aplicando a busca textual do formulário em
// nome, série, categoria e descrição, sem diferenciar caixa.
func (uc *UseCase) List(ctx context.Context, includeRetired bool, term string) ([]dto.EquipmentResponse, error) {
	list, err := uc.equipRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	movs, err := uc.movRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	totals := entity.SumByEquipment(movs)

	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]dto.EquipmentResponse, 0, len(list))
	for _, eq := range list {
		if !includeRetired && !eq.Active() {
			continue
		}
		if term != "" && !matches(eq, term) {
			continue
		}
		qty := totals[eq.ID]
		uc.checkDrift(eq, qty)
		out = append(out, dto.FromEquipment(eq, qty))
	}
	return out, nil
}

// Options devolve as listas da tabela config usadas pelos formulários.
func (uc *UseCase) Options(ctx context.Context) (*dto.OptionsResponse, error) {
	cfg, err := uc.configRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.OptionsResponse{
		Destinations:    cfg.Destinations,
		Categories:      cfg.Categories,
		DefaultMinStock: cfg.DefaultMinStock,
	}, nil
}

func (uc *UseCase) derive(ctx context.Context, eq *entity.Equipment) (int, error) {
	movs, err := uc.movRepo.ListByEquipment(ctx, eq.ID)
	if err != nil {
		return 0, err
	}
	var total int
	for _, m := range movs {
		total += m.SignedQuantity()
	}
	uc.checkDrift(eq, total)
	return total, nil
}

// checkDrift compara a célula de cache com a derivação do ledger; em caso de
// divergência o ledger prevalece e o desvio vai para o log.
func (uc *UseCase) checkDrift(eq *entity.Equipment, derived int) {
	if eq.Quantity != derived {
		uc.log.Warn().
			Int64("equipment_id", eq.ID).
			Int("cache", eq.Quantity).
			Int("ledger", derived).
			Msg("célula de quantidade divergente do ledger")
	}
}

func matches(eq *entity.Equipment, term string) bool {
	for _, field := range []string{eq.Name, eq.SerialNumber, eq.Category, eq.Description} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}
