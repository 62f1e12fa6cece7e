// Package transfer implementa o ledger de transferências de ativos entre
// setores: registro atômico de itens e kits, regularização de mão única e a
// consulta histórica. Nunca altera quantidade de estoque.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/wpuckar/hexastock-api/internal/application/dto"
	"github.com/wpuckar/hexastock-api/internal/domain"
	"github.com/wpuckar/hexastock-api/internal/domain/entity"
	"github.com/wpuckar/hexastock-api/internal/domain/repository"
	"github.com/wpuckar/hexastock-api/pkg/logger"
)

// UseCase casos de uso das transferências entre setores.
type UseCase struct {
	transferRepo repository.SectorTransferRepository
	configRepo   repository.ConfigRepository
	log          *logger.Logger
}

// New constrói o caso de uso.
func New(
	transferRepo repository.SectorTransferRepository,
	configRepo repository.ConfigRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{transferRepo: transferRepo, configRepo: configRepo, log: log}
}

// RecordTransfer valida e grava uma transferência. Todos os componentes são
// validados contra a regra de ServiceTag do tipo; qualquer componente
// inválido rejeita a transferência inteira, nada é persistido.
func (uc *UseCase) RecordTransfer(ctx context.Context, in dto.RecordTransferRequest) (*entity.SectorTransfer, error) {
	cfg, err := uc.configRepo.Load(ctx)
	if err != nil {
		return nil, err
	}

	equipType := strings.TrimSpace(in.EquipmentType)
	if equipType == "" {
		return nil, fmt.Errorf("%w: tipo de equipamento é obrigatório", domain.ErrValidation)
	}
	if len(in.Components) == 0 {
		return nil, fmt.Errorf("%w: a transferência exige ao menos um componente", domain.ErrValidation)
	}
	if strings.TrimSpace(in.Handler) == "" {
		return nil, fmt.Errorf("%w: responsável é obrigatório", domain.ErrValidation)
	}
	if strings.TrimSpace(in.Requester) == "" {
		return nil, fmt.Errorf("%w: solicitante é obrigatório", domain.ErrValidation)
	}

	origin := strings.TrimSpace(in.Origin)
	destination := strings.TrimSpace(in.Destination)
	if origin == "" || destination == "" {
		return nil, fmt.Errorf("%w: setores de origem e destino são obrigatórios", domain.ErrValidation)
	}
	if strings.EqualFold(origin, destination) {
		return nil, fmt.Errorf("%w: setor de origem não pode ser o mesmo que o de destino", domain.ErrValidation)
	}
	if !cfg.ValidDestination(origin) {
		return nil, fmt.Errorf("%w: setor de origem %q não consta na configuração", domain.ErrValidation, origin)
	}
	if !cfg.ValidDestination(destination) {
		return nil, fmt.Errorf("%w: setor de destino %q não consta na configuração", domain.ErrValidation, destination)
	}

	tagRequired := cfg.RequiresServiceTag(equipType)
	comps := make([]entity.Component, 0, len(in.Components))
	for i, c := range in.Components {
		label := strings.TrimSpace(c.Label)
		asset := strings.TrimSpace(c.AssetTag)
		svc := strings.TrimSpace(c.ServiceTag)
		if asset == "" {
			return nil, fmt.Errorf("%w: componente %d sem patrimônio", domain.ErrValidation, i+1)
		}
		if tagRequired && svc == "" {
			name := label
			if name == "" {
				name = fmt.Sprintf("componente %d", i+1)
			}
			return nil, fmt.Errorf("%w: %s sem servicetag, obrigatória para o tipo %q",
				domain.ErrValidation, name, equipType)
		}
		// Rótulo só faz sentido dentro de um kit: item único grava as
		// células cruas, então qualquer rótulo recebido é descartado. Em
		// kit, quem não mandou rótulo ganha um posicional.
		if len(in.Components) == 1 {
			label = ""
		} else if label == "" {
			label = fmt.Sprintf("Item %d", i+1)
		}
		comps = append(comps, entity.Component{Label: label, AssetTag: asset, ServiceTag: svc})
	}

	tr := &entity.SectorTransfer{
		Date:              time.Now(),
		Handler:           strings.TrimSpace(in.Handler),
		EquipmentType:     equipType,
		Components:        comps,
		OriginSector:      origin,
		DestinationSector: destination,
		Observation:       strings.TrimSpace(in.Observation),
		Ticket:            strings.TrimSpace(in.Ticket),
		Requester:         strings.TrimSpace(in.Requester),
		Status:            entity.TransferPending,
	}
	if err := uc.transferRepo.Append(ctx, tr); err != nil {
		return nil, err
	}

	uc.log.Info().
		Int64("transfer_id", tr.ID).
		Str("tipo", equipType).
		Int("componentes", len(comps)).
		Str("origem", origin).
		Str("destino", destination).
		Msg("transferência entre setores registrada")
	return tr, nil
}

// Regularize marca a transferência como regularizada, uma única vez. A
// segunda tentativa — inclusive a que perde uma corrida entre clientes —
// falha com ErrInvalidState, para que o chamador saiba que a repetiu.
func (uc *UseCase) Regularize(ctx context.Context, id int64) error {
	tr, err := uc.transferRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if tr == nil {
		return fmt.Errorf("%w: transferência %d", domain.ErrNotFound, id)
	}
	if !tr.Pending() {
		return fmt.Errorf("%w: transferência %d já regularizada", domain.ErrInvalidState, id)
	}
	err = uc.transferRepo.SetStatus(ctx, id, entity.TransferPending, entity.TransferRegularized)
	if errors.Is(err, domain.ErrConflict) {
		return fmt.Errorf("%w: transferência %d já regularizada", domain.ErrInvalidState, id)
	}
	if err != nil {
		return err
	}
	uc.log.Info().Int64("transfer_id", id).Msg("transferência regularizada")
	return nil
}

// ListTransfers devolve as transferências que casam com o filtro, ordenadas
// por data ascendente (empate decide pelo id). Filtro vazio devolve tudo.
func (uc *UseCase) ListTransfers(ctx context.Context, filter dto.TransferFilter) ([]*entity.SectorTransfer, error) {
	all, err := uc.transferRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	status := strings.TrimSpace(filter.Status)
	var out []*entity.SectorTransfer
	for _, t := range all {
		if status != "" && !strings.EqualFold(t.Status, status) {
			continue
		}
		if !inPeriod(t.Date, filter.From, filter.To) {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].ID < out[j].ID
		}
		return out[i].Date.Before(out[j].Date)
	})
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
