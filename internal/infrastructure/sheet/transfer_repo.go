package sheet

import (
	"context"
	"fmt"
	"strings"

	"github.com/wpuckar/hexastock-api/internal/domain/entity"
	"github.com/wpuckar/hexastock-api/internal/domain/repository"
	"github.com/wpuckar/hexastock-api/internal/infrastructure/rowstore"
)

var _ repository.SectorTransferRepository = (*TransferRepo)(nil)

// TransferRepo persiste transferências entre setores na tabela
// "movimentacoes_setores".
type TransferRepo struct {
	store rowstore.TableStore
}

// NewTransferRepository constrói o repositório tipado de transferências.
func NewTransferRepository(store rowstore.TableStore) *TransferRepo {
	return &TransferRepo{store: store}
}

// encodeComponents serializa os componentes nas células patrimonio e
// servicetag. Item único grava os valores crus, ignorando rótulo (o parse de
// célula sem quebra de linha não tem como recuperá-lo); kit grava uma linha
// rotulada por componente ("Monitor 1: PAT123"), o formato herdado da
// planilha.
func encodeComponents(comps []entity.Component) (patrimonio, servicetag string) {
	if len(comps) == 1 {
		return comps[0].AssetTag, comps[0].ServiceTag
	}
	pat := make([]string, 0, len(comps))
	tag := make([]string, 0, len(comps))
	for _, c := range comps {
		pat = append(pat, fmt.Sprintf("%s: %s", c.Label, c.AssetTag))
		tag = append(tag, fmt.Sprintf("%s: %s", c.Label, c.ServiceTag))
	}
	return strings.Join(pat, "\n"), strings.Join(tag, "\n")
}

// decodeComponents reconstrói os componentes a partir das células. Células
// sem quebra de linha são um item único; com quebras, cada linha é um
// componente rotulado e as servicetags são pareadas por posição.
func decodeComponents(patrimonio, servicetag string) []entity.Component {
	if !strings.Contains(patrimonio, "\n") {
		return []entity.Component{{AssetTag: patrimonio, ServiceTag: servicetag}}
	}
	patLines := strings.Split(patrimonio, "\n")
	tagLines := strings.Split(servicetag, "\n")
	comps := make([]entity.Component, 0, len(patLines))
	for i, line := range patLines {
		label, asset := splitLabeled(line)
		var svc string
		if i < len(tagLines) {
			_, svc = splitLabeled(tagLines[i])
		}
		comps = append(comps, entity.Component{Label: label, AssetTag: asset, ServiceTag: svc})
	}
	return comps
}

func splitLabeled(line string) (label, value string) {
	if idx := strings.Index(line, ": "); idx >= 0 {
		return line[:idx], line[idx+2:]
	}
	return "", line
}

func transferFromRow(row rowstore.Row) (*entity.SectorTransfer, error) {
	const table = rowstore.TableSectorMovements
	id, err := parseID(table, "id", row["id"])
	if err != nil {
		return nil, err
	}
	idCell := row["id"]
	date, err := parseTimeCell(table, idCell, "data_movimentacao", row["data_movimentacao"])
	if err != nil {
		return nil, err
	}
	// Linhas antigas da planilha podem ter a célula de status vazia; valem
	// como pendentes.
	status := strings.TrimSpace(row["status_regularizacao"])
	if status == "" {
		status = entity.TransferPending
	}
	if status != entity.TransferPending && status != entity.TransferRegularized {
		return nil, badRow(table, idCell, "status_regularizacao desconhecido: "+status)
	}
	return &entity.SectorTransfer{
		ID:                id,
		Date:              date,
		Handler:           row["responsavel"],
		EquipmentType:     row["tipo_equipamento"],
		Components:        decodeComponents(row["patrimonio"], row["servicetag"]),
		OriginSector:      row["setor_origem"],
		DestinationSector: row["setor_destino"],
		Observation:       row["observacao"],
		Ticket:            row["chamado"],
		Requester:         row["solicitante"],
		Status:            status,
	}, nil
}

func transferToRow(t *entity.SectorTransfer) rowstore.Row {
	pat, tag := encodeComponents(t.Components)
	return rowstore.Row{
		"id":                   formatID(t.ID),
		"data_movimentacao":    formatTimeCell(t.Date),
		"responsavel":          t.Handler,
		"tipo_equipamento":     t.EquipmentType,
		"patrimonio":           pat,
		"servicetag":           tag,
		"setor_origem":         t.OriginSector,
		"setor_destino":        t.DestinationSector,
		"observacao":           t.Observation,
		"chamado":              t.Ticket,
		"solicitante":          t.Requester,
		"status_regularizacao": t.Status,
	}
}

// List devolve todas as transferências na ordem da tabela.
func (r *TransferRepo) List(ctx context.Context) ([]*entity.SectorTransfer, error) {
	rows, err := r.store.ReadAll(ctx, rowstore.TableSectorMovements)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.SectorTransfer, 0, len(rows))
	for _, row := range rows {
		t, err := transferFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// GetByID devolve (nil, nil) quando o id não existe.
func (r *TransferRepo) GetByID(ctx context.Context, id int64) (*entity.SectorTransfer, error) {
	list, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range list {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}

// Append atribui o próximo id e grava a transferência.
func (r *TransferRepo) Append(ctx context.Context, tr *entity.SectorTransfer) error {
	id, err := nextID(ctx, r.store, rowstore.TableSectorMovements, "id")
	if err != nil {
		return err
	}
	tr.ID = id
	return r.store.Append(ctx, rowstore.TableSectorMovements, transferToRow(tr))
}

// SetStatus troca o status de regularização com guarda sobre o anterior.
func (r *TransferRepo) SetStatus(ctx context.Context, id int64, expected, value string) error {
	return r.store.Update(ctx, rowstore.TableSectorMovements, "id", formatID(id),
		rowstore.Row{"status_regularizacao": value},
		rowstore.Row{"status_regularizacao": expected})
}
