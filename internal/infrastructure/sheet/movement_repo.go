package sheet

import (
	"context"
	"strconv"

	"github.com/wpuckar/hexastock-api/internal/domain/entity"
	"github.com/wpuckar/hexastock-api/internal/domain/repository"
	"github.com/wpuckar/hexastock-api/internal/infrastructure/rowstore"
)

var _ repository.StockMovementRepository = (*MovementRepo)(nil)

// MovementRepo persiste o ledger de estoque na tabela "movimentacoes".
type MovementRepo struct {
	store rowstore.TableStore
}

// NewMovementRepository constrói o repositório tipado do ledger de estoque.
func NewMovementRepository(store rowstore.TableStore) *MovementRepo {
	return &MovementRepo{store: store}
}

func movementFromRow(row rowstore.Row) (*entity.StockMovement, error) {
	const table = rowstore.TableMovements
	id, err := parseID(table, "id_movimentacao", row["id_movimentacao"])
	if err != nil {
		return nil, err
	}
	idCell := row["id_movimentacao"]
	equipID, err := parseID(table, "id_equipamento_fk", row["id_equipamento_fk"])
	if err != nil {
		return nil, err
	}
	qty, err := parseIntCell(table, idCell, "quantidade_movida", row["quantidade_movida"])
	if err != nil {
		return nil, err
	}
	if qty <= 0 {
		return nil, badRow(table, idCell, "quantidade_movida não positiva")
	}
	movType := row["tipo_movimentacao"]
	if !entity.ValidMovementType(movType) {
		return nil, badRow(table, idCell, "tipo_movimentacao desconhecido: "+movType)
	}
	date, err := parseTimeCell(table, idCell, "data_movimentacao", row["data_movimentacao"])
	if err != nil {
		return nil, err
	}
	return &entity.StockMovement{
		ID:          id,
		EquipmentID: equipID,
		Type:        movType,
		Quantity:    qty,
		Sector:      row["destino_origem"],
		Requester:   row["solicitante"],
		Ticket:      row["chamado"],
		Handler:     row["responsavel_movimentacao"],
		Date:        date,
		Reason:      row["motivo_laudo"],
	}, nil
}

func movementToRow(m *entity.StockMovement) rowstore.Row {
	return rowstore.Row{
		"id_movimentacao":          formatID(m.ID),
		"id_equipamento_fk":        formatID(m.EquipmentID),
		"tipo_movimentacao":        m.Type,
		"quantidade_movida":        strconv.Itoa(m.Quantity),
		"destino_origem":           m.Sector,
		"solicitante":              m.Requester,
		"chamado":                  m.Ticket,
		"responsavel_movimentacao": m.Handler,
		"data_movimentacao":        formatTimeCell(m.Date),
		"motivo_laudo":             m.Reason,
	}
}

// List devolve todos os lançamentos na ordem da tabela.
func (r *MovementRepo) List(ctx context.Context) ([]*entity.StockMovement, error) {
	rows, err := r.store.ReadAll(ctx, rowstore.TableMovements)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.StockMovement, 0, len(rows))
	for _, row := range rows {
		m, err := movementFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// ListByEquipment filtra em memória os lançamentos de um equipamento (o
// gateway não sabe filtrar).
func (r *MovementRepo) ListByEquipment(ctx context.Context, equipmentID int64) ([]*entity.StockMovement, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []*entity.StockMovement
	for _, m := range all {
		if m.EquipmentID == equipmentID {
			out = append(out, m)
		}
	}
	return out, nil
}

// Append atribui o próximo id e grava o lançamento.
func (r *MovementRepo) Append(ctx context.Context, mov *entity.StockMovement) error {
	id, err := nextID(ctx, r.store, rowstore.TableMovements, "id_movimentacao")
	if err != nil {
		return err
	}
	mov.ID = id
	return r.store.Append(ctx, rowstore.TableMovements, movementToRow(mov))
}
