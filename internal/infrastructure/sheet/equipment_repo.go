package sheet

import (
	"context"
	"strconv"
	"strings"

	"github.com/wpuckar/hexastock-api/internal/domain/entity"
	"github.com/wpuckar/hexastock-api/internal/domain/repository"
	"github.com/wpuckar/hexastock-api/internal/infrastructure/rowstore"
)

var _ repository.EquipmentRepository = (*EquipmentRepo)(nil)

// EquipmentRepo persiste equipamentos na tabela "equipamentos" via TableStore.
type EquipmentRepo struct {
	store rowstore.TableStore
}

// NewEquipmentRepository constrói o repositório tipado de equipamentos.
func NewEquipmentRepository(store rowstore.TableStore) *EquipmentRepo {
	return &EquipmentRepo{store: store}
}

func equipmentFromRow(row rowstore.Row) (*entity.Equipment, error) {
	const table = rowstore.TableEquipment
	id, err := parseID(table, "id", row["id"])
	if err != nil {
		return nil, err
	}
	idCell := row["id"]
	qty, err := parseIntCell(table, idCell, "quantidade", row["quantidade"])
	if err != nil {
		return nil, err
	}
	minStock, err := parseIntCell(table, idCell, "estoque_minimo", row["estoque_minimo"])
	if err != nil {
		return nil, err
	}
	if qty < 0 || minStock < 0 {
		return nil, badRow(table, idCell, "quantidade ou estoque_minimo negativos")
	}
	registeredAt, err := parseTimeCell(table, idCell, "data_cadastro", row["data_cadastro"])
	if err != nil {
		return nil, err
	}
	status := strings.TrimSpace(row["status"])
	if status != entity.EquipmentActive && status != entity.EquipmentRetired {
		return nil, badRow(table, idCell, "status desconhecido: "+status)
	}
	return &entity.Equipment{
		ID:           id,
		Name:         row["nome"],
		SerialNumber: strings.TrimSpace(row["numero_serie"]),
		Description:  row["descricao"],
		Quantity:     qty,
		Status:       status,
		RegisteredAt: registeredAt,
		MinStock:     minStock,
		Category:     row["categoria"],
	}, nil
}

func equipmentToRow(eq *entity.Equipment) rowstore.Row {
	return rowstore.Row{
		"id":             formatID(eq.ID),
		"nome":           eq.Name,
		"numero_serie":   eq.SerialNumber,
		"descricao":      eq.Description,
		"quantidade":     strconv.Itoa(eq.Quantity),
		"status":         eq.Status,
		"data_cadastro":  formatTimeCell(eq.RegisteredAt),
		"estoque_minimo": strconv.Itoa(eq.MinStock),
		"categoria":      eq.Category,
	}
}

// List devolve todos os equipamentos na ordem da tabela.
func (r *EquipmentRepo) List(ctx context.Context) ([]*entity.Equipment, error) {
	rows, err := r.store.ReadAll(ctx, rowstore.TableEquipment)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Equipment, 0, len(rows))
	for _, row := range rows {
		eq, err := equipmentFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, eq)
	}
	return out, nil
}

// GetByID devolve (nil, nil) quando o id não existe.
func (r *EquipmentRepo) GetByID(ctx context.Context, id int64) (*entity.Equipment, error) {
	list, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, eq := range list {
		if eq.ID == id {
			return eq, nil
		}
	}
	return nil, nil
}

// GetBySerial devolve o equipamento com o nº de série, ignorando caixa;
// (nil, nil) quando não há.
func (r *EquipmentRepo) GetBySerial(ctx context.Context, serial string) (*entity.Equipment, error) {
	serial = strings.TrimSpace(serial)
	if serial == "" {
		return nil, nil
	}
	list, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, eq := range list {
		if eq.SerialNumber != "" && strings.EqualFold(eq.SerialNumber, serial) {
			return eq, nil
		}
	}
	return nil, nil
}

// Create atribui o próximo id e grava a linha nova.
func (r *EquipmentRepo) Create(ctx context.Context, eq *entity.Equipment) error {
	id, err := nextID(ctx, r.store, rowstore.TableEquipment, "id")
	if err != nil {
		return err
	}
	eq.ID = id
	return r.store.Append(ctx, rowstore.TableEquipment, equipmentToRow(eq))
}

// Update reescreve a linha inteira do equipamento.
func (r *EquipmentRepo) Update(ctx context.Context, eq *entity.Equipment) error {
	return r.store.Update(ctx, rowstore.TableEquipment, "id", formatID(eq.ID),
		equipmentToRow(eq), nil)
}

// UpdateQuantity atualiza só a célula de quantidade, com guarda sobre o
// valor anterior.
func (r *EquipmentRepo) UpdateQuantity(ctx context.Context, id int64, expected, value int) error {
	return r.store.Update(ctx, rowstore.TableEquipment, "id", formatID(id),
		rowstore.Row{"quantidade": strconv.Itoa(value)},
		rowstore.Row{"quantidade": strconv.Itoa(expected)})
}

// SetStatus troca o status com guarda sobre o status anterior.
func (r *EquipmentRepo) SetStatus(ctx context.Context, id int64, expected, value string) error {
	return r.store.Update(ctx, rowstore.TableEquipment, "id", formatID(id),
		rowstore.Row{"status": value},
		rowstore.Row{"status": expected})
}
