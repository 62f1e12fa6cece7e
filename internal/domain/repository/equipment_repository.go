package repository

import (
	"context"

	"github.com/wpuckar/hexastock-api/internal/domain/entity"
)

// EquipmentRepository é o port de persistência do registro de equipamentos.
// GetByID devolve (nil, nil) quando o id não existe, seguindo a convenção
// dos demais repositórios.
type EquipmentRepository interface {
	List(ctx context.Context) ([]*entity.Equipment, error)
	GetByID(ctx context.Context, id int64) (*entity.Equipment, error)
	GetBySerial(ctx context.Context, serial string) (*entity.Equipment, error)

	// Create atribui o próximo id sequencial e grava a linha nova.
	Create(ctx context.Context, eq *entity.Equipment) error

	// Update reescreve a linha inteira do equipamento (campos mutáveis).
	Update(ctx context.Context, eq *entity.Equipment) error

	// UpdateQuantity atualiza a célula de quantidade com guarda otimista:
	// falha com ErrConflict se a célula não contiver mais expected.
	UpdateQuantity(ctx context.Context, id int64, expected, value int) error

	// SetStatus troca o status com guarda otimista sobre o status anterior.
	SetStatus(ctx context.Context, id int64, expected, value string) error
}
