package repository

import (
	"context"

	"github.com/wpuckar/hexastock-api/internal/domain/entity"
)

// StockMovementRepository é o port do ledger de movimentações de estoque.
// O ledger é append-only: não há update nem delete.
type StockMovementRepository interface {
	List(ctx context.Context) ([]*entity.StockMovement, error)
	ListByEquipment(ctx context.Context, equipmentID int64) ([]*entity.StockMovement, error)

	// Append atribui o próximo id sequencial e grava o lançamento.
	Append(ctx context.Context, mov *entity.StockMovement) error
}
