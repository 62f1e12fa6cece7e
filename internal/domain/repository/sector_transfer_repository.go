package repository

import (
	"context"

	"github.com/wpuckar/hexastock-api/internal/domain/entity"
)

// SectorTransferRepository é o port do ledger de transferências entre
// setores. Registros nunca são apagados; só o status muda, uma única vez.
type SectorTransferRepository interface {
	List(ctx context.Context) ([]*entity.SectorTransfer, error)
	GetByID(ctx context.Context, id int64) (*entity.SectorTransfer, error)

	// Append atribui o próximo id sequencial e grava a transferência.
	Append(ctx context.Context, tr *entity.SectorTransfer) error

	// SetStatus troca o status de regularização com guarda otimista sobre o
	// status anterior; falha com ErrConflict se outro cliente já o mudou.
	SetStatus(ctx context.Context, id int64, expected, value string) error
}
