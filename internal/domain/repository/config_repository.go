package repository

import (
	"context"

	"github.com/wpuckar/hexastock-api/internal/domain/entity"
)

// ConfigRepository carrega a fotografia da tabela config. Somente leitura.
type ConfigRepository interface {
	Load(ctx context.Context) (*entity.ConfigSnapshot, error)
}
