package sheet

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/wpuckar/hexastock-api/internal/domain/entity"
	"github.com/wpuckar/hexastock-api/internal/domain/repository"
	"github.com/wpuckar/hexastock-api/internal/infrastructure/rowstore"
)

var _ repository.ConfigRepository = (*ConfigRepo)(nil)

// Parâmetros reconhecidos da tabela config.
const (
	paramDestination     = "destino"
	paramCategory        = "categoria"
	paramDefaultMinStock = "default_estoque_minimo"
	paramTagRequired     = "tipo_tag_obrigatoria"
)

// ConfigRepo lê a tabela config e monta a fotografia imutável usada nas
// validações. Parâmetros desconhecidos são ignorados; células de valor
// vazias também.
type ConfigRepo struct {
	store rowstore.TableStore
}

// NewConfigRepository constrói o leitor de configuração.
func NewConfigRepository(store rowstore.TableStore) *ConfigRepo {
	return &ConfigRepo{store: store}
}

// Load lê todas as linhas parametro/valor e agrega por parâmetro.
func (r *ConfigRepo) Load(ctx context.Context) (*entity.ConfigSnapshot, error) {
	rows, err := r.store.ReadAll(ctx, rowstore.TableConfig)
	if err != nil {
		return nil, err
	}
	snap := &entity.ConfigSnapshot{}
	for _, row := range rows {
		value := strings.TrimSpace(row["valor"])
		if value == "" {
			continue
		}
		switch strings.TrimSpace(row["parametro"]) {
		case paramDestination:
			snap.Destinations = append(snap.Destinations, value)
		case paramCategory:
			snap.Categories = append(snap.Categories, value)
		case paramTagRequired:
			snap.TagRequiredTypes = append(snap.TagRequiredTypes, value)
		case paramDefaultMinStock:
			if n, err := strconv.Atoi(value); err == nil && n >= 0 {
				snap.DefaultMinStock = n
			}
		}
	}
	sort.Strings(snap.Destinations)
	sort.Strings(snap.Categories)
	return snap, nil
}
