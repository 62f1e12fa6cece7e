// Package memory implementa o TableStore inteiro em memória, com as mesmas
// semânticas de guarda otimista dos backends reais. Usado pelos testes e por
// ambientes efêmeros.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/wpuckar/hexastock-api/internal/domain"
	"github.com/wpuckar/hexastock-api/internal/infrastructure/rowstore"
)

// Store guarda as linhas por tabela sob um mutex único; suficiente para o
// perfil de baixa concorrência do sistema e determinístico nos testes.
type Store struct {
	mu     sync.RWMutex
	tables map[string][]rowstore.Row
}

var _ rowstore.TableStore = (*Store)(nil)

// New cria o store com as quatro tabelas vazias.
func New() *Store {
	tables := make(map[string][]rowstore.Row, len(rowstore.Columns))
	for name := range rowstore.Columns {
		tables[name] = nil
	}
	return &Store{tables: tables}
}

// ReadAll devolve cópias de todas as linhas, na ordem de inserção.
func (s *Store) ReadAll(_ context.Context, table string) ([]rowstore.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, ok := s.tables[table]
	if !ok {
		return nil, fmt.Errorf("%w: tabela desconhecida %q", domain.ErrGateway, table)
	}
	out := make([]rowstore.Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Clone())
	}
	return out, nil
}

// Append acrescenta a linha ao fim da tabela.
func (s *Store) Append(_ context.Context, table string, row rowstore.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tables[table]; !ok {
		return fmt.Errorf("%w: tabela desconhecida %q", domain.ErrGateway, table)
	}
	s.tables[table] = append(s.tables[table], row.Clone())
	return nil
}

// Update localiza a linha pelo idColumn, verifica a guarda e funde as colunas
// presentes em row.
func (s *Store) Update(_ context.Context, table, idColumn, id string, row, guard rowstore.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, ok := s.tables[table]
	if !ok {
		return fmt.Errorf("%w: tabela desconhecida %q", domain.ErrGateway, table)
	}
	for i, r := range rows {
		if r[idColumn] != id {
			continue
		}
		for col, want := range guard {
			if r[col] != want {
				return fmt.Errorf("%w: coluna %s esperava %q, encontrou %q",
					domain.ErrConflict, col, want, r[col])
			}
		}
		for col, v := range row {
			rows[i][col] = v
		}
		return nil
	}
	return fmt.Errorf("%w: %s=%s em %s", domain.ErrNotFound, idColumn, id, table)
}
