// Package postgres implementa o TableStore sobre PostgreSQL. Cada tabela
// lógica vira uma tabela SQL com as mesmas colunas, todas TEXT; o banco é
// usado apenas como guarda de linhas, sem constraints nem consultas ricas,
// para manter a paridade de comportamento com os demais backends.
package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wpuckar/hexastock-api/internal/domain"
	"github.com/wpuckar/hexastock-api/internal/infrastructure/rowstore"
)

// Store adapta um pool pgx ao contrato TableStore.
type Store struct {
	pool *pgxpool.Pool
}

var _ rowstore.TableStore = (*Store)(nil)

// NewPool abre o pool de conexões a partir do DSN.
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("abrir pool postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}

// New constrói o store sobre um pool já aberto.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// EnsureSchema cria as quatro tabelas quando ainda não existem. rowid é a
// chave física de ordenação de inserção; as colunas lógicas são as da
// planilha.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for table, cols := range rowstore.Columns {
		defs := make([]string, 0, len(cols)+1)
		defs = append(defs, "rowid BIGSERIAL PRIMARY KEY")
		for _, c := range cols {
			defs = append(defs, fmt.Sprintf("%s TEXT NOT NULL DEFAULT ''", c))
		}
		ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", table, strings.Join(defs, ", "))
		if _, err := s.pool.Exec(ctx, ddl); err != nil {
			return fmt.Errorf("%w: criar tabela %s: %v", domain.ErrGateway, table, err)
		}
	}
	return nil
}

// ReadAll lê todas as linhas na ordem de inserção.
func (s *Store) ReadAll(ctx context.Context, table string) ([]rowstore.Row, error) {
	cols, ok := rowstore.Columns[table]
	if !ok {
		return nil, fmt.Errorf("%w: tabela desconhecida %q", domain.ErrGateway, table)
	}
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY rowid", strings.Join(cols, ", "), table)
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: ler %s: %v", domain.ErrGateway, table, err)
	}
	defer rows.Close()

	var out []rowstore.Row
	for rows.Next() {
		values := make([]string, len(cols))
		dest := make([]any, len(cols))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("%w: scan %s: %v", domain.ErrGateway, table, err)
		}
		row := make(rowstore.Row, len(cols))
		for i, c := range cols {
			row[c] = values[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ler %s: %v", domain.ErrGateway, table, err)
	}
	return out, nil
}

// Append insere a linha nova.
func (s *Store) Append(ctx context.Context, table string, row rowstore.Row) error {
	cols, ok := rowstore.Columns[table]
	if !ok {
		return fmt.Errorf("%w: tabela desconhecida %q", domain.ErrGateway, table)
	}
	names := make([]string, 0, len(cols))
	marks := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols))
	for _, c := range cols {
		names = append(names, c)
		marks = append(marks, fmt.Sprintf("$%d", len(args)+1))
		args = append(args, row[c])
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(names, ", "), strings.Join(marks, ", "))
	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: inserir em %s: %v", domain.ErrGateway, table, err)
	}
	return nil
}

// Update reescreve colunas de uma linha com a guarda otimista no WHERE.
// Zero linhas afetadas é desambiguado com uma releitura: linha ausente vira
// ErrNotFound, guarda divergente vira ErrConflict.
func (s *Store) Update(ctx context.Context, table, idColumn, id string, row, guard rowstore.Row) error {
	if _, ok := rowstore.Columns[table]; !ok {
		return fmt.Errorf("%w: tabela desconhecida %q", domain.ErrGateway, table)
	}
	sets := make([]string, 0, len(row))
	args := make([]any, 0, len(row)+len(guard)+1)
	for col, v := range row {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	args = append(args, id)
	where := []string{fmt.Sprintf("%s = $%d", idColumn, len(args))}
	for col, v := range guard {
		args = append(args, v)
		where = append(where, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s",
		table, strings.Join(sets, ", "), strings.Join(where, " AND "))
	cmd, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: atualizar %s: %v", domain.ErrGateway, table, err)
	}
	if cmd.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	check := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)", table, idColumn)
	if err := s.pool.QueryRow(ctx, check, id).Scan(&exists); err != nil {
		return fmt.Errorf("%w: verificar %s: %v", domain.ErrGateway, table, err)
	}
	if !exists {
		return fmt.Errorf("%w: %s=%s em %s", domain.ErrNotFound, idColumn, id, table)
	}
	return fmt.Errorf("%w: guarda divergente em %s (%s=%s)", domain.ErrConflict, table, idColumn, id)
}
