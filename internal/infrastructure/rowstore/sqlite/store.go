// Package sqlite implementa o TableStore sobre um arquivo SQLite local
// (driver puro-Go), útil para instalações de uma máquina só e para
// desenvolvimento sem PostgreSQL.
package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/wpuckar/hexastock-api/internal/domain"
	"github.com/wpuckar/hexastock-api/internal/infrastructure/rowstore"
)

// Store adapta um sqlx.DB sobre SQLite ao contrato TableStore.
type Store struct {
	db *sqlx.DB
}

var _ rowstore.TableStore = (*Store)(nil)

// Connect abre (ou cria) o arquivo do banco. Uma conexão só: SQLite não
// tolera escritores concorrentes no mesmo arquivo.
func Connect(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// New constrói o store sobre uma conexão já aberta.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// EnsureSchema cria as quatro tabelas quando ainda não existem.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for table, cols := range rowstore.Columns {
		defs := make([]string, 0, len(cols)+1)
		defs = append(defs, "rowid_seq INTEGER PRIMARY KEY AUTOINCREMENT")
		for _, c := range cols {
			defs = append(defs, fmt.Sprintf("%s TEXT NOT NULL DEFAULT ''", c))
		}
		ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", table, strings.Join(defs, ", "))
		if _, err := s.db.ExecContext(ctx, ddl); err != nil {
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
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY rowid_seq", strings.Join(cols, ", "), table)
	rows, err := s.db.QueryContext(ctx, query)
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
		marks = append(marks, "?")
		args = append(args, row[c])
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(names, ", "), strings.Join(marks, ", "))
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: inserir em %s: %v", domain.ErrGateway, table, err)
	}
	return nil
}

// Update reescreve colunas de uma linha com a guarda otimista no WHERE,
// desambiguando zero linhas afetadas com uma releitura.
func (s *Store) Update(ctx context.Context, table, idColumn, id string, row, guard rowstore.Row) error {
	if _, ok := rowstore.Columns[table]; !ok {
		return fmt.Errorf("%w: tabela desconhecida %q", domain.ErrGateway, table)
	}
	sets := make([]string, 0, len(row))
	args := make([]any, 0, len(row)+len(guard)+1)
	for col, v := range row {
		sets = append(sets, fmt.Sprintf("%s = ?", col))
		args = append(args, v)
	}
	where := []string{fmt.Sprintf("%s = ?", idColumn)}
	args = append(args, id)
	for col, v := range guard {
		where = append(where, fmt.Sprintf("%s = ?", col))
		args = append(args, v)
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s",
		table, strings.Join(sets, ", "), strings.Join(where, " AND "))
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: atualizar %s: %v", domain.ErrGateway, table, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: atualizar %s: %v", domain.ErrGateway, table, err)
	}
	if affected > 0 {
		return nil
	}

	var exists int
	check := fmt.Sprintf("SELECT COUNT(1) FROM %s WHERE %s = ?", table, idColumn)
	if err := s.db.QueryRowContext(ctx, check, id).Scan(&exists); err != nil {
		return fmt.Errorf("%w: verificar %s: %v", domain.ErrGateway, table, err)
	}
	if exists == 0 {
		return fmt.Errorf("%w: %s=%s em %s", domain.ErrNotFound, idColumn, id, table)
	}
	return fmt.Errorf("%w: guarda divergente em %s (%s=%s)", domain.ErrConflict, table, idColumn, id)
}
