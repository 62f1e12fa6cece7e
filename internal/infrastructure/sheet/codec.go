// Package sheet é a camada de acesso tipado sobre o TableStore: converte
// linhas de células textuais em entidades e vice-versa, rejeitando
// explicitamente qualquer linha malformada em vez de deixá-la vazar para a
// lógica de negócio.
package sheet

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/wpuckar/hexastock-api/internal/domain"
	"github.com/wpuckar/hexastock-api/internal/infrastructure/rowstore"
)

// CellTimeLayout é o formato de data gravado nas células desde a planilha
// original (dd-mm-aaaa HH:MM:SS).
const CellTimeLayout = "02-01-2006 15:04:05"

// ErrBadRow marca linha que não pôde ser interpretada. Sempre embrulhado em
// domain.ErrGateway: para o chamador é falha do armazenamento, não do input.
var ErrBadRow = fmt.Errorf("%w: linha malformada", domain.ErrGateway)

func badRow(table string, id string, detail string) error {
	return fmt.Errorf("%w na tabela %s (id %s): %s", ErrBadRow, table, id, detail)
}

func parseIntCell(table, id, column, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, badRow(table, id, fmt.Sprintf("coluna %s não numérica: %q", column, value))
	}
	return n, nil
}

func parseID(table, column, value string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || n <= 0 {
		return 0, badRow(table, value, fmt.Sprintf("coluna %s inválida: %q", column, value))
	}
	return n, nil
}

func parseTimeCell(table, id, column, value string) (time.Time, error) {
	t, err := time.ParseInLocation(CellTimeLayout, strings.TrimSpace(value), time.Local)
	if err != nil {
		return time.Time{}, badRow(table, id, fmt.Sprintf("coluna %s fora do formato %s: %q", column, CellTimeLayout, value))
	}
	return t, nil
}

func formatTimeCell(t time.Time) string {
	return t.Format(CellTimeLayout)
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// nextID calcula o próximo id sequencial da tabela lendo todas as linhas e
// tomando max+1, exatamente como o sistema sempre o fez sobre a planilha.
// Células não numéricas na coluna de id são ignoradas no cálculo.
func nextID(ctx context.Context, store rowstore.TableStore, table, idColumn string) (int64, error) {
	rows, err := store.ReadAll(ctx, table)
	if err != nil {
		return 0, err
	}
	var max int64
	for _, row := range rows {
		n, err := strconv.ParseInt(strings.TrimSpace(row[idColumn]), 10, 64)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return max + 1, nil
}
