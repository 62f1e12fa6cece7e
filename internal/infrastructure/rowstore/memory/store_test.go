package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wpuckar/hexastock-api/internal/domain"
	"github.com/wpuckar/hexastock-api/internal/infrastructure/rowstore"
	"github.com/wpuckar/hexastock-api/internal/infrastructure/rowstore/memory"
)

func TestAppendEReadAll_OrdemDeInsercao(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, rowstore.TableConfig, rowstore.Row{"parametro": "a"}))
	require.NoError(t, store.Append(ctx, rowstore.TableConfig, rowstore.Row{"parametro": "b"}))

	rows, err := store.ReadAll(ctx, rowstore.TableConfig)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "a", rows[0]["parametro"])
	assert.Equal(t, "b", rows[1]["parametro"])
}

// ReadAll devolve cópias: mexer no resultado não contamina o armazenamento.
func TestReadAll_DevolveCopias(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	require.NoError(t, store.Append(ctx, rowstore.TableConfig, rowstore.Row{"parametro": "destino", "valor": "TI"}))

	rows, err := store.ReadAll(ctx, rowstore.TableConfig)
	require.NoError(t, err)
	rows[0]["valor"] = "adulterado"

	again, err := store.ReadAll(ctx, rowstore.TableConfig)
	require.NoError(t, err)
	assert.Equal(t, "TI", again[0]["valor"])
}

func TestTabelaDesconhecida(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	_, err := store.ReadAll(ctx, "planilha_secreta")
	assert.ErrorIs(t, err, domain.ErrGateway)

	err = store.Append(ctx, "planilha_secreta", rowstore.Row{})
	assert.ErrorIs(t, err, domain.ErrGateway)
}

// A guarda otimista do Update: valores divergentes falham com ErrConflict e
// nada muda; a guarda correta aplica só as colunas enviadas.
func TestUpdate_GuardaOtimista(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	require.NoError(t, store.Append(ctx, rowstore.TableEquipment, rowstore.Row{
		"id": "1", "nome": "Teclado", "quantidade": "4",
	}))

	err := store.Update(ctx, rowstore.TableEquipment, "id", "1",
		rowstore.Row{"quantidade": "3"},
		rowstore.Row{"quantidade": "9"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	rows, err := store.ReadAll(ctx, rowstore.TableEquipment)
	require.NoError(t, err)
	assert.Equal(t, "4", rows[0]["quantidade"])

	err = store.Update(ctx, rowstore.TableEquipment, "id", "1",
		rowstore.Row{"quantidade": "3"},
		rowstore.Row{"quantidade": "4"})
	require.NoError(t, err)

	rows, err = store.ReadAll(ctx, rowstore.TableEquipment)
	require.NoError(t, err)
	assert.Equal(t, "3", rows[0]["quantidade"])
	assert.Equal(t, "Teclado", rows[0]["nome"])
}

func TestUpdate_IdInexistente(t *testing.T) {
	store := memory.New()
	err := store.Update(context.Background(), rowstore.TableEquipment, "id", "9",
		rowstore.Row{"quantidade": "1"}, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
