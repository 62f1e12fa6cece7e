package sheet

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wpuckar/hexastock-api/internal/domain"
	"github.com/wpuckar/hexastock-api/internal/domain/entity"
	"github.com/wpuckar/hexastock-api/internal/infrastructure/rowstore"
	"github.com/wpuckar/hexastock-api/internal/infrastructure/rowstore/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Codec de células
// ──────────────────────────────────────────────────────────────────────────────

func TestCellTimeLayout_IdaEVolta(t *testing.T) {
	orig := time.Date(2026, 3, 15, 14, 30, 5, 0, time.Local)
	cell := formatTimeCell(orig)
	assert.Equal(t, "15-03-2026 14:30:05", cell)

	parsed, err := parseTimeCell("equipamentos", "1", "data_cadastro", cell)
	require.NoError(t, err)
	assert.True(t, orig.Equal(parsed))
}

func TestParseID_RejeitaInvalidos(t *testing.T) {
	for _, bad := range []string{"", "abc", "0", "-3", "1.5"} {
		_, err := parseID("equipamentos", "id", bad)
		assert.ErrorIs(t, err, ErrBadRow, "valor %q", bad)
		assert.ErrorIs(t, err, domain.ErrGateway, "valor %q", bad)
	}
	id, err := parseID("equipamentos", "id", " 7 ")
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
}

// nextID é max+1 sobre as linhas existentes; células não numéricas na coluna
// de id não entram no cálculo.
func TestNextID_MaxMaisUmIgnorandoLixo(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	for _, id := range []string{"2", "cabeçalho", "5", ""} {
		require.NoError(t, store.Append(ctx, rowstore.TableConfig, rowstore.Row{"parametro": id}))
	}
	next, err := nextID(ctx, store, rowstore.TableConfig, "parametro")
	require.NoError(t, err)
	assert.Equal(t, int64(6), next)

	empty, err := nextID(ctx, store, rowstore.TableEquipment, "id")
	require.NoError(t, err)
	assert.Equal(t, int64(1), empty)
}

// ──────────────────────────────────────────────────────────────────────────────
// Equipamentos: linhas malformadas
// ──────────────────────────────────────────────────────────────────────────────

func validEquipmentRow() rowstore.Row {
	return rowstore.Row{
		"id":             "1",
		"nome":           "Teclado",
		"numero_serie":   "SER-1",
		"descricao":      "",
		"quantidade":     "4",
		"status":         entity.EquipmentActive,
		"data_cadastro":  "01-02-2026 09:00:00",
		"estoque_minimo": "2",
		"categoria":      "Periféricos",
	}
}

// Linha que não pôde ser interpretada é rejeitada como falha do gateway,
// nunca entregue pela metade à lógica de negócio.
func TestEquipmentList_RejeitaLinhaMalformada(t *testing.T) {
	cases := map[string]rowstore.Row{
		"quantidade não numérica": func() rowstore.Row {
			r := validEquipmentRow()
			r["quantidade"] = "muitos"
			return r
		}(),
		"quantidade negativa": func() rowstore.Row {
			r := validEquipmentRow()
			r["quantidade"] = "-2"
			return r
		}(),
		"status desconhecido": func() rowstore.Row {
			r := validEquipmentRow()
			r["status"] = "Emprestado"
			return r
		}(),
		"data fora do formato": func() rowstore.Row {
			r := validEquipmentRow()
			r["data_cadastro"] = "2026-02-01"
			return r
		}(),
	}
	for name, row := range cases {
		t.Run(name, func(t *testing.T) {
			store := memory.New()
			ctx := context.Background()
			require.NoError(t, store.Append(ctx, rowstore.TableEquipment, row))

			_, err := NewEquipmentRepository(store).List(ctx)
			assert.ErrorIs(t, err, domain.ErrGateway)
		})
	}
}

func TestEquipmentRepo_CriaEReleEquivalente(t *testing.T) {
	store := memory.New()
	repo := NewEquipmentRepository(store)
	ctx := context.Background()

	eq := &entity.Equipment{
		Name:         "Monitor AOC",
		SerialNumber: "MON-9",
		Quantity:     3,
		Status:       entity.EquipmentActive,
		RegisteredAt: time.Date(2026, 1, 10, 8, 0, 0, 0, time.Local),
		MinStock:     1,
		Category:     "Monitor",
	}
	require.NoError(t, repo.Create(ctx, eq))
	assert.Equal(t, int64(1), eq.ID)

	got, err := repo.GetByID(ctx, eq.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, eq, got)

	bySerial, err := repo.GetBySerial(ctx, "mon-9")
	require.NoError(t, err)
	require.NotNil(t, bySerial)
	assert.Equal(t, eq.ID, bySerial.ID)

	missing, err := repo.GetByID(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimentações: linhas malformadas
// ──────────────────────────────────────────────────────────────────────────────

func TestMovementList_RejeitaTipoDesconhecido(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	require.NoError(t, store.Append(ctx, rowstore.TableMovements, rowstore.Row{
		"id_movimentacao":   "1",
		"id_equipamento_fk": "1",
		"tipo_movimentacao": "Empréstimo",
		"quantidade_movida": "2",
		"data_movimentacao": "01-02-2026 09:00:00",
	}))

	_, err := NewMovementRepository(store).List(ctx)
	assert.ErrorIs(t, err, domain.ErrGateway)
}

func TestMovementList_RejeitaQuantidadeNaoPositiva(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	require.NoError(t, store.Append(ctx, rowstore.TableMovements, rowstore.Row{
		"id_movimentacao":   "1",
		"id_equipamento_fk": "1",
		"tipo_movimentacao": entity.MovementExit,
		"quantidade_movida": "0",
		"data_movimentacao": "01-02-2026 09:00:00",
	}))

	_, err := NewMovementRepository(store).List(ctx)
	assert.ErrorIs(t, err, domain.ErrGateway)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transferências: serialização de componentes
// ──────────────────────────────────────────────────────────────────────────────

// Item único sem rótulo grava as células cruas; kit grava uma linha rotulada
// por componente, pareando servicetags por posição na volta.
func TestComponentes_IdaEVolta(t *testing.T) {
	single := []entity.Component{{AssetTag: "PAT-1", ServiceTag: "SVC-1"}}
	pat, tag := encodeComponents(single)
	assert.Equal(t, "PAT-1", pat)
	assert.Equal(t, "SVC-1", tag)
	assert.Equal(t, single, decodeComponents(pat, tag))

	// Item único com rótulo também grava cru: o rótulo não sobrevive ao
	// parse de célula sem quebra de linha, então nunca entra na célula.
	labeled := []entity.Component{{Label: "Desktop", AssetTag: "PAT-9", ServiceTag: "SVC-9"}}
	pat, tag = encodeComponents(labeled)
	assert.Equal(t, "PAT-9", pat)
	assert.Equal(t, "SVC-9", tag)
	assert.Equal(t, []entity.Component{{AssetTag: "PAT-9", ServiceTag: "SVC-9"}},
		decodeComponents(pat, tag))

	kit := []entity.Component{
		{Label: "Desktop", AssetTag: "PAT-1", ServiceTag: "SVC-1"},
		{Label: "Monitor 1", AssetTag: "PAT-2", ServiceTag: "SVC-2"},
		{Label: "Monitor 2", AssetTag: "PAT-3", ServiceTag: "SVC-3"},
	}
	pat, tag = encodeComponents(kit)
	assert.Equal(t, "Desktop: PAT-1\nMonitor 1: PAT-2\nMonitor 2: PAT-3", pat)
	assert.Equal(t, kit, decodeComponents(pat, tag))
}

// Linhas antigas com a célula de status vazia valem como pendentes.
func TestTransferList_StatusVazioValePendente(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	require.NoError(t, store.Append(ctx, rowstore.TableSectorMovements, rowstore.Row{
		"id":                "1",
		"data_movimentacao": "05-01-2026 10:00:00",
		"tipo_equipamento":  "Teclado",
		"patrimonio":        "PAT-1",
	}))

	list, err := NewTransferRepository(store).List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, entity.TransferPending, list[0].Status)
	assert.True(t, list[0].Pending())
}

func TestTransferList_RejeitaStatusDesconhecido(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	require.NoError(t, store.Append(ctx, rowstore.TableSectorMovements, rowstore.Row{
		"id":                   "1",
		"data_movimentacao":    "05-01-2026 10:00:00",
		"tipo_equipamento":     "Teclado",
		"patrimonio":           "PAT-1",
		"status_regularizacao": "Em análise",
	}))

	_, err := NewTransferRepository(store).List(ctx)
	assert.ErrorIs(t, err, domain.ErrGateway)
}

// ──────────────────────────────────────────────────────────────────────────────
// Config
// ──────────────────────────────────────────────────────────────────────────────

// A leitura agrega por parâmetro, ordena as listas e ignora parâmetros
// desconhecidos e valores vazios.
func TestConfigLoad_AgregaEOrdena(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	rows := [][2]string{
		{"destino", "TI"},
		{"destino", "Financeiro"},
		{"categoria", "Monitor"},
		{"default_estoque_minimo", "4"},
		{"tipo_tag_obrigatoria", "Notebook"},
		{"cor_do_tema", "azul"}, // desconhecido, ignorado
		{"destino", ""},         // vazio, ignorado
	}
	for _, r := range rows {
		require.NoError(t, store.Append(ctx, rowstore.TableConfig,
			rowstore.Row{"parametro": r[0], "valor": r[1]}))
	}

	snap, err := NewConfigRepository(store).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Financeiro", "TI"}, snap.Destinations)
	assert.Equal(t, []string{"Monitor"}, snap.Categories)
	assert.Equal(t, 4, snap.DefaultMinStock)
	assert.Equal(t, []string{"Notebook"}, snap.TagRequiredTypes)
}

// Tabela config vazia desativa as validações de lista e zera o default.
func TestConfigLoad_VazioDesativaValidacao(t *testing.T) {
	snap, err := NewConfigRepository(memory.New()).Load(context.Background())
	require.NoError(t, err)
	assert.True(t, snap.ValidDestination("qualquer setor"))
	assert.True(t, snap.ValidCategory("qualquer categoria"))
	assert.Zero(t, snap.DefaultMinStock)
	assert.True(t, snap.RequiresServiceTag("Desktop"))
	assert.False(t, snap.RequiresServiceTag("Teclado"))
}
