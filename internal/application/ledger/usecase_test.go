package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wpuckar/hexastock-api/internal/application/dto"
	"github.com/wpuckar/hexastock-api/internal/application/ledger"
	"github.com/wpuckar/hexastock-api/internal/application/registry"
	"github.com/wpuckar/hexastock-api/internal/domain"
	"github.com/wpuckar/hexastock-api/internal/domain/entity"
	"github.com/wpuckar/hexastock-api/internal/infrastructure/rowstore"
	"github.com/wpuckar/hexastock-api/internal/infrastructure/rowstore/memory"
	"github.com/wpuckar/hexastock-api/internal/infrastructure/sheet"
	"github.com/wpuckar/hexastock-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de teste
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	store     *memory.Store
	equipRepo *sheet.EquipmentRepo
	movRepo   *sheet.MovementRepo
	registry  *registry.UseCase
	uc        *ledger.UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()
	equipRepo := sheet.NewEquipmentRepository(store)
	movRepo := sheet.NewMovementRepository(store)
	configRepo := sheet.NewConfigRepository(store)
	log := logger.Nop()
	return &fixture{
		store:     store,
		equipRepo: equipRepo,
		movRepo:   movRepo,
		registry:  registry.New(equipRepo, movRepo, configRepo, log),
		uc:        ledger.New(equipRepo, movRepo, configRepo, log),
	}
}

// seedEquipment cadastra um equipamento com estoque inicial e devolve o id.
func (f *fixture) seedEquipment(t *testing.T, name string, initial, minStock int) int64 {
	t.Helper()
	eq, err := f.registry.Register(context.Background(), dto.RegisterEquipmentRequest{
		Name:            name,
		Category:        "Geral",
		InitialQuantity: initial,
		MinStock:        &minStock,
	})
	require.NoError(t, err)
	return eq.ID
}

func (f *fixture) quantity(t *testing.T, id int64) int {
	t.Helper()
	qty, err := f.registry.CurrentQuantity(context.Background(), id)
	require.NoError(t, err)
	return qty
}

func (f *fixture) ledgerSize(t *testing.T, id int64) int {
	t.Helper()
	movs, err := f.movRepo.ListByEquipment(context.Background(), id)
	require.NoError(t, err)
	return len(movs)
}

// ──────────────────────────────────────────────────────────────────────────────
// RecordMovement
// ──────────────────────────────────────────────────────────────────────────────

// A quantidade atual é sempre a soma assinada dos lançamentos aceitos:
// entradas somam, saídas e descartes subtraem.
func TestRecordMovement_QuantidadeDerivadaDoLedger(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.seedEquipment(t, "Teclado USB", 10, 2)

	_, err := f.uc.RecordMovement(ctx, dto.RecordMovementRequest{
		EquipmentID: id, Type: entity.MovementExit, Quantity: 3,
		Sector: "Financeiro", Requester: "joao.souza", Handler: "ana.lima",
	})
	require.NoError(t, err)
	assert.Equal(t, 7, f.quantity(t, id))

	_, err = f.uc.RecordMovement(ctx, dto.RecordMovementRequest{
		EquipmentID: id, Type: entity.MovementReturn, Quantity: 1,
		Sector: "Financeiro", Handler: "ana.lima",
	})
	require.NoError(t, err)
	assert.Equal(t, 8, f.quantity(t, id))

	_, err = f.uc.RecordMovement(ctx, dto.RecordMovementRequest{
		EquipmentID: id, Type: entity.MovementDisposal, Quantity: 2,
		Handler: "ana.lima", Reason: "Teclas quebradas, laudo 77",
	})
	require.NoError(t, err)
	assert.Equal(t, 6, f.quantity(t, id))
}

// Cenário clássico: 10 monitores, saída de 9 deixa o estoque abaixo do
// mínimo; a saída de 5 em seguida é rejeitada e o ledger fica intacto.
func TestRecordMovement_SaldoInsuficienteNaoGravaNada(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.seedEquipment(t, "Monitor Dell 24", 10, 2)

	_, err := f.uc.RecordMovement(ctx, dto.RecordMovementRequest{
		EquipmentID: id, Type: entity.MovementExit, Quantity: 9,
		Sector: "Atendimento", Requester: "carla.melo", Handler: "ana.lima",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, f.quantity(t, id))

	low, err := f.registry.IsLowStock(ctx, id)
	require.NoError(t, err)
	assert.True(t, low)

	before := f.ledgerSize(t, id)
	_, err = f.uc.RecordMovement(ctx, dto.RecordMovementRequest{
		EquipmentID: id, Type: entity.MovementExit, Quantity: 5,
		Sector: "Atendimento", Handler: "ana.lima",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, before, f.ledgerSize(t, id))
	assert.Equal(t, 1, f.quantity(t, id))
}

func TestRecordMovement_DescarteExigeMotivo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.seedEquipment(t, "Nobreak", 2, 0)

	_, err := f.uc.RecordMovement(ctx, dto.RecordMovementRequest{
		EquipmentID: id, Type: entity.MovementDisposal, Quantity: 1, Handler: "ana.lima",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, 2, f.quantity(t, id))

	_, err = f.uc.RecordMovement(ctx, dto.RecordMovementRequest{
		EquipmentID: id, Type: entity.MovementDisposal, Quantity: 1,
		Handler: "ana.lima", Reason: "Bateria estufada",
	})
	assert.NoError(t, err)
}

// Descarte pode zerar o estoque, mas nunca passar dele.
func TestRecordMovement_DescarteLimitadoAoSaldo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.seedEquipment(t, "Estabilizador", 3, 0)

	_, err := f.uc.RecordMovement(ctx, dto.RecordMovementRequest{
		EquipmentID: id, Type: entity.MovementDisposal, Quantity: 4,
		Handler: "ana.lima", Reason: "Lote queimado",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = f.uc.RecordMovement(ctx, dto.RecordMovementRequest{
		EquipmentID: id, Type: entity.MovementDisposal, Quantity: 3,
		Handler: "ana.lima", Reason: "Lote queimado",
	})
	require.NoError(t, err)
	assert.Zero(t, f.quantity(t, id))
}

func TestRecordMovement_ValidacoesBasicas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.seedEquipment(t, "Switch 24p", 5, 1)

	_, err := f.uc.RecordMovement(ctx, dto.RecordMovementRequest{
		EquipmentID: 99, Type: entity.MovementExit, Quantity: 1, Sector: "TI", Handler: "ana",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.RecordMovement(ctx, dto.RecordMovementRequest{
		EquipmentID: id, Type: "Empréstimo", Quantity: 1, Sector: "TI", Handler: "ana",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.uc.RecordMovement(ctx, dto.RecordMovementRequest{
		EquipmentID: id, Type: entity.MovementExit, Quantity: 0, Sector: "TI", Handler: "ana",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.uc.RecordMovement(ctx, dto.RecordMovementRequest{
		EquipmentID: id, Type: entity.MovementExit, Quantity: 1, Sector: "TI",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	// Saída e entrada exigem setor; descarte não.
	_, err = f.uc.RecordMovement(ctx, dto.RecordMovementRequest{
		EquipmentID: id, Type: entity.MovementExit, Quantity: 1, Handler: "ana",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRecordMovement_EquipamentoBaixadoRejeitado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.seedEquipment(t, "Scanner", 2, 0)
	require.NoError(t, f.registry.Retire(ctx, id))

	_, err := f.uc.RecordMovement(ctx, dto.RecordMovementRequest{
		EquipmentID: id, Type: entity.MovementExit, Quantity: 1, Sector: "TI", Handler: "ana",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

// Com a lista de destinos configurada, o setor precisa constar nela.
func TestRecordMovement_SetorValidadoContraConfig(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.seedEquipment(t, "Projetor", 2, 0)
	require.NoError(t, f.store.Append(ctx, rowstore.TableConfig,
		rowstore.Row{"parametro": "destino", "valor": "TI"}))

	_, err := f.uc.RecordMovement(ctx, dto.RecordMovementRequest{
		EquipmentID: id, Type: entity.MovementExit, Quantity: 1, Sector: "RH", Handler: "ana",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.uc.RecordMovement(ctx, dto.RecordMovementRequest{
		EquipmentID: id, Type: entity.MovementExit, Quantity: 1, Sector: "ti", Handler: "ana",
	})
	assert.NoError(t, err)
}

// Depois de cada lançamento, a célula de quantidade da tabela converge para
// a soma do ledger.
func TestRecordMovement_AtualizaCelulaDeCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.seedEquipment(t, "Roteador", 6, 1)

	_, err := f.uc.RecordMovement(ctx, dto.RecordMovementRequest{
		EquipmentID: id, Type: entity.MovementExit, Quantity: 2, Sector: "TI", Handler: "ana",
	})
	require.NoError(t, err)

	eq, err := f.equipRepo.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, eq)
	assert.Equal(t, 4, eq.Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestLastExit_SugereOrigemDaDevolucao(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.seedEquipment(t, "Notebook Lenovo", 5, 1)

	last, err := f.uc.LastExit(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, last)

	_, err = f.uc.RecordMovement(ctx, dto.RecordMovementRequest{
		EquipmentID: id, Type: entity.MovementExit, Quantity: 1,
		Sector: "Financeiro", Requester: "joao.souza", Handler: "ana",
	})
	require.NoError(t, err)
	_, err = f.uc.RecordMovement(ctx, dto.RecordMovementRequest{
		EquipmentID: id, Type: entity.MovementExit, Quantity: 1,
		Sector: "Jurídico", Requester: "carla.melo", Handler: "ana",
	})
	require.NoError(t, err)

	last, err = f.uc.LastExit(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, "Jurídico", last.Sector)
	assert.Equal(t, "carla.melo", last.Requester)
}

func TestListByEquipment_EquipamentoInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.ListByEquipment(context.Background(), 77)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// O filtro de período é inclusivo nos dois limites; limites nulos não
// filtram nada.
func TestListByPeriod_IntervaloInclusivo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.seedEquipment(t, "Cabo HDMI", 10, 0)

	mov, err := f.uc.RecordMovement(ctx, dto.RecordMovementRequest{
		EquipmentID: id, Type: entity.MovementExit, Quantity: 1, Sector: "TI", Handler: "ana",
	})
	require.NoError(t, err)

	all, err := f.uc.ListByPeriod(ctx, nil, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2) // entrada inicial + saída

	// As células só guardam precisão de segundos.
	exact := mov.Date.Truncate(time.Second)
	hit, err := f.uc.ListByPeriod(ctx, &exact, &exact)
	require.NoError(t, err)
	assert.NotEmpty(t, hit)

	future := mov.Date.Add(time.Hour)
	none, err := f.uc.ListByPeriod(ctx, &future, nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}
