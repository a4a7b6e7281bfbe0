package ledger_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-conteo/internal/domain"
	"github.com/jhoicas/inventario-conteo/internal/domain/entity"
	"github.com/jhoicas/inventario-conteo/internal/domain/ledger"
	"github.com/jhoicas/inventario-conteo/internal/infrastructure/memory"
)

func testCatalog() *memory.ProductRepo {
	return memory.NewProductRepository([]*entity.Product{
		{Code: "001", Description: "Açúcar cristal", Category: entity.CategoryInsumo, KnownLots: []string{"A", "B"}},
		{Code: "002", Description: "Caixa 12un", Category: entity.CategoryEmbalagem},
		{Code: "003", Description: "Sal refinado", Category: entity.CategoryInsumo},
	})
}

type failingCatalog struct{}

func (failingCatalog) GetByCode(string) (*entity.Product, error) { return nil, errors.New("sin conexión") }
func (failingCatalog) List() ([]*entity.Product, error)          { return nil, errors.New("sin conexión") }

// Escenario completo: acumulación, dos correcciones, pila vacía y código desconocido.
func TestLedger_EscenarioCompleto(t *testing.T) {
	l := ledger.New(testCatalog())

	total, err := l.Record("001", "A", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, total)

	total, err = l.Record("001", "A", 3)
	require.NoError(t, err)
	assert.Equal(t, 8, total)

	undone, err := l.UndoLast()
	require.NoError(t, err)
	assert.Equal(t, entity.HistoryEntry{ProductCode: "001", Lot: "A", Quantity: 3}, undone)
	assert.Equal(t, 5, l.Total("001", "A"))

	_, err = l.UndoLast()
	require.NoError(t, err)
	assert.Empty(t, l.Snapshot(), "el par debe desaparecer al volver a cero")
	assert.Equal(t, 0, l.Len())

	_, err = l.UndoLast()
	assert.ErrorIs(t, err, domain.ErrEmptyHistory)

	_, err = l.Record("999", "X", 1)
	assert.ErrorIs(t, err, domain.ErrUnknownProduct)
	assert.Empty(t, l.Snapshot())
	assert.Empty(t, l.History())
}

func TestLedger_Acumulacion(t *testing.T) {
	l := ledger.New(testCatalog())
	sum := 0
	for _, q := range []int{1, 7, 12, 30, 2} {
		_, err := l.Record("002", "CX-9", q)
		require.NoError(t, err)
		sum += q
	}
	assert.Equal(t, sum, l.Total("002", "CX-9"))
	assert.Len(t, l.History(), 5)
}

func TestLedger_RecordRecortaCodigoYLote(t *testing.T) {
	l := ledger.New(testCatalog())
	_, err := l.Record(" 001 ", "  A ", 2)
	require.NoError(t, err)

	assert.Equal(t, []entity.CountLine{{ProductCode: "001", Lot: "A", Quantity: 2}}, l.Snapshot())
	assert.Equal(t, entity.HistoryEntry{ProductCode: "001", Lot: "A", Quantity: 2}, l.History()[0])
}

func TestLedger_AceptaLoteNuevo(t *testing.T) {
	l := ledger.New(testCatalog())
	total, err := l.Record("001", "LOTE-NOVO", 4)
	require.NoError(t, err)
	assert.Equal(t, 4, total)
}

func TestLedger_RechazosNoAlteranEstado(t *testing.T) {
	l := ledger.New(testCatalog())
	_, err := l.Record("001", "A", 5)
	require.NoError(t, err)

	before := l.Snapshot()
	beforeHistory := l.History()

	cases := []struct {
		name string
		code string
		lot  string
		qty  int
		want error
	}{
		{"código desconocido", "999", "A", 1, domain.ErrUnknownProduct},
		{"código vacío", "  ", "A", 1, domain.ErrUnknownProduct},
		{"lote vacío", "001", "   ", 1, domain.ErrEmptyLot},
		{"cantidad cero", "001", "A", 0, domain.ErrInvalidQuantity},
		{"cantidad negativa", "001", "A", -3, domain.ErrInvalidQuantity},
		{"cantidad sobre el máximo", "001", "B", ledger.MaxQuantity + 1, domain.ErrInvalidQuantity},
		{"total desbordaría", "001", "A", ledger.MaxQuantity, domain.ErrInvalidQuantity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := l.Record(tc.code, tc.lot, tc.qty)
			assert.ErrorIs(t, err, tc.want)
			assert.Equal(t, before, l.Snapshot())
			assert.Equal(t, beforeHistory, l.History())
		})
	}
}

// Acumular hasta el máximo se acepta; un lanzamiento más se rechaza sin tocar
// mapa ni pila, y la corrección sigue reconstruyendo el total desde la pila.
func TestLedger_TotalNoSuperaMaximo(t *testing.T) {
	l := ledger.New(testCatalog())

	total, err := l.Record("001", "A", ledger.MaxQuantity-1)
	require.NoError(t, err)
	assert.Equal(t, ledger.MaxQuantity-1, total)
	total, err = l.Record("001", "A", 1)
	require.NoError(t, err)
	assert.Equal(t, ledger.MaxQuantity, total)

	before := l.Snapshot()
	beforeHistory := l.History()

	_, err = l.Record("001", "A", 1)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.Equal(t, before, l.Snapshot())
	assert.Equal(t, beforeHistory, l.History())
	for _, line := range l.Snapshot() {
		assert.Positive(t, line.Quantity)
	}

	entry, err := l.UndoLast()
	require.NoError(t, err)
	assert.Equal(t, 1, entry.Quantity)
	assert.Equal(t, ledger.MaxQuantity-1, l.Total("001", "A"))

	_, err = l.UndoLast()
	require.NoError(t, err)
	assert.Empty(t, l.Snapshot())
	assert.Empty(t, l.History())
}

func TestLedger_ErrorDeCatalogoSePropaga(t *testing.T) {
	l := ledger.New(failingCatalog{})
	_, err := l.Record("001", "A", 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrUnknownProduct)
	assert.Equal(t, 0, l.Len())
}

// Record seguido de UndoLast deja mapa, pila y orden exactamente como estaban.
func TestLedger_UndoRevierteExactamenteUnLanzamiento(t *testing.T) {
	l := ledger.New(testCatalog())
	_, _ = l.Record("001", "A", 5)
	_, _ = l.Record("002", "X", 1)
	_, _ = l.Record("001", "B", 2)

	for _, step := range []struct {
		code, lot string
		qty       int
	}{
		{"001", "A", 4}, // par existente
		{"001", "C", 3}, // lote nuevo de un grupo existente
		{"003", "Z", 9}, // grupo nuevo
	} {
		before := l.Snapshot()
		beforeHistory := l.History()

		_, err := l.Record(step.code, step.lot, step.qty)
		require.NoError(t, err)
		undone, err := l.UndoLast()
		require.NoError(t, err)

		assert.Equal(t, entity.HistoryEntry{ProductCode: step.code, Lot: step.lot, Quantity: step.qty}, undone)
		assert.Equal(t, before, l.Snapshot())
		assert.Equal(t, beforeHistory, l.History())
	}
}

func TestLedger_UndoEsLIFO(t *testing.T) {
	t.Run("misma clave", func(t *testing.T) {
		l := ledger.New(testCatalog())
		_, _ = l.Record("001", "A", 10)
		_, _ = l.Record("001", "A", 1)

		undone, err := l.UndoLast()
		require.NoError(t, err)
		assert.Equal(t, 1, undone.Quantity)
		assert.Equal(t, 10, l.Total("001", "A"))
	})

	t.Run("claves distintas", func(t *testing.T) {
		l := ledger.New(testCatalog())
		_, _ = l.Record("001", "A", 10)
		_, _ = l.Record("002", "X", 1)

		undone, err := l.UndoLast()
		require.NoError(t, err)
		assert.Equal(t, "002", undone.ProductCode)
		assert.Equal(t, 10, l.Total("001", "A"))
		assert.Equal(t, 0, l.Total("002", "X"))
		assert.Equal(t, []entity.CountLine{{ProductCode: "001", Lot: "A", Quantity: 10}}, l.Snapshot())
	})
}

func TestLedger_SnapshotOrdenDePrimerLanzamiento(t *testing.T) {
	l := ledger.New(testCatalog())
	_, _ = l.Record("002", "X", 1)
	_, _ = l.Record("001", "B", 2)
	_, _ = l.Record("002", "W", 3)
	_, _ = l.Record("001", "A", 4)
	_, _ = l.Record("002", "X", 5)

	assert.Equal(t, []entity.CountLine{
		{ProductCode: "002", Lot: "X", Quantity: 6},
		{ProductCode: "002", Lot: "W", Quantity: 3},
		{ProductCode: "001", Lot: "B", Quantity: 2},
		{ProductCode: "001", Lot: "A", Quantity: 4},
	}, l.Snapshot())
}

func TestLedger_GrupoVacioDesaparece(t *testing.T) {
	l := ledger.New(testCatalog())
	_, _ = l.Record("001", "A", 1)
	_, _ = l.Record("002", "X", 1)
	_, _ = l.Record("003", "Z", 1)

	// deshacer 003 y 002: solo queda 001
	_, _ = l.UndoLast()
	_, _ = l.UndoLast()
	assert.Equal(t, []entity.CountLine{{ProductCode: "001", Lot: "A", Quantity: 1}}, l.Snapshot())

	// 002 vuelve a contarse y aparece al final
	_, _ = l.Record("002", "Y", 7)
	assert.Equal(t, []entity.CountLine{
		{ProductCode: "001", Lot: "A", Quantity: 1},
		{ProductCode: "002", Lot: "Y", Quantity: 7},
	}, l.Snapshot())
}

func TestLedger_SinResiduosEnCero(t *testing.T) {
	l := ledger.New(testCatalog())
	ops := []struct {
		code, lot string
		qty       int
		undo      bool
	}{
		{"001", "A", 3, false}, {"001", "B", 1, false}, {"", "", 0, true},
		{"002", "X", 2, false}, {"002", "X", 2, false}, {"", "", 0, true},
		{"", "", 0, true}, {"003", "Z", 5, false}, {"", "", 0, true},
	}
	for _, op := range ops {
		if op.undo {
			_, err := l.UndoLast()
			require.NoError(t, err)
		} else {
			_, err := l.Record(op.code, op.lot, op.qty)
			require.NoError(t, err)
		}
		for _, line := range l.Snapshot() {
			assert.Greater(t, line.Quantity, 0, "ninguna fila puede quedar en cero")
		}
	}
	assert.Equal(t, []entity.CountLine{{ProductCode: "001", Lot: "A", Quantity: 3}}, l.Snapshot())
}

func TestLedger_ClearEsTotal(t *testing.T) {
	l := ledger.New(testCatalog())
	_, _ = l.Record("001", "A", 3)
	_, _ = l.Record("002", "X", 1)

	l.Clear()

	assert.Empty(t, l.Snapshot())
	assert.Empty(t, l.History())
	_, err := l.UndoLast()
	assert.ErrorIs(t, err, domain.ErrEmptyHistory)

	// el libro sigue usable
	total, err := l.Record("001", "A", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}

// Lanzamientos y correcciones concurrentes nunca dejan mapa y pila en desacuerdo.
func TestLedger_ConcurrenciaConservaInvariante(t *testing.T) {
	l := ledger.New(testCatalog())
	codes := []string{"001", "002", "003"}

	var wg sync.WaitGroup
	for i := 0; i < 60; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = l.Record(codes[i%3], "L", i%5+1)
			if i%4 == 0 {
				_, _ = l.UndoLast()
			}
		}(i)
	}
	wg.Wait()

	// reconstruir el mapa re-aplicando la pila
	replay := map[entity.LedgerKey]int{}
	for _, h := range l.History() {
		replay[entity.LedgerKey{ProductCode: h.ProductCode, Lot: h.Lot}] += h.Quantity
	}
	got := map[entity.LedgerKey]int{}
	for _, line := range l.Snapshot() {
		got[entity.LedgerKey{ProductCode: line.ProductCode, Lot: line.Lot}] = line.Quantity
	}
	assert.Equal(t, replay, got)
}
