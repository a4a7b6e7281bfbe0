// Package ledger contiene el libro de conteo físico: el mapa agregado por
// producto/lote y la pila de lanzamientos que permite corregir el último.
//
// Invariantes:
//   - la cantidad de cada clave es la suma de los deltas aún aplicados en la pila;
//   - una clave cuya cantidad llega a 0 se elimina (nunca se guarda en cero);
//   - ningún total supera MaxQuantity;
//   - mapa y pila se modifican siempre juntos bajo el mismo mutex.
package ledger

import (
	"fmt"
	"strings"
	"sync"

	"github.com/jhoicas/inventario-conteo/internal/domain"
	"github.com/jhoicas/inventario-conteo/internal/domain/entity"
	"github.com/jhoicas/inventario-conteo/internal/domain/repository"
)

// Ledger agrega cantidades contadas por producto/lote con corrección LIFO.
type Ledger struct {
	catalog repository.ProductRepository

	mu      sync.Mutex
	totals  map[entity.LedgerKey]int
	groups  []*lotGroup
	history []entity.HistoryEntry
}

// lotGroup conserva el orden de primer lanzamiento de los lotes de un producto.
type lotGroup struct {
	code string
	lots []string
}

// New crea un libro vacío que valida códigos contra el cadastro.
func New(catalog repository.ProductRepository) *Ledger {
	return &Ledger{
		catalog: catalog,
		totals:  make(map[entity.LedgerKey]int),
	}
}

// Record suma quantity al par (productCode, lot) y apila el lanzamiento.
// Devuelve el nuevo total del par. Ante cualquier error el libro no cambia.
func (l *Ledger) Record(productCode, lot string, quantity int) (int, error) {
	code := strings.TrimSpace(productCode)
	if err := l.checkProduct(code); err != nil {
		return 0, err
	}
	lot = strings.TrimSpace(lot)
	if lot == "" {
		return 0, domain.ErrEmptyLot
	}
	if quantity <= 0 || quantity > MaxQuantity {
		return 0, fmt.Errorf("%w: %d", domain.ErrInvalidQuantity, quantity)
	}

	key := entity.LedgerKey{ProductCode: code, Lot: lot}

	l.mu.Lock()
	defer l.mu.Unlock()

	total, ok := l.totals[key]
	if total > MaxQuantity-quantity {
		return 0, fmt.Errorf("%w: total de %s/%s passaria de %d", domain.ErrInvalidQuantity, code, lot, MaxQuantity)
	}
	if !ok {
		l.appendKey(key)
	}
	total += quantity
	l.totals[key] = total
	l.history = append(l.history, entity.HistoryEntry{ProductCode: code, Lot: lot, Quantity: quantity})
	return total, nil
}

// UndoLast revierte el lanzamiento más reciente y lo devuelve.
// Si el total del par iguala el delta, el par vuelve a "no contado".
func (l *Ledger) UndoLast() (entity.HistoryEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := len(l.history)
	if n == 0 {
		return entity.HistoryEntry{}, domain.ErrEmptyHistory
	}
	last := l.history[n-1]
	key := entity.LedgerKey{ProductCode: last.ProductCode, Lot: last.Lot}

	total := l.totals[key]
	if total <= last.Quantity {
		delete(l.totals, key)
		l.removeKey(key)
	} else {
		l.totals[key] = total - last.Quantity
	}
	l.history[n-1] = entity.HistoryEntry{}
	l.history = l.history[:n-1]
	return last, nil
}

// Clear vacía mapa y pila. No hay forma de deshacerlo.
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.totals = make(map[entity.LedgerKey]int)
	l.groups = nil
	l.history = nil
}

// Snapshot devuelve las filas vigentes agrupadas por producto (orden de primer
// lanzamiento) y, dentro de cada producto, por lote (mismo criterio).
func (l *Ledger) Snapshot() []entity.CountLine {
	l.mu.Lock()
	defer l.mu.Unlock()

	lines := make([]entity.CountLine, 0, len(l.totals))
	for _, g := range l.groups {
		for _, lot := range g.lots {
			qty := l.totals[entity.LedgerKey{ProductCode: g.code, Lot: lot}]
			lines = append(lines, entity.CountLine{ProductCode: g.code, Lot: lot, Quantity: qty})
		}
	}
	return lines
}

// History devuelve una copia de la pila, del más antiguo al más reciente.
func (l *Ledger) History() []entity.HistoryEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]entity.HistoryEntry, len(l.history))
	copy(out, l.history)
	return out
}

// Total devuelve la cantidad agregada del par (0 si no fue contado).
func (l *Ledger) Total(productCode, lot string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totals[entity.LedgerKey{ProductCode: strings.TrimSpace(productCode), Lot: strings.TrimSpace(lot)}]
}

// Len devuelve la cantidad de pares producto/lote vigentes.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.totals)
}

func (l *Ledger) checkProduct(code string) error {
	if code == "" {
		return domain.ErrUnknownProduct
	}
	p, err := l.catalog.GetByCode(code)
	if err != nil {
		return fmt.Errorf("consultar cadastro: %w", err)
	}
	if p == nil {
		return fmt.Errorf("%w: %s", domain.ErrUnknownProduct, code)
	}
	return nil
}

// appendKey registra una clave nueva al final de su grupo (o de un grupo nuevo).
func (l *Ledger) appendKey(key entity.LedgerKey) {
	for _, g := range l.groups {
		if g.code == key.ProductCode {
			g.lots = append(g.lots, key.Lot)
			return
		}
	}
	l.groups = append(l.groups, &lotGroup{code: key.ProductCode, lots: []string{key.Lot}})
}

// removeKey quita la clave del orden; un grupo sin lotes desaparece.
func (l *Ledger) removeKey(key entity.LedgerKey) {
	for gi, g := range l.groups {
		if g.code != key.ProductCode {
			continue
		}
		for li, lot := range g.lots {
			if lot == key.Lot {
				g.lots = append(g.lots[:li], g.lots[li+1:]...)
				break
			}
		}
		if len(g.lots) == 0 {
			l.groups = append(l.groups[:gi], l.groups[gi+1:]...)
		}
		return
	}
}
