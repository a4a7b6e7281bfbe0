package counting

import (
	"sync"

	"github.com/jhoicas/inventario-conteo/internal/domain/ledger"
	"github.com/jhoicas/inventario-conteo/internal/domain/repository"
)

// Sessions mantiene un libro de conteo por operador.
type Sessions struct {
	catalog repository.ProductRepository

	mu      sync.Mutex
	ledgers map[string]*ledger.Ledger
}

// NewSessions construye el registro vacío.
func NewSessions(catalog repository.ProductRepository) *Sessions {
	return &Sessions{catalog: catalog, ledgers: make(map[string]*ledger.Ledger)}
}

// Ledger devuelve el libro del operador, creándolo vacío en el primer uso.
func (s *Sessions) Ledger(operator string) *ledger.Ledger {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.ledgers[operator]
	if !ok {
		l = ledger.New(s.catalog)
		s.ledgers[operator] = l
	}
	return l
}

// Operators cantidad de sesiones abiertas.
func (s *Sessions) Operators() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ledgers)
}
