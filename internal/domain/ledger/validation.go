package ledger

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jhoicas/inventario-conteo/internal/domain"
	"github.com/jhoicas/inventario-conteo/internal/domain/entity"
)

// MaxQuantity es el mayor total admitido por par (código, lote); cabe en
// la columna INTEGER de inventory_counts.
const MaxQuantity = math.MaxInt32

// ParseQuantity convierte el texto digitado en una cantidad positiva.
// Vacío, no numérico, cero, negativo o mayor que MaxQuantity devuelven ErrInvalidQuantity.
func ParseQuantity(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("%w: quantidade não pode estar vazia", domain.ErrInvalidQuantity)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidQuantity, s)
	}
	if n <= 0 || n > MaxQuantity {
		return 0, fmt.Errorf("%w: %d", domain.ErrInvalidQuantity, n)
	}
	return n, nil
}

// ResolveLot elige el lote seleccionado de la lista; si no hay, el lote nuevo digitado.
func ResolveLot(selected, typed string) (string, error) {
	if lot := strings.TrimSpace(selected); lot != "" {
		return lot, nil
	}
	if lot := strings.TrimSpace(typed); lot != "" {
		return lot, nil
	}
	return "", domain.ErrEmptyLot
}

// ParseCountRound normaliza la rodada ("primeira" → "Primeira").
func ParseCountRound(raw string) (string, error) {
	return matchLabel(raw, entity.CountRounds, "contagem")
}

// ParseMaterialType normaliza el tipo de material ("EMBALAGEM" → "Embalagem").
func ParseMaterialType(raw string) (string, error) {
	return matchLabel(raw, entity.MaterialTypes, "tipo")
}

func matchLabel(raw string, allowed []string, field string) (string, error) {
	s := strings.TrimSpace(raw)
	for _, label := range allowed {
		if strings.EqualFold(s, label) {
			return label, nil
		}
	}
	return "", fmt.Errorf("%w: %s %q (válidos: %s)", domain.ErrInvalidInput, field, s, strings.Join(allowed, ", "))
}
