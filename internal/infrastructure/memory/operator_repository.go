package memory

import (
	"strings"

	"github.com/jhoicas/inventario-conteo/internal/domain/entity"
	"github.com/jhoicas/inventario-conteo/internal/domain/repository"
)

var _ repository.OperatorRepository = (*OperatorRepo)(nil)

// OperatorRepo operadores declarados en la configuración.
type OperatorRepo struct {
	byName map[string]entity.Operator
}

// NewOperatorRepository indexa operadores por usuario (sin distinguir mayúsculas).
func NewOperatorRepository(ops []entity.Operator) *OperatorRepo {
	r := &OperatorRepo{byName: make(map[string]entity.Operator, len(ops))}
	for _, op := range ops {
		r.byName[strings.ToLower(strings.TrimSpace(op.Username))] = op
	}
	return r
}

// FindByUsername devuelve (nil, nil) si el operador no existe.
func (r *OperatorRepo) FindByUsername(username string) (*entity.Operator, error) {
	op, ok := r.byName[strings.ToLower(strings.TrimSpace(username))]
	if !ok {
		return nil, nil
	}
	return &op, nil
}
