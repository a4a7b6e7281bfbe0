package repository

import "github.com/jhoicas/inventario-conteo/internal/domain/entity"

// OperatorRepository puerto de lectura de operadores habilitados.
type OperatorRepository interface {
	FindByUsername(username string) (*entity.Operator, error)
}
