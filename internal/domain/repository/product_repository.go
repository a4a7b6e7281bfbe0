package repository

import "github.com/jhoicas/inventario-conteo/internal/domain/entity"

// ProductRepository define el puerto de lectura del cadastro maestro (DIP).
// GetByCode devuelve (nil, nil) si el código no existe.
type ProductRepository interface {
	GetByCode(code string) (*entity.Product, error)
	List() ([]*entity.Product, error)
}
