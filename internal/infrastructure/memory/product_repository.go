// Package memory implementa los puertos de lectura sobre datos cargados una vez al inicio.
package memory

import (
	"strings"

	"github.com/jhoicas/inventario-conteo/internal/domain/entity"
	"github.com/jhoicas/inventario-conteo/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo cadastro de solo lectura; no necesita lock porque no se modifica tras New.
type ProductRepo struct {
	byCode map[string]*entity.Product
	order  []string
}

// NewProductRepository indexa los productos por código. Un código repetido
// reemplaza la descripción y categoría pero conserva su posición original.
func NewProductRepository(products []*entity.Product) *ProductRepo {
	r := &ProductRepo{byCode: make(map[string]*entity.Product, len(products))}
	for _, p := range products {
		if p == nil {
			continue
		}
		code := strings.TrimSpace(p.Code)
		if code == "" {
			continue
		}
		cp := *p
		cp.Code = code
		cp.KnownLots = append([]string(nil), p.KnownLots...)
		if _, ok := r.byCode[code]; !ok {
			r.order = append(r.order, code)
		}
		r.byCode[code] = &cp
	}
	return r
}

// GetByCode devuelve una copia del producto o (nil, nil) si no existe.
func (r *ProductRepo) GetByCode(code string) (*entity.Product, error) {
	p, ok := r.byCode[strings.TrimSpace(code)]
	if !ok {
		return nil, nil
	}
	cp := *p
	cp.KnownLots = append([]string(nil), p.KnownLots...)
	return &cp, nil
}

// List devuelve los productos en orden de carga.
func (r *ProductRepo) List() ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.order))
	for _, code := range r.order {
		p, _ := r.GetByCode(code)
		out = append(out, p)
	}
	return out, nil
}

// Len cantidad de productos cargados.
func (r *ProductRepo) Len() int { return len(r.order) }
