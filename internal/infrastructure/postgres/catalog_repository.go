package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/inventario-conteo/internal/domain/entity"
)

// CatalogRepo lee el cadastro de materiales desde products y product_lots.
// Se carga una sola vez al iniciar; el libro consulta la copia en memoria.
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

// LoadAll devuelve todos los productos con sus lotes conocidos en el orden de position.
// Lotes de códigos que no existen en products se ignoran.
func (r *CatalogRepo) LoadAll(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT code, description, category FROM products ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	byCode := make(map[string]*entity.Product)
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.Code, &p.Description, &p.Category); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		p.Code = strings.TrimSpace(p.Code)
		if p.Code == "" {
			continue
		}
		if existing, ok := byCode[p.Code]; ok {
			*existing = p
			continue
		}
		prod := p
		byCode[p.Code] = &prod
		list = append(list, &prod)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	lotRows, err := r.q.Query(ctx, `SELECT code, lot FROM product_lots ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("list lots: %w", err)
	}
	defer lotRows.Close()
	for lotRows.Next() {
		var code, lot string
		if err := lotRows.Scan(&code, &lot); err != nil {
			return nil, fmt.Errorf("scan lot: %w", err)
		}
		p, ok := byCode[strings.TrimSpace(code)]
		lot = strings.TrimSpace(lot)
		if !ok || lot == "" {
			continue
		}
		p.KnownLots = append(p.KnownLots, lot)
	}
	if err := lotRows.Err(); err != nil {
		return nil, fmt.Errorf("list lots: %w", err)
	}
	return list, nil
}
