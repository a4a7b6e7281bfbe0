// Package xlsx lee el cadastro maestro desde la planilla base y escribe la
// planilla de conteo exportada, ambas con excelize.
//
// Planilla base esperada (fila 1 = encabezado):
//
//	Produtos: | Código | Descrição | Tipo |
//	Estoque:  | Código | Descrição (ignorada) | Lote |
package xlsx

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/inventario-conteo/internal/domain/entity"
)

// Nombres de las hojas de la planilla base.
const (
	ProductsSheet = "Produtos"
	StockSheet    = "Estoque"
)

// LoadMasterData abre la planilla base y devuelve los productos con sus lotes conocidos.
func LoadMasterData(path string) ([]*entity.Product, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("abrir planilla base %s: %w", path, err)
	}
	defer f.Close()
	return readMasterData(f)
}

// ReadMasterData igual que LoadMasterData pero desde un stream (p. ej. upload).
func ReadMasterData(r io.Reader) ([]*entity.Product, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("leer planilla base: %w", err)
	}
	defer f.Close()
	return readMasterData(f)
}

func readMasterData(f *excelize.File) ([]*entity.Product, error) {
	productRows, err := sheetRows(f, ProductsSheet)
	if err != nil {
		return nil, err
	}
	stockRows, err := sheetRows(f, StockSheet)
	if err != nil {
		return nil, err
	}

	var products []*entity.Product
	byCode := make(map[string]*entity.Product)
	for _, row := range productRows {
		code := cell(row, 0)
		if code == "" {
			continue
		}
		if p, ok := byCode[code]; ok {
			// fila repetida: prevalece la última, como en un diccionario
			p.Description = cell(row, 1)
			p.Category = cell(row, 2)
			continue
		}
		p := &entity.Product{
			Code:        code,
			Description: cell(row, 1),
			Category:    cell(row, 2),
		}
		byCode[code] = p
		products = append(products, p)
	}

	// Lotes en orden de fila; duplicados permitidos; códigos sin producto se ignoran.
	for _, row := range stockRows {
		p, ok := byCode[cell(row, 0)]
		if !ok {
			continue
		}
		lot := cell(row, 2)
		if lot == "" {
			continue
		}
		p.KnownLots = append(p.KnownLots, lot)
	}
	return products, nil
}

// sheetRows devuelve las filas de datos (sin la fila de encabezado).
func sheetRows(f *excelize.File, sheet string) ([][]string, error) {
	idx, err := f.GetSheetIndex(sheet)
	if err != nil || idx < 0 {
		return nil, fmt.Errorf("planilla base sin hoja %q", sheet)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("leer hoja %s: %w", sheet, err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}
	return rows[1:], nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
