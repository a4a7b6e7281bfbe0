package ledger

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/inventario-conteo/internal/domain"
	"github.com/jhoicas/inventario-conteo/internal/domain/entity"
	"github.com/jhoicas/inventario-conteo/internal/domain/repository"
)

// SheetName es el nombre de la hoja exportada.
const SheetName = "Contagem"

// ExportHeader es la fila de encabezado fija de la planilla.
var ExportHeader = []string{
	"COD_EMPRESA", "COD_FILIAL", "COD_DEPOSITO", "Código", "Descrição", "Lote", "Quantidade",
}

// ExportRow es una fila de la planilla en el orden de ExportHeader.
type ExportRow struct {
	CompanyCode   string
	BranchCode    string
	WarehouseCode string
	ProductCode   string
	Description   string
	Lot           string
	Quantity      int
}

// Values devuelve las celdas en el orden de columnas; Quantity queda numérica.
func (r ExportRow) Values() []interface{} {
	return []interface{}{
		r.CompanyCode, r.BranchCode, r.WarehouseCode,
		r.ProductCode, r.Description, r.Lot, r.Quantity,
	}
}

// ExportSheet es la proyección lista para escribir: nombre base, encabezado y filas.
type ExportSheet struct {
	SheetName    string
	FileBaseName string // sin extensión
	Header       []string
	Rows         []ExportRow
}

// TotalQuantity suma las cantidades de todas las filas. Cada fila está
// acotada por MaxQuantity, así que la suma en int64 no desborda.
func (s ExportSheet) TotalQuantity() int64 {
	var total int64
	for _, r := range s.Rows {
		total += int64(r.Quantity)
	}
	return total
}

// BuildExport proyecta el snapshot del libro en filas de planilla.
// Las etiquetas de rodada y tipo solo nombran el archivo: se exporta todo el libro.
func BuildExport(lines []entity.CountLine, meta entity.ExportMetadata, catalog repository.ProductRepository) (ExportSheet, error) {
	if strings.TrimSpace(meta.Round) == "" || strings.TrimSpace(meta.MaterialType) == "" {
		return ExportSheet{}, fmt.Errorf("%w: contagem y tipo son obligatorios", domain.ErrInvalidInput)
	}

	rows := make([]ExportRow, 0, len(lines))
	for _, line := range lines {
		description := ""
		p, err := catalog.GetByCode(line.ProductCode)
		if err != nil {
			return ExportSheet{}, fmt.Errorf("descripción de %s: %w", line.ProductCode, err)
		}
		if p != nil {
			description = p.Description
		}
		rows = append(rows, ExportRow{
			CompanyCode:   meta.CompanyCode,
			BranchCode:    meta.BranchCode,
			WarehouseCode: meta.WarehouseCode,
			ProductCode:   line.ProductCode,
			Description:   description,
			Lot:           line.Lot,
			Quantity:      line.Quantity,
		})
	}

	header := make([]string, len(ExportHeader))
	copy(header, ExportHeader)

	return ExportSheet{
		SheetName:    SheetName,
		FileBaseName: FileBaseName(meta.Round, meta.MaterialType),
		Header:       header,
		Rows:         rows,
	}, nil
}

// FileBaseName arma "{rodada}_contagem_{tipo}" en minúsculas.
func FileBaseName(round, materialType string) string {
	lower := cases.Lower(language.BrazilianPortuguese)
	return lower.String(strings.TrimSpace(round)) + "_contagem_" + lower.String(strings.TrimSpace(materialType))
}
