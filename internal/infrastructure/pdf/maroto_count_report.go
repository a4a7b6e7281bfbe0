// Package pdf genera el relatorio imprimible de la contagem con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Relatório de Contagem │ Rodada + Tipo + Fecha        │
//	│  Empresa / Filial / Depósito · Operador                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Descrição | Lote | Quantidade               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: líneas y unidades                                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/inventario-conteo/internal/application/counting"
	"github.com/jhoicas/inventario-conteo/internal/domain/ledger"
)

var _ counting.ReportGenerator = (*MarotoCountReport)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoCountReport implementa counting.ReportGenerator usando Maroto v2.
type MarotoCountReport struct{}

// NewMarotoCountReport construye el generador.
func NewMarotoCountReport() *MarotoCountReport { return &MarotoCountReport{} }

// GenerateCountReport genera el PDF y devuelve sus bytes.
func (g *MarotoCountReport) GenerateCountReport(_ context.Context, in counting.ReportInput) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Relatório de Contagem", true).
		WithAuthor(in.Operator, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(in))
	m.AddRows(organizationRow(in))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(in.Sheet.Rows) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(in.Sheet))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(in counting.ReportInput) core.Row {
	generated := in.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}
	return row.New(16).Add(
		col.New(7).Add(
			text.New("RELATÓRIO DE CONTAGEM", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(in.Sheet.FileBaseName, props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(in.Round+" · "+in.MaterialType, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1,
			}),
			text.New("Gerado em: "+generated.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func organizationRow(in counting.ReportInput) core.Row {
	return row.New(8).Add(
		col.New(9).Add(text.New(
			fmt.Sprintf("Empresa: %s   Filial: %s   Depósito: %s", in.CompanyCode, in.BranchCode, in.WarehouseCode),
			props.Text{Size: 8, Top: 1},
		)),
		col.New(3).Add(text.New("Operador: "+nonEmpty(in.Operator, "-"), props.Text{
			Size: 8, Top: 1, Align: align.Right,
		})),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 1.5, Left: 1, Right: 1,
		}))
	}
	return row.New(7).Add(
		h("Código", 2, align.Left),
		h("Descrição", 6, align.Left),
		h("Lote", 2, align.Left),
		h("Quantidade", 2, align.Right),
	)
}

// tableDetailRows: una fila por par producto/lote.
func tableDetailRows(rows []ledger.ExportRow) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		result = append(result, row.New(6).Add(
			col.New(2).Add(text.New(r.ProductCode, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(6).Add(text.New(r.Description, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(r.Lot, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(formatUnits(int64(r.Quantity)), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	return result
}

func totalsRow(sheet ledger.ExportSheet) core.Row {
	return row.New(10).Add(
		col.New(8).Add(text.New(
			fmt.Sprintf("%d linha(s)", len(sheet.Rows)),
			props.Text{Size: 8, Top: 2, Color: colorGray},
		)),
		col.New(2).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2, Color: colorPrimary,
		})),
		col.New(2).Add(text.New(formatUnits(sheet.TotalQuantity()), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2, Right: 1, Color: colorPrimary,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatUnits inserta puntos de miles: 1500 → "1.500".
func formatUnits(n int64) string {
	s := strconv.FormatInt(n, 10)
	sign := ""
	if s[0] == '-' {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, len(sign)+len(s)+len(s)/3)
	buf = append(buf, sign...)
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
