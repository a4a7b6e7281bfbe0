package xlsx

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/inventario-conteo/internal/domain/ledger"
)

// Extension de los archivos generados por WorkbookEncoder.
const Extension = ".xlsx"

// WorkbookEncoder escribe una ExportSheet como libro xlsx de una sola hoja.
type WorkbookEncoder struct{}

// NewWorkbookEncoder construye el encoder.
func NewWorkbookEncoder() *WorkbookEncoder { return &WorkbookEncoder{} }

// Extension devuelve ".xlsx".
func (e *WorkbookEncoder) Extension() string { return Extension }

// ContentType MIME del libro.
func (e *WorkbookEncoder) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Encode escribe encabezado y filas; Quantidade queda como celda numérica.
func (e *WorkbookEncoder) Encode(w io.Writer, sheet ledger.ExportSheet) error {
	f := excelize.NewFile()
	defer f.Close()

	name := sheet.SheetName
	if name == "" {
		name = ledger.SheetName
	}
	if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
		return fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}

	header := make([]interface{}, len(sheet.Header))
	for i, h := range sheet.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return fmt.Errorf("xlsx: encabezado: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("xlsx: estilo del encabezado: %w", err)
	}
	if err := f.SetRowStyle(name, 1, 1, bold); err != nil {
		return fmt.Errorf("xlsx: estilo del encabezado: %w", err)
	}

	for i, r := range sheet.Rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("xlsx: fila %d: %w", i+2, err)
		}
		values := r.Values()
		if err := f.SetSheetRow(name, cellRef, &values); err != nil {
			return fmt.Errorf("xlsx: fila %d: %w", i+2, err)
		}
	}
	if err := f.SetColWidth(name, "E", "E", 40); err != nil {
		return fmt.Errorf("xlsx: ancho de columna: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return nil
}
