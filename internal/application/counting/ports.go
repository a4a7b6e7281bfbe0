package counting

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-conteo/internal/domain/ledger"
)

// SheetEncoder serializa la planilla exportada (implementado por xlsx.WorkbookEncoder).
type SheetEncoder interface {
	Encode(w io.Writer, sheet ledger.ExportSheet) error
	Extension() string
	ContentType() string
}

// ReportInput datos del relatorio imprimible.
type ReportInput struct {
	Sheet         ledger.ExportSheet
	Round         string
	MaterialType  string
	CompanyCode   string
	BranchCode    string
	WarehouseCode string
	Operator      string
	GeneratedAt   time.Time
}

// ReportGenerator genera el relatorio PDF de la contagem.
type ReportGenerator interface {
	GenerateCountReport(ctx context.Context, in ReportInput) ([]byte, error)
}

// ExportBatch una exportación registrada para auditoría.
type ExportBatch struct {
	ID           uuid.UUID
	Operator     string
	Round        string
	MaterialType string
	FileName     string
	Sheet        ledger.ExportSheet
	CreatedAt    time.Time
}

// ExportSink persiste cada exportación (opcional; implementado por postgres.CountRepo).
type ExportSink interface {
	SaveExport(ctx context.Context, batch ExportBatch) error
}
