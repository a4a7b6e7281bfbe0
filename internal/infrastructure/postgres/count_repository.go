package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-conteo/internal/application/counting"
	"github.com/jhoicas/inventario-conteo/internal/domain"
)

var _ counting.ExportSink = (*CountRepo)(nil)

// CountRepo registra cada exportación en inventory_count_batches + inventory_counts.
type CountRepo struct {
	db TxBeginner
}

// NewCountRepository construye el repo con el pool.
func NewCountRepository(db TxBeginner) *CountRepo {
	return &CountRepo{db: db}
}

var countColumns = []string{
	"batch_id", "line_no", "company_code", "branch_code", "warehouse_code",
	"product_code", "description", "lot", "quantity",
}

// SaveExport inserta el lote y sus filas en una única transacción.
func (r *CountRepo) SaveExport(ctx context.Context, b counting.ExportBatch) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO inventory_count_batches (id, operator, round, material_type, file_name, total_quantity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		b.ID, b.Operator, b.Round, b.MaterialType, b.FileName, b.Sheet.TotalQuantity(), b.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: lote %s", domain.ErrDuplicate, b.ID)
		}
		return fmt.Errorf("insert count batch: %w", err)
	}

	if len(b.Sheet.Rows) > 0 {
		rows := make([][]any, 0, len(b.Sheet.Rows))
		for i, row := range b.Sheet.Rows {
			rows = append(rows, []any{
				b.ID, i + 1, row.CompanyCode, row.BranchCode, row.WarehouseCode,
				row.ProductCode, row.Description, row.Lot, row.Quantity,
			})
		}
		if _, err := tx.CopyFrom(ctx, pgx.Identifier{"inventory_counts"}, countColumns, pgx.CopyFromRows(rows)); err != nil {
			return fmt.Errorf("copy counts: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
