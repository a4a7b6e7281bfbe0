package counting

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-conteo/internal/application/dto"
	"github.com/jhoicas/inventario-conteo/internal/domain"
	"github.com/jhoicas/inventario-conteo/internal/domain/entity"
	"github.com/jhoicas/inventario-conteo/internal/domain/ledger"
	"github.com/jhoicas/inventario-conteo/internal/domain/repository"
	"github.com/jhoicas/inventario-conteo/pkg/logger"
)

// Config códigos fijos de la organización y carpeta donde se guardan las planillas.
// ExportDir vacío = no se escribe en disco (solo se devuelven los bytes).
type Config struct {
	CompanyCode   string
	BranchCode    string
	WarehouseCode string
	ExportDir     string
}

// ExportResult archivo generado por Export o Report.
type ExportResult struct {
	FileName    string
	Path        string
	ContentType string
	Data        []byte
	Rows        int
	Persisted   bool
}

// CountingUseCase orquesta la sesión de conteo: búsqueda, lanzamientos,
// corrección, limpieza y exportación. Cada operador tiene su propio libro.
type CountingUseCase struct {
	catalog  repository.ProductRepository
	sessions *Sessions
	encoder  SheetEncoder
	report   ReportGenerator
	sink     ExportSink
	cfg      Config
	log      *logger.Logger
	now      func() time.Time
}

// NewCountingUseCase construye el caso de uso. report y sink pueden ser nil.
func NewCountingUseCase(
	catalog repository.ProductRepository,
	sessions *Sessions,
	encoder SheetEncoder,
	report ReportGenerator,
	sink ExportSink,
	cfg Config,
	log *logger.Logger,
) *CountingUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &CountingUseCase{
		catalog:  catalog,
		sessions: sessions,
		encoder:  encoder,
		report:   report,
		sink:     sink,
		cfg:      cfg,
		log:      log.Named("conteo"),
		now:      time.Now,
	}
}

// LookupProduct devuelve descripción, categoría y lotes conocidos del código.
func (uc *CountingUseCase) LookupProduct(code string) (*dto.ProductResponse, error) {
	p, err := uc.product(code)
	if err != nil {
		return nil, err
	}
	lots := p.KnownLots
	if lots == nil {
		lots = []string{}
	}
	return &dto.ProductResponse{
		Code:        p.Code,
		Description: p.Description,
		Category:    p.Category,
		KnownLots:   lots,
	}, nil
}

// Record valida producto, lote y cantidad (en ese orden) y lanza en el libro del operador.
func (uc *CountingUseCase) Record(operator string, in dto.RecordCountRequest) (*dto.RecordCountResponse, error) {
	p, err := uc.product(in.Code)
	if err != nil {
		return nil, err
	}
	lot, err := ledger.ResolveLot(in.SelectedLot, in.NewLot)
	if err != nil {
		return nil, err
	}
	qty, err := ledger.ParseQuantity(in.Quantity)
	if err != nil {
		return nil, err
	}

	total, err := uc.sessions.Ledger(operator).Record(p.Code, lot, qty)
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("operator", operator).
		Str("code", p.Code).
		Str("lot", lot).
		Int("quantity", qty).
		Int("total", total).
		Msg("lançamento registrado")

	return &dto.RecordCountResponse{
		Code:        p.Code,
		Description: p.Description,
		Lot:         lot,
		Quantity:    qty,
		Total:       total,
	}, nil
}

// UndoLast corrige el último lanzamiento del operador.
func (uc *CountingUseCase) UndoLast(operator string) (*dto.HistoryEntryResponse, error) {
	entry, err := uc.sessions.Ledger(operator).UndoLast()
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("operator", operator).
		Str("code", entry.ProductCode).
		Str("lot", entry.Lot).
		Int("quantity", entry.Quantity).
		Msg("último lançamento corrigido")

	return &dto.HistoryEntryResponse{Code: entry.ProductCode, Lot: entry.Lot, Quantity: entry.Quantity}, nil
}

// Clear descarta todos los lanzamientos del operador.
func (uc *CountingUseCase) Clear(operator string) {
	l := uc.sessions.Ledger(operator)
	discarded := len(l.History())
	l.Clear()
	uc.log.Warn().Str("operator", operator).Int("entries", discarded).Msg("lançamentos limpos")
}

// ActiveSessions cantidad de operadores con libro abierto.
func (uc *CountingUseCase) ActiveSessions() int {
	return uc.sessions.Operators()
}

// List devuelve los registros contados con su descripción.
func (uc *CountingUseCase) List(operator string) (*dto.CountListResponse, error) {
	l := uc.sessions.Ledger(operator)
	lines := l.Snapshot()

	out := make([]dto.CountLineResponse, 0, len(lines))
	for _, line := range lines {
		description := ""
		if p, err := uc.catalog.GetByCode(line.ProductCode); err != nil {
			return nil, err
		} else if p != nil {
			description = p.Description
		}
		out = append(out, dto.CountLineResponse{
			Code:        line.ProductCode,
			Description: description,
			Lot:         line.Lot,
			Quantity:    line.Quantity,
		})
	}
	return &dto.CountListResponse{Lines: out, Entries: len(l.History())}, nil
}

// Export genera la planilla con todo el libro del operador, la guarda en
// ExportDir (si está configurado) y la registra en el sink (si existe).
func (uc *CountingUseCase) Export(ctx context.Context, operator string, in dto.ExportRequest) (*ExportResult, error) {
	meta, err := uc.metadata(in)
	if err != nil {
		return nil, err
	}
	sheet, err := ledger.BuildExport(uc.sessions.Ledger(operator).Snapshot(), meta, uc.catalog)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := uc.encoder.Encode(&buf, sheet); err != nil {
		return nil, fmt.Errorf("codificar planilla: %w", err)
	}
	res := &ExportResult{
		FileName:    sheet.FileBaseName + uc.encoder.Extension(),
		ContentType: uc.encoder.ContentType(),
		Data:        buf.Bytes(),
		Rows:        len(sheet.Rows),
	}
	if res.Path, err = uc.writeFile(res.FileName, res.Data); err != nil {
		return nil, err
	}

	if uc.sink != nil {
		batch := ExportBatch{
			ID:           uuid.New(),
			Operator:     operator,
			Round:        meta.Round,
			MaterialType: meta.MaterialType,
			FileName:     res.FileName,
			Sheet:        sheet,
			CreatedAt:    uc.now(),
		}
		if err := uc.sink.SaveExport(ctx, batch); err != nil {
			// el archivo ya fue generado; solo queda sin registro de auditoría
			uc.log.Error().Err(err).Str("operator", operator).Str("file", res.FileName).Msg("registrar exportação")
		} else {
			res.Persisted = true
		}
	}

	uc.log.Info().
		Str("operator", operator).
		Str("file", res.FileName).
		Str("path", res.Path).
		Int("rows", res.Rows).
		Msg("arquivo exportado")
	return res, nil
}

// Report genera el relatorio PDF del libro del operador; se guarda en ExportDir igual que la planilla.
func (uc *CountingUseCase) Report(ctx context.Context, operator string, in dto.ExportRequest) (*ExportResult, error) {
	if uc.report == nil {
		return nil, fmt.Errorf("%w: relatório PDF no configurado", domain.ErrNotFound)
	}
	meta, err := uc.metadata(in)
	if err != nil {
		return nil, err
	}
	sheet, err := ledger.BuildExport(uc.sessions.Ledger(operator).Snapshot(), meta, uc.catalog)
	if err != nil {
		return nil, err
	}
	doc, err := uc.report.GenerateCountReport(ctx, ReportInput{
		Sheet:         sheet,
		Round:         meta.Round,
		MaterialType:  meta.MaterialType,
		CompanyCode:   meta.CompanyCode,
		BranchCode:    meta.BranchCode,
		WarehouseCode: meta.WarehouseCode,
		Operator:      operator,
		GeneratedAt:   uc.now(),
	})
	if err != nil {
		return nil, err
	}
	res := &ExportResult{
		FileName:    sheet.FileBaseName + ".pdf",
		ContentType: "application/pdf",
		Data:        doc,
		Rows:        len(sheet.Rows),
	}
	if res.Path, err = uc.writeFile(res.FileName, res.Data); err != nil {
		return nil, err
	}
	uc.log.Info().Str("operator", operator).Str("file", res.FileName).Msg("relatório gerado")
	return res, nil
}

func (uc *CountingUseCase) product(code string) (*entity.Product, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.ErrUnknownProduct
	}
	p, err := uc.catalog.GetByCode(code)
	if err != nil {
		return nil, fmt.Errorf("consultar cadastro: %w", err)
	}
	if p == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownProduct, code)
	}
	return p, nil
}

func (uc *CountingUseCase) metadata(in dto.ExportRequest) (entity.ExportMetadata, error) {
	round, err := ledger.ParseCountRound(in.Round)
	if err != nil {
		return entity.ExportMetadata{}, err
	}
	material, err := ledger.ParseMaterialType(in.MaterialType)
	if err != nil {
		return entity.ExportMetadata{}, err
	}
	return entity.ExportMetadata{
		CompanyCode:   uc.cfg.CompanyCode,
		BranchCode:    uc.cfg.BranchCode,
		WarehouseCode: uc.cfg.WarehouseCode,
		Round:         round,
		MaterialType:  material,
	}, nil
}

func (uc *CountingUseCase) writeFile(name string, data []byte) (string, error) {
	if uc.cfg.ExportDir == "" {
		return "", nil
	}
	if err := os.MkdirAll(uc.cfg.ExportDir, 0o755); err != nil {
		return "", fmt.Errorf("crear carpeta de exportación: %w", err)
	}
	path := filepath.Join(uc.cfg.ExportDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("guardar %s: %w", name, err)
	}
	return path, nil
}
