// Package bootstrap arma las dependencias compartidas por la API y la CLI de conteo.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/inventario-conteo/internal/application/auth"
	"github.com/jhoicas/inventario-conteo/internal/application/counting"
	"github.com/jhoicas/inventario-conteo/internal/domain/entity"
	"github.com/jhoicas/inventario-conteo/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/inventario-conteo/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-conteo/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-conteo/internal/infrastructure/xlsx"
	"github.com/jhoicas/inventario-conteo/pkg/config"
	"github.com/jhoicas/inventario-conteo/pkg/logger"
)

// Services casos de uso listos para un driver (HTTP o terminal).
type Services struct {
	Catalog  *memory.ProductRepo
	Counting *counting.CountingUseCase
	Auth     *auth.AuthUseCase
	pool     *pgxpool.Pool
}

// Build carga el cadastro (xlsx o postgres), abre el pool si DB_ENABLED y arma los casos de uso.
func Build(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Services, error) {
	s := &Services{}
	if cfg.DB.Enabled {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		s.pool = pool
	}

	products, err := s.loadProducts(ctx, cfg.MasterData)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.Catalog = memory.NewProductRepository(products)
	log.Info().
		Str("source", cfg.MasterData.Source).
		Int("products", s.Catalog.Len()).
		Msg("cadastro carregado")

	var sink counting.ExportSink
	if s.pool != nil {
		sink = postgres.NewCountRepository(s.pool)
	}
	s.Counting = counting.NewCountingUseCase(
		s.Catalog,
		counting.NewSessions(s.Catalog),
		xlsx.NewWorkbookEncoder(),
		infrapdf.NewMarotoCountReport(),
		sink,
		counting.Config{
			CompanyCode:   cfg.Export.CompanyCode,
			BranchCode:    cfg.Export.BranchCode,
			WarehouseCode: cfg.Export.WarehouseCode,
			ExportDir:     cfg.Export.Dir,
		},
		log,
	)

	operators := make([]entity.Operator, 0, len(cfg.Operators))
	for _, op := range cfg.Operators {
		operators = append(operators, entity.Operator{Username: op.Username, Role: op.Role, PasswordHash: op.PasswordHash})
	}
	s.Auth = auth.NewAuthUseCase(memory.NewOperatorRepository(operators), auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	return s, nil
}

// Close libera el pool de PostgreSQL si fue abierto.
func (s *Services) Close() {
	if s.pool != nil {
		s.pool.Close()
		s.pool = nil
	}
}

func (s *Services) loadProducts(ctx context.Context, md config.MasterDataConfig) ([]*entity.Product, error) {
	switch md.Source {
	case config.SourcePostgres:
		if s.pool == nil {
			return nil, fmt.Errorf("MASTER_DATA_SOURCE=postgres requiere DB_ENABLED=true")
		}
		products, err := postgres.NewCatalogRepository(s.pool).LoadAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("cargar cadastro desde PostgreSQL: %w", err)
		}
		return products, nil
	default:
		products, err := xlsx.LoadMasterData(md.File)
		if err != nil {
			return nil, fmt.Errorf("cargar cadastro desde %s: %w", md.File, err)
		}
		return products, nil
	}
}
