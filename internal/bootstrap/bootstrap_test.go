package bootstrap_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventario-conteo/internal/application/dto"
	"github.com/jhoicas/inventario-conteo/internal/bootstrap"
	"github.com/jhoicas/inventario-conteo/internal/infrastructure/xlsx"
	"github.com/jhoicas/inventario-conteo/pkg/config"
	"github.com/jhoicas/inventario-conteo/pkg/logger"
)

func writeBase(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", xlsx.ProductsSheet))
	_, err := f.NewSheet(xlsx.StockSheet)
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow(xlsx.ProductsSheet, "A1", &[]interface{}{"Código", "Descrição", "Categoria"}))
	require.NoError(t, f.SetSheetRow(xlsx.ProductsSheet, "A2", &[]interface{}{"001", "Açúcar", "Insumo"}))
	require.NoError(t, f.SetSheetRow(xlsx.StockSheet, "A1", &[]interface{}{"Código", "Descrição", "Lote"}))
	require.NoError(t, f.SetSheetRow(xlsx.StockSheet, "A2", &[]interface{}{"001", "Açúcar", "L1"}))

	path := filepath.Join(t.TempDir(), "base.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("senha"), bcrypt.MinCost)
	require.NoError(t, err)
	return &config.Config{
		JWT:        config.JWTConfig{Secret: "s", Expiration: 5, Issuer: "test"},
		MasterData: config.MasterDataConfig{Source: config.SourceXLSX, File: writeBase(t)},
		Export: config.ExportConfig{
			Dir: t.TempDir(), CompanyCode: "1010", BranchCode: "M016", WarehouseCode: "GM01",
		},
		Operators: []config.OperatorConfig{{Username: "ana", Role: "supervisor", PasswordHash: string(hash)}},
	}
}

func TestBuild_DesdePlanilla(t *testing.T) {
	cfg := testConfig(t)
	svc, err := bootstrap.Build(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	defer svc.Close()

	assert.Equal(t, 1, svc.Catalog.Len())

	p, err := svc.Counting.LookupProduct("001")
	require.NoError(t, err)
	assert.Equal(t, []string{"L1"}, p.KnownLots)

	_, err = svc.Auth.Login(dto.LoginRequest{Username: "ana", Password: "senha"})
	require.NoError(t, err)

	_, err = svc.Counting.Record("ana", dto.RecordCountRequest{Code: "001", SelectedLot: "L1", Quantity: "4"})
	require.NoError(t, err)
	res, err := svc.Counting.Export(context.Background(), "ana", dto.ExportRequest{Round: "Primeira", MaterialType: "Insumo"})
	require.NoError(t, err)
	assert.Equal(t, "primeira_contagem_insumo.xlsx", res.FileName)
	_, err = os.Stat(filepath.Join(cfg.Export.Dir, res.FileName))
	assert.NoError(t, err)
	assert.False(t, res.Persisted)
}

func TestBuild_PlanillaInexistente(t *testing.T) {
	cfg := testConfig(t)
	cfg.MasterData.File = filepath.Join(t.TempDir(), "nao-existe.xlsx")
	_, err := bootstrap.Build(context.Background(), cfg, logger.Nop())
	assert.Error(t, err)
}

func TestBuild_PostgresSinDB(t *testing.T) {
	cfg := testConfig(t)
	cfg.MasterData.Source = config.SourcePostgres
	_, err := bootstrap.Build(context.Background(), cfg, logger.Nop())
	assert.Error(t, err)
}
