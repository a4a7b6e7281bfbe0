package cli_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-conteo/internal/application/counting"
	"github.com/jhoicas/inventario-conteo/internal/domain"
	"github.com/jhoicas/inventario-conteo/internal/domain/entity"
	"github.com/jhoicas/inventario-conteo/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-conteo/internal/infrastructure/xlsx"
	"github.com/jhoicas/inventario-conteo/internal/interfaces/cli"
	"github.com/jhoicas/inventario-conteo/pkg/logger"
)

func newUseCase(t *testing.T, dir string) *counting.CountingUseCase {
	t.Helper()
	catalog := memory.NewProductRepository([]*entity.Product{
		{Code: "001", Description: "Açúcar cristal", Category: entity.CategoryInsumo, KnownLots: []string{"A", "B"}},
		{Code: "002", Description: "Caixa 12un", Category: entity.CategoryEmbalagem},
	})
	return counting.NewCountingUseCase(
		catalog,
		counting.NewSessions(catalog),
		xlsx.NewWorkbookEncoder(),
		nil,
		nil,
		counting.Config{CompanyCode: "1010", BranchCode: "M016", WarehouseCode: "GM01", ExportDir: dir},
		logger.Nop(),
	)
}

func run(t *testing.T, uc *counting.CountingUseCase, script ...string) string {
	t.Helper()
	var out bytes.Buffer
	s := cli.NewSession(uc, "ana", strings.NewReader(strings.Join(script, "\n")+"\n"), &out)
	require.NoError(t, s.Run(context.Background()))
	return out.String()
}

func TestSession_Escenario(t *testing.T) {
	dir := t.TempDir()
	out := run(t, newUseCase(t, dir),
		"buscar 001",
		"lancar 001 #1 10",
		"lancar 001 A 5",
		"lancar 002 X 3",
		"desfazer",
		"listar",
		"exportar Primeira Insumo",
		"sair",
	)

	assert.Contains(t, out, "Descrição: Açúcar cristal")
	assert.Contains(t, out, "#2 B")
	assert.Contains(t, out, "(total 15)")
	assert.Contains(t, out, "Corrigido: 002 / X (-3)")
	assert.Contains(t, out, "Código: 001 | Descrição: Açúcar cristal | Lote: A | Quantidade: 15")
	assert.NotContains(t, out, "Lote: X")
	assert.Contains(t, out, "Arquivo exportado como primeira_contagem_insumo.xlsx")

	_, err := os.Stat(filepath.Join(dir, "primeira_contagem_insumo.xlsx"))
	assert.NoError(t, err)
}

func TestSession_Errores(t *testing.T) {
	out := run(t, newUseCase(t, ""),
		"buscar 999",
		"lancar 001 A 0",
		"lancar 001 #9 1",
		"desfazer",
		"voar",
		"lancar 001",
	)

	assert.Contains(t, out, "Erro: "+domain.ErrUnknownProduct.Error())
	assert.Contains(t, out, "Erro: "+domain.ErrInvalidQuantity.Error())
	assert.Contains(t, out, "lote #9 não existe")
	assert.Contains(t, out, "Erro: "+domain.ErrEmptyHistory.Error())
	assert.Contains(t, out, `Erro: comando desconhecido "voar"`)
	assert.Contains(t, out, "Erro: uso: lancar")
}

func TestSession_LimparSinPermiso(t *testing.T) {
	uc := newUseCase(t, "")
	var out bytes.Buffer
	s := cli.NewSession(uc, "ana", strings.NewReader("lancar 002 X 1\nlimpar\nlistar\n"), &out)
	s.AllowClear = false
	require.NoError(t, s.Run(context.Background()))

	assert.Contains(t, out.String(), "apenas supervisores")
	assert.Contains(t, out.String(), "Lote: X | Quantidade: 1")
}

func TestSession_Limpar(t *testing.T) {
	out := run(t, newUseCase(t, ""), "lancar 002 X 1", "limpar", "listar")
	assert.Contains(t, out, "Lançamentos limpos.")
	assert.Contains(t, out, "Nenhum registro contado.")
}

func TestSession_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	err := cli.NewSession(newUseCase(t, ""), "ana", strings.NewReader("listar\n"), &out).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

// La cancelación corta la espera aunque el operador no haya escrito nada.
func TestSession_CancelacionDuranteLectura(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	var out bytes.Buffer
	s := cli.NewSession(newUseCase(t, ""), "ana", pr, &out)

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("la sesión no terminó tras cancelar el contexto")
	}
}
