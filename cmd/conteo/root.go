package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/inventario-conteo/pkg/config"
	"github.com/jhoicas/inventario-conteo/pkg/logger"
)

// verbose habilita logs de nivel debug.
var verbose bool

var rootCmd = &cobra.Command{
	Use:   "conteo",
	Short: "Contagem física de inventário por produto e lote",
	Long: `conteo registra quantidades contadas por (código, lote), permite corrigir o
último lançamento e exporta a planilha Contagem para importação no ERP.

Configuração por variáveis de ambiente ou .env (MASTER_DATA_FILE, EXPORT_DIR,
COMPANY_CODE, BRANCH_CODE, WAREHOUSE_CODE, OPERATORS, DB_ENABLED...).`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// Execute ejecuta el comando raíz; sale con código 1 si falla.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Erro: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "logs detalhados (debug)")
}

// loadConfig lee la configuración y arma el logger; los logs van a stderr para no mezclarse con la sesión.
func loadConfig() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("cargar configuración: %w", err)
	}
	level := cfg.App.LogLevel
	if verbose {
		level = "debug"
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: level, Output: os.Stderr})
	return cfg, log, nil
}
