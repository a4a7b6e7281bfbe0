package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/inventario-conteo/internal/bootstrap"
)

var validateCmd = &cobra.Command{
	Use:   "validar",
	Short: "Verifica a configuração e o cadastro de produtos",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		svc, err := bootstrap.Build(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		defer svc.Close()

		products, err := svc.Catalog.List()
		if err != nil {
			return err
		}
		withoutLots := 0
		for _, p := range products {
			if len(p.KnownLots) == 0 {
				withoutLots++
			}
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Origem do cadastro: %s\n", cfg.MasterData.Source)
		fmt.Fprintf(out, "Produtos:           %d\n", len(products))
		fmt.Fprintf(out, "Sem lote conhecido: %d\n", withoutLots)
		fmt.Fprintf(out, "Organização:        %s / %s / %s\n", cfg.Export.CompanyCode, cfg.Export.BranchCode, cfg.Export.WarehouseCode)
		fmt.Fprintf(out, "Pasta de exportação: %s\n", cfg.Export.Dir)
		fmt.Fprintf(out, "Operadores:         %d\n", len(cfg.Operators))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
