package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jhoicas/inventario-conteo/internal/application/dto"
	"github.com/jhoicas/inventario-conteo/internal/bootstrap"
	"github.com/jhoicas/inventario-conteo/internal/domain/entity"
	"github.com/jhoicas/inventario-conteo/internal/interfaces/cli"
)

var (
	operatorName string
	password     string
)

var sessionCmd = &cobra.Command{
	Use:     "sessao",
	Aliases: []string{"session"},
	Short:   "Abre uma sessão de contagem interativa",
	Long: `Abre uma sessão de contagem no terminal. Se OPERATORS estiver configurado,
o operador precisa se autenticar com --operador e --senha; "limpar" fica
restrito ao perfil supervisor. Sem OPERATORS a sessão é local e sem restrições.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		svc, err := bootstrap.Build(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer svc.Close()

		operator, role := operatorName, entity.RoleSupervisor
		if len(cfg.Operators) > 0 {
			res, err := svc.Auth.Login(dto.LoginRequest{Username: operatorName, Password: password})
			if err != nil {
				return fmt.Errorf("autenticação: %w", err)
			}
			operator, role = res.Username, res.Role
		}
		if operator == "" {
			operator = "local"
		}

		session := cli.NewSession(svc.Counting, operator, cmd.InOrStdin(), cmd.OutOrStdout())
		session.AllowClear = role == entity.RoleSupervisor
		log.Info().Str("operator", operator).Str("role", role).Msg("sessão iniciada")
		return session.Run(ctx)
	},
}

func init() {
	sessionCmd.Flags().StringVarP(&operatorName, "operador", "o", os.Getenv("USER"), "nome do operador")
	sessionCmd.Flags().StringVar(&password, "senha", os.Getenv("CONTEO_PASSWORD"), "senha do operador (ou CONTEO_PASSWORD)")
	rootCmd.AddCommand(sessionCmd)
}
