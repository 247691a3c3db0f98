package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vfg2006/gads-play-optimizer/internal/config"
	"github.com/vfg2006/gads-play-optimizer/pkg/log"
)

var (
	cfg     *config.Config
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "adhoc",
	Short: "Execuções pontuais da sincronização Google Ads + Google Play",
	Long: `adhoc executa a sincronização diária fora do agendador e consulta as
recomendações já geradas.

Exemplos:
  adhoc run                      # Processa a data alvo (hoje menos o atraso dos relatórios)
  adhoc run --date 2024-05-01    # Processa um dia específico
  adhoc run --date 2024-05-01 --force
  adhoc show 2024-05-01          # Mostra as recomendações do dia
  adhoc list --limit 10          # Lista os últimos dias processados`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

func Execute() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "desabilita cores na saída")
}

func initConfig() error {
	loaded, err := config.NewConfig()
	if err != nil {
		return err
	}

	cfg = loaded
	log.Configure(cfg.App.LogLevel)
	return nil
}

func newPrinter(cmd *cobra.Command) *Printer {
	return NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), !noColor)
}
