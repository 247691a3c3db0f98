package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/vfg2006/gads-play-optimizer/internal/bootstrap"
	"github.com/vfg2006/gads-play-optimizer/internal/domain"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Executa a sincronização diária uma vez",
	Long: `Busca os dados do Google Ads e do Google Play para o dia, gera as recomendações
e grava o resultado. Sem --date processa a data alvo do agendamento.`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("date", "", "dia a processar (AAAA-MM-DD)")
	runCmd.Flags().Bool("force", false, "sobrescreve recomendações já geradas para o dia")
	runCmd.Flags().Bool("json", false, "imprime o resultado como JSON")
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	printer := newPrinter(cmd)

	force, _ := cmd.Flags().GetBool("force")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	dateFlag, _ := cmd.Flags().GetString("date")

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	date := app.Scheduler.TargetDate()
	if dateFlag != "" {
		date, err = domain.ParseDate(dateFlag)
		if err != nil {
			return fmt.Errorf("data inválida %q, use o formato AAAA-MM-DD", dateFlag)
		}
	}

	result, err := app.Scheduler.RunForDate(ctx, date, force)
	if err != nil {
		return err
	}

	if jsonOutput {
		if err := writeJSON(cmd.OutOrStdout(), result); err != nil {
			return err
		}
	} else if err := printer.RunResult(result); err != nil {
		return err
	}

	if !result.Succeeded() {
		return fmt.Errorf("execução de %s falhou (%s) em %s", result.Day, result.FailureKind, result.FailedStage)
	}

	printer.Success("Recomendações de %s geradas em %s", result.Day, result.Duration().Round(time.Millisecond))
	return nil
}
