package main

import (
	"github.com/spf13/cobra"
	"github.com/vfg2006/gads-play-optimizer/internal/bootstrap"
	"github.com/vfg2006/gads-play-optimizer/internal/domain"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Lista os dias com recomendações, mais recentes primeiro",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().Int("limit", 30, "quantidade máxima de dias")
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	printer := newPrinter(cmd)
	limit, _ := cmd.Flags().GetInt("limit")

	store, closer, err := bootstrap.NewStore(ctx, cfg)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer()
	}

	dates, err := store.ListDates(ctx, limit)
	if err != nil {
		return err
	}

	if len(dates) == 0 {
		printer.Info("Nenhuma recomendação gerada até agora")
		return nil
	}

	rows := make([][]string, 0, len(dates))
	for _, date := range dates {
		rows = append(rows, []string{domain.FormatDate(date)})
	}

	printer.Header("Dias processados")
	return printer.table([]string{"DATA"}, rows)
}
