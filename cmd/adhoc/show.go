package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/vfg2006/gads-play-optimizer/internal/bootstrap"
	"github.com/vfg2006/gads-play-optimizer/internal/domain"
	"github.com/vfg2006/gads-play-optimizer/pkg/utils"
)

var showCmd = &cobra.Command{
	Use:   "show <data>",
	Short: "Mostra as recomendações geradas para um dia",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().Bool("json", false, "imprime o conjunto como JSON")
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	date, err := domain.ParseDate(args[0])
	if err != nil {
		return fmt.Errorf("data inválida %q, use o formato AAAA-MM-DD", args[0])
	}

	store, closer, err := bootstrap.NewStore(ctx, cfg)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer()
	}

	set, err := store.Get(ctx, date)
	if err != nil {
		return err
	}
	if set == nil {
		return fmt.Errorf("nenhuma recomendação encontrada para %s", args[0])
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return writeJSON(cmd.OutOrStdout(), set)
	}

	return newPrinter(cmd).Recommendations(set)
}

func writeJSON(w io.Writer, value any) error {
	out, err := utils.PrettyJson(value)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, out)
	return err
}
