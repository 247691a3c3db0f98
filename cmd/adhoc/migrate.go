package main

import (
	"github.com/spf13/cobra"
	"github.com/vfg2006/gads-play-optimizer/internal/bootstrap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Cria as tabelas do armazenamento de recomendações",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, closer, err := bootstrap.NewStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		if closer != nil {
			defer closer()
		}

		newPrinter(cmd).Success("Armazenamento %s pronto", cfg.Store.Driver)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
