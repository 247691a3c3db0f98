package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/vfg2006/gads-play-optimizer/internal/domain"
	"github.com/vfg2006/gads-play-optimizer/internal/usecases/authenticating"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Emite um token de acesso para a API",
	Args:  cobra.NoArgs,
	RunE:  runToken,
}

func init() {
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().String("name", "", "nome de quem vai usar o token")
	tokenCmd.Flags().String("role", domain.RoleViewer, "papel do token (operator ou viewer)")
	tokenCmd.Flags().Duration("ttl", 30*24*time.Hour, "validade do token")
	_ = tokenCmd.MarkFlagRequired("name")
}

func runToken(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	role, _ := cmd.Flags().GetString("role")
	ttl, _ := cmd.Flags().GetDuration("ttl")

	token, err := authenticating.NewService(cfg).IssueToken(name, role, ttl)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
