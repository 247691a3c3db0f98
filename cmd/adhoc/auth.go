package main

import (
	"github.com/spf13/cobra"
	"github.com/vfg2006/gads-play-optimizer/infrastructure/credentials"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Autoriza o acesso ao Google Ads e ao Google Play",
	Long: `Executa o fluxo OAuth de app instalado com o client_secret.json do projeto no
Google Cloud e grava o credentials.json usado pelas duas fontes.`,
	Args: cobra.NoArgs,
	RunE: runAuth,
}

func init() {
	rootCmd.AddCommand(authCmd)

	authCmd.Flags().String("client-secret", "config/client_secret.json", "client_secret.json do app instalado")
	authCmd.Flags().String("out", "", "destino das credenciais (padrão: GOOGLE_PLAY_CREDENTIALS_FILE)")
}

func runAuth(cmd *cobra.Command, args []string) error {
	clientSecret, _ := cmd.Flags().GetString("client-secret")
	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = cfg.GooglePlay.CredentialsFile
	}

	oauthConfig, err := credentials.LoadClientSecret(clientSecret, credentials.DefaultScopes)
	if err != nil {
		return err
	}

	return credentials.RunInstalledAppFlow(cmd.Context(), oauthConfig, out, cmd.OutOrStdout())
}
