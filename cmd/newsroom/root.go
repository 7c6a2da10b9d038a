package main

import (
	"github.com/spf13/cobra"
)

var envFile string

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "newsroom",
		Short: "Newsletter service with password authentication",
		Long: `newsroom serves the subscription API, the session-based admin area
and the Basic-auth publishing endpoint.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file to load before reading the environment")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewUsersCmd())

	return cmd
}
