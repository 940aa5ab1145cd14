package cmd

import (
	"fmt"
	"os"

	"medibook/config"
	"medibook/utils"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "medibook",
	Short: "Clinic appointment booking API",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadConfig(); err != nil {
			return err
		}
		utils.SetJWTSecret(config.AppConfig.JWTSecret)
		utils.InitializeLogger()
		return nil
	},
	SilenceUsage: true,
}

// Execute runs the command line. The server is the default command.
func Execute() {
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(reconcileCmd())
	rootCmd.AddCommand(indexesCmd())
	rootCmd.RunE = serveCmd().RunE

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
