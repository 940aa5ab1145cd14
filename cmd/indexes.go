package cmd

import (
	"fmt"

	"medibook/config"
	"medibook/database"
	"medibook/database/repository"

	"github.com/spf13/cobra"
)

func indexesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ensure-indexes",
		Short: "Create the MongoDB collection indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.AppConfig.Store != "mongo" {
				return fmt.Errorf("ensure-indexes requires STORE=mongo")
			}
			ctx := cmd.Context()
			client, err := database.InitDB(ctx)
			if err != nil {
				return err
			}
			defer client.Disconnect(ctx)

			if err := repository.EnsureMongoIndexes(ctx, database.Database(client)); err != nil {
				return fmt.Errorf("failed to ensure indexes: %w", err)
			}
			fmt.Println("Indexes are up to date.")
			return nil
		},
	}
}
