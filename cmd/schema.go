package cmd

import (
	"bytes"
	"fmt"
	"os"

	"listing-manager/core/schema"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// schemaCmd groups item schema operations
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Manage the item schema",
}

// pushCmd uploads a schema dump
var pushCmd = &cobra.Command{
	Use:   "push <file>",
	Short: "Upload a schema dump to storage and optionally to the database",
	Long: `Validates a schema dump, uploads it to the configured bucket under the schema
object key and, with --db, upserts its items into the schema_items table.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read schema dump: %w", err)
		}

		rt, err := bootstrap(cliLogConfig)
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		count, err := schema.Publish(ctx, rt.storage, rt.cfg.Storage.Bucket, rt.cfg.Schema.Object, data)
		if err != nil {
			return err
		}
		rt.logger.Info("Schema uploaded",
			zap.String("bucket", rt.cfg.Storage.Bucket),
			zap.String("object", rt.cfg.Schema.Object),
			zap.Int("items", count),
		)

		if toDB, _ := cmd.Flags().GetBool("db"); toDB {
			if rt.db == nil {
				return fmt.Errorf("--db requested but no database is connected")
			}
			items, err := schema.DecodeItems(bytes.NewReader(data))
			if err != nil {
				return err
			}
			if err := schema.SaveToDB(ctx, rt.db, items); err != nil {
				return err
			}
			rt.logger.Info("Schema saved to database", zap.Int("items", len(items)))
		}
		return nil
	},
}

func init() {
	pushCmd.Flags().Bool("db", false, "Also upsert the items into the database")

	schemaCmd.AddCommand(pushCmd)
	RootCmd.AddCommand(schemaCmd)
}
