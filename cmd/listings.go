package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"listing-manager/core/encoder"
	"listing-manager/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var cliLogConfig = &logger.Config{Level: "info", Format: "console"}

// listingsCmd groups one-shot listing operations
var listingsCmd = &cobra.Command{
	Use:   "listings",
	Short: "Inspect and manage listings without starting the server",
}

// encodeCmd prints the item payload for a SKU
var encodeCmd = &cobra.Command{
	Use:   "encode <sku>",
	Short: "Print the encoded item payload for a SKU",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(cliLogConfig)
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		if _, err := rt.schema.Ensure(cmd.Context()); err != nil {
			return fmt.Errorf("failed to load schema: %w", err)
		}

		item, err := encoder.EncodeSKU(args[0], rt.schema)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(item)
	},
}

// limitsCmd prints the account's listing counters
var limitsCmd = &cobra.Command{
	Use:   "limits",
	Short: "Print the listing limits of the configured account",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(cliLogConfig)
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		if refresh, _ := cmd.Flags().GetBool("refresh"); refresh {
			if err := rt.client.RefreshListingLimits(cmd.Context()); err != nil {
				return err
			}
		}

		limits, err := rt.client.GetListingLimits(cmd.Context())
		if err != nil {
			return err
		}

		rt.logger.Info("Listing limits",
			zap.Int("cap", limits.Cap),
			zap.Int("used", limits.Used),
			zap.Int("promoted", limits.Promoted),
		)
		return nil
	},
}

// removeAllCmd deletes every desired listing of the account
var removeAllCmd = &cobra.Command{
	Use:   "remove-all",
	Short: "Remove every desired listing of the configured account",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(cliLogConfig)
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		start := time.Now()
		if err := rt.engine(nil).RemoveAllListings(cmd.Context()); err != nil {
			return err
		}
		rt.logger.Info("All listings removed", zap.Duration("duration", time.Since(start)))
		return nil
	},
}

func init() {
	limitsCmd.Flags().Bool("refresh", false, "Ask the listing service to refresh the counters first")

	listingsCmd.AddCommand(encodeCmd)
	listingsCmd.AddCommand(limitsCmd)
	listingsCmd.AddCommand(removeAllCmd)
	RootCmd.AddCommand(listingsCmd)
}
