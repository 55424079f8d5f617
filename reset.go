package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/Billy-Davies-2/expansion-draft/internal/config"
	"github.com/Billy-Davies-2/expansion-draft/internal/dal"
	"github.com/Billy-Davies-2/expansion-draft/internal/logger"
)

func newResetCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear protections, draft order, picks and dispersed owners from the store",
		RunE: func(cmd *cobra.Command, args []string) error {
			blobs, err := openBlobStore(*cfg)
			if err != nil {
				return err
			}
			defer blobs.Close()

			if err := dal.NewStore(blobs).ResetAll(cmd.Context()); err != nil {
				return err
			}
			logger.Info("Draft data reset", "driver", cfg.DBDriver)
			return nil
		},
	}
}

func newRulesCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "rules [file]",
		Short: "Validate a rules file and print the effective rules",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := cfg.RulesFile
			if len(args) == 1 {
				path = args[0]
			}
			rules, err := config.LoadRules(path)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(rules)
		},
	}
}
