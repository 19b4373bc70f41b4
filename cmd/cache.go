package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the result cache",
}

var cachePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Remove expired cache entries",
	Long: `Drops every expired entry from the configured cache backend. Expired
entries are already invisible to reads; purging reclaims the storage.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		store, err := openCache(ctx, cfg.Cache)
		if err != nil {
			return err
		}
		defer store.Close()

		dropped, err := store.PurgeExpired(ctx)
		if err != nil {
			return err
		}
		zap.L().Info("cache purged", zap.Int("dropped", dropped))
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cachePurgeCmd)
	rootCmd.AddCommand(cacheCmd)
}
