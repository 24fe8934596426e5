package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ymatsuda/trackboard/internal/cache"
	"github.com/ymatsuda/trackboard/internal/config"
	"github.com/ymatsuda/trackboard/internal/progress"
)

var warmBase string

var warmCmd = &cobra.Command{
	Use:   "warm",
	Short: "Pre-populate the offline cache with the UI's static assets",
	Long: `Fetches the configured precache manifest from a running trackboard
server and stores it in the offline cache. The install is all or
nothing: if any asset fails to fetch, the cache is left untouched.
Stale cache generations are dropped afterwards.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		manifest, err := cache.ExpandManifest(cfg.StaticDir, cfg.Precache)
		if err != nil {
			return err
		}
		if len(manifest) == 0 {
			return fmt.Errorf("precache manifest is empty; nothing to warm")
		}

		store, err := cache.Open(cfg.CachePath)
		if err != nil {
			return fmt.Errorf("opening cache: %w", err)
		}
		defer store.Close()

		base := warmBase
		if base == "" {
			base = fmt.Sprintf("http://localhost:%d", cfg.Port)
		}

		worker := cache.NewWorker(store, cfg.CacheGeneration, cfg.APIPrefix, nil)
		reporter := progress.NewReporter()
		reporter.Start(len(manifest))
		worker.OnInstall = func(done, total int, path string) {
			reporter.Update(done, path)
		}

		ctx := context.Background()
		if err := worker.Install(ctx, base, manifest); err != nil {
			reporter.Finish()
			return err
		}
		reporter.Finish()

		if err := worker.Activate(ctx); err != nil {
			return err
		}

		fmt.Printf("Warmed %d assets into generation %s\n", len(manifest), cfg.CacheGeneration)
		return nil
	},
}

func init() {
	warmCmd.Flags().StringVar(&warmBase, "base", "", "base URL of a running trackboard server (default http://localhost:<port>)")
	rootCmd.AddCommand(warmCmd)
}
