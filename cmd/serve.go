package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ymatsuda/trackboard/internal/api"
	"github.com/ymatsuda/trackboard/internal/cache"
	"github.com/ymatsuda/trackboard/internal/config"
	"github.com/ymatsuda/trackboard/internal/notify"
	"github.com/ymatsuda/trackboard/internal/server"
	"github.com/ymatsuda/trackboard/internal/view"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the tracker UI server",
	Long:  `Starts the web UI against the configured tracker backend. Backend reads pass through the offline cache so the UI degrades gracefully when the backend is down.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		store, err := cache.Open(cfg.CachePath)
		if err != nil {
			return fmt.Errorf("opening cache: %w", err)
		}
		defer store.Close()

		worker := cache.NewWorker(store, cfg.CacheGeneration, cfg.APIPrefix, nil)
		if err := worker.Activate(context.Background()); err != nil {
			return fmt.Errorf("activating cache generation: %w", err)
		}

		client := api.NewClient(cfg.BackendURL, &http.Client{
			Transport: worker,
			Timeout:   60 * time.Second,
		})

		srv := server.New(server.Config{
			Port:      cfg.Port,
			StaticDir: cfg.StaticDir,
			AllowAll:  cfg.AllowAllOrigins,
		}, func() (*view.Shell, *notify.Center) {
			notes := notify.NewCenter()
			return view.NewShell(client, notes), notes
		})

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() { errCh <- srv.Start() }()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
