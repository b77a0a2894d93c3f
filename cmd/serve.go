package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/kabar/internal/server"
)

var (
	servePort     int
	serveAllowAll bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog with live search",
	Long:  `Starts an HTTP server with the article list, article pages, a JSON API and live filtering over a websocket.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = servePort
		}
		if cmd.Flags().Changed("allow-all-origins") {
			cfg.Server.AllowAllOrigins = serveAllowAll
		}

		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		articles := newLoader(cfg, store.Cache)
		srv := server.New(server.Config{
			Port:           cfg.Server.Port,
			AllowAll:       cfg.Server.AllowAllOrigins,
			SiteTitle:      cfg.SiteTitle,
			Debounce:       cfg.Search.DebounceDuration(),
			MatchExcerpt:   cfg.Search.MatchExcerpt,
			WordsPerMinute: cfg.Render.WordsPerMinute,
		}, articles, store.Cache, slog.Default())

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				slog.Warn("shutdown incomplete", "error", err)
			}
		}()

		fmt.Fprintf(os.Stderr, "kabar %s serving %s on port %d\n", Version, articles.Source(), cfg.Server.Port)
		fmt.Fprintf(os.Stderr, "  Cache: %s (ttl %s)\n", cfg.Cache.Backend, cfg.Cache.TTLDuration())

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "port to listen on (overrides server.port)")
	serveCmd.Flags().BoolVar(&serveAllowAll, "allow-all-origins", false, "allow cross-origin requests from any origin")
	rootCmd.AddCommand(serveCmd)
}
