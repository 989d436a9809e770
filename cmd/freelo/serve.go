package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"golang.org/x/sync/errgroup"

	"github.com/metalagman/freelo/internal/api"
	"github.com/metalagman/freelo/internal/assistant"
	"github.com/metalagman/freelo/internal/config"
	"github.com/metalagman/freelo/internal/db"
	"github.com/metalagman/freelo/internal/records"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			repoRoot, err := os.Getwd()
			if err != nil {
				return err
			}
			cfg, err := loadConfig(repoRoot)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}

func newServerApp(cfg config.Config, targets ...any) *fx.App {
	return fx.New(
		fx.WithLogger(func() fxevent.Logger { return fxevent.NopLogger }),
		fx.Supply(cfg),
		fx.Provide(
			provideDB,
			provideStore,
			newPipeline,
			provideHandler,
			provideHTTPServer,
		),
		fx.Populate(targets...),
	)
}

func provideDB(lc fx.Lifecycle, cfg config.Config) (*sql.DB, error) {
	conn, err := db.Open(cfg.Database.Path)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error { return conn.Close() },
	})
	return conn, nil
}

func provideStore(conn *sql.DB) *records.Store {
	return records.NewStore(conn)
}

func provideHandler(cfg config.Config, store *records.Store, pipeline *assistant.Pipeline) (http.Handler, error) {
	secret := cfg.Server.ResolveJWTSecret()
	if secret == "" {
		return nil, fmt.Errorf("jwt secret not configured: set server.jwt_secret or $%s", cfg.Server.JWTSecretEnv)
	}
	return api.New(api.Config{
		Records:   store,
		Assistant: pipeline,
		BasePath:  cfg.Server.BasePath,
		JWTSecret: secret,
	})
}

func provideHTTPServer(cfg config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func serve(ctx context.Context, cfg config.Config) error {
	var srv *http.Server
	app := newServerApp(cfg, &srv)
	if err := app.Err(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	startCtx, cancel := context.WithTimeout(ctx, app.StartTimeout())
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), app.StopTimeout())
		defer cancel()
		if err := app.Stop(stopCtx); err != nil {
			log.Error().Err(err).Msg("stop")
		}
	}()

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", srv.Addr, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", ln.Addr().String()).Str("base_path", cfg.Server.BasePath).Msg("http server listening")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info().Msg("shutting down http server")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
