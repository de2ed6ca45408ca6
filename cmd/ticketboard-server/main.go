package main

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

	server "github.com/kazz187/ticketboard/internal"
	"github.com/kazz187/ticketboard/internal/config"
	"github.com/kazz187/ticketboard/internal/graph"
	"github.com/kazz187/ticketboard/internal/ticket"
	ticketrepo "github.com/kazz187/ticketboard/internal/ticket/repositoryimpl"
	"github.com/kazz187/ticketboard/pkg/clog"
	"github.com/kazz187/ticketboard/pkg/storage"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	env, err := config.LoadEnv()
	if err != nil {
		return err
	}

	// Setup logger
	level := env.SlogLevel()
	var handler slog.Handler
	if env.IsLocal() {
		handler = clog.NewTextHandler(os.Stderr, clog.WithLevel(level))
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(clog.NewAttributesHandler(handler)))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	repo, closeRepo, err := newTicketRepository(ctx, env)
	if err != nil {
		return fmt.Errorf("failed to set up %s ticket repository: %w", env.StorageEnv.Type, err)
	}
	defer closeRepo()

	ticketSvc := ticket.NewService(repo)
	graphSvc := graph.NewService(repo)
	srv := server.NewServer(env.Addr(), env.APIKey, ticketSvc, graphSvc)

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
			cancel()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}

	select {
	case err := <-serveErr:
		return fmt.Errorf("server error: %w", err)
	default:
		return nil
	}
}

func newTicketRepository(ctx context.Context, env *config.Env) (ticket.Repository, func(), error) {
	switch env.StorageEnv.Type {
	case "postgres":
		repo, err := ticketrepo.NewPostgresRepository(ctx, ticketrepo.PostgresConfig{
			DSN:            env.DSN,
			MaxConns:       env.MaxConns,
			MinConns:       env.MinConns,
			QueryTimeout:   env.QueryTimeout,
			MigrateTimeout: env.MigrateTimeout,
		})
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	case "s3":
		store, err := storage.NewS3Storage(ctx, env.S3Bucket, env.S3Prefix, env.S3Region)
		if err != nil {
			return nil, nil, err
		}
		return ticketrepo.NewYAMLRepository(store), func() {}, nil
	default:
		store, err := storage.NewLocalStorage(env.BaseDir)
		if err != nil {
			return nil, nil, err
		}
		repo := ticketrepo.NewYAMLRepository(store)
		watchCtx, stop := context.WithCancel(ctx)
		go func() {
			// Tickets written by another process must not collide with IDs
			// handed out from the cached counter.
			err := store.Watch(watchCtx, repo.TicketsPrefix(), func(p string) {
				slog.DebugContext(watchCtx, "ticket storage changed", "path", p)
				repo.Invalidate()
			})
			if err != nil {
				slog.Warn("ticket storage watch stopped", "error", err)
			}
		}()
		return repo, stop, nil
	}
}
