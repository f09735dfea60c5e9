package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/rpupo63/marketing-site-backend/api"
	"github.com/rpupo63/marketing-site-backend/config"
	"github.com/rpupo63/marketing-site-backend/database"
	"github.com/rpupo63/marketing-site-backend/kv"
)

const shutdownTimeout = 30 * time.Second

var errInterrupted = errors.New("interrupted")

func main() {
	c := config.Load()
	configureLogger(c)

	log.Info().Msg("Initializing app...")

	if err := run(context.Background(), c); err != nil {
		log.Error().Err(err).Msg("Server stopped")
		os.Exit(1)
	}
	log.Info().Msg("Server stopped")
}

func run(ctx context.Context, c map[string]string) error {
	backend, err := kv.Open(ctx, c)
	if err != nil {
		return fmt.Errorf("opening storage backend: %w", err)
	}

	currentDB := database.New(backend, config.GetString(c, "BLOG_STORAGE_KEY", database.DefaultBlogKey))
	defer func() {
		if err := currentDB.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing storage backend")
		}
	}()

	// Surface a corrupt collection at boot; the public pages would only show it as empty.
	if blogPosts, err := currentDB.BlogPostRepo().LoadAll(ctx); err != nil {
		log.Warn().Err(err).Msg("Stored blog posts are unreadable")
	} else {
		log.Info().
			Str("backend", config.GetString(c, "STORAGE_BACKEND", kv.BackendMemory)).
			Str("key", currentDB.BlogPostRepo().Key()).
			Int("count", len(blogPosts)).
			Msg("Blog storage ready")
	}

	server, err := api.NewServer(currentDB, c)
	if err != nil {
		return fmt.Errorf("initializing server: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(server.Start)
	g.Go(func() error { return listenToInterrupt(gctx) })
	g.Go(func() error {
		<-gctx.Done()
		return server.ShutdownGracefully(shutdownTimeout)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errInterrupted) {
		return err
	}
	return nil
}

// configureLogger sets the global zerolog level and output from LOG_LEVEL
// and LOG_FORMAT.
func configureLogger(c map[string]string) {
	level, err := zerolog.ParseLevel(config.GetString(c, "LOG_LEVEL", "info"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if config.GetString(c, "LOG_FORMAT", "console") == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
}

// listenToInterrupt waits for SIGINT or SIGTERM, or for ctx to end.
func listenToInterrupt(ctx context.Context) error {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(c)

	select {
	case sig := <-c:
		return fmt.Errorf("%w: %s", errInterrupted, sig)
	case <-ctx.Done():
		return nil
	}
}
