package application

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-history/internal/config"
	"github.com/rocketscienceinc/tictactoe-history/internal/repository"
	"github.com/rocketscienceinc/tictactoe-history/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-history/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-history/transport/rest"
	"github.com/rocketscienceinc/tictactoe-history/transport/websocket"
	"golang.org/x/sync/errgroup"
)

// RunApp - runs the application until SIGINT/SIGTERM or a server failure.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	sessionRepo, closeStore, err := newSessionRepository(ctx, log, conf)
	if err != nil {
		return err
	}
	defer closeStore()

	sessionManager := usecase.NewSessionManager(logger, sessionRepo)

	errg, ctx := errgroup.WithContext(ctx)

	if memoryRepo, ok := sessionRepo.(*repository.MemorySessionRepository); ok {
		errg.Go(func() error {
			return memoryRepo.Start(ctx)
		})
	}

	errg.Go(func() error {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if err := rest.New(logger, sessionManager).Start(ctx, conf.HTTPPort); err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	errg.Go(func() error {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		if err := websocket.New(logger, sessionManager).Start(ctx, conf.SocketPort); err != nil {
			return fmt.Errorf("WebSocket server error: %w", err)
		}
		return nil
	})

	if err = errg.Wait(); err != nil {
		return err
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

func newSessionRepository(
	ctx context.Context,
	log *slog.Logger,
	conf *config.Config,
) (repository.SessionRepository, func(), error) {
	if conf.Store == config.StoreMemory {
		log.Info("Using in-memory session store", "ttl", conf.SessionTTL)
		return repository.NewMemorySessionRepository(conf.SessionTTL), func() {}, nil
	}

	redisStorage, err := storage.New(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	log.Info("Using redis session store", "addr", conf.Redis.GetRedisAddr(), "ttl", conf.SessionTTL)

	closeStore := func() {
		if err := redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}

	return repository.NewSessionRepository(redisStorage, conf.SessionTTL), closeStore, nil
}
