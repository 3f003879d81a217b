// @title        Vanguard Directory API
// @version      1.0
// @description  Project directory with users and chat boards.
// @BasePath     /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/vanguard/directory/internal/api"
	"github.com/vanguard/directory/internal/api/handler"
	"github.com/vanguard/directory/internal/core/entity"
	"github.com/vanguard/directory/internal/core/ports"
	"github.com/vanguard/directory/internal/core/service"
	"github.com/vanguard/directory/internal/infrastructure/auth"
	"github.com/vanguard/directory/internal/infrastructure/config"
	"github.com/vanguard/directory/internal/infrastructure/db/memory"
	mongostore "github.com/vanguard/directory/internal/infrastructure/db/mongo"
	redisstore "github.com/vanguard/directory/internal/infrastructure/db/redis"
	"github.com/vanguard/directory/internal/infrastructure/http/handlers"
	"github.com/vanguard/directory/internal/infrastructure/queue"
	"github.com/vanguard/directory/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Development(),
		Service: "directory",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}

// backend is the selected store plus its import replay guard.
type backend struct {
	store  ports.EntityStore
	replay ports.ReplayGuard
	close  func(context.Context) error
}

func openBackend(ctx context.Context, cfg *config.Config, log zerolog.Logger) (backend, error) {
	switch cfg.StoreDriver {
	case config.StoreMongo:
		db, disconnect, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return backend{}, err
		}
		store := mongostore.NewEntityStore(db)
		if err := store.EnsureIndexes(ctx); err != nil {
			_ = disconnect(ctx)
			return backend{}, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("using mongo store")
		// Replays are process-local without Redis.
		return backend{store: store, replay: memory.NewReplayGuard(cfg.Directory.ImportReplayTTL), close: disconnect}, nil

	case config.StoreMemory:
		log.Warn().Msg("using in-memory store, data is lost on restart")
		return backend{
			store:  memory.NewEntityStore(),
			replay: memory.NewReplayGuard(cfg.Directory.ImportReplayTTL),
			close:  func(context.Context) error { return nil },
		}, nil

	default:
		client, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return backend{}, err
		}
		log.Info().Str("addr", cfg.Redis.Addr).Msg("using redis store")
		return backend{
			store:  redisstore.NewEntityStore(client, cfg.Redis.Prefix),
			replay: redisstore.NewReplayGuard(client, cfg.Redis.Prefix, cfg.Directory.ImportReplayTTL),
			close:  func(context.Context) error { return client.Close() },
		}, nil
	}
}

func identityProvider(cfg *config.Config) (ports.IdentityProvider, error) {
	if cfg.AuthMode == config.AuthJWT {
		return auth.NewJWTProvider(cfg.JWTSecret)
	}
	return auth.NewMockProvider(), nil
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	be, err := openBackend(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := be.close(context.Background()); err != nil {
			log.Warn().Err(err).Msg("closing store")
		}
	}()

	identity, err := identityProvider(cfg)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	var serial ports.Serializer
	if cfg.Directory.SerializeMutations {
		// Workers outlive the HTTP server so draining requests can finish.
		dctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		d := queue.NewDispatcher(cfg.Directory.MutationWorkers, logger.Component("dispatcher"))
		d.Start(dctx)
		serial = d
	}

	repos := entity.NewRepositories(be.store, serial)
	if cfg.Directory.SeedOnStartup {
		if err := service.Seed(ctx, repos, logger.Component("seeder")); err != nil {
			return err
		}
	}

	projects := service.NewProjectService(repos.Projects, service.ProjectOptions{
		ExportLimit: cfg.Directory.ExportLimit,
		SeedOnList:  cfg.Directory.SeedOnList,
		Replay:      be.replay,
	}, logger.Component("projects"))

	e := api.NewRouter(api.Dependencies{
		Projects:  projects,
		Users:     service.NewUserService(repos.Users, logger.Component("users")),
		Chats:     service.NewChatService(repos.Chats, logger.Component("chats")),
		Identity:  identity,
		Paging:    handler.Paging{Default: cfg.Directory.DefaultPageSize, Max: cfg.Directory.MaxPageSize},
		Ready:     map[string]handlers.Pinger{cfg.StoreDriver: be.store},
		Log:       log,
		BodyLimit: cfg.BodyLimit,
	})

	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Str("auth_mode", cfg.AuthMode).Msg("listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
