package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Billy-Davies-2/expansion-draft/internal/auth"
	"github.com/Billy-Davies-2/expansion-draft/internal/clickhouse"
	"github.com/Billy-Davies-2/expansion-draft/internal/config"
	"github.com/Billy-Davies-2/expansion-draft/internal/coordinator"
	"github.com/Billy-Davies-2/expansion-draft/internal/dal"
	"github.com/Billy-Davies-2/expansion-draft/internal/handlers"
	"github.com/Billy-Davies-2/expansion-draft/internal/league"
	"github.com/Billy-Davies-2/expansion-draft/internal/logger"
	"github.com/Billy-Davies-2/expansion-draft/internal/mocks"
	"github.com/Billy-Davies-2/expansion-draft/internal/pubsub"
)

// upstreamBus is the broker side of the event bus
type upstreamBus interface {
	pubsub.Bus
	Close()
}

func newServeCmd(cfg *config.Config) *cobra.Command {
	var inProcessBus bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), *cfg, inProcessBus)
		},
	}

	cmd.Flags().StringVar(&cfg.Port, "port", cfg.Port, "HTTP port (env: PORT)")
	cmd.Flags().StringVar(&cfg.LeagueID, "league", cfg.LeagueID, "Sleeper league ID (env: LEAGUE_ID)")
	cmd.Flags().StringVar(&cfg.RankingsSource, "rankings", cfg.RankingsSource, "Rankings source: fantasycalc, clickhouse, none (env: RANKINGS_SOURCE)")
	cmd.Flags().StringVar(&cfg.RulesFile, "rules", cfg.RulesFile, "HCL rules file (env: RULES_FILE)")
	cmd.Flags().StringVar(&cfg.NATSURL, "nats-url", cfg.NATSURL, "NATS server URL, production only (env: NATS_URL)")
	cmd.Flags().StringVar(&cfg.LockPasswordStorage, "lock-password-storage", cfg.LockPasswordStorage, "bcrypt, or plaintext for older clients (env: LOCK_PASSWORD_STORAGE)")
	cmd.Flags().BoolVar(&inProcessBus, "in-process-bus", false, "Skip the embedded NATS server in development")

	return cmd
}

func openBlobStore(cfg config.Config) (dal.BlobStore, error) {
	switch cfg.DBDriver {
	case "memory":
		logger.Info("Using in-memory data store")
		return dal.NewMemoryDAL(), nil
	case "sqlite":
		logger.Info("Using SQLite data store", "file", cfg.SQLiteFile)
		return dal.NewSQLiteDAL(cfg.SQLiteFile)
	case "postgres":
		if cfg.DatabaseURL == "" {
			if cfg.IsDevelopment() {
				return mocks.NewMockPostgresDAL(cfg.SQLiteFile)
			}
			return nil, errors.New("DATABASE_URL is required for the postgres driver")
		}
		logger.Info("Using Postgres data store")
		return dal.NewPostgresDAL(cfg.DatabaseURL)
	case "redis":
		redisCfg := dal.DefaultRedisConfig()
		redisCfg.URL = cfg.RedisURL
		logger.Info("Using Redis data store", "url", cfg.RedisURL)
		return dal.NewRedisDAL(redisCfg)
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q (valid: memory, sqlite, postgres, redis)", cfg.DBDriver)
	}
}

func openUpstream(cfg config.Config, inProcess bool) (upstreamBus, error) {
	if !cfg.IsDevelopment() {
		bus, err := pubsub.NewNATSPubSub(cfg.NATSURL, cfg.NATSSubject)
		if err != nil {
			return nil, err
		}
		logger.Info("Connected to NATS", "url", cfg.NATSURL)
		return bus, nil
	}
	if inProcess {
		return mocks.NewMockNATSPubSub(), nil
	}

	opts := pubsub.DefaultEmbeddedNATSOptions()
	opts.Subject = cfg.NATSSubject
	bus, err := pubsub.NewEmbeddedNATSPubSub(opts)
	if err != nil {
		return nil, err
	}
	logger.Info("Embedded NATS server ready", "url", bus.GetServerURL())
	return bus, nil
}

// sources returns the league and rankings sources. The returned closer
// releases the ClickHouse connection when one was opened.
func sources(ctx context.Context, cfg config.Config) (league.Source, league.RankingSource, func(), error) {
	noop := func() {}
	if cfg.UseMockLeague() {
		src := mocks.NewMockLeagueSource()
		return src, src, noop, nil
	}

	leagueSrc := league.NewSleeperClient(cfg.LeagueID)
	chCfg := clickhouse.Config{
		Addr:     cfg.ClickHouseAddr,
		Database: cfg.ClickHouseDB,
		Username: cfg.ClickHouseUser,
		Password: cfg.ClickHousePassword,
		Table:    cfg.ClickHouseTable,
	}

	switch cfg.RankingsSource {
	case "none":
		return leagueSrc, nil, noop, nil
	case "clickhouse":
		ch, err := clickhouse.NewRankingClient(ctx, chCfg)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := ch.EnsureSchema(ctx); err != nil {
			ch.Close()
			return nil, nil, nil, err
		}
		return leagueSrc, ch, func() { ch.Close() }, nil
	case "fantasycalc":
		live := league.NewFantasyCalcClient()
		if cfg.IsDevelopment() {
			return leagueSrc, live, noop, nil
		}
		ch, err := clickhouse.NewRankingClient(ctx, chCfg)
		if err == nil {
			err = ch.EnsureSchema(ctx)
		}
		if err != nil {
			logger.Warn("ClickHouse unavailable, rankings will not be archived", "error", err)
			return leagueSrc, live, noop, nil
		}
		archive := &clickhouse.ArchivingSource{Live: live, Store: ch, Source: "fantasycalc"}
		return leagueSrc, archive, func() { ch.Close() }, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown RANKINGS_SOURCE %q (valid: fantasycalc, clickhouse, none)", cfg.RankingsSource)
	}
}

func lockConfig(cfg config.Config) auth.Config {
	lc := auth.DefaultConfig()
	lc.Plaintext = cfg.PlaintextLocks()
	return lc
}

func serve(ctx context.Context, cfg config.Config, inProcessBus bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting expansion draft service", "environment", cfg.Environment)

	rules, err := config.LoadRules(cfg.RulesFile)
	if err != nil {
		return fmt.Errorf("load rules: %w", err)
	}

	blobs, err := openBlobStore(cfg)
	if err != nil {
		return err
	}
	defer blobs.Close()

	upstream, err := openUpstream(cfg, inProcessBus)
	if err != nil {
		return fmt.Errorf("event bus: %w", err)
	}
	defer upstream.Close()
	bus := pubsub.NewWithUpstream(upstream)
	defer bus.Close()

	leagueSrc, rankingSrc, closeRankings, err := sources(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRankings()

	coord, err := coordinator.New(ctx, coordinator.Deps{
		Store:    dal.NewStore(blobs),
		Bus:      bus,
		League:   leagueSrc,
		Rankings: rankingSrc,
		Rules:    rules,
		Hasher:   auth.NewLockHasher(lockConfig(cfg)),
	})
	if err != nil {
		return err
	}
	go coord.Run(ctx)

	api := handlers.NewAPIHandlers(coord, bus, nil)
	server := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Port,
		Handler:           handlers.Routes(api, upstream),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "address", server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
