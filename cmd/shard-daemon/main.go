package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/andrescamacho/spaceshard-go/internal/adapters/api"
	"github.com/andrescamacho/spaceshard-go/internal/adapters/gateway"
	"github.com/andrescamacho/spaceshard-go/internal/adapters/grpc"
	"github.com/andrescamacho/spaceshard-go/internal/adapters/metrics"
	"github.com/andrescamacho/spaceshard-go/internal/adapters/persistence"
	"github.com/andrescamacho/spaceshard-go/internal/application/auth"
	"github.com/andrescamacho/spaceshard-go/internal/application/mediator"
	"github.com/andrescamacho/spaceshard-go/internal/application/setup"
	snapshotCmd "github.com/andrescamacho/spaceshard-go/internal/application/snapshot/commands"
	"github.com/andrescamacho/spaceshard-go/internal/domain/combat"
	"github.com/andrescamacho/spaceshard-go/internal/domain/galaxy"
	"github.com/andrescamacho/spaceshard-go/internal/domain/player"
	"github.com/andrescamacho/spaceshard-go/internal/domain/scheduler"
	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
	"github.com/andrescamacho/spaceshard-go/internal/domain/transfer"
	"github.com/andrescamacho/spaceshard-go/internal/infrastructure/config"
	"github.com/andrescamacho/spaceshard-go/internal/infrastructure/database"
	"github.com/andrescamacho/spaceshard-go/internal/infrastructure/logging"
	"github.com/andrescamacho/spaceshard-go/internal/infrastructure/pidfile"
)

func main() {
	configPath := flag.String("config", "", "Path to the shard config file")
	flag.Parse()

	fmt.Println("DuncanShard Daemon v0.1.0")
	fmt.Println("=========================")

	fmt.Println("Loading configuration...")
	cfg := config.MustLoadConfig(*configPath)

	fmt.Printf("Acquiring PID file lock: %s\n", cfg.Daemon.PIDFile)
	pf := pidfile.New(cfg.Daemon.PIDFile)
	if err := pf.Acquire(); err != nil {
		log.Fatalf("Failed to acquire PID file lock: %v", err)
	}
	defer func() {
		if err := pf.Release(); err != nil {
			log.Printf("Warning: failed to release PID file: %v", err)
		}
	}()

	if err := run(cfg); err != nil {
		log.Printf("Fatal error: %v", err)
		pf.Release()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()
	logger = logger.With(map[string]interface{}{"shard": cfg.Shard.Name})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Sector
	spec, err := cfg.World.SectorSpecification()
	if err != nil {
		return err
	}
	sector, err := spec.Build(galaxy.SeedRand(cfg.World.Seed, "placement"))
	if err != nil {
		return fmt.Errorf("failed to build sector: %w", err)
	}
	for _, name := range sector.AttachWormholes(cfg.GalaxyWormholes()) {
		logger.Log("WARN", "wormhole skipped: local system unknown", map[string]interface{}{
			"wormhole": name,
			"system":   cfg.Wormholes[name].System,
		})
	}
	fmt.Printf("Sector ready: %d systems, %d wormholes\n", len(sector.Systems()), len(sector.Wormholes()))

	// 2. Players and metrics
	players := persistence.NewInMemoryPlayerRepository()
	collectors, err := metrics.NewCollectors(players.Count)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	// 3. Simulation machinery
	sched := scheduler.New(time.Now())
	organiser := combat.NewOrganiser(sched, logger, collectors.Simulation)
	deps := &player.Dependencies{
		Sector:    sector,
		Scheduler: sched,
		Combat:    organiser,
		Logger:    logger,
		Reporter:  collectors.Simulation,
	}

	// 4. Optional persistence
	var (
		transferLog transfer.LogRepository
		snapshots   player.SnapshotRepository
	)
	if cfg.Database.Enabled {
		fmt.Printf("Connecting to %s database...\n", cfg.Database.Type)
		db, err := database.NewConnection(&cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close(db)
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		snapshotRepo, err := persistence.NewGormSnapshotRepository(db,
			persistence.WithCompressionLevel(cfg.Database.Snapshots.Compression),
			persistence.WithRetention(cfg.Database.Snapshots.Retention),
		)
		if err != nil {
			return err
		}
		snapshots = snapshotRepo
		transferLog = persistence.NewGormTransferLogRepository(db)
	}

	// 5. Sibling shard client
	client := api.NewShardClient(api.ClientOptions{
		Timeout:            cfg.API.Timeout,
		RequestsPerSecond:  cfg.API.RateLimit.Requests,
		Burst:              cfg.API.RateLimit.Burst,
		MaxRetries:         cfg.API.Retry.MaxAttempts,
		BackoffBase:        cfg.API.Retry.BackoffBase,
		BreakerMaxFailures: cfg.API.CircuitBreaker.MaxFailures,
		BreakerTimeout:     cfg.API.CircuitBreaker.Timeout,
		Recorder:           collectors.API,
	})

	// 6. Mediator
	registry := setup.NewHandlerRegistry(players, deps, client, transferLog, collectors.Simulation, snapshots)
	med, err := registry.CreateConfiguredMediator(
		setup.LoggingMiddleware(logger),
		metrics.PrometheusMiddleware(collectors.Commands),
	)
	if err != nil {
		return fmt.Errorf("failed to configure mediator: %w", err)
	}

	credentials := auth.Credentials{
		AdminUser:      cfg.Auth.AdminUser,
		AdminPassword:  cfg.Auth.AdminPassword,
		SharedPassword: cfg.Auth.SharedPassword,
		KnownShards:    cfg.Auth.KnownShards,
	}

	var opts []gateway.Option
	if cfg.Metrics.Enabled {
		opts = append(opts, gateway.WithMetrics(cfg.Metrics.Path, collectors.Handler()))
	}
	gw, err := gateway.NewServer(med, credentials, logger, opts...)
	if err != nil {
		return fmt.Errorf("failed to create gateway: %w", err)
	}

	daemon := grpc.NewDaemonServer(med, credentials, logger, func() map[string]interface{} {
		return daemonStatus(cfg, sector, sched, players, client)
	})
	listener, err := grpc.Listen(cfg.Daemon.Address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Daemon.Address, err)
	}

	// 7. Run everything until a signal arrives
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return sched.Run(gctx, shared.NewRealClock(), cfg.Simulation.Resolution)
	})
	organiser.Start(gctx)
	defer organiser.Stop()

	if snapshots != nil && cfg.Simulation.SnapshotInterval > 0 {
		g.Go(func() error {
			persistSnapshots(gctx, med, cfg.Simulation.SnapshotInterval, logger)
			return nil
		})
	}
	g.Go(func() error {
		return gw.ListenAndServe(gctx, cfg.Gateway)
	})
	g.Go(func() error {
		return daemon.Serve(gctx, listener)
	})

	fmt.Printf("Gateway listening on %s\n", cfg.Gateway.Address)
	fmt.Printf("Daemon RPC listening on %s\n", cfg.Daemon.Address)
	logger.Log("INFO", "shard started", map[string]interface{}{
		"gateway": cfg.Gateway.Address,
		"daemon":  cfg.Daemon.Address,
	})

	err = g.Wait()
	fmt.Println("Shutting down...")
	if snapshots != nil && cfg.Daemon.FinalSnapshot {
		finalCtx, cancel := context.WithTimeout(context.Background(), cfg.Daemon.ShutdownTimeout)
		if _, serr := med.Send(finalCtx, &snapshotCmd.PersistSnapshotsCommand{}); serr != nil {
			logger.Log("ERROR", "final snapshot failed", map[string]interface{}{"error": serr.Error()})
		}
		cancel()
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// persistSnapshots writes player snapshots every interval until ctx is done
func persistSnapshots(ctx context.Context, med mediator.Mediator, interval time.Duration, logger *logging.StdLogger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := med.Send(ctx, &snapshotCmd.PersistSnapshotsCommand{}); err != nil {
				logger.Log("ERROR", "snapshot failed", map[string]interface{}{"error": err.Error()})
			}
		}
	}
}

func daemonStatus(cfg *config.Config, sector *galaxy.Sector, sched *scheduler.Scheduler, players *persistence.InMemoryPlayerRepository, client *api.ShardClient) map[string]interface{} {
	wormholes := make(map[string]interface{})
	for _, w := range sector.Wormholes() {
		wormholes[w.Name] = client.BreakerState(w.Name).String()
	}
	return map[string]interface{}{
		"shard":          cfg.Shard.Name,
		"players":        players.Count(),
		"pendingEvents":  sched.Pending(),
		"simulationTime": sched.Now().UTC().Format(time.RFC3339),
		"wormholes":      wormholes,
	}
}
