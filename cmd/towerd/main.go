package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/towerclimb/server/internal/config"
	"github.com/towerclimb/server/internal/core/event"
	coresys "github.com/towerclimb/server/internal/core/system"
	"github.com/towerclimb/server/internal/data"
	"github.com/towerclimb/server/internal/gen"
	"github.com/towerclimb/server/internal/persist"
	"github.com/towerclimb/server/internal/scripting"
	"github.com/towerclimb/server/internal/system"
	"github.com/towerclimb/server/internal/world"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(serverName string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m            towerd  v0.1.0                 \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m     infinite climb level generator        \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mserver:\033[0m %s\n\n", serverName)
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main daemon logic ─────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/server.toml"
	if p := os.Getenv("TOWERD_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Server.Name)

	// 3. Load theme catalog
	printSection("data")
	themes := data.DefaultThemeTable()
	if cfg.Data.ThemeFile != "" {
		themes, err = data.LoadThemeTable(cfg.Data.ThemeFile)
		if err != nil {
			return fmt.Errorf("load themes: %w", err)
		}
	}
	printStat("chunk themes", themes.Len())

	// 4. Load decoration scripts
	var hook world.DecorationHook
	if cfg.Scripts.Dir != "" {
		scripts, err := scripting.NewEngine(cfg.Scripts.Dir, log)
		if err != nil {
			return fmt.Errorf("scripting: %w", err)
		}
		defer scripts.Close()
		hook = scripts.Hook()
		printOK("decoration scripts loaded")
	}

	// 5. Optional telemetry database
	var runRepo *persist.RunRepo
	if cfg.Database.Enabled {
		printSection("database")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		db, err := persist.NewDB(ctx, cfg.Database, log)
		cancel()
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		printOK("postgres connected")

		mCtx, mCancel := context.WithTimeout(context.Background(), 30*time.Second)
		err = persist.RunMigrations(mCtx, db.Pool)
		mCancel()
		if err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		printOK("migrations applied")
		runRepo = persist.NewRunRepo(db)
	}
	fmt.Println()

	// 6. Build the world and the generation pipeline
	store := world.NewStore(cfg.Platform.MinVisibleWidth, cfg.Chunking.MaxLivePlatforms, hook, log)
	policy := gen.NewPolicy(cfg.Reachability, cfg.World.Width)
	bus := event.NewBus()
	generator := gen.NewGenerator(store, policy, themes, bus,
		cfg.World, cfg.Platform, cfg.Chunking.ChunkHeight, log)
	generator.GenerateStartingPlatform()

	// 7. Register tick systems
	signals := system.NewSignals()
	runner := coresys.NewRunner()
	runner.Register(system.NewEventDispatchSystem(bus))
	runner.Register(system.NewAutopilotSystem(signals, cfg.Autopilot, cfg.World.Height-200))
	runner.Register(system.NewGenerationSystem(signals,
		gen.NewScheduler(generator, cfg.Chunking.SafeSpawnDistance, log)))
	runner.Register(system.NewDestructionSystem(signals,
		gen.NewReaper(store, cfg.Chunking.DestructionOffset, bus, log)))
	runner.Register(system.NewDiagnosticsSystem(store, bus, 300, log))

	// 8. Run the game loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.World.TickRate)
	defer ticker.Stop()

	printSection("ready")
	printReady(fmt.Sprintf("world %dx%d, chunk height %d",
		int(cfg.World.Width), int(cfg.World.Height), int(cfg.Chunking.ChunkHeight)))
	printReady(fmt.Sprintf("game loop started (tick: %s)", cfg.World.TickRate))
	fmt.Println()

	startedAt := time.Now()
	var ticks int64
	peakLive := 0

	for {
		select {
		case <-ticker.C:
			runner.Tick(cfg.World.TickRate)
			ticks++
			if live := store.Stats().LivePlatforms; live > peakLive {
				peakLive = live
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))

			st := store.Stats()
			store.Teardown()
			if runRepo != nil {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				_, err := runRepo.Insert(ctx, persist.RunRecord{
					ServerName:         cfg.Server.Name,
					StartedAt:          startedAt,
					Ticks:              ticks,
					ChunksCreated:      st.ChunksCreated,
					PlatformsCommitted: st.TotalCommitted,
					PlatformsRejected:  st.TotalRejected,
					PlatformsRemoved:   st.TotalRemoved,
					PeakLive:           peakLive,
					FrontierY:          st.FrontierY,
				})
				cancel()
				if err != nil {
					log.Error("run telemetry not recorded", zap.Error(err))
				}
			}
			log.Info("engine stopped",
				zap.Int64("ticks", ticks),
				zap.Int64("chunks", st.ChunksCreated),
				zap.Uint64("platforms", st.TotalCommitted),
			)
			return nil
		}
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
