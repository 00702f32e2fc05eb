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

	"github.com/joho/godotenv"
	"github.com/paulmach/orb"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/geocoin/server/internal/config"
	"github.com/geocoin/server/internal/data"
	"github.com/geocoin/server/internal/game"
	"github.com/geocoin/server/internal/geo"
	"github.com/geocoin/server/internal/luck"
	"github.com/geocoin/server/internal/persist"
	"github.com/geocoin/server/internal/scripting"
	"github.com/geocoin/server/internal/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load .env + config
	_ = godotenv.Load()

	cfgPath := "config/server.toml"
	if p := os.Getenv("GEOCOIN_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg := config.Defaults()
	if _, err := os.Stat(cfgPath); err == nil {
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	// 3. Region table + start position
	regions, err := data.LoadRegions(cfg.Game.RegionsPath)
	if err != nil {
		return fmt.Errorf("load regions: %w", err)
	}
	region, ok := regions.Get(cfg.Game.StartRegion)
	if !ok {
		return fmt.Errorf("unknown start region %q", cfg.Game.StartRegion)
	}
	start := orb.Point{region.Lng, region.Lat}
	log.Info("region table loaded",
		zap.Int("regions", regions.Len()),
		zap.String("start", region.Name))

	// 4. Save store: Postgres when a DSN is configured, memory otherwise
	var store persist.Store
	if cfg.Database.DSN != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		db, err := persist.NewDB(ctx, cfg.Database, log)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer db.Close()
		if err := persist.RunMigrations(ctx, db.Pool); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		store = persist.NewPGStore(db)
		log.Info("save store ready", zap.String("backend", "postgres"))
	} else {
		store = persist.NewMemStore()
		log.Info("save store ready", zap.String("backend", "memory"))
	}

	// 5. Optional Lua event hooks
	var hooks game.Hooks = game.NopHooks{}
	if cfg.Game.ScriptsDir != "" {
		engine, err := scripting.NewEngine(cfg.Game.ScriptsDir, log)
		if err != nil {
			return fmt.Errorf("load scripts: %w", err)
		}
		defer engine.Close()
		hooks = engine
		log.Info("lua hooks loaded", zap.String("dir", cfg.Game.ScriptsDir))
	}

	// 6. Game world + HTTP server
	grid := geo.NewGrid(cfg.Game.TileWidth, cfg.Game.MetersPerDegree)
	oracle := luck.New(cfg.Game.WorldSeed)
	mgr := server.NewManager(grid, oracle, store, hooks, start, cfg.Game, cfg.Tracking, log)
	defer mgr.CloseAll()

	router := server.NewRouter(server.NewSessionHandler(mgr, log))
	srv := &http.Server{
		Addr:    cfg.Server.BindAddress,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", cfg.Server.BindAddress))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 7. Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
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
