package main

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"dropos/internal/cache"
	"dropos/internal/config"
	"dropos/internal/events"
	"dropos/internal/service"
	"dropos/internal/store"
	"dropos/internal/store/file"
	"dropos/internal/store/memory"
	pgstore "dropos/internal/store/postgres"
	"dropos/internal/store/sqlite"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "dropos",
	Short:         "Ledger, BI and progression backend for a dropshipping operator",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	log.SetPrefix("[dropos] ")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to dropos.toml")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

// runtime is everything a command needs to talk to the store.
type runtime struct {
	cfg     config.Config
	svc     *service.Service
	bus     *events.Bus
	closers []func() error
}

func (rt *runtime) Close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](); err != nil {
			log.Printf("close error: %v", err)
		}
	}
}

func openRuntime(ctx context.Context) (*runtime, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	rt := &runtime{cfg: cfg, bus: events.NewBus()}

	kv, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	rt.closers = append(rt.closers, kv.Close)
	log.Printf("storage: %s", cfg.Backend)

	metricsCache := cache.MetricsCache(cache.NewMemoryMetricsCache())
	if cfg.RedisAddr != "" {
		redisCache := cache.NewRedisMetricsCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := redisCache.Ping(ctx); err != nil {
			log.Printf("redis unavailable (%v), using in-process cache", err)
			_ = redisCache.Close()
		} else {
			metricsCache = redisCache
			rt.closers = append(rt.closers, redisCache.Close)
			log.Println("cache: redis")
		}
	}

	rt.svc = service.New(kv, rt.bus, metricsCache,
		service.WithMetricsTTL(time.Duration(cfg.MetricsCacheTTLSeconds)*time.Second))
	return rt, nil
}

func openStore(ctx context.Context, cfg config.Config) (store.KV, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return memory.New(), nil
	case config.BackendFile:
		return file.New(filepath.Join(cfg.DataDir, "dropos.json"))
	case config.BackendPostgres:
		pg, err := pgstore.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("postgres unavailable and DATABASE_URL is set; refusing to fall back: %w", err)
		}
		return pg, nil
	default:
		return sqlite.Open(cfg.DataDir)
	}
}
