package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	httpadapter "idlarz/internal/adapter/http"
	metricsinmem "idlarz/internal/adapter/metrics/inmemory"
	gormrepo "idlarz/internal/adapter/repo/gorm"
	"idlarz/internal/adapter/repo/memory"
	sqliterepo "idlarz/internal/adapter/repo/sqlite"
	"idlarz/internal/app/action"
	"idlarz/internal/app/catalog"
	"idlarz/internal/app/ports"
	"idlarz/internal/app/replay"
	"idlarz/internal/app/session"
	"idlarz/internal/app/status"
	"idlarz/internal/config"

	"github.com/cloudwego/hertz/pkg/app/server"
)

type serverConfig struct {
	Addr          string
	DSN           string
	SQLitePath    string
	MigrationsDir string
	BalanceFile   string
	LogLevel      string
	IdleTimeout   time.Duration
}

func loadServerConfig() serverConfig {
	return serverConfig{
		Addr:          stringEnv("IDLARZ_HTTP_ADDR", ":8080"),
		DSN:           stringEnv("IDLARZ_DB_DSN", ""),
		SQLitePath:    stringEnv("IDLARZ_SQLITE_PATH", ""),
		MigrationsDir: stringEnv("IDLARZ_MIGRATIONS_DIR", "db/migrations"),
		BalanceFile:   stringEnv("IDLARZ_BALANCE_FILE", ""),
		LogLevel:      stringEnv("IDLARZ_LOG_LEVEL", "info"),
		IdleTimeout:   time.Duration(intEnv("IDLARZ_IDLE_TIMEOUT_SECONDS", 60)) * time.Second,
	}
}

func main() {
	cfg := loadServerConfig()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	})))

	balance, err := config.Load(cfg.BalanceFile)
	if err != nil {
		slog.Error("load balance", "error", err)
		os.Exit(1)
	}
	engine := balance.Engine()

	store, err := buildStorage(context.Background(), cfg)
	if err != nil {
		slog.Error("open storage", "error", err)
		os.Exit(1)
	}
	slog.Info("storage ready", "backend", store.backend)

	kpiRecorder := metricsinmem.NewRecorder()
	h := httpadapter.Handler{
		RegisterUC: session.RegisterUseCase{
			Credentials: store.credentials,
			Games:       store.games,
			Events:      store.events,
			TxManager:   store.tx,
			Engine:      engine,
			Now:         time.Now,
		},
		AuthUC: session.VerifyUseCase{Credentials: store.credentials},
		ActionUC: action.UseCase{
			TxManager:  store.tx,
			Games:      store.games,
			ActionRepo: store.actions,
			EventRepo:  store.events,
			Metrics:    kpiRecorder,
			Engine:     engine,
			Now:        time.Now,
		},
		StatusUC:  status.UseCase{Games: store.games, Engine: engine, Now: time.Now},
		ReplayUC:  replay.UseCase{Events: store.events},
		CatalogUC: catalog.UseCase{Tuning: engine.Tuning},
		KPI:       kpiRecorder,
	}

	s := server.Default(server.WithHostPorts(cfg.Addr), server.WithIdleTimeout(cfg.IdleTimeout))
	h.RegisterRoutes(s)
	s.OnShutdown = append(s.OnShutdown, func(context.Context) {
		if err := store.close(); err != nil {
			slog.Warn("close storage", "error", err)
		}
	})

	slog.Info("idlarz server listening", "addr", cfg.Addr, "biome_assignment", balance.BiomeAssignment)
	s.Spin()
}

type storage struct {
	backend     string
	games       ports.GameRepository
	actions     ports.ActionExecutionRepository
	events      ports.EventRepository
	credentials ports.SessionCredentialRepository
	tx          ports.TxManager
	close       func() error
}

// buildStorage prefers Postgres, then a SQLite file, then process memory.
func buildStorage(ctx context.Context, cfg serverConfig) (storage, error) {
	switch {
	case cfg.DSN != "":
		db, err := gormrepo.OpenPostgres(cfg.DSN)
		if err != nil {
			return storage{}, err
		}
		if err := gormrepo.ApplyMigrations(ctx, db, cfg.MigrationsDir); err != nil {
			return storage{}, fmt.Errorf("migrate postgres: %w", err)
		}
		return storage{
			backend:     "postgres",
			games:       gormrepo.NewGameRepo(db),
			actions:     gormrepo.NewActionExecutionRepo(db),
			events:      gormrepo.NewEventRepo(db),
			credentials: gormrepo.NewCredentialRepo(db),
			tx:          gormrepo.NewTxManager(db),
			close: func() error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return sqlDB.Close()
			},
		}, nil
	case cfg.SQLitePath != "":
		db, err := sqliterepo.Open(cfg.SQLitePath)
		if err != nil {
			return storage{}, err
		}
		return storage{
			backend:     "sqlite",
			games:       sqliterepo.NewGameRepo(db),
			actions:     sqliterepo.NewActionExecutionRepo(db),
			events:      sqliterepo.NewEventRepo(db),
			credentials: sqliterepo.NewCredentialRepo(db),
			tx:          sqliterepo.NewTxManager(db),
			close:       db.Close,
		}, nil
	default:
		slog.Warn("no IDLARZ_DB_DSN or IDLARZ_SQLITE_PATH set, sessions live in memory only")
		store := memory.NewStore()
		return storage{
			backend:     "memory",
			games:       memory.NewGameRepo(store),
			actions:     memory.NewActionExecutionRepo(store),
			events:      memory.NewEventRepo(store),
			credentials: memory.NewCredentialRepo(store),
			tx:          memory.NewTxManager(store),
			close:       func() error { return nil },
		}, nil
	}
}

func parseLevel(raw string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return slog.LevelInfo
	}
	return level
}

func stringEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
