// Command modelgen regenerates the gorm models for the game tables from a
// migrated Postgres database.
package main

import (
	"flag"
	"log/slog"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gen"
	"gorm.io/gorm"
)

var tables = []string{"games", "session_credentials", "action_executions", "domain_events"}

func main() {
	var dsn, out string
	flag.StringVar(&dsn, "dsn", os.Getenv("IDLARZ_DB_DSN"), "postgres dsn")
	flag.StringVar(&out, "out", "internal/adapter/repo/gorm/query", "query output dir; models go to its sibling model dir")
	flag.Parse()

	if dsn == "" {
		slog.Error("missing --dsn or IDLARZ_DB_DSN")
		os.Exit(1)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		slog.Error("open postgres", "err", err)
		os.Exit(1)
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:      out,
		ModelPkgPath: "model",
		Mode:         gen.WithoutContext,
	})
	g.UseDB(db)
	// Snapshots and action payloads are raw JSON handed to the codec.
	raw := func(gorm.ColumnType) string { return "[]byte" }
	g.WithDataTypeMap(map[string]func(gorm.ColumnType) string{
		"jsonb": raw,
		"json":  raw,
	})
	for _, table := range tables {
		g.GenerateModel(table)
	}
	g.Execute()

	slog.Info("generated gorm models", "tables", len(tables), "out", out)
}
