package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

type dialectSchema struct {
	sentinel string
	steps    []migrationStep
}

var schemas = map[string]dialectSchema{
	"postgres": {
		sentinel: "SELECT to_regclass('public.films') IS NOT NULL",
		steps: []migrationStep{
			{
				Name: "create_table_films",
				SQL: `CREATE TABLE IF NOT EXISTS films (
  id         BIGSERIAL    PRIMARY KEY,
  title      VARCHAR(200) NOT NULL CHECK (title <> ''),
  year       INTEGER      CHECK (year BETWEEN 1888 AND 2100),
  genre      VARCHAR(100) NOT NULL DEFAULT '',
  created_at TIMESTAMPTZ  NOT NULL DEFAULT now()
);`,
			},
		},
	},
	"sqlite": {
		sentinel: "SELECT COUNT(*) > 0 FROM sqlite_master WHERE type = 'table' AND name = 'films'",
		steps: []migrationStep{
			{
				Name: "create_table_films",
				SQL: `CREATE TABLE IF NOT EXISTS films (
  id         INTEGER  PRIMARY KEY AUTOINCREMENT,
  title      TEXT     NOT NULL CHECK (title <> ''),
  year       INTEGER  CHECK (year BETWEEN 1888 AND 2100),
  genre      TEXT     NOT NULL DEFAULT '',
  created_at DATETIME NOT NULL
);`,
			},
		},
	},
}

// EnsureMigrated creates the films table for dialect unless the sentinel query reports it exists.
// Every step is logged as a JSON line; the first failing step aborts the run.
func EnsureMigrated(ctx context.Context, db *sql.DB, dialect string, loc *time.Location, dbHost string) error {
	schema, ok := schemas[dialect]
	if !ok {
		return fmt.Errorf("no migrations for dialect %q", dialect)
	}

	ev := events{loc: loc, dialect: dialect, host: dbHost, start: time.Now()}
	ev.log("db_migration_check", "starting", nil)

	var exists bool
	if err := db.QueryRowContext(ctx, schema.sentinel).Scan(&exists); err != nil {
		err = fmt.Errorf("failed to check sentinel table: %w", err)
		ev.log("db_migration_failed", "error", map[string]any{"error_message": err.Error()})
		return err
	}

	if exists {
		ev.log("db_migration_skip", "success", map[string]any{"msg": "schema already exists, skipping migration"})
		return nil
	}

	ev.log("db_migration_start", "in_progress", nil)

	for _, step := range schema.steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			ev.log("db_migration_failed", "error", map[string]any{
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		ev.log("db_migration_step", "success", map[string]any{
			"migration_step":   step.Name,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	ev.log("db_migration_success", "success", nil)
	return nil
}

// events carries the fields shared by every log line of one migration run.
type events struct {
	loc     *time.Location
	dialect string
	host    string
	start   time.Time
}

func (e events) log(event, status string, extra map[string]any) {
	data := map[string]any{
		"component":   "database",
		"event":       event,
		"status":      status,
		"dialect":     e.dialect,
		"db_host":     e.host,
		"duration_ms": time.Since(e.start).Milliseconds(),
	}
	for k, v := range extra {
		data[k] = v
	}
	logJSON(e.loc, data)
}

func logJSON(loc *time.Location, data map[string]any) {
	if loc == nil {
		loc = time.UTC
	}
	data["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal migration log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
