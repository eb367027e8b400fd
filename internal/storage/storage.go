package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

var (
	ErrPlanNotFound    = errors.New("plan not found")
	ErrWorkoutNotFound = errors.New("workout not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrLogNotFound     = errors.New("exercise log not found")
)

// Storage is the durable home of plan templates and finished sessions.
type Storage struct {
	DB *sql.DB
}

// NewStorage opens the database behind connectionString and makes sure the
// schema exists. "file:" strings open a local sqlite file, anything else is
// handed to the libsql client (libsql://, https://, ws://).
func NewStorage(connectionString string) (*Storage, error) {
	driver, dsn, err := resolve(connectionString)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	if driver == "sqlite" {
		// One writer at a time, and the foreign_keys pragma is per connection.
		db.SetMaxOpenConns(1)
	}

	if err := initializeDB(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	log.Debugf("opened %s database", driver)
	return &Storage{DB: db}, nil
}

func resolve(connectionString string) (driver, dsn string, err error) {
	if connectionString == "" {
		return "", "", fmt.Errorf("empty database connection string")
	}

	path, ok := strings.CutPrefix(connectionString, "file:")
	if !ok {
		return "libsql", connectionString, nil
	}

	path, _, _ = strings.Cut(path, "?")
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", "", fmt.Errorf("creating database dir %s: %w", dir, err)
		}
	}
	return "sqlite", path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

func initializeDB(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS plans (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            duration_weeks INTEGER NOT NULL,
            level TEXT NOT NULL,
            goal TEXT NOT NULL,
            created_at TEXT NOT NULL
        );

        CREATE TABLE IF NOT EXISTS workouts (
            id TEXT PRIMARY KEY,
            plan_id TEXT NOT NULL,
            day_number INTEGER NOT NULL,
            name TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            FOREIGN KEY (plan_id) REFERENCES plans(id) ON DELETE CASCADE
        );

        CREATE TABLE IF NOT EXISTS plan_exercises (
            id TEXT PRIMARY KEY,
            workout_id TEXT NOT NULL,
            name TEXT NOT NULL,
            sets INTEGER NOT NULL,
            reps TEXT NOT NULL,
            rest_seconds INTEGER NOT NULL,
            notes TEXT NOT NULL DEFAULT '',
            order_index INTEGER NOT NULL,
            FOREIGN KEY (workout_id) REFERENCES workouts(id) ON DELETE CASCADE
        );

        CREATE TABLE IF NOT EXISTS workout_sessions (
            id TEXT PRIMARY KEY,
            plan_name TEXT NOT NULL DEFAULT '',
            workout_name TEXT NOT NULL,
            start_time TEXT NOT NULL,
            end_time TEXT NOT NULL,
            completed INTEGER NOT NULL DEFAULT 0,
            notes TEXT NOT NULL DEFAULT ''
        );

        CREATE TABLE IF NOT EXISTS exercise_logs (
            id TEXT PRIMARY KEY,
            session_id TEXT NOT NULL,
            exercise_name TEXT NOT NULL,
            set_number INTEGER NOT NULL,
            reps INTEGER NOT NULL,
            weight REAL NOT NULL,
            created_at TEXT NOT NULL,
            FOREIGN KEY (session_id) REFERENCES workout_sessions(id) ON DELETE CASCADE
        );

        CREATE INDEX IF NOT EXISTS idx_exercise_logs_name ON exercise_logs(exercise_name);
        CREATE INDEX IF NOT EXISTS idx_workout_sessions_start ON workout_sessions(start_time);
    `)
	return err
}
