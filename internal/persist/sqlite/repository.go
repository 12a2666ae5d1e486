package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"mealtrack/internal/core"
	"mealtrack/internal/persist"

	_ "modernc.org/sqlite"
)

// Repository persists the ledger and goal in a local SQLite database.
//
// The schema keeps the two values of the durable storage record apart:
// meals/days rows hold the ledger (days also records explicitly-cleared
// empty days), settings holds the goal as text under a stable key.
type Repository struct {
	db *sql.DB
}

const goalKey = "goal"

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Load implements persist.Loader. Any failure falls back to the default
// empty ledger and default goal; corruption is logged, never surfaced.
func (r *Repository) Load(ctx context.Context) persist.State {
	st, err := r.load(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Failed to load persisted ledger, starting from defaults", "error", err)
		return persist.DefaultState()
	}
	return st
}

func (r *Repository) load(ctx context.Context) (persist.State, error) {
	st := persist.DefaultState()

	dayRows, err := r.db.QueryContext(ctx, `SELECT day FROM days`)
	if err != nil {
		return st, fmt.Errorf("query days: %w", err)
	}
	defer dayRows.Close()
	for dayRows.Next() {
		var raw string
		if err := dayRows.Scan(&raw); err != nil {
			return st, fmt.Errorf("scan day: %w", err)
		}
		day, err := core.ParseDay(raw)
		if err != nil {
			return st, fmt.Errorf("persisted day key: %w", err)
		}
		st.MealsByDate[day] = []core.MealRecord{}
	}
	if err := dayRows.Err(); err != nil {
		return st, fmt.Errorf("iterate days: %w", err)
	}

	mealRows, err := r.db.QueryContext(ctx, `
		SELECT id, day, name, calories, protein, carbs, fat, slot, created_at
		FROM meals
		ORDER BY day, position`)
	if err != nil {
		return st, fmt.Errorf("query meals: %w", err)
	}
	defer mealRows.Close()
	for mealRows.Next() {
		var (
			m         core.MealRecord
			rawDay    string
			rawSlot   string
			createdAt string
		)
		if err := mealRows.Scan(&m.ID, &rawDay, &m.Name, &m.Calories, &m.Protein, &m.Carbs, &m.Fat, &rawSlot, &createdAt); err != nil {
			return st, fmt.Errorf("scan meal: %w", err)
		}
		day, err := core.ParseDay(rawDay)
		if err != nil {
			return st, fmt.Errorf("persisted meal day: %w", err)
		}
		slot, err := core.ParseSlot(rawSlot)
		if err != nil {
			return st, fmt.Errorf("persisted meal slot %q: %w", rawSlot, err)
		}
		m.Slot = slot
		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			m.CreatedAt = t
		}
		if err := m.Validate(); err != nil {
			return st, fmt.Errorf("persisted meal %q: %w", m.ID, err)
		}
		st.MealsByDate[day] = append(st.MealsByDate[day], m)
	}
	if err := mealRows.Err(); err != nil {
		return st, fmt.Errorf("iterate meals: %w", err)
	}

	var rawGoal string
	err = r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, goalKey).Scan(&rawGoal)
	switch {
	case err == sql.ErrNoRows:
		// Cold start: absence of the goal key is valid.
	case err != nil:
		return st, fmt.Errorf("query goal: %w", err)
	default:
		goal, err := strconv.Atoi(rawGoal)
		if err != nil || goal < 0 {
			return st, fmt.Errorf("persisted goal %q is not a non-negative integer", rawGoal)
		}
		st.Goal = goal
	}

	return st, nil
}

// Save implements persist.Saver. The whole state is rewritten in one
// transaction; day sizes are small enough that a full rewrite beats
// incremental bookkeeping.
func (r *Repository) Save(ctx context.Context, st persist.State) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM meals`); err != nil {
		return fmt.Errorf("clear meals: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM days`); err != nil {
		return fmt.Errorf("clear days: %w", err)
	}

	for day, meals := range st.MealsByDate {
		if _, err := tx.ExecContext(ctx, `INSERT INTO days (day) VALUES (?)`, string(day)); err != nil {
			return fmt.Errorf("insert day %s: %w", day, err)
		}
		for pos, m := range meals {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO meals (id, day, position, name, calories, protein, carbs, fat, slot, created_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				m.ID, string(day), pos, m.Name, m.Calories, m.Protein, m.Carbs, m.Fat, string(m.Slot),
				m.CreatedAt.UTC().Format(time.RFC3339Nano))
			if err != nil {
				return fmt.Errorf("insert meal %q: %w", m.ID, err)
			}
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		goalKey, strconv.Itoa(st.Goal)); err != nil {
		return fmt.Errorf("save goal: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}
