package repos

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/wheelibin/shutters/internal/models"
)

// PositionUnknown is stored until a full move tells us where the shutter is.
const PositionUnknown = -1

const initShutterSchema = `
  CREATE TABLE IF NOT EXISTS shutter (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    duration INTEGER,
    position INTEGER DEFAULT -1, -- 0 closed, 100 open
    last_command_time TIMESTAMP
  );
`

type ShutterRepo struct {
	logger *log.Logger
	db     *sql.DB
}

func NewShutterRepo(logger *log.Logger, db *sql.DB) (*ShutterRepo, error) {

	_, err := db.Exec(initShutterSchema)
	if err != nil {
		return nil, fmt.Errorf("Error initialising shutter schema: %w", err)
	}

	return &ShutterRepo{logger: logger, db: db}, nil
}

// Upsert adds or renames shutters, known positions are kept.
func (r *ShutterRepo) Upsert(shutters []models.Shutter) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("Error adding shutters: %w", err)
	}
	defer tx.Rollback()

	for _, shutter := range shutters {
		_, err := tx.Exec(
			`INSERT INTO shutter (id, name, duration) VALUES ($1, $2, $3)
       ON CONFLICT(id) DO UPDATE SET name = excluded.name, duration = excluded.duration;`,
			shutter.ID,
			shutter.Name,
			shutter.Duration,
		)
		if err != nil {
			return fmt.Errorf("Error adding shutter (%s): %w", shutter.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("Error adding shutters: %w", err)
	}
	return nil
}

func (r *ShutterRepo) All() ([]models.Shutter, error) {
	rows, err := r.db.Query("SELECT id, name, duration FROM shutter ORDER BY name, id")
	if err != nil {
		return nil, fmt.Errorf("Error reading shutters: %w", err)
	}
	defer rows.Close()

	shutters := []models.Shutter{}
	for rows.Next() {
		var s models.Shutter
		var duration sql.NullInt64
		if err := rows.Scan(&s.ID, &s.Name, &duration); err != nil {
			return nil, fmt.Errorf("Error reading shutter row: %w", err)
		}
		s.Duration = int(duration.Int64)
		shutters = append(shutters, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Error reading shutters: %w", err)
	}
	return shutters, nil
}

func (r *ShutterRepo) Position(id string) (int, error) {
	var position int
	err := r.db.QueryRow("SELECT position FROM shutter WHERE id = $1", id).Scan(&position)
	if err != nil {
		if err == sql.ErrNoRows {
			return PositionUnknown, fmt.Errorf("shutter %s: %w", id, ErrNotFound)
		}
		return PositionUnknown, fmt.Errorf("Error reading shutter (%s) position: %w", id, err)
	}
	return position, nil
}

func (r *ShutterRepo) SetPosition(id string, position int) error {
	result, err := r.db.Exec("UPDATE shutter SET position = $1, last_command_time = CURRENT_TIMESTAMP WHERE id = $2", position, id)
	if err != nil {
		return fmt.Errorf("Error setting shutter (%s) position to %d: %w", id, position, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("Error reading affected rows (%s): %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("shutter %s: %w", id, ErrNotFound)
	}
	return nil
}
