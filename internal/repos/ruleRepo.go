package repos

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/wheelibin/shutters/internal/constants"
	"github.com/wheelibin/shutters/internal/models"
	"github.com/wheelibin/shutters/internal/rule"
)

var ErrNotFound = errors.New("not found")

// rules are kept as config lines, the state column mirrors the line's first
// field so deleted rows can be filtered without parsing
const initRuleSchema = `
  CREATE TABLE IF NOT EXISTS schedule (
    id INTEGER PRIMARY KEY,
    state TEXT NOT NULL,
    config_line TEXT NOT NULL,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
  );
`

type RuleRepo struct {
	logger *log.Logger
	db     *sql.DB
}

func NewRuleRepo(logger *log.Logger, db *sql.DB) (*RuleRepo, error) {

	_, err := db.Exec(initRuleSchema)
	if err != nil {
		return nil, fmt.Errorf("Error initialising schedule schema: %w", err)
	}

	return &RuleRepo{logger: logger, db: db}, nil
}

// Add stores a new rule under the next id. Ids of deleted rules are never
// handed out again.
func (r *RuleRepo) Add(encoded models.EncodedRule) (string, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return "", fmt.Errorf("Error adding schedule: %w", err)
	}
	defer tx.Rollback()

	var id int
	if err := tx.QueryRow("SELECT COALESCE(MAX(id), 0) + 1 FROM schedule").Scan(&id); err != nil {
		return "", fmt.Errorf("Error reading next schedule id: %w", err)
	}

	_, err = tx.Exec(
		"INSERT INTO schedule (id, state, config_line) VALUES ($1, $2, $3);",
		id,
		encoded.Active,
		rule.FormatConfigLine(encoded),
	)
	if err != nil {
		return "", fmt.Errorf("Error adding schedule (%d): %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("Error adding schedule: %w", err)
	}

	r.logger.Debug("schedule added", "id", id)
	return strconv.Itoa(id), nil
}

func (r *RuleRepo) Update(id string, encoded models.EncodedRule) error {
	key, err := strconv.Atoi(id)
	if err != nil {
		return fmt.Errorf("schedule %s: %w", id, ErrNotFound)
	}

	result, err := r.db.Exec(
		"UPDATE schedule SET state = $1, config_line = $2, updated_at = CURRENT_TIMESTAMP WHERE id = $3 AND state != $4",
		encoded.Active,
		rule.FormatConfigLine(encoded),
		key,
		constants.RuleDeleted,
	)
	if err != nil {
		return fmt.Errorf("Error updating schedule (%s): %w", id, err)
	}
	return expectOneRow(result, id)
}

// Delete marks the rule as deleted, the row stays behind.
func (r *RuleRepo) Delete(id string) error {
	key, err := strconv.Atoi(id)
	if err != nil {
		return fmt.Errorf("schedule %s: %w", id, ErrNotFound)
	}

	result, err := r.db.Exec(
		"UPDATE schedule SET state = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2 AND state != $1",
		constants.RuleDeleted,
		key,
	)
	if err != nil {
		return fmt.Errorf("Error deleting schedule (%s): %w", id, err)
	}
	return expectOneRow(result, id)
}

func (r *RuleRepo) Get(id string) (models.EncodedRule, error) {
	key, err := strconv.Atoi(id)
	if err != nil {
		return models.EncodedRule{}, fmt.Errorf("schedule %s: %w", id, ErrNotFound)
	}

	var line string
	err = r.db.QueryRow("SELECT config_line FROM schedule WHERE id = $1 AND state != $2", key, constants.RuleDeleted).Scan(&line)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.EncodedRule{}, fmt.Errorf("schedule %s: %w", id, ErrNotFound)
		}
		return models.EncodedRule{}, fmt.Errorf("Error reading schedule (%s): %w", id, err)
	}

	return rule.ParseConfigLine(line)
}

// All returns every rule that hasn't been deleted. Lines that no longer parse
// are logged and skipped.
func (r *RuleRepo) All() (map[string]models.EncodedRule, error) {
	rows, err := r.db.Query("SELECT id, config_line FROM schedule WHERE state != $1 ORDER BY id", constants.RuleDeleted)
	if err != nil {
		return nil, fmt.Errorf("Error reading schedules: %w", err)
	}
	defer rows.Close()

	schedule := map[string]models.EncodedRule{}
	for rows.Next() {
		var id int
		var line string
		if err := rows.Scan(&id, &line); err != nil {
			return nil, fmt.Errorf("Error reading schedule row: %w", err)
		}
		encoded, err := rule.ParseConfigLine(line)
		if err != nil {
			r.logger.Warn("skipping unreadable schedule", "id", id, "err", err)
			continue
		}
		schedule[strconv.Itoa(id)] = encoded
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Error reading schedules: %w", err)
	}

	return schedule, nil
}

func expectOneRow(result sql.Result, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("Error reading affected rows (%s): %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("schedule %s: %w", id, ErrNotFound)
	}
	return nil
}
