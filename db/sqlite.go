package db

import (
	"database/sql"
	"errors"
	"time"

	"churnlab/eval"
	_ "github.com/mattn/go-sqlite3"
)

var database *sql.DB

// InitDB initializes the SQLite results store
func InitDB(path string) error {
	var err error
	database, err = sql.Open("sqlite3", path)
	if err != nil {
		return err
	}

	query := `
    CREATE TABLE IF NOT EXISTS evaluations (
        id INTEGER PRIMARY KEY,
        run_id VARCHAR(64),
        position INTEGER,
        tag VARCHAR(128),
        elapsed_seconds REAL,
        threshold REAL,
        accuracy REAL,
        precision0 REAL,
        recall0 REAL,
        f1_0 REAL,
        precision1 REAL,
        recall1 REAL,
        f1_1 REAL,
        tp INTEGER,
        fp INTEGER,
        params TEXT,
        created_at DATETIME,
        UNIQUE(run_id, position)
    );`
	_, err = database.Exec(query)
	return err
}

func CloseDB() error {
	if database == nil {
		return nil
	}
	err := database.Close()
	database = nil
	return err
}

// SaveRows stores a finished comparison under runID, preserving row order.
func SaveRows(runID string, rows []eval.Row) error {
	if database == nil {
		return errors.New("database not initialized")
	}
	if runID == "" {
		return errors.New("run id is required")
	}

	tx, err := database.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO evaluations
        (run_id, position, tag, elapsed_seconds, threshold, accuracy,
         precision0, recall0, f1_0, precision1, recall1, f1_1, tp, fp, params, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	now := time.Now()
	for i, row := range rows {
		if _, err := stmt.Exec(runID, i, row.Tag, row.ElapsedSeconds, row.Threshold, row.Accuracy,
			row.Precision0, row.Recall0, row.F10, row.Precision1, row.Recall1, row.F11,
			row.TP, row.FP, row.Params, now); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// LoadRows returns the rows stored under runID in their original order.
func LoadRows(runID string) ([]eval.Row, error) {
	if database == nil {
		return nil, errors.New("database not initialized")
	}

	rows, err := database.Query(`SELECT tag, elapsed_seconds, threshold, accuracy,
        precision0, recall0, f1_0, precision1, recall1, f1_1, tp, fp, params
        FROM evaluations WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []eval.Row
	for rows.Next() {
		var row eval.Row
		if err := rows.Scan(&row.Tag, &row.ElapsedSeconds, &row.Threshold, &row.Accuracy,
			&row.Precision0, &row.Recall0, &row.F10, &row.Precision1, &row.Recall1, &row.F11,
			&row.TP, &row.FP, &row.Params); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// ListRuns returns the stored run IDs, most recent first.
func ListRuns() ([]string, error) {
	if database == nil {
		return nil, errors.New("database not initialized")
	}

	rows, err := database.Query(`SELECT run_id FROM evaluations
        GROUP BY run_id ORDER BY MAX(created_at) DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var runID string
		if err := rows.Scan(&runID); err != nil {
			return nil, err
		}
		out = append(out, runID)
	}
	return out, rows.Err()
}
