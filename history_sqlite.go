package gocalc

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// SQLiteHistory stores the calculation history in a SQLite database.
// Indexes are positional over rows ordered by id.
type SQLiteHistory struct {
	db        *sql.DB
	dbLock    sync.RWMutex
	filePath  string
	sessionID string
	records   []Record
	ids       []int64
	logger    *zap.Logger
}

// NewSQLiteHistory opens or creates the database at path and loads it.
func NewSQLiteHistory(path string, sessionID string, logger *zap.Logger) (*SQLiteHistory, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, ".gocalc_history.db")
	}

	// Ensure the directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory for database: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	h := &SQLiteHistory{
		db:        db,
		filePath:  path,
		sessionID: sessionID,
		logger:    logger,
	}

	if err := h.initDB(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := h.Load(); err != nil {
		db.Close()
		return nil, err
	}
	return h, nil
}

func (h *SQLiteHistory) initDB() error {
	schema := `
	CREATE TABLE IF NOT EXISTS history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		operation TEXT NOT NULL,
		operand1 TEXT NOT NULL,
		operand2 TEXT NOT NULL,
		result TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_history_session_id ON history(session_id);
	`
	_, err := h.db.Exec(schema)
	return err
}

func (h *SQLiteHistory) Load() error {
	h.dbLock.Lock()
	defer h.dbLock.Unlock()

	rows, err := h.db.Query("SELECT id, operation, operand1, operand2, result FROM history ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	var (
		records []Record
		ids     []int64
	)
	for rows.Next() {
		var id int64
		fields := make([]string, len(HistoryHeader))
		if err := rows.Scan(&id, &fields[0], &fields[1], &fields[2], &fields[3]); err != nil {
			return err
		}
		rec, err := ParseRecord(fields)
		if err != nil {
			return fmt.Errorf("history row %d: %w", id, err)
		}
		records = append(records, rec)
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	h.records, h.ids = records, ids
	return nil
}

func (h *SQLiteHistory) Append(rec Record) error {
	h.dbLock.Lock()
	defer h.dbLock.Unlock()

	f := rec.Fields()
	result, err := h.db.Exec(
		`INSERT INTO history (session_id, operation, operand1, operand2, result, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		h.sessionID, f[0], f[1], f[2], f[3], time.Now().Unix(),
	)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	h.records = append(h.records, rec)
	h.ids = append(h.ids, id)
	h.logger.Debug("history appended", zap.String("operation", rec.Operation), zap.Int64("id", id))
	return nil
}

func (h *SQLiteHistory) Delete(index int) (Record, error) {
	h.dbLock.Lock()
	defer h.dbLock.Unlock()

	if index < 0 || index >= len(h.records) {
		h.logger.Error("invalid index for deletion", zap.Int("index", index), zap.Int("size", len(h.records)))
		return Record{}, &IndexError{Index: index, Len: len(h.records)}
	}

	if _, err := h.db.Exec("DELETE FROM history WHERE id = ?", h.ids[index]); err != nil {
		return Record{}, err
	}

	removed := h.records[index]
	h.records = append(copyRecords(h.records[:index]), h.records[index+1:]...)
	h.ids = append(append([]int64(nil), h.ids[:index]...), h.ids[index+1:]...)
	h.logger.Info("deleted calculation", zap.Int("index", index), zap.Stringer("record", removed))
	return removed, nil
}

func (h *SQLiteHistory) Clear() error {
	h.dbLock.Lock()
	defer h.dbLock.Unlock()

	result, err := h.db.Exec("DELETE FROM history")
	if err != nil {
		return err
	}
	h.records, h.ids = nil, nil
	if n, _ := result.RowsAffected(); n == 0 {
		h.logger.Warn("attempted to clear history, but it was already empty", zap.String("path", h.filePath))
		return nil
	}
	h.logger.Info("calculation history cleared", zap.String("path", h.filePath))
	return nil
}

func (h *SQLiteHistory) Records() []Record {
	h.dbLock.RLock()
	defer h.dbLock.RUnlock()
	return copyRecords(h.records)
}

func (h *SQLiteHistory) Len() int {
	h.dbLock.RLock()
	defer h.dbLock.RUnlock()
	return len(h.records)
}

// SessionRecords returns the calculations recorded by one session.
func (h *SQLiteHistory) SessionRecords(sessionID string) ([]Record, error) {
	h.dbLock.RLock()
	defer h.dbLock.RUnlock()

	rows, err := h.db.Query(
		"SELECT operation, operand1, operand2, result FROM history WHERE session_id = ? ORDER BY id",
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		fields := make([]string, len(HistoryHeader))
		if err := rows.Scan(&fields[0], &fields[1], &fields[2], &fields[3]); err != nil {
			return nil, err
		}
		rec, err := ParseRecord(fields)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Close closes the database connection
func (h *SQLiteHistory) Close() error {
	return h.db.Close()
}
