package gocalc

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// HistoryHeader is the column layout of the history file.
var HistoryHeader = []string{"Operation", "Operand1", "Operand2", "Result"}

// Record is one completed calculation.
type Record struct {
	Operation string
	Operand1  decimal.Decimal
	Operand2  decimal.Decimal
	Result    decimal.Decimal
}

// Fields returns the record in HistoryHeader column order.
func (r Record) Fields() []string {
	return []string{r.Operation, r.Operand1.String(), r.Operand2.String(), r.Result.String()}
}

func (r Record) String() string {
	f := r.Fields()
	parts := make([]string, len(f))
	for i, v := range f {
		parts[i] = HistoryHeader[i] + ": " + v
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// ParseRecord builds a record from HistoryHeader-ordered fields.
func ParseRecord(fields []string) (Record, error) {
	if len(fields) != len(HistoryHeader) {
		return Record{}, fmt.Errorf("expected %d columns, got %d", len(HistoryHeader), len(fields))
	}
	var (
		rec Record
		err error
	)
	rec.Operation = fields[0]
	nums := []*decimal.Decimal{&rec.Operand1, &rec.Operand2, &rec.Result}
	for i, dst := range nums {
		if *dst, err = decimal.NewFromString(fields[i+1]); err != nil {
			return Record{}, fmt.Errorf("%s: %w: %q", HistoryHeader[i+1], ErrInvalidNumber, fields[i+1])
		}
	}
	return rec, nil
}

// HistoryStore keeps the calculation history in memory and mirrors every
// mutation to persistent storage.
type HistoryStore interface {
	// Load replaces the in-memory history with what is in storage.
	Load() error

	// Append adds a calculation and persists it.
	Append(rec Record) error

	// Delete removes and returns the record at the zero-based index.
	Delete(index int) (Record, error)

	// Clear drops the whole history, in memory and in storage.
	Clear() error

	// Records returns a copy of the in-memory history.
	Records() []Record

	// Len returns the number of records in memory.
	Len() int

	// Close releases any resources used by the storage.
	Close() error
}

// NewHistoryStore opens the backend selected by cfg.
func NewHistoryStore(cfg *Config, sessionID string, logger *zap.Logger) (HistoryStore, error) {
	switch strings.ToLower(cfg.HistoryBackend) {
	case "", "csv":
		return NewCSVHistory(cfg.HistoryFile, logger)
	case "sqlite", "sqlite3":
		return NewSQLiteHistory(cfg.HistoryDB, sessionID, logger)
	default:
		return nil, fmt.Errorf("unknown history backend %q", cfg.HistoryBackend)
	}
}

// ShowHistory reloads the store and prints it as a table.
func ShowHistory(w io.Writer, store HistoryStore) error {
	if err := store.Load(); err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	return printHistory(w, store.Records())
}

// SessionHistory is implemented by stores that remember which session
// recorded each calculation.
type SessionHistory interface {
	SessionRecords(sessionID string) ([]Record, error)
}

// ShowSessionHistory prints the calculations recorded by one session.
func ShowSessionHistory(w io.Writer, store HistoryStore, sessionID string) error {
	s, ok := store.(SessionHistory)
	if !ok {
		return errNoSessions
	}
	records, err := s.SessionRecords(sessionID)
	if err != nil {
		return fmt.Errorf("load session %s: %w", sessionID, err)
	}
	return printHistory(w, records)
}

var errNoSessions = errors.New("history backend does not record sessions, use --history-backend sqlite")

func printHistory(w io.Writer, records []Record) error {
	if _, err := fmt.Fprintln(w, "\nCalculation History:"); err != nil {
		return err
	}
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No history available.")
		return err
	}
	_, err := fmt.Fprint(w, RenderHistory(w, records))
	return err
}

func copyRecords(records []Record) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	return out
}
