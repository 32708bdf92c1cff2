package gocalc

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// CSVHistory stores the history as a header-having CSV file. Every mutation
// rewrites the whole file.
type CSVHistory struct {
	path    string
	records []Record
	logger  *zap.Logger
}

// NewCSVHistory opens the history at path and loads it. A missing file is
// an empty history.
func NewCSVHistory(path string, logger *zap.Logger) (*CSVHistory, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &CSVHistory{path: path, logger: logger}
	if err := h.Load(); err != nil {
		return nil, err
	}
	return h, nil
}

// Path returns the backing file path.
func (h *CSVHistory) Path() string { return h.path }

func (h *CSVHistory) Load() error {
	f, err := os.Open(h.path)
	if errors.Is(err, fs.ErrNotExist) {
		h.records = nil
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		h.records = nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: read header: %w", h.path, err)
	}
	if !equalHeader(header) {
		return fmt.Errorf("%s: unexpected header %v", h.path, header)
	}

	var records []Record
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("%s: %w", h.path, err)
		}
		rec, err := ParseRecord(row)
		if err != nil {
			line, _ := r.FieldPos(0)
			return fmt.Errorf("%s: line %d: %w", h.path, line, err)
		}
		records = append(records, rec)
	}
	h.records = records
	return nil
}

func (h *CSVHistory) Append(rec Record) error {
	h.records = append(h.records, rec)
	if err := h.save(); err != nil {
		h.records = h.records[:len(h.records)-1]
		return err
	}
	h.logger.Debug("history appended", zap.String("operation", rec.Operation), zap.Int("size", len(h.records)))
	return nil
}

func (h *CSVHistory) Delete(index int) (Record, error) {
	if index < 0 || index >= len(h.records) {
		h.logger.Error("invalid index for deletion", zap.Int("index", index), zap.Int("size", len(h.records)))
		return Record{}, &IndexError{Index: index, Len: len(h.records)}
	}
	removed := h.records[index]
	prev := h.records
	h.records = append(copyRecords(h.records[:index]), h.records[index+1:]...)
	if err := h.save(); err != nil {
		h.records = prev
		return Record{}, err
	}
	h.logger.Info("deleted calculation", zap.Int("index", index), zap.Stringer("record", removed))
	return removed, nil
}

func (h *CSVHistory) Clear() error {
	err := os.Remove(h.path)
	if errors.Is(err, fs.ErrNotExist) {
		h.records = nil
		h.logger.Warn("attempted to clear history, but no history file exists", zap.String("path", h.path))
		return nil
	}
	if err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	h.records = nil
	h.logger.Info("calculation history cleared", zap.String("path", h.path))
	return nil
}

func (h *CSVHistory) Records() []Record { return copyRecords(h.records) }

func (h *CSVHistory) Len() int { return len(h.records) }

func (h *CSVHistory) Close() error { return nil }

func (h *CSVHistory) save() error {
	if dir := filepath.Dir(h.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory for history: %w", err)
		}
	}

	f, err := os.Create(h.path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write(HistoryHeader); err != nil {
		f.Close()
		return err
	}
	for _, rec := range h.records {
		if err := w.Write(rec.Fields()); err != nil {
			f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func equalHeader(header []string) bool {
	if len(header) != len(HistoryHeader) {
		return false
	}
	for i := range header {
		if header[i] != HistoryHeader[i] {
			return false
		}
	}
	return true
}
