package gocalc

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteHistory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")

	h, err := NewSQLiteHistory(dbPath, "session-a", nil)
	require.NoError(t, err)

	require.NoError(t, h.Append(rec("add", "2", "3", "5")))
	require.NoError(t, h.Append(rec("subtract", "5", "3", "2")))
	require.NoError(t, h.Append(rec("divide", "1", "3", "0.3333333333333333")))
	require.NoError(t, h.Close())

	// Reopen under another session and check persistence.
	h, err = NewSQLiteHistory(dbPath, "session-b", nil)
	require.NoError(t, err)
	defer h.Close()

	want := []Record{
		rec("add", "2", "3", "5"),
		rec("subtract", "5", "3", "2"),
		rec("divide", "1", "3", "0.3333333333333333"),
	}
	if diff := cmp.Diff(want, h.Records(), recordsEqual); diff != "" {
		t.Fatalf("reloaded history mismatch (-want +got):\n%s", diff)
	}

	require.NoError(t, h.Append(rec("multiply", "2", "2", "4")))

	sessionA, err := h.SessionRecords("session-a")
	require.NoError(t, err)
	assert.Len(t, sessionA, 3)
	sessionB, err := h.SessionRecords("session-b")
	require.NoError(t, err)
	assert.Len(t, sessionB, 1)

	// Delete is positional.
	removed, err := h.Delete(1)
	require.NoError(t, err)
	assert.Equal(t, "subtract", removed.Operation)
	require.NoError(t, h.Load())
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, "divide", h.Records()[1].Operation)

	_, err = h.Delete(3)
	assert.ErrorIs(t, err, ErrInvalidIndex)

	require.NoError(t, h.Clear())
	assert.Equal(t, 0, h.Len())
	require.NoError(t, h.Load())
	assert.Equal(t, 0, h.Len())

	// Clearing an empty table only warns.
	require.NoError(t, h.Clear())
}

func TestShowSessionHistory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")

	first, err := NewSQLiteHistory(dbPath, "session-a", nil)
	require.NoError(t, err)
	require.NoError(t, first.Append(rec("add", "2", "3", "5")))
	require.NoError(t, first.Close())

	h, err := NewSQLiteHistory(dbPath, "session-b", nil)
	require.NoError(t, err)
	defer h.Close()
	require.NoError(t, h.Append(rec("multiply", "6", "7", "42")))

	var buf bytes.Buffer
	require.NoError(t, ShowSessionHistory(&buf, h, "session-a"))
	assert.Contains(t, buf.String(), "add")
	assert.NotContains(t, buf.String(), "multiply")

	buf.Reset()
	require.NoError(t, ShowSessionHistory(&buf, h, "session-c"))
	assert.Equal(t, "\nCalculation History:\nNo history available.\n", buf.String())
}

func TestShowSessionHistoryNeedsSessions(t *testing.T) {
	store, _ := newTestCSV(t)
	err := ShowSessionHistory(&bytes.Buffer{}, store, "session-a")
	assert.ErrorIs(t, err, errNoSessions)
}
