package telemetry

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkalytics/factorlink/pkg/types"
)

func newTestHandler(t *testing.T) (*ParquetHandler, string, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	var buf bytes.Buffer
	next := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	h, err := NewParquetHandler(next, dir)
	require.NoError(t, err)
	return h, dir, &buf
}

func readRecords(t *testing.T, dir string) []LogRecord {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var records []LogRecord
	for _, e := range entries {
		f, err := os.Open(filepath.Join(dir, e.Name()))
		require.NoError(t, err)
		info, err := f.Stat()
		require.NoError(t, err)
		rows, err := parquet.Read[LogRecord](f, info.Size())
		if err != nil && err != io.EOF {
			t.Fatalf("read parquet: %v", err)
		}
		records = append(records, rows...)
		_ = f.Close()
	}
	return records
}

func TestHandlerPassesThrough(t *testing.T) {
	h, _, buf := newTestHandler(t)
	log := slog.New(h)

	log.Info("hello")
	assert.Contains(t, buf.String(), "msg=hello")
}

func TestHandlerBuffersOnlyErrors(t *testing.T) {
	h, dir, _ := newTestHandler(t)
	log := slog.New(h)

	log.Info("routine")
	log.Warn("notable")
	log.Error("broken", "field", "phone")

	require.NoError(t, h.Flush())
	records := readRecords(t, dir)
	require.Len(t, records, 1)
	assert.Equal(t, "broken", records[0].Message)
	assert.Equal(t, "ERROR", records[0].Level)
	assert.Contains(t, records[0].Attributes, `"field":"phone"`)
	assert.NotEmpty(t, records[0].ID)
}

func TestHandlerCapturesContext(t *testing.T) {
	h, dir, _ := newTestHandler(t)
	log := slog.New(h)

	ctx := context.WithValue(context.Background(), types.ContextKeyEntityID, "63166071")
	ctx = context.WithValue(ctx, types.ContextKeyDegree, "2")
	ctx = context.WithValue(ctx, types.ContextKeyRequestSource, "server")
	log.ErrorContext(ctx, "lookup failed")

	require.NoError(t, h.Flush())
	records := readRecords(t, dir)
	require.Len(t, records, 1)
	assert.Equal(t, "63166071", records[0].EntityID)
	assert.Equal(t, "2", records[0].Degree)
	assert.Equal(t, "server", records[0].RequestSource)
}

func TestFlushOnEmptyBufferWritesNothing(t *testing.T) {
	h, dir, _ := newTestHandler(t)
	require.NoError(t, h.Flush())
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
