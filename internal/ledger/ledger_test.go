// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ledger

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/zeppelin2jupyter/internal/convert"
	"github.com/pdiddy/zeppelin2jupyter/pkg/types"
)

var _ convert.Tracker = (*Ledger)(nil)

func openTestLedger(t *testing.T) (*Ledger, string) {
	t.Helper()
	dir := t.TempDir()
	l, err := Open(filepath.Join(dir, "state", "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l, dir
}

func TestOpenCreatesDatabase(t *testing.T) {
	_, dir := openTestLedger(t)
	assert.FileExists(t, filepath.Join(dir, "state", "ledger.db"))
}

func TestOpenIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ledger.db")

	first, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, first.Record(context.Background(), types.ConversionRecord{Src: "a.json", Digest: "d1", Dst: "a.ipynb"}))
	require.NoError(t, first.Close())

	second, err := Open(path)
	require.NoError(t, err)
	defer second.Close()

	entries, err := second.Entries(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestUnchanged(t *testing.T) {
	l, dir := openTestLedger(t)
	ctx := context.Background()

	dst := filepath.Join(dir, "note.ipynb")
	require.NoError(t, os.WriteFile(dst, []byte("{}"), 0o644))
	require.NoError(t, l.Record(ctx, types.ConversionRecord{Src: "note.json", Digest: "abc", Dst: dst, Cells: 3}))

	tests := []struct {
		name   string
		src    string
		digest string
		dst    string
		want   bool
	}{
		{name: "same digest and destination", src: "note.json", digest: "abc", dst: dst, want: true},
		{name: "unknown source", src: "other.json", digest: "abc", dst: dst, want: false},
		{name: "changed digest", src: "note.json", digest: "def", dst: dst, want: false},
		{name: "different destination", src: "note.json", digest: "abc", dst: filepath.Join(dir, "elsewhere.ipynb"), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := l.Unchanged(ctx, tt.src, tt.digest, tt.dst)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("destination removed", func(t *testing.T) {
		require.NoError(t, os.Remove(dst))
		got, err := l.Unchanged(ctx, "note.json", "abc", dst)
		require.NoError(t, err)
		assert.False(t, got)
	})
}

func TestRecordUpserts(t *testing.T) {
	l, _ := openTestLedger(t)
	ctx := context.Background()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, l.Record(ctx, types.ConversionRecord{Src: "b.json", Digest: "1", Dst: "b.ipynb", Cells: 1, ConvertedAt: at}))
	require.NoError(t, l.Record(ctx, types.ConversionRecord{Src: "a.json", Digest: "2", Dst: "a.ipynb", Cells: 2, Dropped: 1, ConvertedAt: at}))
	require.NoError(t, l.Record(ctx, types.ConversionRecord{Src: "b.json", Digest: "3", Dst: "b.ipynb", Cells: 4, ConvertedAt: at.Add(time.Hour)}))

	entries, err := l.Entries(ctx)
	require.NoError(t, err)
	assert.Equal(t, []types.ConversionRecord{
		{Src: "a.json", Digest: "2", Dst: "a.ipynb", Cells: 2, Dropped: 1, ConvertedAt: at},
		{Src: "b.json", Digest: "3", Dst: "b.ipynb", Cells: 4, ConvertedAt: at.Add(time.Hour)},
	}, entries)
}

func TestLedgerDrivesBatchSkips(t *testing.T) {
	l, dir := openTestLedger(t)
	src := filepath.Join(dir, "note.json")
	require.NoError(t, os.WriteFile(src, []byte(`{"paragraphs": [{"text": "1 + 1"}]}`), 0o644))

	first := convert.ConvertBatch(context.Background(), []string{src}, types.ConversionConfig{}, l, io.Discard, io.Discard)
	assert.Equal(t, 1, first.Converted)

	second := convert.ConvertBatch(context.Background(), []string{src}, types.ConversionConfig{}, l, io.Discard, io.Discard)
	assert.Equal(t, 1, second.Skipped)

	entries, err := l.Entries(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Join(dir, "note.ipynb"), entries[0].Dst)
	assert.Equal(t, 1, entries[0].Cells)
	assert.Len(t, entries[0].Digest, 64)
}
