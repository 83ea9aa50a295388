// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns Zeppelin notes into Jupyter notebooks.
//
// The mapping itself (SplitLines, MapOutputs, MapParagraph, MapNote) is pure.
// ConvertFile and ConvertBatch add file handling around it: a destination is
// only written once the complete notebook has been encoded, and it is
// replaced atomically so a failed run never leaves a truncated file behind.
package convert

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/zeppelin2jupyter/internal/zeppelin"
	"github.com/pdiddy/zeppelin2jupyter/pkg/types"
)

// notebookExt is the extension of written Jupyter notebooks.
const notebookExt = ".ipynb"

var (
	// ErrWrite wraps failures to write the destination notebook.
	ErrWrite = errors.New("writing notebook")
	// ErrSameFile reports a destination that would overwrite the source.
	ErrSameFile = errors.New("destination is the source file")
)

// Stats describes a converted notebook.
type Stats struct {
	// Cells is the number of cells written.
	Cells int
	// Dropped counts result messages that had no notebook equivalent.
	Dropped int
}

// Result holds the outcome of a single file conversion.
type Result struct {
	Src string
	Dst string
	Stats
}

// Convert parses a Zeppelin note from data and returns the encoded Jupyter
// notebook.
func Convert(data []byte, cfg types.ConversionConfig) ([]byte, Stats, error) {
	note, err := zeppelin.Parse(data)
	if err != nil {
		return nil, Stats{}, err
	}
	nb, dropped, err := mapNote(note)
	if err != nil {
		return nil, Stats{}, err
	}
	out, err := Encode(nb, cfg.IndentOrDefault())
	if err != nil {
		return nil, Stats{}, err
	}
	return out, Stats{Cells: len(nb.Cells), Dropped: dropped}, nil
}

// Encode writes nb as indented JSON with a trailing newline. Markup is not
// HTML-escaped.
func Encode(nb *types.Notebook, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(nb); err != nil {
		return nil, fmt.Errorf("encoding notebook: %w", err)
	}
	return buf.Bytes(), nil
}

// ConvertFile converts the note at src and writes the notebook to dst.
func ConvertFile(src, dst string, cfg types.ConversionConfig) (Result, error) {
	if filepath.Clean(src) == filepath.Clean(dst) {
		return Result{}, fmt.Errorf("%w: %s", ErrSameFile, dst)
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return Result{}, fmt.Errorf("%w %s: %w", zeppelin.ErrRead, src, err)
	}

	out, stats, err := Convert(data, cfg)
	if err != nil {
		return Result{}, fmt.Errorf("converting %s: %w", src, err)
	}

	if err := writeFile(dst, out); err != nil {
		return Result{}, err
	}
	return Result{Src: src, Dst: dst, Stats: stats}, nil
}

// DefaultDestination derives the notebook path for src by replacing the
// extension of its file name with .ipynb. A name without an extension gets
// .ipynb appended.
func DefaultDestination(src string) string {
	dir, base := filepath.Split(src)
	if ext := filepath.Ext(base); ext != "" && ext != base {
		base = strings.TrimSuffix(base, ext)
	}
	return dir + base + notebookExt
}

// writeFile replaces path with data through a temporary file in the same
// directory.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w %s: %w", ErrWrite, path, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrWrite, path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w %s: %w", ErrWrite, path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w %s: %w", ErrWrite, path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("%w %s: %w", ErrWrite, path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w %s: %w", ErrWrite, path, err)
	}
	return nil
}
