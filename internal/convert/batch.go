// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/zeppelin2jupyter/pkg/types"
)

// noteExts lists the file extensions batch runs pick up when walking a
// directory: note.json (Zeppelin up to 0.8) and .zpln (0.9 and later).
var noteExts = []string{".json", ".zpln"}

// ErrDuplicateDestination is reported for a notebook whose destination was
// already written by an earlier notebook in the same batch run.
var ErrDuplicateDestination = errors.New("destination already written in this batch")

// Tracker remembers converted notebooks so batch runs can skip sources that
// have not changed since they were last written.
type Tracker interface {
	// Unchanged reports whether src was last converted from content with
	// the given digest into dst, and dst is still present.
	Unchanged(ctx context.Context, src, digest, dst string) (bool, error)
	// Record stores the outcome of a successful conversion.
	Record(ctx context.Context, rec types.ConversionRecord) error
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of notebooks processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any notebook failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// source is a notebook found by a batch run. Rel is its path relative to the
// directory argument it was found under, or its base name for file arguments.
type source struct {
	Path string
	Rel  string
}

// ConvertBatch converts every notebook named by paths, printing per-file
// status to w and warnings to warn, and returning a summary. Directories are
// walked for .json and .zpln files. tracker may be nil, in which case every
// notebook is converted. Two notebooks mapping to the same destination are
// never both written: the later one fails with ErrDuplicateDestination.
func ConvertBatch(ctx context.Context, paths []string, cfg types.ConversionConfig, tracker Tracker, w, warn io.Writer) BatchResult {
	var result BatchResult
	claimed := make(map[string]string)

	sources, errs := discover(paths)
	for _, err := range errs {
		fmt.Fprintf(w, "failed:  %v\n", err)
		result.Failed++
	}

	for i, src := range sources {
		select {
		case <-ctx.Done():
			remaining := len(sources) - i
			fmt.Fprintf(w, "failed:  %d notebook(s) not converted (%v)\n", remaining, ctx.Err())
			result.Failed += remaining
			return summarize(w, result)
		default:
		}

		dst := destinationFor(src, cfg.OutDir)
		key := filepath.Clean(dst)
		if prev, ok := claimed[key]; ok {
			fmt.Fprintf(w, "failed:  %s (%v: %s from %s)\n", src.Path, ErrDuplicateDestination, dst, prev)
			result.Failed++
			continue
		}
		claimed[key] = src.Path

		switch ConvertSource(ctx, src.Path, dst, cfg, tracker, w, warn) {
		case types.ConversionDone:
			result.Converted++
		case types.ConversionNone:
			result.Skipped++
		case types.ConversionFailed:
			result.Failed++
		}
	}
	return summarize(w, result)
}

func summarize(w io.Writer, result BatchResult) BatchResult {
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}

// ConvertSource converts one notebook for a batch run and returns its status.
// If tracker reports the source unchanged and cfg.Force is unset, the
// conversion is skipped and ConversionNone returned.
func ConvertSource(ctx context.Context, src, dst string, cfg types.ConversionConfig, tracker Tracker, w, warn io.Writer) types.ConversionStatus {
	if filepath.Clean(src) == filepath.Clean(dst) {
		fmt.Fprintf(w, "failed:  %s (%v)\n", src, ErrSameFile)
		return types.ConversionFailed
	}

	data, err := os.ReadFile(src)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", src, err)
		return types.ConversionFailed
	}
	digest := digestOf(data)

	if tracker != nil && !cfg.Force {
		unchanged, err := tracker.Unchanged(ctx, src, digest, dst)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", src, err)
			return types.ConversionFailed
		}
		if unchanged {
			fmt.Fprintf(w, "skipped: %s (unchanged)\n", src)
			return types.ConversionNone
		}
	}

	out, stats, err := Convert(data, cfg)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", src, err)
		return types.ConversionFailed
	}
	if err := writeFile(dst, out); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", src, err)
		return types.ConversionFailed
	}

	fmt.Fprintf(w, "converted: %s -> %s (%d cells)\n", src, dst, stats.Cells)
	if stats.Dropped > 0 {
		fmt.Fprintf(warn, "warning: %s: dropped %d unsupported result message(s)\n", src, stats.Dropped)
	}

	if tracker != nil {
		rec := types.ConversionRecord{
			Src:         src,
			Digest:      digest,
			Dst:         dst,
			Cells:       stats.Cells,
			Dropped:     stats.Dropped,
			ConvertedAt: time.Now().UTC(),
		}
		if err := tracker.Record(ctx, rec); err != nil {
			fmt.Fprintf(warn, "warning: %s: could not record conversion: %v\n", src, err)
		}
	}
	return types.ConversionDone
}

// discover expands paths into notebook sources, walking directories. Errors
// are collected per path so one bad argument does not stop the run.
func discover(paths []string) ([]source, []error) {
	var sources []source
	var errs []error
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !info.IsDir() {
			sources = append(sources, source{Path: p, Rel: filepath.Base(p)})
			continue
		}

		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != p && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if !isNoteFile(d.Name()) {
				return nil
			}
			rel, err := filepath.Rel(p, path)
			if err != nil {
				return err
			}
			sources = append(sources, source{Path: path, Rel: rel})
			return nil
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("walking %s: %w", p, err))
		}
	}
	return sources, errs
}

func isNoteFile(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range noteExts {
		if ext == e {
			return true
		}
	}
	return false
}

// destinationFor places the notebook beside its source, or under outDir
// keeping the source's relative path.
func destinationFor(src source, outDir string) string {
	if outDir == "" {
		return DefaultDestination(src.Path)
	}
	return filepath.Join(outDir, DefaultDestination(src.Rel))
}

func digestOf(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
