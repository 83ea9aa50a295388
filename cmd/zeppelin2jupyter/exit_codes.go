package main

import (
	"errors"
	"os"

	"github.com/pdiddy/zeppelin2jupyter/internal/convert"
	"github.com/pdiddy/zeppelin2jupyter/internal/zeppelin"
)

// Exit codes for the zeppelin2jupyter CLI.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error, failed batch entries
	ExitUsage   = 2 // Invalid arguments, config, or input notebook
	ExitIO      = 3 // File not found, permission denied, unwritable destination
)

var (
	// ErrUsage marks invalid command-line arguments or flags.
	ErrUsage = errors.New("usage")
	// ErrConfig marks an unreadable or invalid configuration.
	ErrConfig = errors.New("invalid configuration")
	// ErrBatch reports a batch run in which some notebooks failed.
	ErrBatch = errors.New("batch conversion incomplete")
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Usage and config errors (exit 2)
	if errors.Is(err, ErrUsage) || errors.Is(err, ErrConfig) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, zeppelin.ErrRead) ||
		errors.Is(err, convert.ErrWrite) {
		return ExitIO
	}

	// Malformed input notebooks (exit 2)
	if errors.Is(err, zeppelin.ErrParse) ||
		errors.Is(err, zeppelin.ErrSchema) ||
		errors.Is(err, convert.ErrMissingParagraphs) ||
		errors.Is(err, convert.ErrSameFile) {
		return ExitUsage
	}

	return ExitGeneral
}
