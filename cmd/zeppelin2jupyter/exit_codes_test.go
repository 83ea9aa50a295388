package main

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/pdiddy/zeppelin2jupyter/internal/convert"
	"github.com/pdiddy/zeppelin2jupyter/internal/zeppelin"
)

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"generic", errors.New("boom"), ExitGeneral},
		{"batch", fmt.Errorf("%w: 2 failed", ErrBatch), ExitGeneral},
		{"usage", fmt.Errorf("%w: bad args", ErrUsage), ExitUsage},
		{"config", fmt.Errorf("%w: bad indent", ErrConfig), ExitUsage},
		{"config file missing", fmt.Errorf("%w: %w", ErrConfig, os.ErrNotExist), ExitUsage},
		{"parse", fmt.Errorf("converting x: %w", zeppelin.ErrParse), ExitUsage},
		{"schema", &zeppelin.SchemaError{}, ExitUsage},
		{"missing paragraphs", convert.ErrMissingParagraphs, ExitUsage},
		{"same file", convert.ErrSameFile, ExitUsage},
		{"not exist", fmt.Errorf("%w x: %w", zeppelin.ErrRead, os.ErrNotExist), ExitIO},
		{"permission", os.ErrPermission, ExitIO},
		{"write", fmt.Errorf("%w out.ipynb: disk full", convert.ErrWrite), ExitIO},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
