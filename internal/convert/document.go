// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"errors"

	"github.com/pdiddy/zeppelin2jupyter/pkg/types"
)

// ErrMissingParagraphs reports a note without a paragraphs list.
var ErrMissingParagraphs = errors.New("notebook has no paragraphs list")

// Output format version and kernel metadata. Zeppelin notes carry no kernel
// information, so every notebook targets the Scala kernel.
const (
	NBFormat      = 4
	NBFormatMinor = 2

	kernelName        = "scala"
	kernelDisplayName = "Scala"
	kernelLanguage    = "scala"
	fileExtension     = ".scala"
)

// MapNote converts a whole note, concatenating the cells of every paragraph
// in order.
func MapNote(n *types.Note) (*types.Notebook, error) {
	nb, _, err := mapNote(n)
	return nb, err
}

func mapNote(n *types.Note) (*types.Notebook, int, error) {
	if n == nil || n.Paragraphs == nil {
		return nil, 0, ErrMissingParagraphs
	}

	cells := make([]types.Cell, 0, len(n.Paragraphs))
	dropped := 0
	for _, p := range n.Paragraphs {
		pc, d := mapParagraph(p)
		cells = append(cells, pc...)
		dropped += d
	}

	return &types.Notebook{
		Cells:         cells,
		Metadata:      notebookMetadata(),
		NBFormat:      NBFormat,
		NBFormatMinor: NBFormatMinor,
	}, dropped, nil
}

func notebookMetadata() types.NotebookMetadata {
	return types.NotebookMetadata{
		KernelSpec: types.KernelSpec{
			DisplayName: kernelDisplayName,
			Language:    kernelLanguage,
			Name:        kernelName,
		},
		LanguageInfo: types.LanguageInfo{
			FileExtension:     fileExtension,
			Name:              kernelName,
			NBConvertExporter: kernelName,
			PygmentsLexer:     kernelName,
		},
	}
}
