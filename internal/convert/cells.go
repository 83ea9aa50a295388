// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import "github.com/pdiddy/zeppelin2jupyter/pkg/types"

const (
	// markdownLanguage is the editor language of %md paragraphs.
	markdownLanguage = "markdown"
	// titlePrefix turns a paragraph title into a level-3 markdown heading.
	titlePrefix = "### "
)

// MapParagraph converts one paragraph into notebook cells.
//
// A markdown paragraph becomes a single markdown cell without its first
// line, which holds the %md directive. Any other paragraph becomes a code
// cell carrying the mapped results, preceded by a heading cell when the
// paragraph has a title.
func MapParagraph(p types.Paragraph) []types.Cell {
	cells, _ := mapParagraph(p)
	return cells
}

func mapParagraph(p types.Paragraph) ([]types.Cell, int) {
	if p.Language() == markdownLanguage {
		lines := SplitLines(p.Source())
		return []types.Cell{types.MarkdownCell{Source: lines[1:]}}, 0
	}

	cells := make([]types.Cell, 0, 2)
	if p.Title != nil {
		cells = append(cells, types.MarkdownCell{Source: []string{titlePrefix + *p.Title}})
	}
	outputs, dropped := mapOutputs(p.Messages())
	cells = append(cells, types.CodeCell{
		Source:  SplitLines(p.Source()),
		Outputs: outputs,
	})
	return cells, dropped
}
