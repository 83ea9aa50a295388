// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/zeppelin2jupyter/pkg/types"
)

const (
	// defaultLanguageKey counts paragraphs without an editor language.
	defaultLanguageKey = "default"
	// untypedMessageKey counts result messages without a type.
	untypedMessageKey = "untyped"
)

// Summary describes a Zeppelin note and what converting it would produce.
type Summary struct {
	Name       string         `yaml:"name,omitempty"`
	ID         string         `yaml:"id,omitempty"`
	Paragraphs int            `yaml:"paragraphs"`
	Titled     int            `yaml:"titled"`
	Languages  map[string]int `yaml:"languages,omitempty"`
	Messages   map[string]int `yaml:"messages,omitempty"`
	Cells      int            `yaml:"cells"`
	Dropped    int            `yaml:"dropped"`
}

// Summarize inspects n without writing anything.
func Summarize(n *types.Note) (Summary, error) {
	nb, dropped, err := mapNote(n)
	if err != nil {
		return Summary{}, err
	}

	s := Summary{
		Name:       n.Name,
		ID:         n.ID,
		Paragraphs: len(n.Paragraphs),
		Languages:  map[string]int{},
		Messages:   map[string]int{},
		Cells:      len(nb.Cells),
		Dropped:    dropped,
	}
	for _, p := range n.Paragraphs {
		if p.Title != nil {
			s.Titled++
		}
		lang := p.Language()
		if lang == "" {
			lang = defaultLanguageKey
		}
		s.Languages[lang]++
		for _, m := range p.Messages() {
			typ := string(m.Type)
			if typ == "" {
				typ = untypedMessageKey
			}
			s.Messages[typ]++
		}
	}
	return s, nil
}

// WriteSummary writes s to w as YAML.
func WriteSummary(w io.Writer, s Summary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&s); err != nil {
		return fmt.Errorf("encoding summary: %w", err)
	}
	return enc.Close()
}
