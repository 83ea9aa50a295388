// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"bytes"
	"encoding/json"
)

// Notebook is a Jupyter notebook in nbformat 4. Fields are declared in
// key order so the encoded document has sorted keys.
type Notebook struct {
	Cells         []Cell           `json:"cells"`
	Metadata      NotebookMetadata `json:"metadata"`
	NBFormat      int              `json:"nbformat"`
	NBFormatMinor int              `json:"nbformat_minor"`
}

// NotebookMetadata is the notebook-level metadata block.
type NotebookMetadata struct {
	KernelSpec   KernelSpec   `json:"kernelspec"`
	LanguageInfo LanguageInfo `json:"language_info"`
}

// KernelSpec names the kernel a notebook runs on.
type KernelSpec struct {
	DisplayName string `json:"display_name"`
	Language    string `json:"language"`
	Name        string `json:"name"`
}

// LanguageInfo describes the notebook language. Version is nil when unknown
// and encodes as null.
type LanguageInfo struct {
	FileExtension     string  `json:"file_extension"`
	Name              string  `json:"name"`
	NBConvertExporter string  `json:"nbconvert_exporter"`
	PygmentsLexer     string  `json:"pygments_lexer"`
	Version           *string `json:"version"`
}

// CellType is the nbformat cell_type discriminator.
type CellType string

const (
	CellMarkdown CellType = "markdown"
	CellCode     CellType = "code"
)

// Cell is a notebook cell: a MarkdownCell or a CodeCell.
type Cell interface {
	CellType() CellType
}

// MarkdownCell holds markdown source as line fragments.
type MarkdownCell struct {
	Source []string
}

// CellType implements Cell.
func (MarkdownCell) CellType() CellType { return CellMarkdown }

// MarshalJSON encodes the cell in nbformat shape.
func (c MarkdownCell) MarshalJSON() ([]byte, error) {
	return marshal(struct {
		CellType CellType `json:"cell_type"`
		Metadata struct{} `json:"metadata"`
		Source   []string `json:"source"`
	}{
		CellType: CellMarkdown,
		Source:   nonNil(c.Source),
	})
}

// CodeCell holds code source as line fragments and the outputs of its last
// run. ExecutionCount is nil for cells that were not run in a kernel.
type CodeCell struct {
	Source         []string
	Outputs        []Output
	ExecutionCount *int
}

// CellType implements Cell.
func (CodeCell) CellType() CellType { return CellCode }

// MarshalJSON encodes the cell in nbformat shape.
func (c CodeCell) MarshalJSON() ([]byte, error) {
	outputs := c.Outputs
	if outputs == nil {
		outputs = []Output{}
	}
	return marshal(struct {
		CellType       CellType `json:"cell_type"`
		ExecutionCount *int     `json:"execution_count"`
		Metadata       struct{} `json:"metadata"`
		Outputs        []Output `json:"outputs"`
		Source         []string `json:"source"`
	}{
		CellType:       CellCode,
		ExecutionCount: c.ExecutionCount,
		Outputs:        outputs,
		Source:         nonNil(c.Source),
	})
}

// OutputType is the nbformat output_type discriminator.
type OutputType string

const (
	OutputStream      OutputType = "stream"
	OutputDisplayData OutputType = "display_data"
)

// Output is a code cell output: a StreamOutput or a DisplayDataOutput.
type Output interface {
	OutputType() OutputType
}

// StreamOutput is text written to a named stream.
type StreamOutput struct {
	Name string
	Text []string
}

// OutputType implements Output.
func (StreamOutput) OutputType() OutputType { return OutputStream }

// MarshalJSON encodes the output in nbformat shape.
func (o StreamOutput) MarshalJSON() ([]byte, error) {
	return marshal(struct {
		Name       string     `json:"name"`
		OutputType OutputType `json:"output_type"`
		Text       []string   `json:"text"`
	}{
		Name:       o.Name,
		OutputType: OutputStream,
		Text:       nonNil(o.Text),
	})
}

// DisplayDataOutput is a rich display output carrying a base64 PNG with an
// empty plain-text fallback.
type DisplayDataOutput struct {
	PNG string
}

// OutputType implements Output.
func (DisplayDataOutput) OutputType() OutputType { return OutputDisplayData }

// MarshalJSON encodes the output in nbformat shape.
func (o DisplayDataOutput) MarshalJSON() ([]byte, error) {
	type mimeBundle struct {
		PNG       string   `json:"image/png"`
		PlainText []string `json:"text/plain"`
	}
	return marshal(struct {
		Data       mimeBundle `json:"data"`
		Metadata   struct{}   `json:"metadata"`
		OutputType OutputType `json:"output_type"`
	}{
		Data:       mimeBundle{PNG: o.PNG, PlainText: []string{}},
		OutputType: OutputDisplayData,
	})
}

// marshal encodes v without HTML escaping so markup in cell sources and
// outputs is written as-is.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
