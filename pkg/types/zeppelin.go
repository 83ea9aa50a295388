// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"fmt"
)

// MessageType tags a paragraph result message.
type MessageType string

const (
	MessageText MessageType = "TEXT"
	MessageHTML MessageType = "HTML"
)

// Convertible reports whether messages of this type carry data the converter
// can turn into a notebook output.
func (t MessageType) Convertible() bool {
	return t == MessageText || t == MessageHTML
}

// Note is a Zeppelin notebook as stored in note.json or a .zpln file. Only
// the fields needed for conversion are decoded.
type Note struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`

	// Paragraphs is nil when the key is absent from the document and empty
	// when the document holds an empty list.
	Paragraphs []Paragraph `json:"paragraphs"`
}

// Paragraph is one Zeppelin paragraph: an optional title, the editor text
// (which may start with an interpreter directive such as "%md"), editor
// settings, and the results of the last run.
type Paragraph struct {
	ID      string            `json:"id,omitempty"`
	Title   *string           `json:"title,omitempty"`
	Text    *string           `json:"text,omitempty"`
	Config  ParagraphConfig   `json:"config"`
	Results *ParagraphResults `json:"results,omitempty"`
}

// Language returns the editor language, or "" when the paragraph has none.
func (p Paragraph) Language() string {
	return p.Config.EditorSetting.Language
}

// Source returns the paragraph text, treating an absent text as empty.
func (p Paragraph) Source() string {
	if p.Text == nil {
		return ""
	}
	return *p.Text
}

// Messages returns the result messages, or nil when the paragraph was never run.
func (p Paragraph) Messages() []ResultMessage {
	if p.Results == nil {
		return nil
	}
	return p.Results.Msg
}

// ParagraphConfig holds the per-paragraph editor configuration.
type ParagraphConfig struct {
	EditorSetting EditorSetting `json:"editorSetting"`
}

// EditorSetting identifies the language the paragraph editor was set to.
type EditorSetting struct {
	Language string `json:"language,omitempty"`
}

// ParagraphResults holds the outcome of a paragraph run.
type ParagraphResults struct {
	// Code is the run status reported by Zeppelin (e.g. "SUCCESS", "ERROR").
	Code string          `json:"code,omitempty"`
	Msg  []ResultMessage `json:"msg"`
}

// ResultMessage is a single typed result of a paragraph run. Data is only
// decoded for convertible types; for any other type it is left empty
// whatever its JSON shape.
type ResultMessage struct {
	Type MessageType `json:"type"`
	Data string      `json:"data"`
}

// UnmarshalJSON decodes a result message, tolerating non-string types and
// arbitrary data on message types the converter drops anyway.
func (m *ResultMessage) UnmarshalJSON(b []byte) error {
	var raw struct {
		Type json.RawMessage `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	*m = ResultMessage{}
	var typ string
	if len(raw.Type) > 0 && json.Unmarshal(raw.Type, &typ) == nil {
		m.Type = MessageType(typ)
	}
	if !m.Type.Convertible() || len(raw.Data) == 0 {
		return nil
	}

	var data *string
	if err := json.Unmarshal(raw.Data, &data); err != nil {
		return fmt.Errorf("decoding %s message data: %w", m.Type, err)
	}
	if data != nil {
		m.Data = *data
	}
	return nil
}
