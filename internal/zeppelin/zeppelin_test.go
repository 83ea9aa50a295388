// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package zeppelin

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/zeppelin2jupyter/pkg/types"
)

const sampleNote = `{
  "id": "2A94M5J1Z",
  "name": "Spark Tutorial",
  "paragraphs": [
    {
      "title": "Load data",
      "text": "val df = spark.read.json(\"people.json\")\ndf.show()",
      "config": {"editorSetting": {"language": "scala", "editOnDblClick": false}},
      "results": {
        "code": "SUCCESS",
        "msg": [
          {"type": "TEXT", "data": "+---+\n|age|\n+---+\n"},
          {"type": "TABLE", "data": {"rows": 3}}
        ]
      }
    },
    {
      "text": "%md\n# Notes",
      "config": {"editorSetting": {"language": "markdown"}}
    },
    {
      "title": null,
      "text": null,
      "config": {},
      "results": null
    }
  ]
}`

func TestParse(t *testing.T) {
	note, err := Parse([]byte(sampleNote))
	require.NoError(t, err)

	assert.Equal(t, "2A94M5J1Z", note.ID)
	assert.Equal(t, "Spark Tutorial", note.Name)
	require.Len(t, note.Paragraphs, 3)

	first := note.Paragraphs[0]
	require.NotNil(t, first.Title)
	assert.Equal(t, "Load data", *first.Title)
	assert.Equal(t, "scala", first.Language())
	assert.Equal(t, "SUCCESS", first.Results.Code)
	assert.Equal(t, []types.ResultMessage{
		{Type: types.MessageText, Data: "+---+\n|age|\n+---+\n"},
		{Type: "TABLE"},
	}, first.Messages())

	second := note.Paragraphs[1]
	assert.Nil(t, second.Title)
	assert.Equal(t, "markdown", second.Language())
	assert.Nil(t, second.Messages())

	third := note.Paragraphs[2]
	assert.Nil(t, third.Title)
	assert.Equal(t, "", third.Source())
	assert.Equal(t, "", third.Language())
	assert.Nil(t, third.Results)
}

func TestParseEmptyParagraphs(t *testing.T) {
	note, err := Parse([]byte(`{"paragraphs": []}`))
	require.NoError(t, err)
	assert.NotNil(t, note.Paragraphs)
	assert.Empty(t, note.Paragraphs)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantErr  error
		location string
	}{
		{
			name:    "not JSON",
			input:   `{"paragraphs": [`,
			wantErr: ErrParse,
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: ErrParse,
		},
		{
			name:    "trailing data",
			input:   `{"paragraphs": []} {}`,
			wantErr: ErrParse,
		},
		{
			name:    "invalid UTF-8",
			input:   "{\"paragraphs\": [{\"text\": \"caf\xe9\"}]}",
			wantErr: ErrParse,
		},
		{
			name:     "missing paragraphs",
			input:    `{"name": "untitled"}`,
			wantErr:  ErrSchema,
			location: "",
		},
		{
			name:     "paragraphs not a list",
			input:    `{"paragraphs": {"0": {}}}`,
			wantErr:  ErrSchema,
			location: "/paragraphs",
		},
		{
			name:     "document not an object",
			input:    `[1, 2, 3]`,
			wantErr:  ErrSchema,
			location: "",
		},
		{
			name:     "title not a string",
			input:    `{"paragraphs": [{"title": 42}]}`,
			wantErr:  ErrSchema,
			location: "/paragraphs/0/title",
		},
		{
			name:     "message list not an array",
			input:    `{"paragraphs": [{"results": {"msg": "oops"}}]}`,
			wantErr:  ErrSchema,
			location: "/paragraphs/0/results/msg",
		},
		{
			name:     "text message with object data",
			input:    `{"paragraphs": [{"results": {"msg": [{"type": "TEXT", "data": {"x": 1}}]}}]}`,
			wantErr:  ErrSchema,
			location: "/paragraphs/0/results/msg/0/data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			note, err := Parse([]byte(tt.input))
			require.Error(t, err)
			assert.Nil(t, note)
			assert.True(t, errors.Is(err, tt.wantErr), "error %v is not %v", err, tt.wantErr)

			if tt.wantErr != ErrSchema {
				return
			}
			var serr *SchemaError
			require.True(t, errors.As(err, &serr))
			require.NotEmpty(t, serr.Issues)
			locations := make([]string, 0, len(serr.Issues))
			for _, issue := range serr.Issues {
				locations = append(locations, issue.Location)
			}
			assert.Contains(t, locations, tt.location)
		})
	}
}

func TestParseToleratesUnknownMessageData(t *testing.T) {
	input := `{"paragraphs": [{"results": {"msg": [
		{"type": "ANGULAR", "data": 17},
		{"type": 5, "data": [1, 2]},
		{"data": "no type"},
		{"type": "HTML", "data": null}
	]}}]}`

	note, err := Parse([]byte(input))
	require.NoError(t, err)
	assert.Equal(t, []types.ResultMessage{
		{Type: "ANGULAR"},
		{},
		{},
		{Type: types.MessageHTML},
	}, note.Paragraphs[0].Messages())
}

func TestParseInvalidUTF8Offset(t *testing.T) {
	_, err := Parse([]byte("{\"name\": \"ok\xff\", \"paragraphs\": []}"))
	require.ErrorIs(t, err, ErrParse)
	assert.Contains(t, err.Error(), "invalid UTF-8 at byte 12")
}

func TestSchemaErrorMessage(t *testing.T) {
	err := &SchemaError{Issues: []Issue{
		{Location: "", Message: "missing properties: 'paragraphs'"},
		{Location: "/name", Message: "expected string"},
	}}
	assert.Equal(t,
		"notebook does not match the Zeppelin note schema: /: missing properties: 'paragraphs'; /name: expected string",
		err.Error())
	assert.Equal(t, ErrSchema.Error(), (&SchemaError{}).Error())
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "note.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleNote), 0o644))

	note, err := ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, note.Paragraphs, 3)

	_, err = ReadFile(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRead))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
