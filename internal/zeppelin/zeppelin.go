// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package zeppelin reads Zeppelin notebooks. Documents are checked against an
// embedded JSON Schema before they are decoded, so missing or mistyped
// fields surface as a SchemaError listing every offending location instead
// of failing somewhere inside the conversion.
package zeppelin

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"unicode/utf8"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/pdiddy/zeppelin2jupyter/pkg/types"
)

//go:embed note.schema.json
var noteSchema []byte

const schemaURL = "note.schema.json"

var (
	// ErrRead wraps failures to read a notebook file.
	ErrRead = errors.New("reading notebook")
	// ErrParse reports input that is not a single JSON document.
	ErrParse = errors.New("invalid notebook JSON")
	// ErrSchema reports JSON that does not have the shape of a Zeppelin note.
	ErrSchema = errors.New("notebook does not match the Zeppelin note schema")
)

// Issue is a single schema violation.
type Issue struct {
	// Location is a JSON pointer into the document, e.g. "/paragraphs/2/title".
	Location string
	Message  string
}

// SchemaError lists the schema violations found in a document. It unwraps
// to ErrSchema.
type SchemaError struct {
	Issues []Issue
}

func (e *SchemaError) Error() string {
	if len(e.Issues) == 0 {
		return ErrSchema.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		loc := issue.Location
		if loc == "" {
			loc = "/"
		}
		parts = append(parts, fmt.Sprintf("%s: %s", loc, issue.Message))
	}
	return ErrSchema.Error() + ": " + strings.Join(parts, "; ")
}

func (e *SchemaError) Unwrap() error {
	return ErrSchema
}

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(schemaURL, bytes.NewReader(noteSchema)); err != nil {
		return nil, err
	}
	return compiler.Compile(schemaURL)
})

// ReadFile reads and parses the notebook at path.
func ReadFile(path string) (*types.Note, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrRead, path, err)
	}
	return Parse(data)
}

// Parse validates data against the note schema and decodes it. Syntax
// errors and input that is not UTF-8 yield ErrParse, shape errors a
// *SchemaError.
func Parse(data []byte) (*types.Note, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: invalid UTF-8 at byte %d", ErrParse, invalidUTF8Offset(data))
	}
	doc, err := decodeDocument(data)
	if err != nil {
		return nil, err
	}
	if err := validate(doc); err != nil {
		return nil, err
	}

	var note types.Note
	if err := json.Unmarshal(data, &note); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return &note, nil
}

func invalidUTF8Offset(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return len(data)
}

// decodeDocument decodes data into a generic value suitable for schema
// validation, rejecting trailing content after the first document.
func decodeDocument(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrParse)
		}
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after document", ErrParse)
	}
	return doc, nil
}

func validate(doc any) error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compiling note schema: %w", err)
	}
	err = schema.Validate(doc)
	if err == nil {
		return nil
	}
	var verr *jsonschema.ValidationError
	if errors.As(err, &verr) {
		return &SchemaError{Issues: collectIssues(verr)}
	}
	return fmt.Errorf("%w: %v", ErrSchema, err)
}

// collectIssues flattens a validation error tree into its leaves.
func collectIssues(err *jsonschema.ValidationError) []Issue {
	var issues []Issue
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if len(node.Causes) == 0 {
			issues = append(issues, Issue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
