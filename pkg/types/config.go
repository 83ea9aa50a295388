package types

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DefaultIndent is the JSON indentation used for written notebooks.
const DefaultIndent = "  "

// MaxIndentLength bounds the configured indentation.
const MaxIndentLength = 8

var indentPattern = regexp.MustCompile(`^[ \t]*$`)

// ConversionConfig holds settings for notebook conversion.
type ConversionConfig struct {
	// Indent is the per-level JSON indentation of the written notebook
	// (default two spaces). Only spaces and tabs are allowed.
	Indent string `json:"indent" yaml:"indent" mapstructure:"indent"`

	// OutDir, when set, receives batch outputs instead of the source
	// directory.
	OutDir string `json:"out_dir,omitempty" yaml:"out_dir,omitempty" mapstructure:"out_dir"`

	// Ledger is the path of the SQLite conversion ledger used by batch runs.
	// Empty disables the ledger.
	Ledger string `json:"ledger,omitempty" yaml:"ledger,omitempty" mapstructure:"ledger"`

	// Force reconverts notebooks the ledger reports as unchanged.
	Force bool `json:"force" yaml:"force" mapstructure:"force"`
}

// Validate checks the configuration values.
func (c ConversionConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Indent,
			validation.Length(0, MaxIndentLength),
			validation.Match(indentPattern).Error("must contain only spaces and tabs"),
		),
	)
}

// IndentOrDefault returns the configured indentation, or DefaultIndent when
// none is set.
func (c ConversionConfig) IndentOrDefault() string {
	if c.Indent == "" {
		return DefaultIndent
	}
	return c.Indent
}
