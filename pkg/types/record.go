// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ConversionStatus indicates the outcome of converting one notebook.
type ConversionStatus string

const (
	ConversionNone   ConversionStatus = "none"
	ConversionDone   ConversionStatus = "converted"
	ConversionFailed ConversionStatus = "failed"
)

// ConversionRecord is the ledger entry for a converted notebook.
type ConversionRecord struct {
	// Src is the source notebook path as given to the batch run.
	Src string `json:"src" yaml:"src"`

	// Digest is the hex SHA-256 of the source bytes that were converted.
	Digest string `json:"digest" yaml:"digest"`

	// Dst is the path the Jupyter notebook was written to.
	Dst string `json:"dst" yaml:"dst"`

	// Cells is the number of cells in the written notebook.
	Cells int `json:"cells" yaml:"cells"`

	// Dropped counts result messages that had no notebook equivalent.
	Dropped int `json:"dropped" yaml:"dropped"`

	// ConvertedAt is when the notebook was written.
	ConvertedAt time.Time `json:"converted_at" yaml:"converted_at"`
}
