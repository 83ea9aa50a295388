//go:build mage

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Convert batch-converts every notebook under notebooks/ into converted/,
// skipping notebooks the ledger in state/ reports as unchanged.
func Convert() error {
	mg.Deps(Init, Build)
	return sh.RunV(binPath, "batch",
		"--ledger", filepath.Join("state", "ledger.db"),
		"--out-dir", "converted",
		"notebooks")
}
