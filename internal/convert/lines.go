// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import "strings"

// SplitLines splits s into the line fragments nbformat uses for multi-line
// strings. Every fragment but the last keeps its trailing "\n", and the last
// fragment is whatever follows the final newline (possibly ""). Joining the
// fragments yields s, and the result always has at least one element.
func SplitLines(s string) []string {
	return strings.SplitAfter(s, "\n")
}
