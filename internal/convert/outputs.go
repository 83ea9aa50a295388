// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"strings"

	"github.com/pdiddy/zeppelin2jupyter/pkg/types"
)

// Zeppelin renders inline PNG plots as this exact HTML fragment with the
// base64 payload between prefix and suffix.
const (
	ImagePrefix = "<div style='width:auto;height:auto'><img src=data:image/png;base64,"
	ImageSuffix = " style='width=auto;height:auto'><div>\n"
)

// streamStdout is the stream name used for TEXT results.
const streamStdout = "stdout"

// MapOutputs converts paragraph result messages into cell outputs, in order.
// TEXT messages become stdout streams and HTML messages holding an inline
// PNG become display data. Every other message is dropped.
func MapOutputs(msgs []types.ResultMessage) []types.Output {
	outputs, _ := mapOutputs(msgs)
	return outputs
}

// mapOutputs is MapOutputs that also reports how many messages were dropped.
func mapOutputs(msgs []types.ResultMessage) ([]types.Output, int) {
	outputs := make([]types.Output, 0, len(msgs))
	dropped := 0
	for _, m := range msgs {
		out, ok := mapMessage(m)
		if !ok {
			dropped++
			continue
		}
		outputs = append(outputs, out)
	}
	return outputs, dropped
}

func mapMessage(m types.ResultMessage) (types.Output, bool) {
	switch m.Type {
	case types.MessageText:
		return types.StreamOutput{Name: streamStdout, Text: SplitLines(m.Data)}, true
	case types.MessageHTML:
		png, ok := imagePayload(m.Data)
		if !ok {
			return nil, false
		}
		return types.DisplayDataOutput{PNG: png}, true
	default:
		return nil, false
	}
}

// imagePayload extracts the base64 payload from an inline-image fragment.
// Fragments too short to hold both markers do not match.
func imagePayload(html string) (string, bool) {
	rest, ok := strings.CutPrefix(html, ImagePrefix)
	if !ok {
		return "", false
	}
	return strings.CutSuffix(rest, ImageSuffix)
}
