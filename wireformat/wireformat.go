// Package wireformat implements the ABI-JSON binding: the byte encoding of
// messages, outcomes, block identity, and lifecycle events exchanged across
// the isolation boundary. The field names and value tokens here are the
// compatibility contract with the host and must not change.
//
// Binary payloads are embedded as padded standard base64. Metadata travels as
// an ordered sequence of [key, value] pairs; on decode, a later duplicate key
// overwrites an earlier one. Optional fields are omitted entirely when
// absent, never encoded as null.
package wireformat

import (
	"encoding/base64"
	"fmt"
	"sort"
	"strings"
)

// metaPairs is the wire form of metadata. Pair order is not significant for
// the ABI-JSON binding; the encoder sorts by key for deterministic output.
type metaPairs [][2]string

type messageWire struct {
	Kind string    `json:"kind"`
	Data string    `json:"data"`
	Meta metaPairs `json:"meta"`
}

type responseWire struct {
	Data string    `json:"data"`
	Meta metaPairs `json:"meta"`
}

type errorWire struct {
	Code    string    `json:"code"`
	Message string    `json:"message"`
	Meta    metaPairs `json:"meta"`
}

type resultWire struct {
	Action   string        `json:"action"`
	Response *responseWire `json:"response,omitempty"`
	Error    *errorWire    `json:"error,omitempty"`
}

type blockInfoWire struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	Interface    string   `json:"interface"`
	Summary      string   `json:"summary"`
	InstanceMode string   `json:"instance_mode"`
	AllowedModes []string `json:"allowed_modes"`
}

type lifecycleEventWire struct {
	Type string `json:"type"`
	Data string `json:"data"`
}

func metaToWire(meta map[string]string) metaPairs {
	pairs := make(metaPairs, 0, len(meta))
	for k, v := range meta {
		pairs = append(pairs, [2]string{k, v})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i][0] < pairs[j][0] })
	return pairs
}

// metaFromWire folds wire pairs into a key-unique mapping, last write wins.
// Returns nil for an empty pair list so decode(encode(x)) preserves nil maps.
func metaFromWire(pairs metaPairs) map[string]string {
	if len(pairs) == 0 {
		return nil
	}
	meta := make(map[string]string, len(pairs))
	for _, p := range pairs {
		meta[p[0]] = p[1]
	}
	return meta
}

func payloadToWire(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// payloadFromWire decodes a base64 payload, rejecting any input outside the
// standard alphabet rather than silently truncating. Line breaks are checked
// explicitly because Go's decoder strips them even in strict mode. An empty
// string is a zero-length payload.
func payloadFromWire(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	if strings.ContainsAny(s, "\r\n") {
		return nil, fmt.Errorf("invalid payload encoding: illegal whitespace")
	}
	data, err := base64.StdEncoding.Strict().DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid payload encoding: %w", err)
	}
	return data, nil
}
