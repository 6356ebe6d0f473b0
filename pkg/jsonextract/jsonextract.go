// Package jsonextract recovers a JSON object or array from model output that may be
// wrapped in prose or markdown fences. It tolerates noise around valid JSON and never
// tries to repair JSON that is itself broken.
package jsonextract

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// Shape is the expected top-level JSON kind
type Shape int

const (
	Object Shape = iota
	Array
)

// ErrNoJSON is returned by Decode when no JSON of the expected shape could be recovered
var ErrNoJSON = errors.New("no json found in text")

func (s Shape) brackets() (byte, byte) {
	if s == Array {
		return '[', ']'
	}
	return '{', '}'
}

func (s Shape) String() string {
	if s == Array {
		return "array"
	}
	return "object"
}

// Extract returns the JSON value of the given shape found in text.
// It first tries the whole text, then the span between the first opening bracket and
// the last closing bracket of that shape.
func Extract(text string, shape Shape) (json.RawMessage, bool) {
	open, closing := shape.brackets()

	trimmed := strings.TrimSpace(text)
	if len(trimmed) > 0 && trimmed[0] == open && json.Valid([]byte(trimmed)) {
		return json.RawMessage(trimmed), true
	}

	start := strings.IndexByte(trimmed, open)
	end := strings.LastIndexByte(trimmed, closing)
	if start < 0 || end <= start {
		return nil, false
	}

	candidate := []byte(trimmed[start : end+1])
	if !json.Valid(candidate) {
		return nil, false
	}
	return json.RawMessage(bytes.Clone(candidate)), true
}

// Decode extracts JSON of the given shape from text and unmarshals it into v
func Decode(text string, shape Shape, v any) error {
	raw, ok := Extract(text, shape)
	if !ok {
		return ErrNoJSON
	}
	return json.Unmarshal(raw, v)
}
