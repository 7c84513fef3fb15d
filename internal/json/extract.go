// Package json extracts JSON values embedded in script source.
//
// The content store is a JavaScript file that the website loads directly,
// so the collection lives inside a declaration such as
//
//	const allBlogs = [ ... ];
//
// surrounded by comments. This package finds the declaration and decodes
// exactly one JSON value after the '=' sign, ignoring whatever follows.
package json

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
)

// declPattern returns a pattern matching "const|let|var <name> =".
func declPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?:^|[\s;])(?:const|let|var)\s+` + regexp.QuoteMeta(name) + `\s*=\s*`)
}

// ExtractAssigned returns the raw JSON value assigned to the named variable.
//
// Limitations:
// - The value must be valid JSON (double-quoted keys, no trailing commas)
// - Only the first declaration of name is considered
func ExtractAssigned(src []byte, name string) (json.RawMessage, error) {
	loc := declPattern(name).FindIndex(src)
	if loc == nil {
		return nil, fmt.Errorf("no declaration of %q found", name)
	}

	dec := json.NewDecoder(bytes.NewReader(src[loc[1]:]))
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode value of %q: %w", name, err)
	}
	return raw, nil
}

// DecodeAssigned extracts the value assigned to name and unmarshals it into T.
func DecodeAssigned[T any](src []byte, name string) (T, error) {
	var result T
	raw, err := ExtractAssigned(src, name)
	if err != nil {
		return result, err
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return result, fmt.Errorf("failed to unmarshal %q: %w", name, err)
	}
	return result, nil
}

// MarshalIndent renders v as two-space indented JSON without HTML escaping,
// so markup in string values stays readable in the generated script.
func MarshalIndent(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
