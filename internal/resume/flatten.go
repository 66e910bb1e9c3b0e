package resume

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Flatten converts a decoded document map into a mapping from dotted path to
// leaf value. Arrays are written as one opaque leaf even when they contain
// objects, while singular nested objects are recursed into. The asymmetry is
// deliberate: it gives whole-array overwrite semantics on the store while
// still allowing partial patches of fields like personalDetails.email.
func Flatten(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	flattenInto(out, m, "")
	return out
}

func flattenInto(out map[string]any, m map[string]any, prefix string) {
	for key, value := range m {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		switch v := value.(type) {
		case []any:
			out[path] = v
		case map[string]any:
			flattenInto(out, v, path)
		default:
			out[path] = v
		}
	}
}

// Unflatten is the inverse of Flatten: dotted paths become nested objects and
// array leaves are restored as-is. It fails when a path segment collides with
// an existing leaf, which indicates a malformed patch rather than a document.
func Unflatten(flat map[string]any) (map[string]any, error) {
	out := make(map[string]any)
	for path, value := range flat {
		parts := strings.Split(path, ".")
		node := out
		for _, part := range parts[:len(parts)-1] {
			child, ok := node[part]
			if !ok {
				next := make(map[string]any)
				node[part] = next
				node = next
				continue
			}
			next, ok := child.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("path %q collides with existing leaf at %q", path, part)
			}
			node = next
		}
		node[parts[len(parts)-1]] = value
	}
	return out, nil
}

// ToMap converts the typed document to its decoded-JSON map form, the shape
// Flatten and the schema validator operate on.
func (d Document) ToMap() (map[string]any, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return m, nil
}

// FromMap converts a decoded-JSON map back into a typed document.
func FromMap(m map[string]any) (Document, error) {
	raw, err := json.Marshal(m)
	if err != nil {
		return Document{}, fmt.Errorf("failed to encode document map: %w", err)
	}
	var d Document
	if err := json.Unmarshal(raw, &d); err != nil {
		return Document{}, fmt.Errorf("failed to decode document map: %w", err)
	}
	return d, nil
}

// Flattened is a convenience for the save path: the whole document, plus any
// transient style overrides, as a dotted-path patch.
func (d Document) Flattened() (map[string]any, error) {
	m, err := d.ToMap()
	if err != nil {
		return nil, err
	}
	return Flatten(m), nil
}
