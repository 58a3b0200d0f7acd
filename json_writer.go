package stockledger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// jsonObjectWriter helps construct a JSON object with a specific field order.
// Its zero value is ready to use.
//
// encoding/json marshals struct fields in declaration order but maps in key
// order; the ledger file format wants a stable, human-scannable field order
// ("id" first, "date" last but one) regardless of how the value is assembled,
// hence this small writer.
type jsonObjectWriter struct {
	bytes.Buffer
	err error
}

// Embed appends the fields from a raw JSON object (provided as a byte slice)
// into the current JSON object being built. It strips the outer braces of the
// embedded JSON, effectively merging its contents.
func (w *jsonObjectWriter) Embed(rawJSON []byte) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	trimmed := bytes.TrimSpace(rawJSON)
	if len(trimmed) > 2 && trimmed[0] == '{' && trimmed[len(trimmed)-1] == '}' {
		trimmed = trimmed[1 : len(trimmed)-1]
	}
	if len(trimmed) > 0 {
		w.Write(trimmed)
		w.WriteString(",")
	}
	return w
}

// EmbedFrom marshals the given Go value into a JSON object and then embeds
// its fields into the current JSON object being built.
func (w *jsonObjectWriter) EmbedFrom(v any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	rawJSON, err := json.Marshal(v)
	if err != nil {
		w.err = fmt.Errorf("failed to marshal for embedding: %w", err)
		return w
	}
	return w.Embed(rawJSON)
}

// Append adds a single "key": value pair to the object.
func (w *jsonObjectWriter) Append(key string, value any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	valueJSON, err := json.Marshal(value)
	if err != nil {
		w.err = fmt.Errorf("failed to marshal value for key %q: %w", key, err)
		return w
	}
	keyJSON, _ := json.Marshal(key)
	w.Write(keyJSON)
	w.WriteString(":")
	w.Write(valueJSON)
	w.WriteString(",")
	return w
}

// Optional adds a "key": value pair only if the value is not the zero value
// of its type (mirroring the `omitempty` tag behavior).
func (w *jsonObjectWriter) Optional(key string, value any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	if value == nil || reflect.ValueOf(value).IsZero() {
		return w
	}
	return w.Append(key, value)
}

// MarshalJSON terminates and returns the object built so far.
func (w *jsonObjectWriter) MarshalJSON() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	content := bytes.TrimRight(w.Bytes(), ",")
	var out bytes.Buffer
	out.WriteString("{")
	out.Write(content)
	out.WriteString("}")
	return out.Bytes(), nil
}
