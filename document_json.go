package arbor

import (
	"bytes"
	"encoding/json"
	"io"
	"sort"

	"github.com/pkg/errors"
)

// JSONDocument is a scene document in the textual encoding.
type JSONDocument struct {
	root map[string]any
}

// ParseJSON decodes data into a JSONDocument. The top-level value must be an
// object and nothing but whitespace may follow it.
func ParseJSON(data []byte) (*JSONDocument, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyDocument
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, errors.Wrap(err, "arbor: parse scene json")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("arbor: parse scene json: trailing data after the document")
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, errors.Errorf("arbor: scene json root is %T, want object", v)
	}
	return &JSONDocument{root: obj}, nil
}

// Root returns the top-level object.
func (d *JSONDocument) Root() Element {
	return jsonElement{obj: d.root}
}

// jsonElement wraps one decoded JSON object. A nil obj is a missing element.
type jsonElement struct {
	obj map[string]any
}

func (e jsonElement) Exists() bool { return e.obj != nil }
func (e jsonElement) Encoding() Encoding { return EncodingJSON }

func (e jsonElement) Lookup(key string) (Value, bool) {
	switch v := e.obj[key].(type) {
	case string:
		return StringValue(v), true
	case json.Number:
		return NumberValue(v.String()), true
	case bool:
		return BoolValue(v), true
	default:
		// nil, objects and arrays are not scalars
		return Value{}, false
	}
}

func (e jsonElement) Len(key string) int {
	arr, _ := e.obj[key].([]any)
	return len(arr)
}

func (e jsonElement) Child(key string, index int) Element {
	arr, _ := e.obj[key].([]any)
	if index < 0 || index >= len(arr) {
		return jsonElement{}
	}
	obj, _ := arr[index].(map[string]any)
	return jsonElement{obj: obj}
}

func (e jsonElement) Object(key string) Element {
	obj, _ := e.obj[key].(map[string]any)
	return jsonElement{obj: obj}
}

// Keys returns the field names sorted; encoding/json does not keep object
// order, so sorted order stands in for document order.
func (e jsonElement) Keys() []string {
	if e.obj == nil {
		return nil
	}
	keys := make([]string, 0, len(e.obj))
	for k := range e.obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
