package arbor

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"sort"

	"github.com/pkg/errors"
)

// EncodeBinary converts a JSON scene document into the binary encoding.
//
// Node and component descriptors are written in their fixed field order:
// every layout field is present at its ordinal, absent ones filled with the
// layout default, followed by the remaining keys in sorted order. Numbers keep
// their JSON literal text; booleans become "1" or "0".
func EncodeBinary(doc *JSONDocument) ([]byte, error) {
	if doc == nil || doc.root == nil {
		return nil, ErrEmptyDocument
	}
	w := &binaryWriter{index: make(map[string]uint32)}
	w.records = append(w.records, binaryRecord{Name: noString, Value: noString})
	w.fillObject(0, doc.root, nodeLayout)
	return w.bytes()
}

type binaryWriter struct {
	records []binaryRecord
	strings []string
	index   map[string]uint32
}

func (w *binaryWriter) intern(s string) uint32 {
	if i, ok := w.index[s]; ok {
		return i
	}
	i := uint32(len(w.strings))
	w.strings = append(w.strings, s)
	w.index[s] = i
	return i
}

// fillObject allocates the field block of record idx and writes obj into it.
func (w *binaryWriter) fillObject(idx int, obj map[string]any, layout *fieldLayout) {
	type entry struct {
		key   string
		value any
	}
	var entries []entry
	if layout != nil {
		for _, f := range layout.fields {
			v, ok := obj[f.name]
			if !ok {
				if f.array {
					v = []any{}
				} else {
					v = json.Number(f.def)
					if f.def == "" {
						v = ""
					}
				}
			}
			entries = append(entries, entry{f.name, v})
		}
	}
	extra := make([]string, 0, len(obj))
	for k := range obj {
		if layout != nil {
			if _, ok := layout.index[k]; ok {
				continue
			}
		}
		extra = append(extra, k)
	}
	sort.Strings(extra)
	for _, k := range extra {
		entries = append(entries, entry{k, obj[k]})
	}

	first := len(w.records)
	for range entries {
		w.records = append(w.records, binaryRecord{Name: noString, Value: noString})
	}
	w.records[idx].Value = objectValue
	w.records[idx].First = uint32(first)
	w.records[idx].Count = uint32(len(entries))
	for i, e := range entries {
		w.records[first+i].Name = w.intern(e.key)
		w.fillValue(first+i, e.key, e.value, nil)
	}
}

// fillArray allocates the element block of record idx. Object entries use
// the layout implied by the array's key.
func (w *binaryWriter) fillArray(idx int, key string, arr []any) {
	first := len(w.records)
	for range arr {
		w.records = append(w.records, binaryRecord{Name: noString, Value: noString})
	}
	w.records[idx].Value = arrayValue
	w.records[idx].First = uint32(first)
	w.records[idx].Count = uint32(len(arr))
	elemLayout := childLayout(key)
	for i, v := range arr {
		w.fillValue(first+i, "", v, elemLayout)
	}
}

func (w *binaryWriter) fillValue(idx int, key string, v any, layout *fieldLayout) {
	switch v := v.(type) {
	case map[string]any:
		w.fillObject(idx, v, layout)
	case []any:
		w.fillArray(idx, key, v)
	case string:
		w.records[idx].Value = w.intern(v)
	case json.Number:
		w.records[idx].Value = w.intern(v.String())
	case bool:
		if v {
			w.records[idx].Value = w.intern("1")
		} else {
			w.records[idx].Value = w.intern("0")
		}
	default:
		// null
		w.records[idx].Value = noString
	}
}

func (w *binaryWriter) bytes() ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(binaryMagic[:])
	hdr := struct {
		Revision   uint16
		VersionLen uint16
	}{binaryRevision, uint16(len(Version))}
	if err := binary.Write(&buf, binary.LittleEndian, hdr); err != nil {
		return nil, errors.Wrap(err, "arbor: encode header")
	}
	buf.WriteString(Version)
	counts := struct {
		Records uint32
		Strings uint32
	}{uint32(len(w.records)), uint32(len(w.strings))}
	if err := binary.Write(&buf, binary.LittleEndian, counts); err != nil {
		return nil, errors.Wrap(err, "arbor: encode table sizes")
	}
	if err := binary.Write(&buf, binary.LittleEndian, w.records); err != nil {
		return nil, errors.Wrap(err, "arbor: encode records")
	}
	for _, s := range w.strings {
		if err := binary.Write(&buf, binary.LittleEndian, uint32(len(s))); err != nil {
			return nil, errors.Wrap(err, "arbor: encode strings")
		}
		buf.WriteString(s)
	}
	return buf.Bytes(), nil
}
