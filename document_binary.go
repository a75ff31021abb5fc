package arbor

import (
	"bytes"
	"encoding/binary"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Load-level errors. The assembler itself never fails; these are returned
// before assembly starts.
var (
	ErrEmptyDocument   = errors.New("arbor: empty scene document")
	ErrBadMagic        = errors.New("arbor: not a binary scene document")
	ErrVersionMismatch = errors.New("arbor: binary scene version mismatch")
	ErrCorrupt         = errors.New("arbor: corrupt binary scene document")
)

// binaryMagic opens every binary scene document.
var binaryMagic = [4]byte{'A', 'R', 'B', 'N'}

// binaryRevision is the container layout revision (record/string tables).
// Field ordinals are versioned separately through Version.
const binaryRevision uint16 = 1

// Reserved Value slots. A record's Value is either a string table index or
// one of these markers; noString also marks a record without a name.
const (
	noString    = ^uint32(0) // null
	objectValue = noString - 1
	arrayValue  = noString - 2
)

// binaryRecord is one entry of the node array. Containers (objects and
// arrays) own the count records starting at first.
type binaryRecord struct {
	Name  uint32
	Value uint32
	Count uint32
	First uint32
}

const binaryRecordSize = 16

// layoutField is one fixed slot of a record layout.
type layoutField struct {
	name  string
	def   string
	array bool
}

// fieldLayout fixes the ordinal of each well-known field for one kind of
// record. Readers address these fields by position, not by name: a document
// whose writer used different ordinals reads those fields as missing or wrong.
// Keeping the ordinals stable is what Version guards.
type fieldLayout struct {
	fields []layoutField
	index  map[string]int
}

func newFieldLayout(fields ...layoutField) *fieldLayout {
	l := &fieldLayout{fields: fields, index: make(map[string]int, len(fields))}
	for i, f := range fields {
		l.index[f.name] = i
	}
	return l
}

// nodeLayout is the ordinal layout of a node descriptor.
var nodeLayout = newFieldLayout(
	layoutField{name: keyName},
	layoutField{name: keyClassName},
	layoutField{name: keyObjectTag, def: "-1"},
	layoutField{name: keyX, def: "0"},
	layoutField{name: keyY, def: "0"},
	layoutField{name: keyVisible, def: "1"},
	layoutField{name: keyZOrder, def: "0"},
	layoutField{name: keyScaleX, def: "1"},
	layoutField{name: keyScaleY, def: "1"},
	layoutField{name: keyRotation, def: "0"},
	layoutField{name: "layerindex", def: "0"},
	layoutField{name: "customProperty"},
	layoutField{name: keyChildren, array: true},
	layoutField{name: keyComponents, array: true},
)

// componentLayout is the ordinal layout of a component descriptor. Fields
// past the layout are component specific and are found by name.
var componentLayout = newFieldLayout(
	layoutField{name: keyName},
	layoutField{name: keyClassName},
)

// childLayout returns the layout of the entries of the array stored under key.
func childLayout(key string) *fieldLayout {
	switch key {
	case keyChildren:
		return nodeLayout
	case keyComponents:
		return componentLayout
	default:
		return nil
	}
}

// BinaryDocument is a scene document in the compact encoding: a flat record
// array addressed by index plus a string table.
type BinaryDocument struct {
	version string
	records []binaryRecord
	strings []string
}

// DecodeBinary parses a binary scene document. It checks the container
// structure (bounds, child ordering) and the major version; it does not check
// that fields sit at their expected ordinals.
func DecodeBinary(data []byte) (*BinaryDocument, error) {
	if len(data) == 0 {
		return nil, ErrEmptyDocument
	}
	r := bytes.NewReader(data)

	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil || magic != binaryMagic {
		return nil, ErrBadMagic
	}
	var hdr struct {
		Revision   uint16
		VersionLen uint16
	}
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, errors.Wrap(ErrCorrupt, "header")
	}
	if hdr.Revision != binaryRevision {
		return nil, errors.Wrapf(ErrVersionMismatch, "container revision %d", hdr.Revision)
	}
	version := make([]byte, hdr.VersionLen)
	if _, err := io.ReadFull(r, version); err != nil {
		return nil, errors.Wrap(ErrCorrupt, "version")
	}
	if majorVersion(string(version)) != majorVersion(Version) {
		return nil, errors.Wrapf(ErrVersionMismatch, "document %q, reader %q", version, Version)
	}

	var counts struct {
		Records uint32
		Strings uint32
	}
	if err := binary.Read(r, binary.LittleEndian, &counts); err != nil {
		return nil, errors.Wrap(ErrCorrupt, "table sizes")
	}
	if counts.Records == 0 || uint64(counts.Records)*binaryRecordSize > uint64(r.Len()) {
		return nil, errors.Wrapf(ErrCorrupt, "record count %d", counts.Records)
	}
	doc := &BinaryDocument{
		version: string(version),
		records: make([]binaryRecord, counts.Records),
	}
	if err := binary.Read(r, binary.LittleEndian, doc.records); err != nil {
		return nil, errors.Wrap(ErrCorrupt, "records")
	}
	// each string costs at least its 4-byte length prefix
	if uint64(counts.Strings)*4 > uint64(r.Len()) {
		return nil, errors.Wrapf(ErrCorrupt, "string count %d", counts.Strings)
	}
	doc.strings = make([]string, counts.Strings)
	for i := range doc.strings {
		var n uint32
		if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
			return nil, errors.Wrapf(ErrCorrupt, "string %d", i)
		}
		if uint64(n) > uint64(r.Len()) {
			return nil, errors.Wrapf(ErrCorrupt, "string %d length %d", i, n)
		}
		buf := make([]byte, n)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, errors.Wrapf(ErrCorrupt, "string %d", i)
		}
		doc.strings[i] = string(buf)
	}
	if err := doc.validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// validate checks string and child references. Children must come after
// their parent, which also rules out cycles, and every record has at most
// one parent, so the records form a tree.
func (d *BinaryDocument) validate() error {
	nStrings := uint32(len(d.strings))
	nRecords := uint64(len(d.records))
	owned := make([]bool, len(d.records))
	for i, rec := range d.records {
		if rec.Name != noString && rec.Name >= nStrings {
			return errors.Wrapf(ErrCorrupt, "record %d name", i)
		}
		container := rec.Value == objectValue || rec.Value == arrayValue
		if !container && rec.Value != noString && rec.Value >= nStrings {
			return errors.Wrapf(ErrCorrupt, "record %d value", i)
		}
		if i == 0 && rec.Value != objectValue {
			return errors.Wrap(ErrCorrupt, "root is not an object")
		}
		if rec.Count == 0 {
			continue
		}
		if !container {
			return errors.Wrapf(ErrCorrupt, "record %d is a scalar with children", i)
		}
		if uint64(rec.First) <= uint64(i) || uint64(rec.First)+uint64(rec.Count) > nRecords {
			return errors.Wrapf(ErrCorrupt, "record %d children", i)
		}
		for c := rec.First; c < rec.First+rec.Count; c++ {
			if owned[c] {
				return errors.Wrapf(ErrCorrupt, "record %d has more than one parent", c)
			}
			owned[c] = true
		}
	}
	return nil
}

// Version returns the format version the document was written with.
func (d *BinaryDocument) Version() string {
	return d.version
}

// Root returns the top-level node descriptor.
func (d *BinaryDocument) Root() Element {
	return binaryElement{doc: d, rec: 0, layout: nodeLayout}
}

func (d *BinaryDocument) str(idx uint32) string {
	if idx == noString {
		return ""
	}
	return d.strings[idx]
}

func majorVersion(v string) string {
	major, _, _ := strings.Cut(v, ".")
	return major
}

// binaryElement is a record viewed as an object. rec < 0 is a missing element.
type binaryElement struct {
	doc    *BinaryDocument
	rec    int
	layout *fieldLayout
}

func (e binaryElement) missing() Element {
	return missingElement{enc: EncodingBinary}
}

func (e binaryElement) Exists() bool { return e.doc != nil && e.rec >= 0 }
func (e binaryElement) Encoding() Encoding { return EncodingBinary }

// field returns the record index holding key. Layout fields are read at
// their ordinal only; anything else is searched by name.
func (e binaryElement) field(key string) (int, bool) {
	if !e.Exists() {
		return -1, false
	}
	rec := e.doc.records[e.rec]
	if e.layout != nil {
		if ord, ok := e.layout.index[key]; ok {
			if ord >= int(rec.Count) {
				return -1, false
			}
			i := int(rec.First) + ord
			if e.doc.str(e.doc.records[i].Name) != key {
				return -1, false
			}
			return i, true
		}
	}
	for i := int(rec.First); i < int(rec.First+rec.Count); i++ {
		if e.doc.str(e.doc.records[i].Name) == key {
			return i, true
		}
	}
	return -1, false
}

func (e binaryElement) Lookup(key string) (Value, bool) {
	i, ok := e.field(key)
	if !ok {
		return Value{}, false
	}
	v := e.doc.records[i].Value
	if v >= uint32(len(e.doc.strings)) {
		return Value{}, false
	}
	return StringValue(e.doc.strings[v]), true
}

func (e binaryElement) Len(key string) int {
	i, ok := e.field(key)
	if !ok || e.doc.records[i].Value != arrayValue {
		return 0
	}
	return int(e.doc.records[i].Count)
}

func (e binaryElement) Child(key string, index int) Element {
	i, ok := e.field(key)
	if !ok {
		return e.missing()
	}
	arr := e.doc.records[i]
	if arr.Value != arrayValue || index < 0 || index >= int(arr.Count) {
		return e.missing()
	}
	child := int(arr.First) + index
	if e.doc.records[child].Value != objectValue {
		return e.missing()
	}
	return binaryElement{doc: e.doc, rec: child, layout: childLayout(key)}
}

func (e binaryElement) Object(key string) Element {
	i, ok := e.field(key)
	if !ok || e.doc.records[i].Value != objectValue {
		return e.missing()
	}
	return binaryElement{doc: e.doc, rec: i}
}

func (e binaryElement) Keys() []string {
	if !e.Exists() {
		return nil
	}
	rec := e.doc.records[e.rec]
	if rec.Value != objectValue {
		return nil
	}
	keys := make([]string, 0, rec.Count)
	for i := rec.First; i < rec.First+rec.Count; i++ {
		keys = append(keys, e.doc.str(e.doc.records[i].Name))
	}
	return keys
}
