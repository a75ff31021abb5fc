package arbor

import (
	"math"
	"strconv"
	"strings"
)

// Encoding identifies which document format an Element was read from.
type Encoding uint8

const (
	EncodingJSON   Encoding = iota // textual JSON value tree
	EncodingBinary                 // compact positional node array
)

func (e Encoding) String() string {
	if e == EncodingBinary {
		return "binary"
	}
	return "json"
}

// Document keys shared by both encodings.
const (
	keyName       = "name"
	keyClassName  = "classname"
	keyComponents = "components"
	keyChildren   = "gameobjects"
	keyFileData   = "fileData"
	keyPath       = "path"
)

// Element is one object in a scene document: a node descriptor, a component
// descriptor, or any nested object such as fileData. The reader, the property
// applier and every component are written against this interface only.
type Element interface {
	// Exists reports whether the element refers to an actual object. Lookups
	// on a missing element return nothing.
	Exists() bool
	// Encoding reports the format the element was read from.
	Encoding() Encoding
	// Lookup returns the scalar stored under key.
	Lookup(key string) (Value, bool)
	// Len returns the length of the array stored under key, or 0.
	Len(key string) int
	// Child returns element index of the array stored under key. The result
	// does not exist when the index is out of range or the entry is not an
	// object.
	Child(key string, index int) Element
	// Object returns the nested object stored under key.
	Object(key string) Element
	// Keys lists the element's field names. JSON elements list them sorted,
	// binary elements in stored order.
	Keys() []string
}

type valueKind uint8

const (
	kindString valueKind = iota
	kindNumber
	kindBool
)

// Value is a scalar read from a document. Binary documents only store text;
// JSON keeps numbers as their literal text and booleans as booleans.
type Value struct {
	kind valueKind
	text string
	b    bool
}

// StringValue, NumberValue and BoolValue build Values, mostly for tests and
// custom Element implementations.
func StringValue(s string) Value { return Value{kind: kindString, text: s} }
func NumberValue(lit string) Value { return Value{kind: kindNumber, text: lit} }
func BoolValue(b bool) Value { return Value{kind: kindBool, b: b} }

// String returns the value as text. Booleans render as "1" or "0", the same
// spelling the binary writer uses.
func (v Value) String() string {
	if v.kind == kindBool {
		if v.b {
			return "1"
		}
		return "0"
	}
	return v.text
}

// Float returns the value as a float64. NaN and infinities are not numeric.
func (v Value) Float() (float64, bool) {
	if v.kind == kindBool {
		if v.b {
			return 1, true
		}
		return 0, true
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v.text), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Int returns the value as an int. Fractional numbers are truncated; numbers
// outside the int range are not numeric.
func (v Value) Int() (int, bool) {
	if v.kind == kindBool {
		if v.b {
			return 1, true
		}
		return 0, true
	}
	s := strings.TrimSpace(v.text)
	if i, err := strconv.Atoi(s); err == nil {
		return i, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || f < float64(math.MinInt) || f >= -float64(math.MinInt) {
		return 0, false
	}
	return int(f), true
}

// Bool returns the value as a bool. Numbers are true when non-zero.
func (v Value) Bool() (bool, bool) {
	if v.kind == kindBool {
		return v.b, true
	}
	s := strings.TrimSpace(v.text)
	switch strings.ToLower(s) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	if i, ok := v.Int(); ok {
		return i != 0, true
	}
	return false, false
}

// --- Attribute reader ---

// GetString returns the text stored under key, or def.
func GetString(el Element, key, def string) string {
	if el == nil {
		return def
	}
	v, ok := el.Lookup(key)
	if !ok {
		return def
	}
	return v.String()
}

// GetInt returns the integer stored under key, or def when the key is missing
// or not numeric.
func GetInt(el Element, key string, def int) int {
	if el == nil {
		return def
	}
	v, ok := el.Lookup(key)
	if !ok {
		return def
	}
	if i, ok := v.Int(); ok {
		return i
	}
	return def
}

// GetFloat returns the number stored under key, or def.
func GetFloat(el Element, key string, def float64) float64 {
	if el == nil {
		return def
	}
	v, ok := el.Lookup(key)
	if !ok {
		return def
	}
	if f, ok := v.Float(); ok {
		return f
	}
	return def
}

// GetBool returns the boolean stored under key, or def.
func GetBool(el Element, key string, def bool) bool {
	if el == nil {
		return def
	}
	v, ok := el.Lookup(key)
	if !ok {
		return def
	}
	if b, ok := v.Bool(); ok {
		return b
	}
	return def
}

// ArrayCount returns the length of the array under key.
func ArrayCount(el Element, key string) int {
	if el == nil {
		return 0
	}
	return el.Len(key)
}

// SubElement returns entry index of the array under key.
func SubElement(el Element, key string, index int) Element {
	if el == nil {
		return missingElement{}
	}
	return el.Child(key, index)
}

// Exists reports whether el refers to an actual object.
func Exists(el Element) bool {
	return el != nil && el.Exists()
}

// missingElement is returned for lookups that found nothing.
type missingElement struct {
	enc Encoding
}

func (m missingElement) Exists() bool { return false }
func (m missingElement) Encoding() Encoding { return m.enc }
func (m missingElement) Lookup(string) (Value, bool) { return Value{}, false }
func (m missingElement) Len(string) int { return 0 }
func (m missingElement) Child(string, int) Element { return m }
func (m missingElement) Object(string) Element { return m }
func (m missingElement) Keys() []string { return nil }
