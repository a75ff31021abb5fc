package arbor

import (
	"io/fs"
	"strconv"

	"github.com/pkg/errors"
)

// ClassComAttribute is the registered name of ComAttribute.
const ClassComAttribute = "CCComAttribute"

// ComAttribute is a typed key/value store attached to a node. Its initial
// contents come from the JSON file named by the descriptor's fileData; values
// set at runtime shadow the file.
type ComAttribute struct {
	ComponentBase
	file   string
	data   Element
	values map[string]Value
}

// NewComAttribute returns an empty attribute component.
func NewComAttribute() *ComAttribute {
	c := &ComAttribute{values: make(map[string]Value)}
	c.className = ClassComAttribute
	return c
}

// Deserialize loads the attribute file, if the descriptor names one.
func (c *ComAttribute) Deserialize(p *Payload) bool {
	el := p.Element
	c.SetName(GetString(el, keyName, ""))
	c.file = GetString(el.Object(keyFileData), keyPath, "")
	if c.file == "" {
		return true
	}
	if err := c.load(p.Assets()); err != nil {
		logger := p.Logger()
		logger.Warn().Err(err).Str("file", c.file).Msg("attribute file not loaded")
		return false
	}
	return true
}

func (c *ComAttribute) load(fsys fs.FS) error {
	if fsys == nil {
		return ErrNoAssets
	}
	data, err := fs.ReadFile(fsys, c.file)
	if err != nil {
		return errors.Wrapf(err, "arbor: read attributes %s", c.file)
	}
	doc, err := ParseJSON(data)
	if err != nil {
		return err
	}
	c.data = doc.Root()
	return nil
}

// File returns the attribute file the component was loaded from.
func (c *ComAttribute) File() string {
	return c.file
}

func (c *ComAttribute) lookup(key string) (Value, bool) {
	if v, ok := c.values[key]; ok {
		return v, true
	}
	if c.data == nil {
		return Value{}, false
	}
	return c.data.Lookup(key)
}

// Has reports whether key has a value.
func (c *ComAttribute) Has(key string) bool {
	_, ok := c.lookup(key)
	return ok
}

// Int returns the integer stored under key, or def.
func (c *ComAttribute) Int(key string, def int) int {
	if v, ok := c.lookup(key); ok {
		if i, ok := v.Int(); ok {
			return i
		}
	}
	return def
}

// Float returns the number stored under key, or def.
func (c *ComAttribute) Float(key string, def float64) float64 {
	if v, ok := c.lookup(key); ok {
		if f, ok := v.Float(); ok {
			return f
		}
	}
	return def
}

// Bool returns the boolean stored under key, or def.
func (c *ComAttribute) Bool(key string, def bool) bool {
	if v, ok := c.lookup(key); ok {
		if b, ok := v.Bool(); ok {
			return b
		}
	}
	return def
}

// String returns the text stored under key, or def.
func (c *ComAttribute) String(key, def string) string {
	if v, ok := c.lookup(key); ok {
		return v.String()
	}
	return def
}

// SetInt stores an integer under key.
func (c *ComAttribute) SetInt(key string, v int) {
	c.values[key] = NumberValue(strconv.Itoa(v))
}

// SetFloat stores a number under key.
func (c *ComAttribute) SetFloat(key string, v float64) {
	c.values[key] = NumberValue(strconv.FormatFloat(v, 'g', -1, 64))
}

// SetBool stores a boolean under key.
func (c *ComAttribute) SetBool(key string, v bool) {
	c.values[key] = BoolValue(v)
}

// SetString stores text under key.
func (c *ComAttribute) SetString(key, v string) {
	c.values[key] = StringValue(v)
}
