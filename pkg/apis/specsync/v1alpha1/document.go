package v1alpha1

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// DocumentKind tags the variant held by a Document.
type DocumentKind int

const (
	DocumentUnit DocumentKind = iota
	DocumentBool
	DocumentNumber
	DocumentString
	DocumentSequence
	DocumentMapping
)

func (k DocumentKind) String() string {
	switch k {
	case DocumentUnit:
		return "unit"
	case DocumentBool:
		return "bool"
	case DocumentNumber:
		return "number"
	case DocumentString:
		return "string"
	case DocumentSequence:
		return "sequence"
	case DocumentMapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// Document is a generic recursive value used for configuration payloads
// that specsync carries without interpreting. The zero value is Unit.
type Document struct {
	kind DocumentKind
	b    bool
	n    float64
	s    string
	seq  []Document
	m    map[string]Document
}

func Unit() Document { return Document{} }
func Bool(b bool) Document { return Document{kind: DocumentBool, b: b} }
func Number(n float64) Document { return Document{kind: DocumentNumber, n: n} }
func String(s string) Document { return Document{kind: DocumentString, s: s} }
func Sequence(items ...Document) Document {
	return Document{kind: DocumentSequence, seq: append([]Document{}, items...)}
}

// Mapping builds a mapping Document. A nil map yields an empty mapping.
func Mapping(m map[string]Document) Document {
	out := make(map[string]Document, len(m))
	for k, v := range m {
		out[k] = v
	}
	return Document{kind: DocumentMapping, m: out}
}

func (d Document) Kind() DocumentKind { return d.kind }
func (d Document) IsUnit() bool { return d.kind == DocumentUnit }
func (d Document) IsMapping() bool { return d.kind == DocumentMapping }

// Items returns the elements of a sequence, or nil for other variants.
func (d Document) Items() []Document {
	if d.kind != DocumentSequence {
		return nil
	}
	return d.seq
}

// Field looks up key in a mapping.
func (d Document) Field(key string) (Document, bool) {
	if d.kind != DocumentMapping {
		return Document{}, false
	}
	v, ok := d.m[key]
	return v, ok
}

// Keys returns the sorted keys of a mapping.
func (d Document) Keys() []string {
	keys := make([]string, 0, len(d.m))
	for k := range d.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Value converts the document into plain Go values
// (nil, bool, float64, string, []any, map[string]any).
func (d Document) Value() any {
	switch d.kind {
	case DocumentBool:
		return d.b
	case DocumentNumber:
		return d.n
	case DocumentString:
		return d.s
	case DocumentSequence:
		out := make([]any, len(d.seq))
		for i, item := range d.seq {
			out[i] = item.Value()
		}
		return out
	case DocumentMapping:
		out := make(map[string]any, len(d.m))
		for k, v := range d.m {
			out[k] = v.Value()
		}
		return out
	default:
		return nil
	}
}

// FromValue builds a Document from plain Go values as produced by
// encoding/json (with or without UseNumber).
func FromValue(v any) (Document, error) {
	switch x := v.(type) {
	case nil:
		return Unit(), nil
	case bool:
		return Bool(x), nil
	case float64:
		return Number(x), nil
	case int:
		return Number(float64(x)), nil
	case int64:
		return Number(float64(x)), nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return Document{}, fmt.Errorf("invalid number %q: %w", x, err)
		}
		return Number(f), nil
	case string:
		return String(x), nil
	case []any:
		items := make([]Document, len(x))
		for i, item := range x {
			d, err := FromValue(item)
			if err != nil {
				return Document{}, err
			}
			items[i] = d
		}
		return Document{kind: DocumentSequence, seq: items}, nil
	case map[string]any:
		m := make(map[string]Document, len(x))
		for k, item := range x {
			d, err := FromValue(item)
			if err != nil {
				return Document{}, err
			}
			m[k] = d
		}
		return Document{kind: DocumentMapping, m: m}, nil
	default:
		return Document{}, fmt.Errorf("unsupported document value of type %T", v)
	}
}

// DeepCopy returns a copy that shares no mutable state.
func (d Document) DeepCopy() Document {
	switch d.kind {
	case DocumentSequence:
		items := make([]Document, len(d.seq))
		for i, item := range d.seq {
			items[i] = item.DeepCopy()
		}
		return Document{kind: DocumentSequence, seq: items}
	case DocumentMapping:
		m := make(map[string]Document, len(d.m))
		for k, v := range d.m {
			m[k] = v.DeepCopy()
		}
		return Document{kind: DocumentMapping, m: m}
	default:
		return d
	}
}

// MarshalJSON implements json.Marshaler.
func (d Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Value())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Document) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	doc, err := FromValue(v)
	if err != nil {
		return err
	}
	*d = doc
	return nil
}

func (d Document) String() string {
	data, err := json.Marshal(d.Value())
	if err != nil {
		return fmt.Sprintf("<%s>", d.kind)
	}
	return string(data)
}
