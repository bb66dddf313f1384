package session

import (
	"bytes"
	"encoding/base64"
	"encoding/gob"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Codec converts attributes to and from a text-safe representation.
// Decode is fallible; backends turn a decode failure into empty attributes.
type Codec interface {
	Name() string
	Encode(attrs *Attributes) (string, error)
	Decode(text string) (*Attributes, error)
}

// entry is the persisted form of one attribute. Encoding a slice of entries
// keeps the output deterministic for a given attribute order.
type entry struct {
	Key   string
	Value any
}

// mapEntries carries a nested map[string]any in key order. Gob writes maps
// in iteration order, so nested maps are rewritten to this form on encode.
type mapEntries []entry

func init() {
	gob.Register(map[string]any{})
	gob.Register([]any{})
	gob.Register(mapEntries{})
}

// RegisterType makes a custom value type storable by GobCodec.
// It must be called before such values are encoded or decoded.
func RegisterType(v any) {
	gob.Register(v)
}

// GobCodec serializes attributes with encoding/gob under standard base64.
// Concrete Go types of registered values survive a round trip.
type GobCodec struct{}

func (GobCodec) Name() string { return "gob" }

func (GobCodec) Encode(attrs *Attributes) (string, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(toEntries(attrs)); err != nil {
		return "", errors.Join(ErrEncode, err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func (GobCodec) Decode(text string) (attrs *Attributes, err error) {
	if strings.TrimSpace(text) == "" {
		return &Attributes{}, nil
	}
	raw, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return nil, errors.Join(ErrDecode, err)
	}

	defer func() {
		if r := recover(); r != nil {
			attrs, err = nil, fmt.Errorf("%w: %v", ErrDecode, r)
		}
	}()

	var entries []entry
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&entries); err != nil {
		return nil, errors.Join(ErrDecode, err)
	}
	return fromEntries(entries), nil
}

// JSONCodec serializes attributes as an ordered JSON array under standard
// base64. Numbers decode as float64 and nested objects as map[string]any.
type JSONCodec struct{}

type jsonEntry struct {
	K string `json:"k"`
	V any    `json:"v"`
}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Encode(attrs *Attributes) (string, error) {
	entries := make([]jsonEntry, 0, attrs.Len())
	for k, v := range attrs.All() {
		entries = append(entries, jsonEntry{K: k, V: v})
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return "", errors.Join(ErrEncode, err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

func (JSONCodec) Decode(text string) (*Attributes, error) {
	if strings.TrimSpace(text) == "" {
		return &Attributes{}, nil
	}
	raw, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return nil, errors.Join(ErrDecode, err)
	}
	var entries []jsonEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, errors.Join(ErrDecode, err)
	}
	attrs := &Attributes{}
	for _, e := range entries {
		attrs.Set(e.K, e.V)
	}
	return attrs, nil
}

// CodecByName resolves "gob" (also the empty name) or "json".
func CodecByName(name string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "gob":
		return GobCodec{}, nil
	case "json":
		return JSONCodec{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}
}

func toEntries(attrs *Attributes) []entry {
	entries := make([]entry, 0, attrs.Len())
	for k, v := range attrs.All() {
		entries = append(entries, entry{Key: k, Value: canonical(v)})
	}
	return entries
}

func fromEntries(entries []entry) *Attributes {
	attrs := &Attributes{}
	for _, e := range entries {
		attrs.Set(e.Key, restore(e.Value))
	}
	return attrs
}

func canonical(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(mapEntries, 0, len(val))
		for _, k := range slices.Sorted(maps.Keys(val)) {
			out = append(out, entry{Key: k, Value: canonical(val[k])})
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = canonical(item)
		}
		return out
	default:
		return v
	}
}

func restore(v any) any {
	switch val := v.(type) {
	case mapEntries:
		out := make(map[string]any, len(val))
		for _, e := range val {
			out[e.Key] = restore(e.Value)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = restore(item)
		}
		return out
	default:
		return v
	}
}
