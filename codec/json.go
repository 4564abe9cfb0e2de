package codec

import (
	"bytes"
	"encoding/json"
)

// JSON is the standard-library JSON codec.
//
// NaN and infinite coordinates have no JSON representation; encoding a
// shape that holds one fails.
type JSON struct {
	// Strict rejects objects with fields the target does not declare, so a
	// misspelled envelope field ("radious") fails instead of decoding as 0.
	Strict bool
}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (c JSON) Unmarshal(data []byte, v any) error {
	if !c.Strict {
		return json.Unmarshal(data, v)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// Name returns the unique name of the codec ("json", or "json-strict").
func (c JSON) Name() string {
	if c.Strict {
		return "json-strict"
	}
	return "json"
}

// Default is the default codec used by the library.
var Default Codec = GoJSON{}
