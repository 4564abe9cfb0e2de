// Package codec centralizes shape and query encoding.
//
// Shapes travel as a tagged JSON envelope so that files holding mixed
// geometry (query sets, fixtures) decode back into concrete geom types.
// The raw binary key layout lives in package geom (MarshalBinary).
package codec

import "github.com/cockroachdb/errors"

// ErrUnknownCodec is returned by Lookup for an unknown codec name.
var ErrUnknownCodec = errors.New("unknown codec")

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "json-strict":
		return JSON{Strict: true}, true
	case "go-json":
		return GoJSON{}, true
	case "go-json-strict":
		return GoJSON{Strict: true}, true
	default:
		return nil, false
	}
}

// Lookup is ByName returning an error for unknown names.
func Lookup(name string) (Codec, error) {
	c, ok := ByName(name)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownCodec, "%q", name)
	}
	return c, nil
}
