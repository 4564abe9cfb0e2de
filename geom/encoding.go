package geom

import (
	"encoding/binary"
	"math"

	"github.com/cockroachdb/errors"
)

const (
	// PointKeySize is the size of a raw point key: three float64.
	PointKeySize = 3 * 8
	// BoxKeySize is the size of a raw box key: low then high corner.
	BoxKeySize = 2 * PointKeySize
)

// ErrKeySize is returned when decoding a raw key of the wrong length.
var ErrKeySize = errors.New("geom: invalid raw key size")

// MarshalBinary encodes p as three little-endian float64 (x, y, z).
func (p Point) MarshalBinary() ([]byte, error) {
	return p.appendRaw(make([]byte, 0, PointKeySize)), nil
}

// UnmarshalBinary decodes a raw point key.
func (p *Point) UnmarshalBinary(data []byte) error {
	if len(data) != PointKeySize {
		return errors.Wrapf(ErrKeySize, "point key: got %d bytes, want %d", len(data), PointKeySize)
	}
	*p = readPoint(data)
	return nil
}

// MarshalBinary encodes b as six little-endian float64, low corner first.
func (b Box) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 0, BoxKeySize)
	buf = b.Low.appendRaw(buf)
	return b.High.appendRaw(buf), nil
}

// UnmarshalBinary decodes a raw box key.
func (b *Box) UnmarshalBinary(data []byte) error {
	if len(data) != BoxKeySize {
		return errors.Wrapf(ErrKeySize, "box key: got %d bytes, want %d", len(data), BoxKeySize)
	}
	b.Low = readPoint(data[:PointKeySize])
	b.High = readPoint(data[PointKeySize:])
	return nil
}

func (p Point) appendRaw(buf []byte) []byte {
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(p.X))
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(p.Y))
	return binary.LittleEndian.AppendUint64(buf, math.Float64bits(p.Z))
}

func readPoint(data []byte) Point {
	return Point{
		X: math.Float64frombits(binary.LittleEndian.Uint64(data[0:])),
		Y: math.Float64frombits(binary.LittleEndian.Uint64(data[8:])),
		Z: math.Float64frombits(binary.LittleEndian.Uint64(data[16:])),
	}
}
