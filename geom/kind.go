package geom

import "fmt"

// Kind identifies the concrete type behind a Shape.
type Kind uint8

const (
	KindPoint Kind = iota
	KindLseg
	KindLine
	KindBox
	KindPath
	KindPolygon
	KindSphere
)

// NumKinds is the number of shape kinds.
const NumKinds = 7

func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point3D"
	case KindLseg:
		return "lseg3D"
	case KindLine:
		return "line3D"
	case KindBox:
		return "box3D"
	case KindPath:
		return "path3D"
	case KindPolygon:
		return "polygon3D"
	case KindSphere:
		return "sphere"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(k))
	}
}

// Valid reports whether k names a known shape kind.
func (k Kind) Valid() bool { return k < NumKinds }

// Shape is implemented by every geometric type in this package.
type Shape interface {
	// Kind returns the type tag of the shape.
	Kind() Kind
	// BoundingBox returns the smallest axis-aligned box enclosing the shape.
	// Unbounded shapes report infinite bounds.
	BoundingBox() Box
}

var (
	_ Shape = Point{}
	_ Shape = Box{}
	_ Shape = Lseg{}
	_ Shape = Line{}
	_ Shape = (*Path)(nil)
	_ Shape = (*Polygon)(nil)
	_ Shape = Sphere{}
)
