package codec

import (
	"github.com/cockroachdb/errors"

	"github.com/hupe1980/geo3d/geom"
	"github.com/hupe1980/geo3d/index"
	"github.com/hupe1980/geo3d/strategy"
)

var (
	// ErrUnknownKind is returned when an envelope names no shape kind.
	ErrUnknownKind = errors.New("unknown shape kind")

	// ErrMalformedShape is returned when an envelope has the wrong number of
	// points for its kind.
	ErrMalformedShape = errors.New("malformed shape")
)

// Envelope is the tagged JSON form of a shape.
//
//	{"kind":"point3D","points":[[1,2,3]]}
//	{"kind":"box3D","points":[[0,0,0],[1,1,1]]}
//	{"kind":"line3D","points":[[0,0,0]],"direction":[0,0,1]}
//	{"kind":"path3D","points":[[0,0,0],[1,0,0],[1,1,0]],"closed":true}
//	{"kind":"sphere","points":[[0,0,0]],"radius":2}
type Envelope struct {
	Kind      string       `json:"kind"`
	Points    [][3]float64 `json:"points"`
	Direction *[3]float64  `json:"direction,omitempty"`
	Closed    bool         `json:"closed,omitempty"`
	Radius    float64      `json:"radius,omitempty"`
}

func coords(p geom.Point) [3]float64 { return [3]float64{p.X, p.Y, p.Z} }

func point(c [3]float64) geom.Point { return geom.Pt(c[0], c[1], c[2]) }

func coordsAll(pts []geom.Point) [][3]float64 {
	out := make([][3]float64, len(pts))
	for i, p := range pts {
		out[i] = coords(p)
	}
	return out
}

// Wrap returns the envelope of s.
func Wrap(s geom.Shape) (Envelope, error) {
	if s == nil {
		return Envelope{}, errors.Wrap(ErrUnknownKind, "nil shape")
	}
	e := Envelope{Kind: s.Kind().String()}
	switch v := s.(type) {
	case geom.Point:
		e.Points = [][3]float64{coords(v)}
	case geom.Lseg:
		e.Points = [][3]float64{coords(v.A), coords(v.B)}
	case geom.Line:
		dir := coords(v.Dir)
		e.Points = [][3]float64{coords(v.P)}
		e.Direction = &dir
	case geom.Box:
		e.Points = [][3]float64{coords(v.Low), coords(v.High)}
	case *geom.Path:
		e.Points = coordsAll(v.Points)
		e.Closed = v.Closed
	case *geom.Polygon:
		e.Points = coordsAll(v.Points)
	case geom.Sphere:
		e.Points = [][3]float64{coords(v.Center)}
		e.Radius = v.Radius
	default:
		return Envelope{}, errors.Wrapf(ErrUnknownKind, "%T", s)
	}
	return e, nil
}

// ParseKind returns the kind named s (as printed by geom.Kind.String).
func ParseKind(s string) (geom.Kind, error) {
	for k := geom.Kind(0); k < geom.NumKinds; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownKind, "%q", s)
}

// Shape returns the shape held by e.
func (e Envelope) Shape() (geom.Shape, error) {
	kind, err := ParseKind(e.Kind)
	if err != nil {
		return nil, err
	}

	want := map[geom.Kind]int{
		geom.KindPoint:  1,
		geom.KindLseg:   2,
		geom.KindLine:   1,
		geom.KindBox:    2,
		geom.KindSphere: 1,
	}
	if n, ok := want[kind]; ok && len(e.Points) != n {
		return nil, errors.Wrapf(ErrMalformedShape, "%s needs %d points, got %d", kind, n, len(e.Points))
	}

	pts := make([]geom.Point, len(e.Points))
	for i, c := range e.Points {
		pts[i] = point(c)
	}

	switch kind {
	case geom.KindPoint:
		return pts[0], nil
	case geom.KindLseg:
		return geom.Lseg{A: pts[0], B: pts[1]}, nil
	case geom.KindLine:
		if e.Direction == nil {
			return nil, errors.Wrapf(ErrMalformedShape, "%s needs a direction", kind)
		}
		return geom.Line{P: pts[0], Dir: point(*e.Direction)}, nil
	case geom.KindBox:
		return geom.NewBox(pts[0], pts[1]), nil
	case geom.KindPath:
		if len(pts) == 0 {
			return nil, errors.Wrapf(ErrMalformedShape, "%s needs points", kind)
		}
		return geom.NewPath(e.Closed, pts...), nil
	case geom.KindPolygon:
		if len(pts) < 3 {
			return nil, errors.Wrapf(ErrMalformedShape, "%s needs at least 3 points, got %d", kind, len(pts))
		}
		return geom.NewPolygon(pts...), nil
	default:
		return geom.Sphere{Center: pts[0], Radius: e.Radius}, nil
	}
}

// MarshalShape encodes s as an envelope with c (Default when nil).
func MarshalShape(c Codec, s geom.Shape) ([]byte, error) {
	if c == nil {
		c = Default
	}
	e, err := Wrap(s)
	if err != nil {
		return nil, err
	}
	return c.Marshal(e)
}

// UnmarshalShape decodes an envelope with c (Default when nil).
func UnmarshalShape(c Codec, data []byte) (geom.Shape, error) {
	if c == nil {
		c = Default
	}
	var e Envelope
	if err := c.Unmarshal(data, &e); err != nil {
		return nil, errors.Wrapf(err, "codec %s", c.Name())
	}
	return e.Shape()
}

// QueryEnvelope is the JSON form of a search condition:
//
//	{"op":"&&","shape":{"kind":"box3D","points":[[0,0,0],[1,1,1]]}}
type QueryEnvelope struct {
	Op    string   `json:"op"`
	Shape Envelope `json:"shape"`
}

// Query returns the search condition held by q.
func (q QueryEnvelope) Query() (index.Query, error) {
	op, err := strategy.ParseOperator(q.Op)
	if err != nil {
		return index.Query{}, err
	}
	s, err := q.Shape.Shape()
	if err != nil {
		return index.Query{}, err
	}
	return index.NewQuery(op, s), nil
}

// UnmarshalQueries decodes a JSON array of query envelopes.
func UnmarshalQueries(c Codec, data []byte) ([]index.Query, error) {
	if c == nil {
		c = Default
	}
	var envs []QueryEnvelope
	if err := c.Unmarshal(data, &envs); err != nil {
		return nil, errors.Wrapf(err, "codec %s", c.Name())
	}
	out := make([]index.Query, len(envs))
	for i, e := range envs {
		q, err := e.Query()
		if err != nil {
			return nil, errors.Wrapf(err, "query %d", i)
		}
		out[i] = q
	}
	return out, nil
}
