package strategy

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/geo3d/geom"
)

func TestMakeDecode(t *testing.T) {
	tests := []struct {
		number Number
		kind   geom.Kind
		op     Operator
	}{
		{1, geom.KindPoint, Left},
		{17, geom.KindPoint, Distance},
		{28, geom.KindLseg, ContainedBy},
		{43, geom.KindLine, Overlap},
		{66, geom.KindBox, Same},
		{87, geom.KindPath, Contains},
		{116, geom.KindPolygon, OverBack},
		{135, geom.KindSphere, Back},
	}

	for _, tt := range tests {
		t.Run(tt.number.String(), func(t *testing.T) {
			assert.Equal(t, tt.number, Make(tt.kind, tt.op))

			kind, op, err := tt.number.Decode()
			require.NoError(t, err)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.op, op)
		})
	}
}

func TestDecodeInvalid(t *testing.T) {
	for _, n := range []Number{-1, 0, 18, 19, 20, 140, 141, 1000} {
		_, _, err := n.Decode()
		require.Error(t, err, "number %d", n)
		assert.True(t, errors.Is(err, ErrInvalidStrategy))
	}
}

func TestOperator(t *testing.T) {
	assert.False(t, Operator(0).Valid())
	assert.True(t, Distance.Valid())
	assert.False(t, (Distance + 1).Valid())

	assert.True(t, OverBack.Directional())
	assert.False(t, Overlap.Directional())
	assert.False(t, Distance.Directional())

	assert.Equal(t, "<<", Left.String())
	assert.Equal(t, "Operator(99)", Operator(99).String())
	assert.Equal(t, "&& box3D", Make(geom.KindBox, Overlap).String())
}

func TestParseOperator(t *testing.T) {
	for op := Left; op <= NumOperators; op++ {
		got, err := ParseOperator(op.String())
		require.NoError(t, err)
		assert.Equal(t, op, got)
	}

	_, err := ParseOperator("<=>")
	assert.True(t, errors.Is(err, ErrInvalidStrategy))
}

func TestUnsupported(t *testing.T) {
	err := Unsupported(geom.KindSphere, Same, "gist box3D")

	assert.True(t, errors.Is(err, ErrInvalidStrategy))

	var uoe *UnsupportedOperatorError
	require.True(t, errors.As(err, &uoe))
	assert.Equal(t, geom.KindSphere, uoe.Kind)
	assert.Equal(t, Same, uoe.Operator)
	assert.Contains(t, err.Error(), "~= on sphere")
}
