package fcmp

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalOrder(t *testing.T) {
	nan := math.NaN()
	inf := math.Inf(1)

	tests := []struct {
		name       string
		a, b       float64
		eq, lt, le bool
	}{
		{"Equal", 1, 1, true, false, true},
		{"Less", 1, 2, false, true, true},
		{"Greater", 2, 1, false, false, false},
		{"NaNEqualsNaN", nan, nan, true, false, true},
		{"NaNAboveInf", inf, nan, false, true, true},
		{"NaNNotBelow", nan, inf, false, false, false},
		{"NegInf", math.Inf(-1), -1e308, false, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.eq, Eq(tt.a, tt.b))
			assert.Equal(t, !tt.eq, Ne(tt.a, tt.b))
			assert.Equal(t, tt.lt, Lt(tt.a, tt.b))
			assert.Equal(t, tt.le, Le(tt.a, tt.b))
			assert.Equal(t, tt.lt, Gt(tt.b, tt.a))
			assert.Equal(t, tt.le, Ge(tt.b, tt.a))
		})
	}
}

func TestCmpSortsNaNLast(t *testing.T) {
	vals := []float64{3, math.NaN(), -1, math.Inf(1), 0}
	sort.Slice(vals, func(i, j int) bool { return Cmp(vals[i], vals[j]) < 0 })

	assert.Equal(t, -1.0, vals[0])
	assert.Equal(t, 0.0, vals[1])
	assert.Equal(t, 3.0, vals[2])
	assert.True(t, math.IsInf(vals[3], 1))
	assert.True(t, math.IsNaN(vals[4]))
}

func TestMinMax(t *testing.T) {
	assert.Equal(t, 1.0, Min(1, 2))
	assert.Equal(t, 2.0, Max(1, 2))
	assert.True(t, math.IsNaN(Max(1, math.NaN())))
	assert.Equal(t, 1.0, Min(math.NaN(), 1))
}

func TestFuzzy(t *testing.T) {
	assert.True(t, FPeq(1, 1+Epsilon/2))
	assert.False(t, FPeq(1, 1+2*Epsilon))
	assert.True(t, FPeq(math.Inf(1), math.Inf(1)))
	assert.False(t, FPlt(1, 1+Epsilon/2))
	assert.True(t, FPlt(1, 1+2*Epsilon))
	assert.True(t, FPle(1+Epsilon/2, 1))
	assert.True(t, FPge(1, 1+Epsilon/2))
	assert.True(t, FPgt(1+2*Epsilon, 1))
	assert.True(t, FPzero(-Epsilon))

	nan := math.NaN()
	assert.False(t, FPeq(nan, nan))
	assert.False(t, FPne(nan, 1))
	assert.False(t, FPlt(nan, 1))
	assert.False(t, FPle(nan, 1))
	assert.False(t, FPgt(1, nan))
	assert.False(t, FPge(1, nan))
}
