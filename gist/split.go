package gist

import (
	"math"
	"slices"

	"github.com/cockroachdb/errors"

	"github.com/hupe1980/geo3d/geom"
	"github.com/hupe1980/geo3d/internal/fcmp"
)

// LimitRatio is the smallest share of entries the lesser group of a
// non-fallback split must exceed.
const LimitRatio = 0.3

// SplitVector describes how PickSplit divided its input. Left and Right hold
// 0-based indices into the input slice; together they cover every index
// exactly once.
type SplitVector struct {
	Left, Right []int

	LeftUnion, RightUnion geom.Box

	// Axis is the axis the split was chosen on, or -1 for a fallback split.
	Axis int
	// Fallback is set when no axis produced an acceptable ratio and the input
	// was bisected positionally.
	Fallback bool
}

type interval struct {
	lower, upper float64
}

// splitContext tracks the best split found so far.
type splitContext struct {
	entries  int
	bound    geom.Box
	first    bool
	axis     int
	ratio    float32
	overlap  float32
	rng      float64
	leftUp   float64
	rightLow float64
}

// considerSplit evaluates the split of axis with the right group starting at
// rightLower and the left group ending at leftUpper. minLeft entries must go
// left, maxLeft entries may.
func (c *splitContext) considerSplit(axis int, rightLower float64, minLeft int, leftUpper float64, maxLeft int) {
	var leftCount int
	switch {
	case minLeft >= (c.entries+1)/2:
		leftCount = minLeft
	case maxLeft <= c.entries/2:
		leftCount = maxLeft
	default:
		leftCount = c.entries / 2
	}
	rightCount := c.entries - leftCount

	ratio := float32(min(leftCount, rightCount)) / float32(c.entries)
	if ratio <= LimitRatio {
		return
	}

	rng := c.bound.Upper(axis) - c.bound.Lower(axis)
	overlap := float32((leftUpper - rightLower) / rng)

	selectThis := false
	switch {
	case c.first:
		selectThis = true
	case c.axis == axis:
		if overlap < c.overlap || (overlap == c.overlap && ratio > c.ratio) {
			selectThis = true
		}
	default:
		// Across axes only the non-negative part of the overlap is comparable;
		// ties go to the wider axis.
		if nonNegative(overlap) < nonNegative(c.overlap) ||
			(rng > c.rng && nonNegative(overlap) <= nonNegative(c.overlap)) {
			selectThis = true
		}
	}

	if selectThis {
		c.first = false
		c.axis = axis
		c.ratio = ratio
		c.overlap = overlap
		c.rng = rng
		c.leftUp = leftUpper
		c.rightLow = rightLower
	}
}

func nonNegative(v float32) float32 {
	if v > 0 {
		return v
	}
	return 0
}

// PickSplit divides keys into two groups with the double-sorting algorithm:
// for each axis it sweeps the entry intervals sorted by lower and by upper
// bound to enumerate the splits with minimal overlap, keeps the best one and
// then distributes the entries that fit either side by penalty.
func (s *Support) PickSplit(keys []geom.Box) (SplitVector, error) {
	n := len(keys)
	if n < 2 {
		return SplitVector{}, errors.Wrapf(ErrTooFewEntries, "got %d", n)
	}

	ctx := splitContext{entries: n, bound: geom.UnionAll(keys), first: true}

	byLower := make([]interval, n)
	byUpper := make([]interval, n)
	for axis := 0; axis < 3; axis++ {
		for i, k := range keys {
			byLower[i] = interval{lower: k.Lower(axis), upper: k.Upper(axis)}
		}
		copy(byUpper, byLower)
		slices.SortStableFunc(byLower, func(a, b interval) int {
			if c := fcmp.Cmp(a.lower, b.lower); c != 0 {
				return c
			}
			return fcmp.Cmp(a.upper, b.upper)
		})
		slices.SortStableFunc(byUpper, func(a, b interval) int {
			if c := fcmp.Cmp(a.upper, b.upper); c != 0 {
				return c
			}
			return fcmp.Cmp(a.lower, b.lower)
		})

		// Sweep the lower bound of the right group upwards, tracking the
		// smallest upper bound the left group can get away with.
		i1, i2 := 0, 0
		rightLower := byLower[i1].lower
		leftUpper := byUpper[i2].lower
		for {
			for i1 < n && fcmp.Eq(rightLower, byLower[i1].lower) {
				if fcmp.Lt(leftUpper, byLower[i1].upper) {
					leftUpper = byLower[i1].upper
				}
				i1++
			}
			if i1 >= n {
				break
			}
			rightLower = byLower[i1].lower

			for i2 < n && fcmp.Le(byUpper[i2].upper, leftUpper) {
				i2++
			}
			ctx.considerSplit(axis, rightLower, i1, leftUpper, i2)
		}

		// Sweep the upper bound of the left group downwards, tracking the
		// greatest lower bound the right group can start at.
		i1, i2 = n-1, n-1
		rightLower = byLower[i1].upper
		leftUpper = byUpper[i2].upper
		for {
			for i2 >= 0 && fcmp.Eq(leftUpper, byUpper[i2].upper) {
				if fcmp.Gt(rightLower, byUpper[i2].lower) {
					rightLower = byUpper[i2].lower
				}
				i2--
			}
			if i2 < 0 {
				break
			}
			leftUpper = byUpper[i2].upper

			for i1 >= 0 && fcmp.Ge(byLower[i1].lower, rightLower) {
				i1--
			}
			ctx.considerSplit(axis, rightLower, i1+1, leftUpper, i2+1)
		}
	}

	if ctx.first {
		v := fallbackSplit(keys)
		if s.logger != nil {
			s.logger.Debug("gist picksplit fell back to bisection", "opclass", s.opclass.String(), "entries", n)
		}
		return v, nil
	}

	return distribute(keys, &ctx), nil
}

type commonEntry struct {
	index int
	delta float64
}

// group accumulates the members and the union box of one side of a split.
type group struct {
	members []int
	union   geom.Box
}

func (g *group) place(i int, key geom.Box) {
	if len(g.members) == 0 {
		g.union = key
	} else {
		g.union = geom.Union(g.union, key)
	}
	g.members = append(g.members, i)
}

// distribute assigns every key to a side of the split chosen in ctx.
func distribute(keys []geom.Box, ctx *splitContext) SplitVector {
	n := len(keys)
	left := group{members: make([]int, 0, n)}
	right := group{members: make([]int, 0, n)}

	common := make([]commonEntry, 0, n)
	for i, k := range keys {
		lower, upper := k.Lower(ctx.axis), k.Upper(ctx.axis)
		if fcmp.Le(upper, ctx.leftUp) {
			if fcmp.Ge(lower, ctx.rightLow) {
				common = append(common, commonEntry{index: i})
			} else {
				left.place(i, k)
			}
		} else {
			// Entries that miss the left group always fit the right one.
			right.place(i, k)
		}
	}

	if len(common) > 0 {
		m := int(math.Ceil(LimitRatio * float64(n)))

		for i := range common {
			k := keys[common[i].index]
			common[i].delta = math.Abs(geom.Penalty(left.union, k) - geom.Penalty(right.union, k))
		}

		// Ascending: entries with the smallest penalty difference are placed
		// first, so the ratio-forced placements fall on the last entries.
		slices.SortStableFunc(common, func(a, b commonEntry) int {
			return fcmp.Cmp(a.delta, b.delta)
		})

		for i, ce := range common {
			k := keys[ce.index]
			remaining := len(common) - i
			switch {
			case len(left.members)+remaining <= m:
				left.place(ce.index, k)
			case len(right.members)+remaining <= m:
				right.place(ce.index, k)
			case geom.Penalty(left.union, k) < geom.Penalty(right.union, k):
				left.place(ce.index, k)
			default:
				right.place(ce.index, k)
			}
		}
	}

	return SplitVector{
		Left:       left.members,
		Right:      right.members,
		LeftUnion:  left.union,
		RightUnion: right.union,
		Axis:       ctx.axis,
	}
}

// fallbackSplit puts the first half of the entries on the left and the rest
// on the right.
func fallbackSplit(keys []geom.Box) SplitVector {
	n := len(keys)
	left := group{members: make([]int, 0, n/2)}
	right := group{members: make([]int, 0, n-n/2)}
	for i, k := range keys {
		if i < n/2 {
			left.place(i, k)
		} else {
			right.place(i, k)
		}
	}
	return SplitVector{
		Left:       left.members,
		Right:      right.members,
		LeftUnion:  left.union,
		RightUnion: right.union,
		Axis:       -1,
		Fallback:   true,
	}
}
