package valueobject

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidTierTable is returned when tier limits are not ordered in the
// direction their bound requires.
var ErrInvalidTierTable = errors.New("invalid tier table")

// Bound selects how a tier limit is compared against the looked-up value.
type Bound int

const (
	// AtMost matches the first tier whose limit is >= x. Limits ascend.
	AtMost Bound = iota
	// AtLeast matches the first tier whose limit is <= x. Limits descend.
	AtLeast
)

// Tier pairs a limit with the value returned when the limit matches.
type Tier[T any] struct {
	Limit float64
	Value T
}

// Unbounded is a convenience limit for an open-ended top bracket.
var Unbounded = math.Inf(1)

// TierTable is an ordered list of (limit, value) pairs scanned top-down; the
// first applicable tier wins and Fallback is returned when none applies.
//
// Every regulatory staircase (ownership tier, price tier, income-tax bracket,
// long-term holding deduction, score buckets, grades) goes through Lookup so
// the inclusive/exclusive boundary semantics are identical everywhere: an
// AtMost table treats x == limit as inside the tier, an AtLeast table treats
// x == limit as inside the tier.
type TierTable[T any] struct {
	tiers    []Tier[T]
	fallback T
	bound    Bound
}

// NewTierTable validates ordering and returns an immutable table.
func NewTierTable[T any](bound Bound, fallback T, tiers ...Tier[T]) (TierTable[T], error) {
	for i := 1; i < len(tiers); i++ {
		prev, cur := tiers[i-1].Limit, tiers[i].Limit
		switch bound {
		case AtMost:
			if cur <= prev {
				return TierTable[T]{}, fmt.Errorf("%w: limits must ascend, %v follows %v", ErrInvalidTierTable, cur, prev)
			}
		case AtLeast:
			if cur >= prev {
				return TierTable[T]{}, fmt.Errorf("%w: limits must descend, %v follows %v", ErrInvalidTierTable, cur, prev)
			}
		default:
			return TierTable[T]{}, fmt.Errorf("%w: unknown bound %d", ErrInvalidTierTable, bound)
		}
	}
	cp := make([]Tier[T], len(tiers))
	copy(cp, tiers)
	return TierTable[T]{tiers: cp, fallback: fallback, bound: bound}, nil
}

// MustTierTable is NewTierTable for package-level tables; it panics on error.
func MustTierTable[T any](bound Bound, fallback T, tiers ...Tier[T]) TierTable[T] {
	t, err := NewTierTable(bound, fallback, tiers...)
	if err != nil {
		panic(err)
	}
	return t
}

// Lookup returns the value of the first matching tier.
func (t TierTable[T]) Lookup(x float64) T {
	v, _ := t.Find(x)
	return v
}

// Find is Lookup that also reports the index of the matched tier, or -1 when
// the fallback was used.
func (t TierTable[T]) Find(x float64) (T, int) {
	for i, tier := range t.tiers {
		switch t.bound {
		case AtMost:
			if x <= tier.Limit {
				return tier.Value, i
			}
		case AtLeast:
			if x >= tier.Limit {
				return tier.Value, i
			}
		}
	}
	return t.fallback, -1
}

// Len returns the number of explicit tiers (the fallback is not counted).
func (t TierTable[T]) Len() int { return len(t.tiers) }
