package valueobject

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// OwnershipTier – immutable value object
// ---------------------------------------------------------------------------

// OwnershipTier selects which LTV ceiling of a region applies to a buyer.
type OwnershipTier struct {
	value string
}

const (
	ownershipFirstHome  = "FIRST_HOME"
	ownershipOwned1     = "OWNED_1"
	ownershipOwned2Plus = "OWNED_2_PLUS"
)

var (
	OwnershipTierFirstHome  = OwnershipTier{value: ownershipFirstHome}
	OwnershipTierOwned1     = OwnershipTier{value: ownershipOwned1}
	OwnershipTierOwned2Plus = OwnershipTier{value: ownershipOwned2Plus}
)

// ownershipTiers maps a (clamped) house count to its tier.
var ownershipTiers = MustTierTable(AtMost, OwnershipTierOwned2Plus,
	Tier[OwnershipTier]{Limit: 0, Value: OwnershipTierFirstHome},
	Tier[OwnershipTier]{Limit: 1, Value: OwnershipTierOwned1},
)

// OwnershipTierForHouseCount returns the tier for a house count. Callers clamp
// negative counts before calling.
func OwnershipTierForHouseCount(houseCount int) OwnershipTier {
	return ownershipTiers.Lookup(float64(houseCount))
}

// String returns the string representation of the tier.
func (t OwnershipTier) String() string { return t.value }

// IsZero returns true if the tier has not been initialised.
func (t OwnershipTier) IsZero() bool { return t.value == "" }

// Equal returns true when both tiers carry the same value.
func (t OwnershipTier) Equal(other OwnershipTier) bool { return t.value == other.value }

// ---------------------------------------------------------------------------
// LimitingFactor – immutable value object
// ---------------------------------------------------------------------------

// LimitingFactor names the constraint that bounds the feasible loan.
type LimitingFactor struct {
	value string
}

const (
	limitingLTV  = "LTV"
	limitingDSR  = "DSR"
	limitingCash = "CASH"
)

var (
	LimitingFactorLTV  = LimitingFactor{value: limitingLTV}
	LimitingFactorDSR  = LimitingFactor{value: limitingDSR}
	LimitingFactorCash = LimitingFactor{value: limitingCash}
)

var validLimitingFactors = map[string]LimitingFactor{
	limitingLTV:  LimitingFactorLTV,
	limitingDSR:  LimitingFactorDSR,
	limitingCash: LimitingFactorCash,
}

// NewLimitingFactor creates a LimitingFactor from a raw string.
func NewLimitingFactor(s string) (LimitingFactor, error) {
	v, ok := validLimitingFactors[s]
	if !ok {
		return LimitingFactor{}, fmt.Errorf("invalid limiting factor: %q", s)
	}
	return v, nil
}

// String returns the string representation.
func (f LimitingFactor) String() string { return f.value }

// Equal returns true when both factors match.
func (f LimitingFactor) Equal(other LimitingFactor) bool { return f.value == other.value }

// ---------------------------------------------------------------------------
// Grade – immutable value object
// ---------------------------------------------------------------------------

// Grade is the letter band of a feasibility score.
type Grade struct {
	value string
}

var (
	GradeA = Grade{value: "A"}
	GradeB = Grade{value: "B"}
	GradeC = Grade{value: "C"}
	GradeD = Grade{value: "D"}
	GradeF = Grade{value: "F"}
)

var gradeBands = MustTierTable(AtLeast, GradeF,
	Tier[Grade]{Limit: 85, Value: GradeA},
	Tier[Grade]{Limit: 70, Value: GradeB},
	Tier[Grade]{Limit: 55, Value: GradeC},
	Tier[Grade]{Limit: 40, Value: GradeD},
)

// GradeForScore maps a 0-100 score onto its letter grade.
func GradeForScore(score int) Grade {
	return gradeBands.Lookup(float64(score))
}

// String returns the letter.
func (g Grade) String() string { return g.value }

// Equal returns true when both grades match.
func (g Grade) Equal(other Grade) bool { return g.value == other.value }

// ---------------------------------------------------------------------------
// RepaymentMode – immutable value object
// ---------------------------------------------------------------------------

// RepaymentMode describes how the regular loan payment is composed.
type RepaymentMode struct {
	value string
}

const (
	repaymentAmortizing   = "AMORTIZING"
	repaymentInterestOnly = "INTEREST_ONLY"
)

var (
	// RepaymentAmortizing is a level payment of principal and interest.
	RepaymentAmortizing = RepaymentMode{value: repaymentAmortizing}
	// RepaymentInterestOnly pays interest monthly and the principal at maturity.
	RepaymentInterestOnly = RepaymentMode{value: repaymentInterestOnly}
)

var validRepaymentModes = map[string]RepaymentMode{
	repaymentAmortizing:   RepaymentAmortizing,
	repaymentInterestOnly: RepaymentInterestOnly,
	"BULLET":              RepaymentInterestOnly,
	"":                    RepaymentAmortizing,
}

// NewRepaymentMode parses a repayment mode; the empty string means amortizing.
func NewRepaymentMode(s string) (RepaymentMode, error) {
	v, ok := validRepaymentModes[s]
	if !ok {
		return RepaymentMode{}, fmt.Errorf("%w: %q", ErrUnknownRepaymentMode, s)
	}
	return v, nil
}

// String returns the string representation.
func (m RepaymentMode) String() string {
	if m.value == "" {
		return repaymentAmortizing
	}
	return m.value
}

// IsInterestOnly reports whether principal is excluded from the regular payment.
func (m RepaymentMode) IsInterestOnly() bool { return m.value == repaymentInterestOnly }

// Equal returns true when both modes match. The zero value equals amortizing.
func (m RepaymentMode) Equal(other RepaymentMode) bool { return m.String() == other.String() }

// ---------------------------------------------------------------------------
// Sentinel errors
// ---------------------------------------------------------------------------

var (
	ErrUnknownRepaymentMode = errors.New("unknown repayment mode")
)
