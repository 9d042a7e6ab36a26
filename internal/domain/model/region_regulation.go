package model

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bibbank/bib/services/realcare-service/internal/domain/valueobject"
)

// ErrInvalidRegulation is returned when a regulation profile violates its
// invariants.
var ErrInvalidRegulation = errors.New("invalid region regulation")

// DefaultRegionCode identifies the fallback non-regulated profile.
const DefaultRegionCode = "DEFAULT"

// LTVLimits holds loan-to-value ceilings (percent) per ownership tier.
type LTVLimits struct {
	FirstHome  float64
	Owned1     float64
	Owned2Plus float64
}

// For returns the ceiling that applies to the given tier.
func (l LTVLimits) For(tier valueobject.OwnershipTier) float64 {
	switch {
	case tier.Equal(valueobject.OwnershipTierFirstHome):
		return l.FirstHome
	case tier.Equal(valueobject.OwnershipTierOwned1):
		return l.Owned1
	default:
		return l.Owned2Plus
	}
}

// AcquisitionTaxRates holds acquisition-tax rates in percent: three
// progressive price tiers and two flat multi-house rates.
type AcquisitionTaxRates struct {
	UpTo600M    float64
	UpTo900M    float64
	Above900M   float64
	MultiHouse2 float64
	MultiHouse3 float64
}

func (r AcquisitionTaxRates) maxSingleTier() float64 {
	return math.Max(r.UpTo600M, math.Max(r.UpTo900M, r.Above900M))
}

// RegionRegulationParams carries the raw fields of a regulation profile.
type RegionRegulationParams struct {
	EffectiveDate     time.Time
	Code              string
	Name              string
	NameEn            string
	LTV               LTVLimits
	AcquisitionRates  AcquisitionTaxRates
	HoldingMultiplier float64
	Speculative       bool
	Adjusted          bool
}

// RegionRegulation is the immutable regulatory profile of a region.
type RegionRegulation struct {
	effectiveDate     time.Time
	code              string
	name              string
	nameEn            string
	ltv               LTVLimits
	acquisitionRates  AcquisitionTaxRates
	holdingMultiplier float64
	speculative       bool
	adjusted          bool
}

// NewRegionRegulation validates params and builds a profile.
func NewRegionRegulation(p RegionRegulationParams) (RegionRegulation, error) {
	code := strings.TrimSpace(p.Code)
	if code == "" {
		return RegionRegulation{}, fmt.Errorf("%w: code is required", ErrInvalidRegulation)
	}
	for tier, v := range map[string]float64{
		"first_home":   p.LTV.FirstHome,
		"owned_1":      p.LTV.Owned1,
		"owned_2_plus": p.LTV.Owned2Plus,
	} {
		if v < 0 || v > 100 {
			return RegionRegulation{}, fmt.Errorf("%w: %s ltv %v outside [0,100] for %s", ErrInvalidRegulation, tier, v, code)
		}
	}
	r := p.AcquisitionRates
	if r.UpTo600M < 0 || r.UpTo900M < 0 || r.Above900M < 0 {
		return RegionRegulation{}, fmt.Errorf("%w: negative acquisition rate for %s", ErrInvalidRegulation, code)
	}
	if r.MultiHouse2 < r.maxSingleTier() || r.MultiHouse3 < r.maxSingleTier() {
		return RegionRegulation{}, fmt.Errorf("%w: multi-house rates must not be below single-house tiers for %s", ErrInvalidRegulation, code)
	}
	if p.HoldingMultiplier < 0 {
		return RegionRegulation{}, fmt.Errorf("%w: negative holding multiplier for %s", ErrInvalidRegulation, code)
	}

	return RegionRegulation{
		effectiveDate:     p.EffectiveDate,
		code:              code,
		name:              p.Name,
		nameEn:            p.NameEn,
		ltv:               p.LTV,
		acquisitionRates:  p.AcquisitionRates,
		holdingMultiplier: p.HoldingMultiplier,
		speculative:       p.Speculative,
		adjusted:          p.Adjusted,
	}, nil
}

// MustRegionRegulation panics when params are invalid. Intended for static
// tables only.
func MustRegionRegulation(p RegionRegulationParams) RegionRegulation {
	r, err := NewRegionRegulation(p)
	if err != nil {
		panic(err)
	}
	return r
}

// DefaultRegionRegulation is the non-regulated profile used for unknown codes.
func DefaultRegionRegulation() RegionRegulation {
	return MustRegionRegulation(RegionRegulationParams{
		Code:   DefaultRegionCode,
		Name:   "비규제지역",
		NameEn: "Non-regulated area",
		LTV:    LTVLimits{FirstHome: 70, Owned1: 70, Owned2Plus: 60},
		AcquisitionRates: AcquisitionTaxRates{
			UpTo600M:    1,
			UpTo900M:    2,
			Above900M:   3,
			MultiHouse2: 3,
			MultiHouse3: 8,
		},
		HoldingMultiplier: 0.7,
		EffectiveDate:     time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC),
	})
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (r RegionRegulation) Code() string                           { return r.code }
func (r RegionRegulation) Name() string                           { return r.name }
func (r RegionRegulation) NameEn() string                         { return r.nameEn }
func (r RegionRegulation) IsSpeculative() bool                    { return r.speculative }
func (r RegionRegulation) IsAdjusted() bool                       { return r.adjusted }
func (r RegionRegulation) LTV() LTVLimits                         { return r.ltv }
func (r RegionRegulation) AcquisitionRates() AcquisitionTaxRates  { return r.acquisitionRates }
func (r RegionRegulation) HoldingMultiplier() float64             { return r.holdingMultiplier }
func (r RegionRegulation) EffectiveDate() time.Time               { return r.effectiveDate }

// IsRegulated reports whether either zone designation is set.
func (r RegionRegulation) IsRegulated() bool { return r.speculative || r.adjusted }

// IsDefault reports whether this is the fallback profile.
func (r RegionRegulation) IsDefault() bool { return r.code == DefaultRegionCode }
