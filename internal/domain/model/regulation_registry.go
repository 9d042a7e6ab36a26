package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrDuplicateRegion is returned when a registry is built with a repeated code.
var ErrDuplicateRegion = errors.New("duplicate region code")

// RegulationRegistry is a read-only lookup of regulation profiles by region
// code. It is built once and never mutated, so it is safe to share between
// goroutines.
type RegulationRegistry struct {
	regions  map[string]RegionRegulation
	fallback RegionRegulation
	version  string
	codes    []string
}

// NewRegulationRegistry builds a registry. Region coverage may be partial;
// unknown codes resolve to fallback.
func NewRegulationRegistry(version string, fallback RegionRegulation, regions ...RegionRegulation) (*RegulationRegistry, error) {
	if fallback.Code() == "" {
		return nil, fmt.Errorf("%w: fallback profile is required", ErrInvalidRegulation)
	}
	m := make(map[string]RegionRegulation, len(regions))
	codes := make([]string, 0, len(regions))
	for _, r := range regions {
		if _, dup := m[r.Code()]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRegion, r.Code())
		}
		m[r.Code()] = r
		codes = append(codes, r.Code())
	}
	sort.Strings(codes)

	return &RegulationRegistry{
		regions:  m,
		fallback: fallback,
		version:  version,
		codes:    codes,
	}, nil
}

// Lookup returns the profile for code, or the fallback profile. It never fails.
func (r *RegulationRegistry) Lookup(code string) RegionRegulation {
	reg, _ := r.Resolve(code)
	return reg
}

// Resolve is Lookup that also reports whether the code was known.
func (r *RegulationRegistry) Resolve(code string) (RegionRegulation, bool) {
	reg, ok := r.regions[strings.TrimSpace(code)]
	if !ok {
		return r.fallback, false
	}
	return reg, true
}

// Codes returns the known region codes in ascending order.
func (r *RegulationRegistry) Codes() []string {
	out := make([]string, len(r.codes))
	copy(out, r.codes)
	return out
}

// Default returns the fallback profile.
func (r *RegulationRegistry) Default() RegionRegulation { return r.fallback }

// Version identifies the regulation table the registry was built from.
func (r *RegulationRegistry) Version() string { return r.version }

// Len returns the number of explicitly covered regions.
func (r *RegulationRegistry) Len() int { return len(r.regions) }
