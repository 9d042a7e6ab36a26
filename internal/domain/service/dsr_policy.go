package service

import "github.com/bibbank/bib/services/realcare-service/internal/domain/model"

// DSRLimitRule grants a specific DSR limit to borrowers it applies to.
type DSRLimitRule struct {
	Applies  func(model.UserFinancials) bool
	Name     string
	LimitPct float64
}

// DSRPolicy selects the DSR limit for a borrower. Rules are checked in order
// and the first that applies wins; otherwise the standard limit is used.
type DSRPolicy struct {
	rules       []DSRLimitRule
	standardPct float64
}

// NewDSRPolicy builds a policy from a standard limit and ordered rules.
func NewDSRPolicy(standardPct float64, rules ...DSRLimitRule) DSRPolicy {
	cp := make([]DSRLimitRule, len(rules))
	copy(cp, rules)
	return DSRPolicy{rules: cp, standardPct: standardPct}
}

// DefaultDSRPolicy applies the vulnerable-group limit to first-time buyers.
func DefaultDSRPolicy() DSRPolicy {
	return NewDSRPolicy(StandardDSRLimitPct,
		DSRLimitRule{
			Name:     "first_home_buyer",
			LimitPct: VulnerableDSRLimitPct,
			Applies:  func(f model.UserFinancials) bool { return f.IsFirstHome },
		},
	)
}

// LimitFor returns the applicable limit and the name of the rule that set it
// ("standard" when no rule applied).
func (p DSRPolicy) LimitFor(f model.UserFinancials) (float64, string) {
	for _, r := range p.rules {
		if r.Applies != nil && r.Applies(f) {
			return r.LimitPct, r.Name
		}
	}
	return p.standardPct, "standard"
}
