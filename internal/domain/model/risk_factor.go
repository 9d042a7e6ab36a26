package model

import "github.com/bibbank/bib/services/realcare-service/internal/domain/valueobject"

// RiskFactor is one advisory finding about a feasibility result. ScoreImpact
// is presentation metadata and is never subtracted from the score.
type RiskFactor struct {
	Severity    valueobject.RiskSeverity
	Category    valueobject.RiskCategory
	Code        string
	Title       string
	Message     string
	Suggestion  string
	ScoreImpact int
}
