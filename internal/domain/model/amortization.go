package model

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bibbank/bib/services/realcare-service/internal/domain/valueobject"
)

// RepaymentEntry is an immutable value object representing one period in a
// repayment schedule. Amounts are whole won.
type RepaymentEntry struct {
	DueDate          time.Time
	Principal        decimal.Decimal
	Interest         decimal.Decimal
	Total            decimal.Decimal
	RemainingBalance decimal.Decimal
	Period           int
}

// MonthlyRate converts a nominal annual percentage into a monthly rate.
func MonthlyRate(annualRatePct float64) float64 {
	return annualRatePct / 100.0 / 12.0
}

// LevelPayment is the fixed monthly payment that amortizes principal over n
// periods:
//
//	payment = P * r * (1+r)^n / ((1+r)^n - 1)
//
// A zero rate degrades to an even split, P / n.
func LevelPayment(principal, monthlyRate float64, n int) float64 {
	if n <= 0 || principal <= 0 {
		return 0
	}
	if monthlyRate == 0 {
		return principal / float64(n)
	}
	factor := math.Pow(1+monthlyRate, float64(n))
	return principal * monthlyRate * factor / (factor - 1)
}

// PresentValue inverts LevelPayment: the principal a fixed monthly payment
// can service over n periods.
//
//	P = M * ((1+r)^n - 1) / (r * (1+r)^n)
func PresentValue(payment, monthlyRate float64, n int) float64 {
	if n <= 0 || payment <= 0 {
		return 0
	}
	if monthlyRate == 0 {
		return payment * float64(n)
	}
	factor := math.Pow(1+monthlyRate, float64(n))
	return payment * (factor - 1) / (monthlyRate * factor)
}

// GenerateRepaymentSchedule computes a month-by-month repayment schedule.
//
// Parameters:
//   - principal:     the loan amount in won
//   - annualRatePct: nominal annual interest rate in percent (e.g. 4.5)
//   - termMonths:    number of monthly periods
//   - mode:          amortizing (level payment) or interest-only (bullet)
//   - startDate:     the date from which the first payment is due (one month later)
//
// Interest-only schedules carry the full principal in the final period.
func GenerateRepaymentSchedule(
	principal decimal.Decimal,
	annualRatePct float64,
	termMonths int,
	mode valueobject.RepaymentMode,
	startDate time.Time,
) []RepaymentEntry {
	if termMonths <= 0 || principal.LessThanOrEqual(decimal.Zero) {
		return nil
	}

	monthlyRate := MonthlyRate(annualRatePct)
	monthlyRateDec := decimal.NewFromFloat(monthlyRate)
	payment := decimal.NewFromFloat(LevelPayment(principal.InexactFloat64(), monthlyRate, termMonths)).Round(0)

	schedule := make([]RepaymentEntry, 0, termMonths)
	remaining := principal

	for period := 1; period <= termMonths; period++ {
		interest := remaining.Mul(monthlyRateDec).Round(0)

		var principalPart decimal.Decimal
		switch {
		case period == termMonths:
			// Last period: settle whatever is left so the balance reaches zero.
			principalPart = remaining
		case mode.IsInterestOnly():
			principalPart = decimal.Zero
		default:
			principalPart = payment.Sub(interest)
		}

		remaining = remaining.Sub(principalPart)
		if remaining.LessThan(decimal.Zero) {
			remaining = decimal.Zero
		}

		schedule = append(schedule, RepaymentEntry{
			Period:           period,
			DueDate:          startDate.AddDate(0, period, 0),
			Principal:        principalPart,
			Interest:         interest,
			Total:            principalPart.Add(interest),
			RemainingBalance: remaining,
		})
	}

	return schedule
}

// ScheduleTotals sums interest and total payments over a schedule.
func ScheduleTotals(schedule []RepaymentEntry) (interest, paid decimal.Decimal) {
	interest, paid = decimal.Zero, decimal.Zero
	for _, e := range schedule {
		interest = interest.Add(e.Interest)
		paid = paid.Add(e.Total)
	}
	return interest, paid
}
