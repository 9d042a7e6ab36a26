package usecase

import (
	"github.com/bibbank/bib/services/realcare-service/internal/application/dto"
	"github.com/bibbank/bib/services/realcare-service/internal/domain/model"
)

func toRegionResponse(r model.RegionRegulation) dto.RegionResponse {
	ltv := r.LTV()
	return dto.RegionResponse{
		EffectiveDate:     r.EffectiveDate(),
		Code:              r.Code(),
		Name:              r.Name(),
		NameEn:            r.NameEn(),
		LTVFirstHomePct:   ltv.FirstHome,
		LTVOwned1Pct:      ltv.Owned1,
		LTVOwned2PlusPct:  ltv.Owned2Plus,
		HoldingMultiplier: r.HoldingMultiplier(),
		IsSpeculative:     r.IsSpeculative(),
		IsAdjusted:        r.IsAdjusted(),
		IsDefault:         r.IsDefault(),
	}
}

func toRealityScoreResponse(id string, res model.RealityScoreResult) dto.RealityScoreResponse {
	a := res.Analysis
	risks := make([]dto.RiskResponse, 0, len(res.Risks))
	for _, r := range res.Risks {
		risks = append(risks, dto.RiskResponse{
			Severity:    string(r.Severity),
			Category:    string(r.Category),
			Code:        r.Code,
			Title:       r.Title,
			Message:     r.Message,
			Suggestion:  r.Suggestion,
			ScoreImpact: r.ScoreImpact,
		})
	}
	return dto.RealityScoreResponse{
		ID:      id,
		Score:   res.Score,
		Grade:   res.Grade.String(),
		Summary: res.Summary,
		Region:  toRegionResponse(res.Region),
		Risks:   risks,
		Breakdown: dto.ScoreBreakdownResponse{
			LTV: res.Breakdown.LTVScore,
			DSR: res.Breakdown.DSRScore,
			Gap: res.Breakdown.GapScore,
			PTI: res.Breakdown.PTIScore,
		},
		Analysis: dto.AnalysisResponse{
			MaxLoanByLTV:     a.MaxLoanByLTV,
			MaxLoanByDSR:     a.MaxLoanByDSR,
			MaxLoanAmount:    a.MaxLoanAmount,
			ActualLoanAmount: a.ActualLoanAmount,
			RequiredCash:     a.RequiredCash,
			AvailableCash:    a.AvailableCash,
			GapAmount:        a.GapAmount,
			MonthlyRepayment: a.MonthlyRepayment,
			LimitingFactor:   a.LimitingFactor.String(),
			DSRPct:           a.DSRPct,
			DSRLimitPct:      a.DSRLimitPct,
			PTIPct:           a.PTIPct,
			ApplicableLTVPct: a.ApplicableLTVPct,
		},
	}
}

func toTaxResponse(id string, res model.TaxResult) dto.TaxResponse {
	acq, tr, hold := res.Acquisition, res.Transfer, res.Holding
	return dto.TaxResponse{
		ID: id,
		Acquisition: dto.AcquisitionTaxResponse{
			Principal:         acq.Principal,
			EducationTax:      acq.EducationTax,
			RuralTax:          acq.RuralTax,
			LocalSurcharge:    acq.LocalSurcharge,
			Total:             acq.Total,
			AppliedRatePct:    acq.AppliedRatePct,
			EffectiveRatePct:  acq.EffectiveRatePct,
			FirstHomeDiscount: acq.FirstHomeDiscount,
		},
		Transfer: dto.TransferTaxResponse{
			Gain:              tr.Gain,
			LongTermDeduction: tr.LongTermDeduction,
			BasicDeduction:    tr.BasicDeduction,
			TaxableBase:       tr.TaxableBase,
			Principal:         tr.Principal,
			LocalSurcharge:    tr.LocalSurcharge,
			Total:             tr.Total,
			Bracket:           tr.Bracket.Name,
			BracketRatePct:    tr.Bracket.RatePct,
			LongTermRatePct:   tr.LongTermRatePct,
			EffectiveRatePct:  tr.EffectiveRatePct,
		},
		Holding: dto.HoldingTaxResponse{
			PublicPrice:      hold.PublicPrice,
			TaxBase:          hold.TaxBase,
			Principal:        hold.Principal,
			LocalSurcharge:   hold.LocalSurcharge,
			ComprehensiveTax: hold.ComprehensiveTax,
			Total:            hold.Total,
			EffectiveRatePct: hold.EffectiveRatePct,
		},
		InitialCost:       res.InitialCost,
		AnnualHoldingCost: res.AnnualHoldingCost,
	}
}

func toScenarioResponse(id string, cmp model.ScenarioComparison) dto.ScenarioResponse {
	return dto.ScenarioResponse{
		ID:             id,
		Recommendation: string(cmp.Recommendation),
		Message:        cmp.Message,
		Now:            toRealityScoreResponse(id, cmp.Now),
		Later:          toRealityScoreResponse(id, cmp.Later),
		Assumptions: dto.AssumptionsResponse{
			PriceGrowthPct:  cmp.Assumptions.PriceGrowthPct,
			IncomeGrowthPct: cmp.Assumptions.IncomeGrowthPct,
			SavingsRate:     cmp.Assumptions.SavingsRate,
			RateDeltaPct:    cmp.Assumptions.RateDeltaPct,
		},
		WaitYears:  cmp.WaitYears,
		ScoreDelta: cmp.ScoreDelta,
	}
}
