package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/bib/services/realcare-service/internal/domain/model"
)

const gangnam = "11680"

func testRegistry(t *testing.T) *model.RegulationRegistry {
	t.Helper()
	gn, err := model.NewRegionRegulation(model.RegionRegulationParams{
		Code:        gangnam,
		Name:        "강남구",
		NameEn:      "Gangnam-gu",
		Speculative: true,
		Adjusted:    true,
		LTV:         model.LTVLimits{FirstHome: 50, Owned1: 40, Owned2Plus: 0},
		AcquisitionRates: model.AcquisitionTaxRates{
			UpTo600M: 1, UpTo900M: 2, Above900M: 3, MultiHouse2: 8, MultiHouse3: 12,
		},
		HoldingMultiplier: 1,
	})
	require.NoError(t, err)
	reg, err := model.NewRegulationRegistry("test", model.DefaultRegionRegulation(), gn)
	require.NoError(t, err)
	return reg
}

func won(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// goldenInput is a first-home purchase of a 900M apartment in Gangnam.
func goldenInput() model.RealityScoreInput {
	return model.RealityScoreInput{
		PropertyPrice: won(900_000_000),
		Financials: model.UserFinancials{
			AnnualIncome: won(80_000_000),
			TotalAssets:  won(300_000_000),
			CashAssets:   won(300_000_000),
			IsFirstHome:  true,
		},
		RegionCode:    gangnam,
		LoanTermYears: 30,
		AnnualRatePct: 4.5,
	}
}
