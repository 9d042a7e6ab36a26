package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/bib/services/realcare-service/internal/domain/valueobject"
)

func gangnamParams() RegionRegulationParams {
	return RegionRegulationParams{
		Code:        "11680",
		Name:        "강남구",
		NameEn:      "Gangnam-gu",
		Speculative: true,
		Adjusted:    true,
		LTV:         LTVLimits{FirstHome: 50, Owned1: 40, Owned2Plus: 0},
		AcquisitionRates: AcquisitionTaxRates{
			UpTo600M: 1, UpTo900M: 2, Above900M: 3, MultiHouse2: 8, MultiHouse3: 12,
		},
		HoldingMultiplier: 1,
	}
}

func TestNewRegionRegulation(t *testing.T) {
	t.Run("valid profile", func(t *testing.T) {
		reg, err := NewRegionRegulation(gangnamParams())
		require.NoError(t, err)
		assert.Equal(t, "11680", reg.Code())
		assert.True(t, reg.IsSpeculative())
		assert.True(t, reg.IsRegulated())
		assert.False(t, reg.IsDefault())
		assert.Equal(t, 50.0, reg.LTV().For(valueobject.OwnershipTierFirstHome))
		assert.Equal(t, 40.0, reg.LTV().For(valueobject.OwnershipTierOwned1))
		assert.Equal(t, 0.0, reg.LTV().For(valueobject.OwnershipTierOwned2Plus))
	})

	t.Run("missing code", func(t *testing.T) {
		p := gangnamParams()
		p.Code = "  "
		_, err := NewRegionRegulation(p)
		require.ErrorIs(t, err, ErrInvalidRegulation)
	})

	t.Run("ltv above 100", func(t *testing.T) {
		p := gangnamParams()
		p.LTV.Owned1 = 120
		_, err := NewRegionRegulation(p)
		require.ErrorIs(t, err, ErrInvalidRegulation)
	})

	t.Run("negative ltv", func(t *testing.T) {
		p := gangnamParams()
		p.LTV.FirstHome = -1
		_, err := NewRegionRegulation(p)
		require.ErrorIs(t, err, ErrInvalidRegulation)
	})

	t.Run("multi-house rate below single tier", func(t *testing.T) {
		p := gangnamParams()
		p.AcquisitionRates.MultiHouse2 = 2.5
		_, err := NewRegionRegulation(p)
		require.ErrorIs(t, err, ErrInvalidRegulation)
		assert.Contains(t, err.Error(), "multi-house")
	})

	t.Run("must variant panics", func(t *testing.T) {
		p := gangnamParams()
		p.HoldingMultiplier = -0.1
		assert.Panics(t, func() { MustRegionRegulation(p) })
	})
}

func TestDefaultRegionRegulation(t *testing.T) {
	def := DefaultRegionRegulation()
	assert.True(t, def.IsDefault())
	assert.False(t, def.IsRegulated())
	assert.Equal(t, LTVLimits{FirstHome: 70, Owned1: 70, Owned2Plus: 60}, def.LTV())
	assert.Equal(t, 0.7, def.HoldingMultiplier())
	assert.Equal(t, 1.0, def.AcquisitionRates().UpTo600M)
}

func TestRegulationRegistry(t *testing.T) {
	gangnam := MustRegionRegulation(gangnamParams())
	mapoParams := gangnamParams()
	mapoParams.Code, mapoParams.Speculative, mapoParams.Adjusted = "11440", false, false
	mapo := MustRegionRegulation(mapoParams)

	registry, err := NewRegulationRegistry("2023-01-05", DefaultRegionRegulation(), mapo, gangnam)
	require.NoError(t, err)

	t.Run("known code", func(t *testing.T) {
		reg, ok := registry.Resolve("11680")
		assert.True(t, ok)
		assert.Equal(t, "Gangnam-gu", reg.NameEn())
	})

	t.Run("code is trimmed", func(t *testing.T) {
		assert.Equal(t, "11680", registry.Lookup(" 11680 ").Code())
	})

	t.Run("unknown code falls back", func(t *testing.T) {
		reg, ok := registry.Resolve("99999")
		assert.False(t, ok)
		assert.True(t, reg.IsDefault())
		assert.True(t, registry.Lookup("").IsDefault())
	})

	t.Run("codes are sorted copies", func(t *testing.T) {
		codes := registry.Codes()
		assert.Equal(t, []string{"11440", "11680"}, codes)
		codes[0] = "mutated"
		assert.Equal(t, "11440", registry.Codes()[0])
	})

	t.Run("metadata", func(t *testing.T) {
		assert.Equal(t, 2, registry.Len())
		assert.Equal(t, "2023-01-05", registry.Version())
		assert.True(t, registry.Default().IsDefault())
	})
}

func TestRegulationRegistry_Errors(t *testing.T) {
	gangnam := MustRegionRegulation(gangnamParams())

	_, err := NewRegulationRegistry("v1", DefaultRegionRegulation(), gangnam, gangnam)
	require.ErrorIs(t, err, ErrDuplicateRegion)

	_, err = NewRegulationRegistry("v1", RegionRegulation{}, gangnam)
	require.ErrorIs(t, err, ErrInvalidRegulation)
}

func TestUserFinancials_EffectiveHouseCount(t *testing.T) {
	tests := []struct {
		name string
		fin  UserFinancials
		want int
		tier valueobject.OwnershipTier
	}{
		{name: "no houses", fin: UserFinancials{}, want: 0, tier: valueobject.OwnershipTierFirstHome},
		{name: "one house", fin: UserFinancials{HouseCount: 1}, want: 1, tier: valueobject.OwnershipTierOwned1},
		{name: "three houses", fin: UserFinancials{HouseCount: 3}, want: 3, tier: valueobject.OwnershipTierOwned2Plus},
		{name: "negative clamps to zero", fin: UserFinancials{HouseCount: -2}, want: 0, tier: valueobject.OwnershipTierFirstHome},
		{name: "first home overrides count", fin: UserFinancials{HouseCount: 2, IsFirstHome: true}, want: 0, tier: valueobject.OwnershipTierFirstHome},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.fin.EffectiveHouseCount())
			assert.True(t, tt.fin.OwnershipTier().Equal(tt.tier))
		})
	}
}
