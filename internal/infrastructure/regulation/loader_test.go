package regulation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/bib/services/realcare-service/internal/domain/model"
)

func TestEmbedded(t *testing.T) {
	reg, err := Embedded()
	require.NoError(t, err)

	assert.Equal(t, "2023.1", reg.Version())
	assert.Equal(t, []string{"11110", "11170", "11440", "11560", "11650", "11680", "11710", "26350", "41135"}, reg.Codes())

	gangnam, ok := reg.Resolve("11680")
	require.True(t, ok)
	assert.True(t, gangnam.IsSpeculative())
	assert.True(t, gangnam.IsAdjusted())
	assert.Equal(t, model.LTVLimits{FirstHome: 50, Owned1: 40, Owned2Plus: 0}, gangnam.LTV())
	assert.Equal(t, 12.0, gangnam.AcquisitionRates().MultiHouse3)
	assert.Equal(t, 1.0, gangnam.HoldingMultiplier())
	assert.Equal(t, time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC), gangnam.EffectiveDate())

	bundang := reg.Lookup("41135")
	assert.False(t, bundang.IsSpeculative())
	assert.True(t, bundang.IsAdjusted())
	assert.Equal(t, 0.9, bundang.HoldingMultiplier())
}

func TestEmbeddedDefaultMatchesDomainDefault(t *testing.T) {
	reg := MustEmbedded()
	want := model.DefaultRegionRegulation()

	got := reg.Lookup("99999")
	assert.True(t, got.IsDefault())
	assert.Equal(t, want.LTV(), got.LTV())
	assert.Equal(t, want.AcquisitionRates(), got.AcquisitionRates())
	assert.Equal(t, want.HoldingMultiplier(), got.HoldingMultiplier())
	assert.False(t, got.IsRegulated())
}

func TestLoadWithoutOverride(t *testing.T) {
	reg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9, reg.Len())
}

func TestLoadOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
version: "2024.2"
regions:
  - code: "41135"
    name: 경기도 성남시 분당구
    name_en: Bundang-gu, Seongnam
    effective_date: "2024-07-01"
    ltv: {first_home: 70, owned_1: 70, owned_2_plus: 60}
    acquisition_rates: {up_to_600m: 1, up_to_900m: 2, above_900m: 3, multi_house_2: 3, multi_house_3: 8}
    holding_multiplier: 0.8
  - code: "30200"
    name: 대전광역시 유성구
    name_en: Yuseong-gu, Daejeon
    ltv: {first_home: 70, owned_1: 70, owned_2_plus: 60}
    acquisition_rates: {up_to_600m: 1, up_to_900m: 2, above_900m: 3, multi_house_2: 3, multi_house_3: 8}
    holding_multiplier: 0.7
`), 0o600))

	reg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "2024.2", reg.Version())
	assert.Equal(t, 10, reg.Len())

	bundang := reg.Lookup("41135")
	assert.False(t, bundang.IsAdjusted(), "override replaces the embedded profile")
	assert.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), bundang.EffectiveDate())

	_, ok := reg.Resolve("30200")
	assert.True(t, ok)
	assert.True(t, reg.Lookup("11680").IsSpeculative(), "untouched regions survive")
}

func TestLoadMissingOverride(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "empty", yaml: ""},
		{name: "no default", yaml: "version: x\nregions: []\n"},
		{name: "unknown field", yaml: "version: x\nregoins: []\n"},
		{
			name: "ltv out of range",
			yaml: `
default:
  code: DEFAULT
  ltv: {first_home: 170, owned_1: 70, owned_2_plus: 60}
  acquisition_rates: {up_to_600m: 1, up_to_900m: 2, above_900m: 3, multi_house_2: 3, multi_house_3: 8}
`,
		},
		{
			name: "bad date",
			yaml: `
effective_date: "05/01/2023"
default:
  code: DEFAULT
  ltv: {first_home: 70, owned_1: 70, owned_2_plus: 60}
  acquisition_rates: {up_to_600m: 1, up_to_900m: 2, above_900m: 3, multi_house_2: 3, multi_house_3: 8}
`,
		},
		{
			name: "duplicate region",
			yaml: `
default:
  code: DEFAULT
  ltv: {first_home: 70, owned_1: 70, owned_2_plus: 60}
  acquisition_rates: {up_to_600m: 1, up_to_900m: 2, above_900m: 3, multi_house_2: 3, multi_house_3: 8}
regions:
  - code: "11680"
    ltv: {first_home: 50, owned_1: 40, owned_2_plus: 0}
    acquisition_rates: {up_to_600m: 1, up_to_900m: 2, above_900m: 3, multi_house_2: 8, multi_house_3: 12}
  - code: "11680"
    ltv: {first_home: 50, owned_1: 40, owned_2_plus: 0}
    acquisition_rates: {up_to_600m: 1, up_to_900m: 2, above_900m: 3, multi_house_2: 8, multi_house_3: 12}
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestParseDuplicateIsSentinel(t *testing.T) {
	_, err := Parse(strings.NewReader(`
default:
  code: DEFAULT
  ltv: {first_home: 70, owned_1: 70, owned_2_plus: 60}
  acquisition_rates: {up_to_600m: 1, up_to_900m: 2, above_900m: 3, multi_house_2: 3, multi_house_3: 8}
regions:
  - code: "1"
    acquisition_rates: {multi_house_2: 0, multi_house_3: 0}
  - code: "1"
    acquisition_rates: {multi_house_2: 0, multi_house_3: 0}
`))
	assert.ErrorIs(t, err, model.ErrDuplicateRegion)
}
