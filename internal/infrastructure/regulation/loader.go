// Package regulation loads the regional regulation table from YAML.
package regulation

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bibbank/bib/services/realcare-service/internal/domain/model"
)

//go:embed regulations.yaml
var embeddedTable []byte

const dateLayout = "2006-01-02"

type document struct {
	Version       string         `yaml:"version"`
	EffectiveDate string         `yaml:"effective_date"`
	Default       *regionRecord  `yaml:"default"`
	Regions       []regionRecord `yaml:"regions"`
}

type regionRecord struct {
	Code              string      `yaml:"code"`
	Name              string      `yaml:"name"`
	NameEn            string      `yaml:"name_en"`
	EffectiveDate     string      `yaml:"effective_date"`
	LTV               ltvRecord   `yaml:"ltv"`
	AcquisitionRates  ratesRecord `yaml:"acquisition_rates"`
	HoldingMultiplier float64     `yaml:"holding_multiplier"`
	Speculative       bool        `yaml:"speculative"`
	Adjusted          bool        `yaml:"adjusted"`
}

type ltvRecord struct {
	FirstHome  float64 `yaml:"first_home"`
	Owned1     float64 `yaml:"owned_1"`
	Owned2Plus float64 `yaml:"owned_2_plus"`
}

type ratesRecord struct {
	UpTo600M    float64 `yaml:"up_to_600m"`
	UpTo900M    float64 `yaml:"up_to_900m"`
	Above900M   float64 `yaml:"above_900m"`
	MultiHouse2 float64 `yaml:"multi_house_2"`
	MultiHouse3 float64 `yaml:"multi_house_3"`
}

// Embedded builds the registry from the table compiled into the binary.
func Embedded() (*model.RegulationRegistry, error) {
	doc, err := decode(bytes.NewReader(embeddedTable))
	if err != nil {
		return nil, fmt.Errorf("decode embedded regulations: %w", err)
	}
	return doc.build()
}

// MustEmbedded is Embedded that panics. The embedded table is covered by
// tests, so a failure here is a build defect.
func MustEmbedded() *model.RegulationRegistry {
	reg, err := Embedded()
	if err != nil {
		panic(err)
	}
	return reg
}

// Load builds the registry from the embedded table, then applies the override
// file at path when one is given. Override regions replace embedded regions
// with the same code and add new ones; a non-empty version or default profile
// in the override wins.
func Load(path string) (*model.RegulationRegistry, error) {
	base, err := decode(bytes.NewReader(embeddedTable))
	if err != nil {
		return nil, fmt.Errorf("decode embedded regulations: %w", err)
	}
	if path == "" {
		return base.build()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open regulation override: %w", err)
	}
	defer f.Close()

	override, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode regulation override %s: %w", path, err)
	}
	return base.merge(override).build()
}

// Parse builds a registry from a standalone table.
func Parse(r io.Reader) (*model.RegulationRegistry, error) {
	doc, err := decode(r)
	if err != nil {
		return nil, err
	}
	return doc.build()
}

func decode(r io.Reader) (document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return document{}, fmt.Errorf("%w: empty regulation table", model.ErrInvalidRegulation)
		}
		return document{}, err
	}
	return doc, nil
}

func (d document) merge(o document) document {
	out := d
	if o.Version != "" {
		out.Version = o.Version
	}
	if o.EffectiveDate != "" {
		out.EffectiveDate = o.EffectiveDate
	}
	if o.Default != nil {
		out.Default = o.Default
	}

	index := make(map[string]int, len(d.Regions))
	out.Regions = append([]regionRecord(nil), d.Regions...)
	for i, r := range out.Regions {
		index[r.Code] = i
	}
	for _, r := range o.Regions {
		if i, ok := index[r.Code]; ok {
			out.Regions[i] = r
			continue
		}
		index[r.Code] = len(out.Regions)
		out.Regions = append(out.Regions, r)
	}
	return out
}

func (d document) build() (*model.RegulationRegistry, error) {
	if d.Default == nil {
		return nil, fmt.Errorf("%w: default profile is required", model.ErrInvalidRegulation)
	}
	docDate, err := parseDate(d.EffectiveDate, time.Time{})
	if err != nil {
		return nil, err
	}

	fallback, err := d.Default.toModel(docDate)
	if err != nil {
		return nil, fmt.Errorf("default profile: %w", err)
	}

	regions := make([]model.RegionRegulation, 0, len(d.Regions))
	for _, rec := range d.Regions {
		reg, err := rec.toModel(docDate)
		if err != nil {
			return nil, err
		}
		regions = append(regions, reg)
	}

	return model.NewRegulationRegistry(d.Version, fallback, regions...)
}

func (r regionRecord) toModel(docDate time.Time) (model.RegionRegulation, error) {
	effective, err := parseDate(r.EffectiveDate, docDate)
	if err != nil {
		return model.RegionRegulation{}, fmt.Errorf("region %s: %w", r.Code, err)
	}
	return model.NewRegionRegulation(model.RegionRegulationParams{
		EffectiveDate: effective,
		Code:          r.Code,
		Name:          r.Name,
		NameEn:        r.NameEn,
		LTV: model.LTVLimits{
			FirstHome:  r.LTV.FirstHome,
			Owned1:     r.LTV.Owned1,
			Owned2Plus: r.LTV.Owned2Plus,
		},
		AcquisitionRates: model.AcquisitionTaxRates{
			UpTo600M:    r.AcquisitionRates.UpTo600M,
			UpTo900M:    r.AcquisitionRates.UpTo900M,
			Above900M:   r.AcquisitionRates.Above900M,
			MultiHouse2: r.AcquisitionRates.MultiHouse2,
			MultiHouse3: r.AcquisitionRates.MultiHouse3,
		},
		HoldingMultiplier: r.HoldingMultiplier,
		Speculative:       r.Speculative,
		Adjusted:          r.Adjusted,
	})
}

func parseDate(s string, fallback time.Time) (time.Time, error) {
	if s == "" {
		return fallback, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: effective date %q: %v", model.ErrInvalidRegulation, s, err)
	}
	return t, nil
}
