package vocab

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Canonical sampling-type names that trigger conditional event fields.
// Overridden vocabularies keep these names if they want traffic or
// institutional behavior.
const (
	TrafficTypeName       = "Traffic"
	InstitutionalTypeName = "Institutional"
)

// Vocab holds the static lookup lists every generator draws from.
type Vocab struct {
	RegionDistricts  map[string][]string `yaml:"region_districts"`
	SamplingTypes    []string            `yaml:"sampling_types"`
	InstitutionTypes []string            `yaml:"institution_types"`
	AgeRanges        []string            `yaml:"age_ranges"`
	Brands           []string            `yaml:"brands"`
	Reasons          []string            `yaml:"reasons"`
}

// Default returns the built-in market-sampling vocabulary.
func Default() *Vocab {
	return &Vocab{
		RegionDistricts: map[string][]string{
			"Greater Accra": {"La Nkwantanang", "Ablekuma", "Madina", "Adenta"},
			"Ashanti":       {"Kumasi Metro", "Ejisu", "Obuasi"},
			"Central":       {"Cape Coast", "Kasoa", "Mankessim"},
		},
		SamplingTypes:    []string{"Open Market", TrafficTypeName, "Trade", "Third Space", InstitutionalTypeName},
		InstitutionTypes: []string{"Church", "Mosque"},
		AgeRanges:        []string{"18-24", "25-34", "35-44", "45-54", "55+"},
		Brands:           []string{"Pepsodent", "Kel", "Colgate", "Close-Up", "Oral-B", "Sensodyne"},
		Reasons: []string{
			"Curious about the brand",
			"Referred by friend",
			"Free product sample",
			"Interested in survey",
			"Enjoy trying new products",
			"Promoter was convincing",
			"Happened to be available",
		},
	}
}

// LoadFile merges YAML overrides from path over the defaults. A list or map
// present in the file replaces the corresponding default wholesale.
func LoadFile(path string) (*Vocab, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary file %s: %w", path, err)
	}

	var override Vocab
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("failed to parse vocabulary file %s: %w", path, err)
	}

	v := Default()
	if len(override.RegionDistricts) > 0 {
		v.RegionDistricts = override.RegionDistricts
	}
	if len(override.SamplingTypes) > 0 {
		v.SamplingTypes = override.SamplingTypes
	}
	if len(override.InstitutionTypes) > 0 {
		v.InstitutionTypes = override.InstitutionTypes
	}
	if len(override.AgeRanges) > 0 {
		v.AgeRanges = override.AgeRanges
	}
	if len(override.Brands) > 0 {
		v.Brands = override.Brands
	}
	if len(override.Reasons) > 0 {
		v.Reasons = override.Reasons
	}

	return v, nil
}

// Validate checks that every list a generator may draw from is populated.
func (v *Vocab) Validate() error {
	if len(v.RegionDistricts) == 0 {
		return fmt.Errorf("vocabulary has no regions")
	}
	for region, districts := range v.RegionDistricts {
		if len(districts) == 0 {
			return fmt.Errorf("region %s has no districts", region)
		}
	}
	if len(v.SamplingTypes) == 0 {
		return fmt.Errorf("vocabulary has no sampling types")
	}
	if len(v.InstitutionTypes) == 0 {
		return fmt.Errorf("vocabulary has no institution types")
	}
	if len(v.AgeRanges) == 0 {
		return fmt.Errorf("vocabulary has no age ranges")
	}
	if len(v.Brands) == 0 {
		return fmt.Errorf("vocabulary has no brands")
	}
	if len(v.Reasons) == 0 {
		return fmt.Errorf("vocabulary has no participation reasons")
	}
	return nil
}

// DistrictPairs flattens the region map into (region, district) pairs sorted
// by region then district, so iteration order is stable across runs.
func (v *Vocab) DistrictPairs() []DistrictPair {
	regions := make([]string, 0, len(v.RegionDistricts))
	for region := range v.RegionDistricts {
		regions = append(regions, region)
	}
	sort.Strings(regions)

	var pairs []DistrictPair
	for _, region := range regions {
		for _, district := range v.RegionDistricts[region] {
			pairs = append(pairs, DistrictPair{Region: region, District: district})
		}
	}
	return pairs
}

type DistrictPair struct {
	Region   string
	District string
}

// IsTraffic reports whether a sampling-type name carries the
// passengers-per-car field.
func IsTraffic(name string) bool {
	return strings.EqualFold(name, TrafficTypeName)
}

// IsInstitutional reports whether a sampling-type name requires an
// institution-type reference.
func IsInstitutional(name string) bool {
	return strings.EqualFold(name, InstitutionalTypeName)
}
