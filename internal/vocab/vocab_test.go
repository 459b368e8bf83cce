package vocab

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultVocabularyIsComplete(t *testing.T) {
	v := Default()
	if err := v.Validate(); err != nil {
		t.Fatalf("default vocabulary should validate, got %v", err)
	}

	if len(v.SamplingTypes) != 5 {
		t.Errorf("expected 5 sampling types, got %d", len(v.SamplingTypes))
	}
	if len(v.RegionDistricts) != 3 {
		t.Errorf("expected 3 regions, got %d", len(v.RegionDistricts))
	}
	if len(v.DistrictPairs()) != 10 {
		t.Errorf("expected 10 region/district pairs, got %d", len(v.DistrictPairs()))
	}
}

func TestDistrictPairsAreStable(t *testing.T) {
	v := Default()
	first := v.DistrictPairs()
	second := v.DistrictPairs()

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("pair %d differs between calls: %v vs %v", i, first[i], second[i])
		}
	}

	// Sorted by region: Ashanti before Central before Greater Accra.
	if first[0].Region != "Ashanti" {
		t.Errorf("expected Ashanti first, got %s", first[0].Region)
	}
}

func TestTypeClassification(t *testing.T) {
	if !IsTraffic("Traffic") || !IsTraffic("traffic") {
		t.Error("Traffic should classify as traffic regardless of case")
	}
	if !IsInstitutional("Institutional") {
		t.Error("Institutional should classify as institutional")
	}
	if IsTraffic("Open Market") || IsInstitutional("Trade") {
		t.Error("plain sampling types should not classify as conditional")
	}
}

func TestLoadFileMergesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.yaml")
	content := `
brands:
  - BrandA
  - BrandB
region_districts:
  Volta:
    - Ho
    - Keta
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write override file: %v", err)
	}

	v, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if len(v.Brands) != 2 || v.Brands[0] != "BrandA" {
		t.Errorf("brands override not applied: %v", v.Brands)
	}
	if len(v.RegionDistricts) != 1 || len(v.RegionDistricts["Volta"]) != 2 {
		t.Errorf("region override not applied: %v", v.RegionDistricts)
	}

	// Untouched lists keep their defaults.
	if len(v.Reasons) != 7 {
		t.Errorf("reasons should keep defaults, got %d", len(v.Reasons))
	}
	if len(v.SamplingTypes) != 5 {
		t.Errorf("sampling types should keep defaults, got %d", len(v.SamplingTypes))
	}
}

func TestLoadFileRejectsMissingFile(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected an error for a missing vocabulary file")
	}
}

func TestLoadFileRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.yaml")
	if err := os.WriteFile(path, []byte("brands: [unclosed"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("expected an error for malformed YAML")
	}
}

func TestValidateRejectsEmptyLists(t *testing.T) {
	v := Default()
	v.Brands = nil
	if err := v.Validate(); err == nil {
		t.Error("expected validation failure for empty brand list")
	}

	v = Default()
	v.RegionDistricts["Ashanti"] = nil
	if err := v.Validate(); err == nil {
		t.Error("expected validation failure for region without districts")
	}
}
