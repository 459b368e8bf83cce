package gen

import (
	"errors"
	"reflect"
	"testing"

	"github.com/ealswell/fieldforge/internal/config"
	"github.com/ealswell/fieldforge/internal/dataset"
	"github.com/ealswell/fieldforge/internal/vocab"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Counts = config.Counts{
		Areas:            3,
		Promoters:        2,
		SamplingTypes:    5,
		InstitutionTypes: 2,
		SamplingEvents:   10,
	}
	cfg.RespondentCoverage = 0.5
	return cfg
}

func runTestPipeline(t *testing.T, cfg *config.Config) *dataset.Dataset {
	t.Helper()
	ds, err := NewPipeline(cfg, vocab.Default()).Run()
	if err != nil {
		t.Fatalf("pipeline run failed: %v", err)
	}
	return ds
}

func TestPipelineProducesConfiguredCounts(t *testing.T) {
	ds := runTestPipeline(t, testConfig())

	if len(ds.Areas) != 3 {
		t.Errorf("expected 3 areas, got %d", len(ds.Areas))
	}
	if len(ds.Promoters) != 2 {
		t.Errorf("expected 2 promoters, got %d", len(ds.Promoters))
	}
	if len(ds.SamplingTypes) != 5 {
		t.Errorf("expected 5 sampling types, got %d", len(ds.SamplingTypes))
	}
	if len(ds.InstitutionTypes) != 2 {
		t.Errorf("expected 2 institution types, got %d", len(ds.InstitutionTypes))
	}
	if len(ds.Events) != 10 {
		t.Errorf("expected 10 sampling events, got %d", len(ds.Events))
	}
}

func TestEventForeignKeysStayInParentPools(t *testing.T) {
	ds := runTestPipeline(t, testConfig())

	for _, e := range ds.Events {
		if e.AreaID < 1 || e.AreaID > 3 {
			t.Errorf("sampling %d: areaID %d outside generated pool {1,2,3}", e.SamplingID, e.AreaID)
		}
		if e.PromoterID < 1 || e.PromoterID > 2 {
			t.Errorf("sampling %d: promoterID %d outside generated pool {1,2}", e.SamplingID, e.PromoterID)
		}
		if e.SamplingTypeID < 1 || e.SamplingTypeID > 5 {
			t.Errorf("sampling %d: samplingTypeID %d outside generated pool", e.SamplingID, e.SamplingTypeID)
		}
	}
}

func TestConditionalFieldsMatchSamplingType(t *testing.T) {
	cfg := testConfig()
	cfg.Counts.SamplingEvents = 200
	ds := runTestPipeline(t, cfg)

	names := make(map[int]string)
	for _, st := range ds.SamplingTypes {
		names[st.SamplingTypeID] = st.SamplingTypeName
	}

	sawInstitutional, sawTraffic := false, false
	for _, e := range ds.Events {
		name := names[e.SamplingTypeID]

		institutionID, hasInstitution := e.InstitutionTypeID()
		if hasInstitution != vocab.IsInstitutional(name) {
			t.Errorf("sampling %d: type %q but institution presence is %v", e.SamplingID, name, hasInstitution)
		}
		if hasInstitution {
			sawInstitutional = true
			if institutionID < 1 || institutionID > 2 {
				t.Errorf("sampling %d: institutionTypeID %d outside generated pool", e.SamplingID, institutionID)
			}
		}

		passengers, hasPassengers := e.PassengersPerCar()
		if hasPassengers != vocab.IsTraffic(name) {
			t.Errorf("sampling %d: type %q but passengers presence is %v", e.SamplingID, name, hasPassengers)
		}
		if hasPassengers {
			sawTraffic = true
			if passengers < 5 || passengers > 10 {
				t.Errorf("sampling %d: passengersPerCar %d outside [5,10]", e.SamplingID, passengers)
			}
		}
	}

	if !sawInstitutional || !sawTraffic {
		t.Errorf("200 events produced no institutional (%v) or no traffic (%v) samples", sawInstitutional, sawTraffic)
	}
}

func TestSamplingCountNeverExceedsTarget(t *testing.T) {
	cfg := testConfig()
	cfg.Counts.SamplingEvents = 100
	ds := runTestPipeline(t, cfg)

	for _, e := range ds.Events {
		if e.SamplingCount > e.SamplingTarget {
			t.Errorf("sampling %d: count %d exceeds target %d", e.SamplingID, e.SamplingCount, e.SamplingTarget)
		}
		if e.SamplingTarget < cfg.TargetRange.Min || e.SamplingTarget > cfg.TargetRange.Max {
			t.Errorf("sampling %d: target %d outside configured range", e.SamplingID, e.SamplingTarget)
		}
	}
}

func TestSamplingDatesStayInWindow(t *testing.T) {
	cfg := testConfig()
	ds := runTestPipeline(t, cfg)

	start, end, err := cfg.DateWindow.Bounds()
	if err != nil {
		t.Fatalf("bad window: %v", err)
	}
	for _, e := range ds.Events {
		if e.SamplingDate.Before(start) || e.SamplingDate.After(end) {
			t.Errorf("sampling %d: date %s outside window", e.SamplingID, e.SamplingDate)
		}
	}
}

func TestRespondentsReferenceDistinctEvents(t *testing.T) {
	ds := runTestPipeline(t, testConfig())

	if len(ds.Respondents) > len(ds.Events) {
		t.Fatalf("%d respondents exceed %d events", len(ds.Respondents), len(ds.Events))
	}

	events := make(map[int]dataset.SamplingEvent)
	for _, e := range ds.Events {
		events[e.SamplingID] = e
	}

	seen := make(map[int]bool)
	for _, r := range ds.Respondents {
		parent, ok := events[r.SamplingID]
		if !ok {
			t.Errorf("respondent %d references missing sampling %d", r.RespondentID, r.SamplingID)
			continue
		}
		if seen[r.SamplingID] {
			t.Errorf("sampling %d has more than one respondent", r.SamplingID)
		}
		seen[r.SamplingID] = true

		if r.DateOfSubmission.Before(parent.SamplingDate) {
			t.Errorf("respondent %d submitted before sampling date", r.RespondentID)
		}
	}
}

func TestFullCoverageGivesOneRespondentPerEvent(t *testing.T) {
	cfg := testConfig()
	cfg.RespondentCoverage = 1.0
	ds := runTestPipeline(t, cfg)

	if len(ds.Respondents) != len(ds.Events) {
		t.Errorf("coverage 1.0: expected %d respondents, got %d", len(ds.Events), len(ds.Respondents))
	}
}

func TestZeroCoverageGivesNoRespondents(t *testing.T) {
	cfg := testConfig()
	cfg.RespondentCoverage = 0
	ds := runTestPipeline(t, cfg)

	if len(ds.Respondents) != 0 {
		t.Errorf("coverage 0: expected no respondents, got %d", len(ds.Respondents))
	}
}

func TestPrimaryKeysAreDenseFromBase(t *testing.T) {
	cfg := testConfig()
	cfg.IDBase = 1000
	ds := runTestPipeline(t, cfg)

	for i, a := range ds.Areas {
		if a.AreaID != 1000+i {
			t.Fatalf("area %d: expected key %d, got %d", i, 1000+i, a.AreaID)
		}
	}
	for i, e := range ds.Events {
		if e.SamplingID != 1000+i {
			t.Fatalf("event %d: expected key %d, got %d", i, 1000+i, e.SamplingID)
		}
	}
	for i, r := range ds.Respondents {
		if r.RespondentID != 1000+i {
			t.Fatalf("respondent %d: expected key %d, got %d", i, 1000+i, r.RespondentID)
		}
	}
}

func TestSameSeedProducesIdenticalDatasets(t *testing.T) {
	first := runTestPipeline(t, testConfig())
	second := runTestPipeline(t, testConfig())

	if !reflect.DeepEqual(first, second) {
		t.Error("two runs with the same seed and config produced different datasets")
	}
}

func TestDifferentSeedsProduceDifferentEvents(t *testing.T) {
	cfg := testConfig()
	first := runTestPipeline(t, cfg)

	other := testConfig()
	other.Seed = 7
	second := runTestPipeline(t, other)

	if reflect.DeepEqual(first.Events, second.Events) {
		t.Error("different seeds produced identical event tables")
	}
}

func TestZeroEventsYieldEmptyFactAndRespondents(t *testing.T) {
	cfg := testConfig()
	cfg.Counts.SamplingEvents = 0
	ds := runTestPipeline(t, cfg)

	if len(ds.Events) != 0 {
		t.Errorf("expected no events, got %d", len(ds.Events))
	}
	if len(ds.Respondents) != 0 {
		t.Errorf("expected no respondents, got %d", len(ds.Respondents))
	}
	if len(ds.Areas) != 3 {
		t.Errorf("dimension tables should still generate, got %d areas", len(ds.Areas))
	}
}

func TestEventsBeforeDimensionsFailWithInsufficientParentPool(t *testing.T) {
	gc := NewContext(1)
	v := vocab.Default()

	types, err := SamplingTypes(gc, v, 1, 5)
	if err != nil {
		t.Fatalf("sampling types: %v", err)
	}

	start, end, _ := config.Default().DateWindow.Bounds()
	_, err = SamplingEvents(gc, EventParams{
		Base:         1,
		Count:        5,
		WindowStart:  start,
		WindowEnd:    end,
		TargetMin:    100,
		TargetMax:    200,
		Brands:       v.Brands,
		Areas:        NewKeyPool(dataset.TableArea, nil),
		Promoters:    NewKeyPool(dataset.TablePromoter, nil),
		Types:        types,
		Institutions: NewKeyPool(dataset.TableInstitutionType, nil),
	})
	if !errors.Is(err, ErrInsufficientParentPool) {
		t.Errorf("expected ErrInsufficientParentPool, got %v", err)
	}
}

func TestTooManySamplingTypesIsInvalidConfig(t *testing.T) {
	gc := NewContext(1)
	_, err := SamplingTypes(gc, vocab.Default(), 1, 50)
	if !errors.Is(err, config.ErrInvalid) {
		t.Errorf("expected ErrInvalid for oversized type count, got %v", err)
	}
}

func TestAreasCycleDistrictPairs(t *testing.T) {
	gc := NewContext(1)
	v := vocab.Default()
	pairs := v.DistrictPairs()

	areas, err := Areas(gc, v, 1, len(pairs)*2)
	if err != nil {
		t.Fatalf("areas: %v", err)
	}

	first := areas[0]
	repeat := areas[len(pairs)]
	if first.District != repeat.District {
		t.Errorf("expected cycling districts, got %q then %q", first.District, repeat.District)
	}
	if first.AreaName == repeat.AreaName {
		t.Errorf("repeated district should get a new area name, both were %q", first.AreaName)
	}
}

func TestZeroCountGeneratorsYieldEmptySequences(t *testing.T) {
	gc := NewContext(1)
	v := vocab.Default()

	areas, err := Areas(gc, v, 1, 0)
	if err != nil {
		t.Fatalf("areas: %v", err)
	}
	if len(areas) != 0 {
		t.Errorf("expected empty area sequence, got %d", len(areas))
	}

	if promoters := Promoters(gc, 1, 0); len(promoters) != 0 {
		t.Errorf("expected empty promoter sequence, got %d", len(promoters))
	}
}
