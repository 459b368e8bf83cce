package dataset

import (
	"testing"
	"time"
)

func date(s string) time.Time {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		panic(err)
	}
	return t
}

func sampleDataset() *Dataset {
	return &Dataset{
		Name:   "test_run",
		IDBase: 1,
		Areas:  []Area{{AreaID: 1, AreaName: "Madina Area 1", District: "Madina", Region: "Greater Accra"}},
		Promoters: []Promoter{
			{PromoterID: 1, Name: "Ama Mensah", Contact: "024-000-0001"},
		},
		SamplingTypes: []SamplingType{
			{SamplingTypeID: 1, SamplingTypeName: "Open Market"},
			{SamplingTypeID: 2, SamplingTypeName: "Traffic"},
			{SamplingTypeID: 3, SamplingTypeName: "Institutional"},
		},
		InstitutionTypes: []InstitutionType{{InstitutionTypeID: 1, InstitutionName: "Church"}},
		Events: []SamplingEvent{
			{
				SamplingID: 1, AreaID: 1, PromoterID: 1, SamplingTypeID: 1,
				SamplingDate: date("2025-03-10"), SamplingTarget: 150, SamplingCount: 120,
				Brand: "Colgate", Detail: GeneralDetail{},
			},
			{
				SamplingID: 2, AreaID: 1, PromoterID: 1, SamplingTypeID: 2,
				SamplingDate: date("2025-03-12"), SamplingTarget: 180, SamplingCount: 90,
				Brand: "Pepsodent", Detail: TrafficDetail{PassengersPerCar: 6},
			},
			{
				SamplingID: 3, AreaID: 1, PromoterID: 1, SamplingTypeID: 3,
				SamplingDate: date("2025-03-15"), SamplingTarget: 110, SamplingCount: 110,
				Brand: "Kel", Detail: InstitutionalDetail{InstitutionTypeID: 1},
			},
		},
		Respondents: []Respondent{
			{
				RespondentID: 1, SamplingID: 2, FullName: "Kofi Boateng",
				AgeRange: "25-34", Contact: "020-111-2222", ResidenceArea: "Madina Area 1",
				PreferredBrand: "Close-Up", Reason: "Free product sample",
				OptInOtherProducts: "Yes", DateOfSubmission: date("2025-03-20"),
			},
		},
	}
}

func TestTablesKeepExportOrder(t *testing.T) {
	tables := sampleDataset().Tables()

	want := []string{"Area", "Promoter", "SamplingFact", "Respondents", "SamplingType", "InstitutionType", "DateDim"}
	if len(tables) != len(want) {
		t.Fatalf("expected %d tables, got %d", len(want), len(tables))
	}
	for i, name := range want {
		if tables[i].Name != name {
			t.Errorf("table %d: expected %s, got %s", i, name, tables[i].Name)
		}
	}
}

func TestSamplingFactConditionalCells(t *testing.T) {
	ds := sampleDataset()
	var fact Table
	for _, tb := range ds.Tables() {
		if tb.Name == TableSamplingFact {
			fact = tb
		}
	}

	if len(fact.Rows) != 3 {
		t.Fatalf("expected 3 fact rows, got %d", len(fact.Rows))
	}

	// Columns: 4=institutionTypeID, 8=passengersPerCar.
	openMarket, traffic, institutional := fact.Rows[0], fact.Rows[1], fact.Rows[2]

	if openMarket[4] != "" || openMarket[8] != "" {
		t.Errorf("open-market row should leave conditional cells empty, got %q / %q", openMarket[4], openMarket[8])
	}
	if traffic[4] != "" || traffic[8] != "6" {
		t.Errorf("traffic row: expected empty institution and passengers 6, got %q / %q", traffic[4], traffic[8])
	}
	if institutional[4] != "1" || institutional[8] != "" {
		t.Errorf("institutional row: expected institution 1 and empty passengers, got %q / %q", institutional[4], institutional[8])
	}
}

func TestSamplingFactHeaders(t *testing.T) {
	fact := sampleDataset().Tables()[2]
	want := []string{
		"samplingID", "areaID", "promoterID", "samplingTypeID",
		"institutionTypeID", "samplingDate", "samplingTarget",
		"samplingCount", "passengersPerCar", "brand",
	}
	if len(fact.Headers) != len(want) {
		t.Fatalf("expected %d headers, got %d", len(want), len(fact.Headers))
	}
	for i, h := range want {
		if fact.Headers[i] != h {
			t.Errorf("header %d: expected %s, got %s", i, h, fact.Headers[i])
		}
	}
}

func TestBuildDateDimCoversAllUsedDates(t *testing.T) {
	ds := sampleDataset()
	dims := BuildDateDim(ds.Events, ds.Respondents)

	// Three event dates plus one submission date, all distinct.
	if len(dims) != 4 {
		t.Fatalf("expected 4 calendar rows, got %d", len(dims))
	}

	for i := 1; i < len(dims); i++ {
		if dims[i].DateKey <= dims[i-1].DateKey {
			t.Errorf("calendar rows not ascending: %d then %d", dims[i-1].DateKey, dims[i].DateKey)
		}
	}

	first := dims[0]
	if first.DateKey != 20250310 {
		t.Errorf("expected first date key 20250310, got %d", first.DateKey)
	}
	if first.Quarter != 1 || first.Month != 3 || first.Year != 2025 {
		t.Errorf("wrong calendar fields: %+v", first)
	}
	if first.Weekday != "Monday" {
		t.Errorf("2025-03-10 is a Monday, got %s", first.Weekday)
	}
}

func TestBuildDateDimDeduplicatesSharedDates(t *testing.T) {
	events := []SamplingEvent{
		{SamplingID: 1, SamplingDate: date("2025-05-01")},
		{SamplingID: 2, SamplingDate: date("2025-05-01")},
	}
	respondents := []Respondent{
		{RespondentID: 1, SamplingID: 1, DateOfSubmission: date("2025-05-01")},
	}

	dims := BuildDateDim(events, respondents)
	if len(dims) != 1 {
		t.Fatalf("expected 1 calendar row for a shared date, got %d", len(dims))
	}
}

func TestReportCountsRows(t *testing.T) {
	counts := sampleDataset().Report()

	byTable := make(map[string]int)
	for _, c := range counts {
		byTable[c.Table] = c.Rows
	}

	if byTable[TableSamplingFact] != 3 {
		t.Errorf("expected 3 fact rows in report, got %d", byTable[TableSamplingFact])
	}
	if byTable[TableRespondents] != 1 {
		t.Errorf("expected 1 respondent row in report, got %d", byTable[TableRespondents])
	}
	if byTable[TableDateDim] != 0 {
		t.Errorf("sample dataset has no materialized dates, got %d", byTable[TableDateDim])
	}
}
