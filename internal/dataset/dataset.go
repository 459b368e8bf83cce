package dataset

import (
	"sort"
	"strconv"
	"time"
)

// Export table names. Order here is the export order.
const (
	TableArea            = "Area"
	TablePromoter        = "Promoter"
	TableSamplingFact    = "SamplingFact"
	TableRespondents     = "Respondents"
	TableSamplingType    = "SamplingType"
	TableInstitutionType = "InstitutionType"
	TableDateDim         = "DateDim"
)

// Dataset is one fully generated, immutable run. IDBase records the first
// key every table was numbered from; a zero value means the base is unknown
// and only key density can be checked.
type Dataset struct {
	Name             string
	IDBase           int
	Areas            []Area
	Promoters        []Promoter
	SamplingTypes    []SamplingType
	InstitutionTypes []InstitutionType
	Events           []SamplingEvent
	Respondents      []Respondent
	Dates            []DateDim
}

// Table is one exportable sheet: a fixed header row plus string cells in
// generation order. Absent conditional attributes render as empty cells.
type Table struct {
	Name    string
	Headers []string
	Rows    [][]string
}

// Tables projects every entity sequence into its export table, in the fixed
// export order.
func (d *Dataset) Tables() []Table {
	return []Table{
		d.areaTable(),
		d.promoterTable(),
		d.samplingFactTable(),
		d.respondentTable(),
		d.samplingTypeTable(),
		d.institutionTypeTable(),
		d.dateDimTable(),
	}
}

func (d *Dataset) areaTable() Table {
	t := Table{
		Name:    TableArea,
		Headers: []string{"areaID", "areaName", "district", "region"},
	}
	for _, a := range d.Areas {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(a.AreaID), a.AreaName, a.District, a.Region,
		})
	}
	return t
}

func (d *Dataset) promoterTable() Table {
	t := Table{
		Name:    TablePromoter,
		Headers: []string{"promoterID", "name", "contact"},
	}
	for _, p := range d.Promoters {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(p.PromoterID), p.Name, p.Contact,
		})
	}
	return t
}

func (d *Dataset) samplingFactTable() Table {
	t := Table{
		Name: TableSamplingFact,
		Headers: []string{
			"samplingID", "areaID", "promoterID", "samplingTypeID",
			"institutionTypeID", "samplingDate", "samplingTarget",
			"samplingCount", "passengersPerCar", "brand",
		},
	}
	for _, e := range d.Events {
		institution := ""
		if id, ok := e.InstitutionTypeID(); ok {
			institution = strconv.Itoa(id)
		}
		passengers := ""
		if n, ok := e.PassengersPerCar(); ok {
			passengers = strconv.Itoa(n)
		}
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(e.SamplingID),
			strconv.Itoa(e.AreaID),
			strconv.Itoa(e.PromoterID),
			strconv.Itoa(e.SamplingTypeID),
			institution,
			e.SamplingDate.Format(DateFormat),
			strconv.Itoa(e.SamplingTarget),
			strconv.Itoa(e.SamplingCount),
			passengers,
			e.Brand,
		})
	}
	return t
}

func (d *Dataset) respondentTable() Table {
	t := Table{
		Name: TableRespondents,
		Headers: []string{
			"respondentID", "samplingID", "fullName", "ageRange", "contact",
			"residenceArea", "preferredBrand", "reason", "optInOtherProducts",
			"dateOfSubmission",
		},
	}
	for _, r := range d.Respondents {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(r.RespondentID),
			strconv.Itoa(r.SamplingID),
			r.FullName,
			r.AgeRange,
			r.Contact,
			r.ResidenceArea,
			r.PreferredBrand,
			r.Reason,
			r.OptInOtherProducts,
			r.DateOfSubmission.Format(DateFormat),
		})
	}
	return t
}

func (d *Dataset) samplingTypeTable() Table {
	t := Table{
		Name:    TableSamplingType,
		Headers: []string{"samplingTypeID", "samplingTypeName"},
	}
	for _, s := range d.SamplingTypes {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(s.SamplingTypeID), s.SamplingTypeName,
		})
	}
	return t
}

func (d *Dataset) institutionTypeTable() Table {
	t := Table{
		Name:    TableInstitutionType,
		Headers: []string{"institutionTypeID", "institutionName"},
	}
	for _, i := range d.InstitutionTypes {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(i.InstitutionTypeID), i.InstitutionName,
		})
	}
	return t
}

func (d *Dataset) dateDimTable() Table {
	t := Table{
		Name: TableDateDim,
		Headers: []string{
			"dateKey", "date", "day", "weekday", "week", "month",
			"monthName", "quarter", "year",
		},
	}
	for _, dd := range d.Dates {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(dd.DateKey),
			dd.Date.Format(DateFormat),
			strconv.Itoa(dd.Day),
			dd.Weekday,
			strconv.Itoa(dd.Week),
			strconv.Itoa(dd.Month),
			dd.MonthName,
			strconv.Itoa(dd.Quarter),
			strconv.Itoa(dd.Year),
		})
	}
	return t
}

// BuildDateDim materializes the calendar lookup for every distinct date used
// by sampling events and respondent submissions, sorted ascending.
func BuildDateDim(events []SamplingEvent, respondents []Respondent) []DateDim {
	seen := make(map[int]time.Time)
	for _, e := range events {
		d := e.SamplingDate
		seen[dateKey(d)] = d
	}
	for _, r := range respondents {
		d := r.DateOfSubmission
		seen[dateKey(d)] = d
	}

	keys := make([]int, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	dims := make([]DateDim, 0, len(keys))
	for _, k := range keys {
		d := seen[k]
		_, week := d.ISOWeek()
		dims = append(dims, DateDim{
			DateKey:   k,
			Date:      d,
			Day:       d.Day(),
			Weekday:   d.Weekday().String(),
			Week:      week,
			Month:     int(d.Month()),
			MonthName: d.Month().String(),
			Quarter:   (int(d.Month())-1)/3 + 1,
			Year:      d.Year(),
		})
	}
	return dims
}

func dateKey(t time.Time) int {
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}
