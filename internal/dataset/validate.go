package dataset

import (
	"fmt"

	"github.com/ealswell/fieldforge/internal/vocab"
)

// Validate re-checks the structural invariants of an assembled dataset and
// returns every violation found. A freshly generated dataset must always
// validate clean; this exists so exported artifacts can be re-verified
// independently of the generator.
func (d *Dataset) Validate() []error {
	var errs []error

	errs = append(errs, checkKeys(TableArea, areaIDs(d.Areas), d.IDBase)...)
	errs = append(errs, checkKeys(TablePromoter, promoterIDs(d.Promoters), d.IDBase)...)
	errs = append(errs, checkKeys(TableSamplingType, samplingTypeIDs(d.SamplingTypes), d.IDBase)...)
	errs = append(errs, checkKeys(TableInstitutionType, institutionTypeIDs(d.InstitutionTypes), d.IDBase)...)
	errs = append(errs, checkKeys(TableSamplingFact, eventIDs(d.Events), d.IDBase)...)
	errs = append(errs, checkKeys(TableRespondents, respondentIDs(d.Respondents), d.IDBase)...)

	areas := toSet(areaIDs(d.Areas))
	promoters := toSet(promoterIDs(d.Promoters))
	institutions := toSet(institutionTypeIDs(d.InstitutionTypes))

	types := make(map[int]string, len(d.SamplingTypes))
	for _, s := range d.SamplingTypes {
		types[s.SamplingTypeID] = s.SamplingTypeName
	}

	eventDates := make(map[int]SamplingEvent, len(d.Events))
	for _, e := range d.Events {
		eventDates[e.SamplingID] = e

		if !areas[e.AreaID] {
			errs = append(errs, fmt.Errorf("sampling %d references missing area %d", e.SamplingID, e.AreaID))
		}
		if !promoters[e.PromoterID] {
			errs = append(errs, fmt.Errorf("sampling %d references missing promoter %d", e.SamplingID, e.PromoterID))
		}
		typeName, ok := types[e.SamplingTypeID]
		if !ok {
			errs = append(errs, fmt.Errorf("sampling %d references missing sampling type %d", e.SamplingID, e.SamplingTypeID))
		}

		institutionID, hasInstitution := e.InstitutionTypeID()
		if ok && vocab.IsInstitutional(typeName) != hasInstitution {
			errs = append(errs, fmt.Errorf("sampling %d: institutionTypeID presence does not match sampling type %q", e.SamplingID, typeName))
		}
		if hasInstitution && !institutions[institutionID] {
			errs = append(errs, fmt.Errorf("sampling %d references missing institution type %d", e.SamplingID, institutionID))
		}
		if _, hasPassengers := e.PassengersPerCar(); ok && vocab.IsTraffic(typeName) != hasPassengers {
			errs = append(errs, fmt.Errorf("sampling %d: passengersPerCar presence does not match sampling type %q", e.SamplingID, typeName))
		}

		if e.SamplingCount > e.SamplingTarget {
			errs = append(errs, fmt.Errorf("sampling %d: count %d exceeds target %d", e.SamplingID, e.SamplingCount, e.SamplingTarget))
		}
	}

	seenEvents := make(map[int]bool, len(d.Respondents))
	for _, r := range d.Respondents {
		parent, ok := eventDates[r.SamplingID]
		if !ok {
			errs = append(errs, fmt.Errorf("respondent %d references missing sampling %d", r.RespondentID, r.SamplingID))
			continue
		}
		if seenEvents[r.SamplingID] {
			errs = append(errs, fmt.Errorf("sampling %d has more than one respondent", r.SamplingID))
		}
		seenEvents[r.SamplingID] = true

		if r.DateOfSubmission.Before(parent.SamplingDate) {
			errs = append(errs, fmt.Errorf("respondent %d submitted %s before sampling date %s",
				r.RespondentID,
				r.DateOfSubmission.Format(DateFormat),
				parent.SamplingDate.Format(DateFormat)))
		}
	}

	return errs
}

// checkKeys verifies keys are unique and strictly ascending with no gaps,
// and, when base is known, that numbering starts at base. An empty table is
// valid.
func checkKeys(table string, ids []int, base int) []error {
	var errs []error
	if base >= 1 && len(ids) > 0 && ids[0] != base {
		errs = append(errs, fmt.Errorf("%s: first key %d, expected keys to start at %d", table, ids[0], base))
	}
	for i := 1; i < len(ids); i++ {
		if ids[i] != ids[i-1]+1 {
			errs = append(errs, fmt.Errorf("%s: key %d follows %d, expected dense ascending keys", table, ids[i], ids[i-1]))
		}
	}
	return errs
}

func toSet(ids []int) map[int]bool {
	set := make(map[int]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func areaIDs(areas []Area) []int {
	ids := make([]int, len(areas))
	for i, a := range areas {
		ids[i] = a.AreaID
	}
	return ids
}

func promoterIDs(promoters []Promoter) []int {
	ids := make([]int, len(promoters))
	for i, p := range promoters {
		ids[i] = p.PromoterID
	}
	return ids
}

func samplingTypeIDs(types []SamplingType) []int {
	ids := make([]int, len(types))
	for i, s := range types {
		ids[i] = s.SamplingTypeID
	}
	return ids
}

func institutionTypeIDs(types []InstitutionType) []int {
	ids := make([]int, len(types))
	for i, it := range types {
		ids[i] = it.InstitutionTypeID
	}
	return ids
}

func eventIDs(events []SamplingEvent) []int {
	ids := make([]int, len(events))
	for i, e := range events {
		ids[i] = e.SamplingID
	}
	return ids
}

func respondentIDs(respondents []Respondent) []int {
	ids := make([]int, len(respondents))
	for i, r := range respondents {
		ids[i] = r.RespondentID
	}
	return ids
}
