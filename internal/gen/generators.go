package gen

import (
	"fmt"
	"time"

	"github.com/ealswell/fieldforge/internal/config"
	"github.com/ealswell/fieldforge/internal/dataset"
	"github.com/ealswell/fieldforge/internal/vocab"
)

// maxSubmissionLag caps how many days after the sampling date a respondent
// may submit.
const maxSubmissionLag = 30

// Areas produces n areas by cycling the vocabulary's (region, district)
// pairs, numbering repeated districts.
func Areas(gc *Context, v *vocab.Vocab, base, n int) ([]dataset.Area, error) {
	pairs := v.DistrictPairs()
	if n > 0 && len(pairs) == 0 {
		return nil, fmt.Errorf("%w: vocabulary has no region/district pairs", config.ErrInvalid)
	}

	areas := make([]dataset.Area, 0, n)
	for i := 0; i < n; i++ {
		pair := pairs[i%len(pairs)]
		areas = append(areas, dataset.Area{
			AreaID:   base + i,
			AreaName: fmt.Sprintf("%s Area %d", pair.District, i/len(pairs)+1),
			District: pair.District,
			Region:   pair.Region,
		})
	}
	return areas, nil
}

// Promoters produces n promoters with faker-generated names and contacts.
func Promoters(gc *Context, base, n int) []dataset.Promoter {
	promoters := make([]dataset.Promoter, 0, n)
	for i := 0; i < n; i++ {
		promoters = append(promoters, dataset.Promoter{
			PromoterID: base + i,
			Name:       gc.Faker().Name(),
			Contact:    gc.Faker().PhoneFormatted(),
		})
	}
	return promoters
}

// SamplingTypes materializes the first n vocabulary sampling types.
func SamplingTypes(gc *Context, v *vocab.Vocab, base, n int) ([]dataset.SamplingType, error) {
	if n > len(v.SamplingTypes) {
		return nil, fmt.Errorf("%w: requested %d sampling types but vocabulary defines %d", config.ErrInvalid, n, len(v.SamplingTypes))
	}
	types := make([]dataset.SamplingType, 0, n)
	for i := 0; i < n; i++ {
		types = append(types, dataset.SamplingType{
			SamplingTypeID:   base + i,
			SamplingTypeName: v.SamplingTypes[i],
		})
	}
	return types, nil
}

// InstitutionTypes materializes the first n vocabulary institution types.
func InstitutionTypes(gc *Context, v *vocab.Vocab, base, n int) ([]dataset.InstitutionType, error) {
	if n > len(v.InstitutionTypes) {
		return nil, fmt.Errorf("%w: requested %d institution types but vocabulary defines %d", config.ErrInvalid, n, len(v.InstitutionTypes))
	}
	types := make([]dataset.InstitutionType, 0, n)
	for i := 0; i < n; i++ {
		types = append(types, dataset.InstitutionType{
			InstitutionTypeID: base + i,
			InstitutionName:   v.InstitutionTypes[i],
		})
	}
	return types, nil
}

// EventParams carries everything the sampling-event generator needs beyond
// the shared context.
type EventParams struct {
	Base        int
	Count       int
	WindowStart time.Time
	WindowEnd   time.Time
	TargetMin   int
	TargetMax   int
	Brands      []string

	Areas        *KeyPool
	Promoters    *KeyPool
	Types        []dataset.SamplingType
	Institutions *KeyPool
}

// SamplingEvents produces the fact records. Every foreign key is drawn from
// an already-materialized pool; the event detail variant follows the drawn
// sampling type.
func SamplingEvents(gc *Context, p EventParams) ([]dataset.SamplingEvent, error) {
	if p.Count == 0 {
		return nil, nil
	}

	if err := p.Areas.require(); err != nil {
		return nil, err
	}
	if err := p.Promoters.require(); err != nil {
		return nil, err
	}
	if len(p.Types) == 0 {
		return nil, fmt.Errorf("%w: SamplingType has no generated keys", ErrInsufficientParentPool)
	}
	if len(p.Brands) == 0 {
		return nil, fmt.Errorf("%w: vocabulary has no brands", config.ErrInvalid)
	}

	// Institutional events need the institution pool, and whether one is
	// drawn depends on the per-record type draw. Require the pool up front
	// whenever an institutional type is drawable, so a run cannot fail
	// halfway through.
	institutionalPossible := false
	for _, t := range p.Types {
		if vocab.IsInstitutional(t.SamplingTypeName) {
			institutionalPossible = true
			break
		}
	}
	if institutionalPossible {
		if err := p.Institutions.require(); err != nil {
			return nil, err
		}
	}

	windowDays := int(p.WindowEnd.Sub(p.WindowStart).Hours() / 24)

	events := make([]dataset.SamplingEvent, 0, p.Count)
	for i := 0; i < p.Count; i++ {
		areaID, err := p.Areas.Draw(gc.Rand())
		if err != nil {
			return nil, err
		}
		promoterID, err := p.Promoters.Draw(gc.Rand())
		if err != nil {
			return nil, err
		}
		st := p.Types[gc.Rand().Intn(len(p.Types))]

		var detail dataset.EventDetail = dataset.GeneralDetail{}
		switch {
		case vocab.IsTraffic(st.SamplingTypeName):
			detail = dataset.TrafficDetail{PassengersPerCar: gc.intBetween(5, 10)}
		case vocab.IsInstitutional(st.SamplingTypeName):
			institutionID, err := p.Institutions.Draw(gc.Rand())
			if err != nil {
				return nil, err
			}
			detail = dataset.InstitutionalDetail{InstitutionTypeID: institutionID}
		}

		date := p.WindowStart.AddDate(0, 0, gc.Rand().Intn(windowDays+1))
		target := gc.intBetween(p.TargetMin, p.TargetMax)
		count := gc.intBetween(target/2, target)

		events = append(events, dataset.SamplingEvent{
			SamplingID:     p.Base + i,
			AreaID:         areaID,
			PromoterID:     promoterID,
			SamplingTypeID: st.SamplingTypeID,
			SamplingDate:   date,
			SamplingTarget: target,
			SamplingCount:  count,
			Brand:          gc.pick(p.Brands),
			Detail:         detail,
		})
	}
	return events, nil
}

// Respondents walks the events in order and emits at most one respondent per
// event, keeping the relation 1:0..1. Coverage is the probability that an
// event receives a respondent; 1.0 covers every event.
func Respondents(gc *Context, v *vocab.Vocab, base int, coverage float64, events []dataset.SamplingEvent, areas []dataset.Area) ([]dataset.Respondent, error) {
	if len(events) == 0 || coverage == 0 {
		return nil, nil
	}
	if len(areas) == 0 {
		return nil, fmt.Errorf("%w: Area has no generated keys", ErrInsufficientParentPool)
	}

	optIn := []string{"Yes", "No"}

	respondents := make([]dataset.Respondent, 0, len(events))
	nextID := base
	for _, e := range events {
		if gc.Rand().Float64() >= coverage {
			continue
		}
		respondents = append(respondents, dataset.Respondent{
			RespondentID:       nextID,
			SamplingID:         e.SamplingID,
			FullName:           gc.Faker().Name(),
			AgeRange:           gc.pick(v.AgeRanges),
			Contact:            gc.Faker().PhoneFormatted(),
			ResidenceArea:      areas[gc.Rand().Intn(len(areas))].AreaName,
			PreferredBrand:     gc.pick(v.Brands),
			Reason:             gc.pick(v.Reasons),
			OptInOtherProducts: gc.pick(optIn),
			DateOfSubmission:   e.SamplingDate.AddDate(0, 0, gc.Rand().Intn(maxSubmissionLag+1)),
		})
		nextID++
	}
	return respondents, nil
}
