package gen

import (
	"fmt"

	"github.com/ealswell/fieldforge/internal/config"
	"github.com/ealswell/fieldforge/internal/dataset"
	"github.com/ealswell/fieldforge/internal/vocab"
)

// Pipeline runs one full generation: dimension tables first, then the fact
// table, then respondents, then the derived calendar. The order is fixed
// because each stage draws foreign keys from the stages before it.
type Pipeline struct {
	cfg   *config.Config
	vocab *vocab.Vocab
}

func NewPipeline(cfg *config.Config, v *vocab.Vocab) *Pipeline {
	return &Pipeline{cfg: cfg, vocab: v}
}

// Run generates a complete dataset. Any failure aborts the run; no partially
// assembled dataset is returned.
func (p *Pipeline) Run() (*dataset.Dataset, error) {
	if err := p.cfg.Validate(); err != nil {
		return nil, err
	}
	if err := p.vocab.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalid, err)
	}

	gc := NewContext(p.cfg.Seed)
	base := p.cfg.IDBase
	counts := p.cfg.Counts

	areas, err := Areas(gc, p.vocab, base, counts.Areas)
	if err != nil {
		return nil, fmt.Errorf("failed to generate areas: %w", err)
	}

	promoters := Promoters(gc, base, counts.Promoters)

	samplingTypes, err := SamplingTypes(gc, p.vocab, base, counts.SamplingTypes)
	if err != nil {
		return nil, fmt.Errorf("failed to generate sampling types: %w", err)
	}

	institutionTypes, err := InstitutionTypes(gc, p.vocab, base, counts.InstitutionTypes)
	if err != nil {
		return nil, fmt.Errorf("failed to generate institution types: %w", err)
	}

	start, end, err := p.cfg.DateWindow.Bounds()
	if err != nil {
		return nil, err
	}

	var events []dataset.SamplingEvent
	if counts.SamplingEvents > 0 {
		events, err = SamplingEvents(gc, EventParams{
			Base:         base,
			Count:        counts.SamplingEvents,
			WindowStart:  start,
			WindowEnd:    end,
			TargetMin:    p.cfg.TargetRange.Min,
			TargetMax:    p.cfg.TargetRange.Max,
			Brands:       p.vocab.Brands,
			Areas:        NewKeyPool(dataset.TableArea, areaKeys(areas)),
			Promoters:    NewKeyPool(dataset.TablePromoter, promoterKeys(promoters)),
			Types:        samplingTypes,
			Institutions: NewKeyPool(dataset.TableInstitutionType, institutionKeys(institutionTypes)),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to generate sampling events: %w", err)
		}
	}

	respondents, err := Respondents(gc, p.vocab, base, p.cfg.RespondentCoverage, events, areas)
	if err != nil {
		return nil, fmt.Errorf("failed to generate respondents: %w", err)
	}

	return &dataset.Dataset{
		Name:             p.cfg.DatasetName,
		IDBase:           base,
		Areas:            areas,
		Promoters:        promoters,
		SamplingTypes:    samplingTypes,
		InstitutionTypes: institutionTypes,
		Events:           events,
		Respondents:      respondents,
		Dates:            dataset.BuildDateDim(events, respondents),
	}, nil
}

func areaKeys(areas []dataset.Area) []int {
	keys := make([]int, len(areas))
	for i, a := range areas {
		keys[i] = a.AreaID
	}
	return keys
}

func promoterKeys(promoters []dataset.Promoter) []int {
	keys := make([]int, len(promoters))
	for i, p := range promoters {
		keys[i] = p.PromoterID
	}
	return keys
}

func institutionKeys(types []dataset.InstitutionType) []int {
	keys := make([]int, len(types))
	for i, t := range types {
		keys[i] = t.InstitutionTypeID
	}
	return keys
}
