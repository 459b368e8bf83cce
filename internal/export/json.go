package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ealswell/fieldforge/internal/dataset"
)

// Document is the JSON export shape: tables as an ordered list so the
// artifact is byte-stable across runs.
type Document struct {
	Dataset string     `json:"dataset"`
	IDBase  int        `json:"idBase"`
	Tables  []TableDoc `json:"tables"`
}

type TableDoc struct {
	Name    string     `json:"name"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

func writeJSON(ds *dataset.Dataset, destPath string) (string, error) {
	doc := Document{Dataset: ds.Name, IDBase: ds.IDBase}
	for _, t := range ds.Tables() {
		rows := t.Rows
		if rows == nil {
			rows = [][]string{}
		}
		doc.Tables = append(doc.Tables, TableDoc{Name: t.Name, Headers: t.Headers, Rows: rows})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%w: failed to marshal dataset: %v", ErrWrite, err)
	}

	finalPath := filepath.Join(destPath, ds.Name+".json")
	stagePath := finalPath + ".tmp"
	if err := os.WriteFile(stagePath, data, 0644); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := os.Rename(stagePath, finalPath); err != nil {
		os.Remove(stagePath)
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return finalPath, nil
}

// ReadJSON reconstructs a typed dataset from a JSON export artifact so its
// invariants can be re-verified independently of the generating process.
func ReadJSON(path string) (*dataset.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read export artifact: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse export artifact: %w", err)
	}

	ds := &dataset.Dataset{Name: doc.Dataset, IDBase: doc.IDBase}
	for _, t := range doc.Tables {
		if err := readTable(ds, t); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

func readTable(ds *dataset.Dataset, t TableDoc) error {
	for i, row := range t.Rows {
		if len(row) != len(t.Headers) {
			return fmt.Errorf("table %s row %d has %d cells, expected %d", t.Name, i, len(row), len(t.Headers))
		}
		if err := readRow(ds, t.Name, row); err != nil {
			return fmt.Errorf("table %s row %d: %w", t.Name, i, err)
		}
	}
	return nil
}

func readRow(ds *dataset.Dataset, table string, row []string) error {
	switch table {
	case dataset.TableArea:
		id, err := strconv.Atoi(row[0])
		if err != nil {
			return err
		}
		ds.Areas = append(ds.Areas, dataset.Area{
			AreaID: id, AreaName: row[1], District: row[2], Region: row[3],
		})

	case dataset.TablePromoter:
		id, err := strconv.Atoi(row[0])
		if err != nil {
			return err
		}
		ds.Promoters = append(ds.Promoters, dataset.Promoter{
			PromoterID: id, Name: row[1], Contact: row[2],
		})

	case dataset.TableSamplingFact:
		return readEventRow(ds, row)

	case dataset.TableRespondents:
		return readRespondentRow(ds, row)

	case dataset.TableSamplingType:
		id, err := strconv.Atoi(row[0])
		if err != nil {
			return err
		}
		ds.SamplingTypes = append(ds.SamplingTypes, dataset.SamplingType{
			SamplingTypeID: id, SamplingTypeName: row[1],
		})

	case dataset.TableInstitutionType:
		id, err := strconv.Atoi(row[0])
		if err != nil {
			return err
		}
		ds.InstitutionTypes = append(ds.InstitutionTypes, dataset.InstitutionType{
			InstitutionTypeID: id, InstitutionName: row[1],
		})

	case dataset.TableDateDim:
		// Derived table, rebuilt rather than parsed.
	}
	return nil
}

func readEventRow(ds *dataset.Dataset, row []string) error {
	ints := make([]int, 4)
	for i := 0; i < 4; i++ {
		n, err := strconv.Atoi(row[i])
		if err != nil {
			return err
		}
		ints[i] = n
	}
	date, err := time.Parse(dataset.DateFormat, row[5])
	if err != nil {
		return err
	}
	target, err := strconv.Atoi(row[6])
	if err != nil {
		return err
	}
	count, err := strconv.Atoi(row[7])
	if err != nil {
		return err
	}

	var detail dataset.EventDetail = dataset.GeneralDetail{}
	if row[4] != "" {
		institutionID, err := strconv.Atoi(row[4])
		if err != nil {
			return err
		}
		detail = dataset.InstitutionalDetail{InstitutionTypeID: institutionID}
	} else if row[8] != "" {
		passengers, err := strconv.Atoi(row[8])
		if err != nil {
			return err
		}
		detail = dataset.TrafficDetail{PassengersPerCar: passengers}
	}

	ds.Events = append(ds.Events, dataset.SamplingEvent{
		SamplingID:     ints[0],
		AreaID:         ints[1],
		PromoterID:     ints[2],
		SamplingTypeID: ints[3],
		SamplingDate:   date,
		SamplingTarget: target,
		SamplingCount:  count,
		Brand:          row[9],
		Detail:         detail,
	})
	return nil
}

func readRespondentRow(ds *dataset.Dataset, row []string) error {
	id, err := strconv.Atoi(row[0])
	if err != nil {
		return err
	}
	samplingID, err := strconv.Atoi(row[1])
	if err != nil {
		return err
	}
	submitted, err := time.Parse(dataset.DateFormat, row[9])
	if err != nil {
		return err
	}

	ds.Respondents = append(ds.Respondents, dataset.Respondent{
		RespondentID:       id,
		SamplingID:         samplingID,
		FullName:           row[2],
		AgeRange:           row[3],
		Contact:            row[4],
		ResidenceArea:      row[5],
		PreferredBrand:     row[6],
		Reason:             row[7],
		OptInOtherProducts: row[8],
		DateOfSubmission:   submitted,
	})
	return nil
}
