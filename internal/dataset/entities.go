package dataset

import "time"

// DateFormat is the layout used for every date cell in exported tables.
const DateFormat = "2006-01-02"

type Area struct {
	AreaID   int
	AreaName string
	District string
	Region   string
}

type Promoter struct {
	PromoterID int
	Name       string
	Contact    string
}

type SamplingType struct {
	SamplingTypeID   int
	SamplingTypeName string
}

type InstitutionType struct {
	InstitutionTypeID int
	InstitutionName   string
}

// SamplingEvent is one field-campaign occurrence. Fields that exist only for
// certain sampling types live on the Detail variant, so an open-market event
// cannot carry an institution reference by construction.
type SamplingEvent struct {
	SamplingID     int
	AreaID         int
	PromoterID     int
	SamplingTypeID int
	SamplingDate   time.Time
	SamplingTarget int
	SamplingCount  int
	Brand          string
	Detail         EventDetail
}

// EventDetail is the per-sampling-type variant of a SamplingEvent.
type EventDetail interface {
	eventDetail()
}

// GeneralDetail covers sampling types with no conditional fields
// (Open Market, Trade, Third Space and any custom type).
type GeneralDetail struct{}

// TrafficDetail is attached to traffic sampling events.
type TrafficDetail struct {
	PassengersPerCar int
}

// InstitutionalDetail is attached to institutional sampling events.
type InstitutionalDetail struct {
	InstitutionTypeID int
}

func (GeneralDetail) eventDetail()       {}
func (TrafficDetail) eventDetail()       {}
func (InstitutionalDetail) eventDetail() {}

// InstitutionTypeID returns the institution reference for institutional
// events.
func (e SamplingEvent) InstitutionTypeID() (int, bool) {
	if d, ok := e.Detail.(InstitutionalDetail); ok {
		return d.InstitutionTypeID, true
	}
	return 0, false
}

// PassengersPerCar returns the passenger count for traffic events.
func (e SamplingEvent) PassengersPerCar() (int, bool) {
	if d, ok := e.Detail.(TrafficDetail); ok {
		return d.PassengersPerCar, true
	}
	return 0, false
}

type Respondent struct {
	RespondentID       int
	SamplingID         int
	FullName           string
	AgeRange           string
	Contact            string
	ResidenceArea      string
	PreferredBrand     string
	Reason             string
	OptInOtherProducts string
	DateOfSubmission   time.Time
}

// DateDim is one row of the derived calendar lookup, materialized for every
// distinct date appearing in the dataset.
type DateDim struct {
	DateKey   int // yyyymmdd
	Date      time.Time
	Day       int
	Weekday   string
	Week      int
	Month     int
	MonthName string
	Quarter   int
	Year      int
}
