package load

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/ealswell/fieldforge/internal/dataset"
)

// OpenDB connects to the downstream store with the driver matching the
// configured provider.
func OpenDB(provider, url string) (*sql.DB, error) {
	var driverName string
	switch provider {
	case "postgresql", "postgres":
		driverName = "pgx"
	case "mysql":
		driverName = "mysql"
	case "sqlite", "sqlite3":
		driverName = "sqlite3"
	default:
		driverName = "pgx"
	}

	db, err := sql.Open(driverName, url)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Run inserts the dataset into an existing downstream schema (see
// db/schema/schema.sql) in foreign-key order, inside one transaction. Any
// failure rolls the whole load back.
func Run(ctx context.Context, db *sql.DB, provider string, ds *dataset.Dataset) error {
	builder := sq.StatementBuilder.PlaceholderFormat(placeholderFormat(provider))

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := insertAll(ctx, tx, builder, ds); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit load: %w", err)
	}
	return nil
}

func placeholderFormat(provider string) sq.PlaceholderFormat {
	switch provider {
	case "postgresql", "postgres":
		return sq.Dollar
	default:
		return sq.Question
	}
}

func insertAll(ctx context.Context, tx *sql.Tx, builder sq.StatementBuilderType, ds *dataset.Dataset) error {
	for _, a := range ds.Areas {
		ib := builder.Insert("area").
			Columns("area_id", "area_name", "district", "region").
			Values(a.AreaID, a.AreaName, a.District, a.Region)
		if err := exec(ctx, tx, ib); err != nil {
			return fmt.Errorf("failed to load area %d: %w", a.AreaID, err)
		}
	}

	for _, p := range ds.Promoters {
		ib := builder.Insert("promoter").
			Columns("promoter_id", "name", "contact").
			Values(p.PromoterID, p.Name, p.Contact)
		if err := exec(ctx, tx, ib); err != nil {
			return fmt.Errorf("failed to load promoter %d: %w", p.PromoterID, err)
		}
	}

	for _, s := range ds.SamplingTypes {
		ib := builder.Insert("sampling_type").
			Columns("sampling_type_id", "sampling_type_name").
			Values(s.SamplingTypeID, s.SamplingTypeName)
		if err := exec(ctx, tx, ib); err != nil {
			return fmt.Errorf("failed to load sampling type %d: %w", s.SamplingTypeID, err)
		}
	}

	for _, it := range ds.InstitutionTypes {
		ib := builder.Insert("institution_type").
			Columns("institution_type_id", "institution_name").
			Values(it.InstitutionTypeID, it.InstitutionName)
		if err := exec(ctx, tx, ib); err != nil {
			return fmt.Errorf("failed to load institution type %d: %w", it.InstitutionTypeID, err)
		}
	}

	for _, e := range ds.Events {
		var institution, passengers interface{}
		if id, ok := e.InstitutionTypeID(); ok {
			institution = id
		}
		if n, ok := e.PassengersPerCar(); ok {
			passengers = n
		}

		ib := builder.Insert("sampling_fact").
			Columns("sampling_id", "area_id", "promoter_id", "sampling_type_id",
				"institution_type_id", "sampling_date", "sampling_target",
				"sampling_count", "passengers_per_car", "brand").
			Values(e.SamplingID, e.AreaID, e.PromoterID, e.SamplingTypeID,
				institution, e.SamplingDate.Format(dataset.DateFormat),
				e.SamplingTarget, e.SamplingCount, passengers, e.Brand)
		if err := exec(ctx, tx, ib); err != nil {
			return fmt.Errorf("failed to load sampling %d: %w", e.SamplingID, err)
		}
	}

	for _, r := range ds.Respondents {
		ib := builder.Insert("respondent").
			Columns("respondent_id", "sampling_id", "full_name", "age_range",
				"contact", "residence_area", "preferred_brand", "reason",
				"opt_in_other_products", "date_of_submission").
			Values(r.RespondentID, r.SamplingID, r.FullName, r.AgeRange,
				r.Contact, r.ResidenceArea, r.PreferredBrand, r.Reason,
				r.OptInOtherProducts, r.DateOfSubmission.Format(dataset.DateFormat))
		if err := exec(ctx, tx, ib); err != nil {
			return fmt.Errorf("failed to load respondent %d: %w", r.RespondentID, err)
		}
	}

	for _, d := range ds.Dates {
		ib := builder.Insert("date_dim").
			Columns("date_key", "date", "day", "weekday", "week", "month",
				"month_name", "quarter", "year").
			Values(d.DateKey, d.Date.Format(dataset.DateFormat), d.Day,
				d.Weekday, d.Week, d.Month, d.MonthName, d.Quarter, d.Year)
		if err := exec(ctx, tx, ib); err != nil {
			return fmt.Errorf("failed to load date %d: %w", d.DateKey, err)
		}
	}

	return nil
}

func exec(ctx context.Context, tx *sql.Tx, ib sq.InsertBuilder) error {
	query, args, err := ib.ToSql()
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, query, args...)
	return err
}
