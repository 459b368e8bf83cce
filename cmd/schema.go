package cmd

// referenceSchema is the downstream-store DDL written by `fieldforge init`.
// It mirrors db/schema/schema.sql.
const referenceSchema = `-- Reference schema for the downstream relational store.
-- Deploy this externally; ` + "`fieldforge load`" + ` inserts into it as-is.

CREATE TABLE area (
    area_id   INTEGER PRIMARY KEY,
    area_name VARCHAR(120) NOT NULL,
    district  VARCHAR(80) NOT NULL,
    region    VARCHAR(80) NOT NULL
);

CREATE TABLE promoter (
    promoter_id INTEGER PRIMARY KEY,
    name        VARCHAR(120) NOT NULL,
    contact     VARCHAR(40) NOT NULL
);

CREATE TABLE sampling_type (
    sampling_type_id   INTEGER PRIMARY KEY,
    sampling_type_name VARCHAR(80) NOT NULL
);

CREATE TABLE institution_type (
    institution_type_id INTEGER PRIMARY KEY,
    institution_name    VARCHAR(80) NOT NULL
);

CREATE TABLE sampling_fact (
    sampling_id         INTEGER PRIMARY KEY,
    area_id             INTEGER NOT NULL REFERENCES area (area_id),
    promoter_id         INTEGER NOT NULL REFERENCES promoter (promoter_id),
    sampling_type_id    INTEGER NOT NULL REFERENCES sampling_type (sampling_type_id),
    institution_type_id INTEGER REFERENCES institution_type (institution_type_id),
    sampling_date       DATE NOT NULL,
    sampling_target     INTEGER NOT NULL,
    sampling_count      INTEGER NOT NULL,
    passengers_per_car  INTEGER,
    brand               VARCHAR(80) NOT NULL,
    CHECK (sampling_count <= sampling_target)
);

CREATE TABLE respondent (
    respondent_id         INTEGER PRIMARY KEY,
    sampling_id           INTEGER NOT NULL UNIQUE REFERENCES sampling_fact (sampling_id),
    full_name             VARCHAR(120) NOT NULL,
    age_range             VARCHAR(20) NOT NULL,
    contact               VARCHAR(40) NOT NULL,
    residence_area        VARCHAR(120) NOT NULL,
    preferred_brand       VARCHAR(80) NOT NULL,
    reason                VARCHAR(120) NOT NULL,
    opt_in_other_products VARCHAR(3) NOT NULL,
    date_of_submission    DATE NOT NULL
);

-- Derived calendar lookup. One row per distinct date used by sampling_fact
-- or respondent; not a foreign-key parent of either.
CREATE TABLE date_dim (
    date_key   INTEGER PRIMARY KEY,
    date       DATE NOT NULL,
    day        INTEGER NOT NULL,
    weekday    VARCHAR(10) NOT NULL,
    week       INTEGER NOT NULL,
    month      INTEGER NOT NULL,
    month_name VARCHAR(10) NOT NULL,
    quarter    INTEGER NOT NULL,
    year       INTEGER NOT NULL
);
`
