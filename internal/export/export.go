package export

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ealswell/fieldforge/internal/dataset"
	_ "github.com/mattn/go-sqlite3"
)

// ErrWrite marks any failure to persist an export artifact. A failed export
// leaves nothing behind at the destination.
var ErrWrite = errors.New("export write failed")

// Write serializes the dataset to destPath in the given format and returns
// the path of the artifact. Writes are staged and renamed into place, so the
// caller either gets the whole artifact or none of it.
func Write(ds *dataset.Dataset, destPath, format string) (string, error) {
	var write func(*dataset.Dataset, string) (string, error)
	switch format {
	case "csv":
		write = writeCSV
	case "json":
		write = writeJSON
	case "sqlite":
		write = writeSQLite
	default:
		return "", fmt.Errorf("%w: unsupported format %q", ErrWrite, format)
	}

	if err := os.MkdirAll(destPath, 0755); err != nil {
		return "", fmt.Errorf("%w: failed to create export directory: %v", ErrWrite, err)
	}
	return write(ds, destPath)
}

// writeCSV produces a directory with one file per table. Empty tables still
// get a header-only file.
func writeCSV(ds *dataset.Dataset, destPath string) (string, error) {
	finalDir := filepath.Join(destPath, ds.Name+"_csv")
	stageDir := finalDir + ".tmp"

	if err := os.RemoveAll(stageDir); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := os.MkdirAll(stageDir, 0755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}

	for _, t := range ds.Tables() {
		if err := writeCSVTable(stageDir, t); err != nil {
			os.RemoveAll(stageDir)
			return "", err
		}
	}

	if err := os.RemoveAll(finalDir); err != nil {
		os.RemoveAll(stageDir)
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := os.Rename(stageDir, finalDir); err != nil {
		os.RemoveAll(stageDir)
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return finalDir, nil
}

func writeCSVTable(dir string, t dataset.Table) error {
	file, err := os.Create(filepath.Join(dir, t.Name+".csv"))
	if err != nil {
		return fmt.Errorf("%w: failed to create CSV for %s: %v", ErrWrite, t.Name, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(t.Headers); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	for _, row := range t.Rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("%w: %v", ErrWrite, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

// writeSQLite produces a single database file with one TEXT-columned table
// per export table.
func writeSQLite(ds *dataset.Dataset, destPath string) (string, error) {
	finalPath := filepath.Join(destPath, ds.Name+".db")
	stagePath := finalPath + ".tmp"

	if err := os.Remove(stagePath); err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}

	db, err := sql.Open("sqlite3", stagePath)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create SQLite database: %v", ErrWrite, err)
	}

	if err := writeSQLiteTables(db, ds); err != nil {
		db.Close()
		os.Remove(stagePath)
		return "", err
	}
	if err := db.Close(); err != nil {
		os.Remove(stagePath)
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}

	if err := os.Remove(finalPath); err != nil && !os.IsNotExist(err) {
		os.Remove(stagePath)
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := os.Rename(stagePath, finalPath); err != nil {
		os.Remove(stagePath)
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return finalPath, nil
}

func writeSQLiteTables(db *sql.DB, ds *dataset.Dataset) error {
	for _, t := range ds.Tables() {
		defs := make([]string, len(t.Headers))
		for i, h := range t.Headers {
			defs[i] = h + " TEXT"
		}
		createSQL := fmt.Sprintf("CREATE TABLE %s (%s)", t.Name, strings.Join(defs, ", "))
		if _, err := db.Exec(createSQL); err != nil {
			return fmt.Errorf("%w: failed to create table %s: %v", ErrWrite, t.Name, err)
		}

		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(t.Headers)), ", ")
		insertSQL := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
			t.Name, strings.Join(t.Headers, ", "), placeholders)

		for _, row := range t.Rows {
			values := make([]interface{}, len(row))
			for i, cell := range row {
				values[i] = cell
			}
			if _, err := db.Exec(insertSQL, values...); err != nil {
				return fmt.Errorf("%w: failed to insert into %s: %v", ErrWrite, t.Name, err)
			}
		}
	}
	return nil
}
