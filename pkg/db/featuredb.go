package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/yumyai/rmgtf/internal/util"
	"github.com/yumyai/rmgtf/pkg/feature"
)

// ErrNoFeatureTable is returned by Load for a database without a features
// table, such as a SQLite file written by some other tool.
var ErrNoFeatureTable = errors.New("database has no features table")

var schema = []string{
	`CREATE TABLE IF NOT EXISTS features (
		ord            INTEGER NOT NULL,
		feature_id     TEXT PRIMARY KEY,
		sequence_name  TEXT NOT NULL,
		start_location INTEGER NOT NULL,
		end_location   INTEGER NOT NULL,
		strand         TEXT NOT NULL,
		family_id      TEXT NOT NULL,
		locus_id       TEXT,
		repeat_class   TEXT,
		source         TEXT NOT NULL,
		score          REAL,
		divergence     REAL
	)`,
	`CREATE INDEX IF NOT EXISTS features_family ON features (family_id)`,
	`CREATE INDEX IF NOT EXISTS features_location ON features (sequence_name, start_location)`,
}

// FeatureDB is a SQLite table of converted features, for downstream queries
// and as a baseline for later runs.
type FeatureDB struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and ensures the
// schema exists.
func Open(ctx context.Context, path string) (*FeatureDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}
	return &FeatureDB{db: db}, nil
}

func (fdb *FeatureDB) Close() error {
	return fdb.db.Close()
}

// Insert stores features in one transaction, keeping their order.
func (fdb *FeatureDB) Insert(ctx context.Context, features []feature.Feature) error {
	tx, err := fdb.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("fail to begin tx %w", err)
	}
	defer tx.Rollback()

	var base int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM features`).Scan(&base); err != nil {
		return err
	}

	stm, err := tx.PrepareContext(ctx, `
		INSERT INTO features (ord, feature_id, sequence_name, start_location, end_location,
			strand, family_id, locus_id, repeat_class, source, score, divergence)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stm.Close()

	for i, f := range features {
		if _, err := stm.ExecContext(ctx, base+i, f.FeatureID, f.SequenceName, f.Start, f.End,
			f.Strand.String(), f.FamilyID, f.LocusID, f.RepeatClass, f.Source, f.Score, f.Divergence); err != nil {
			return fmt.Errorf("insert %s: %w", f.FeatureID, err)
		}
	}
	return tx.Commit()
}

// Features returns every stored feature in insertion order.
func (fdb *FeatureDB) Features(ctx context.Context) ([]feature.Feature, error) {
	rows, err := fdb.db.QueryContext(ctx, `
		SELECT feature_id, sequence_name, start_location, end_location, strand,
			family_id, locus_id, repeat_class, source, score, divergence
		FROM features ORDER BY ord`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []feature.Feature
	for rows.Next() {
		var (
			f      feature.Feature
			strand string
		)
		if err := rows.Scan(&f.FeatureID, &f.SequenceName, &f.Start, &f.End, &strand,
			&f.FamilyID, &f.LocusID, &f.RepeatClass, &f.Source, &f.Score, &f.Divergence); err != nil {
			return nil, fmt.Errorf("failed to scan feature row: %w", err)
		}
		f.Strand = feature.StrandUnknown
		if len(strand) == 1 {
			f.Strand = feature.Strand(strand[0])
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// Export writes features to a fresh database at path. The file only appears
// once every row is committed.
func Export(ctx context.Context, path string, features []feature.Feature) error {
	af, err := util.CreateAtomic(path)
	if err != nil {
		return err
	}
	defer af.Abort()

	fdb, err := Open(ctx, af.TempPath())
	if err != nil {
		return err
	}
	if err := fdb.Insert(ctx, features); err != nil {
		fdb.Close()
		return err
	}
	if err := fdb.Close(); err != nil {
		return err
	}
	return af.Commit()
}

// Load reads the features of an existing database. The file is opened
// read-only and never modified.
func Load(ctx context.Context, path string) ([]feature.Feature, error) {
	if err := util.RequireFiles(path); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, err
	}
	fdb := &FeatureDB{db: db}
	defer fdb.Close()

	var n int
	if err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'features'`).Scan(&n); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoFeatureTable, path)
	}
	return fdb.Features(ctx)
}
