package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jo-hoe/fundusref/internal/common"
	"github.com/jo-hoe/fundusref/internal/reference"

	_ "modernc.org/sqlite"
)

const (
	textKindFeature        = "feature"
	textKindAdditionalTest = "additional_test"
	textKindCheck          = "check"
)

type SQLiteDatabase struct {
	db               *sql.DB
	connectionString string
}

func NewSQLiteDatabase(connectionString string) (DatabaseService, error) {
	db, err := sql.Open("sqlite", connectionString)
	if err != nil {
		return nil, err
	}
	// every pooled connection to ":memory:" would see its own empty database
	db.SetMaxOpenConns(1)

	return &SQLiteDatabase{
		db:               db,
		connectionString: connectionString,
	}, nil
}

func (s *SQLiteDatabase) CreateDatabase(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS diseases (
			id TEXT PRIMARY KEY,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			title TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS parameters (
			disease_id TEXT NOT NULL REFERENCES diseases(id),
			position INTEGER NOT NULL,
			feature_name TEXT NOT NULL,
			label TEXT NOT NULL DEFAULT '',
			normal_threshold TEXT NOT NULL,
			abnormal_threshold TEXT NOT NULL,
			decision_note TEXT NOT NULL,
			PRIMARY KEY (disease_id, position)
		)`,
		`CREATE TABLE IF NOT EXISTS disease_texts (
			disease_id TEXT NOT NULL REFERENCES diseases(id),
			kind TEXT NOT NULL,
			position INTEGER NOT NULL,
			text TEXT NOT NULL,
			PRIMARY KEY (disease_id, kind, position)
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteDatabase) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// DoesDatabaseExist reports whether the schema holds at least one disease.
// The database file itself is created on connect, so a ping alone proves nothing.
func (s *SQLiteDatabase) DoesDatabaseExist(ctx context.Context) bool {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM diseases").Scan(&count)
	return err == nil && count > 0
}

func (s *SQLiteDatabase) SeedDiseases(ctx context.Context, diseases []*reference.Disease) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"parameters", "disease_texts", "diseases"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}

	for position, d := range diseases {
		if _, err = tx.ExecContext(ctx,
			"INSERT OR REPLACE INTO diseases (id, position, name, title) VALUES (?, ?, ?, ?)",
			string(d.ID), position, d.Name, d.Title); err != nil {
			return fmt.Errorf("insert disease %s: %w", d.ID, err)
		}
		for i, p := range d.Parameters {
			if _, err = tx.ExecContext(ctx,
				`INSERT OR REPLACE INTO parameters
				(disease_id, position, feature_name, label, normal_threshold, abnormal_threshold, decision_note)
				VALUES (?, ?, ?, ?, ?, ?, ?)`,
				string(d.ID), i, p.FeatureName, p.Label, p.NormalThreshold, p.AbnormalThreshold, p.DecisionNote); err != nil {
				return fmt.Errorf("insert parameter %s/%s: %w", d.ID, p.FeatureName, err)
			}
		}
		texts := map[string][]string{
			textKindFeature:        d.Features,
			textKindAdditionalTest: d.AdditionalTests,
			textKindCheck:          d.Checks,
		}
		for kind, values := range texts {
			for i, text := range values {
				if _, err = tx.ExecContext(ctx,
					"INSERT OR REPLACE INTO disease_texts (disease_id, kind, position, text) VALUES (?, ?, ?, ?)",
					string(d.ID), kind, i, text); err != nil {
					return fmt.Errorf("insert %s text for %s: %w", kind, d.ID, err)
				}
			}
		}
	}

	return tx.Commit()
}

func (s *SQLiteDatabase) GetDisease(ctx context.Context, id reference.DiseaseID) (*reference.Disease, error) {
	d := &reference.Disease{ID: id}
	row := s.db.QueryRowContext(ctx, "SELECT name, title FROM diseases WHERE id = ?", string(id))
	if err := row.Scan(&d.Name, &d.Title); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: disease %q", common.ErrUnknownSelection, id)
		}
		return nil, err
	}
	if err := s.loadParameters(ctx, d); err != nil {
		return nil, err
	}
	if err := s.loadTexts(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *SQLiteDatabase) GetDiseases(ctx context.Context) ([]*reference.Disease, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id FROM diseases ORDER BY position")
	if err != nil {
		return nil, err
	}
	var ids []reference.DiseaseID
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			_ = rows.Close()
			return nil, err
		}
		ids = append(ids, reference.DiseaseID(id))
	}
	// Close before issuing further queries on the single pooled connection.
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	diseases := make([]*reference.Disease, 0, len(ids))
	for _, id := range ids {
		d, err := s.GetDisease(ctx, id)
		if err != nil {
			return nil, err
		}
		diseases = append(diseases, d)
	}
	return diseases, nil
}

func (s *SQLiteDatabase) loadParameters(ctx context.Context, d *reference.Disease) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT feature_name, label, normal_threshold, abnormal_threshold, decision_note
		FROM parameters WHERE disease_id = ? ORDER BY position`, string(d.ID))
	if err != nil {
		return err
	}
	defer func() {
		_ = rows.Close() // Explicitly ignore error as we're already returning an error from the function
	}()

	d.Parameters = []reference.ParameterRecord{}
	for rows.Next() {
		p := reference.ParameterRecord{Disease: d.ID}
		if err := rows.Scan(&p.FeatureName, &p.Label, &p.NormalThreshold, &p.AbnormalThreshold, &p.DecisionNote); err != nil {
			return err
		}
		d.Parameters = append(d.Parameters, p)
	}
	return rows.Err()
}

func (s *SQLiteDatabase) loadTexts(ctx context.Context, d *reference.Disease) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT kind, text FROM disease_texts WHERE disease_id = ? ORDER BY kind, position", string(d.ID))
	if err != nil {
		return err
	}
	defer func() {
		_ = rows.Close()
	}()

	d.Features, d.AdditionalTests, d.Checks = []string{}, []string{}, []string{}
	for rows.Next() {
		var kind, text string
		if err := rows.Scan(&kind, &text); err != nil {
			return err
		}
		switch kind {
		case textKindFeature:
			d.Features = append(d.Features, text)
		case textKindAdditionalTest:
			d.AdditionalTests = append(d.AdditionalTests, text)
		case textKindCheck:
			d.Checks = append(d.Checks, text)
		}
	}
	return rows.Err()
}
