package sqlxrepos

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/school"
)

type schoolConfigRecord struct {
	ID             string         `db:"id"`
	SchoolID       string         `db:"school_id"`
	BaseSystemID   string         `db:"base_system_id"`
	Customizations types.JSONText `db:"customizations"`
	IsActive       bool           `db:"is_active"`
	LastModified   time.Time      `db:"last_modified"`
	ModifiedBy     string         `db:"modified_by"`
}

type schoolConfigRepository struct {
	db *sqlx.DB
}

var _ school.Repository = (*schoolConfigRepository)(nil) // interface compliance check

func NewSchoolConfigRepository(db *sqlx.DB) *schoolConfigRepository {
	return &schoolConfigRepository{db: db}
}

func (repo schoolConfigRepository) GetActiveConfig(ctx context.Context, schoolID string) (school.SchoolAcademicConfig, error) {
	var rec schoolConfigRecord
	q := `SELECT id, school_id, base_system_id, customizations, is_active, last_modified, modified_by
		  FROM school_academic_config WHERE school_id = $1 AND is_active`
	if err := repo.db.GetContext(ctx, &rec, q, schoolID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return school.SchoolAcademicConfig{}, school.ErrConfigNotFound
		}
		return school.SchoolAcademicConfig{}, errors.Wrapf(err, "getting config of school %q", schoolID)
	}

	cfg := school.SchoolAcademicConfig{
		ID:           rec.ID,
		SchoolID:     rec.SchoolID,
		BaseSystemID: rec.BaseSystemID,
		IsActive:     rec.IsActive,
		LastModified: rec.LastModified.UTC(),
		ModifiedBy:   rec.ModifiedBy,
	}
	if err := json.Unmarshal(rec.Customizations, &cfg.Customizations); err != nil {
		return school.SchoolAcademicConfig{}, errors.Wrapf(err, "unmarshalling customizations of config %q", rec.ID)
	}
	return cfg, nil
}

// SaveConfig deactivates the school's previous active config and inserts the
// new one, atomically.
func (repo schoolConfigRepository) SaveConfig(ctx context.Context, cfg school.SchoolAcademicConfig) (school.SchoolAcademicConfig, error) {
	if cfg.ID == "" {
		cfg.ID = uuid.New().String()
	}
	customizations, err := json.Marshal(cfg.Customizations)
	if err != nil {
		return school.SchoolAcademicConfig{}, errors.Wrap(err, "marshalling customizations")
	}

	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return school.SchoolAcademicConfig{}, errors.Wrap(err, "beginning config save")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.ExecContext(ctx,
		`UPDATE school_academic_config SET is_active = FALSE WHERE school_id = $1 AND is_active`,
		cfg.SchoolID,
	); err != nil {
		return school.SchoolAcademicConfig{}, errors.Wrap(err, "deactivating previous config")
	}

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO school_academic_config (id, school_id, base_system_id, customizations, is_active, last_modified, modified_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		cfg.ID, cfg.SchoolID, cfg.BaseSystemID, types.JSONText(customizations), cfg.IsActive, cfg.LastModified, cfg.ModifiedBy,
	); err != nil {
		return school.SchoolAcademicConfig{}, errors.Wrap(err, "inserting config")
	}

	if err = tx.Commit(); err != nil {
		return school.SchoolAcademicConfig{}, errors.Wrap(err, "committing config save")
	}
	return cfg, nil
}
