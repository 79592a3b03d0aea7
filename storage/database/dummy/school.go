package dummydb

import (
	"context"

	"github.com/google/uuid"

	"github.com/trezcool/shule/core/school"
)

type schoolConfigRepository struct {
	db *schoolConfigTable
}

var _ school.Repository = (*schoolConfigRepository)(nil) // interface compliance check

func NewSchoolConfigRepository(db *DB) *schoolConfigRepository {
	return &schoolConfigRepository{db: db.schoolConfig}
}

func (repo *schoolConfigRepository) GetActiveConfig(ctx context.Context, schoolID string) (school.SchoolAcademicConfig, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, cfg := range repo.db.table {
		if cfg.SchoolID == schoolID && cfg.IsActive {
			return *cfg, nil
		}
	}
	return school.SchoolAcademicConfig{}, school.ErrConfigNotFound
}

func (repo *schoolConfigRepository) SaveConfig(ctx context.Context, cfg school.SchoolAcademicConfig) (school.SchoolAcademicConfig, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if cfg.ID == "" {
		cfg.ID = uuid.New().String()
	}
	for _, prev := range repo.db.table {
		if prev.SchoolID == cfg.SchoolID && prev.IsActive {
			prev.IsActive = false
		}
	}
	repo.db.table[cfg.ID] = &cfg
	return cfg, nil
}
