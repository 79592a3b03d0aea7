package dummydb

import (
	"context"
	"sort"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/assessment"
)

type assessmentRepository struct {
	db *caRowTable
}

var _ assessment.Repository = (*assessmentRepository)(nil) // interface compliance check

func NewAssessmentRepository(db *DB) *assessmentRepository {
	return &assessmentRepository{db: db.caRow}
}

// SeedRows loads raw component rows, for tests and demos.
func (repo *assessmentRepository) SeedRows(rows ...assessment.ComponentRow) {
	repo.db.Lock()
	defer repo.db.Unlock()
	for _, row := range rows {
		row := row
		repo.db.table[row.ID] = &row
	}
}

func (repo *assessmentRepository) ReadComponentRows(ctx context.Context, filter assessment.Filter) ([]assessment.ComponentRow, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	rows := make([]assessment.ComponentRow, 0, len(repo.db.table))
	for _, row := range repo.db.table {
		if filter.StudentID != "" && row.StudentID != filter.StudentID {
			continue
		}
		if filter.SubjectID != "" && row.SubjectID != filter.SubjectID {
			continue
		}
		if filter.ClassID != "" && row.ClassID != filter.ClassID {
			continue
		}
		if filter.TermID != "" && row.TermID != filter.TermID {
			continue
		}
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return rows, nil
}

func (repo *assessmentRepository) UpdateRow(ctx context.Context, _ core.DBExecutor, row assessment.ComponentRow) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	repo.db.table[row.ID] = &row
	return nil
}

func (repo *assessmentRepository) DeleteRows(ctx context.Context, _ core.DBExecutor, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}
