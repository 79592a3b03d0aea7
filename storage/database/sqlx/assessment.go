package sqlxrepos

import (
	"context"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/assessment"
)

type assessmentRepository struct {
	db *sqlx.DB
}

var _ assessment.Repository = (*assessmentRepository)(nil) // interface compliance check

func NewAssessmentRepository(db *sqlx.DB) *assessmentRepository {
	return &assessmentRepository{db: db}
}

func (repo assessmentRepository) getExec(exec core.DBExecutor) core.DBExecutor {
	if exec != nil {
		return exec
	}
	return repo.db.DB
}

func (repo assessmentRepository) ReadComponentRows(ctx context.Context, filter assessment.Filter) ([]assessment.ComponentRow, error) {
	var (
		conds []string
		args  []interface{}
	)
	addCond := func(field, val string) {
		if val == "" {
			return
		}
		args = append(args, val)
		conds = append(conds, field+" = $"+strconv.Itoa(len(args)))
	}
	addCond("student_id", filter.StudentID)
	addCond("subject_id", filter.SubjectID)
	addCond("class_id", filter.ClassID)
	addCond("term_id", filter.TermID)

	q := `SELECT id, student_id, subject_id, class_id, term_id, component, score, grade, ca_scores, is_active, created_at
		  FROM ca_component_row`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY " + core.DBOrdering{Field: "id", Ascending: true}.String()

	var rows []assessment.ComponentRow
	if err := repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "reading component rows")
	}
	return rows, nil
}

func (repo assessmentRepository) UpdateRow(ctx context.Context, exec core.DBExecutor, row assessment.ComponentRow) error {
	_, err := repo.getExec(exec).ExecContext(ctx,
		`UPDATE ca_component_row SET ca_scores = $1, grade = $2 WHERE id = $3`,
		row.CAScores, row.Grade, row.ID,
	)
	return errors.Wrapf(err, "updating row %q", row.ID)
}

func (repo assessmentRepository) DeleteRows(ctx context.Context, exec core.DBExecutor, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := repo.getExec(exec).ExecContext(ctx,
		`DELETE FROM ca_component_row WHERE id = ANY($1)`, pq.Array(ids),
	)
	return errors.Wrap(err, "deleting rows")
}
