package assessment

import (
	"errors"
	"sort"
)

var (
	// errors
	ErrNoRows    = errors.New("no rows to merge")
	ErrMixedKeys = errors.New("rows span more than one composite key")
)

// MergeResult is the outcome of merging one key's rows: the composite
// content, the surviving row, the redundant rows to delete, and whether the
// survivor actually needs a write. Pure data; applying it is the service's job.
type MergeResult struct {
	Composite  Composite
	SurvivorID string
	DeleteIDs  []string
	Changed    bool
}

// MergeRows computes the composite for one key from its active rows.
// Deterministic survivor selection: the row with the lowest id. Idempotent:
// merging an already-merged single row yields Changed=false and no deletions.
func MergeRows(rows []ComponentRow) (MergeResult, error) {
	if len(rows) == 0 {
		return MergeResult{}, ErrNoRows
	}
	key := rows[0].Key()
	for _, row := range rows[1:] {
		if row.Key() != key {
			return MergeResult{}, ErrMixedKeys
		}
	}

	sorted := append([]ComponentRow(nil), rows...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	survivor := sorted[0]

	scores := make(Scores, len(sorted))
	grade := survivor.Grade // carried over from a previous merge, if any
	for _, row := range sorted {
		// previously merged content first, then the row's own component
		for name, score := range row.CAScores {
			scores[NormalizeComponent(name)] = score
		}
		if row.Component == "" || !row.Score.Valid {
			continue
		}
		name := NormalizeComponent(row.Component)
		scores[name] = row.Score.Float64
		if name == ComponentExam && row.Grade.Valid {
			grade = row.Grade // exam grade overrides any prior grade
		}
	}

	deleteIDs := make([]string, 0, len(sorted)-1)
	for _, row := range sorted[1:] {
		deleteIDs = append(deleteIDs, row.ID)
	}

	return MergeResult{
		Composite:  Composite{Key: key, CAScores: scores, Grade: grade},
		SurvivorID: survivor.ID,
		DeleteIDs:  deleteIDs,
		Changed:    !survivor.CAScores.Equal(scores) || survivor.Grade != grade,
	}, nil
}

// groupByKey buckets active rows per composite key; inactive rows are
// excluded from aggregation entirely.
func groupByKey(rows []ComponentRow) map[Key][]ComponentRow {
	groups := make(map[Key][]ComponentRow)
	for _, row := range rows {
		if !row.IsActive {
			continue
		}
		key := row.Key()
		groups[key] = append(groups[key], row)
	}
	return groups
}

// sortedKeys gives a stable processing order for deterministic runs.
func sortedKeys(groups map[Key][]ComponentRow) []Key {
	keys := make([]Key, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	return keys
}
