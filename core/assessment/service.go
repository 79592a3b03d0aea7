package assessment

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
)

type (
	// Filter narrows row reads; any subset of fields may be set.
	Filter struct {
		StudentID string
		SubjectID string
		ClassID   string
		TermID    string
	}

	Repository interface {
		// ReadComponentRows returns rows matching the filter, ordered by id.
		ReadComponentRows(ctx context.Context, filter Filter) ([]ComponentRow, error)
		// UpdateRow and DeleteRows take the executor of the per-key
		// transaction owned by the service; exec may be nil for stores that
		// are their own transaction boundary (in-mem).
		UpdateRow(ctx context.Context, exec core.DBExecutor, row ComponentRow) error
		DeleteRows(ctx context.Context, exec core.DBExecutor, ids ...string) error
	}

	Service struct {
		db    core.DB // nil when the repository needs no transactions
		repo  Repository
		locks keyedLocks
	}

	// IngestStats summarizes one aggregation run.
	IngestStats struct {
		Keys    int
		Updated int
		Deleted int
	}
)

func (f Filter) IsEmpty() bool {
	return f == Filter{}
}

func keyFilter(key Key) Filter {
	return Filter{StudentID: key.StudentID, SubjectID: key.SubjectID, ClassID: key.ClassID, TermID: key.TermID}
}

func NewService(db core.DB, repo Repository) *Service {
	return &Service{db: db, repo: repo, locks: keyedLocks{entries: make(map[Key]*lockEntry)}}
}

// Ingest aggregates all rows matching the filter into one composite per key.
// Re-running it on already-merged data writes and deletes nothing. Merges on
// the same key are serialized; disjoint keys proceed independently.
func (svc *Service) Ingest(ctx context.Context, filter Filter) (IngestStats, error) {
	rows, err := svc.repo.ReadComponentRows(ctx, filter)
	if err != nil {
		return IngestStats{}, err
	}

	groups := groupByKey(rows)
	stats := IngestStats{Keys: len(groups)}
	for _, key := range sortedKeys(groups) {
		updated, deleted, err := svc.ingestKey(ctx, key)
		if err != nil {
			return stats, errors.Wrapf(err, "merging key %s", key)
		}
		if updated {
			stats.Updated++
		}
		stats.Deleted += deleted
	}
	return stats, nil
}

// ingestKey re-reads the key's rows under its lock so concurrent merges of
// the same key serialize on fresh data, then applies the merge atomically.
func (svc *Service) ingestKey(ctx context.Context, key Key) (updated bool, deleted int, err error) {
	unlock := svc.locks.lock(key)
	defer unlock()

	rows, err := svc.repo.ReadComponentRows(ctx, keyFilter(key))
	if err != nil {
		return false, 0, err
	}
	active := make([]ComponentRow, 0, len(rows))
	for _, row := range rows {
		if row.IsActive {
			active = append(active, row)
		}
	}
	if len(active) == 0 {
		return false, 0, nil // merged concurrently or deactivated; nothing to do
	}

	res, err := MergeRows(active)
	if err != nil {
		return false, 0, err
	}
	if !res.Changed && len(res.DeleteIDs) == 0 {
		return false, 0, nil
	}

	// survivor update + duplicate deletes are all-or-nothing
	var exec core.DBExecutor
	var tx core.DBTransactor
	if svc.db != nil {
		sqlTx, err := svc.db.BeginTx(ctx, nil)
		if err != nil {
			return false, 0, errors.Wrap(err, "beginning merge transaction")
		}
		tx, exec = sqlTx, sqlTx
		defer func() {
			if err != nil {
				_ = tx.Rollback()
			}
		}()
	}

	if res.Changed {
		survivor := active[0]
		for _, row := range active {
			if row.ID == res.SurvivorID {
				survivor = row
				break
			}
		}
		survivor.CAScores = res.Composite.CAScores
		survivor.Grade = res.Composite.Grade
		if err = svc.repo.UpdateRow(ctx, exec, survivor); err != nil {
			return false, 0, err
		}
		updated = true
	}
	if len(res.DeleteIDs) > 0 {
		if err = svc.repo.DeleteRows(ctx, exec, res.DeleteIDs...); err != nil {
			return updated, 0, err
		}
		deleted = len(res.DeleteIDs)
	}

	if tx != nil {
		if err = tx.Commit(); err != nil {
			return updated, deleted, errors.Wrap(err, "committing merge transaction")
		}
	}
	return updated, deleted, nil
}

// Composite returns the current composite for a key, or StateAbsent when no
// row exists.
func (svc *Service) Composite(ctx context.Context, key Key) (Composite, error) {
	rows, err := svc.repo.ReadComponentRows(ctx, keyFilter(key))
	if err != nil {
		return Composite{}, err
	}
	active := make([]ComponentRow, 0, len(rows))
	for _, row := range rows {
		if row.IsActive {
			active = append(active, row)
		}
	}
	if len(active) == 0 {
		return Composite{Key: key}, nil
	}
	res, err := MergeRows(active)
	if err != nil {
		return Composite{}, err
	}
	return res.Composite, nil
}

// keyedLocks provides at-most-one concurrent merge per key. Entries are
// reference-counted so the map does not grow with every key ever seen.
type (
	keyedLocks struct {
		mu      sync.Mutex
		entries map[Key]*lockEntry
	}

	lockEntry struct {
		mu   sync.Mutex
		refs int
	}
)

func (kl *keyedLocks) lock(key Key) (unlock func()) {
	kl.mu.Lock()
	entry, ok := kl.entries[key]
	if !ok {
		entry = &lockEntry{}
		kl.entries[key] = entry
	}
	entry.refs++
	kl.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		kl.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(kl.entries, key)
		}
		kl.mu.Unlock()
	}
}
