package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

var (
	// errors
	ErrSystemNotFound = errors.New("education system not found")
)

type Repository interface {
	LoadCatalog(ctx context.Context) ([]EducationSystem, error)
	SaveSystems(ctx context.Context, systems ...EducationSystem) error
}

// Store is the process-wide table of education system templates.
// It is built once at startup (fail-fast on malformed data) and is
// read-only thereafter; lookups return defensive copies so callers can
// never reach the shared state.
type Store struct {
	systems   []EducationSystem
	byID      map[string]int
	byCountry map[string][]int
}

// NewStore validates and indexes the given systems. The input is deep-copied;
// later mutations of the caller's slice do not affect the store.
func NewStore(systems []EducationSystem) (*Store, error) {
	st := &Store{
		systems:   make([]EducationSystem, 0, len(systems)),
		byID:      make(map[string]int, len(systems)),
		byCountry: make(map[string][]int),
	}

	for _, sys := range systems {
		if err := validateSystem(sys); err != nil {
			return nil, err
		}
		if _, dup := st.byID[sys.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate system id %q", sys.ID)
		}
		idx := len(st.systems)
		st.systems = append(st.systems, sys.Clone())
		st.byID[sys.ID] = idx
		st.byCountry[sys.CountryCode] = append(st.byCountry[sys.CountryCode], idx)
	}

	// deterministic listing order
	for _, idxs := range st.byCountry {
		sort.Slice(idxs, func(i, j int) bool { return st.systems[idxs[i]].ID < st.systems[idxs[j]].ID })
	}
	return st, nil
}

// Get returns the default (first by id) system for a country.
func (st *Store) Get(countryCode string) (EducationSystem, error) {
	idxs := st.byCountry[countryCode]
	if len(idxs) == 0 {
		return EducationSystem{}, ErrSystemNotFound
	}
	return st.systems[idxs[0]].Clone(), nil
}

func (st *Store) GetByID(id string) (EducationSystem, error) {
	idx, ok := st.byID[id]
	if !ok {
		return EducationSystem{}, ErrSystemNotFound
	}
	return st.systems[idx].Clone(), nil
}

// ListByCountry returns all systems for a country; empty for unknown codes.
func (st *Store) ListByCountry(countryCode string) []EducationSystem {
	idxs := st.byCountry[countryCode]
	systems := make([]EducationSystem, 0, len(idxs))
	for _, idx := range idxs {
		systems = append(systems, st.systems[idx].Clone())
	}
	return systems
}

// List returns every system, ordered by id.
func (st *Store) List() []EducationSystem {
	systems := make([]EducationSystem, 0, len(st.systems))
	for _, sys := range st.systems {
		systems = append(systems, sys.Clone())
	}
	sort.Slice(systems, func(i, j int) bool { return systems[i].ID < systems[j].ID })
	return systems
}

// ListCountries returns the distinct countries covered by the catalog,
// enriched with flag and phone code reference data, ordered by code.
func (st *Store) ListCountries() []Country {
	seen := make(map[string]bool, len(st.byCountry))
	countries := make([]Country, 0, len(st.byCountry))
	for code, idxs := range st.byCountry {
		if seen[code] {
			continue
		}
		seen[code] = true
		countries = append(countries, countryRef(code, st.systems[idxs[0]].Country))
	}
	sort.Slice(countries, func(i, j int) bool { return countries[i].Code < countries[j].Code })
	return countries
}

// validateSystem fails fast on malformed catalog data so broken templates are
// caught at startup, not mid-request.
func validateSystem(sys EducationSystem) error {
	if sys.ID == "" {
		return errors.New("catalog: system id is required")
	}
	if len(sys.Levels) == 0 {
		return fmt.Errorf("catalog: system %q has no levels", sys.ID)
	}

	classLevelIDs := make(map[string]bool)
	levelIDs := make(map[string]bool)
	for _, lvl := range sys.Levels {
		if lvl.ID == "" {
			return fmt.Errorf("catalog: system %q has a level without an id", sys.ID)
		}
		if levelIDs[lvl.ID] {
			return fmt.Errorf("catalog: system %q has duplicate level id %q", sys.ID, lvl.ID)
		}
		levelIDs[lvl.ID] = true

		if err := validateClassLevels(sys.ID, lvl); err != nil {
			return err
		}
		for _, cl := range lvl.ClassLevels {
			classLevelIDs[cl.ID] = true
		}
		if err := ValidateScale(lvl.GradingScale); err != nil {
			return fmt.Errorf("catalog: system %q level %q: %v", sys.ID, lvl.ID, err)
		}
		for _, term := range lvl.Terms {
			if term.StartMonth < 1 || term.StartMonth > 12 || term.EndMonth < 1 || term.EndMonth > 12 {
				return fmt.Errorf("catalog: system %q term %q has months outside 1-12", sys.ID, term.ID)
			}
		}
	}

	// subjects may only reference class levels of their own system
	for _, lvl := range sys.Levels {
		for _, sub := range lvl.Subjects {
			for _, clID := range sub.ApplicableLevels {
				if !classLevelIDs[clID] {
					return fmt.Errorf("catalog: system %q subject %q references unknown class level %q", sys.ID, sub.ID, clID)
				}
			}
		}
	}
	return nil
}

func validateClassLevels(sysID string, lvl EducationLevel) error {
	numVals := make(map[int]bool, len(lvl.ClassLevels))
	sorted := append([]ClassLevel(nil), lvl.ClassLevels...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].NumericValue < sorted[j].NumericValue })

	prevAge := -1
	for _, cl := range sorted {
		if cl.ID == "" {
			return fmt.Errorf("catalog: system %q level %q has a class level without an id", sysID, lvl.ID)
		}
		if numVals[cl.NumericValue] {
			return fmt.Errorf("catalog: system %q level %q has duplicate class numeric value %d", sysID, lvl.ID, cl.NumericValue)
		}
		numVals[cl.NumericValue] = true

		if cl.AgeRange.Min > cl.AgeRange.Max {
			return fmt.Errorf("catalog: system %q class level %q has an inverted age range", sysID, cl.ID)
		}
		// numeric order must follow age order
		if cl.AgeRange.Min <= prevAge {
			return fmt.Errorf("catalog: system %q level %q class levels are not age-ordered", sysID, lvl.ID)
		}
		prevAge = cl.AgeRange.Min
	}
	return nil
}
