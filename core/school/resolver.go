package school

import (
	"errors"
	"fmt"

	"github.com/trezcool/shule/core/catalog"
)

var (
	// errors
	ErrLevelNotFound      = errors.New("education level not found in the resolved system")
	ErrClassLevelNotFound = errors.New("class level not found in the resolved system")
)

// Resolve merges a school's customizations onto a base system, copy-on-resolve:
// the base is never mutated and no mutable container is shared between base
// and resolved views. Unknown level references are surfaced as warnings, not
// errors. Deterministic: identical inputs yield structurally identical output.
func Resolve(cfg SchoolAcademicConfig, base catalog.EducationSystem) (ResolvedSystem, []Warning) {
	sys := base.Clone()
	warnings := make([]Warning, 0)
	cust := cfg.Customizations

	// partial level overrides, matched by id; unmatched ids never create levels
	for _, patch := range cust.ModifiedLevels {
		idx := levelIndex(sys, patch.ID)
		if idx < 0 {
			warnings = append(warnings, Warning{
				Field:   "modified_levels",
				Message: fmt.Sprintf("level %q does not exist in system %q", patch.ID, base.ID),
			})
			continue
		}
		applyPatch(&sys.Levels[idx], patch)
	}

	// additional subjects attach to every level whose class levels intersect
	// the subject's applicable levels; last write wins on subject id
	for _, sub := range cust.AdditionalSubjects {
		attached := false
		for i := range sys.Levels {
			if levelServesAny(sys.Levels[i], sub.ApplicableLevels) {
				upsertSubject(&sys.Levels[i], sub.Clone())
				attached = true
			}
		}
		if !attached {
			warnings = append(warnings, Warning{
				Field:   "additional_subjects",
				Message: fmt.Sprintf("subject %q references no known class level", sub.ID),
			})
		}
	}

	// full replacement only: a partial scale or term merge could leave the
	// school with an inconsistent partition
	if cust.CustomGradingScale != nil {
		for i := range sys.Levels {
			sys.Levels[i].GradingScale = cust.CustomGradingScale.Clone()
		}
	}
	if cust.CustomTerms != nil {
		for i := range sys.Levels {
			sys.Levels[i].Terms = append([]catalog.AcademicTerm(nil), cust.CustomTerms...)
		}
	}

	rules := make([]Rule, len(cust.SchoolRules))
	copy(rules, cust.SchoolRules) // returned verbatim, never merged

	return ResolvedSystem{
		EducationSystem: sys,
		SchoolID:        cfg.SchoolID,
		BaseSystemID:    base.ID,
		Rules:           rules,
	}, warnings
}

func levelIndex(sys catalog.EducationSystem, levelID string) int {
	for i, lvl := range sys.Levels {
		if lvl.ID == levelID {
			return i
		}
	}
	return -1
}

func applyPatch(lvl *catalog.EducationLevel, patch LevelPatch) {
	if patch.Name != nil {
		lvl.Name = *patch.Name
	}
	if patch.Description != nil {
		lvl.Description = *patch.Description
	}
	if patch.ClassLevels != nil {
		lvl.ClassLevels = append([]catalog.ClassLevel(nil), patch.ClassLevels...)
	}
	if patch.Subjects != nil {
		subjects := make([]catalog.SubjectDefinition, len(patch.Subjects))
		for i, sub := range patch.Subjects {
			subjects[i] = sub.Clone()
		}
		lvl.Subjects = subjects
	}
	if patch.GradingScale != nil {
		lvl.GradingScale = patch.GradingScale.Clone()
	}
	if patch.Terms != nil {
		lvl.Terms = append([]catalog.AcademicTerm(nil), patch.Terms...)
	}
}

func levelServesAny(lvl catalog.EducationLevel, classLevelIDs []string) bool {
	for _, cl := range lvl.ClassLevels {
		for _, id := range classLevelIDs {
			if cl.ID == id {
				return true
			}
		}
	}
	return false
}

func upsertSubject(lvl *catalog.EducationLevel, sub catalog.SubjectDefinition) {
	for i, existing := range lvl.Subjects {
		if existing.ID == sub.ID {
			lvl.Subjects[i] = sub
			return
		}
	}
	lvl.Subjects = append(lvl.Subjects, sub)
}

// IsValidClassLevel reports whether the class level id exists in any level of
// the resolved system.
func (rs ResolvedSystem) IsValidClassLevel(classLevelID string) bool {
	return rs.HasClassLevel(classLevelID)
}

// SubjectsForClassLevel returns all subjects applicable to a class level,
// including customized and additional ones.
func (rs ResolvedSystem) SubjectsForClassLevel(classLevelID string) ([]catalog.SubjectDefinition, error) {
	if !rs.HasClassLevel(classLevelID) {
		return nil, ErrClassLevelNotFound
	}
	subjects := make([]catalog.SubjectDefinition, 0)
	for _, lvl := range rs.Levels {
		for _, sub := range lvl.Subjects {
			for _, id := range sub.ApplicableLevels {
				if id == classLevelID {
					subjects = append(subjects, sub.Clone())
					break
				}
			}
		}
	}
	return subjects, nil
}

// SubjectsForLevel returns the subject list of one education level.
func (rs ResolvedSystem) SubjectsForLevel(levelID string) ([]catalog.SubjectDefinition, error) {
	lvl, ok := rs.Level(levelID)
	if !ok {
		return nil, ErrLevelNotFound
	}
	subjects := make([]catalog.SubjectDefinition, len(lvl.Subjects))
	for i, sub := range lvl.Subjects {
		subjects[i] = sub.Clone()
	}
	return subjects, nil
}

// ClassLevelsForLevel returns the class levels of one education level.
func (rs ResolvedSystem) ClassLevelsForLevel(levelID string) ([]catalog.ClassLevel, error) {
	lvl, ok := rs.Level(levelID)
	if !ok {
		return nil, ErrLevelNotFound
	}
	return append([]catalog.ClassLevel(nil), lvl.ClassLevels...), nil
}
