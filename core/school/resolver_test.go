package school

import (
	"errors"
	"reflect"
	"testing"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/shule/core/catalog"
)

func baseSystem() catalog.EducationSystem {
	return catalog.EducationSystem{
		ID:          "ke-844",
		Country:     "Kenya",
		CountryCode: "KE",
		SystemName:  "Kenyan 8-4-4",
		Levels: []catalog.EducationLevel{
			{
				ID:   "primary",
				Name: "Primary School",
				ClassLevels: []catalog.ClassLevel{
					{ID: "std1", DisplayName: "Standard 1", ShortName: "STD1", NumericValue: 1, AgeRange: catalog.AgeRange{Min: 6, Max: 7}},
					{ID: "std8", DisplayName: "Standard 8", ShortName: "STD8", NumericValue: 2, AgeRange: catalog.AgeRange{Min: 13, Max: 14}, IsGraduationLevel: true},
				},
				Subjects: []catalog.SubjectDefinition{
					{ID: "math", Name: "Mathematics", ShortName: "MTH", Category: catalog.SubjectCore, IsRequired: true, ApplicableLevels: []string{"std1", "std8"}},
					{ID: "kis", Name: "Kiswahili", ShortName: "KIS", Category: catalog.SubjectLanguage, IsRequired: true, ApplicableLevels: []string{"std1", "std8"}},
				},
				GradingScale: catalog.GradingScale{
					ID: "ke-scale", Name: "KCPE", Type: catalog.ScalePercentage, PassingGrade: "40", MaxScore: 100,
					Ranges: []catalog.GradeRange{
						{Min: 0, Max: 39, Grade: "E"},
						{Min: 40, Max: 69, Grade: "C", GPA: null.Float64From(2)},
						{Min: 70, Max: 100, Grade: "A", GPA: null.Float64From(4)},
					},
				},
				Terms: []catalog.AcademicTerm{
					{ID: "t1", Name: "Term 1", StartMonth: 1, EndMonth: 4},
					{ID: "t3", Name: "Term 3", StartMonth: 9, EndMonth: 11, IsExamTerm: true},
				},
			},
		},
	}
}

func strPtr(s string) *string { return &s }

func TestResolve_isPureAndNeverMutatesBase(t *testing.T) {
	base := baseSystem()
	snapshot := base.Clone()
	cfg := SchoolAcademicConfig{
		SchoolID:     "sch-1",
		BaseSystemID: base.ID,
		Customizations: Customizations{
			ModifiedLevels: []LevelPatch{{ID: "primary", Name: strPtr("Lower School")}},
			AdditionalSubjects: []catalog.SubjectDefinition{
				{ID: "cs", Name: "Computer Studies", Category: catalog.SubjectScience, ApplicableLevels: []string{"std8"}},
			},
		},
	}

	first, warns1 := Resolve(cfg, base)
	second, warns2 := Resolve(cfg, base)

	if !reflect.DeepEqual(base, snapshot) {
		t.Error("Resolve() mutated the base system")
	}
	if !reflect.DeepEqual(first, second) || !reflect.DeepEqual(warns1, warns2) {
		t.Error("Resolve() is not deterministic")
	}

	// resolved view must own its containers, not alias the base
	if &first.Levels[0].Subjects[0] == &base.Levels[0].Subjects[0] {
		t.Error("resolved level subjects alias the base")
	}
	if len(first.Levels[0].Subjects) == len(base.Levels[0].Subjects) {
		t.Errorf("additional subject was not applied: %d subjects", len(first.Levels[0].Subjects))
	}
}

func TestResolve_modifiedLevels(t *testing.T) {
	base := baseSystem()
	customScale := catalog.GradingScale{
		ID: "strict", Name: "Strict", Type: catalog.ScalePercentage, PassingGrade: "60", MaxScore: 100,
		Ranges: []catalog.GradeRange{
			{Min: 0, Max: 59, Grade: "F"},
			{Min: 60, Max: 100, Grade: "P"},
		},
	}
	cfg := SchoolAcademicConfig{
		SchoolID: "sch-1",
		Customizations: Customizations{
			ModifiedLevels: []LevelPatch{
				{ID: "primary", Name: strPtr("Elementary"), GradingScale: &customScale},
				{ID: "ghost", Name: strPtr("Ghost Level")}, // unknown: warn, never create
			},
		},
	}

	resolved, warnings := Resolve(cfg, base)

	lvl := resolved.Levels[0]
	if lvl.Name != "Elementary" {
		t.Errorf("patched name = %q", lvl.Name)
	}
	if lvl.Description != base.Levels[0].Description {
		t.Error("absent patch field overwrote the base description")
	}
	if lvl.GradingScale.ID != "strict" {
		t.Errorf("patched scale = %q", lvl.GradingScale.ID)
	}
	if len(lvl.ClassLevels) != 2 {
		t.Errorf("absent class levels patch changed the base list: %d", len(lvl.ClassLevels))
	}

	if len(resolved.Levels) != 1 {
		t.Errorf("unknown level id silently created a level: %d levels", len(resolved.Levels))
	}
	if len(warnings) != 1 || warnings[0].Field != "modified_levels" {
		t.Errorf("warnings = %+v, want one modified_levels warning", warnings)
	}
}

func TestResolve_additionalSubjects(t *testing.T) {
	base := baseSystem()
	cfg := SchoolAcademicConfig{
		SchoolID: "sch-1",
		Customizations: Customizations{
			AdditionalSubjects: []catalog.SubjectDefinition{
				// brand new subject
				{ID: "cs", Name: "Computer Studies", Category: catalog.SubjectScience, ApplicableLevels: []string{"std8"}},
				// same id as a base subject: replaces it (last write wins)
				{ID: "math", Name: "Advanced Mathematics", Category: catalog.SubjectCore, IsRequired: true, ApplicableLevels: []string{"std8"}},
				// no known class level: warned and skipped
				{ID: "orphan", Name: "Orphan", Category: catalog.SubjectElective, ApplicableLevels: []string{"year12"}},
			},
		},
	}

	resolved, warnings := Resolve(cfg, base)

	subjects, err := resolved.SubjectsForLevel("primary")
	if err != nil {
		t.Fatalf("SubjectsForLevel() failed: %v", err)
	}
	if len(subjects) != 3 { // math (replaced), kis, cs
		t.Fatalf("got %d subjects, want 3", len(subjects))
	}
	byID := make(map[string]catalog.SubjectDefinition, len(subjects))
	for _, sub := range subjects {
		byID[sub.ID] = sub
	}
	if byID["math"].Name != "Advanced Mathematics" {
		t.Errorf("math subject = %q, want customization to win", byID["math"].Name)
	}
	if _, ok := byID["cs"]; !ok {
		t.Error("additional subject was not appended")
	}
	if _, ok := byID["orphan"]; ok {
		t.Error("orphan subject should have been skipped")
	}
	if len(warnings) != 1 || warnings[0].Field != "additional_subjects" {
		t.Errorf("warnings = %+v, want one additional_subjects warning", warnings)
	}
}

func TestResolve_fullReplacementOverrides(t *testing.T) {
	base := baseSystem()
	scale := catalog.GradingScale{
		ID: "school-scale", Name: "School Scale", Type: catalog.ScaleLetter, PassingGrade: "C", MaxScore: 20,
		Ranges: []catalog.GradeRange{
			{Min: 0, Max: 9, Grade: "F"},
			{Min: 10, Max: 20, Grade: "C"},
		},
	}
	terms := []catalog.AcademicTerm{{ID: "sem1", Name: "Semester 1", StartMonth: 9, EndMonth: 2}} // wraps the year
	cfg := SchoolAcademicConfig{
		SchoolID: "sch-1",
		Customizations: Customizations{
			CustomGradingScale: &scale,
			CustomTerms:        terms,
		},
	}

	resolved, warnings := Resolve(cfg, base)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %+v", warnings)
	}
	for _, lvl := range resolved.Levels {
		if lvl.GradingScale.ID != "school-scale" {
			t.Errorf("level %q kept scale %q", lvl.ID, lvl.GradingScale.ID)
		}
		if len(lvl.Terms) != 1 || lvl.Terms[0].ID != "sem1" {
			t.Errorf("level %q kept terms %+v", lvl.ID, lvl.Terms)
		}
	}
}

func TestResolve_rulesAreVerbatim(t *testing.T) {
	base := baseSystem()
	rules := []Rule{
		{ID: "r1", Type: RulePromotion, Name: "Promotion threshold", Parameters: map[string]interface{}{"min_average": 50}, IsActive: true},
		{ID: "r2", Type: RuleCustom, Name: "Uniform policy", IsActive: false},
	}
	cfg := SchoolAcademicConfig{SchoolID: "sch-1", Customizations: Customizations{SchoolRules: rules}}

	resolved, _ := Resolve(cfg, base)
	if !reflect.DeepEqual(resolved.Rules, rules) {
		t.Errorf("rules = %+v, want verbatim %+v", resolved.Rules, rules)
	}
}

func TestResolvedSystem_projections(t *testing.T) {
	base := baseSystem()
	resolved, _ := Resolve(SchoolAcademicConfig{SchoolID: "sch-1"}, base)

	if !resolved.IsValidClassLevel("std8") {
		t.Error("IsValidClassLevel(std8) = false")
	}
	if resolved.IsValidClassLevel("year12") {
		t.Error("IsValidClassLevel(year12) = true")
	}

	subjects, err := resolved.SubjectsForClassLevel("std1")
	if err != nil {
		t.Fatalf("SubjectsForClassLevel() failed: %v", err)
	}
	if len(subjects) != 2 {
		t.Errorf("SubjectsForClassLevel(std1) returned %d subjects, want 2", len(subjects))
	}
	if _, err = resolved.SubjectsForClassLevel("year12"); !errors.Is(err, ErrClassLevelNotFound) {
		t.Errorf("SubjectsForClassLevel() error = %v, want ErrClassLevelNotFound", err)
	}

	if _, err = resolved.SubjectsForLevel("ghost"); !errors.Is(err, ErrLevelNotFound) {
		t.Errorf("SubjectsForLevel() error = %v, want ErrLevelNotFound", err)
	}
	classLevels, err := resolved.ClassLevelsForLevel("primary")
	if err != nil {
		t.Fatalf("ClassLevelsForLevel() failed: %v", err)
	}
	if len(classLevels) != 2 {
		t.Errorf("ClassLevelsForLevel(primary) returned %d class levels, want 2", len(classLevels))
	}
}
