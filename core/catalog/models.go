// Package catalog holds the read-only education system templates and the
// pure computations over them: lookups, grading scale evaluation and
// system suggestions.
package catalog

import (
	"github.com/volatiletech/null/v8"
)

// Subject categories
const (
	SubjectCore       = "core"
	SubjectElective   = "elective"
	SubjectVocational = "vocational"
	SubjectLanguage   = "language"
	SubjectArts       = "arts"
	SubjectScience    = "science"
	SubjectSocial     = "social"
)

// Grading scale types
const (
	ScaleLetter      = "letter"
	ScaleNumeric     = "numeric"
	ScaleDescriptive = "descriptive"
	ScalePercentage  = "percentage"
)

// School types
const (
	SchoolTypePrimary   = "primary"
	SchoolTypeSecondary = "secondary"
	SchoolTypeTertiary  = "tertiary"
)

// FeatureInternational flags a system usable outside its home country.
const FeatureInternational = "international"

type EducationSystem struct {
	ID          string           `json:"id"`
	Country     string           `json:"country"`
	CountryCode string           `json:"country_code"` // not unique: a country may have several systems
	SystemName  string           `json:"system_name"`
	Description string           `json:"description"`
	Levels      []EducationLevel `json:"levels"`
	Features    []string         `json:"features"`
	Calendar    string           `json:"calendar"`
}

type EducationLevel struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	ClassLevels  []ClassLevel        `json:"class_levels"`
	Subjects     []SubjectDefinition `json:"subjects"`
	GradingScale GradingScale        `json:"grading_scale"`
	Terms        []AcademicTerm      `json:"terms"`
}

type ClassLevel struct {
	ID                string   `json:"id"`
	DisplayName       string   `json:"display_name"`
	ShortName         string   `json:"short_name"`
	NumericValue      int      `json:"numeric_value"` // total order within a system
	AgeRange          AgeRange `json:"age_range"`
	IsGraduationLevel bool     `json:"is_graduation_level"`
}

type AgeRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type SubjectDefinition struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	ShortName        string   `json:"short_name"`
	Category         string   `json:"category"`
	IsRequired       bool     `json:"is_required"`
	ApplicableLevels []string `json:"applicable_levels"` // ClassLevel ids within the same system
}

type GradingScale struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Type   string       `json:"type"`
	Ranges []GradeRange `json:"ranges"`
	// PassingGrade is a numeric threshold for numeric/percentage scales
	// and a grade symbol for letter/descriptive ones.
	PassingGrade string  `json:"passing_grade"`
	MaxScore     float64 `json:"max_score"`
}

// GradeRange is an inclusive [Min, Max] band. Consecutive ranges follow the
// integer boundary convention: next.Min = prev.Max + 1.
type GradeRange struct {
	Min         float64      `json:"min"`
	Max         float64      `json:"max"`
	Grade       string       `json:"grade"`
	GPA         null.Float64 `json:"gpa,omitempty"`
	Description string       `json:"description,omitempty"`
}

// AcademicTerm months are 1-12; StartMonth > EndMonth means the term wraps
// the calendar year.
type AcademicTerm struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ShortName  string `json:"short_name"`
	StartMonth int    `json:"start_month"`
	EndMonth   int    `json:"end_month"`
	IsExamTerm bool   `json:"is_exam_term"`
}

type Country struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	Flag      string `json:"flag"`
	PhoneCode string `json:"phone_code"`
}

func (s EducationSystem) Clone() EducationSystem {
	cp := s
	cp.Features = append([]string(nil), s.Features...)
	cp.Levels = make([]EducationLevel, len(s.Levels))
	for i, lvl := range s.Levels {
		cp.Levels[i] = lvl.Clone()
	}
	return cp
}

func (l EducationLevel) Clone() EducationLevel {
	cp := l
	cp.ClassLevels = make([]ClassLevel, len(l.ClassLevels))
	copy(cp.ClassLevels, l.ClassLevels)
	cp.Subjects = make([]SubjectDefinition, len(l.Subjects))
	for i, sub := range l.Subjects {
		cp.Subjects[i] = sub.Clone()
	}
	cp.GradingScale = l.GradingScale.Clone()
	cp.Terms = append([]AcademicTerm(nil), l.Terms...)
	return cp
}

func (sub SubjectDefinition) Clone() SubjectDefinition {
	cp := sub
	cp.ApplicableLevels = append([]string(nil), sub.ApplicableLevels...)
	return cp
}

func (gs GradingScale) Clone() GradingScale {
	cp := gs
	cp.Ranges = append([]GradeRange(nil), gs.Ranges...)
	return cp
}

// HasFeature reports whether the system is flagged with the given feature.
func (s EducationSystem) HasFeature(feature string) bool {
	for _, f := range s.Features {
		if f == feature {
			return true
		}
	}
	return false
}

// Level returns the education level with the given id, if any.
func (s EducationSystem) Level(levelID string) (EducationLevel, bool) {
	for _, lvl := range s.Levels {
		if lvl.ID == levelID {
			return lvl, true
		}
	}
	return EducationLevel{}, false
}

// HasClassLevel reports whether any level of the system defines the class level id.
func (s EducationSystem) HasClassLevel(classLevelID string) bool {
	for _, lvl := range s.Levels {
		for _, cl := range lvl.ClassLevels {
			if cl.ID == classLevelID {
				return true
			}
		}
	}
	return false
}

// HasGPA reports whether at least one grade range carries a GPA value.
func (gs GradingScale) HasGPA() bool {
	for _, r := range gs.Ranges {
		if r.GPA.Valid {
			return true
		}
	}
	return false
}
