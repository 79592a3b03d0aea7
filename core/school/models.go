// Package school layers a school's customizations on top of a base education
// system template and exposes the resolved, read-only view.
package school

import (
	"time"

	"github.com/trezcool/shule/core/catalog"
)

// Rule types
const (
	RulePromotion  = "promotion"
	RuleGrading    = "grading"
	RuleAttendance = "attendance"
	RuleDiscipline = "discipline"
	RuleCustom     = "custom"
)

type SchoolAcademicConfig struct {
	ID             string         `json:"id"`
	SchoolID       string         `json:"school_id"`
	BaseSystemID   string         `json:"base_system_id"`
	Customizations Customizations `json:"customizations"`
	IsActive       bool           `json:"is_active"`
	LastModified   time.Time      `json:"last_modified"` // UTC
	ModifiedBy     string         `json:"modified_by"`
}

type Customizations struct {
	ModifiedLevels     []LevelPatch                  `json:"modified_levels,omitempty"`
	AdditionalSubjects []catalog.SubjectDefinition   `json:"additional_subjects,omitempty"`
	CustomGradingScale *catalog.GradingScale         `json:"custom_grading_scale,omitempty"`
	CustomTerms        []catalog.AcademicTerm        `json:"custom_terms,omitempty"`
	SchoolRules        []Rule                        `json:"school_specific_rules,omitempty"`
}

// LevelPatch is a partial education level matched to a base level by ID.
// Nil fields keep the base value; present fields overwrite it wholesale.
type LevelPatch struct {
	ID           string                        `json:"id"`
	Name         *string                       `json:"name,omitempty"`
	Description  *string                       `json:"description,omitempty"`
	ClassLevels  []catalog.ClassLevel          `json:"class_levels,omitempty"`
	Subjects     []catalog.SubjectDefinition   `json:"subjects,omitempty"`
	GradingScale *catalog.GradingScale         `json:"grading_scale,omitempty"`
	Terms        []catalog.AcademicTerm        `json:"terms,omitempty"`
}

// Rule is school policy carried verbatim; Parameters is an opaque bag the
// core never interprets.
type Rule struct {
	ID          string                 `json:"id"`
	Type        string                 `json:"type" validate:"required,oneof=promotion grading attendance discipline custom"`
	Name        string                 `json:"name" validate:"required"`
	Description string                 `json:"description"`
	Parameters  map[string]interface{} `json:"parameters,omitempty"`
	IsActive    bool                   `json:"is_active"`
}

// ResolvedSystem is the merged, school-specific view of an education system.
// It owns all of its containers; the base system is never aliased.
type ResolvedSystem struct {
	catalog.EducationSystem

	SchoolID     string `json:"school_id"`
	BaseSystemID string `json:"base_system_id"`
	Rules        []Rule `json:"school_specific_rules"`
}

// Warning reports a non-fatal customization problem; resolution proceeds.
type Warning struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
