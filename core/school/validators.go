package school

import (
	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/catalog"
)

// NewConfig contains the information needed to configure a school's academics.
type NewConfig struct {
	SchoolID       string         `json:"school_id" validate:"required"`
	BaseSystemID   string         `json:"base_system_id" validate:"required"`
	Customizations Customizations `json:"customizations"`
	ModifiedBy     string         `json:"modified_by"`
}

func (nc *NewConfig) Validate(store *catalog.Store) error {
	nc.SchoolID = core.CleanString(nc.SchoolID)
	nc.BaseSystemID = core.CleanString(nc.BaseSystemID)
	nc.ModifiedBy = core.CleanString(nc.ModifiedBy)

	if err := core.Validate.Struct(nc); err != nil {
		return core.TranslateValidationError(err)
	}

	// the base template must exist before anything can be layered on it
	if _, err := store.GetByID(nc.BaseSystemID); err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "base_system_id", Error: err.Error()})
	}

	// a custom scale must satisfy the partition invariant up front; a school
	// must not be able to save a scale the evaluator will later reject
	if scale := nc.Customizations.CustomGradingScale; scale != nil {
		if err := catalog.ValidateScale(*scale); err != nil {
			return core.NewValidationError(err, core.FieldError{Field: "custom_grading_scale", Error: err.Error()})
		}
	}
	for _, patch := range nc.Customizations.ModifiedLevels {
		if patch.GradingScale != nil {
			if err := catalog.ValidateScale(*patch.GradingScale); err != nil {
				return core.NewValidationError(err, core.FieldError{Field: "modified_levels", Error: err.Error()})
			}
		}
	}

	for _, rule := range nc.Customizations.SchoolRules {
		if err := core.Validate.Struct(rule); err != nil {
			return core.TranslateValidationError(err)
		}
	}
	return nil
}
