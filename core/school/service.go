package school

import (
	"context"
	"errors"
	"time"

	"github.com/trezcool/shule/core/catalog"
)

var (
	// errors
	ErrConfigNotFound = errors.New("school academic config not found")
)

type (
	Repository interface {
		// GetActiveConfig returns the school's single active config;
		// ErrConfigNotFound when the school has none.
		GetActiveConfig(ctx context.Context, schoolID string) (SchoolAcademicConfig, error)
		SaveConfig(ctx context.Context, cfg SchoolAcademicConfig) (SchoolAcademicConfig, error)
	}

	Service struct {
		store *catalog.Store
		repo  Repository
	}
)

func NewService(store *catalog.Store, repo Repository) *Service {
	return &Service{store: store, repo: repo}
}

// ResolveForSchool loads the school's active config and resolves it against
// its base system.
func (svc *Service) ResolveForSchool(ctx context.Context, schoolID string) (ResolvedSystem, []Warning, error) {
	cfg, err := svc.repo.GetActiveConfig(ctx, schoolID)
	if err != nil {
		return ResolvedSystem{}, nil, err
	}
	base, err := svc.store.GetByID(cfg.BaseSystemID)
	if err != nil {
		return ResolvedSystem{}, nil, err
	}
	resolved, warnings := Resolve(cfg, base)
	return resolved, warnings, nil
}

// Configure validates and persists a new academic config for a school.
// The repository deactivates any previous config in the same write.
func (svc *Service) Configure(ctx context.Context, nc NewConfig) (SchoolAcademicConfig, error) {
	if err := nc.Validate(svc.store); err != nil {
		return SchoolAcademicConfig{}, err
	}
	cfg := SchoolAcademicConfig{
		SchoolID:       nc.SchoolID,
		BaseSystemID:   nc.BaseSystemID,
		Customizations: nc.Customizations,
		IsActive:       true,
		LastModified:   time.Now().UTC(),
		ModifiedBy:     nc.ModifiedBy,
	}
	return svc.repo.SaveConfig(ctx, cfg)
}

// Suggest ranks base systems for a school's country and type.
func (svc *Service) Suggest(countryCode, schoolType string, weights catalog.SuggestWeights) []catalog.SystemSuggestion {
	return catalog.Suggest(svc.store, countryCode, schoolType, weights)
}
