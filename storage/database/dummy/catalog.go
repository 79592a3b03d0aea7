package dummydb

import (
	"context"

	"github.com/trezcool/shule/core/catalog"
)

// catalogRepository serves a fixed set of systems; the real catalog is
// read-only after startup anyway.
type catalogRepository struct {
	systems []catalog.EducationSystem
}

var _ catalog.Repository = (*catalogRepository)(nil) // interface compliance check

func NewCatalogRepository(systems ...catalog.EducationSystem) *catalogRepository {
	return &catalogRepository{systems: systems}
}

func (repo *catalogRepository) LoadCatalog(ctx context.Context) ([]catalog.EducationSystem, error) {
	systems := make([]catalog.EducationSystem, len(repo.systems))
	for i, sys := range repo.systems {
		systems[i] = sys.Clone()
	}
	return systems, nil
}

// SaveSystems upserts by id.
func (repo *catalogRepository) SaveSystems(ctx context.Context, systems ...catalog.EducationSystem) error {
	for _, sys := range systems {
		replaced := false
		for i, old := range repo.systems {
			if old.ID == sys.ID {
				repo.systems[i] = sys.Clone()
				replaced = true
				break
			}
		}
		if !replaced {
			repo.systems = append(repo.systems, sys.Clone())
		}
	}
	return nil
}
