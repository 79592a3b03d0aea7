package sqlxrepos

import (
	"context"
	"encoding/json"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/catalog"
)

// educationSystemRecord is the education_system table shape; the level tree
// is stored as a JSONB document.
type educationSystemRecord struct {
	ID          string         `db:"id"`
	Country     string         `db:"country"`
	CountryCode string         `db:"country_code"`
	SystemName  string         `db:"system_name"`
	Description string         `db:"description"`
	Calendar    string         `db:"calendar"`
	Features    types.JSONText `db:"features"`
	Levels      types.JSONText `db:"levels"`
}

type catalogRepository struct {
	db *sqlx.DB
}

var _ catalog.Repository = (*catalogRepository)(nil) // interface compliance check

func NewCatalogRepository(db *sqlx.DB) *catalogRepository {
	return &catalogRepository{db: db}
}

// LoadCatalog reads every education system template; called once at startup
// to build the catalog.Store.
func (repo catalogRepository) LoadCatalog(ctx context.Context) ([]catalog.EducationSystem, error) {
	var records []educationSystemRecord
	q := `SELECT id, country, country_code, system_name, description, calendar, features, levels
		  FROM education_system ORDER BY id`
	if err := repo.db.SelectContext(ctx, &records, q); err != nil {
		return nil, errors.Wrap(err, "loading catalog")
	}

	systems := make([]catalog.EducationSystem, 0, len(records))
	for _, rec := range records {
		sys := catalog.EducationSystem{
			ID:          rec.ID,
			Country:     rec.Country,
			CountryCode: rec.CountryCode,
			SystemName:  rec.SystemName,
			Description: rec.Description,
			Calendar:    rec.Calendar,
		}
		if err := json.Unmarshal(rec.Features, &sys.Features); err != nil {
			return nil, errors.Wrapf(err, "unmarshalling features of system %q", rec.ID)
		}
		if err := json.Unmarshal(rec.Levels, &sys.Levels); err != nil {
			return nil, errors.Wrapf(err, "unmarshalling levels of system %q", rec.ID)
		}
		systems = append(systems, sys)
	}
	return systems, nil
}

// SaveSystems upserts catalog templates; only the seed command writes here.
func (repo catalogRepository) SaveSystems(ctx context.Context, systems ...catalog.EducationSystem) error {
	q := `INSERT INTO education_system (id, country, country_code, system_name, description, calendar, features, levels)
		  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		  ON CONFLICT (id) DO UPDATE
		  SET country = EXCLUDED.country, country_code = EXCLUDED.country_code,
			  system_name = EXCLUDED.system_name, description = EXCLUDED.description,
			  calendar = EXCLUDED.calendar, features = EXCLUDED.features, levels = EXCLUDED.levels`
	for _, sys := range systems {
		features, err := json.Marshal(sys.Features)
		if err != nil {
			return errors.Wrapf(err, "marshalling features of system %q", sys.ID)
		}
		levels, err := json.Marshal(sys.Levels)
		if err != nil {
			return errors.Wrapf(err, "marshalling levels of system %q", sys.ID)
		}
		if _, err = repo.db.ExecContext(ctx, q,
			sys.ID, sys.Country, sys.CountryCode, sys.SystemName, sys.Description, sys.Calendar,
			types.JSONText(features), types.JSONText(levels),
		); err != nil {
			return errors.Wrapf(err, "saving system %q", sys.ID)
		}
	}
	return nil
}
