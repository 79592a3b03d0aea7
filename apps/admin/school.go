package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/trezcool/shule/core/catalog"
	"github.com/trezcool/shule/core/school"
)

// loadStore builds the in-process catalog from the persisted templates.
func (cli *commandLine) loadStore(ctx context.Context) (*catalog.Store, error) {
	systems, err := cli.catRepo.LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.NewStore(systems)
}

// configure activates a new academic config for a school, replacing any
// previous one. Customizations come from an optional JSON file.
func (cli *commandLine) configure(schoolID, systemID, custFile string) error {
	ctx := context.Background()
	store, err := cli.loadStore(ctx)
	if err != nil {
		return err
	}

	nc := school.NewConfig{
		SchoolID:     schoolID,
		BaseSystemID: systemID,
		ModifiedBy:   "admin",
	}
	if custFile != "" {
		data, err := os.ReadFile(custFile)
		if err != nil {
			return err
		}
		if err = json.Unmarshal(data, &nc.Customizations); err != nil {
			return err
		}
	}

	cfg, err := school.NewService(store, cli.schRepo).Configure(ctx, nc)
	if err != nil {
		return err
	}
	logger.Printf("activated config %s for school %s on system %s", cfg.ID, cfg.SchoolID, cfg.BaseSystemID)
	return nil
}

// resolve prints a school's resolved academic system as JSON; warnings go to
// the logger so the JSON stays pipeable.
func (cli *commandLine) resolve(schoolID string) error {
	ctx := context.Background()
	store, err := cli.loadStore(ctx)
	if err != nil {
		return err
	}

	resolved, warnings, err := school.NewService(store, cli.schRepo).ResolveForSchool(ctx, schoolID)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		logger.Printf("warning: %s: %s", w.Field, w.Message)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(resolved)
}
