package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/trezcool/shule/core/catalog"
	appfs "github.com/trezcool/shule/fs"
)

// seedCatalog loads education system templates into the DB. The file must
// hold a JSON array of systems; they are validated as a whole before any
// write happens.
func (cli *commandLine) seedCatalog(path string) error {
	var data []byte
	var err error
	if path == "" {
		data, err = appfs.FS.ReadFile("catalog-seed.json")
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return err
	}

	var systems []catalog.EducationSystem
	if err = json.Unmarshal(data, &systems); err != nil {
		return err
	}
	if _, err = catalog.NewStore(systems); err != nil {
		return err
	}
	if err = cli.catRepo.SaveSystems(context.Background(), systems...); err != nil {
		return err
	}
	logger.Printf("seeded %d education system(s)", len(systems))
	return nil
}
