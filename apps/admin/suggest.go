package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/trezcool/shule/core/catalog"
)

// suggest ranks catalog systems for a country and school type and prints
// them as JSON, highest confidence first.
func (cli *commandLine) suggest(countryCode, schoolType string) error {
	store, err := cli.loadStore(context.Background())
	if err != nil {
		return err
	}

	suggestions := catalog.Suggest(store, countryCode, schoolType, catalog.SuggestWeights{
		Country:    cli.conf.Suggest.CountryWeight,
		SchoolType: cli.conf.Suggest.SchoolTypeWeight,
		Simplicity: cli.conf.Suggest.SimplicityWeight,
	})

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(suggestions)
}
