package main

import (
	"context"

	"github.com/trezcool/shule/core/assessment"
)

// mergeCA collapses duplicate CA component rows into one composite per
// (student, subject, class, term). Safe to re-run.
func (cli *commandLine) mergeCA(filter assessment.Filter) error {
	stats, err := cli.assSvc.Ingest(context.Background(), filter)
	if err != nil {
		return err
	}
	logger.Printf("merged %d key(s): %d updated, %d row(s) deleted", stats.Keys, stats.Updated, stats.Deleted)
	return nil
}
