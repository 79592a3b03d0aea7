// Package dummydb provides in-mem repositories for tests and offline runs.
package dummydb

import (
	"sync"

	"github.com/trezcool/shule/core/assessment"
	"github.com/trezcool/shule/core/school"
)

type (
	DB struct {
		schoolConfig *schoolConfigTable
		caRow        *caRowTable
	}

	schoolConfigTable struct {
		sync.RWMutex
		table map[string]*school.SchoolAcademicConfig // by config id
	}

	caRowTable struct {
		sync.RWMutex
		table map[string]*assessment.ComponentRow // by row id
	}
)

func Open() (*DB, error) {
	db := &DB{
		schoolConfig: &schoolConfigTable{table: make(map[string]*school.SchoolAcademicConfig)},
		caRow:        &caRowTable{table: make(map[string]*assessment.ComponentRow)},
	}
	return db, nil
}
