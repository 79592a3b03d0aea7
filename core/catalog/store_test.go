package catalog

import (
	"errors"
	"testing"
)

func TestNewStore_failsFastOnMalformedData(t *testing.T) {
	brokenScale := nigerianSystem()
	brokenScale.Levels[0].GradingScale.Ranges[1].Min = 55 // gap 50-54

	dupID := nigerianSystem()

	badSubjectRef := nigerianSystem()
	badSubjectRef.Levels[1].Subjects[0].ApplicableLevels = []string{"nope"}

	badAges := nigerianSystem()
	badAges.Levels[0].ClassLevels[1].AgeRange = AgeRange{Min: 5, Max: 6} // younger than Primary 1

	badTerm := nigerianSystem()
	badTerm.Levels[0].Terms[0].StartMonth = 13

	tests := []struct {
		name    string
		systems []EducationSystem
		wantErr bool
	}{
		{name: "valid", systems: []EducationSystem{nigerianSystem(), internationalSystem()}},
		{name: "empty catalog", systems: nil},
		{name: "gapped grading scale", systems: []EducationSystem{brokenScale}, wantErr: true},
		{name: "duplicate system id", systems: []EducationSystem{nigerianSystem(), dupID}, wantErr: true},
		{name: "subject references unknown class level", systems: []EducationSystem{badSubjectRef}, wantErr: true},
		{name: "class levels not age-ordered", systems: []EducationSystem{badAges}, wantErr: true},
		{name: "term month out of range", systems: []EducationSystem{badTerm}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewStore(tt.systems); (err != nil) != tt.wantErr {
				t.Errorf("NewStore() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestStore_lookups(t *testing.T) {
	st := testStore(t, nigerianSystem(), internationalSystem())

	if _, err := st.GetByID("ng-standard"); err != nil {
		t.Errorf("GetByID() error = %v", err)
	}
	if _, err := st.GetByID("lol"); !errors.Is(err, ErrSystemNotFound) {
		t.Errorf("GetByID() error = %v, want ErrSystemNotFound", err)
	}
	if _, err := st.Get("NG"); err != nil {
		t.Errorf("Get() error = %v", err)
	}
	if _, err := st.Get("ZZ"); !errors.Is(err, ErrSystemNotFound) {
		t.Errorf("Get() error = %v, want ErrSystemNotFound", err)
	}

	// listing treats absence as a valid outcome
	if got := st.ListByCountry("ZZ"); len(got) != 0 {
		t.Errorf("ListByCountry() = %v, want empty", got)
	}
	if got := st.ListByCountry("NG"); len(got) != 1 || got[0].ID != "ng-standard" {
		t.Errorf("ListByCountry() = %v", got)
	}
}

func TestStore_isReadOnly(t *testing.T) {
	systems := []EducationSystem{nigerianSystem()}
	st := testStore(t, systems...)

	// mutating the input after construction must not reach the store
	systems[0].Levels[0].Subjects[0].Name = "Hacked"
	sys, err := st.GetByID("ng-standard")
	if err != nil {
		t.Fatalf("GetByID() failed: %v", err)
	}
	if got := sys.Levels[0].Subjects[0].Name; got != "Mathematics" {
		t.Errorf("store aliased caller input; subject name = %q", got)
	}

	// mutating a lookup result must not reach the store either
	sys.Levels[0].Subjects[0].Name = "Hacked"
	again, _ := st.GetByID("ng-standard")
	if got := again.Levels[0].Subjects[0].Name; got != "Mathematics" {
		t.Errorf("store aliased lookup result; subject name = %q", got)
	}
}

func TestStore_ListCountries(t *testing.T) {
	st := testStore(t, nigerianSystem(), internationalSystem())

	countries := st.ListCountries()
	if len(countries) != 2 {
		t.Fatalf("ListCountries() returned %d countries, want 2", len(countries))
	}
	// ordered by code: INTL < NG
	if countries[0].Code != "INTL" || countries[1].Code != "NG" {
		t.Errorf("ListCountries() order = [%s %s]", countries[0].Code, countries[1].Code)
	}
	if countries[1].Name != "Nigeria" || countries[1].PhoneCode != "+234" || countries[1].Flag == "" {
		t.Errorf("ListCountries() NG entry not enriched: %+v", countries[1])
	}
}
