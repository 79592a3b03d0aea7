package catalog

import "github.com/volatiletech/null/v8"

// test fixtures

func percentScale(id string) GradingScale {
	return GradingScale{
		ID:           id,
		Name:         "Percentage",
		Type:         ScalePercentage,
		PassingGrade: "50",
		MaxScore:     100,
		Ranges: []GradeRange{
			{Min: 0, Max: 49, Grade: "F", GPA: null.Float64From(0)},
			{Min: 50, Max: 69, Grade: "C", GPA: null.Float64From(2)},
			{Min: 70, Max: 100, Grade: "A", GPA: null.Float64From(4)},
		},
	}
}

func letterScale(id string) GradingScale {
	return GradingScale{
		ID:           id,
		Name:         "Letter",
		Type:         ScaleLetter,
		PassingGrade: "D",
		MaxScore:     100,
		Ranges: []GradeRange{
			{Min: 0, Max: 39, Grade: "F"},
			{Min: 40, Max: 54, Grade: "D"},
			{Min: 55, Max: 69, Grade: "C"},
			{Min: 70, Max: 84, Grade: "B"},
			{Min: 85, Max: 100, Grade: "A"},
		},
	}
}

func term(id, name string, start, end int, exam bool) AcademicTerm {
	return AcademicTerm{ID: id, Name: name, ShortName: name, StartMonth: start, EndMonth: end, IsExamTerm: exam}
}

func nigerianSystem() EducationSystem {
	return EducationSystem{
		ID:          "ng-standard",
		Country:     "Nigeria",
		CountryCode: "NG",
		SystemName:  "Nigerian 6-3-3-4",
		Calendar:    "september",
		Levels: []EducationLevel{
			{
				ID:   "primary",
				Name: "Primary School",
				ClassLevels: []ClassLevel{
					{ID: "pri1", DisplayName: "Primary 1", ShortName: "PRI1", NumericValue: 1, AgeRange: AgeRange{Min: 6, Max: 7}},
					{ID: "pri2", DisplayName: "Primary 2", ShortName: "PRI2", NumericValue: 2, AgeRange: AgeRange{Min: 7, Max: 8}},
				},
				Subjects: []SubjectDefinition{
					{ID: "pri-math", Name: "Mathematics", ShortName: "MTH", Category: SubjectCore, IsRequired: true, ApplicableLevels: []string{"pri1", "pri2"}},
				},
				GradingScale: percentScale("ng-pri-scale"),
				Terms: []AcademicTerm{
					term("ng-t1", "First Term", 9, 12, false),
					term("ng-t3", "Third Term", 4, 7, true),
				},
			},
			{
				ID:   "secondary",
				Name: "Secondary School",
				ClassLevels: []ClassLevel{
					{ID: "jss1", DisplayName: "JSS 1", ShortName: "JSS1", NumericValue: 1, AgeRange: AgeRange{Min: 11, Max: 12}},
					{ID: "ss3", DisplayName: "SS 3", ShortName: "SS3", NumericValue: 2, AgeRange: AgeRange{Min: 16, Max: 17}, IsGraduationLevel: true},
				},
				Subjects: []SubjectDefinition{
					{ID: "sec-math", Name: "Mathematics", ShortName: "MTH", Category: SubjectCore, IsRequired: true, ApplicableLevels: []string{"jss1", "ss3"}},
					{ID: "sec-tech", Name: "Technical Drawing", ShortName: "TD", Category: SubjectVocational, ApplicableLevels: []string{"ss3"}},
				},
				GradingScale: percentScale("ng-sec-scale"),
				Terms: []AcademicTerm{
					term("ng-t1", "First Term", 9, 12, false),
					term("ng-t3", "Third Term", 4, 7, true),
				},
			},
		},
	}
}

func internationalSystem() EducationSystem {
	return EducationSystem{
		ID:          "intl-cambridge",
		Country:     "International",
		CountryCode: "INTL",
		SystemName:  "Cambridge International",
		Features:    []string{FeatureInternational},
		Calendar:    "september",
		Levels: []EducationLevel{
			{
				ID:   "intl-secondary",
				Name: "Lower and Upper Secondary",
				ClassLevels: []ClassLevel{
					{ID: "year7", DisplayName: "Year 7", ShortName: "Y7", NumericValue: 1, AgeRange: AgeRange{Min: 11, Max: 12}},
					{ID: "year11", DisplayName: "Year 11", ShortName: "Y11", NumericValue: 2, AgeRange: AgeRange{Min: 15, Max: 16}, IsGraduationLevel: true},
				},
				Subjects: []SubjectDefinition{
					{ID: "intl-math", Name: "Mathematics", ShortName: "MTH", Category: SubjectCore, IsRequired: true, ApplicableLevels: []string{"year7", "year11"}},
					{ID: "intl-dt", Name: "Design and Technology", ShortName: "DT", Category: SubjectVocational, ApplicableLevels: []string{"year11"}},
				},
				GradingScale: percentScale("intl-scale"),
				Terms: []AcademicTerm{
					term("intl-t1", "Michaelmas", 9, 12, false),
					term("intl-t3", "Summer", 4, 7, true),
				},
			},
		},
	}
}

func testStore(t interface{ Fatalf(string, ...interface{}) }, systems ...EducationSystem) *Store {
	st, err := NewStore(systems)
	if err != nil {
		t.Fatalf("NewStore() failed: %v", err)
	}
	return st
}
