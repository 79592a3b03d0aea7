package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

type SystemSuggestion struct {
	SystemID       string   `json:"system_id"`
	Confidence     float64  `json:"confidence"` // [0, 1]
	Customizations []string `json:"customizations"`
	Reasoning      string   `json:"reasoning"`
}

// SuggestWeights are the signal weights of the suggestion scorer. They are
// configuration, not law; defaults come from core.Config.
type SuggestWeights struct {
	Country    float64
	SchoolType float64
	Simplicity float64
}

func DefaultSuggestWeights() SuggestWeights {
	return SuggestWeights{Country: .5, SchoolType: .3, Simplicity: .2}
}

// age bands conventionally associated with each school type
var schoolTypeAges = map[string]AgeRange{
	SchoolTypePrimary:   {Min: 4, Max: 13},
	SchoolTypeSecondary: {Min: 10, Max: 19},
	SchoolTypeTertiary:  {Min: 17, Max: 99},
}

const levelNameSimThreshold = .6

// Suggest ranks catalog systems for a country and school type, ordered by
// descending confidence with ties broken by system id. Candidates are the
// systems matching the country code plus every system flagged international,
// so schools always have a fallback; the confidence signals demote poor
// matches. Returns an empty slice when nothing qualifies.
func Suggest(store *Store, countryCode, schoolType string, weights SuggestWeights) []SystemSuggestion {
	suggestions := make([]SystemSuggestion, 0)

	for _, sys := range store.List() {
		countryMatch := sys.CountryCode == countryCode
		if !countryMatch && !sys.HasFeature(FeatureInternational) {
			continue
		}
		suggestions = append(suggestions, score(sys, countryCode, schoolType, countryMatch, weights))
	}

	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Confidence != suggestions[j].Confidence {
			return suggestions[i].Confidence > suggestions[j].Confidence
		}
		return suggestions[i].SystemID < suggestions[j].SystemID
	})
	return suggestions
}

func score(sys EducationSystem, countryCode, schoolType string, countryMatch bool, weights SuggestWeights) SystemSuggestion {
	var countrySignal float64
	if countryMatch {
		countrySignal = 1
	}

	matchedLevel, typeSignal := levelForSchoolType(sys, schoolType)

	// every detected gap is a customization the school would need
	gaps := make([]string, 0, 3)
	if typeSignal == 0 {
		gaps = append(gaps, fmt.Sprintf("no %s level defined", schoolType))
	} else {
		if !matchedLevel.GradingScale.HasGPA() {
			gaps = append(gaps, "no GPA support")
		}
		if schoolType == SchoolTypeSecondary && !hasVocationalTrack(matchedLevel) {
			gaps = append(gaps, "missing vocational track")
		}
	}
	if !countryMatch {
		gaps = append(gaps, fmt.Sprintf("not tailored to the %s curriculum", countryCode))
	}
	simplicitySignal := 1 / float64(1+len(gaps))

	confidence := weights.Country*countrySignal + weights.SchoolType*typeSignal + weights.Simplicity*simplicitySignal
	if confidence > 1 {
		confidence = 1
	} else if confidence < 0 {
		confidence = 0
	}

	return SystemSuggestion{
		SystemID:       sys.ID,
		Confidence:     confidence,
		Customizations: gaps,
		Reasoning:      reasoning(sys, countryCode, schoolType, countryMatch, typeSignal, len(gaps)),
	}
}

// levelForSchoolType finds the education level that conventionally serves the
// requested school type, by class-level age bands or by level name similarity.
func levelForSchoolType(sys EducationSystem, schoolType string) (EducationLevel, float64) {
	band, known := schoolTypeAges[schoolType]
	for _, lvl := range sys.Levels {
		if known && agesOverlap(lvl, band) {
			return lvl, 1
		}
		if nameMatchesSchoolType(lvl.Name, schoolType) {
			return lvl, 1
		}
	}
	return EducationLevel{}, 0
}

func agesOverlap(lvl EducationLevel, band AgeRange) bool {
	for _, cl := range lvl.ClassLevels {
		if cl.AgeRange.Min >= band.Min && cl.AgeRange.Max <= band.Max {
			return true
		}
	}
	return false
}

// nameMatchesSchoolType does a fuzzy match between a level name and the school
// type ("Secondary School" vs "secondary"); QuickRatio is deterministic.
func nameMatchesSchoolType(name, schoolType string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	if strings.Contains(name, schoolType) {
		return true
	}
	ratio := difflib.NewMatcher(strings.Split(name, ""), strings.Split(schoolType, "")).QuickRatio()
	return ratio >= levelNameSimThreshold
}

func hasVocationalTrack(lvl EducationLevel) bool {
	for _, sub := range lvl.Subjects {
		if sub.Category == SubjectVocational {
			return true
		}
	}
	return false
}

// reasoning builds a short deterministic explanation from the same signals
// that produced the confidence; never free-form text.
func reasoning(sys EducationSystem, countryCode, schoolType string, countryMatch bool, typeSignal float64, gapCount int) string {
	parts := make([]string, 0, 3)
	if countryMatch {
		parts = append(parts, fmt.Sprintf("%s is the national curriculum of %s", sys.SystemName, countryCode))
	} else {
		parts = append(parts, fmt.Sprintf("%s is an international fallback for %s", sys.SystemName, countryCode))
	}
	if typeSignal > 0 {
		parts = append(parts, fmt.Sprintf("covers %s education", schoolType))
	} else {
		parts = append(parts, fmt.Sprintf("does not cover %s education", schoolType))
	}
	switch gapCount {
	case 0:
		parts = append(parts, "usable without customization")
	case 1:
		parts = append(parts, "1 customization needed")
	default:
		parts = append(parts, fmt.Sprintf("%d customizations needed", gapCount))
	}
	return strings.Join(parts, "; ")
}
