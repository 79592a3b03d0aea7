// Package assessment merges raw per-component score rows (CA1..CAn, EXAM)
// into one canonical composite record per student/subject/class/term.
package assessment

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"
)

// ComponentExam is the canonical exam component name; its row also carries
// the overall grade.
const ComponentExam = "EXAM"

var caComponentRegex = regexp.MustCompile(`^CA(\d+)$`)

// NormalizeComponent canonicalizes a raw component name: upper-cased,
// "ca03"-style names become "CA3", EXAM stays EXAM, anything else is
// preserved verbatim (upper-cased).
func NormalizeComponent(name string) string {
	name = strings.ToUpper(strings.TrimSpace(name))
	if m := caComponentRegex.FindStringSubmatch(name); m != nil {
		n, _ := strconv.Atoi(m[1])
		return fmt.Sprintf("CA%d", n)
	}
	return name
}

// Key identifies one composite record.
type Key struct {
	StudentID string `json:"student_id"`
	SubjectID string `json:"subject_id"`
	ClassID   string `json:"class_id"`
	TermID    string `json:"term_id"`
}

func (k Key) String() string {
	return k.StudentID + "/" + k.SubjectID + "/" + k.ClassID + "/" + k.TermID
}

// Scores maps canonical component names to scores; stored as a JSON column.
type Scores map[string]float64

func (s Scores) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	b, err := json.Marshal(s)
	return b, errors.Wrap(err, "marshalling scores")
}

func (s *Scores) Scan(src interface{}) error {
	if src == nil {
		*s = nil
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return errors.Errorf("unsupported scores column type %T", src)
	}
	return errors.Wrap(json.Unmarshal(b, s), "unmarshalling scores")
}

func (s Scores) Clone() Scores {
	if s == nil {
		return nil
	}
	cp := make(Scores, len(s))
	for k, v := range s {
		cp[k] = v
	}
	return cp
}

func (s Scores) Equal(other Scores) bool {
	if len(s) != len(other) {
		return false
	}
	for k, v := range s {
		if ov, ok := other[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// ComponentRow is a raw score row as persisted. Before aggregation each row
// holds one component; after aggregation the surviving row also carries the
// merged CAScores map and the derived grade.
type ComponentRow struct {
	ID        string       `json:"id" db:"id"`
	StudentID string       `json:"student_id" db:"student_id"`
	SubjectID string       `json:"subject_id" db:"subject_id"`
	ClassID   string       `json:"class_id" db:"class_id"`
	TermID    string       `json:"term_id" db:"term_id"`
	Component string       `json:"component" db:"component"`
	Score     null.Float64 `json:"score" db:"score"`
	Grade     null.String  `json:"grade" db:"grade"`
	CAScores  Scores       `json:"ca_scores" db:"ca_scores"`
	IsActive  bool         `json:"is_active" db:"is_active"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"` // UTC
}

func (r ComponentRow) Key() Key {
	return Key{StudentID: r.StudentID, SubjectID: r.SubjectID, ClassID: r.ClassID, TermID: r.TermID}
}

// Composite is the single canonical record per key.
type Composite struct {
	Key
	CAScores Scores      `json:"ca_scores"`
	Grade    null.String `json:"grade"`
}

// State of a composite's key: Absent → Partial → Complete. A Complete
// composite may still be updated with revised scores (re-entering Complete).
type State string

const (
	StateAbsent   State = "absent"
	StatePartial  State = "partial"
	StateComplete State = "complete"
)

func (c Composite) State() State {
	if len(c.CAScores) == 0 {
		return StateAbsent
	}
	if _, ok := c.CAScores[ComponentExam]; ok {
		return StateComplete
	}
	return StatePartial
}
