// Package reports derives dashboard and report numbers from the attendance
// ledger. Everything is recomputed per request over a read-only store
// capability set; the engine never writes.
package reports

import (
	"math"
	"sort"

	"attendanceportal/internal/models"
)

// Reader is the store capability set the engine needs. The gorm-backed
// implementation lives in internal/database; tests inject an in-memory one.
type Reader interface {
	ListStudents() ([]models.Student, error)
	RecordsForStudent(studentID uint) ([]models.AttendanceRecord, error)
	RecordsForSubject(subject string) ([]models.AttendanceRecord, error)
	AllRecords() ([]models.AttendanceRecord, error)
	CountDistinctSessions() (int, error)
}

type Engine struct {
	Store Reader
	// ShortageThreshold is the percentage below which a student appears on
	// the shortage list; CriticalCutoff splits the list into Critical
	// (strictly below) and Warning entries.
	ShortageThreshold float64
	CriticalCutoff    float64
}

const (
	StatusCritical = "Critical"
	StatusWarning  = "Warning"
)

// Percentage is the single ratio rule used everywhere a percentage is
// shown: 0 when there is nothing to count, otherwise rounded to one
// decimal.
func Percentage(present, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(present)/float64(total)*1000) / 10
}

func percentageOf(records []models.AttendanceRecord) float64 {
	present := 0
	for _, r := range records {
		if r.IsPresent {
			present++
		}
	}
	return Percentage(present, len(records))
}

// StudentPercentage computes a student's attendance over their full record
// set.
func (e *Engine) StudentPercentage(studentID uint) (float64, error) {
	records, err := e.Store.RecordsForStudent(studentID)
	if err != nil {
		return 0, err
	}
	return percentageOf(records), nil
}

// OverallPercentage is the ledger-wide present ratio, shown on the student
// dashboard and as the reports header average.
func (e *Engine) OverallPercentage() (float64, error) {
	records, err := e.Store.AllRecords()
	if err != nil {
		return 0, err
	}
	return percentageOf(records), nil
}

type ShortageEntry struct {
	Student    models.Student `json:"student"`
	Percentage float64        `json:"attendance"`
	Status     string         `json:"status"`
}

// ShortageList returns every student strictly below the shortage threshold,
// ascending by percentage, tagged Critical below the cutoff and Warning
// otherwise.
func (e *Engine) ShortageList() ([]ShortageEntry, error) {
	students, err := e.Store.ListStudents()
	if err != nil {
		return nil, err
	}
	var out []ShortageEntry
	for _, st := range students {
		pct, err := e.StudentPercentage(st.ID)
		if err != nil {
			return nil, err
		}
		if pct >= e.ShortageThreshold {
			continue
		}
		status := StatusWarning
		if pct < e.CriticalCutoff {
			status = StatusCritical
		}
		out = append(out, ShortageEntry{Student: st, Percentage: pct, Status: status})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Percentage < out[j].Percentage })
	return out, nil
}

// BestClass groups the ledger by class section and returns the group with
// the highest average. Ties keep the first group encountered; grouping
// iterates records in store order, so the result is deterministic but
// implementation-defined. With an empty ledger the nominal "CS-6A"/0 pair
// is returned.
func (e *Engine) BestClass() (string, float64, error) {
	records, err := e.Store.AllRecords()
	if err != nil {
		return "", 0, err
	}
	type tally struct{ present, total int }
	order := []string{}
	groups := map[string]*tally{}
	for _, r := range records {
		g, ok := groups[r.ClassSection]
		if !ok {
			g = &tally{}
			groups[r.ClassSection] = g
			order = append(order, r.ClassSection)
		}
		g.total++
		if r.IsPresent {
			g.present++
		}
	}
	best, bestAvg := "CS-6A", 0.0
	for _, label := range order {
		g := groups[label]
		if avg := Percentage(g.present, g.total); avg > bestAvg {
			best, bestAvg = label, avg
		}
	}
	return best, bestAvg, nil
}

type SubjectStat struct {
	Subject    string  `json:"subject"`
	Percentage float64 `json:"value"`
	Critical   bool    `json:"critical"`
}

// SubjectBreakdown computes an independent percentage per named subject,
// preserving the caller's subject order so subjects with no records still
// appear with 0.
func (e *Engine) SubjectBreakdown(subjects []string) ([]SubjectStat, error) {
	out := make([]SubjectStat, 0, len(subjects))
	for _, subject := range subjects {
		records, err := e.Store.RecordsForSubject(subject)
		if err != nil {
			return nil, err
		}
		pct := percentageOf(records)
		out = append(out, SubjectStat{
			Subject:    subject,
			Percentage: pct,
			Critical:   pct < e.ShortageThreshold,
		})
	}
	return out, nil
}

// DistinctSessionCount reports how many class sessions have had attendance
// taken, independent of how many students each session covered.
func (e *Engine) DistinctSessionCount() (int, error) {
	return e.Store.CountDistinctSessions()
}
