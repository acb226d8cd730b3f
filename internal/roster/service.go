// Package roster manages the Student/Teacher records and the attendance
// ledger writes keyed against them.
package roster

import (
	"log"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"attendanceportal/internal/models"
)

type Service struct {
	DB *gorm.DB
}

// ClassRoster returns the students of a class label, applying the parse
// fallback policy for malformed labels.
func (s *Service) ClassRoster(label string) ([]models.Student, error) {
	branch, sem, sec, ok := ParseClassLabel(label)
	if !ok {
		log.Printf("roster: malformed class label %q, using %s/%d/%s", label, branch, sem, sec)
	}
	var students []models.Student
	err := s.DB.Where("branch = ? AND sem = ? AND sec = ?", branch, sem, sec).
		Order("name").Find(&students).Error
	return students, err
}

// FilterStudents lists students matching a name/USN substring and optional
// branch and semester filters. "ALL" (or blank) disables a filter.
func (s *Service) FilterStudents(q, branch, sem string) ([]models.Student, error) {
	tx := s.DB.Model(&models.Student{})
	if q = strings.TrimSpace(q); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(usn) LIKE ?", like, like)
	}
	if branch = strings.ToUpper(strings.TrimSpace(branch)); branch != "" && branch != "ALL" {
		tx = tx.Where("branch = ?", branch)
	}
	if sem = strings.TrimSpace(sem); sem != "" && sem != "ALL" {
		if n, err := strconv.Atoi(sem); err == nil {
			tx = tx.Where("sem = ?", n)
		}
	}
	var students []models.Student
	err := tx.Order("name").Find(&students).Error
	return students, err
}

// SaveStudent upserts by USN. Blank name or USN is silently ignored
// (saved=false), matching the form's lenient handling.
func (s *Service) SaveStudent(name, usn, branch string, sem int, sec string) (bool, error) {
	name = strings.TrimSpace(name)
	usn = strings.ToUpper(strings.TrimSpace(usn))
	if name == "" || usn == "" {
		return false, nil
	}
	branch = strings.ToUpper(strings.TrimSpace(branch))
	if branch == "" {
		branch = DefaultBranch
	}
	if sem < 1 || sem > 8 {
		sem = 1
	}
	sec = strings.ToUpper(strings.TrimSpace(sec))
	if sec == "" {
		sec = DefaultSec
	}

	var st models.Student
	err := s.DB.Where(models.Student{USN: usn}).
		Assign(map[string]interface{}{"name": name, "branch": branch, "sem": sem, "sec": sec}).
		FirstOrCreate(&st).Error
	return err == nil, err
}

// SaveTeacher upserts by email; any blank field is silently ignored.
func (s *Service) SaveTeacher(name, email, subject string) (bool, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	subject = strings.TrimSpace(subject)
	if name == "" || email == "" || subject == "" {
		return false, nil
	}
	var t models.Teacher
	err := s.DB.Where(models.Teacher{Email: email}).
		Assign(map[string]interface{}{"name": name, "subject": subject}).
		FirstOrCreate(&t).Error
	return err == nil, err
}

func (s *Service) ListTeachers() ([]models.Teacher, error) {
	var teachers []models.Teacher
	err := s.DB.Order("name").Find(&teachers).Error
	return teachers, err
}

// SaveAttendance overwrites one session's marks for the full roster of a
// class: every rostered student gets an upsert keyed by (student, date,
// subject, class), present iff their ID is in the submitted set. Students
// outside the roster are untouched; anyone not checked is recorded absent.
func (s *Service) SaveAttendance(label, subject, date string, presentIDs []uint) (int, error) {
	roster, err := s.ClassRoster(label)
	if err != nil {
		return 0, err
	}
	present := make(map[uint]struct{}, len(presentIDs))
	for _, id := range presentIDs {
		present[id] = struct{}{}
	}
	for _, st := range roster {
		_, isPresent := present[st.ID]
		var rec models.AttendanceRecord
		err := s.DB.Where(models.AttendanceRecord{
			StudentID:    st.ID,
			Date:         date,
			Subject:      subject,
			ClassSection: label,
		}).
			Assign(map[string]interface{}{"is_present": isPresent}).
			FirstOrCreate(&rec).Error
		if err != nil {
			return 0, err
		}
	}
	return len(roster), nil
}

// SheetRow is one line of the attendance sheet: a rostered student and
// their current mark for the selected session. Unmarked students default
// to present, which is how the sheet pre-checks its boxes.
type SheetRow struct {
	Student models.Student `json:"student"`
	Present bool           `json:"present"`
}

func (s *Service) AttendanceSheet(label, subject, date string) ([]SheetRow, error) {
	roster, err := s.ClassRoster(label)
	if err != nil {
		return nil, err
	}
	var marked []models.AttendanceRecord
	err = s.DB.Where("date = ? AND class_section = ? AND subject = ?", date, label, subject).
		Find(&marked).Error
	if err != nil {
		return nil, err
	}
	status := make(map[uint]bool, len(marked))
	for _, rec := range marked {
		status[rec.StudentID] = rec.IsPresent
	}
	rows := make([]SheetRow, 0, len(roster))
	for _, st := range roster {
		present, ok := status[st.ID]
		if !ok {
			present = true
		}
		rows = append(rows, SheetRow{Student: st, Present: present})
	}
	return rows, nil
}
