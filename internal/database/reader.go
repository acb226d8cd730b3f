package database

import (
	"gorm.io/gorm"

	"attendanceportal/internal/models"
)

// LedgerReader is the gorm-backed implementation of reports.Reader.
type LedgerReader struct {
	DB *gorm.DB
}

func (r *LedgerReader) ListStudents() ([]models.Student, error) {
	var students []models.Student
	err := r.DB.Order("name").Find(&students).Error
	return students, err
}

func (r *LedgerReader) RecordsForStudent(studentID uint) ([]models.AttendanceRecord, error) {
	var records []models.AttendanceRecord
	err := r.DB.Where("student_id = ?", studentID).Find(&records).Error
	return records, err
}

func (r *LedgerReader) RecordsForSubject(subject string) ([]models.AttendanceRecord, error) {
	var records []models.AttendanceRecord
	err := r.DB.Where("subject = ?", subject).Find(&records).Error
	return records, err
}

func (r *LedgerReader) AllRecords() ([]models.AttendanceRecord, error) {
	var records []models.AttendanceRecord
	err := r.DB.Model(&models.AttendanceRecord{}).
		Select("attendance_records.*").
		Joins("JOIN students ON students.id = attendance_records.student_id").
		Order("attendance_records.date DESC, students.name").
		Find(&records).Error
	return records, err
}

func (r *LedgerReader) CountDistinctSessions() (int, error) {
	var n int64
	err := r.DB.Raw(
		"SELECT COUNT(*) FROM (SELECT DISTINCT date, class_section, subject FROM attendance_records) AS sessions",
	).Scan(&n).Error
	return int(n), err
}
