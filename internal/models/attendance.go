package models

// AttendanceRecord is one logical mark. The natural key is
// (student, date, subject, class_section); writes are upserts against it.
// Dates are stored as YYYY-MM-DD strings, matching the form values the
// attendance sheet submits.
type AttendanceRecord struct {
	ID           uint    `gorm:"primaryKey"`
	StudentID    uint    `gorm:"uniqueIndex:idx_attendance_key"`
	Student      Student `gorm:"constraint:OnDelete:CASCADE"`
	Date         string  `gorm:"size:10;uniqueIndex:idx_attendance_key"`
	Subject      string  `gorm:"size:100;uniqueIndex:idx_attendance_key"`
	ClassSection string  `gorm:"size:20;uniqueIndex:idx_attendance_key"`
	IsPresent    bool
}

// DateLayout is the wire and storage format for attendance dates.
const DateLayout = "2006-01-02"
