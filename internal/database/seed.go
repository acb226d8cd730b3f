package database

import (
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"attendanceportal/internal/config"
	"attendanceportal/internal/models"
	"attendanceportal/internal/utils"
)

// SeedAccounts pre-provisions the admin and staff logins when no admin
// exists yet. Student accounts only ever come from self-registration.
func SeedAccounts(db *gorm.DB, cfg *config.Config) error {
	var count int64
	if err := db.Model(&models.Account{}).Where("is_superuser = ?", true).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	adminHash, err := utils.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}
	staffHash, err := utils.HashPassword(cfg.StaffPassword)
	if err != nil {
		return err
	}

	accounts := []models.Account{
		{
			AccountID:    uuid.NewString(),
			Username:     cfg.AdminUsername,
			Contact:      cfg.AdminContact,
			PasswordHash: adminHash,
			IsStaff:      true,
			IsSuperuser:  true,
		},
		{
			AccountID:    uuid.NewString(),
			Username:     cfg.StaffUsername,
			Contact:      cfg.StaffContact,
			PasswordHash: staffHash,
			IsStaff:      true,
		},
	}
	if err := db.Create(&accounts).Error; err != nil {
		return err
	}
	log.Println("Seeded admin and staff accounts:", cfg.AdminUsername, cfg.StaffUsername)
	return nil
}

// Demo roster. The two at-risk USNs are seeded with a stricter presence
// rule so the shortage report has something to show.
var (
	demoStudents = []models.Student{
		{Name: "Alice Carter", USN: "1CS21001", Branch: "CS", Sem: 6, Sec: "A"},
		{Name: "Bob Dawson", USN: "1CS21002", Branch: "CS", Sem: 6, Sec: "A"},
		{Name: "Charlie Evans", USN: "1CS21003", Branch: "CS", Sem: 6, Sec: "B"},
		{Name: "Diana Foster", USN: "1CS21004", Branch: "IS", Sem: 4, Sec: "A"},
		{Name: "Ethan Grant", USN: "1CS21005", Branch: "EC", Sem: 8, Sec: "C"},
		{Name: "Fiona Hill", USN: "1CS21006", Branch: "CS", Sem: 6, Sec: "A"},
		{Name: "George Ives", USN: "1CS21007", Branch: "ME", Sem: 2, Sec: "A"},
		{Name: "Hannah Jones", USN: "1CS21008", Branch: "CS", Sem: 6, Sec: "B"},
	}

	demoTeachers = []models.Teacher{
		{Name: "Dr. Sarah Smith", Email: "sarah@college.edu", Subject: "Data Structures"},
		{Name: "Prof. Alan Turing", Email: "alan@college.edu", Subject: "Algorithms"},
		{Name: "Prof. Grace Hopper", Email: "grace@college.edu", Subject: "Operating Systems"},
	}

	demoSubjects = []string{"Web Technologies", "ML", "Cloud", "OS", "DSA"}

	atRiskUSNs = map[string]struct{}{"1CS21007": {}, "1CS21004": {}}
)

// SeedDemo populates the three stores with deterministic synthetic data.
// Each store is seeded independently and only when empty, so running it
// again is a no-op.
func SeedDemo(db *gorm.DB) error {
	if err := seedStudents(db); err != nil {
		return err
	}
	if err := seedTeachers(db); err != nil {
		return err
	}
	return seedAttendance(db)
}

func seedStudents(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Student{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	students := make([]models.Student, len(demoStudents))
	copy(students, demoStudents)
	return db.Create(&students).Error
}

func seedTeachers(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Teacher{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	teachers := make([]models.Teacher, len(demoTeachers))
	copy(teachers, demoTeachers)
	return db.Create(&teachers).Error
}

func seedAttendance(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.AttendanceRecord{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var students []models.Student
	if err := db.Find(&students).Error; err != nil {
		return err
	}

	today := time.Now()
	var records []models.AttendanceRecord
	for dayOffset := 0; dayOffset < 30; dayOffset++ {
		date := today.AddDate(0, 0, -dayOffset)
		for _, st := range students {
			score := (int(st.ID) + date.Day() + int(date.Month())) % 10
			isPresent := score > 1
			if _, atRisk := atRiskUSNs[st.USN]; atRisk {
				isPresent = score > 3
			}
			records = append(records, models.AttendanceRecord{
				StudentID:    st.ID,
				Date:         date.Format(models.DateLayout),
				ClassSection: st.ClassSection(),
				Subject:      demoSubjects[dayOffset%len(demoSubjects)],
				IsPresent:    isPresent,
			})
		}
	}
	if len(records) == 0 {
		return nil
	}
	if err := db.Create(&records).Error; err != nil {
		return err
	}
	log.Printf("Seeded %d demo attendance records", len(records))
	return nil
}
