package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"attendanceportal/internal/models"
	"attendanceportal/internal/reports"
)

type DashboardController struct {
	DB     *gorm.DB
	Engine *reports.Engine
}

// Placeholder series and distributions the original dashboard charts carry
// until a real month-bucketed aggregation exists.
var (
	monthlyAttendance = []gin.H{
		{"month": "Jan", "value": 84},
		{"month": "Feb", "value": 88},
		{"month": "Mar", "value": 82},
		{"month": "Apr", "value": 91},
		{"month": "May", "value": 87},
		{"month": "Jun", "value": 85},
	}
	departmentDistribution = gin.H{"CS": 32, "IS": 24, "EC": 21, "ME": 23}
	recentNotices          = []string{
		"Mid-term exams start next Monday.",
		"Attendance review meeting on Friday.",
		"Lab submissions close this week.",
	}
)

func (d *DashboardController) Admin(c *gin.Context) {
	var totalStudents int64
	if err := d.DB.Model(&models.Student{}).Count(&totalStudents).Error; err != nil {
		respondError(c, err)
		return
	}
	sessions, err := d.Engine.DistinctSessionCount()
	if err != nil {
		respondError(c, err)
		return
	}

	sum := 0
	for _, m := range monthlyAttendance {
		sum += m["value"].(int)
	}
	avg := reports.Percentage(sum, len(monthlyAttendance)*100)

	c.JSON(http.StatusOK, gin.H{
		"total_students":          totalStudents,
		"classes_conducted":       sessions,
		"avg_attendance":          avg,
		"classes_today":           3,
		"monthly_attendance":      monthlyAttendance,
		"recent_activity":         d.recentActivity(),
		"department_distribution": departmentDistribution,
	})
}

func (d *DashboardController) Staff(c *gin.Context) {
	var teacherCount, studentCount int64
	if err := d.DB.Model(&models.Teacher{}).Count(&teacherCount).Error; err != nil {
		respondError(c, err)
		return
	}
	if err := d.DB.Model(&models.Student{}).Count(&studentCount).Error; err != nil {
		respondError(c, err)
		return
	}
	sessions, err := d.Engine.DistinctSessionCount()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"teacher_count":       teacherCount,
		"student_count":       studentCount,
		"attendance_sessions": sessions,
	})
}

func (d *DashboardController) Student(c *gin.Context) {
	var studentTotal int64
	if err := d.DB.Model(&models.Student{}).Count(&studentTotal).Error; err != nil {
		respondError(c, err)
		return
	}
	overall, err := d.Engine.OverallPercentage()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"student_total":  studentTotal,
		"overall_pct":    overall,
		"recent_notices": recentNotices,
	})
}

func (d *DashboardController) recentActivity() []gin.H {
	var recent []models.AttendanceRecord
	if err := d.DB.Order("date DESC, id DESC").Limit(3).Find(&recent).Error; err != nil || len(recent) == 0 {
		return []gin.H{
			{"title": "Attendance marked for CS - 6A", "time": "10 mins ago"},
			{"title": "New student added", "time": "1 hour ago"},
			{"title": "Monthly report generated", "time": "3 hours ago"},
		}
	}
	activity := make([]gin.H, 0, len(recent))
	for _, rec := range recent {
		activity = append(activity, gin.H{
			"title": "Attendance marked for " + rec.ClassSection,
			"time":  rec.Date,
		})
	}
	return activity
}
