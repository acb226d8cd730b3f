package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"attendanceportal/internal/models"
	"attendanceportal/internal/roster"
	"attendanceportal/internal/ws"
)

type AttendanceController struct {
	Roster *roster.Service
	Hub    *ws.ActivityHub
}

type saveAttendanceRequest struct {
	ClassSection    string `json:"class_section"`
	Subject         string `json:"subject"`
	Date            string `json:"date"`
	PresentStudents []uint `json:"present_students"`
}

// Sheet returns the roster for the selected session with current marks,
// defaulting unmarked students to present.
func (a *AttendanceController) Sheet(c *gin.Context) {
	class := c.DefaultQuery("class", "CS - 6A")
	subject := c.DefaultQuery("subject", "Web Technologies")
	date := c.Query("date")
	if date == "" {
		date = time.Now().Format(models.DateLayout)
	}

	rows, err := a.Roster.AttendanceSheet(class, subject, date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"class_options":    roster.ClassOptions,
		"subject_options":  roster.SubjectOptions,
		"selected_class":   class,
		"selected_subject": subject,
		"selected_date":    date,
		"student_rows":     rows,
	})
}

// Save performs the full-roster overwrite for one (class, subject, date)
// session.
func (a *AttendanceController) Save(c *gin.Context) {
	var req saveAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ClassSection == "" {
		req.ClassSection = "CS - 6A"
	}
	if req.Subject == "" {
		req.Subject = "Web Technologies"
	}
	if req.Date == "" {
		req.Date = time.Now().Format(models.DateLayout)
	}

	count, err := a.Roster.SaveAttendance(req.ClassSection, req.Subject, req.Date, req.PresentStudents)
	if err != nil {
		respondError(c, err)
		return
	}
	a.Hub.Broadcast(ws.ActivityEvent{Kind: "attendance", Title: "Attendance marked for " + req.ClassSection})
	c.JSON(http.StatusOK, gin.H{
		"message": "attendance saved",
		"marked":  count,
	})
}
