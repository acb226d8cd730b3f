package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"attendanceportal/internal/roster"
	"attendanceportal/internal/ws"
)

type RosterController struct {
	Roster *roster.Service
	Hub    *ws.ActivityHub
}

type saveStudentRequest struct {
	Name   string `json:"name"`
	USN    string `json:"usn"`
	Branch string `json:"branch"`
	Sem    int    `json:"sem"`
	Sec    string `json:"sec"`
}

type saveTeacherRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
}

var (
	branchFilterOptions = []string{"ALL", "CS", "IS", "EC", "ME"}
	semFilterOptions    = []string{"ALL", "1", "2", "3", "4", "5", "6", "7", "8"}
)

// ListStudents applies the q/branch/sem filters and returns a name-ordered
// list.
func (r *RosterController) ListStudents(c *gin.Context) {
	students, err := r.Roster.FilterStudents(c.Query("q"), c.DefaultQuery("branch", "ALL"), c.DefaultQuery("sem", "ALL"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"students":       students,
		"branch_options": branchFilterOptions,
		"sem_options":    semFilterOptions,
	})
}

// SaveStudent upserts by USN. Blank key fields are ignored, not an error;
// the response says whether anything was saved.
func (r *RosterController) SaveStudent(c *gin.Context) {
	var req saveStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	saved, err := r.Roster.SaveStudent(req.Name, req.USN, req.Branch, req.Sem, req.Sec)
	if err != nil {
		respondError(c, err)
		return
	}
	if saved {
		r.Hub.Broadcast(ws.ActivityEvent{Kind: "student", Title: "Student saved: " + req.Name})
	}
	c.JSON(http.StatusOK, gin.H{"saved": saved})
}

func (r *RosterController) ListTeachers(c *gin.Context) {
	teachers, err := r.Roster.ListTeachers()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"teachers": teachers})
}

func (r *RosterController) SaveTeacher(c *gin.Context) {
	var req saveTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	saved, err := r.Roster.SaveTeacher(req.Name, req.Email, req.Subject)
	if err != nil {
		respondError(c, err)
		return
	}
	if saved {
		r.Hub.Broadcast(ws.ActivityEvent{Kind: "teacher", Title: "Teacher saved: " + req.Name})
	}
	c.JSON(http.StatusOK, gin.H{"saved": saved})
}
