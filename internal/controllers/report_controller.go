package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"attendanceportal/internal/reports"
	"attendanceportal/internal/roster"
)

type ReportController struct {
	Engine *reports.Engine
}

// Reports assembles the admin report: overall average, shortage list with
// Critical/Warning tags, best class and the per-subject breakdown over the
// fixed subject options.
func (r *ReportController) Reports(c *gin.Context) {
	average, err := r.Engine.OverallPercentage()
	if err != nil {
		respondError(c, err)
		return
	}
	shortage, err := r.Engine.ShortageList()
	if err != nil {
		respondError(c, err)
		return
	}
	bestClass, bestAvg, err := r.Engine.BestClass()
	if err != nil {
		respondError(c, err)
		return
	}
	breakdown, err := r.Engine.SubjectBreakdown(roster.SubjectOptions)
	if err != nil {
		respondError(c, err)
		return
	}

	top := shortage
	if len(top) > 5 {
		top = top[:5]
	}
	c.JSON(http.StatusOK, gin.H{
		"monthly_average":     average,
		"critical_attendance": len(shortage),
		"best_class":          bestClass,
		"best_class_avg":      bestAvg,
		"subject_breakdown":   breakdown,
		"shortage":            top,
	})
}
