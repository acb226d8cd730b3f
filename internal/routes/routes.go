package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"attendanceportal/internal/auth"
	"attendanceportal/internal/config"
	"attendanceportal/internal/controllers"
	"attendanceportal/internal/database"
	"attendanceportal/internal/httpmiddleware"
	"attendanceportal/internal/middleware"
	"attendanceportal/internal/reports"
	"attendanceportal/internal/roster"
	"attendanceportal/internal/ws"
)

func Register(r *gin.Engine, db *gorm.DB, cfg *config.Config, hub *ws.ActivityHub) {
	expires, err := time.ParseDuration(cfg.JWTExpiresIn + "m")
	if err != nil || expires == 0 {
		expires = 60 * time.Minute
	}

	engine := &reports.Engine{
		Store:             &database.LedgerReader{DB: db},
		ShortageThreshold: cfg.ShortageThreshold,
		CriticalCutoff:    cfg.CriticalCutoff,
	}
	rosterSvc := &roster.Service{DB: db}

	authCtrl := &controllers.AuthController{DB: db, JWTSecret: cfg.JWTSecret, ExpiresIn: expires}
	dashCtrl := &controllers.DashboardController{DB: db, Engine: engine}
	rosterCtrl := &controllers.RosterController{Roster: rosterSvc, Hub: hub}
	attCtrl := &controllers.AttendanceController{Roster: rosterSvc, Hub: hub}
	reportCtrl := &controllers.ReportController{Engine: engine}

	r.Use(httpmiddleware.Metrics())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public
	limiter := httpmiddleware.NewSimpleTokenBucket(cfg.RateLimitPerMin, cfg.RateLimitPerMin)
	authGroup := r.Group("/api/v1/auth", limiter.GinMiddleware())
	{
		authGroup.POST("/login", authCtrl.Login)
		authGroup.POST("/admin/login", authCtrl.AdminLogin)
		authGroup.POST("/register", authCtrl.Register)
		authGroup.POST("/signup", authCtrl.Signup)
	}

	// Protected
	authMW := middleware.AuthMiddleware(db, middleware.AuthConfig{JWTSecret: cfg.JWTSecret})
	api := r.Group("/api/v1", authMW)
	{
		api.GET("/auth/me", authCtrl.Me)
		api.POST("/auth/logout", authCtrl.Logout)
		api.GET("/dashboard", authCtrl.Dashboard)

		student := api.Group("/student", middleware.RequireRole(auth.RoleStudent))
		{
			student.GET("/dashboard", dashCtrl.Student)
		}

		staff := api.Group("/staff", middleware.RequireRole(auth.RoleStaff))
		{
			staff.GET("/dashboard", dashCtrl.Staff)
		}

		// Admin console, open to staff and admin alike
		admin := api.Group("/admin", middleware.RequireStaffArea())
		{
			admin.GET("/dashboard", dashCtrl.Admin)
			admin.GET("/students", rosterCtrl.ListStudents)
			admin.POST("/students", rosterCtrl.SaveStudent)
			admin.GET("/teachers", rosterCtrl.ListTeachers)
			admin.POST("/teachers", rosterCtrl.SaveTeacher)
			admin.GET("/attendance", attCtrl.Sheet)
			admin.POST("/attendance", attCtrl.Save)
			admin.GET("/reports", reportCtrl.Reports)
			admin.GET("/activity/ws", ws.ActivityHandler(hub))
		}
	}
}
