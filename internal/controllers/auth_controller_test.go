package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"attendanceportal/internal/config"
	"attendanceportal/internal/database"
	"attendanceportal/internal/models"
	"attendanceportal/internal/routes"
	"attendanceportal/internal/ws"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:         "test-secret",
		JWTExpiresIn:      "60",
		AdminUsername:     "admin",
		AdminPassword:     "admin123",
		AdminContact:      "admin@college.edu",
		StaffUsername:     "staff",
		StaffPassword:     "staff123",
		StaffContact:      "staff@college.edu",
		ShortageThreshold: 75,
		CriticalCutoff:    65,
		RateLimitPerMin:   10000,
	}
}

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	cfg := testConfig()
	if err := database.SeedAccounts(db, cfg); err != nil {
		t.Fatalf("seed accounts: %v", err)
	}

	hub := ws.NewActivityHub()
	go hub.Run()

	r := gin.New()
	routes.Register(r, db, cfg, hub)
	return r, db
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	out := map[string]any{}
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func login(t *testing.T, r http.Handler, username, password, role string) string {
	t.Helper()
	rec := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", gin.H{
		"username": username, "password": password, "role": role,
	}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s failed: %d %s", username, rec.Code, rec.Body.String())
	}
	body := decode(t, rec)
	token, _ := body["access_token"].(string)
	if token == "" {
		t.Fatalf("no token in response: %v", body)
	}
	return token
}

func TestRegisterAndLogin(t *testing.T) {
	r, _ := setupRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", gin.H{
		"username": "ravi", "contact": "ravi@college.edu", "password": "pw12345",
	}, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: %d %s", rec.Code, rec.Body.String())
	}
	if decode(t, rec)["redirect"] != "/login" {
		t.Fatal("register should redirect to login")
	}

	// duplicate username, different contact
	rec = doJSON(t, r, http.MethodPost, "/api/v1/auth/register", gin.H{
		"username": "ravi", "contact": "other@college.edu", "password": "pw12345",
	}, "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate username: %d", rec.Code)
	}

	// duplicate contact, different username
	rec = doJSON(t, r, http.MethodPost, "/api/v1/auth/register", gin.H{
		"username": "ravi2", "contact": "ravi@college.edu", "password": "pw12345",
	}, "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate contact: %d", rec.Code)
	}

	// blank field
	rec = doJSON(t, r, http.MethodPost, "/api/v1/auth/register", gin.H{
		"username": "x", "contact": "", "password": "pw",
	}, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("blank contact: %d", rec.Code)
	}

	rec = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", gin.H{
		"username": "ravi", "password": "pw12345", "role": "student",
	}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login: %d %s", rec.Code, rec.Body.String())
	}
	body := decode(t, rec)
	if body["redirect"] != "/student/dashboard" || body["role"] != "student" {
		t.Fatalf("unexpected login response: %v", body)
	}

	rec = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", gin.H{
		"username": "ravi", "password": "nope",
	}, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad password: %d", rec.Code)
	}
	if decode(t, rec)["error"] != "invalid username or password" {
		t.Fatal("credential failure message should be uniform")
	}
}

func TestSignupSynthesizesContact(t *testing.T) {
	r, db := setupRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/v1/auth/signup", gin.H{
		"username": "mira", "password": "pw12345",
	}, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup: %d %s", rec.Code, rec.Body.String())
	}

	var acct models.Account
	if err := db.Where("username = ?", "mira").First(&acct).Error; err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if acct.Contact != "mira@example.com" {
		t.Fatalf("unexpected contact: %s", acct.Contact)
	}
}

func TestLoginRoleMismatch(t *testing.T) {
	r, _ := setupRouter(t)

	// staff account asking for admin access
	rec := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", gin.H{
		"username": "staff", "password": "staff123", "role": "admin",
	}, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected role mismatch, got %d", rec.Code)
	}
	if decode(t, rec)["error"] != "this account does not have Admin access" {
		t.Fatal("role mismatch should name the requested role")
	}

	// admin account asking for staff access fails under the variant matrix
	rec = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", gin.H{
		"username": "admin", "password": "admin123", "role": "staff",
	}, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("admin should not pass the staff check: %d", rec.Code)
	}

	// matching roles pass
	login(t, r, "staff", "staff123", "staff")
	login(t, r, "admin", "admin123", "admin")
}

func TestAdminLoginEntry(t *testing.T) {
	r, _ := setupRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/v1/auth/admin/login", gin.H{
		"username": "admin", "password": "wrong",
	}, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad creds: %d", rec.Code)
	}
	if decode(t, rec)["error"] != "invalid admin credentials" {
		t.Fatal("admin login has its own credential message")
	}

	// a student authenticates fine but lacks staff access
	doJSON(t, r, http.MethodPost, "/api/v1/auth/signup", gin.H{"username": "stu", "password": "pw12345"}, "")
	rec = doJSON(t, r, http.MethodPost, "/api/v1/auth/admin/login", gin.H{
		"username": "stu", "password": "pw12345",
	}, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("student at admin entry: %d", rec.Code)
	}
	if decode(t, rec)["error"] != "this account does not have admin access" {
		t.Fatal("unexpected admin mismatch message")
	}

	// staff passes and lands on the admin console
	rec = doJSON(t, r, http.MethodPost, "/api/v1/auth/admin/login", gin.H{
		"username": "staff", "password": "staff123",
	}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("staff admin login: %d %s", rec.Code, rec.Body.String())
	}
	if decode(t, rec)["redirect"] != "/admin/dashboard" {
		t.Fatal("admin entry should redirect to the admin dashboard")
	}
}

func TestGatedHandlerExitStates(t *testing.T) {
	r, _ := setupRouter(t)

	// unauthenticated
	rec := doJSON(t, r, http.MethodGet, "/api/v1/admin/dashboard", nil, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated: %d", rec.Code)
	}

	// wrong role
	doJSON(t, r, http.MethodPost, "/api/v1/auth/signup", gin.H{"username": "stu", "password": "pw12345"}, "")
	stuToken := login(t, r, "stu", "pw12345", "student")
	rec = doJSON(t, r, http.MethodGet, "/api/v1/admin/dashboard", nil, stuToken)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("student in admin console: %d", rec.Code)
	}
	rec = doJSON(t, r, http.MethodGet, "/api/v1/staff/dashboard", nil, stuToken)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("student on staff dashboard: %d", rec.Code)
	}

	// authorized
	rec = doJSON(t, r, http.MethodGet, "/api/v1/student/dashboard", nil, stuToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("student dashboard: %d %s", rec.Code, rec.Body.String())
	}

	// the generic dashboard route is the idempotent role redirect
	rec = doJSON(t, r, http.MethodGet, "/api/v1/dashboard", nil, stuToken)
	if rec.Code != http.StatusOK || decode(t, rec)["redirect"] != "/student/dashboard" {
		t.Fatalf("role redirect: %d %s", rec.Code, rec.Body.String())
	}

	// staff reaches the admin console
	staffToken := login(t, r, "staff", "staff123", "staff")
	rec = doJSON(t, r, http.MethodGet, "/api/v1/admin/dashboard", nil, staffToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("staff admin dashboard: %d %s", rec.Code, rec.Body.String())
	}
}

func TestAttendanceAndReportsFlow(t *testing.T) {
	r, db := setupRouter(t)
	if err := database.SeedDemo(db); err != nil {
		t.Fatalf("seed demo: %v", err)
	}

	token := login(t, r, "admin", "admin123", "admin")

	// the sheet lists the CS - 6A roster
	rec := doJSON(t, r, http.MethodGet, "/api/v1/admin/attendance?class=CS+-+6A&subject=ML&date=2030-01-15", nil, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("sheet: %d %s", rec.Code, rec.Body.String())
	}
	sheet := decode(t, rec)
	rows, _ := sheet["student_rows"].([]any)
	if len(rows) != 3 {
		t.Fatalf("unexpected roster size: %d", len(rows))
	}

	var alice models.Student
	if err := db.Where("usn = ?", "1CS21001").First(&alice).Error; err != nil {
		t.Fatalf("alice: %v", err)
	}

	rec = doJSON(t, r, http.MethodPost, "/api/v1/admin/attendance", gin.H{
		"class_section":    "CS - 6A",
		"subject":          "ML",
		"date":             "2030-01-15",
		"present_students": []uint{alice.ID},
	}, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("save attendance: %d %s", rec.Code, rec.Body.String())
	}

	var marks []models.AttendanceRecord
	db.Where("date = ? AND subject = ? AND class_section = ?", "2030-01-15", "ML", "CS - 6A").Find(&marks)
	if len(marks) != 3 {
		t.Fatalf("full roster should be marked: %d", len(marks))
	}
	for _, m := range marks {
		if m.IsPresent != (m.StudentID == alice.ID) {
			t.Fatalf("unexpected mark: %+v", m)
		}
	}

	rec = doJSON(t, r, http.MethodGet, "/api/v1/admin/reports", nil, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("reports: %d %s", rec.Code, rec.Body.String())
	}
	report := decode(t, rec)
	for _, key := range []string{"monthly_average", "critical_attendance", "best_class", "best_class_avg", "subject_breakdown", "shortage"} {
		if _, ok := report[key]; !ok {
			t.Fatalf("report missing %q: %v", key, report)
		}
	}

	rec = doJSON(t, r, http.MethodGet, "/api/v1/admin/students?q=alice", nil, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("students: %d", rec.Code)
	}
	students, _ := decode(t, rec)["students"].([]any)
	if len(students) != 1 {
		t.Fatalf("filter should match exactly Alice: %d", len(students))
	}
}
