package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port       string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	JWTSecret    string
	JWTExpiresIn string // minutes

	AdminUsername string
	AdminPassword string
	AdminContact  string
	StaffUsername string
	StaffPassword string
	StaffContact  string

	// Reporting thresholds. Students below ShortageThreshold appear on the
	// shortage list; those strictly below CriticalCutoff are tagged Critical.
	ShortageThreshold float64
	CriticalCutoff    float64

	RateLimitPerMin int
	SeedDemoData    bool
}

func Load() *Config {
	return &Config{
		Port:       getenv("PORT", "8080"),
		DBHost:     getenv("DB_HOST", "localhost"),
		DBPort:     getenv("DB_PORT", "5432"),
		DBUser:     getenv("DB_USER", "postgres"),
		DBPassword: getenv("DB_PASSWORD", "postgres"),
		DBName:     getenv("DB_NAME", "attendance_portal"),
		DBSSLMode:  getenv("DB_SSLMODE", "disable"),

		JWTSecret:    getenv("JWT_SECRET", "supersecret_change_me"),
		JWTExpiresIn: getenv("JWT_EXPIRES_IN", "60"),

		AdminUsername: getenv("ADMIN_USERNAME", "admin"),
		AdminPassword: getenv("ADMIN_PASSWORD", "admin123"),
		AdminContact:  getenv("ADMIN_CONTACT", "admin@college.edu"),
		StaffUsername: getenv("STAFF_USERNAME", "staff"),
		StaffPassword: getenv("STAFF_PASSWORD", "staff123"),
		StaffContact:  getenv("STAFF_CONTACT", "staff@college.edu"),

		ShortageThreshold: floatenv("REPORT_SHORTAGE_THRESHOLD", 75.0),
		CriticalCutoff:    floatenv("REPORT_CRITICAL_CUTOFF", 65.0),

		RateLimitPerMin: intenv("RATE_LIMIT_PER_MIN", 30),
		SeedDemoData:    boolenv("SEED_DEMO_DATA", true),
	}
}

func getenv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func floatenv(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func intenv(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func boolenv(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
