package config

import (
	"fmt"
	"os"
	"strconv"
)

// Cancellation policies for patient-initiated appointment deletion.
const (
	CancellationPolicyHard = "hard"
	CancellationPolicySoft = "soft"
)

// Config holds all configuration for our application
type Config struct {
	Port                      string
	Origin                    string
	Environment               string
	JWTSecret                 string
	JWTRefreshSecret          string
	Database                  DatabaseConfig
	Booking                   BookingConfig
	JWTExpirationMinutes      int
	JWTRefreshExpirationHours int
}

// DatabaseConfig holds database connection details
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	DSN      string
}

// BookingConfig holds the slot policy and the cancellation behavior for
// patient-initiated deletes. CancellationPolicy is "hard" (status write then
// row delete) or "soft" (status write only).
type BookingConfig struct {
	DayStartHour       int
	DayEndHour         int
	SlotMinutes        int
	CancellationPolicy string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load database configuration
	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "3306"),
		Username: getEnv("DB_USERNAME", "root"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "clinic"),
	}

	// Build DSN (Data Source Name) for MySQL connection
	dbConfig.DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		dbConfig.Username, dbConfig.Password, dbConfig.Host, dbConfig.Port, dbConfig.Name)

	jwtExpMinutes, err := strconv.Atoi(getEnv("JWT_EXPIRATION_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION_MINUTES: %w", err)
	}

	jwtRefreshExpHours, err := strconv.Atoi(getEnv("JWT_REFRESH_EXPIRATION_HOURS", "168")) // 7 days
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_REFRESH_EXPIRATION_HOURS: %w", err)
	}

	bookingConfig, err := loadBookingConfig()
	if err != nil {
		return nil, err
	}

	// Return complete configuration
	return &Config{
		Port:                      getEnv("PORT", "3001"),
		Origin:                    getEnv("ORIGIN", "http://localhost:4200"),
		Environment:               getEnv("APP_ENV", "development"),
		JWTSecret:                 getEnv("JWT_SECRET", "default_jwt_secret"),
		JWTRefreshSecret:          getEnv("JWT_REFRESH_SECRET", "default_refresh_secret"),
		Database:                  dbConfig,
		Booking:                   bookingConfig,
		JWTExpirationMinutes:      jwtExpMinutes,
		JWTRefreshExpirationHours: jwtRefreshExpHours,
	}, nil
}

func loadBookingConfig() (BookingConfig, error) {
	dayStart, err := strconv.Atoi(getEnv("BOOKING_DAY_START_HOUR", "9"))
	if err != nil {
		return BookingConfig{}, fmt.Errorf("invalid BOOKING_DAY_START_HOUR: %w", err)
	}

	dayEnd, err := strconv.Atoi(getEnv("BOOKING_DAY_END_HOUR", "17"))
	if err != nil {
		return BookingConfig{}, fmt.Errorf("invalid BOOKING_DAY_END_HOUR: %w", err)
	}

	slotMinutes, err := strconv.Atoi(getEnv("BOOKING_SLOT_MINUTES", "30"))
	if err != nil {
		return BookingConfig{}, fmt.Errorf("invalid BOOKING_SLOT_MINUTES: %w", err)
	}
	if slotMinutes <= 0 {
		return BookingConfig{}, fmt.Errorf("BOOKING_SLOT_MINUTES must be positive, got %d", slotMinutes)
	}

	policy := getEnv("BOOKING_CANCELLATION_POLICY", CancellationPolicyHard)
	if policy != CancellationPolicyHard && policy != CancellationPolicySoft {
		return BookingConfig{}, fmt.Errorf("invalid BOOKING_CANCELLATION_POLICY: %q (expected %q or %q)",
			policy, CancellationPolicyHard, CancellationPolicySoft)
	}

	return BookingConfig{
		DayStartHour:       dayStart,
		DayEndHour:         dayEnd,
		SlotMinutes:        slotMinutes,
		CancellationPolicy: policy,
	}, nil
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
