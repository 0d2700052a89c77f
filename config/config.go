package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"staffly/models"
	util "staffly/pkg/utils"
)

type AppConfig struct {
	Port           string
	MongoString    string
	DBName         string
	PasetoSecret   string
	Location       *time.Location
	SMTPHost       string
	SMTPPort       int
	SMTPUser       string
	SMTPPass       string
	FromEmail      string
	ClientURL      string
	LeavePolicy    models.LeaveDays
	UploadMaxBytes int64
	AbsenceSweep   bool
	SeedDemo       bool
	LogLevel       string
}

// DefaultLeavePolicy is the yearly entitlement when no policy file is set.
var DefaultLeavePolicy = models.LeaveDays{Casual: 12, Sick: 12, Paid: 15}

// LoadConfig loads configuration from the environment, reading .env first
// when present.
func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: could not load .env file (might not exist in production): %v", err)
	}

	loc, err := time.LoadLocation(getEnv("TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	secret := getEnv("PASETO_SECRET", "")
	if secret == "" {
		secret, err = util.GenerateBase64Key(32)
		if err != nil {
			return nil, err
		}
		log.Printf("Warning: PASETO_SECRET is not set, using an ephemeral key. Tokens will not survive a restart.")
	}

	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}
	uploadMB, err := strconv.ParseInt(getEnv("UPLOAD_MAX_MB", "10"), 10, 64)
	if err != nil || uploadMB <= 0 {
		return nil, fmt.Errorf("invalid UPLOAD_MAX_MB %q", os.Getenv("UPLOAD_MAX_MB"))
	}

	policy := DefaultLeavePolicy
	if path := getEnv("LEAVE_POLICY_FILE", ""); path != "" {
		policy, err = LoadLeavePolicy(path)
		if err != nil {
			return nil, err
		}
	}

	return &AppConfig{
		Port:           getEnv("PORT", "3000"),
		MongoString:    getEnv("MONGOSTRING", ""),
		DBName:         getEnv("DB_NAME", "staffly"),
		PasetoSecret:   secret,
		Location:       loc,
		SMTPHost:       getEnv("SMTP_HOST", ""),
		SMTPPort:       smtpPort,
		SMTPUser:       getEnv("SMTP_USER", ""),
		SMTPPass:       getEnv("SMTP_PASS", ""),
		FromEmail:      getEnv("FROM_EMAIL", "no-reply@staffly.local"),
		ClientURL:      getEnv("CLIENT_URL", ""),
		LeavePolicy:    policy,
		UploadMaxBytes: uploadMB << 20,
		AbsenceSweep:   parseBool(getEnv("ABSENCE_SWEEP", "false")),
		SeedDemo:       parseBool(getEnv("SEED_DEMO", "false")),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}, nil
}

type leavePolicyFile struct {
	Entitlements models.LeaveDays `yaml:"entitlements"`
}

// LoadLeavePolicy reads yearly entitlements from a YAML file of the form
//
//	entitlements:
//	  casual: 12
//	  sick: 12
//	  paid: 15
//
// Missing categories keep their default.
func LoadLeavePolicy(path string) (models.LeaveDays, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return models.LeaveDays{}, fmt.Errorf("failed to read leave policy: %w", err)
	}
	return ParseLeavePolicy(raw)
}

func ParseLeavePolicy(raw []byte) (models.LeaveDays, error) {
	file := leavePolicyFile{Entitlements: DefaultLeavePolicy}
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return models.LeaveDays{}, fmt.Errorf("failed to parse leave policy: %w", err)
	}
	e := file.Entitlements
	if e.Casual < 0 || e.Sick < 0 || e.Paid < 0 {
		return models.LeaveDays{}, fmt.Errorf("leave entitlements must not be negative")
	}
	return e, nil
}

func (c *AppConfig) MailEnabled() bool { return c.SMTPHost != "" }

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
