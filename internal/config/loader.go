package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures environment driven configuration values for the hours bot.
type Config struct {
	HTTPPort          int
	GoogleCredentials string
	SheetID           string
	Worksheet         string
	TwilioAccountSID  string
	TwilioAuthToken   string
	TwilioNumber      string
	UserPhone         string
	AdminPhone        string
	PublicURL         string
	ReminderTime      string
}

// Load parses configuration values from the current process environment.
//
// The loader applies defaults for optional fields while validating required
// values, reporting every missing or malformed entry in a single error.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:  8080,
		Worksheet: "PAYE Tracker",
	}

	missing := make([]string, 0, 1)
	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("HOURSBOT_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "HOURSBOT_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	required := []struct {
		key    string
		target *string
	}{
		{"GOOGLE_CREDENTIALS", &cfg.GoogleCredentials},
		{"HOURSBOT_SHEET_ID", &cfg.SheetID},
		{"TWILIO_ACCOUNT_SID", &cfg.TwilioAccountSID},
		{"TWILIO_AUTH_TOKEN", &cfg.TwilioAuthToken},
		{"TWILIO_WHATSAPP_NUMBER", &cfg.TwilioNumber},
		{"HOURSBOT_USER_PHONE", &cfg.UserPhone},
	}
	for _, entry := range required {
		if value := strings.TrimSpace(os.Getenv(entry.key)); value == "" {
			missing = append(missing, entry.key)
		} else {
			*entry.target = value
		}
	}

	if worksheet := strings.TrimSpace(os.Getenv("HOURSBOT_WORKSHEET")); worksheet != "" {
		cfg.Worksheet = worksheet
	}

	cfg.AdminPhone = strings.TrimSpace(os.Getenv("HOURSBOT_ADMIN_PHONE"))
	cfg.PublicURL = strings.TrimRight(strings.TrimSpace(os.Getenv("HOURSBOT_PUBLIC_URL")), "/")

	if reminder := strings.TrimSpace(os.Getenv("HOURSBOT_REMINDER_TIME")); reminder != "" {
		if _, err := time.Parse("15:04", reminder); err != nil {
			invalid = append(invalid, "HOURSBOT_REMINDER_TIME")
		} else {
			cfg.ReminderTime = reminder
		}
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variable values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
