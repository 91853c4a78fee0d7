package config

import (
	"fmt"
	"os"
	"strings"
)

// RequiredEnvVars lists all environment variables that must be set
var RequiredEnvVars = []string{
	"DB_USER",
	"DB_PASSWORD",
	"DB_HOST",
	"DB_PORT",
	"DB_NAME",
	"JWT_SECRET",
	"STRAVA_CLIENT_ID",
	"STRAVA_CLIENT_SECRET",
}

// ValidateEnv checks that all required environment variables are set
func ValidateEnv() error {
	var missing []string
	for _, envVar := range RequiredEnvVars {
		if os.Getenv(envVar) == "" {
			missing = append(missing, envVar)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return nil
}

// ValidateEnvWithWarnings checks environment variables and returns warnings
// for non-critical issues (like using default values)
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string

	if os.Getenv("JWT_SECRET") == "dev-secret" {
		warnings = append(warnings, "JWT_SECRET appears to be using the example value - generate a secure key with: openssl rand -hex 32")
	}

	if os.Getenv("DB_PASSWORD") == "postgres" {
		warnings = append(warnings, "DB_PASSWORD appears to be using the default value - please use a secure password")
	}

	return warnings, nil
}
