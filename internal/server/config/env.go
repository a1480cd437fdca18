package config

import (
	"os"
	"strings"
	"time"
)

// parseEnv overlays Config fields from environment variables. Variables are
// read from the process environment; cmd/server loads a local .env file first
// so development values can live alongside the checkout.
//
// Recognized variables:
//
//	SERVER_ADDR                HTTP bind address
//	DATABASE_DSN               PostgreSQL DSN
//	SECRET_KEY                 JWT HMAC secret key
//	ACCESS_TOKEN_VALIDITY      access token lifetime (e.g. "15m")
//	REFRESH_TOKEN_VALIDITY     refresh token lifetime (e.g. "168h")
//	RESET_TOKEN_VALIDITY       reset token lifetime (e.g. "1h")
//	MAILGUN_DOMAIN             Mailgun sending domain
//	MAILGUN_API_KEY            Mailgun private API key
//	EMAIL_FROM                 sender address for transactional mail
//	FRONTEND_URL               base URL for password reset links
//	CORS_ALLOWED_ORIGINS       comma-separated list of allowed origins
//
// Unset or invalid values leave the current Config value untouched.
func parseEnv(config *Config) {
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		config.EndpointAddrHTTP = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("SECRET_KEY"); v != "" {
		config.SecretKey = v
	}
	if d, ok := envDuration("ACCESS_TOKEN_VALIDITY"); ok {
		config.AccessTokenValidityDuration = d
	}
	if d, ok := envDuration("REFRESH_TOKEN_VALIDITY"); ok {
		config.RefreshTokenValidityDuration = d
	}
	if d, ok := envDuration("RESET_TOKEN_VALIDITY"); ok {
		config.ResetTokenValidityDuration = d
	}
	if v := os.Getenv("MAILGUN_DOMAIN"); v != "" {
		config.MailgunDomain = v
	}
	if v := os.Getenv("MAILGUN_API_KEY"); v != "" {
		config.MailgunAPIKey = v
	}
	if v := os.Getenv("EMAIL_FROM"); v != "" {
		config.EmailFrom = v
	}
	if v := os.Getenv("FRONTEND_URL"); v != "" {
		config.FrontendURL = v
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		if len(origins) > 0 {
			config.CORSAllowedOrigins = origins
		}
	}
}

func envDuration(name string) (time.Duration, bool) {
	v := os.Getenv(name)
	if v == "" {
		return 0, false
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, false
	}
	return d, true
}
