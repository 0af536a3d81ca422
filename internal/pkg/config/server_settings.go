package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Application identity reported by the root endpoint
const (
	AppName        = "Customer Management API"
	AppVersion     = "1.0.0"
	AppDescription = "API gateway for customers, appointments and documents"
)

// DefaultPort matches the port exposed by the container image.
const DefaultPort = "8000"

// ServerSettings holds HTTP listener and cross-cutting request settings
type ServerSettings struct {
	Port               string   `mapstructure:"port" validate:"required,numeric"`
	Debug              bool     `mapstructure:"debug"`
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins" validate:"required,min=1,dive,required"`
	// RateLimit is the number of requests a client may make per minute, 0 disables limiting.
	RateLimit int `mapstructure:"rate_limit" validate:"min=0"`
}

// Validate checks that all fields in ServerSettings are valid
func (s *ServerSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for ServerSettings: %w", err)
	}
	return nil
}

// AllowsAllOrigins reports whether the CORS allow-list contains the wildcard
func (s *ServerSettings) AllowsAllOrigins() bool {
	for _, origin := range s.CORSAllowedOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}
