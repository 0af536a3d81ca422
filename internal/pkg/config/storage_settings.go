package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// StorageSettings holds the S3 bucket location and credentials
type StorageSettings struct {
	AccessKeyID          string `mapstructure:"access_key_id"`
	SecretAccessKey      string `mapstructure:"secret_access_key"`
	Region               string `mapstructure:"region" validate:"required"`
	Bucket               string `mapstructure:"bucket" validate:"required,min=3,max=63"`
	BasePath             string `mapstructure:"base_path"`
	Endpoint             string `mapstructure:"endpoint" validate:"omitempty,url"`
	UsePathStyle         bool   `mapstructure:"use_path_style"`
	PresignExpirySeconds int    `mapstructure:"presign_expiry_seconds" validate:"min=1,max=604800"`
}

// Validate checks that all fields in StorageSettings are valid
func (s *StorageSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for StorageSettings: %w", err)
	}

	if (s.AccessKeyID == "") != (s.SecretAccessKey == "") {
		return fmt.Errorf("access key id and secret access key must be set together")
	}
	return nil
}

// NormalizedBasePath returns the base path with exactly one trailing slash, or "" for the bucket root.
func (s *StorageSettings) NormalizedBasePath() string {
	trimmed := strings.Trim(s.BasePath, "/")
	if trimmed == "" {
		return ""
	}
	return trimmed + "/"
}
