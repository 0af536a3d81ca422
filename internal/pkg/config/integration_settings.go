package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// IntegrationSettings holds the optional backing services. Empty values disable the integration.
type IntegrationSettings struct {
	RedisAddr        string `mapstructure:"redis_addr" validate:"omitempty,hostname_port"`
	RabbitMQURL      string `mapstructure:"rabbitmq_url" validate:"omitempty,url"`
	RabbitMQExchange string `mapstructure:"rabbitmq_exchange" validate:"required"`
	OTLPEndpoint     string `mapstructure:"otlp_endpoint"`
	ServiceName      string `mapstructure:"service_name" validate:"required"`
}

// Validate checks that all fields in IntegrationSettings are valid
func (s *IntegrationSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for IntegrationSettings: %w", err)
	}
	return nil
}
