package config

// Object storage defaults
const (
	DefaultS3Region             = "us-east-1"
	DefaultS3BasePath           = "user_data/"
	DefaultPresignExpirySeconds = 3600
)

// Event bus defaults
const (
	DefaultRabbitMQExchange = "gateway.events"
	DefaultServiceName      = "api-gateway"
)
