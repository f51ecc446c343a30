package config

import "time"

// APIConfig holds FIO API client configuration
type APIConfig struct {
	// Base URL for the FIO REST API
	BaseURL string `mapstructure:"base_url" validate:"required,url"`

	// FIO API key, sent as the Authorization header
	Key string `mapstructure:"key"`

	// Account name for site and storage lookups; resolved from the key via
	// /auth when empty
	Username string `mapstructure:"username"`

	// Request timeout
	Timeout time.Duration `mapstructure:"timeout" validate:"required"`

	// Rate limiting settings
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// Retry configuration
	Retry RetryConfig `mapstructure:"retry"`

	// How long cached snapshots stay fresh; zero disables expiry
	CacheMaxAge time.Duration `mapstructure:"cache_max_age"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	// Maximum requests per second
	Requests int `mapstructure:"requests" validate:"min=1"`
}

// RetryConfig holds retry configuration for failed requests
type RetryConfig struct {
	// Maximum number of retry attempts
	MaxAttempts int `mapstructure:"max_attempts" validate:"min=0"`

	// Base duration for exponential backoff
	BackoffBase time.Duration `mapstructure:"backoff_base"`
}
