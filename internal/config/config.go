package config

import "time"

type Duration struct {
	Duration time.Duration
}

type APIConfig struct {
	// BaseURL is the content API root every endpoint path is joined onto.
	BaseURL string   `json:"base_url" yaml:"base_url"`
	Timeout Duration `json:"timeout" yaml:"timeout"`
}

type SessionConfig struct {
	// Store selects where the bearer token is persisted: "file", "redis" or "memory".
	Store     string `json:"store" yaml:"store"`
	FilePath  string `json:"file_path,omitempty" yaml:"file_path,omitempty"`
	RedisAddr string `json:"redis_addr,omitempty" yaml:"redis_addr,omitempty"`
	RedisKey  string `json:"redis_key,omitempty" yaml:"redis_key,omitempty"`
}

type DBConfig struct {
	Driver string `json:"driver" yaml:"driver"`
	DSN    string `json:"dsn" yaml:"dsn"`
}

type OTPConfig struct {
	Length int      `json:"length" yaml:"length"`
	TTL    Duration `json:"ttl" yaml:"ttl"`
	// Fixed makes every issued OTP equal to this value. Local development only.
	Fixed string `json:"fixed,omitempty" yaml:"fixed,omitempty"`
	// SMS sends codes through Twilio instead of logging them.
	SMS bool `json:"sms,omitempty" yaml:"sms,omitempty"`
}

type DevAPIConfig struct {
	Addr            string   `json:"addr" yaml:"addr"`
	ShutdownTimeout Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
	DB              DBConfig `json:"db" yaml:"db"`
	JWTSecret       string   `json:"jwt_secret" yaml:"jwt_secret"`
	TokenTTL        Duration `json:"token_ttl" yaml:"token_ttl"`
	// SuperAdmins lists mobile numbers accepted by /admin/login.
	SuperAdmins []string `json:"super_admins,omitempty" yaml:"super_admins,omitempty"`
	// CORSOrigins overrides the local dashboard dev origins.
	CORSOrigins []string  `json:"cors_origins,omitempty" yaml:"cors_origins,omitempty"`
	OTP         OTPConfig `json:"otp" yaml:"otp"`
}

type OTelConfig struct {
	ServiceName string `json:"service_name" yaml:"service_name"`
	Version     string `json:"version,omitempty" yaml:"version,omitempty"`
}

type Config struct {
	Env     string        `json:"env" yaml:"env"`
	API     APIConfig     `json:"api" yaml:"api"`
	Session SessionConfig `json:"session" yaml:"session"`
	DevAPI  DevAPIConfig  `json:"devapi" yaml:"devapi"`
	OTel    OTelConfig    `json:"otel" yaml:"otel"`
}
