package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/yungbote/eduadmin/internal/platform/envutil"
)

func (d *Duration) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		d.Duration = 0
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		u, err := strconv.Unquote(s)
		if err != nil {
			return err
		}
		return d.parse(u)
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("duration must be a JSON string like \"5s\" or an int nanoseconds: %w", err)
	}
	d.Duration = time.Duration(n)
	return nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("duration must be a scalar, got kind %d", node.Kind)
	}
	if node.Tag == "!!int" {
		n, err := strconv.ParseInt(node.Value, 10, 64)
		if err != nil {
			return err
		}
		d.Duration = time.Duration(n)
		return nil
	}
	return d.parse(node.Value)
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Duration.String())
}

func (d *Duration) parse(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		d.Duration = 0
		return nil
	}
	dd, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	d.Duration = dd
	return nil
}

func Default() *Config {
	return &Config{
		Env: "development",
		API: APIConfig{
			BaseURL: "http://127.0.0.1:8000",
			Timeout: Duration{Duration: 30 * time.Second},
		},
		Session: SessionConfig{
			Store:    "file",
			RedisKey: "eduadmin:admin_access_token",
		},
		DevAPI: DevAPIConfig{
			Addr:            ":8000",
			ShutdownTimeout: Duration{Duration: 15 * time.Second},
			DB: DBConfig{
				Driver: "sqlite",
				DSN:    "file:eduadmin.db?_foreign_keys=on",
			},
			TokenTTL: Duration{Duration: 24 * time.Hour},
			OTP: OTPConfig{
				Length: 6,
				TTL:    Duration{Duration: 5 * time.Minute},
			},
		},
		OTel: OTelConfig{ServiceName: "eduadmin"},
	}
}

// Load builds the config from defaults, an optional .env file, an optional
// YAML/JSON file and environment overrides, in that order.
func Load() (*Config, error) {
	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	cfg := Default()

	cfgPath := strings.TrimSpace(os.Getenv("EDUADMIN_CONFIG_PATH"))
	if cfgPath == "" {
		if wd, err := os.Getwd(); err == nil {
			for _, name := range []string{"config.yaml", "config.yml", "config.json"} {
				p := filepath.Join(wd, "config", name)
				if _, err := os.Stat(p); err == nil {
					cfgPath = p
					break
				}
			}
		}
	}
	if cfgPath != "" {
		if err := loadFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("load config %s: %w", cfgPath, err)
		}
	}

	applyEnv(cfg)

	if err := normalize(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(b, cfg)
	case ".json":
		return json.Unmarshal(b, cfg)
	default:
		return fmt.Errorf("unsupported config extension %q", filepath.Ext(path))
	}
}

func applyEnv(cfg *Config) {
	cfg.Env = envutil.String("LOG_MODE", cfg.Env)
	cfg.API.BaseURL = envutil.String("EDUADMIN_API_BASE_URL", cfg.API.BaseURL)
	cfg.API.Timeout.Duration = envutil.Duration("EDUADMIN_API_TIMEOUT", cfg.API.Timeout.Duration)

	cfg.Session.Store = envutil.String("EDUADMIN_SESSION_STORE", cfg.Session.Store)
	cfg.Session.FilePath = envutil.String("EDUADMIN_SESSION_FILE", cfg.Session.FilePath)
	cfg.Session.RedisAddr = envutil.String("REDIS_ADDR", cfg.Session.RedisAddr)
	cfg.Session.RedisKey = envutil.String("EDUADMIN_SESSION_REDIS_KEY", cfg.Session.RedisKey)

	cfg.DevAPI.Addr = envutil.String("EDUADMIN_DEVAPI_ADDR", cfg.DevAPI.Addr)
	cfg.DevAPI.DB.Driver = envutil.String("EDUADMIN_DB_DRIVER", cfg.DevAPI.DB.Driver)
	cfg.DevAPI.DB.DSN = envutil.String("EDUADMIN_DB_DSN", cfg.DevAPI.DB.DSN)
	cfg.DevAPI.JWTSecret = envutil.String("JWT_SECRET_KEY", cfg.DevAPI.JWTSecret)
	cfg.DevAPI.TokenTTL.Duration = envutil.Duration("ACCESS_TOKEN_TTL", cfg.DevAPI.TokenTTL.Duration)
	cfg.DevAPI.OTP.Fixed = envutil.String("EDUADMIN_OTP_FIXED", cfg.DevAPI.OTP.Fixed)
	cfg.DevAPI.OTP.SMS = envutil.Bool("EDUADMIN_OTP_SMS", cfg.DevAPI.OTP.SMS)
	if v := envutil.String("EDUADMIN_SUPER_ADMINS", ""); v != "" {
		cfg.DevAPI.SuperAdmins = splitList(v)
	}
	if v := envutil.String("EDUADMIN_CORS_ORIGINS", ""); v != "" {
		cfg.DevAPI.CORSOrigins = splitList(v)
	}
}

func normalize(cfg *Config) error {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "development"
	}

	cfg.API.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.API.BaseURL), "/")
	if cfg.API.BaseURL == "" {
		return errors.New("api.base_url is required")
	}
	if cfg.API.Timeout.Duration < 0 {
		return errors.New("api.timeout must not be negative")
	}

	cfg.Session.Store = strings.ToLower(strings.TrimSpace(cfg.Session.Store))
	switch cfg.Session.Store {
	case "":
		cfg.Session.Store = "file"
	case "file", "memory":
	case "redis":
		if strings.TrimSpace(cfg.Session.RedisAddr) == "" {
			return errors.New("session.redis_addr is required when session.store=redis")
		}
	default:
		return fmt.Errorf("invalid session.store=%q", cfg.Session.Store)
	}
	if cfg.Session.Store == "file" && strings.TrimSpace(cfg.Session.FilePath) == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			dir = os.TempDir()
		}
		cfg.Session.FilePath = filepath.Join(dir, "eduadmin", "session.json")
	}

	cfg.DevAPI.DB.Driver = strings.ToLower(strings.TrimSpace(cfg.DevAPI.DB.Driver))
	switch cfg.DevAPI.DB.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("invalid devapi.db.driver=%q", cfg.DevAPI.DB.Driver)
	}
	if cfg.DevAPI.OTP.Length <= 0 {
		cfg.DevAPI.OTP.Length = 6
	}
	if cfg.DevAPI.OTP.TTL.Duration <= 0 {
		cfg.DevAPI.OTP.TTL = Duration{Duration: 5 * time.Minute}
	}
	if cfg.DevAPI.TokenTTL.Duration <= 0 {
		cfg.DevAPI.TokenTTL = Duration{Duration: 24 * time.Hour}
	}
	return nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
