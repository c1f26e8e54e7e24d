package config

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppName string `mapstructure:"app_name"`
	AppPort string `mapstructure:"app_port"`

	MySQLHost string `mapstructure:"mysql_host"`
	MySQLPort string `mapstructure:"mysql_port"`
	MySQLDB   string `mapstructure:"mysql_db"`
	MySQLUser string `mapstructure:"mysql_user"`
	MySQLPass string `mapstructure:"mysql_pass"`

	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`

	IdempTTLSecs int `mapstructure:"idempotency_ttl_seconds"`

	JWTSecret string `mapstructure:"jwt_secret"`
	JWTIssuer string `mapstructure:"jwt_issuer"`

	LogLevel          string `mapstructure:"log_level"`
	BootstrapAdminUID string `mapstructure:"bootstrap_admin_uid"`
}

var defaults = map[string]any{
	"app_name":                "sikopifasta",
	"app_port":                "8080",
	"mysql_host":              "mysql",
	"mysql_port":              "3306",
	"mysql_db":                "sikopifasta",
	"mysql_user":              "sikopifasta",
	"mysql_pass":              "sikopifasta",
	"redis_addr":              "redis:6379",
	"redis_password":          "",
	"redis_db":                0,
	"idempotency_ttl_seconds": 300,
	"jwt_secret":              "",
	"jwt_issuer":              "",
	"log_level":               "info",
	"bootstrap_admin_uid":     "",
}

// Load reads an optional .env file, then the environment. Keys are the
// upper-cased mapstructure names (APP_PORT, MYSQL_HOST, ...).
func Load(envFiles ...string) (*Config, error) {
	// missing .env is fine
	_ = godotenv.Load(envFiles...)

	v := viper.New()
	for k, d := range defaults {
		v.SetDefault(k, d)
		if err := v.BindEnv(k, strings.ToUpper(k)); err != nil {
			return nil, fmt.Errorf("bind %s: %w", k, err)
		}
	}
	v.AutomaticEnv()

	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	// ensure port is valid
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.JWTSecret == "" {
		return errors.New("missing JWT_SECRET")
	}
	if c.IdempTTLSecs <= 0 {
		return fmt.Errorf("invalid IDEMPOTENCY_TTL_SECONDS %d", c.IdempTTLSecs)
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&charset=utf8mb4",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
