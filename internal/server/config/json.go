package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/todoauth/internal/flagx"
	"github.com/dmitrijs2005/todoauth/internal/timex"
)

// JSONConfig is the on-disk shape of the config file. Durations accept both
// strings ("24h") and integer nanoseconds. Absent keys leave the current
// value untouched.
type JSONConfig struct {
	EndpointAddrHTTP            string          `json:"endpoint_addr_http"`
	DatabaseDSN                 string          `json:"database_dsn"`
	SecretKey                   string          `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	BcryptCost                  int             `json:"bcrypt_cost"`
	DemoEmailDomain             string          `json:"demo_email_domain"`
	DemoEmailAttempts           int             `json:"demo_email_attempts"`
	Environment                 string          `json:"environment"`
	ResetDemoTasksOnStart       *bool           `json:"reset_demo_tasks_on_start"`
}

// parseJSON overlays values from the file named by -c/-config onto config.
// Nothing happens when no file is given; an unreadable or invalid file panics,
// since the server must not start on a half-read configuration.
func parseJSON(config *Config) {
	path := flagx.JSONConfigPath()
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JSONConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *JSONConfig) apply(config *Config) {
	if c.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
	if c.DemoEmailDomain != "" {
		config.DemoEmailDomain = c.DemoEmailDomain
	}
	if c.DemoEmailAttempts != 0 {
		config.DemoEmailAttempts = c.DemoEmailAttempts
	}
	if c.Environment != "" {
		config.Environment = c.Environment
	}
	if c.ResetDemoTasksOnStart != nil {
		config.ResetDemoTasksOnStart = *c.ResetDemoTasksOnStart
	}
}
