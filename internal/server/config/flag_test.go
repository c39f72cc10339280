package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"cmd",
				"-a", "127.0.0.1:9090", "-d", "db", "-s", "secret", "-t", "15",
				"-b", "12", "-m", "example.org", "-n", "5", "-e", "production", "-r=false",
			},
			expected: &Config{
				EndpointAddrHTTP:            "127.0.0.1:9090",
				DatabaseDSN:                 "db",
				SecretKey:                   "secret",
				AccessTokenValidityDuration: 15 * time.Minute,
				BcryptCost:                  12,
				DemoEmailDomain:             "example.org",
				DemoEmailAttempts:           5,
				Environment:                 "production",
				ResetDemoTasksOnStart:       false,
			},
		},
		{
			name: "switch without value",
			args: []string{"cmd", "-r", "-t", "60"},
			expected: &Config{
				AccessTokenValidityDuration: time.Hour,
				ResetDemoTasksOnStart:       true,
			},
		},
		{
			name:        "bad integer panics",
			args:        []string{"cmd", "-b", "ten"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}

			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}

func TestParseFlags_UnsetValidityKept(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"cmd", "-a", ":9000"}
	config := &Config{AccessTokenValidityDuration: 90 * time.Second}

	parseFlags(config)

	assert.Equal(t, ":9000", config.EndpointAddrHTTP)
	assert.Equal(t, 90*time.Second, config.AccessTokenValidityDuration)
}
