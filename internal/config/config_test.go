package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefault(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, DefaultConfigFile), cfg.Path())
	assert.FileExists(t, cfg.Path())

	n := cfg.GetNetwork()
	assert.Equal(t, 8192, n.MaxFrameSize)
	assert.Equal(t, 4096, n.QueueCapacity)
	assert.Equal(t, 10*time.Second, n.ConnectTimeout())
	assert.Equal(t, 16*time.Millisecond, n.TickInterval())
	assert.True(t, n.AutoCharList)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
	}{
		{
			name: "json",
			file: "gatefield.json",
			body: `{"network":{"gate_host":"10.0.0.5","gate_port":9000}}`,
		},
		{
			name: "yaml",
			file: "gatefield.yaml",
			body: "network:\n  gate_host: 10.0.0.5\n  gate_port: 9000\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0600))

			cfg, err := Load(path)
			require.NoError(t, err)

			n := cfg.GetNetwork()
			assert.Equal(t, "10.0.0.5", n.GateHost)
			assert.Equal(t, uint16(9000), n.GatePort)
			// untouched keys keep their defaults
			assert.Equal(t, 8192, n.MaxFrameSize)
			assert.Equal(t, 15*time.Second, n.HeartbeatInterval())
			assert.Equal(t, "info", cfg.Logging.Level)
		})
	}
}

func TestSaveRoundTripYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "gatefield.yml")

	cfg, err := Load(path)
	require.NoError(t, err)
	cfg.SetGate("gate.example", 7200)
	require.NoError(t, cfg.Save())

	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gate.example", again.GetNetwork().GateHost)
	assert.Equal(t, uint16(7200), again.GetNetwork().GatePort)
}

func TestLoadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	_, err := Load(path)
	require.Error(t, err)
}

func TestResolvePath(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	assert.Equal(t, "flag.json", ResolvePath("flag.json"))

	t.Setenv(EnvConfigPath, "/etc/gatefield.yaml")
	assert.Equal(t, "/etc/gatefield.yaml", ResolvePath("flag.json"))
}

func TestValidate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		result := Validate(DefaultConfig())
		assert.True(t, result.IsValid(), "%v", result.Errors)
		assert.NoError(t, result.Err())
	})

	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"missing gate host", func(c *Config) { c.Network.GateHost = "" }, "network.gate_host"},
		{"zero gate port", func(c *Config) { c.Network.GatePort = 0 }, "network.gate_port"},
		{"frame below header", func(c *Config) { c.Network.MaxFrameSize = 4 }, "network.max_frame_size"},
		{"negative queue", func(c *Config) { c.Network.QueueCapacity = -1 }, "network.queue_capacity"},
		{"zero tick", func(c *Config) { c.Network.TickIntervalMs = 0 }, "network.tick_interval_ms"},
		{"auto login without user", func(c *Config) { c.Account.AutoLogin = true }, "account.username"},
		{"bad api port", func(c *Config) { c.API.Port = 70000 }, "api.port"},
		{"mqtt without broker", func(c *Config) {
			c.MQTT.Enabled = true
			c.MQTT.BrokerURL = " "
		}, "mqtt.broker_url"},
		{"bad devserver addr", func(c *Config) { c.DevServer.FieldAddr = "nowhere" }, "devserver.field_addr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			result := Validate(cfg)
			require.False(t, result.IsValid())
			require.Error(t, result.Err())

			var fields []string
			for _, e := range result.Errors {
				fields = append(fields, e.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}

	t.Run("unbounded queue warns", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Network.QueueCapacity = 0
		result := Validate(cfg)
		assert.True(t, result.IsValid())
		require.NotEmpty(t, result.Warnings)
		assert.Equal(t, "network.queue_capacity", result.Warnings[0].Field)
	})
}
