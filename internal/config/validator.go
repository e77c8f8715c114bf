package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/rs/zerolog"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config validation error [%s]: %s", e.Field, e.Message)
}

// ValidationResult holds the results of configuration validation.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// IsValid returns true if there are no validation errors.
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationResult) AddError(field, message string) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: message})
}

func (r *ValidationResult) AddWarning(field, message string) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Message: message})
}

// Err joins all errors into one, or returns nil.
func (r *ValidationResult) Err() error {
	if r.IsValid() {
		return nil
	}
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Field+": "+e.Message)
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

// Validate checks the configuration for errors and risky values.
func Validate(cfg *Config) *ValidationResult {
	result := &ValidationResult{}

	validateNetwork(&cfg.Network, result)
	validateAccount(&cfg.Account, result)
	validateAPI(&cfg.API, result)

	if cfg.MQTT.Enabled {
		if strings.TrimSpace(cfg.MQTT.BrokerURL) == "" {
			result.AddError("mqtt.broker_url", "MQTT broker URL is required when enabled")
		}
		validatePort(cfg.MQTT.Port, "mqtt.port", result)
	}

	if cfg.Journal.Enabled && strings.TrimSpace(cfg.Journal.Path) == "" {
		result.AddError("journal.path", "journal path is required when enabled")
	}

	if _, err := zerolog.ParseLevel(cfg.Logging.Level); err != nil {
		result.AddWarning("logging.level", fmt.Sprintf("unknown level %q, info will be used", cfg.Logging.Level))
	}

	validateDevServer(&cfg.DevServer, result)

	return result
}

func validateNetwork(n *NetworkConfig, result *ValidationResult) {
	if strings.TrimSpace(n.GateHost) == "" {
		result.AddError("network.gate_host", "gate host is required")
	}
	if n.GatePort == 0 {
		result.AddError("network.gate_port", "gate port must be 1-65535")
	}
	if n.ConnectTimeoutSec < 1 {
		result.AddError("network.connect_timeout_sec", "connect timeout must be at least 1 second")
	}
	if n.WriteTimeoutSec < 1 {
		result.AddError("network.write_timeout_sec", "write timeout must be at least 1 second")
	}
	if n.MaxFrameSize < 6 {
		result.AddError("network.max_frame_size", "max frame size must cover the 6 byte header")
	} else if n.MaxFrameSize > 1<<20 {
		result.AddWarning("network.max_frame_size",
			fmt.Sprintf("max frame size %d is far above the server limit", n.MaxFrameSize))
	}
	if n.QueueCapacity < 0 {
		result.AddError("network.queue_capacity", "queue capacity cannot be negative")
	} else if n.QueueCapacity == 0 {
		result.AddWarning("network.queue_capacity", "inbound queue is unbounded")
	}
	if n.TickIntervalMs < 1 {
		result.AddError("network.tick_interval_ms", "tick interval must be at least 1ms")
	}
	if n.HeartbeatIntervalSec < 1 {
		result.AddWarning("network.heartbeat_interval_sec", "heartbeats are disabled")
	}
}

func validateAccount(a *AccountConfig, result *ValidationResult) {
	if !a.AutoLogin {
		return
	}
	if strings.TrimSpace(a.Username) == "" {
		result.AddError("account.username", "username is required for auto login")
	}
	if len(a.Username) > 32 {
		result.AddError("account.username", "username does not fit the 32 byte name field")
	}
}

func validateAPI(a *APIConfig, result *ValidationResult) {
	if !a.Enabled {
		return
	}
	validatePort(a.Port, "api.port", result)
	if a.Host != "" && a.Host != "localhost" && net.ParseIP(a.Host) == nil {
		result.AddWarning("api.host", fmt.Sprintf("host %q is not an IP address", a.Host))
	}
	if ip := net.ParseIP(a.Host); ip != nil && !ip.IsLoopback() && a.Token == "" {
		result.AddWarning("api.token", "control API is reachable from other hosts without a token")
	}
	if a.RateLimitRPS < 1 {
		result.AddWarning("api.rate_limit_rps", "rate limit is disabled")
	}
}

func validateDevServer(d *DevServerConfig, result *ValidationResult) {
	if d.GateAddr == "" && d.FieldAddr == "" {
		return
	}
	for field, addr := range map[string]string{"devserver.gate_addr": d.GateAddr, "devserver.field_addr": d.FieldAddr} {
		if _, _, err := net.SplitHostPort(addr); err != nil {
			result.AddError(field, fmt.Sprintf("invalid address %q: %v", addr, err))
		}
	}
	if len(d.Accounts) == 0 {
		result.AddWarning("devserver.accounts", "no accounts configured, every login will be refused")
	}
}

func validatePort(port int, field string, result *ValidationResult) {
	if port < 1 || port > 65535 {
		result.AddError(field, fmt.Sprintf("invalid port number: %d (must be 1-65535)", port))
		return
	}
	if port < 1024 {
		result.AddWarning(field,
			fmt.Sprintf("port %d is a privileged port, may require elevated permissions", port))
	}
}
