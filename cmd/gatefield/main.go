// gatefield - client protocol engine for gate/field game servers.
//
// gatefield connects to a gate server, follows its route to a field server,
// logs in, selects a character and keeps the session alive, exposing the
// session over an interactive console, a REST/WebSocket API and MQTT.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gatefield/gatefield/internal/config"
	"github.com/gatefield/gatefield/internal/util"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

const appName = "gatefield"

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   appName,
		Short: "Client protocol engine for gate/field game servers",
		Long: `gatefield speaks the gate -> field client protocol: it asks the gate
for a field server, logs in, selects a character and keeps the session
alive. A local dev server pair is included for testing.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultConfigFile,
		"config file or directory (overridden by "+config.EnvConfigPath+")")

	rootCmd.AddCommand(
		runCmd(&configPath),
		devServerCmd(&configPath),
		catalogCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

// setup loads and validates the configuration and configures logging.
func setup(configPath string, console bool) (*config.Config, error) {
	cfg, err := config.Load(config.ResolvePath(configPath))
	if err != nil {
		return nil, err
	}

	logCfg := util.LogConfig{
		Level:      cfg.Logging.Level,
		Directory:  cfg.Logging.Directory,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		Console:    console,
	}
	if err := util.InitLogger(appName, logCfg); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	log.Info().
		Str("version", version).
		Str("platform", runtime.GOOS).
		Str("arch", runtime.GOARCH).
		Str("config", cfg.Path()).
		Msg("starting gatefield")

	validation := config.Validate(cfg)
	for _, w := range validation.Warnings {
		log.Warn().Str("field", w.Field).Msg(w.Message)
	}
	for _, e := range validation.Errors {
		log.Error().Str("field", e.Field).Msg(e.Message)
	}
	return cfg, validation.Err()
}
