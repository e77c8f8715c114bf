package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gatefield/gatefield/internal/api"
	"github.com/gatefield/gatefield/internal/cli"
	"github.com/gatefield/gatefield/internal/config"
	"github.com/gatefield/gatefield/internal/connector"
	"github.com/gatefield/gatefield/internal/events"
	"github.com/gatefield/gatefield/internal/journal"
	"github.com/gatefield/gatefield/internal/metrics"
	"github.com/gatefield/gatefield/internal/runner"
	"github.com/gatefield/gatefield/internal/telemetry"
)

func runCmd(configPath *string) *cobra.Command {
	var (
		noConsole bool
		connect   bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the client engine",
		Long: `Run the client engine with the console, control API, session journal
and MQTT telemetry as configured. With --connect, or when the account has
auto_login set, the gate is contacted immediately.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(*configPath, true)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return run(ctx, cfg, connect || cfg.Account.AutoLogin, !noConsole)
		},
	}

	cmd.Flags().BoolVar(&noConsole, "no-console", false, "do not read commands from stdin")
	cmd.Flags().BoolVar(&connect, "connect", false, "connect to the gate on startup")

	return cmd
}

func run(ctx context.Context, cfg *config.Config, connectNow, console bool) error {
	bus := events.NewEventBus()
	defer bus.Stop()

	var (
		collector *metrics.Collector
		apiOpts   = []api.Option{api.WithVersion(version)}
	)
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		collector = metrics.New(metrics.WithRegistry(reg), metrics.WithNamespace(cfg.Metrics.Namespace))
		apiOpts = append(apiOpts, api.WithMetrics(reg))
	}

	if cfg.Journal.Enabled {
		j, err := journal.Open(cfg.Journal.Path)
		if err != nil {
			return err
		}
		defer j.Close()
		j.Attach(bus)
		apiOpts = append(apiOpts, api.WithJournal(j))
	}

	var publisher *telemetry.Publisher
	if cfg.MQTT.Enabled {
		p, err := telemetry.NewPublisher(cfg.MQTT, version)
		if err != nil {
			log.Warn().Err(err).Msg("failed to initialize MQTT, telemetry disabled")
		} else {
			publisher = p
			publisher.Attach(bus)
		}
	}

	netCfg := cfg.GetNetwork()
	conn := connector.New(netCfg, connector.TCPDialer(netCfg, collector), bus, connector.WithMetrics(collector))
	loop := runner.New(conn, bus, netCfg, cfg.Account, collector)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Msg("starting session loop")
		return loop.Run(gctx)
	})

	if cfg.API.Enabled {
		server := api.NewServer(cfg, loop, bus, apiOpts...)
		g.Go(func() error {
			if err := server.Start(gctx); err != nil {
				return fmt.Errorf("api: %w", err)
			}
			return nil
		})
	}

	if publisher != nil {
		g.Go(func() error {
			// the engine keeps running without a broker
			if err := publisher.Start(gctx); err != nil {
				log.Warn().Err(err).Msg("MQTT telemetry failed")
			}
			return nil
		})
	}

	if console {
		c := cli.NewCLI(loop, bus, os.Stdin, os.Stdout)
		g.Go(func() error {
			if err := c.Run(gctx); errors.Is(err, cli.ErrQuit) {
				cancel()
			}
			log.Debug().Msg("console closed")
			return nil
		})
	}

	if connectNow {
		err := loop.Post(func(ctx context.Context, c *connector.Connector) error {
			return c.ConnectToGate(ctx)
		})
		if err != nil {
			log.Error().Err(err).Msg("failed to queue gate connect")
		}
	}

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	log.Info().Msg("gatefield stopped")
	return err
}
