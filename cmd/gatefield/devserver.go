package main

import (
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gatefield/gatefield/internal/devserver"
	"github.com/gatefield/gatefield/internal/network"
)

func devServerCmd(configPath *string) *cobra.Command {
	var gateAddr, fieldAddr string

	cmd := &cobra.Command{
		Use:   "devserver",
		Short: "Run a local gate and field server",
		Long: `Run a local gate and field server pair speaking the client protocol.
Accounts come from the devserver section of the config; each account owns
one character named after it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(*configPath, true)
			if err != nil {
				return err
			}

			dev := cfg.DevServer
			if gateAddr != "" {
				dev.GateAddr = gateAddr
			}
			if fieldAddr != "" {
				dev.FieldAddr = fieldAddr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := devserver.New(dev, network.FrameConnOptions{
				MaxFrameSize: cfg.Network.MaxFrameSize,
				WriteTimeout: cfg.Network.WriteTimeout(),
			})
			if err := srv.Listen(ctx); err != nil {
				return err
			}
			log.Info().
				Stringer("gate", srv.GateAddr()).
				Stringer("field", srv.FieldAddr()).
				Int("accounts", len(dev.Accounts)).
				Msg("dev server ready")

			return srv.Serve(ctx)
		},
	}

	cmd.Flags().StringVar(&gateAddr, "gate", "", "gate listen address (overrides config)")
	cmd.Flags().StringVar(&fieldAddr, "field", "", "field listen address (overrides config)")

	return cmd
}
