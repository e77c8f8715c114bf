// Package telemetry publishes connection lifecycle events to an MQTT broker.
package telemetry

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog"

	"github.com/gatefield/gatefield/internal/config"
	"github.com/gatefield/gatefield/internal/events"
	"github.com/gatefield/gatefield/internal/util"
)

// Topic suffixes, appended to the configured prefix.
const (
	TopicState   = "state"
	TopicSession = "session"
	TopicError   = "error"
)

// Publisher forwards bus events to MQTT.
type Publisher struct {
	cfg      config.MQTTConfig
	client   mqtt.Client
	logger   zerolog.Logger
	metadata map[string]interface{}
}

// NewPublisher configures an MQTT client from cfg. Nothing is dialed until Start.
func NewPublisher(cfg config.MQTTConfig, version string) (*Publisher, error) {
	if !cfg.Enabled {
		return nil, fmt.Errorf("MQTT is disabled")
	}
	if cfg.TopicPrefix == "" {
		cfg.TopicPrefix = "gatefield"
	}

	h := util.Host()
	p := &Publisher{
		cfg:    cfg,
		logger: util.ComponentLogger("telemetry"),
		metadata: map[string]interface{}{
			"hostname":    h.Hostname,
			"platform":    h.Platform,
			"arch":        h.Arch,
			"app_version": version,
		},
	}

	scheme := "tcp"
	if cfg.UseTLS {
		scheme = "ssl"
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("%s://%s:%d", scheme, cfg.BrokerURL, cfg.Port))
	if cfg.ClientID != "" {
		opts.SetClientID(cfg.ClientID)
	} else {
		opts.SetClientID(fmt.Sprintf("gatefield-%s", h.Hostname))
	}
	opts.SetAutoReconnect(true)
	opts.SetMaxReconnectInterval(30 * time.Second)
	opts.SetKeepAlive(60 * time.Second)
	opts.SetWill(p.topic(TopicState), `{"state":"offline"}`, 1, true)

	if cfg.UseTLS {
		opts.SetTLSConfig(&tls.Config{MinVersion: tls.VersionTLS12})
	}

	opts.SetOnConnectHandler(func(mqtt.Client) {
		p.logger.Info().Msg("MQTT connected")
	})
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		p.logger.Warn().Err(err).Msg("MQTT connection lost")
	})

	p.client = mqtt.NewClient(opts)
	return p, nil
}

// Start connects to the broker and blocks until ctx is cancelled.
func (p *Publisher) Start(ctx context.Context) error {
	p.logger.Info().Str("broker", p.cfg.BrokerURL).Int("port", p.cfg.Port).Msg("connecting to MQTT broker")

	token := p.client.Connect()
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("MQTT connect failed: %w", token.Error())
	}

	<-ctx.Done()

	p.publish(TopicState, true, map[string]interface{}{"state": "offline"})
	p.client.Disconnect(2000)
	p.logger.Info().Msg("MQTT disconnected")
	return nil
}

// Attach subscribes the publisher to lifecycle events on bus.
func (p *Publisher) Attach(bus *events.EventBus) {
	bus.Subscribe(events.EventStateChanged, "mqtt", func(ctx context.Context, e events.Event) error {
		if s, ok := e.Payload.(events.StateChangedPayload); ok {
			p.publish(TopicState, true, map[string]interface{}{"state": s.To, "from": s.From})
		}
		return nil
	})

	session := func(ctx context.Context, e events.Event) error {
		p.publish(TopicSession, false, map[string]interface{}{"event": e.Type, "data": e.Payload})
		return nil
	}
	bus.Subscribe(events.EventEnteredGame, "mqtt", session)
	bus.Subscribe(events.EventSessionUpdate, "mqtt", session)
	bus.Subscribe(events.EventDisconnected, "mqtt", session)

	bus.Subscribe(events.EventConnectError, "mqtt", func(ctx context.Context, e events.Event) error {
		if ce, ok := e.Payload.(events.ConnectErrorPayload); ok {
			p.publish(TopicError, false, map[string]interface{}{
				"event": e.Type,
				"stage": ce.Stage,
				"error": errString(ce.Err),
			})
		}
		return nil
	})
	bus.Subscribe(events.EventProtocolError, "mqtt", func(ctx context.Context, e events.Event) error {
		if pe, ok := e.Payload.(events.ProtocolErrorPayload); ok {
			p.publish(TopicError, false, map[string]interface{}{
				"event": e.Type,
				"kind":  pe.Kind.String(),
				"error": errString(pe.Err),
			})
		}
		return nil
	})
}

func (p *Publisher) topic(suffix string) string {
	return p.cfg.TopicPrefix + "/" + suffix
}

// publish never blocks the emitting goroutine on the broker.
func (p *Publisher) publish(suffix string, retained bool, payload map[string]interface{}) {
	if !p.client.IsConnected() {
		return
	}

	msg := make(map[string]interface{}, len(p.metadata)+len(payload)+1)
	for k, v := range p.metadata {
		msg[k] = v
	}
	for k, v := range payload {
		msg[k] = v
	}
	msg["timestamp"] = time.Now().UTC().Format(time.RFC3339Nano)

	data, err := json.Marshal(msg)
	if err != nil {
		p.logger.Warn().Err(err).Str("topic", suffix).Msg("failed to marshal MQTT message")
		return
	}

	topic := p.topic(suffix)
	token := p.client.Publish(topic, 1, retained, data)
	go func() {
		if token.WaitTimeout(10*time.Second) && token.Error() != nil {
			p.logger.Warn().Err(token.Error()).Str("topic", topic).Msg("MQTT publish failed")
		}
	}()
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
