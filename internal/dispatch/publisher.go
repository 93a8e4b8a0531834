package dispatch

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/nats-io/nats.go"
)

// NatsPublisher hands shutter commands to the radio bridge over NATS.
type NatsPublisher struct {
	nc     *nats.Conn
	logger *log.Logger
}

func NewNatsPublisher(logger *log.Logger, natsURL string) (*NatsPublisher, error) {
	nc, err := nats.Connect(natsURL, nats.Name("shutterd"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	logger.Info("Connected to NATS", "url", natsURL)

	return &NatsPublisher{nc: nc, logger: logger}, nil
}

func (p *NatsPublisher) Publish(subject string, data []byte) error {
	if err := p.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}
	return nil
}

func (p *NatsPublisher) Close() {
	if p.nc != nil {
		p.nc.Close()
	}
}

// LogPublisher only logs, it is used when no NATS server is configured.
type LogPublisher struct {
	logger *log.Logger
}

func NewLogPublisher(logger *log.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(subject string, data []byte) error {
	p.logger.Info("dry run, not sent", "subject", subject, "payload", string(data))
	return nil
}
