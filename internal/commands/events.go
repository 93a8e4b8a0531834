package commands

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	sse "github.com/r3labs/sse/v2"
	"github.com/wheelibin/shutters/internal/constants"
	"github.com/wheelibin/shutters/internal/models"
)

// EventConsumer listens to the command service's rule change stream.
type EventConsumer struct {
	logger  *log.Logger
	baseURL string

	client       *sse.Client
	eventChannel chan *sse.Event
}

func NewEventConsumer(logger *log.Logger, baseURL string) *EventConsumer {
	return &EventConsumer{logger: logger, baseURL: baseURL}
}

func (c *EventConsumer) Subscribe(eventChannel chan *sse.Event) error {

	c.eventChannel = eventChannel
	c.client = sse.NewClient(fmt.Sprintf("%s/events", c.baseURL))

	c.client.OnConnect(func(_ *sse.Client) {
		c.logger.Info("Connected to command service, listening for rule changes...")
	})
	c.client.OnDisconnect(func(_ *sse.Client) {
		c.logger.Info("Disconnected from command service")
	})

	if err := c.client.SubscribeChan(constants.EventStreamRules, c.eventChannel); err != nil {
		return fmt.Errorf("error subscribing to rule changes: %w", err)
	}
	return nil
}

func (c *EventConsumer) Unsubscribe() {
	if c.client == nil {
		return
	}
	c.logger.Debug("Unsubscribe events")
	c.client.Unsubscribe(c.eventChannel)
}

// ParseRuleChange reads the payload of a rules stream event.
func ParseRuleChange(event *sse.Event) (models.RuleChange, error) {
	var change models.RuleChange
	if event == nil || len(event.Data) == 0 {
		return change, fmt.Errorf("empty rule change event")
	}
	if err := json.Unmarshal(event.Data, &change); err != nil {
		return change, fmt.Errorf("error parsing rule change event: %w", err)
	}
	return change, nil
}
