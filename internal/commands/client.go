package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-resty/resty/v2"
	"github.com/wheelibin/shutters/internal/constants"
	"github.com/wheelibin/shutters/internal/models"
)

const defaultTimeout = 10 * time.Second

// ErrRejected is returned when the service answered with status ERROR.
var ErrRejected = errors.New("command rejected")

// Client talks to the command service: POST {baseURL}/cmd/{command}.
type Client struct {
	logger  *log.Logger
	client  *resty.Client
	baseURL string
}

func NewClient(logger *log.Logger, baseURL string) *Client {
	client := resty.New().
		SetTimeout(defaultTimeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "shutterctl")
	return &Client{logger: logger, client: client, baseURL: baseURL}
}

func (c *Client) AddSchedule(ctx context.Context, encoded models.EncodedRule) (string, error) {
	result, err := c.send(ctx, constants.CommandAddSchedule, models.CommandRequest{EncodedRule: encoded})
	if err != nil {
		return "", err
	}
	if result.ID == "" {
		return "", fmt.Errorf("error adding schedule: service returned no id")
	}
	return result.ID, nil
}

func (c *Client) EditSchedule(ctx context.Context, id string, encoded models.EncodedRule) error {
	_, err := c.send(ctx, constants.CommandEditSchedule, models.CommandRequest{ID: id, EncodedRule: encoded})
	return err
}

func (c *Client) DeleteSchedule(ctx context.Context, id string) error {
	_, err := c.send(ctx, constants.CommandDeleteSchedule, models.CommandRequest{ID: id})
	return err
}

// SendCommand moves a shutter straight away: up, down or stop.
func (c *Client) SendCommand(ctx context.Context, command string, shutterID string) error {
	switch command {
	case constants.CommandUp, constants.CommandDown, constants.CommandStop:
	default:
		return fmt.Errorf("unknown shutter command %q", command)
	}
	_, err := c.send(ctx, command, models.CommandRequest{Shutter: shutterID})
	return err
}

func (c *Client) GetConfig(ctx context.Context) (*models.ControllerConfig, error) {
	var cfg models.ControllerConfig
	var failure models.CommandResult

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(models.CommandRequest{}).
		SetResult(&cfg).
		SetError(&failure).
		Post(c.commandURL(constants.CommandGetConfig))
	if err != nil {
		return nil, fmt.Errorf("error reading config from command service: %w", err)
	}
	if resp.IsError() {
		return nil, responseError(constants.CommandGetConfig, resp, failure)
	}
	return &cfg, nil
}

func (c *Client) send(ctx context.Context, command string, body models.CommandRequest) (*models.CommandResult, error) {
	c.logger.Debug("sending command", "command", command, "id", body.ID, "shutter", body.Shutter)

	var result models.CommandResult
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&result).
		SetError(&result).
		Post(c.commandURL(command))
	if err != nil {
		return nil, fmt.Errorf("error sending %s: %w", command, err)
	}
	if resp.IsError() {
		return nil, responseError(command, resp, result)
	}
	if result.Status != constants.StatusOK {
		return nil, fmt.Errorf("%w: %s: %s", ErrRejected, command, result.Message)
	}
	return &result, nil
}

func (c *Client) commandURL(command string) string {
	return fmt.Sprintf("%s/cmd/%s", c.baseURL, command)
}

func responseError(command string, resp *resty.Response, result models.CommandResult) error {
	if result.Status == constants.StatusError {
		return fmt.Errorf("%w: %s: %s", ErrRejected, command, result.Message)
	}
	return fmt.Errorf("error sending %s: unexpected status %d", command, resp.StatusCode())
}
