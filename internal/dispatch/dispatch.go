// Package dispatch turns planned and manual shutter commands into messages for
// the radio bridge.
package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/wheelibin/shutters/internal/concurrency"
	"github.com/wheelibin/shutters/internal/constants"
	"github.com/wheelibin/shutters/internal/models"
	"github.com/wheelibin/shutters/internal/repos"
	"github.com/wheelibin/shutters/internal/rule"
	"github.com/wheelibin/shutters/internal/schedule"
)

const (
	PositionClosed = 0
	PositionOpen   = 100
)

type publisher interface {
	Publish(subject string, data []byte) error
}

type positionStore interface {
	Position(id string) (int, error)
	SetPosition(id string, position int) error
}

type move struct {
	ruleID    string
	shutterID string
	action    rule.Action
}

type Dispatcher struct {
	logger     *log.Logger
	publisher  publisher
	positions  positionStore
	sendRepeat int
	spacing    time.Duration

	// one radio, one transmission at a time
	mu sync.Mutex
}

func NewDispatcher(logger *log.Logger, publisher publisher, positions positionStore, sendRepeat int, spacing time.Duration) *Dispatcher {
	if sendRepeat < 1 {
		sendRepeat = constants.DefaultSendRepeat
	}
	return &Dispatcher{
		logger:     logger,
		publisher:  publisher,
		positions:  positions,
		sendRepeat: sendRepeat,
		spacing:    spacing,
	}
}

// Fire sends every due plan entry to each of its shutters. It returns the
// number of transmissions that failed.
func (d *Dispatcher) Fire(ctx context.Context, entries []schedule.Entry) int {
	moves := []move{}
	for _, entry := range entries {
		for _, shutterID := range entry.ShutterIDs {
			moves = append(moves, d.expand(move{ruleID: entry.RuleID, shutterID: shutterID, action: entry.Action})...)
		}
	}
	if len(moves) == 0 {
		return 0
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	worker := concurrency.NewThrottledWorker(d.logger, d.spacing, d.send)
	return worker.Run(ctx, moves)
}

// Command moves a shutter straight away: "up", "down" or "stop".
func (d *Dispatcher) Command(ctx context.Context, shutterID string, command string) error {
	action := rule.DecodeAction(command)
	if action == nil || command != rule.EncodeAction(action) {
		return fmt.Errorf("unknown shutter command %q", command)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	return d.send(ctx, move{shutterID: shutterID, action: action})
}

// expand repeats full moves sendRepeat times and drops partial moves the
// shutter has already reached.
func (d *Dispatcher) expand(m move) []move {
	switch action := m.action.(type) {
	case rule.Up:
		if isPartial(action.Percent) {
			if d.reached(m.shutterID, func(position int) bool { return position >= action.Percent }) {
				d.logger.Warn("Send action canceled, shutter already at or above requested position", "shutter", m.shutterID, "action", rule.EncodeAction(action))
				return nil
			}
			return []move{m}
		}
		return d.repeat(m)
	case rule.Down:
		if isPartial(action.Percent) {
			if d.reached(m.shutterID, func(position int) bool { return position <= action.Percent }) {
				d.logger.Warn("Send action canceled, shutter already at or below requested position", "shutter", m.shutterID, "action", rule.EncodeAction(action))
				return nil
			}
			return []move{m}
		}
		return d.repeat(m)
	case rule.Stop:
		return []move{m}
	}
	d.logger.Warn("skipping entry without an action", "rule", m.ruleID, "shutter", m.shutterID)
	return nil
}

func (d *Dispatcher) repeat(m move) []move {
	moves := make([]move, d.sendRepeat)
	for i := range moves {
		moves[i] = m
	}
	return moves
}

// reached is false when the position is unknown, the move is sent.
func (d *Dispatcher) reached(shutterID string, test func(position int) bool) bool {
	position, err := d.positions.Position(shutterID)
	if err != nil {
		if !errors.Is(err, repos.ErrNotFound) {
			d.logger.Error("error reading shutter position", "shutter", shutterID, "err", err)
		}
		return false
	}
	if position == repos.PositionUnknown {
		return false
	}
	return test(position)
}

func (d *Dispatcher) send(ctx context.Context, m move) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cmd := models.ShutterCommand{
		RequestID: uuid.NewString(),
		ShutterID: m.shutterID,
		IssuedAt:  time.Now(),
	}
	position := repos.PositionUnknown
	switch action := m.action.(type) {
	case rule.Up:
		cmd.Action, cmd.Percent = constants.CommandUp, action.Percent
		position = target(action.Percent, PositionOpen)
	case rule.Down:
		cmd.Action, cmd.Percent = constants.CommandDown, action.Percent
		position = target(action.Percent, PositionClosed)
	case rule.Stop:
		cmd.Action = constants.CommandStop
	}

	data, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("error encoding shutter command: %w", err)
	}
	if err := d.publisher.Publish(fmt.Sprintf(constants.ShutterCommandSubject, m.shutterID), data); err != nil {
		return fmt.Errorf("error sending %s to shutter %s: %w", cmd.Action, m.shutterID, err)
	}
	d.logger.Info("Sent action", "action", rule.EncodeAction(m.action), "shutter", m.shutterID, "rule", m.ruleID, "requestId", cmd.RequestID)

	// a stop leaves the shutter somewhere we can't know
	if err := d.positions.SetPosition(m.shutterID, position); err != nil && !errors.Is(err, repos.ErrNotFound) {
		d.logger.Error("error storing shutter position", "shutter", m.shutterID, "err", err)
	}
	return nil
}

func isPartial(percent int) bool {
	return percent > 0 && percent < 100
}

func target(percent int, full int) int {
	if isPartial(percent) {
		return percent
	}
	return full
}
