// Package store keeps an in memory mirror of the schedule rules held by the
// command service. Every mutation goes to the service first, the mirror only
// changes once the service has acknowledged it.
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"
	"github.com/wheelibin/shutters/internal/models"
	"github.com/wheelibin/shutters/internal/rule"
)

var (
	ErrCommandFailed = errors.New("command service failed")
	ErrUnknownRule   = errors.New("unknown rule")
)

type commandService interface {
	AddSchedule(ctx context.Context, encoded models.EncodedRule) (string, error)
	EditSchedule(ctx context.Context, id string, encoded models.EncodedRule) error
	DeleteSchedule(ctx context.Context, id string) error
	GetConfig(ctx context.Context) (*models.ControllerConfig, error)
}

// Entry is a stored rule as the service knows it.
type Entry struct {
	ID      string
	Encoded models.EncodedRule
}

func (e Entry) Rule() rule.ScheduleRule {
	return rule.Decode(e.ID, e.Encoded)
}

type RuleStore struct {
	logger   *log.Logger
	commands commandService

	mu     sync.RWMutex
	rules  map[string]models.EncodedRule
	order  []string
	config *models.ControllerConfig
}

func NewRuleStore(logger *log.Logger, commands commandService) *RuleStore {
	return &RuleStore{
		logger:   logger,
		commands: commands,
		rules:    map[string]models.EncodedRule{},
	}
}

// Refresh replaces the mirror with the service's current schedule.
func (s *RuleStore) Refresh(ctx context.Context) error {
	cfg, err := s.commands.GetConfig(ctx)
	if err != nil {
		return fmt.Errorf("%w: getConfig: %w", ErrCommandFailed, err)
	}

	rules := make(map[string]models.EncodedRule, len(cfg.Schedule))
	for id, encoded := range cfg.Schedule {
		rules[id] = encoded
	}
	order := lo.Keys(rules)
	sort.Slice(order, func(i, j int) bool { return idLess(order[i], order[j]) })

	s.mu.Lock()
	s.rules = rules
	s.order = order
	s.config = cfg
	s.mu.Unlock()

	s.logger.Debug("rules refreshed", "count", len(order))
	return nil
}

// Add validates and submits a new rule, returning the id the service assigned.
func (s *RuleStore) Add(ctx context.Context, r rule.ScheduleRule) (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}
	encoded := rule.Encode(r)

	id, err := s.commands.AddSchedule(ctx, encoded)
	if err != nil {
		return "", s.failed(ctx, "addSchedule", err)
	}

	s.mu.Lock()
	if _, exists := s.rules[id]; !exists {
		s.order = append(s.order, id)
	}
	s.rules[id] = encoded
	s.mu.Unlock()

	s.logger.Info("rule added", "id", id)
	return id, nil
}

// Update replaces every field of an existing rule.
func (s *RuleStore) Update(ctx context.Context, id string, r rule.ScheduleRule) error {
	if !s.has(id) {
		return fmt.Errorf("%w: %s", ErrUnknownRule, id)
	}
	if err := r.Validate(); err != nil {
		return err
	}
	encoded := rule.Encode(r)

	if err := s.commands.EditSchedule(ctx, id, encoded); err != nil {
		return s.failed(ctx, "editSchedule", err)
	}

	s.mu.Lock()
	s.rules[id] = encoded
	s.mu.Unlock()

	s.logger.Info("rule updated", "id", id)
	return nil
}

// SetActive pauses or resumes a rule without touching its other fields.
func (s *RuleStore) SetActive(ctx context.Context, id string, active bool) error {
	entry, ok := s.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRule, id)
	}
	r := entry.Rule()
	r.Active = active
	return s.Update(ctx, id, r)
}

func (s *RuleStore) Remove(ctx context.Context, id string) error {
	if !s.has(id) {
		return fmt.Errorf("%w: %s", ErrUnknownRule, id)
	}

	if err := s.commands.DeleteSchedule(ctx, id); err != nil {
		return s.failed(ctx, "deleteSchedule", err)
	}

	s.mu.Lock()
	delete(s.rules, id)
	s.order = lo.Without(s.order, id)
	s.mu.Unlock()

	s.logger.Info("rule removed", "id", id)
	return nil
}

func (s *RuleStore) Get(id string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	encoded, ok := s.rules[id]
	if !ok {
		return Entry{}, false
	}
	return Entry{ID: id, Encoded: encoded}, true
}

// List returns the rules in display order.
func (s *RuleStore) List() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lo.Map(s.order, func(id string, _ int) Entry {
		return Entry{ID: id, Encoded: s.rules[id]}
	})
}

// Config is the controller config from the last refresh, nil before the first.
func (s *RuleStore) Config() *models.ControllerConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

func (s *RuleStore) has(id string) bool {
	_, ok := s.Get(id)
	return ok
}

// failed reloads the mirror after a rejected mutation, the service is the
// source of truth from here on.
func (s *RuleStore) failed(ctx context.Context, command string, err error) error {
	s.logger.Warn("command failed, reloading rules", "command", command, "err", err)
	if refreshErr := s.Refresh(ctx); refreshErr != nil {
		s.logger.Error("reload after failure", "err", refreshErr)
	}
	return fmt.Errorf("%w: %s: %w", ErrCommandFailed, command, err)
}

// idLess orders integer ids numerically and falls back to string order.
func idLess(a, b string) bool {
	ai, aErr := strconv.Atoi(a)
	bi, bErr := strconv.Atoi(b)
	if aErr == nil && bErr == nil {
		return ai < bi
	}
	return a < b
}
