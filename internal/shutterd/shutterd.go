package shutterd

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/wheelibin/shutters/internal/constants"
	"github.com/wheelibin/shutters/internal/models"
	"github.com/wheelibin/shutters/internal/schedule"
)

type ruleSource interface {
	Schedule(ctx context.Context) (map[string]models.EncodedRule, error)
}

type planner interface {
	BuildPlan(schedule map[string]models.EncodedRule, now time.Time, from time.Time) *schedule.Plan
}

type firer interface {
	Fire(ctx context.Context, entries []schedule.Entry) int
}

type Shutterd struct {
	logger  *log.Logger
	rules   ruleSource
	planner planner
	firer   firer

	plan  *schedule.Plan
	dirty bool
	// last tick that handed out due entries
	handled time.Time
	wg      sync.WaitGroup
}

func NewShutterd(logger *log.Logger, rules ruleSource, planner planner, firer firer) *Shutterd {
	return &Shutterd{
		logger:  logger,
		rules:   rules,
		planner: planner,
		firer:   firer,
		dirty:   true,
	}
}

// Run is the main loop: rule changes mark the plan stale, every tick rebuilds
// a stale or outdated plan and fires what is due.
func (s *Shutterd) Run(ctx context.Context, changes <-chan models.RuleChange) {
	s.logger.Debug("Shutterd.Run")
	defer s.wg.Wait()

	// plan straight away, then tick on the minute
	now := time.Now()
	s.Tick(ctx, now)

	updateTimer := time.NewTimer(time.Until(nextMinute(now)))
	defer updateTimer.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Shutterd.Run: stop signal received")
			return

		case change := <-changes:
			s.logger.Debug("Shutterd.Run: rule change received", "type", change.Type, "id", change.ID)
			s.MarkStale()

		case t := <-updateTimer.C:
			s.Tick(ctx, t)
			updateTimer.Reset(time.Until(nextMinute(t)))
		}
	}
}

// Tick fires due entries in the background, transmissions are spaced out and
// take a while.
func (s *Shutterd) Tick(ctx context.Context, now time.Time) {
	if s.dirty || s.plan == nil || !s.plan.SameDay(now) {
		if err := s.replan(ctx, now); err != nil {
			s.logger.Error("unable to build today's plan", "err", err)
		}
	}
	if s.plan == nil {
		return
	}

	due := s.plan.Due(now)
	s.handled = now
	if len(due) == 0 {
		return
	}
	s.logger.Info("Firing schedules", "count", len(due), "at", now.Format(constants.ClockFormat))

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if failed := s.firer.Fire(ctx, due); failed > 0 {
			s.logger.Warn("some shutter commands failed", "failed", failed)
		}
	}()
}

// MarkStale makes the next tick rebuild the plan.
func (s *Shutterd) MarkStale() {
	s.dirty = true
}

// Plan is the current plan, nil until the first successful build.
func (s *Shutterd) Plan() *schedule.Plan {
	return s.plan
}

// Wait blocks until background firing has finished.
func (s *Shutterd) Wait() {
	s.wg.Wait()
}

func (s *Shutterd) replan(ctx context.Context, now time.Time) error {
	rules, err := s.rules.Schedule(ctx)
	if err != nil {
		return err
	}
	s.plan = s.planner.BuildPlan(rules, now, s.pendingFrom(now))
	s.dirty = false
	s.logger.Info("Plan updated", "slots", s.plan.Slots())
	return nil
}

// pendingFrom is the first minute no tick has handled yet, never before the
// start of now's day. Before the first tick only later minutes are pending.
func (s *Shutterd) pendingFrom(now time.Time) time.Time {
	if s.handled.IsZero() {
		return nextMinute(now)
	}
	from := nextMinute(s.handled)
	if day := startOfDay(now); from.Before(day) {
		return day
	}
	return from
}

func nextMinute(t time.Time) time.Time {
	return startOfMinute(t).Add(time.Minute)
}

func startOfMinute(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
