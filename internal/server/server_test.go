package server_test

import (
	"context"
	"database/sql"
	"errors"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wheelibin/shutters/internal/commands"
	"github.com/wheelibin/shutters/internal/models"
	"github.com/wheelibin/shutters/internal/repos"
	"github.com/wheelibin/shutters/internal/rule"
	"github.com/wheelibin/shutters/internal/server"
	"github.com/wheelibin/shutters/internal/store"
	"github.com/wheelibin/shutters/mocks"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{Level: log.FatalLevel})

type fixture struct {
	client    *commands.Client
	commander *mocks.MockServerShutterCommander
	changes   <-chan models.RuleChange
}

func setup(t *testing.T) fixture {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	ruleRepo, err := repos.NewRuleRepo(logger, db)
	require.NoError(t, err)
	shutterRepo, err := repos.NewShutterRepo(logger, db)
	require.NoError(t, err)
	require.NoError(t, shutterRepo.Upsert([]models.Shutter{
		{ID: "S1", Name: "Kitchen", Duration: 18},
		{ID: "S2", Name: "Office", Duration: 20},
	}))

	commander := mocks.NewMockServerShutterCommander(t)
	s := server.NewServer(logger, ruleRepo, shutterRepo, commander, 48.85, 2.35)
	changes := s.Changes()

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	return fixture{
		client:    commands.NewClient(logger, ts.URL),
		commander: commander,
		changes:   changes,
	}
}

func sunsetRule() models.EncodedRule {
	return rule.Encode(rule.ScheduleRule{
		Active:        true,
		TimeTrigger:   rule.Astro{Anchor: rule.Sunset, OffsetMinutes: 15},
		RepeatPattern: rule.Weekdays{Days: rule.AllWeek},
		Action:        rule.Down{},
		TargetIDs:     []string{"S1", "S2"},
	})
}

func Test_ScheduleCommands(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	// add
	id, err := f.client.AddSchedule(ctx, sunsetRule())
	require.NoError(t, err)
	assert.Equal(t, "1", id)
	assert.Equal(t, models.RuleChange{Type: "added", ID: "1"}, <-f.changes)

	cfg, err := f.client.GetConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, 48.85, cfg.Latitude)
	assert.Equal(t, map[string]string{"S1": "Kitchen", "S2": "Office"}, cfg.Shutters)
	assert.Equal(t, 20, cfg.ShutterDurations["S2"])
	assert.Equal(t, map[string]models.EncodedRule{"1": sunsetRule()}, cfg.Schedule)

	// edit
	edited := sunsetRule()
	edited.Active = "paused"
	require.NoError(t, f.client.EditSchedule(ctx, id, edited))
	assert.Equal(t, models.RuleChange{Type: "edited", ID: "1"}, <-f.changes)

	cfg, err = f.client.GetConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, "paused", cfg.Schedule["1"].Active)

	// an edit that changes nothing is accepted without a change event
	require.NoError(t, f.client.EditSchedule(ctx, id, edited))
	assert.Empty(t, f.changes)

	err = f.client.EditSchedule(ctx, "7", edited)
	assert.ErrorIs(t, err, commands.ErrRejected)

	// delete
	require.NoError(t, f.client.DeleteSchedule(ctx, id))
	assert.Equal(t, models.RuleChange{Type: "deleted", ID: "1"}, <-f.changes)

	cfg, err = f.client.GetConfig(ctx)
	require.NoError(t, err)
	assert.Empty(t, cfg.Schedule)

	err = f.client.DeleteSchedule(ctx, id)
	assert.ErrorIs(t, err, commands.ErrRejected)
}

func Test_ScheduleCommands_Rejected(t *testing.T) {

	tests := []struct {
		name   string
		modify func(e *models.EncodedRule)
	}{
		{name: "unknown shutter", modify: func(e *models.EncodedRule) { e.ShutterIds = []string{"S1", "S9"} }},
		{name: "no shutters", modify: func(e *models.EncodedRule) { e.ShutterIds = nil }},
		{name: "unknown action", modify: func(e *models.EncodedRule) { e.ShutterAction = "wave" }},
		{name: "offset out of range", modify: func(e *models.EncodedRule) { e.TimeValue = "sunset+301" }},
		{name: "bad clock", modify: func(e *models.EncodedRule) { e.TimeType, e.TimeValue = "clock", "7 o'clock" }},
		{name: "no days", modify: func(e *models.EncodedRule) { e.RepeatValue = models.DaysValue() }},
		{name: "deleted state", modify: func(e *models.EncodedRule) { e.Active = "deleted" }},
		{name: "comma in date", modify: func(e *models.EncodedRule) {
			e.RepeatType, e.RepeatValue = "once", models.DateValue("24,12")
		}},
	}

	for _, c := range tests {
		t.Run(c.name, func(t *testing.T) {
			f := setup(t)
			encoded := sunsetRule()
			c.modify(&encoded)

			_, err := f.client.AddSchedule(context.Background(), encoded)

			assert.ErrorIs(t, err, commands.ErrRejected)
			assert.Empty(t, f.changes)
		})
	}

}

func Test_ShutterCommands(t *testing.T) {

	t.Run("should hand known shutters to the commander", func(t *testing.T) {
		f := setup(t)
		f.commander.On("Command", mock.Anything, "S1", "up").Return(nil)

		require.NoError(t, f.client.SendCommand(context.Background(), "up", "S1"))
	})

	t.Run("should refuse unknown shutters", func(t *testing.T) {
		f := setup(t)

		err := f.client.SendCommand(context.Background(), "stop", "S9")

		assert.ErrorIs(t, err, commands.ErrRejected)
		f.commander.AssertNotCalled(t, "Command", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should report commander failures", func(t *testing.T) {
		f := setup(t)
		f.commander.On("Command", mock.Anything, "S2", "down").Return(errors.New("radio offline"))

		err := f.client.SendCommand(context.Background(), "down", "S2")

		assert.ErrorContains(t, err, "radio offline")
	})

}

func Test_StoreAgainstServer(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	s := store.NewRuleStore(logger, f.client)

	id, err := s.Add(ctx, rule.Decode("", sunsetRule()))
	require.NoError(t, err)
	<-f.changes

	// the service refuses an unknown shutter, the store reloads from it
	bad := rule.Decode("", sunsetRule())
	bad.TargetIDs = []string{"S9"}
	err = s.Update(ctx, id, bad)
	assert.ErrorIs(t, err, store.ErrCommandFailed)

	entry, ok := s.Get(id)
	require.True(t, ok)
	assert.Equal(t, []string{"S1", "S2"}, entry.Encoded.ShutterIds)
	assert.NotNil(t, s.Config())
}
