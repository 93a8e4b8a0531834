package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wheelibin/shutters/internal/constants"
	"github.com/wheelibin/shutters/internal/rule"
	"github.com/wheelibin/shutters/internal/shutters"
	"github.com/wheelibin/shutters/internal/store"
)

func addRuleFlags(cmd *cobra.Command) {
	cmd.Flags().String("time", "", `"HH:MM", "sunrise", "sunset+15", "sunrise-30"`)
	cmd.Flags().String("days", "", `"all", "weekend", "weekdays" or a list like "Mon,Wed,Fri"`)
	cmd.Flags().String("date", "", "run once on this date (YYYY/MM/DD) instead of on days")
	cmd.Flags().String("action", "", `"up", "down", "stop", or "up40" / "down25" for a partial move`)
	cmd.Flags().StringSlice("shutters", nil, "shutter ids or names")
	cmd.Flags().Bool("paused", false, "save the schedule paused")
}

// ruleFromFlags overlays the flags that were set on base.
func ruleFromFlags(cmd *cobra.Command, base rule.ScheduleRule, registry *shutters.Registry) (rule.ScheduleRule, error) {
	r := base
	flags := cmd.Flags()

	if flags.Changed("time") {
		value, _ := flags.GetString("time")
		r.TimeTrigger = rule.ParseTimeValue(strings.TrimSpace(value))
	}

	if flags.Changed("days") && flags.Changed("date") {
		return r, fmt.Errorf("use either --days or --date")
	}
	if flags.Changed("days") {
		value, _ := flags.GetString("days")
		days, err := parseDays(value)
		if err != nil {
			return r, err
		}
		r.RepeatPattern = rule.Weekdays{Days: days}
	}
	if flags.Changed("date") {
		value, _ := flags.GetString("date")
		r.RepeatPattern = rule.Once{Date: strings.TrimSpace(value)}
	}

	if flags.Changed("action") {
		value, _ := flags.GetString("action")
		action, err := parseAction(value)
		if err != nil {
			return r, err
		}
		r.Action = action
	}

	if flags.Changed("shutters") {
		values, _ := flags.GetStringSlice("shutters")
		ids, err := resolveShutters(registry, values)
		if err != nil {
			return r, err
		}
		r.TargetIDs = ids
	}

	if flags.Changed("paused") {
		paused, _ := flags.GetBool("paused")
		r.Active = !paused
	}

	return r, nil
}

func parseDays(value string) (rule.DaySet, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "all", "everyday":
		return rule.AllWeek, nil
	case "weekend", "weekends":
		return rule.Weekend, nil
	case "weekdays", "week":
		return rule.WorkingWeek, nil
	}

	tokens := strings.Split(value, ",")
	for i, token := range tokens {
		token = strings.TrimSpace(token)
		if len(token) < 3 {
			return rule.NoDays, fmt.Errorf("unknown day %q", token)
		}
		tokens[i] = strings.ToUpper(token[:1]) + strings.ToLower(token[1:3])
	}
	days := rule.DaysFromTokens(tokens)
	if len(days.Tokens()) != len(tokens) {
		return rule.NoDays, fmt.Errorf("unknown or repeated day in %q", value)
	}
	return days, nil
}

// parseAction only accepts what it can give back unchanged.
func parseAction(value string) (rule.Action, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	action := rule.DecodeAction(value)
	if action == nil || rule.EncodeAction(action) != value {
		return nil, fmt.Errorf("unknown action %q", value)
	}
	return action, nil
}

// resolveShutters accepts ids or display names.
func resolveShutters(registry *shutters.Registry, values []string) ([]string, error) {
	ids := []string{}
	for _, value := range values {
		value = strings.TrimSpace(value)
		if _, ok := registry.ShutterName(value); ok {
			ids = append(ids, value)
			continue
		}
		if id, ok := registry.IDForName(value); ok {
			ids = append(ids, id)
			continue
		}
		return nil, fmt.Errorf("unknown shutter %q", value)
	}
	return ids, nil
}

// editedRule overlays the given flags on a stored rule. Fields without a flag
// keep their stored value as is.
func editedRule(cmd *cobra.Command, entry store.Entry, registry *shutters.Registry) (rule.ScheduleRule, error) {
	return ruleFromFlags(cmd, entry.Rule(), registry)
}

func newRule() rule.ScheduleRule {
	return rule.ScheduleRule{
		Active:        true,
		RepeatPattern: rule.Weekdays{Days: rule.AllWeek},
	}
}

func isManualCommand(command string) bool {
	switch command {
	case constants.CommandUp, constants.CommandDown, constants.CommandStop:
		return true
	}
	return false
}
