package main

import (
	"fmt"

	sse "github.com/r3labs/sse/v2"
	"github.com/spf13/cobra"

	"github.com/wheelibin/shutters/internal/commands"
	"github.com/wheelibin/shutters/internal/constants"
	"github.com/wheelibin/shutters/internal/describe"
	"github.com/wheelibin/shutters/internal/store"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists every schedule in plain English",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		entries := current.store.List()
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No schedules")
			return nil
		}
		for _, entry := range entries {
			fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n", entry.ID, describe.DescribeEncoded(entry.ID, entry.Encoded, current.registry))
		}
		return nil
	},
}

var describeCmd = &cobra.Command{
	Use:   "describe <id>",
	Short: "Shows one schedule and its stored form",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entry, ok := current.store.Get(args[0])
		if !ok {
			return fmt.Errorf("%w: %s", store.ErrUnknownRule, args[0])
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, describe.Describe(entry.Rule(), current.registry))
		fmt.Fprintf(out, "  timeType=%s timeValue=%s repeatType=%s shutterAction=%s shutterIds=%v\n",
			entry.Encoded.TimeType, entry.Encoded.TimeValue, entry.Encoded.RepeatType, entry.Encoded.ShutterAction, entry.Encoded.ShutterIds)
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Adds a schedule",
	Example: `  shutterctl add --time sunset+15 --days all --action down --shutters Kitchen,Office
  shutterctl add --time 07:30 --days weekdays --action up40 --shutters S1`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		r, err := ruleFromFlags(cmd, newRule(), current.registry)
		if err != nil {
			return err
		}

		ctx, cancel := requestContext(cmd)
		defer cancel()
		id, err := current.store.Add(ctx, r)
		if err != nil {
			return err
		}

		entry, _ := current.store.Get(id)
		fmt.Fprintf(cmd.OutOrStdout(), "Added [%s] %s\n", id, describe.Describe(entry.Rule(), current.registry))
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Changes a schedule, flags that aren't given keep their value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		entry, ok := current.store.Get(id)
		if !ok {
			return fmt.Errorf("%w: %s", store.ErrUnknownRule, id)
		}

		r, err := editedRule(cmd, entry, current.registry)
		if err != nil {
			return err
		}

		ctx, cancel := requestContext(cmd)
		defer cancel()
		if err := current.store.Update(ctx, id, r); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Updated [%s] %s\n", id, describe.Describe(r, current.registry))
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:     "remove <id>",
	Aliases: []string{"rm", "delete"},
	Short:   "Deletes a schedule",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()
		if err := current.store.Remove(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed [%s]\n", args[0])
		return nil
	},
}

var pauseCmd = &cobra.Command{
	Use:   "pause <id>",
	Short: "Pauses a schedule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setActive(cmd, args[0], false)
	},
}

var resumeCmd = &cobra.Command{
	Use:   "resume <id>",
	Short: "Resumes a paused schedule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setActive(cmd, args[0], true)
	},
}

func setActive(cmd *cobra.Command, id string, active bool) error {
	ctx, cancel := requestContext(cmd)
	defer cancel()
	if err := current.store.SetActive(ctx, id, active); err != nil {
		return err
	}
	entry, _ := current.store.Get(id)
	fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n", id, describe.Describe(entry.Rule(), current.registry))
	return nil
}

var moveCmd = &cobra.Command{
	Use:   "move <up|down|stop> <shutter>",
	Short: "Moves a shutter now",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		command := args[0]
		if !isManualCommand(command) {
			return fmt.Errorf("unknown command %q, expected up, down or stop", command)
		}
		ids, err := resolveShutters(current.registry, args[1:])
		if err != nil {
			return err
		}

		ctx, cancel := requestContext(cmd)
		defer cancel()
		if err := current.client.SendCommand(ctx, command, ids[0]); err != nil {
			return err
		}
		name, _ := current.registry.ShutterName(ids[0])
		fmt.Fprintf(cmd.OutOrStdout(), "Sent %s to %q\n", command, name)
		return nil
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Prints schedule changes as they happen",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		consumer := commands.NewEventConsumer(current.logger, current.cfg.ServiceURL)
		events := make(chan *sse.Event)
		if err := consumer.Subscribe(events); err != nil {
			return err
		}
		defer consumer.Unsubscribe()

		out := cmd.OutOrStdout()
		for {
			select {
			case <-cmd.Context().Done():
				return nil
			case event := <-events:
				change, err := commands.ParseRuleChange(event)
				if err != nil {
					current.logger.Warn("ignoring event", "err", err)
					continue
				}
				if change.Type == constants.ChangeTypeDeleted {
					fmt.Fprintf(out, "%s [%s]\n", change.Type, change.ID)
					continue
				}

				ctx, cancel := requestContext(cmd)
				err = current.store.Refresh(ctx)
				cancel()
				if err != nil {
					return err
				}
				entry, ok := current.store.Get(change.ID)
				if !ok {
					continue
				}
				fmt.Fprintf(out, "%s [%s] %s\n", change.Type, change.ID, describe.Describe(entry.Rule(), current.registry))
			}
		}
	},
}

func init() {
	addRuleFlags(addCmd)
	addRuleFlags(editCmd)
}
