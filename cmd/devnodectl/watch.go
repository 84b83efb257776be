package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var watchCount int

func init() {
	cmd := newWatchCmd()
	cmd.Flags().IntVar(&watchCount, "count", 0, "Exit after this many events (0 waits for interrupt)")
	rootCmd.AddCommand(cmd)
}

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <class>",
		Short: "Print interface arrivals and removals",
		Long: `The watch command registers for interface notifications of a class and
prints each arrival and removal until interrupted.

Example:
  devnodectl watch xnacomposite
  devnodectl watch usb --count 1 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runWatch(ctx, args)
		},
	}
	return cmd
}

func runWatch(ctx context.Context, args []string) error {
	class, err := classes.Resolve(args[0])
	if err != nil {
		return err
	}

	l := newListener()
	defer l.Close()
	events, cancel := l.Subscribe()
	defer cancel()

	if err := l.Start(class); err != nil {
		return fmt.Errorf("failed to watch %s: %w", classes.Name(class), err)
	}
	printVerbose("Watching %s\n", classes.Name(class))

	seen := 0
	for watchCount == 0 || seen < watchCount {
		select {
		case <-ctx.Done():
			return l.Stop()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			seen++
			if jsonOut {
				if err := printJSON(map[string]interface{}{
					"kind":  ev.Kind.String(),
					"path":  ev.Path,
					"class": "{" + ev.Class.String() + "}",
				}); err != nil {
					return err
				}
				continue
			}
			printInfo("%-8s %s\n", ev.Kind, ev.Path)
		}
	}
	return l.Stop()
}
