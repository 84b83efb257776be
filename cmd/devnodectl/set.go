package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/pnpkit/pkg/devprop"
)

func init() {
	cmd := newSetCmd()
	addModeFlag(cmd)
	rootCmd.AddCommand(cmd)
}

func newSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <id> <key> <value>",
		Short: "Write a device property",
		Long: `The set command writes one property of a device node. The value is parsed
according to the key's declared type; lists are separated by semicolons and
binary values are hex.

Example:
  devnodectl set "USB\VID_045E&PID_028E\1" FriendlyName "Player 1"
  devnodectl set "USB\VID_045E&PID_028E\1" LowerFilters "xusb22;kbdclass"`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(args)
		},
	}
	return cmd
}

func runSet(args []string) error {
	key, err := parseKey(args[1])
	if err != nil {
		return err
	}
	kind, ok := key.Kind()
	if !ok {
		return fmt.Errorf("property %s has unsupported type %s", args[1], key.Type)
	}
	v, err := devprop.ParseValue(kind, args[2])
	if err != nil {
		return fmt.Errorf("failed to parse value: %w", err)
	}

	n, err := resolveNode(args[0])
	if err != nil {
		return err
	}
	if err := n.SetProperty(key, v); err != nil {
		return fmt.Errorf("failed to set property: %w", err)
	}

	if jsonOut {
		result := map[string]interface{}{
			"device":  n.DeviceID(),
			"key":     key.String(),
			"type":    kind.String(),
			"success": true,
		}
		return printJSON(result)
	}
	printInfo("Set %s on %s (%s)\n", args[1], n.DeviceID(), kind)
	return nil
}
