package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var getShowType bool

func init() {
	cmd := newGetCmd()
	cmd.Flags().BoolVar(&getShowType, "type", false, "Show type information")
	addModeFlag(cmd)
	rootCmd.AddCommand(cmd)
}

func newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <id> <key>",
		Short: "Read a device property",
		Long: `The get command reads one property of a device node. Keys are given by
well-known name or as "{fmtid} pid:kind".

Example:
  devnodectl get "USB\VID_045E&PID_028E\1" FriendlyName
  devnodectl get "USB\VID_045E&PID_028E\1" HardwareIds --type
  devnodectl get "USB\VID_045E&PID_028E\1" "{540b947e-8b40-45bc-a8a2-6a0b894cbda2} 4:UInt32"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(args)
		},
	}
	return cmd
}

func runGet(args []string) error {
	key, err := parseKey(args[1])
	if err != nil {
		return err
	}
	kind, ok := key.Kind()
	if !ok {
		return fmt.Errorf("property %s has unsupported type %s", args[1], key.Type)
	}

	n, err := resolveNode(args[0])
	if err != nil {
		return err
	}
	v, err := n.PropertyAs(key, kind)
	if err != nil {
		return fmt.Errorf("failed to get property: %w", err)
	}

	if jsonOut {
		result := map[string]interface{}{
			"device": n.DeviceID(),
			"key":    key.String(),
			"type":   v.Kind().String(),
			"set":    !v.IsAbsent(),
			"value":  v.Interface(),
		}
		return printJSON(result)
	}

	if v.IsAbsent() {
		printInfo("%s is not set\n", args[1])
		return nil
	}
	if getShowType {
		printInfo("(%s) ", v.Kind())
	}
	printInfo("%s\n", v)
	return nil
}
