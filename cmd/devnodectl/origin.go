package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/pnpkit/pkg/devnode"
)

var (
	originExclude []string
	originChain   bool
)

func init() {
	cmd := newOriginCmd()
	cmd.Flags().StringSliceVar(&originExclude, "exclude-prefix", nil,
		"Instance id prefix that stops the walk with a negative answer (repeatable)")
	cmd.Flags().BoolVar(&originChain, "chain", false, "Print the parent chain")
	addModeFlag(cmd)
	rootCmd.AddCommand(cmd)
}

func newOriginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "origin <id>",
		Short: "Report whether a device was enumerated by software",
		Long: `The origin command walks a node's parents up to the tree root and reports
whether the topmost ancestor is a software-enumerated bus (ROOT\SYSTEM or
ROOT\USB), as used by virtual controller drivers.

Example:
  devnodectl origin "USB\VID_045E&PID_028E\1"
  devnodectl origin "HID\VID_045E&PID_028E\2" --chain
  devnodectl origin "USB\VID_045E&PID_028E\1" --exclude-prefix "ROOT\USB\0001"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrigin(args)
		},
	}
	return cmd
}

func runOrigin(args []string) error {
	n, err := resolveNode(args[0])
	if err != nil {
		return err
	}

	var exclude devnode.ExcludeFunc
	if len(originExclude) > 0 {
		exclude = devnode.ExcludePrefix(originExclude...)
	}
	virtual, err := n.IsVirtualOrigin(exclude)
	if err != nil {
		return fmt.Errorf("failed to classify origin: %w", err)
	}

	var chain []string
	if originChain {
		nodes, err := n.Ancestors()
		if err != nil {
			return fmt.Errorf("failed to walk parents: %w", err)
		}
		for _, a := range nodes {
			chain = append(chain, a.InstanceID())
		}
	}

	if jsonOut {
		result := map[string]interface{}{
			"device":  n.DeviceID(),
			"virtual": virtual,
		}
		if originChain {
			result["chain"] = chain
		}
		return printJSON(result)
	}

	if originChain {
		for i, id := range chain {
			printInfo("%*s%s\n", i*2, "", id)
		}
	}
	if virtual {
		printInfo("%s: virtual\n", n.DeviceID())
	} else {
		printInfo("%s: physical\n", n.DeviceID())
	}
	return nil
}
