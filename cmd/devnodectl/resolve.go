package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/pnpkit/pkg/devnode"
	"github.com/joshuapare/pnpkit/pkg/types"
)

var resolveInterface bool

func init() {
	cmd := newResolveCmd()
	cmd.Flags().BoolVar(&resolveInterface, "interface", false, "Treat the argument as an interface path")
	addModeFlag(cmd)
	rootCmd.AddCommand(cmd)
}

func newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <id>",
		Short: "Resolve a device node",
		Long: `The resolve command locates a device node and prints its identifiers
and status.

Example:
  devnodectl resolve "USB\VID_045E&PID_028E\1"
  devnodectl resolve "ROOT\SYSTEM\0001" --mode phantom
  devnodectl resolve "\\?\USB#VID_045E&PID_028E#1#{a5dcbf10-6530-11d2-901f-00c04fb951ed}" --interface`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(args)
		},
	}
	return cmd
}

type nodeInfo struct {
	InstanceID string `json:"instance_id"`
	DeviceID   string `json:"device_id"`
	Started    bool   `json:"started"`
	Disabled   bool   `json:"disabled"`
	Problem    uint32 `json:"problem"`
	Present    bool   `json:"present"`
}

func runResolve(args []string) error {
	var (
		n   *devnode.Node
		err error
	)
	if resolveInterface {
		mode, perr := types.ParseSearchMode(modeFlag)
		if perr != nil {
			return perr
		}
		printVerbose("Resolving interface %s\n", args[0])
		n, err = newLocator().ResolveByInterfaceID(args[0], mode)
		if err != nil {
			return fmt.Errorf("failed to resolve interface: %w", err)
		}
	} else {
		n, err = resolveNode(args[0])
		if err != nil {
			return err
		}
	}

	info := nodeInfo{InstanceID: n.InstanceID(), DeviceID: n.DeviceID()}
	// A phantom node has no status.
	if st, err := n.Status(); err == nil {
		info.Present = true
		info.Started = st.Started()
		info.Disabled = st.Disabled()
		info.Problem = st.Problem
	}

	if jsonOut {
		return printJSON(info)
	}
	printInfo("Instance ID: %s\n", info.InstanceID)
	printInfo("Device ID:   %s\n", info.DeviceID)
	if !info.Present {
		printInfo("Status:      not present\n")
		return nil
	}
	printInfo("Started:     %t\n", info.Started)
	printInfo("Disabled:    %t\n", info.Disabled)
	if info.Problem != 0 {
		printInfo("Problem:     %d\n", info.Problem)
	}
	return nil
}
