package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/pnpkit/pkg/devnode"
)

// nodeAction is a command that applies one operation to a resolved node.
type nodeAction struct {
	use   string
	short string
	long  string
	verb  string
	do    func(*devnode.Node) error
}

var nodeActions = []nodeAction{
	{
		use:   "restart <id>",
		short: "Restart a device node",
		long: `The restart command removes the node's subtree without restarting it and
then sets the node up again, making its driver stack reload.

Example:
  devnodectl restart "USB\VID_045E&PID_028E\1"`,
		verb: "Restarted",
		do:   (*devnode.Node).Restart,
	},
	{
		use:   "remove <id>",
		short: "Remove a device node",
		long: `The remove command removes the node's subtree. The node stays known and
reappears on the next hardware rescan.

Example:
  devnodectl remove "ROOT\SYSTEM\0003"`,
		verb: "Removed",
		do:   (*devnode.Node).Remove,
	},
	{
		use:   "disable <id>",
		short: "Disable a device node",
		verb:  "Disabled",
		do:    (*devnode.Node).Disable,
	},
	{
		use:   "enable <id>",
		short: "Enable a device node",
		verb:  "Enabled",
		do:    (*devnode.Node).Enable,
	},
}

func init() {
	for _, a := range nodeActions {
		rootCmd.AddCommand(newActionCmd(a))
	}
}

func newActionCmd(a nodeAction) *cobra.Command {
	cmd := &cobra.Command{
		Use:   a.use,
		Short: a.short,
		Long:  a.long,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(a, args)
		},
	}
	addModeFlag(cmd)
	return cmd
}

func runAction(a nodeAction, args []string) error {
	n, err := resolveNode(args[0])
	if err != nil {
		return err
	}
	if err := a.do(n); err != nil {
		return fmt.Errorf("%s %s: %w", cmdName(a), n.DeviceID(), err)
	}
	if jsonOut {
		return printJSON(map[string]interface{}{
			"device":  n.DeviceID(),
			"action":  cmdName(a),
			"success": true,
		})
	}
	printInfo("%s %s\n", a.verb, n.DeviceID())
	return nil
}

func cmdName(a nodeAction) string {
	name, _, _ := strings.Cut(a.use, " ")
	return name
}
