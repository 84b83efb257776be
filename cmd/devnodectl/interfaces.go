package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var interfacesAll bool

func init() {
	cmd := newInterfacesCmd()
	cmd.Flags().BoolVar(&interfacesAll, "all", false, "Include interfaces of devices that are not present")
	rootCmd.AddCommand(cmd)
}

func newInterfacesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interfaces <class>",
		Short: "List device interfaces of a class",
		Long: `The interfaces command lists interface paths registered for a class. The
class is an alias (usb, hid, xnacomposite, xboxcomposite, or one from
--classes) or a GUID.

Example:
  devnodectl interfaces xnacomposite
  devnodectl interfaces "{4d1e55b2-f16f-11cf-88cb-001111000030}" --all`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInterfaces(args)
		},
	}
	return cmd
}

func runInterfaces(args []string) error {
	class, err := classes.Resolve(args[0])
	if err != nil {
		return err
	}
	printVerbose("Listing interfaces of %s\n", classes.Name(class))

	paths, err := newLocator().Interfaces(class, !interfacesAll)
	if err != nil {
		return fmt.Errorf("failed to list interfaces: %w", err)
	}

	if jsonOut {
		if paths == nil {
			paths = []string{}
		}
		return printJSON(map[string]interface{}{
			"class":      "{" + class.String() + "}",
			"interfaces": paths,
		})
	}
	for _, p := range paths {
		printInfo("%s\n", p)
	}
	printVerbose("%d interface(s)\n", len(paths))
	return nil
}
