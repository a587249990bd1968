// xcflavor inspect
package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/qobs-build/xcflavor/internal/msg"
	"github.com/qobs-build/xcflavor/internal/pbxproj"
	"github.com/spf13/cobra"
)

var flagTarget string

func printTargets(w io.Writer, targets []pbxproj.Target) {
	for _, t := range targets {
		fmt.Fprintf(w, "%s %s\n", color.HiCyanString("Target"), t.Name)
		for _, cfg := range t.Configurations {
			base := cfg.BaseConfiguration
			if base == "" {
				base = color.YellowString("none")
			}
			fmt.Fprintf(w, "  %-24s %s\n", cfg.Name, base)
		}
	}
}

func doInspect(cmd *cobra.Command, args []string) {
	s := loadSettings()

	project, err := pbxproj.Load(s.ProjectPath())
	if err != nil {
		msg.Fatal("%v", err)
	}
	targets, err := project.Inspect()
	if err != nil {
		msg.Fatal("%v", err)
	}

	if flagTarget != "" {
		t, ok := pbxproj.FindTarget(targets, flagTarget)
		if !ok {
			msg.Fatal("target %q not found in %s", flagTarget, project.Path)
		}
		targets = []pbxproj.Target{t}
	}
	printTargets(msg.Output, targets)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "List build configurations and their base xcconfig files",
	Args:  cobra.NoArgs,
	Run:   doInspect,
}

func init() {
	// xcflavor inspect subcommand
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVarP(&flagTarget, "target", "t", "", "Only show this target")
}
