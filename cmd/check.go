// xcflavor check
package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/qobs-build/xcflavor/internal/flavor"
	"github.com/qobs-build/xcflavor/internal/msg"
	"github.com/qobs-build/xcflavor/internal/pbxproj"
	"github.com/spf13/cobra"
)

var stateColors = map[flavor.FileState]*color.Color{
	flavor.StateOK:      color.New(color.FgHiGreen),
	flavor.StateMissing: color.New(color.FgHiRed),
	flavor.StateStale:   color.New(color.FgYellow),
}

func printCheckResult(w io.Writer, result *flavor.CheckResult) {
	for _, f := range result.Files {
		msg.Status(w, f.State.String(), stateColors[f.State], "%s", f.File.Name)
		if f.State == flavor.StateStale {
			fmt.Fprint(&msg.IndentWriter{Indent: "           ", W: w}, f.Diff)
		}
	}
	for _, name := range result.Unmanaged {
		msg.Fwarn(w, "%s is not produced by any configured flavor", name)
	}
}

func doCheck(cmd *cobra.Command, args []string) {
	s := loadSettings()

	result, err := flavor.Check(s)
	if err != nil {
		msg.Fatal("%v", err)
	}
	printCheckResult(msg.Output, result)

	project, err := pbxproj.Load(s.ProjectPath())
	if err != nil {
		msg.Warn("skipping reference check: %v", err)
	} else {
		files := make([]flavor.ConfigFile, len(result.Files))
		for i, f := range result.Files {
			files[i] = f.File
		}
		printReferences(project, files)
	}

	if !result.Clean() {
		msg.Fatal("xcconfig files are out of date, run %s", color.HiCyanString(getProgramName()+" generate"))
	}
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report missing or outdated xcconfig files without writing anything",
	Args:  cobra.NoArgs,
	Run:   doCheck,
}

func init() {
	// xcflavor check subcommand
	rootCmd.AddCommand(checkCmd)
}
