// xcflavor, xcflavor generate
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/qobs-build/xcflavor/internal/flavor"
	"github.com/qobs-build/xcflavor/internal/msg"
	"github.com/qobs-build/xcflavor/internal/pbxproj"
	"github.com/qobs-build/xcflavor/internal/workspace"
	"github.com/spf13/cobra"
)

var (
	flagRoot    string
	flagConfig  string
	flagFlavors []string
	flagBaseDir string
	flagProject string
	flagMode    EnumValue = NewEnumValue("all", map[string]string{
		"all":     "Debug and Release (default)",
		"debug":   "Only Debug",
		"release": "Only Release",
	})
)

// applyOverrides replaces settings values with the ones given on the command line
func applyOverrides(s *flavor.Settings) {
	if len(flagFlavors) > 0 {
		s.Flavors = flagFlavors
	}
	if flagBaseDir != "" {
		s.BaseDir = flagBaseDir
	}
	if flagProject != "" {
		s.Project = flagProject
	}
	switch flagMode.Value() {
	case "debug":
		s.Modes = []flavor.Mode{flavor.Debug}
	case "release":
		s.Modes = []flavor.Mode{flavor.Release}
	}
}

// resolveRoot returns the app directory. An explicit --root is taken as given; otherwise the
// current directory is used when it looks like an app, and the enclosing git worktree root when not.
func resolveRoot(explicit bool) (string, error) {
	if explicit {
		return filepath.Abs(flagRoot)
	}
	return workspace.FindRoot(flagRoot, "ios", flavor.ConfigFilename)
}

func loadSettings() *flavor.Settings {
	root, err := resolveRoot(rootCmd.PersistentFlags().Changed("root"))
	if err != nil {
		msg.Fatal("%v", err)
	}
	s, err := flavor.LoadSettings(root, flagConfig)
	if err != nil {
		msg.Fatal("%v", err)
	}
	applyOverrides(s)
	return s
}

func generate(s *flavor.Settings) []flavor.ConfigFile {
	files, err := flavor.Plan(s)
	if err != nil {
		msg.Fatal("%v", err)
	}
	if err := flavor.Write(files, msg.Output); err != nil {
		msg.Fatal("%v", err)
	}
	return files
}

// printReferences reports which generated files the Xcode project already references
func printReferences(project *pbxproj.Project, files []flavor.ConfigFile) {
	report := project.UpdateReferences(flavor.Names(files))
	for _, ref := range report.References {
		if ref.Present {
			msg.Info("%s already referenced by %s", ref.Name, project.Path)
		}
	}
	if missing := report.Missing(); len(missing) > 0 {
		msg.Warn("%d file(s) not referenced by %s, add them to the Flutter group in Xcode:", len(missing), project.Path)
		for _, name := range missing {
			fmt.Fprintf(msg.Output, "    %s\n", name)
		}
	}
}

func doGenerateAndLink(cmd *cobra.Command, args []string) {
	s := loadSettings()
	files := generate(s)

	project, err := pbxproj.Load(s.ProjectPath())
	if err != nil {
		msg.Fatal("%v", err)
	}
	printReferences(project, files)
}

func doGenerate(cmd *cobra.Command, args []string) {
	generate(loadSettings())
}

var rootCmd = &cobra.Command{
	Use:   "xcflavor",
	Short: "Generate per-flavor xcconfig files for a Flutter iOS app",
	Long: `Generate <flavor><Mode>.xcconfig files for every flavor and build mode,
then check that the Xcode project references them.`,
	Args: cobra.NoArgs,
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Only write the xcconfig files",
	Args:  cobra.NoArgs,
	Run:   doGenerate,
}

func init() {
	// bound here rather than in the literal to avoid an initialization cycle through loadSettings
	rootCmd.Run = doGenerateAndLink

	rootCmd.PersistentFlags().StringVarP(&flagRoot, "root", "C", ".", "App directory, used as given. When unset, the current directory if it has ios/ or "+flavor.ConfigFilename+", else the git worktree root")
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Settings file (default <root>/"+flavor.ConfigFilename+")")
	rootCmd.PersistentFlags().StringSliceVarP(&flagFlavors, "flavor", "f", nil, "Flavors to generate, replaces the configured list")
	rootCmd.PersistentFlags().StringVar(&flagBaseDir, "base-dir", "", "Directory the xcconfig files are written to (default "+flavor.DefaultBaseDir+")")
	rootCmd.PersistentFlags().StringVar(&flagProject, "project", "", "Xcode project file (default "+flavor.DefaultProject+")")
	rootCmd.PersistentFlags().VarP(&flagMode, "mode", "m", "Build modes to generate, one of "+flagMode.HelpString())
	rootCmd.RegisterFlagCompletionFunc("mode", flagMode.CompletionFunc())

	// xcflavor generate subcommand
	rootCmd.AddCommand(generateCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
