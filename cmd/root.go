package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/sgb/internal/codes"
	"github.com/Norgate-AV/sgb/internal/logger"
	"github.com/Norgate-AV/sgb/internal/version"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "swiftgodotbuilder [view-file]",
		Short:         "Build and run SwiftGodotBuilder GView files",
		Long:          `Scaffold a Swift package and Godot project around a GView or @Godot class, build it and launch Godot.`,
		RunE:          runPlayground,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		Version:       fmt.Sprintf("%s (%s) %s", version.Version, version.Commit, version.BuildTime),
	}

	cmd.PersistentFlags().String("cache", "", "Workspace cache directory")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Print extra logs and commands")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress informational logs")

	cmd.Flags().String("root", "", "Override the root type (GView or @Godot class)")
	cmd.Flags().StringArray("assets", []string{}, "Symlink asset directories into the Godot project (repeatable)")
	cmd.Flags().StringArray("include", []string{}, "Copy .swift files from directory into sources (repeatable)")
	cmd.Flags().String("godot", "", "Path to Godot executable")
	cmd.Flags().String("builder-path", "", "Override the SwiftGodotBuilder dependency path")
	cmd.Flags().String("builder-rev", "", "SwiftGodotBuilder branch/tag/commit (default: main)")
	cmd.Flags().String("swiftgodot-rev", "", "SwiftGodot branch/tag/commit (default: main)")
	cmd.Flags().String("project", "", "Use a custom project.godot file")
	cmd.Flags().Bool("release", false, "Build in release mode")
	cmd.Flags().Bool("no-run", false, "Do not launch Godot after building")
	cmd.Flags().Bool("codesign", false, "Codesign dylibs")
	cmd.Flags().Bool("clean", false, "Delete cached playgrounds and exit")

	cmd.AddCommand(newListCmd())

	return cmd
}

// Execute runs the root command and exits with the code for the first error
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(report(logger.New(false, false), err))
	}
}

// report logs err with the description of its exit code and returns the code
func report(log *logger.Logger, err error) int {
	code := codes.ExitCode(err)
	log.Error(fmt.Errorf("%s: %w", codes.GetErrorMessage(code), err))

	return code
}
