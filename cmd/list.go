package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Norgate-AV/sgb/internal/cache"
	"github.com/Norgate-AV/sgb/internal/codes"
	"github.com/Norgate-AV/sgb/internal/config"
	"github.com/Norgate-AV/sgb/internal/fsutil"
)

var summaryStyle = lipgloss.NewStyle().Bold(true)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "list [workspace]",
		Short:        "List cached playground workspaces",
		Long:         `List the workspaces recorded in the cache index, most recently built first, or show one workspace in detail.`,
		Args:         cobra.MaximumNArgs(1),
		RunE:         runList,
		SilenceUsage: true,
	}

	cmd.Flags().Bool("prune", false, "Forget workspaces whose directory no longer exists")
	cmd.Flags().Bool("clear", false, "Forget every recorded workspace, leaving them on disk")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	opts := config.NewLoader().LoadForBuild(cmd, nil)

	baseDir, err := os.Getwd()
	if err != nil {
		return codes.Wrap(codes.Config, fmt.Errorf("failed to get working directory: %w", err))
	}

	cacheRoot, err := opts.CacheRoot(baseDir)
	if err != nil {
		return codes.Wrap(codes.Config, err)
	}

	out := cmd.OutOrStdout()

	if !fsutil.DirExists(cacheRoot) {
		fmt.Fprintf(out, "No cache directory found at %s\n", cacheRoot)
		return nil
	}

	index, err := cache.New(cacheRoot)
	if err != nil {
		return err
	}

	defer index.Close()

	if clearIndex, _ := cmd.Flags().GetBool("clear"); clearIndex {
		if err := index.Clear(); err != nil {
			return err
		}

		fmt.Fprintf(out, "Cleared workspace index in %s\n", index.Root())
		return nil
	}

	if len(args) == 1 {
		return showWorkspace(cmd, index, args[0])
	}

	if prune, _ := cmd.Flags().GetBool("prune"); prune {
		pruned, err := index.Prune()
		if err != nil {
			return err
		}

		for _, name := range pruned {
			fmt.Fprintf(out, "Pruned %s\n", name)
		}
	}

	entries, err := index.List()
	if err != nil {
		return err
	}

	if len(entries) > 0 {
		writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(writer, "WORKSPACE\tTYPE\tKIND\tPROFILE\tBUILT")

		for _, entry := range entries {
			fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\n",
				entry.Name, entry.ViewType, entry.ViewKind, entry.Profile, entry.Timestamp.Format(time.DateTime))
		}

		writer.Flush()
		fmt.Fprintln(out)
	}

	count, size, err := index.Stats()
	if err != nil {
		return err
	}

	fmt.Fprintln(out, summaryStyle.Render(fmt.Sprintf("%d workspace(s), %s in %s", count, formatSize(size), index.Root())))

	return nil
}

// showWorkspace prints every recorded field of one workspace
func showWorkspace(cmd *cobra.Command, index *cache.Cache, name string) error {
	entry, err := index.Get(name)
	if errors.Is(err, cache.ErrNotFound) {
		return codes.Wrap(codes.Config, fmt.Errorf("%w: %s", err, name))
	}

	if err != nil {
		return err
	}

	libs := strings.Join(entry.Libraries, ", ")
	if libs == "" {
		libs = "-"
	}

	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(writer, "Workspace:\t%s\n", entry.Name)
	fmt.Fprintf(writer, "Directory:\t%s\n", entry.WorkspaceDir)
	fmt.Fprintf(writer, "View file:\t%s\n", entry.ViewFile)
	fmt.Fprintf(writer, "Root type:\t%s (%s)\n", entry.ViewType, entry.ViewKind)
	fmt.Fprintf(writer, "Profile:\t%s\n", entry.Profile)
	fmt.Fprintf(writer, "Libraries:\t%s\n", libs)
	fmt.Fprintf(writer, "Built:\t%s\n", entry.Timestamp.Format(time.DateTime))

	return writer.Flush()
}

func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
