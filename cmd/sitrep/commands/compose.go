package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/sitrep/internal/errors"
	"github.com/thoreinstein/sitrep/internal/logging"
	"github.com/thoreinstein/sitrep/internal/outline"
	"github.com/thoreinstein/sitrep/internal/paths"
	"github.com/thoreinstein/sitrep/pkg/fileutil"
)

var composeOutput string

func init() {
	composeCmd.Flags().StringVarP(&composeOutput, "output", "o", "",
		"write the report to this file instead of stdout")
	rootCmd.AddCommand(composeCmd)
}

var composeCmd = &cobra.Command{
	Use:   "compose OUTLINE",
	Short: "Build a status report from an outline file",
	Long: `Compose a status report from an outline and emit its wire encoding.

The outline format is chosen from the file extension: .toml files are
parsed as structured outlines, .md and .markdown files as a YAML
frontmatter header followed by one node markup line per tree entry.

The encoded report goes to stdout, or to the file given with --output.
The output directory is created if it does not exist, and the file is
written atomically.`,
	Example: `  # Compose to stdout
  sitrep compose status.toml

  # Compose a markdown outline into a report file
  sitrep compose status.md -o out/report.json`,
	Args: cobra.ExactArgs(1),
	RunE: runCompose,
}

func runCompose(cmd *cobra.Command, args []string) error {
	return runComposeWithWriter(cmd, os.Stdout, args[0])
}

// runComposeWithWriter allows injecting a writer for testing.
func runComposeWithWriter(cmd *cobra.Command, w io.Writer, path string) error {
	logger := logging.FromContext(cmd.Context())

	rep, err := outline.Load(path)
	if err != nil {
		return errors.NewUserError(err, "Check the outline file for syntax problems")
	}

	data, err := rep.EncodeBytes()
	if err != nil {
		return errors.Wrap(err, "encoding report")
	}
	data = append(data, '\n')

	logger.Debug("composed report",
		"outline", path,
		"tabs", len(rep.Tabs),
		"messages", len(rep.Messages),
		"level", rep.Level().String())

	if composeOutput == "" {
		if _, err := w.Write(data); err != nil {
			return errors.Wrap(err, "writing report")
		}
		return nil
	}

	if dir := filepath.Dir(composeOutput); dir != "." {
		if err := paths.EnsureDir(dir, 0); err != nil {
			return errors.NewSystemError(err, "Check permissions on the output directory")
		}
	}
	if err := fileutil.AtomicWriteFile(composeOutput, data, 0644); err != nil {
		return errors.NewSystemError(err, "Check permissions on the output directory")
	}

	fmt.Fprintf(w, "Wrote report to %s\n", composeOutput)
	return nil
}
