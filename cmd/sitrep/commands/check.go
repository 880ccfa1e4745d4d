package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/sitrep/internal/errors"
	"github.com/thoreinstein/sitrep/internal/verify"
	"github.com/thoreinstein/sitrep/pkg/fileutil"
	"github.com/thoreinstein/sitrep/pkg/report"
)

var (
	checkJSON    bool
	checkQuiet   bool
	checkVerbose bool
	checkFailOn  string
)

func init() {
	checkCmd.Flags().BoolVar(&checkJSON, "json", false,
		"output results as JSON")
	checkCmd.Flags().BoolVar(&checkQuiet, "quiet", false,
		"suppress output, exit code only")
	checkCmd.Flags().BoolVar(&checkVerbose, "verbose", false,
		"show detailed check-by-check output")
	checkCmd.Flags().StringVar(&checkFailOn, "fail-on", "",
		"fail when the report level reaches this (overrides config)")
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check FILE",
	Short: "Verify a status report file",
	Long: `Run integrity checks on a status report file.

Validates the JSON syntax and strict field order of the wire format,
confirms the file re-encodes byte for byte, and inspects the decoded
report for level aggregation and structural problems.

Independently of the checks, the report's own warning level is compared
against a threshold. The threshold comes from --fail-on, or from the
fail_on config setting when the flag is not given. A threshold of
"none" disables the comparison.

Output modes (mutually exclusive):
  (default)   Show errors and warnings
  --verbose   Show all checks including passed ones
  --quiet     No output, exit code only
  --json      Machine-readable JSON output

Exit codes:
  0 - All checks passed, report level below the threshold
  1 - Warnings present, or the report level reached the threshold
  2 - Errors present`,
	Args:    cobra.ExactArgs(1),
	PreRunE: validateCheckFlags,
	RunE:    runCheck,
}

// validateCheckFlags ensures output flags are mutually exclusive.
func validateCheckFlags(_ *cobra.Command, _ []string) error {
	count := 0
	if checkJSON {
		count++
	}
	if checkQuiet {
		count++
	}
	if checkVerbose {
		count++
	}

	if count > 1 {
		return errors.New("flags --json, --quiet, and --verbose are mutually exclusive")
	}

	return nil
}

func runCheck(_ *cobra.Command, args []string) error {
	return runCheckWithWriter(os.Stdout, args[0])
}

// runCheckWithWriter allows injecting a writer for testing.
func runCheckWithWriter(w io.Writer, path string) error {
	threshold, err := checkThreshold()
	if err != nil {
		return err
	}

	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return errors.NewSystemError(err, "Check that the file exists and is readable")
	}

	ctx := verify.NewContext(path, data)

	runner := verify.NewRunner()
	for _, c := range verify.DefaultChecks() {
		runner.AddCheck(c)
	}
	vr := runner.Run(ctx)

	levelReached := ctx.Report != nil && threshold > report.LevelNone &&
		ctx.Report.Level().IsAtLeast(threshold)

	if err := outputCheckReport(w, vr, ctx, threshold, levelReached); err != nil {
		return err
	}

	// The outcome was already reported above, only the code remains.
	if vr.HasErrors() {
		return errors.NewExitError(nil, errors.ExitSystem)
	}
	if vr.HasWarnings() || levelReached {
		return errors.NewExitError(nil, errors.ExitUser)
	}
	return nil
}

// checkThreshold resolves the fail-on level from the flag or the config.
func checkThreshold() (report.Level, error) {
	s := checkFailOn
	if s == "" && cfg != nil {
		s = cfg.FailOn
	}

	threshold, err := report.ParseLevel(s)
	if err != nil {
		return report.LevelNone, errors.NewUserError(err,
			"Valid levels: none, info, concern, warn, error, fatal")
	}
	return threshold, nil
}

func outputCheckReport(w io.Writer, vr *verify.VerifyReport, ctx *verify.Context, threshold report.Level, levelReached bool) error {
	if checkQuiet {
		return nil
	}

	if checkJSON {
		return outputCheckJSON(w, vr, ctx, threshold)
	}

	return outputCheckText(w, vr, ctx, threshold, levelReached)
}

// checkJSONOutput wraps the verify report with the level comparison.
type checkJSONOutput struct {
	*verify.VerifyReport
	ReportLevel string `json:"report_level,omitempty"`
	FailOn      string `json:"fail_on"`
}

func outputCheckJSON(w io.Writer, vr *verify.VerifyReport, ctx *verify.Context, threshold report.Level) error {
	out := checkJSONOutput{
		VerifyReport: vr,
		FailOn:       threshold.String(),
	}
	if ctx.Report != nil {
		out.ReportLevel = ctx.Report.Level().String()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

func outputCheckText(w io.Writer, vr *verify.VerifyReport, ctx *verify.Context, threshold report.Level, levelReached bool) error {
	// In normal mode, show only errors and warnings
	// In verbose mode, show all checks
	showAll := checkVerbose

	hasOutput := false
	for _, result := range vr.Results {
		if !showAll && result.Status != verify.SeverityError && result.Status != verify.SeverityWarning {
			continue
		}

		hasOutput = true
		icon := statusIcon(result.Status)
		fmt.Fprintf(w, "%s [%s] %s: %s\n", icon, result.Category, result.Name, result.Message)

		if result.Hint != "" && (result.Status == verify.SeverityError || result.Status == verify.SeverityWarning) {
			fmt.Fprintf(w, "  hint: %s\n", result.Hint)
		}
	}

	// Print summary
	if hasOutput || showAll {
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		vr.Summary.Passed, vr.Summary.Info, vr.Summary.Warnings, vr.Summary.Errors)

	if ctx.Report != nil && threshold > report.LevelNone {
		level := ctx.Report.Level()
		if levelReached {
			fmt.Fprintf(w, "Report level: %s (fails at %s)\n",
				levelColor(level).Sprint(level), threshold)
		} else {
			fmt.Fprintf(w, "Report level: %s (below %s)\n",
				levelColor(level).Sprint(level), threshold)
		}
	}

	return nil
}

func statusIcon(s verify.Severity) string {
	switch s {
	case verify.SeverityPass:
		return "✓"
	case verify.SeverityInfo:
		return "ℹ"
	case verify.SeverityWarning:
		return "⚠"
	case verify.SeverityError:
		return "✗"
	default:
		return "?"
	}
}
