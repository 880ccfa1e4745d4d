package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/sitrep/internal/errors"
	"github.com/thoreinstein/sitrep/pkg/fileutil"
	"github.com/thoreinstein/sitrep/pkg/report"
)

var (
	statJSON bool
	statTab  string
	statPick bool
)

func init() {
	statCmd.Flags().BoolVar(&statJSON, "json", false,
		"output summary as JSON")
	statCmd.Flags().StringVar(&statTab, "tab", "",
		"show the full tree of a single tab")
	statCmd.Flags().BoolVar(&statPick, "pick", false,
		"fuzzy-find a node interactively")
	rootCmd.AddCommand(statCmd)
}

var statCmd = &cobra.Command{
	Use:   "stat FILE",
	Short: "Summarize a status report file",
	Long: `Show what is inside a status report file without opening a viewer.

The default output lists the report title, its aggregated warning
level, and per-tab node counts together with message and button
summaries.

Use --tab to print the full tree of one tab, or --pick to fuzzy-find a
single node across all tabs and print its details.`,
	Example: `  # Overview of a report
  sitrep stat report.json

  # Print the tree of the "Mods" tab
  sitrep stat report.json --tab Mods

  # Interactively pick a node
  sitrep stat report.json --pick

  # Summary as JSON
  sitrep stat report.json --json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: validateStatFlags,
	RunE:    runStat,
}

// validateStatFlags ensures display flags are mutually exclusive.
func validateStatFlags(_ *cobra.Command, _ []string) error {
	count := 0
	if statJSON {
		count++
	}
	if statTab != "" {
		count++
	}
	if statPick {
		count++
	}

	if count > 1 {
		return errors.New("flags --json, --tab, and --pick are mutually exclusive")
	}

	return nil
}

func runStat(_ *cobra.Command, args []string) error {
	return runStatWithWriter(os.Stdout, args[0])
}

// runStatWithWriter allows injecting a writer for testing.
func runStatWithWriter(w io.Writer, path string) error {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return errors.NewSystemError(err, "Check that the file exists and is readable")
	}

	rep, err := report.DecodeBytes(data)
	if err != nil {
		return errors.NewUserError(errors.Wrapf(err, "reading %s", path),
			"Run 'sitrep check' to diagnose the file")
	}

	if statJSON {
		return outputStatJSON(w, rep)
	}
	if statTab != "" {
		return outputStatTab(w, rep, statTab)
	}
	if statPick {
		return runStatPick(w, rep)
	}
	return outputStatOverview(w, rep)
}

// JSON output types

type statJSONOutput struct {
	Title    string         `json:"title"`
	MainText string         `json:"mainText,omitempty"`
	Level    string         `json:"level"`
	Tabs     []statTabEntry `json:"tabs"`
	Messages int            `json:"messages"`
	Buttons  int            `json:"buttons"`
}

type statTabEntry struct {
	Name   string `json:"name"`
	Level  string `json:"level"`
	Filter string `json:"filter,omitempty"`
	Nodes  int    `json:"nodes"`
}

func outputStatJSON(w io.Writer, rep *report.Report) error {
	out := statJSONOutput{
		Title:    rep.Title,
		MainText: rep.MainText,
		Level:    rep.Level().String(),
		Tabs:     make([]statTabEntry, len(rep.Tabs)),
		Messages: len(rep.Messages),
		Buttons:  len(rep.Buttons),
	}

	for i, tab := range rep.Tabs {
		entry := statTabEntry{
			Name:  tab.Root.Name,
			Level: tab.Root.Level().String(),
			Nodes: countNodes(tab.Root),
		}
		if tab.FilterLevel > report.LevelNone {
			entry.Filter = tab.FilterLevel.String()
		}
		out.Tabs[i] = entry
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

func outputStatOverview(w io.Writer, rep *report.Report) error {
	fmt.Fprintf(w, "%s", headingColor.Sprint(rep.Title))
	level := rep.Level()
	fmt.Fprintf(w, " [%s]\n", levelColor(level).Sprint(level))

	if rep.MainText != "" {
		fmt.Fprintf(w, "%s\n", rep.MainText)
	}

	if len(rep.Tabs) > 0 {
		fmt.Fprintln(w)
		for _, tab := range rep.Tabs {
			tabLevel := tab.Root.Level()
			fmt.Fprintf(w, "  %s [%s] %d node(s)",
				tab.Root.Name, levelColor(tabLevel).Sprint(tabLevel), countNodes(tab.Root))
			if tab.FilterLevel > report.LevelNone {
				fmt.Fprintf(w, " %s", dimColor.Sprintf("(filtered at %s)", tab.FilterLevel))
			}
			fmt.Fprintln(w)
		}
	}

	if len(rep.Messages) > 0 {
		fmt.Fprintln(w)
		for _, msg := range rep.Messages {
			fmt.Fprintf(w, "  message: %s", msg.Title)
			if len(msg.SubMessages) > 0 {
				fmt.Fprintf(w, " %s", dimColor.Sprintf("(+%d nested)", len(msg.SubMessages)))
			}
			fmt.Fprintln(w)
		}
	}

	if len(rep.Buttons) > 0 {
		labels := make([]string, len(rep.Buttons))
		for i, b := range rep.Buttons {
			labels[i] = b.Text
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  buttons: %s\n", strings.Join(labels, ", "))
	}

	return nil
}

func outputStatTab(w io.Writer, rep *report.Report, name string) error {
	for _, tab := range rep.Tabs {
		if tab.Root.Name != name {
			continue
		}
		printNode(w, tab.Root, 0)
		return nil
	}

	names := make([]string, len(rep.Tabs))
	for i, tab := range rep.Tabs {
		names[i] = tab.Root.Name
	}
	err := errors.Newf("no tab named %q (have: %s)", name, strings.Join(names, ", "))
	return errors.NewUserError(err, "Run 'sitrep stat' without --tab to list tabs")
}

// printNode renders a node and its children as an indented tree.
func printNode(w io.Writer, n *report.Node, depth int) {
	indent := strings.Repeat("  ", depth)

	name := n.Name
	if name == "" {
		name = dimColor.Sprint("(unnamed)")
	}

	level := n.Level()
	fmt.Fprintf(w, "%s%s [%s]", indent, name, levelColor(level).Sprint(level))
	if n.IconType != "" {
		fmt.Fprintf(w, " %s", dimColor.Sprintf("<%s>", n.IconType))
	}
	fmt.Fprintln(w)

	if n.Details != "" {
		for _, line := range strings.Split(n.Details, "\n") {
			fmt.Fprintf(w, "%s  %s\n", indent, dimColor.Sprint(line))
		}
	}

	for _, child := range n.Children() {
		printNode(w, child, depth+1)
	}
}

// pickEntry is one selectable node in the fuzzy finder.
type pickEntry struct {
	Path string
	Node *report.Node
	Tab  string
}

func runStatPick(w io.Writer, rep *report.Report) error {
	entries := collectPickEntries(rep)
	if len(entries) == 0 {
		fmt.Fprintln(w, "No nodes found.")
		return nil
	}

	idx, err := fuzzyfinder.Find(
		entries,
		func(i int) string {
			return fmt.Sprintf("%s (%s)", entries[i].Path, entries[i].Node.Level())
		},
		fuzzyfinder.WithPreviewWindow(func(i, width, height int) string {
			if i == -1 {
				return ""
			}
			e := entries[i]
			var sb strings.Builder
			fmt.Fprintf(&sb, "Tab: %s\nPath: %s\nLevel: %s\n", e.Tab, e.Path, e.Node.Level())
			if e.Node.IconType != "" {
				fmt.Fprintf(&sb, "Icon: %s\n", e.Node.IconType)
			}
			if e.Node.Details != "" {
				fmt.Fprintf(&sb, "\nDetails:\n%s\n", e.Node.Details)
			}
			return sb.String()
		}),
	)

	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil
		}
		return errors.Wrap(err, "interactive pick failed")
	}

	e := entries[idx]
	fmt.Fprintf(w, "Selected: %s (%s)\n", e.Path, e.Node.Level())
	fmt.Fprintf(w, "Tab: %s\n", e.Tab)
	if e.Node.IconType != "" {
		fmt.Fprintf(w, "Icon: %s\n", e.Node.IconType)
	}
	if e.Node.Details != "" {
		fmt.Fprintf(w, "Details: %s\n", truncate(e.Node.Details, 200))
	}

	return nil
}

// collectPickEntries flattens every tab tree into path-labeled entries.
func collectPickEntries(rep *report.Report) []pickEntry {
	var entries []pickEntry
	for _, tab := range rep.Tabs {
		var walk func(n *report.Node, path string)
		walk = func(n *report.Node, path string) {
			entries = append(entries, pickEntry{Path: path, Node: n, Tab: tab.Root.Name})
			for _, child := range n.Children() {
				name := child.Name
				if name == "" {
					name = "(unnamed)"
				}
				walk(child, path+" > "+name)
			}
		}
		walk(tab.Root, tab.Root.Name)
	}
	return entries
}

// countNodes returns the number of nodes in the tree rooted at n,
// including n itself.
func countNodes(n *report.Node) int {
	count := 1
	for _, child := range n.Children() {
		count += countNodes(child)
	}
	return count
}
