package commands

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/thoreinstein/sitrep/internal/errors"
	"github.com/thoreinstein/sitrep/pkg/report"
)

// resetStatState saves the stat command globals and restores them when
// the test finishes.
func resetStatState(t *testing.T) {
	t.Helper()

	origJSON := statJSON
	origTab := statTab
	origPick := statPick
	origNoColor := color.NoColor
	t.Cleanup(func() {
		statJSON = origJSON
		statTab = origTab
		statPick = origPick
		color.NoColor = origNoColor
	})

	statJSON = false
	statTab = ""
	statPick = false
	color.NoColor = true
}

// statTestReport builds a report with two tabs, a message and a button.
func statTestReport(t *testing.T) *report.Report {
	t.Helper()

	rep := report.New("Launch Status", "The loader stopped before the game could start")

	mods := rep.AddTab("Mods")
	mods.AddChild("+ quilt_base")
	broken := mods.AddChild("x broken_mod")
	broken.AddChild("Caused by a missing dependency")

	files := rep.AddTab("Files")
	files.FilterLevel = report.LevelWarn
	files.Root.FileNode("mods/broken.jar", report.IconFolder, report.IconArchive)

	msg := rep.AddMessage("Crash")
	msg.Description = []string{"The game crashed during startup."}
	msg.AddSubMessage("Caused by")

	rep.AddButton("Continue anyway", report.ClickOnce).MakeContinue()

	return rep
}

func TestValidateStatFlags(t *testing.T) {
	tests := []struct {
		name     string
		jsonFlag bool
		tabFlag  string
		pickFlag bool
		wantErr  bool
	}{
		{name: "no flags set"},
		{name: "only json flag", jsonFlag: true},
		{name: "only tab flag", tabFlag: "Mods"},
		{name: "only pick flag", pickFlag: true},
		{name: "json and tab flags", jsonFlag: true, tabFlag: "Mods", wantErr: true},
		{name: "json and pick flags", jsonFlag: true, pickFlag: true, wantErr: true},
		{name: "tab and pick flags", tabFlag: "Mods", pickFlag: true, wantErr: true},
		{name: "all three flags", jsonFlag: true, tabFlag: "Mods", pickFlag: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetStatState(t)
			statJSON = tt.jsonFlag
			statTab = tt.tabFlag
			statPick = tt.pickFlag

			err := validateStatFlags(nil, nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateStatFlags() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil && !strings.Contains(err.Error(), "mutually exclusive") {
				t.Errorf("error should mention 'mutually exclusive', got: %v", err)
			}
		})
	}
}

func TestOutputStatOverview(t *testing.T) {
	resetStatState(t)
	rep := statTestReport(t)

	var buf bytes.Buffer
	if err := outputStatOverview(&buf, rep); err != nil {
		t.Fatalf("outputStatOverview() error = %v", err)
	}

	output := buf.String()
	for _, want := range []string{
		"Launch Status [error]",
		"The loader stopped before the game could start",
		"Mods [error] 4 node(s)",
		"Files [none] 3 node(s)",
		"(filtered at warn)",
		"message: Crash",
		"(+1 nested)",
		"buttons: Continue anyway",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("overview missing %q, got:\n%s", want, output)
		}
	}
}

func TestOutputStatOverview_Minimal(t *testing.T) {
	resetStatState(t)
	rep := report.New("Empty", "")

	var buf bytes.Buffer
	if err := outputStatOverview(&buf, rep); err != nil {
		t.Fatalf("outputStatOverview() error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "Empty [none]") {
		t.Errorf("overview should show the title and level, got:\n%s", output)
	}
	if strings.Contains(output, "message:") || strings.Contains(output, "buttons:") {
		t.Errorf("empty sections should be omitted, got:\n%s", output)
	}
}

func TestOutputStatTab(t *testing.T) {
	resetStatState(t)
	rep := statTestReport(t)

	t.Run("renders the tree", func(t *testing.T) {
		var buf bytes.Buffer
		if err := outputStatTab(&buf, rep, "Mods"); err != nil {
			t.Fatalf("outputStatTab() error = %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"Mods [error]",
			"  quilt_base [info]",
			"  broken_mod [error]",
			"    Caused by a missing dependency [none]",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("tree missing %q, got:\n%s", want, output)
			}
		}
	})

	t.Run("shows node icons", func(t *testing.T) {
		var buf bytes.Buffer
		if err := outputStatTab(&buf, rep, "Files"); err != nil {
			t.Fatalf("outputStatTab() error = %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "<archive>") {
			t.Errorf("tree should mark node icons, got:\n%s", output)
		}
	})

	t.Run("unknown tab is a user error", func(t *testing.T) {
		var buf bytes.Buffer
		err := outputStatTab(&buf, rep, "Nope")
		if err == nil {
			t.Fatal("expected error for unknown tab")
		}

		var exitErr *errors.ExitError
		if !errors.As(err, &exitErr) {
			t.Fatalf("expected *errors.ExitError, got %T", err)
		}
		if exitErr.Code != errors.ExitUser {
			t.Errorf("Code = %d, want %d", exitErr.Code, errors.ExitUser)
		}
		if !strings.Contains(err.Error(), "Mods, Files") {
			t.Errorf("error should list available tabs, got: %v", err)
		}
	})
}

func TestOutputStatJSON(t *testing.T) {
	resetStatState(t)
	rep := statTestReport(t)

	var buf bytes.Buffer
	if err := outputStatJSON(&buf, rep); err != nil {
		t.Fatalf("outputStatJSON() error = %v", err)
	}

	var result statJSONOutput
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("failed to unmarshal JSON: %v", err)
	}

	if result.Title != "Launch Status" {
		t.Errorf("Title = %q, want %q", result.Title, "Launch Status")
	}
	if result.Level != "error" {
		t.Errorf("Level = %q, want %q", result.Level, "error")
	}
	if len(result.Tabs) != 2 {
		t.Fatalf("Tabs has %d entries, want 2", len(result.Tabs))
	}
	if result.Tabs[0].Name != "Mods" || result.Tabs[0].Nodes != 4 {
		t.Errorf("Tabs[0] = %+v, want Mods with 4 nodes", result.Tabs[0])
	}
	if result.Tabs[1].Filter != "warn" {
		t.Errorf("Tabs[1].Filter = %q, want %q", result.Tabs[1].Filter, "warn")
	}
	if result.Messages != 1 {
		t.Errorf("Messages = %d, want 1", result.Messages)
	}
	if result.Buttons != 1 {
		t.Errorf("Buttons = %d, want 1", result.Buttons)
	}
}

func TestRunStat_DecodesFile(t *testing.T) {
	resetStatState(t)

	data, err := statTestReport(t).EncodeBytes()
	if err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}
	path := writeTestFile(t, "report.json", data)

	var buf bytes.Buffer
	if err := runStatWithWriter(&buf, path); err != nil {
		t.Fatalf("runStatWithWriter() error = %v", err)
	}

	if !strings.Contains(buf.String(), "Launch Status") {
		t.Errorf("output should contain the report title, got:\n%s", buf.String())
	}
}

func TestRunStat_BadFile(t *testing.T) {
	resetStatState(t)
	path := writeTestFile(t, "report.json", []byte(`{"mainText": "order", "title": "wrong"}`))

	var buf bytes.Buffer
	err := runStatWithWriter(&buf, path)
	if err == nil {
		t.Fatal("expected error for an undecodable file")
	}

	var exitErr *errors.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *errors.ExitError, got %T", err)
	}
	if exitErr.Code != errors.ExitUser {
		t.Errorf("Code = %d, want %d", exitErr.Code, errors.ExitUser)
	}
	if !strings.Contains(exitErr.Suggestion, "sitrep check") {
		t.Errorf("suggestion should point at sitrep check, got %q", exitErr.Suggestion)
	}
}

func TestRunStat_MissingFile(t *testing.T) {
	resetStatState(t)

	var buf bytes.Buffer
	err := runStatWithWriter(&buf, filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for a missing file")
	}

	var exitErr *errors.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *errors.ExitError, got %T", err)
	}
	if exitErr.Code != errors.ExitSystem {
		t.Errorf("Code = %d, want %d", exitErr.Code, errors.ExitSystem)
	}
}

func TestCollectPickEntries(t *testing.T) {
	rep := statTestReport(t)

	entries := collectPickEntries(rep)

	// 4 nodes under Mods, 3 under Files (root, "mods", "broken.jar").
	if len(entries) != 7 {
		t.Fatalf("got %d entries, want 7", len(entries))
	}

	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.Path
	}

	for _, want := range []string{
		"Mods",
		"Mods > quilt_base",
		"Mods > broken_mod",
		"Mods > broken_mod > Caused by a missing dependency",
		"Files",
		"Files > mods",
		"Files > mods > broken.jar",
	} {
		found := false
		for _, p := range paths {
			if p == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing entry path %q in %v", want, paths)
		}
	}

	for _, e := range entries {
		if e.Tab != "Mods" && e.Tab != "Files" {
			t.Errorf("entry %q has unexpected tab %q", e.Path, e.Tab)
		}
	}
}

func TestCountNodes(t *testing.T) {
	rep := statTestReport(t)

	if got := countNodes(rep.Tabs[0].Root); got != 4 {
		t.Errorf("countNodes(Mods) = %d, want 4", got)
	}
	if got := countNodes(rep.Tabs[1].Root); got != 3 {
		t.Errorf("countNodes(Files) = %d, want 3", got)
	}

	single := report.New("t", "").AddTab("only")
	if got := countNodes(single.Root); got != 1 {
		t.Errorf("countNodes(root only) = %d, want 1", got)
	}
}

func TestStatCommand_Metadata(t *testing.T) {
	if statCmd.Use != "stat FILE" {
		t.Errorf("Use = %q, want %q", statCmd.Use, "stat FILE")
	}

	if statCmd.Short == "" {
		t.Error("Short description should not be empty")
	}

	for _, flag := range []string{"json", "tab", "pick"} {
		if statCmd.Flags().Lookup(flag) == nil {
			t.Errorf("--%s flag should be defined", flag)
		}
	}
}
