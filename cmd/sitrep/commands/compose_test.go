package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thoreinstein/sitrep/internal/errors"
	"github.com/thoreinstein/sitrep/pkg/report"
)

// resetComposeState saves the compose command globals and restores them
// when the test finishes.
func resetComposeState(t *testing.T) {
	t.Helper()

	orig := composeOutput
	t.Cleanup(func() { composeOutput = orig })
	composeOutput = ""
}

const testTOMLOutline = `title = "Launch Status"
main_text = "The loader stopped before the game could start"

[[tabs]]
name = "Mods"
lines = ["+ quilt_base", "x broken_mod"]

[[buttons]]
text = "Continue anyway"
continue = true
`

func TestRunCompose_Stdout(t *testing.T) {
	resetComposeState(t)
	path := writeTestFile(t, "outline.toml", []byte(testTOMLOutline))

	var buf bytes.Buffer
	if err := runComposeWithWriter(composeCmd, &buf, path); err != nil {
		t.Fatalf("runComposeWithWriter() error = %v", err)
	}

	out := buf.Bytes()
	if len(out) == 0 || out[len(out)-1] != '\n' {
		t.Fatal("output should end with a newline")
	}

	rep, err := report.DecodeBytes(out)
	if err != nil {
		t.Fatalf("output is not a decodable report: %v", err)
	}

	if rep.Title != "Launch Status" {
		t.Errorf("Title = %q, want %q", rep.Title, "Launch Status")
	}
	if rep.Level() != report.LevelError {
		t.Errorf("Level = %s, want error", rep.Level())
	}
	if len(rep.Tabs) != 1 || rep.Tabs[0].Root.Name != "Mods" {
		t.Errorf("expected a single Mods tab, got %d tabs", len(rep.Tabs))
	}
	if len(rep.Buttons) != 1 || !rep.Buttons[0].ShouldContinue {
		t.Error("expected one continue button")
	}
}

func TestRunCompose_OutputFile(t *testing.T) {
	resetComposeState(t)
	path := writeTestFile(t, "outline.toml", []byte(testTOMLOutline))
	composeOutput = filepath.Join(t.TempDir(), "out", "report.json")

	var buf bytes.Buffer
	if err := runComposeWithWriter(composeCmd, &buf, path); err != nil {
		t.Fatalf("runComposeWithWriter() error = %v", err)
	}

	if !strings.Contains(buf.String(), "Wrote report to "+composeOutput) {
		t.Errorf("output should name the written file, got: %s", buf.String())
	}

	data, err := os.ReadFile(composeOutput)
	if err != nil {
		t.Fatalf("reading written report: %v", err)
	}
	if data[len(data)-1] != '\n' {
		t.Error("written file should end with a newline")
	}
	if _, err := report.DecodeBytes(data); err != nil {
		t.Errorf("written file is not a decodable report: %v", err)
	}
}

func TestRunCompose_MarkdownOutline(t *testing.T) {
	resetComposeState(t)
	outline := `---
title: Crash Digest
tab: Mods
filter: warn
---
+ quilt_base
x broken_mod
`
	path := writeTestFile(t, "outline.md", []byte(outline))

	var buf bytes.Buffer
	if err := runComposeWithWriter(composeCmd, &buf, path); err != nil {
		t.Fatalf("runComposeWithWriter() error = %v", err)
	}

	rep, err := report.DecodeBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("output is not a decodable report: %v", err)
	}

	if rep.Title != "Crash Digest" {
		t.Errorf("Title = %q, want %q", rep.Title, "Crash Digest")
	}
	if len(rep.Tabs) != 1 {
		t.Fatalf("got %d tabs, want 1", len(rep.Tabs))
	}

	tab := rep.Tabs[0]
	if tab.Root.Name != "Mods" {
		t.Errorf("tab name = %q, want %q", tab.Root.Name, "Mods")
	}
	if tab.FilterLevel != report.LevelWarn {
		t.Errorf("FilterLevel = %s, want warn", tab.FilterLevel)
	}

	kids := tab.Root.Children()
	if len(kids) != 2 {
		t.Fatalf("got %d nodes, want 2", len(kids))
	}
	if kids[0].Name != "quilt_base" || kids[0].Level() != report.LevelInfo {
		t.Errorf("first node = %q [%s], want quilt_base [info]", kids[0].Name, kids[0].Level())
	}
	if kids[1].Name != "broken_mod" || kids[1].Level() != report.LevelError {
		t.Errorf("second node = %q [%s], want broken_mod [error]", kids[1].Name, kids[1].Level())
	}
}

func TestRunCompose_BadOutline(t *testing.T) {
	resetComposeState(t)
	path := writeTestFile(t, "outline.toml", []byte(`title = "unterminated`))

	var buf bytes.Buffer
	err := runComposeWithWriter(composeCmd, &buf, path)
	if err == nil {
		t.Fatal("expected error for a broken outline")
	}

	var exitErr *errors.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *errors.ExitError, got %T", err)
	}
	if exitErr.Code != errors.ExitUser {
		t.Errorf("Code = %d, want %d", exitErr.Code, errors.ExitUser)
	}
	if !strings.Contains(exitErr.Suggestion, "outline") {
		t.Errorf("suggestion should mention the outline, got %q", exitErr.Suggestion)
	}
}

func TestRunCompose_UnknownExtension(t *testing.T) {
	resetComposeState(t)
	path := writeTestFile(t, "outline.txt", []byte("not an outline"))

	var buf bytes.Buffer
	err := runComposeWithWriter(composeCmd, &buf, path)
	if err == nil {
		t.Fatal("expected error for an unknown extension")
	}
	if !errors.Is(err, errors.ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat in the chain, got: %v", err)
	}
}

func TestRunCompose_MissingFile(t *testing.T) {
	resetComposeState(t)

	var buf bytes.Buffer
	err := runComposeWithWriter(composeCmd, &buf, filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil {
		t.Fatal("expected error for a missing outline")
	}

	var exitErr *errors.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *errors.ExitError, got %T", err)
	}
	if exitErr.Code != errors.ExitUser {
		t.Errorf("Code = %d, want %d", exitErr.Code, errors.ExitUser)
	}
}

func TestComposeCommand_Metadata(t *testing.T) {
	if composeCmd.Use != "compose OUTLINE" {
		t.Errorf("Use = %q, want %q", composeCmd.Use, "compose OUTLINE")
	}

	if composeCmd.Short == "" {
		t.Error("Short description should not be empty")
	}

	flag := composeCmd.Flags().Lookup("output")
	if flag == nil {
		t.Fatal("--output flag should be defined")
	}
	if flag.Shorthand != "o" {
		t.Errorf("shorthand = %q, want %q", flag.Shorthand, "o")
	}
}
