package verify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/thoreinstein/sitrep/internal/errors"
	"github.com/thoreinstein/sitrep/pkg/report"
)

// WireSyntaxCheck validates that the file contains well-formed JSON.
type WireSyntaxCheck struct{}

var _ Check = (*WireSyntaxCheck)(nil)

// NewWireSyntaxCheck creates a new wire syntax check.
func NewWireSyntaxCheck() *WireSyntaxCheck {
	return &WireSyntaxCheck{}
}

// Name returns the unique identifier for this check.
func (c *WireSyntaxCheck) Name() string {
	return "json-syntax"
}

// Category returns the grouping for this check.
func (c *WireSyntaxCheck) Category() string {
	return "wire"
}

// Run executes the JSON syntax check.
func (c *WireSyntaxCheck) Run(ctx *Context) *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	if len(bytes.TrimSpace(ctx.Data)) == 0 {
		result.Status = SeverityError
		result.Message = "file is empty"
		return result
	}

	var v any
	if err := json.Unmarshal(ctx.Data, &v); err != nil {
		result.Status = SeverityError
		result.Message = formatJSONError(err, ctx.Data)
		result.Hint = "the file must contain a single JSON object"
		return result
	}

	result.Status = SeverityPass
	result.Message = "file is well-formed JSON"
	return result
}

// formatJSONError extracts position information from JSON syntax errors.
func formatJSONError(err error, data []byte) string {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		line, col := offsetToLineCol(data, int(syntaxErr.Offset))
		return fmt.Sprintf("JSON syntax error at line %d, column %d: %s", line, col, syntaxErr.Error())
	}

	return fmt.Sprintf("JSON error: %v", err)
}

// offsetToLineCol converts a byte offset to line and column numbers.
// Lines and columns are 1-indexed.
func offsetToLineCol(data []byte, offset int) (line, col int) {
	if offset > len(data) {
		offset = len(data)
	}
	if offset < 0 {
		offset = 0
	}

	line = 1
	lineStart := 0

	for i := range offset {
		if data[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}

	col = offset - lineStart + 1
	return line, col
}

// DecodeCheck validates that the file decodes as a status report.
type DecodeCheck struct{}

var _ Check = (*DecodeCheck)(nil)

// NewDecodeCheck creates a new decode check.
func NewDecodeCheck() *DecodeCheck {
	return &DecodeCheck{}
}

// Name returns the unique identifier for this check.
func (c *DecodeCheck) Name() string {
	return "report-decode"
}

// Category returns the grouping for this check.
func (c *DecodeCheck) Category() string {
	return "wire"
}

// Run reports on the decode outcome recorded in the context.
func (c *DecodeCheck) Run(ctx *Context) *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	if ctx.DecodeErr != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("decoding failed: %v", ctx.DecodeErr)
		result.Hint = "regenerate the file with sitrep compose"

		var ferr *report.FormatError
		if errors.As(ctx.DecodeErr, &ferr) {
			result.Details = map[string]any{
				"expected": ferr.Expected,
				"actual":   ferr.Actual,
			}
		}
		return result
	}

	rep := ctx.Report
	result.Status = SeverityPass
	result.Message = fmt.Sprintf("decoded report %q", rep.Title)
	result.Details = map[string]any{
		"tabs":     len(rep.Tabs),
		"messages": len(rep.Messages),
		"buttons":  len(rep.Buttons),
	}
	return result
}

// RoundTripCheck verifies that re-encoding the decoded report reproduces
// the original bytes. A mismatch means the file was not produced by the
// canonical encoder, which is harmless but worth knowing.
type RoundTripCheck struct{}

var _ Check = (*RoundTripCheck)(nil)

// NewRoundTripCheck creates a new round-trip check.
func NewRoundTripCheck() *RoundTripCheck {
	return &RoundTripCheck{}
}

// Name returns the unique identifier for this check.
func (c *RoundTripCheck) Name() string {
	return "round-trip"
}

// Category returns the grouping for this check.
func (c *RoundTripCheck) Category() string {
	return "wire"
}

// Run executes the round-trip check.
func (c *RoundTripCheck) Run(ctx *Context) *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	if ctx.Report == nil {
		result.Status = SeverityInfo
		result.Message = "skipped: report did not decode"
		return result
	}

	encoded, err := ctx.Report.EncodeBytes()
	if err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("re-encoding failed: %v", err)
		return result
	}

	// Trailing whitespace is ignored by the decoder, so ignore it here too.
	original := bytes.TrimRight(ctx.Data, " \t\r\n")
	if bytes.Equal(encoded, original) {
		result.Status = SeverityPass
		result.Message = "re-encoding reproduces the file byte for byte"
		return result
	}

	result.Status = SeverityWarning
	result.Message = "file differs from its canonical encoding"
	result.Details = map[string]any{
		"divergence_offset": firstDiff(encoded, original),
		"original_size":     len(original),
		"canonical_size":    len(encoded),
	}
	result.Hint = "the report decodes correctly; re-encode it to normalize formatting"
	return result
}

// firstDiff returns the offset of the first differing byte, or -1 if equal.
func firstDiff(a, b []byte) int {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return i
		}
	}
	if len(a) != len(b) {
		return n
	}
	return -1
}

// LevelConsistencyCheck verifies that no node carries a warning level
// higher than its parent's. Levels propagate upward when a report is
// built, so a well-formed file always satisfies this.
type LevelConsistencyCheck struct{}

var _ Check = (*LevelConsistencyCheck)(nil)

// NewLevelConsistencyCheck creates a new level consistency check.
func NewLevelConsistencyCheck() *LevelConsistencyCheck {
	return &LevelConsistencyCheck{}
}

// Name returns the unique identifier for this check.
func (c *LevelConsistencyCheck) Name() string {
	return "level-consistency"
}

// Category returns the grouping for this check.
func (c *LevelConsistencyCheck) Category() string {
	return "content"
}

// Run executes the level consistency check.
func (c *LevelConsistencyCheck) Run(ctx *Context) *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	if ctx.Report == nil {
		result.Status = SeverityInfo
		result.Message = "skipped: report did not decode"
		return result
	}

	var violations []map[string]any
	var nodes int

	for _, tab := range ctx.Report.Tabs {
		walkNodes(tab.Root, tab.Root.Name, func(n *report.Node, path string) {
			nodes++
			for _, child := range n.Children() {
				if child.Level().IsHigherThan(n.Level()) {
					violations = append(violations, map[string]any{
						"path":   path + " > " + child.Name,
						"parent": n.Level().String(),
						"child":  child.Level().String(),
					})
				}
			}
		})
	}

	if len(violations) == 0 {
		result.Status = SeverityPass
		result.Message = fmt.Sprintf("all %d node(s) respect level aggregation", nodes)
		return result
	}

	result.Status = SeverityWarning
	result.Message = fmt.Sprintf("found %d node(s) with a level above their parent's", len(violations))
	result.Details = map[string]any{"violations": violations}
	result.Hint = "levels normally propagate upward; the file may have been edited by hand"
	return result
}

// walkNodes visits n and all of its descendants depth-first.
func walkNodes(n *report.Node, path string, fn func(*report.Node, string)) {
	fn(n, path)
	for _, child := range n.Children() {
		walkNodes(child, path+" > "+child.Name, fn)
	}
}

// StructureCheck flags report content that decodes but looks wrong:
// empty titles, unnamed tabs, buttons without text.
type StructureCheck struct{}

var _ Check = (*StructureCheck)(nil)

// NewStructureCheck creates a new structure check.
func NewStructureCheck() *StructureCheck {
	return &StructureCheck{}
}

// Name returns the unique identifier for this check.
func (c *StructureCheck) Name() string {
	return "structure"
}

// Category returns the grouping for this check.
func (c *StructureCheck) Category() string {
	return "content"
}

// Run executes the structure check.
func (c *StructureCheck) Run(ctx *Context) *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	if ctx.Report == nil {
		result.Status = SeverityInfo
		result.Message = "skipped: report did not decode"
		return result
	}

	rep := ctx.Report
	var issues []string
	var nodes int

	if strings.TrimSpace(rep.Title) == "" {
		issues = append(issues, "report title is empty")
	}

	for i, tab := range rep.Tabs {
		if tab.Root.Name == "" {
			issues = append(issues, fmt.Sprintf("tab %d has no name", i))
		}
		walkNodes(tab.Root, tab.Root.Name, func(*report.Node, string) {
			nodes++
		})
	}

	for i, msg := range rep.Messages {
		issues = append(issues, messageIssues(msg, fmt.Sprintf("message %d", i))...)
	}

	for i, b := range rep.Buttons {
		if b.Text == "" {
			issues = append(issues, fmt.Sprintf("button %d has no text", i))
		}
	}

	if len(issues) == 0 {
		result.Status = SeverityPass
		result.Message = fmt.Sprintf("structure looks sound (%d node(s) across %d tab(s))", nodes, len(rep.Tabs))
		return result
	}

	result.Status = SeverityWarning
	result.Message = fmt.Sprintf("found %d structural issue(s)", len(issues))
	result.Details = map[string]any{"issues": issues}
	return result
}

// messageIssues collects structural problems in a message and its
// sub-messages. The label identifies the message in issue text.
func messageIssues(msg *report.Message, label string) []string {
	var issues []string

	if msg.Title == "" {
		issues = append(issues, label+" has no title")
	}
	for i, b := range msg.Buttons {
		if b.Text == "" {
			issues = append(issues, fmt.Sprintf("%s button %d has no text", label, i))
		}
	}
	for i, sub := range msg.SubMessages {
		issues = append(issues, messageIssues(sub, fmt.Sprintf("%s sub-message %d", label, i))...)
	}

	return issues
}
