package commands

import (
	"github.com/fatih/color"

	"github.com/thoreinstein/sitrep/pkg/report"
)

// Shared color printers for command output. They respect color.NoColor,
// which applyColorMode sets from the config.
var (
	headingColor = color.New(color.FgCyan, color.Bold)
	infoColor    = color.New(color.FgHiBlue)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed, color.Bold)
	dimColor     = color.New(color.FgHiBlack)
)

// levelColor returns the color printer for a warning level.
func levelColor(l report.Level) *color.Color {
	switch {
	case l.IsAtLeast(report.LevelError):
		return errorColor
	case l.IsAtLeast(report.LevelWarn):
		return warnColor
	case l.IsAtLeast(report.LevelInfo):
		return infoColor
	default:
		return dimColor
	}
}

// truncate shortens a string to maxLen characters, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
