package report

// Level indicates the severity attached to a status node or used as a
// tab display filter. Higher values are more severe.
type Level int

const (
	// LevelNone is the default level. It marks nodes with nothing to
	// report and is the lowest level.
	LevelNone Level = iota

	// LevelInfo marks informational output, not a problem.
	LevelInfo

	// LevelConcern marks something worth a closer look, below a warning.
	LevelConcern

	// LevelWarn marks a potential problem that does not prevent operation.
	LevelWarn

	// LevelError marks a definite problem.
	LevelError

	// LevelFatal marks a problem that stops the reporting process from
	// continuing. It is the highest level.
	LevelFatal
)

// String returns the canonical lowercase name of the level. The same
// name appears in the wire encoding.
func (l Level) String() string {
	switch l {
	case LevelNone:
		return "none"
	case LevelInfo:
		return "info"
	case LevelConcern:
		return "concern"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// IsHigherThan reports whether l is strictly more severe than other.
func (l Level) IsHigherThan(other Level) bool {
	return l > other
}

// IsAtLeast reports whether l is at least as severe as other.
func (l Level) IsAtLeast(other Level) bool {
	return l >= other
}

// Highest returns the more severe of a and b.
func Highest(a, b Level) Level {
	if a.IsHigherThan(b) {
		return a
	}
	return b
}

// ParseLevel converts a canonical level name into a Level. The empty
// string parses as LevelNone, matching its wire representation in
// reports written by older producers. Any other unknown name returns a
// *FormatError.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "":
		return LevelNone, nil
	case "none":
		return LevelNone, nil
	case "info":
		return LevelInfo, nil
	case "concern":
		return LevelConcern, nil
	case "warn":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "fatal":
		return LevelFatal, nil
	default:
		return LevelNone, &FormatError{Expected: "a warning level name", Actual: s}
	}
}

// LevelFromMarker maps a node markup severity marker to its level:
// '-' for none, '+' for info, '!' for warn and 'x' for error. The
// second return value reports whether c is a recognized marker.
func LevelFromMarker(c rune) (Level, bool) {
	switch c {
	case '-':
		return LevelNone, true
	case '+':
		return LevelInfo, true
	case '!':
		return LevelWarn, true
	case 'x':
		return LevelError, true
	default:
		return LevelNone, false
	}
}
