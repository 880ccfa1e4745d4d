// Package report models hierarchical status reports: tabs of warning
// level trees, flat messages and action buttons, together with the
// strict JSON wire format that carries a finished report to an
// out-of-process viewer.
//
// A Report is assembled through builders (AddTab, AddButton,
// AddMessage, Node.AddChild), encoded with Encode and read back with
// Decode. The wire format fixes the order of every field, so a decoded
// report re-encodes to byte-identical output.
package report

// Report is a complete status report: the top-level container handed
// to a viewer.
type Report struct {
	// Title is the window or page title for the report.
	Title string

	// MainText is the text shown above all tabs.
	MainText string

	// Messages are flat notices shown outside the tab trees.
	Messages []*Message

	// Tabs are the status trees of the report, in display order.
	Tabs []*Tab

	// Buttons are the report-level actions.
	Buttons []*Button

	customIcons []map[int][]byte
}

// New returns an empty report with the given title and main text.
func New(title, mainText string) *Report {
	return &Report{Title: title, MainText: mainText}
}

// AllocateIcon registers a custom icon and returns its index, stable
// for the lifetime of the report. The map is keyed by pixel size, with
// each value holding the undecoded image bytes for that size. Icons
// travel to the viewer out of band; they are not part of the wire
// encoding.
func (r *Report) AllocateIcon(sizes map[int][]byte) int {
	r.customIcons = append(r.customIcons, sizes)
	return len(r.customIcons) - 1
}

// CustomIcon returns the registered icon sizes for index, or nil if no
// icon was allocated there.
func (r *Report) CustomIcon(index int) map[int][]byte {
	if index < 0 || index >= len(r.customIcons) {
		return nil
	}
	return r.customIcons[index]
}

// AddTab appends a new tab whose root node carries the given name and
// returns it.
func (r *Report) AddTab(name string) *Tab {
	tab := &Tab{Root: newNode(nil, name)}
	r.Tabs = append(r.Tabs, tab)
	return tab
}

// AddButton appends a report-level button and returns it.
func (r *Report) AddButton(text string, kind ButtonKind) *Button {
	button := &Button{Text: text, Kind: kind}
	r.Buttons = append(r.Buttons, button)
	return button
}

// AddMessage appends a message with the given title and returns it.
func (r *Report) AddMessage(title string) *Message {
	message := &Message{Title: title}
	r.Messages = append(r.Messages, message)
	return message
}

// Level reports the maximum warning level across all tab roots.
func (r *Report) Level() Level {
	max := LevelNone
	for _, tab := range r.Tabs {
		if tab.Root.Level().IsHigherThan(max) {
			max = tab.Root.Level()
		}
	}
	return max
}

// Tab is one status tree in a report.
type Tab struct {
	// Root is the root node of the tab's tree. Its name is the tab's
	// display name. The root has no parent.
	Root *Node

	// FilterLevel is the minimum warning level a node must have for
	// the viewer to display it. The zero value shows everything.
	FilterLevel Level
}

// AddChild appends a child below the tab's root node. The markup rules
// of Node.AddChild apply.
func (t *Tab) AddChild(markup string) *Node {
	return t.Root.AddChild(markup)
}

// Message is a flat notice displayed outside the tab trees, typically
// used for error summaries that deserve more prominence than a tree
// node.
type Message struct {
	// Title is the message headline.
	Title string

	// IconType identifies the icon for the message, using the same
	// vocabulary as Node.IconType.
	IconType string

	// Description holds the message body, one entry per paragraph.
	Description []string

	// AdditionalInfo holds smaller print shown below the description.
	AdditionalInfo []string

	// Buttons are the actions attached to this message.
	Buttons []*Button

	// SubMessageHeader is the heading shown above SubMessages.
	SubMessageHeader string

	// SubMessages are nested messages grouped under this one.
	SubMessages []*Message
}

// AddButton appends a button to the message and returns it.
func (m *Message) AddButton(text string, kind ButtonKind) *Button {
	button := &Button{Text: text, Kind: kind}
	m.Buttons = append(m.Buttons, button)
	return button
}

// AddSubMessage appends a nested message with the given title and
// returns it.
func (m *Message) AddSubMessage(title string) *Message {
	sub := &Message{Title: title}
	m.SubMessages = append(m.SubMessages, sub)
	return sub
}

// ButtonKind describes how a viewer treats activation of a button.
type ButtonKind int

const (
	// ClickOnce marks a button that is disabled after its first
	// activation.
	ClickOnce ButtonKind = iota

	// ClickMany marks a button that stays active and may be used any
	// number of times.
	ClickMany
)

// String returns the wire name of the button kind.
func (k ButtonKind) String() string {
	switch k {
	case ClickOnce:
		return "CLICK_ONCE"
	case ClickMany:
		return "CLICK_MANY"
	default:
		return "unknown"
	}
}

// ParseButtonKind converts a wire name into a ButtonKind. Unknown
// names return a *FormatError.
func ParseButtonKind(s string) (ButtonKind, error) {
	switch s {
	case "CLICK_ONCE":
		return ClickOnce, nil
	case "CLICK_MANY":
		return ClickMany, nil
	default:
		return ClickOnce, &FormatError{Expected: "a button kind name", Actual: s}
	}
}

// Button is a viewer action the user can activate.
type Button struct {
	// Text is the button label.
	Text string

	// Kind describes whether the button may be activated repeatedly.
	Kind ButtonKind

	// Clipboard is text to copy when the button is activated, for
	// buttons that copy details out of the report.
	Clipboard string

	// ShouldClose asks the viewer to close after activation.
	ShouldClose bool

	// ShouldContinue asks the viewer to let the reporting process
	// continue after activation.
	ShouldContinue bool
}

// MakeClose marks the button as closing the viewer and returns it.
func (b *Button) MakeClose() *Button {
	b.ShouldClose = true
	return b
}

// MakeContinue marks the button as letting the reporting process
// continue and returns it.
func (b *Button) MakeContinue() *Button {
	b.ShouldContinue = true
	return b
}

// WithClipboard sets the button's clipboard text and returns it.
func (b *Button) WithClipboard(clipboard string) *Button {
	b.Clipboard = clipboard
	return b
}
