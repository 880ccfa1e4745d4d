package outline

import (
	"bytes"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/thoreinstein/sitrep/internal/errors"
	"github.com/thoreinstein/sitrep/pkg/fileutil"
	"github.com/thoreinstein/sitrep/pkg/frontmatter"
	"github.com/thoreinstein/sitrep/pkg/report"
)

const (
	// DefaultTitle is used when an outline does not name its report.
	DefaultTitle = "Status Report"

	// DefaultTabName is used for the markdown form, which describes a
	// single tab without naming it.
	DefaultTabName = "Status"
)

// Load reads the outline file at path and builds a report from it. The
// format is chosen by extension: .toml for the full form, .md or
// .markdown for the single-tab form. Other extensions fail with
// errors.ErrUnknownFormat.
func Load(path string) (*report.Report, error) {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading outline %q", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return ParseTOML(data)
	case ".md", ".markdown":
		return ParseMarkdown(data)
	default:
		return nil, errors.Wrapf(errors.ErrUnknownFormat, "outline %q", path)
	}
}

// tomlOutline mirrors the TOML outline form.
type tomlOutline struct {
	Title    string        `toml:"title"`
	MainText string        `toml:"main_text"`
	Tabs     []tomlTab     `toml:"tabs"`
	Messages []tomlMessage `toml:"messages"`
	Buttons  []tomlButton  `toml:"buttons"`
}

type tomlTab struct {
	Name       string   `toml:"name"`
	Filter     string   `toml:"filter"`
	GroupPaths bool     `toml:"group_paths"`
	Lines      []string `toml:"lines"`
	Files      []string `toml:"files"`
}

type tomlMessage struct {
	Title       string        `toml:"title"`
	Icon        string        `toml:"icon"`
	Description []string      `toml:"description"`
	Info        []string      `toml:"info"`
	SubHeader   string        `toml:"sub_header"`
	Sub         []tomlMessage `toml:"sub"`
	Buttons     []tomlButton  `toml:"buttons"`
}

type tomlButton struct {
	Text      string `toml:"text"`
	Kind      string `toml:"kind"`
	Close     bool   `toml:"close"`
	Continue  bool   `toml:"continue"`
	Clipboard string `toml:"clipboard"`
}

// ParseTOML builds a report from the TOML outline form.
func ParseTOML(data []byte) (*report.Report, error) {
	var src tomlOutline
	if err := toml.Unmarshal(data, &src); err != nil {
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			return nil, errors.Newf("TOML syntax error at line %d, column %d: %s", row, col, decodeErr.Error())
		}
		return nil, errors.Wrap(err, "parsing outline")
	}

	rep := report.New(titleOrDefault(src.Title), src.MainText)

	for i, t := range src.Tabs {
		if err := buildTab(rep, t); err != nil {
			return nil, errors.Wrapf(err, "tab %d", i)
		}
	}
	for i, m := range src.Messages {
		if err := buildMessage(rep.AddMessage(m.Title), m); err != nil {
			return nil, errors.Wrapf(err, "message %d", i)
		}
	}
	for i, b := range src.Buttons {
		if err := buildButton(rep.AddButton(b.Text, report.ClickOnce), b); err != nil {
			return nil, errors.Wrapf(err, "button %d", i)
		}
	}

	return rep, nil
}

// markdownMeta is the frontmatter of the markdown outline form.
type markdownMeta struct {
	Title      string `yaml:"title"`
	MainText   string `yaml:"main_text"`
	Tab        string `yaml:"tab"`
	Filter     string `yaml:"filter"`
	GroupPaths bool   `yaml:"group_paths"`
}

// ParseMarkdown builds a report from the markdown outline form: YAML
// frontmatter for the report fields, body lines as the markup of a
// single tab.
func ParseMarkdown(data []byte) (*report.Report, error) {
	meta, body, err := frontmatter.Parse[markdownMeta](bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "parsing outline header")
	}

	rep := report.New(titleOrDefault(meta.Title), meta.MainText)

	tabName := meta.Tab
	if tabName == "" {
		tabName = DefaultTabName
	}
	tab := rep.AddTab(tabName)

	filter, err := report.ParseLevel(meta.Filter)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid filter level %q", meta.Filter)
	}
	tab.FilterLevel = filter

	for _, line := range strings.Split(body, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		tab.AddChild(line)
	}

	if meta.GroupPaths {
		tab.Root.MergeChildFilePaths(report.IconFolder)
	}

	return rep, nil
}

func titleOrDefault(title string) string {
	if title == "" {
		return DefaultTitle
	}
	return title
}

func buildTab(rep *report.Report, src tomlTab) error {
	if src.Name == "" {
		return errors.New("missing name")
	}

	tab := rep.AddTab(src.Name)

	filter, err := report.ParseLevel(src.Filter)
	if err != nil {
		return errors.Wrapf(err, "invalid filter level %q", src.Filter)
	}
	tab.FilterLevel = filter

	for _, line := range src.Lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		tab.AddChild(line)
	}

	for _, path := range src.Files {
		if path == "" {
			continue
		}
		tab.Root.FileNode(path, report.IconFolder, fileIcon(path))
	}

	if src.GroupPaths {
		tab.Root.MergeChildFilePaths(report.IconFolder)
	}

	return nil
}

func buildMessage(msg *report.Message, src tomlMessage) error {
	if src.Title == "" {
		return errors.New("missing title")
	}

	msg.IconType = src.Icon
	msg.Description = src.Description
	msg.AdditionalInfo = src.Info
	msg.SubMessageHeader = src.SubHeader

	for i, b := range src.Buttons {
		if err := buildButton(msg.AddButton(b.Text, report.ClickOnce), b); err != nil {
			return errors.Wrapf(err, "button %d", i)
		}
	}
	for i, sub := range src.Sub {
		if err := buildMessage(msg.AddSubMessage(sub.Title), sub); err != nil {
			return errors.Wrapf(err, "sub-message %d", i)
		}
	}

	return nil
}

func buildButton(btn *report.Button, src tomlButton) error {
	if src.Text == "" {
		return errors.New("missing text")
	}

	kind, err := parseKind(src.Kind)
	if err != nil {
		return err
	}
	btn.Kind = kind

	if src.Close {
		btn.MakeClose()
	}
	if src.Continue {
		btn.MakeContinue()
	}
	if src.Clipboard != "" {
		btn.WithClipboard(src.Clipboard)
	}

	return nil
}

// parseKind maps the outline's friendly button kinds to wire kinds.
// The empty string defaults to a single-use button.
func parseKind(kind string) (report.ButtonKind, error) {
	switch kind {
	case "", "once":
		return report.ClickOnce, nil
	case "many":
		return report.ClickMany, nil
	default:
		return report.ClickOnce, errors.Newf("invalid button kind %q (expected \"once\" or \"many\")", kind)
	}
}

// fileIcon picks a node icon from a file path's extension.
func fileIcon(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jar", ".zip":
		return report.IconArchive
	case ".json":
		return report.IconJSON
	default:
		return report.IconFile
	}
}
