package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/thoreinstein/sitrep/internal/errors"
)

// The wire format is a single JSON object with every field in a fixed
// order. The writer always emits fields in that order and the reader
// requires it, which keeps both sides trivial and makes re-encoding a
// decoded report byte-identical.
//
// The wire structs below define the field order through struct tag
// order. They are converted to and from the public types at the
// boundary.

type wireReport struct {
	Title    string        `json:"title"`
	MainText string        `json:"mainText"`
	Messages []wireMessage `json:"messages"`
	Tabs     []wireTab     `json:"tabs"`
	Buttons  []wireButton  `json:"buttons"`
}

type wireMessage struct {
	Title            string        `json:"title"`
	Icon             string        `json:"icon"`
	Description      []string      `json:"description"`
	Info             []string      `json:"info"`
	Buttons          []wireButton  `json:"buttons"`
	SubMessageHeader string        `json:"sub_message_header"`
	SubMessages      []wireMessage `json:"sub_messages"`
}

type wireTab struct {
	Level string   `json:"level"`
	Node  wireNode `json:"node"`
}

type wireNode struct {
	Name            string     `json:"name"`
	Icon            string     `json:"icon"`
	Level           string     `json:"level"`
	ExpandByDefault bool       `json:"expandByDefault"`
	Details         *string    `json:"details"`
	Children        []wireNode `json:"children"`
}

type wireButton struct {
	Text           string `json:"text"`
	Type           string `json:"type"`
	ShouldClose    bool   `json:"shouldClose"`
	ShouldContinue bool   `json:"shouldContinue"`
	Clipboard      string `json:"clipboard"`
}

// Encode writes the report's wire encoding to w.
func (r *Report) Encode(w io.Writer) error {
	data, err := r.EncodeBytes()
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, "write report")
	}
	return nil
}

// EncodeBytes returns the report's wire encoding. The output is
// deterministic: encoding the same report twice yields the same bytes.
func (r *Report) EncodeBytes() ([]byte, error) {
	data, err := json.Marshal(r.toWire())
	if err != nil {
		return nil, errors.Wrap(err, "encode report")
	}
	return data, nil
}

func (r *Report) toWire() wireReport {
	w := wireReport{
		Title:    r.Title,
		MainText: r.MainText,
		Messages: make([]wireMessage, 0, len(r.Messages)),
		Tabs:     make([]wireTab, 0, len(r.Tabs)),
		Buttons:  make([]wireButton, 0, len(r.Buttons)),
	}
	for _, m := range r.Messages {
		w.Messages = append(w.Messages, m.toWire())
	}
	for _, t := range r.Tabs {
		w.Tabs = append(w.Tabs, wireTab{Level: t.FilterLevel.String(), Node: t.Root.toWire()})
	}
	for _, b := range r.Buttons {
		w.Buttons = append(w.Buttons, b.toWire())
	}
	return w
}

func (m *Message) toWire() wireMessage {
	w := wireMessage{
		Title:            m.Title,
		Icon:             m.IconType,
		Description:      emptyNotNull(m.Description),
		Info:             emptyNotNull(m.AdditionalInfo),
		Buttons:          make([]wireButton, 0, len(m.Buttons)),
		SubMessageHeader: m.SubMessageHeader,
		SubMessages:      make([]wireMessage, 0, len(m.SubMessages)),
	}
	for _, b := range m.Buttons {
		w.Buttons = append(w.Buttons, b.toWire())
	}
	for _, sub := range m.SubMessages {
		w.SubMessages = append(w.SubMessages, sub.toWire())
	}
	return w
}

func (n *Node) toWire() wireNode {
	w := wireNode{
		Name:            n.Name,
		Icon:            n.IconType,
		Level:           n.level.String(),
		ExpandByDefault: n.ExpandByDefault,
		Children:        make([]wireNode, 0, len(n.children)),
	}
	if n.Details != "" {
		details := n.Details
		w.Details = &details
	}
	for _, c := range n.children {
		w.Children = append(w.Children, c.toWire())
	}
	return w
}

func (b *Button) toWire() wireButton {
	return wireButton{
		Text:           b.Text,
		Type:           b.Kind.String(),
		ShouldClose:    b.ShouldClose,
		ShouldContinue: b.ShouldContinue,
		Clipboard:      b.Clipboard,
	}
}

func emptyNotNull(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// Decode reads one report in wire encoding from r. The reader is
// strict: fields must appear exactly in the order the writer emits
// them, and any deviation fails with a *FormatError. Parent links and
// warning levels are restored as stored; levels are not re-aggregated.
func Decode(r io.Reader) (*Report, error) {
	d := &wireReader{dec: json.NewDecoder(r)}
	rep, err := d.report()
	if err != nil {
		return nil, errors.Wrap(err, "decode report")
	}
	return rep, nil
}

// DecodeBytes decodes a report from an in-memory wire encoding.
func DecodeBytes(data []byte) (*Report, error) {
	return Decode(bytes.NewReader(data))
}

// wireReader wraps a json.Decoder with the order-enforcing primitives
// the wire format is read with.
type wireReader struct {
	dec *json.Decoder
}

func (d *wireReader) report() (*Report, error) {
	if err := d.beginObject(); err != nil {
		return nil, err
	}
	r := &Report{}

	var err error
	if err = d.name("title"); err != nil {
		return nil, err
	}
	if r.Title, err = d.stringValue(); err != nil {
		return nil, err
	}
	if err = d.name("mainText"); err != nil {
		return nil, err
	}
	if r.MainText, err = d.stringValue(); err != nil {
		return nil, err
	}

	if err = d.name("messages"); err != nil {
		return nil, err
	}
	if err = d.beginArray(); err != nil {
		return nil, err
	}
	for d.dec.More() {
		m, err := d.message()
		if err != nil {
			return nil, err
		}
		r.Messages = append(r.Messages, m)
	}
	if err = d.endArray(); err != nil {
		return nil, err
	}

	if err = d.name("tabs"); err != nil {
		return nil, err
	}
	if err = d.beginArray(); err != nil {
		return nil, err
	}
	for d.dec.More() {
		t, err := d.tab()
		if err != nil {
			return nil, err
		}
		r.Tabs = append(r.Tabs, t)
	}
	if err = d.endArray(); err != nil {
		return nil, err
	}

	if err = d.name("buttons"); err != nil {
		return nil, err
	}
	if err = d.beginArray(); err != nil {
		return nil, err
	}
	for d.dec.More() {
		b, err := d.button()
		if err != nil {
			return nil, err
		}
		r.Buttons = append(r.Buttons, b)
	}
	if err = d.endArray(); err != nil {
		return nil, err
	}

	if err = d.endObject(); err != nil {
		return nil, err
	}
	return r, nil
}

func (d *wireReader) message() (*Message, error) {
	if err := d.beginObject(); err != nil {
		return nil, err
	}
	m := &Message{}

	var err error
	if err = d.name("title"); err != nil {
		return nil, err
	}
	if m.Title, err = d.stringValue(); err != nil {
		return nil, err
	}
	if err = d.name("icon"); err != nil {
		return nil, err
	}
	if m.IconType, err = d.stringValue(); err != nil {
		return nil, err
	}

	if err = d.name("description"); err != nil {
		return nil, err
	}
	if m.Description, err = d.stringArray(); err != nil {
		return nil, err
	}
	if err = d.name("info"); err != nil {
		return nil, err
	}
	if m.AdditionalInfo, err = d.stringArray(); err != nil {
		return nil, err
	}

	if err = d.name("buttons"); err != nil {
		return nil, err
	}
	if err = d.beginArray(); err != nil {
		return nil, err
	}
	for d.dec.More() {
		b, err := d.button()
		if err != nil {
			return nil, err
		}
		m.Buttons = append(m.Buttons, b)
	}
	if err = d.endArray(); err != nil {
		return nil, err
	}

	if err = d.name("sub_message_header"); err != nil {
		return nil, err
	}
	if m.SubMessageHeader, err = d.stringValue(); err != nil {
		return nil, err
	}

	if err = d.name("sub_messages"); err != nil {
		return nil, err
	}
	if err = d.beginArray(); err != nil {
		return nil, err
	}
	for d.dec.More() {
		sub, err := d.message()
		if err != nil {
			return nil, err
		}
		m.SubMessages = append(m.SubMessages, sub)
	}
	if err = d.endArray(); err != nil {
		return nil, err
	}

	if err = d.endObject(); err != nil {
		return nil, err
	}
	return m, nil
}

func (d *wireReader) tab() (*Tab, error) {
	if err := d.beginObject(); err != nil {
		return nil, err
	}
	t := &Tab{}

	if err := d.name("level"); err != nil {
		return nil, err
	}
	level, err := d.level()
	if err != nil {
		return nil, err
	}
	t.FilterLevel = level

	if err := d.name("node"); err != nil {
		return nil, err
	}
	if t.Root, err = d.node(nil); err != nil {
		return nil, err
	}

	if err := d.endObject(); err != nil {
		return nil, err
	}
	return t, nil
}

func (d *wireReader) node(parent *Node) (*Node, error) {
	if err := d.beginObject(); err != nil {
		return nil, err
	}
	n := &Node{parent: parent}

	var err error
	if err = d.name("name"); err != nil {
		return nil, err
	}
	if n.Name, err = d.stringValue(); err != nil {
		return nil, err
	}
	if err = d.name("icon"); err != nil {
		return nil, err
	}
	if n.IconType, err = d.stringValue(); err != nil {
		return nil, err
	}
	if err = d.name("level"); err != nil {
		return nil, err
	}
	if n.level, err = d.level(); err != nil {
		return nil, err
	}
	if err = d.name("expandByDefault"); err != nil {
		return nil, err
	}
	if n.ExpandByDefault, err = d.boolValue(); err != nil {
		return nil, err
	}
	if err = d.name("details"); err != nil {
		return nil, err
	}
	if n.Details, err = d.stringOrNull(); err != nil {
		return nil, err
	}

	if err = d.name("children"); err != nil {
		return nil, err
	}
	if err = d.beginArray(); err != nil {
		return nil, err
	}
	for d.dec.More() {
		child, err := d.node(n)
		if err != nil {
			return nil, err
		}
		n.children = append(n.children, child)
	}
	if err = d.endArray(); err != nil {
		return nil, err
	}

	if err = d.endObject(); err != nil {
		return nil, err
	}
	return n, nil
}

func (d *wireReader) button() (*Button, error) {
	if err := d.beginObject(); err != nil {
		return nil, err
	}
	b := &Button{}

	var err error
	if err = d.name("text"); err != nil {
		return nil, err
	}
	if b.Text, err = d.stringValue(); err != nil {
		return nil, err
	}

	if err = d.name("type"); err != nil {
		return nil, err
	}
	kindName, err := d.stringValue()
	if err != nil {
		return nil, err
	}
	if b.Kind, err = ParseButtonKind(kindName); err != nil {
		return nil, err
	}

	if err = d.name("shouldClose"); err != nil {
		return nil, err
	}
	if b.ShouldClose, err = d.boolValue(); err != nil {
		return nil, err
	}
	if err = d.name("shouldContinue"); err != nil {
		return nil, err
	}
	if b.ShouldContinue, err = d.boolValue(); err != nil {
		return nil, err
	}
	if err = d.name("clipboard"); err != nil {
		return nil, err
	}
	if b.Clipboard, err = d.stringValue(); err != nil {
		return nil, err
	}

	if err = d.endObject(); err != nil {
		return nil, err
	}
	return b, nil
}

func (d *wireReader) level() (Level, error) {
	s, err := d.stringValue()
	if err != nil {
		return LevelNone, err
	}
	return ParseLevel(s)
}

func (d *wireReader) stringArray() ([]string, error) {
	if err := d.beginArray(); err != nil {
		return nil, err
	}
	var out []string
	for d.dec.More() {
		s, err := d.stringValue()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := d.endArray(); err != nil {
		return nil, err
	}
	return out, nil
}

func (d *wireReader) beginObject() error { return d.delim('{') }

func (d *wireReader) endObject() error { return d.delim('}') }

func (d *wireReader) beginArray() error { return d.delim('[') }

func (d *wireReader) endArray() error { return d.delim(']') }

func (d *wireReader) delim(want rune) error {
	tok, err := d.dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || rune(delim) != want {
		return &FormatError{Expected: strconv.Quote(string(want)), Actual: tokenText(tok)}
	}
	return nil
}

// name reads an object key and requires it to be exactly expected.
func (d *wireReader) name(expected string) error {
	tok, err := d.dec.Token()
	if err != nil {
		return err
	}
	s, ok := tok.(string)
	if !ok {
		return &FormatError{Expected: fmt.Sprintf("field %q", expected), Actual: tokenText(tok)}
	}
	if s != expected {
		return &FormatError{Expected: fmt.Sprintf("field %q", expected), Actual: s}
	}
	return nil
}

func (d *wireReader) stringValue() (string, error) {
	tok, err := d.dec.Token()
	if err != nil {
		return "", err
	}
	s, ok := tok.(string)
	if !ok {
		return "", &FormatError{Expected: "a string value", Actual: tokenText(tok)}
	}
	return s, nil
}

func (d *wireReader) stringOrNull() (string, error) {
	tok, err := d.dec.Token()
	if err != nil {
		return "", err
	}
	if tok == nil {
		return "", nil
	}
	s, ok := tok.(string)
	if !ok {
		return "", &FormatError{Expected: "a string or null", Actual: tokenText(tok)}
	}
	return s, nil
}

func (d *wireReader) boolValue() (bool, error) {
	tok, err := d.dec.Token()
	if err != nil {
		return false, err
	}
	b, ok := tok.(bool)
	if !ok {
		return false, &FormatError{Expected: "a boolean value", Actual: tokenText(tok)}
	}
	return b, nil
}

// tokenText renders a JSON token for inclusion in a FormatError.
func tokenText(tok json.Token) string {
	switch t := tok.(type) {
	case nil:
		return "null"
	case json.Delim:
		return t.String()
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}
