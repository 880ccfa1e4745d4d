package report

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// iconToken matches a leading "$name$" icon assignment in node markup.
var iconToken = regexp.MustCompile(`^\$([a-z.+-]+)\$`)

// AddChild appends a child node described by a line of markup and
// returns it. The markup is, in order:
//
//   - Leading tab characters select the depth below this node. Each
//     tab descends into the last existing child, creating empty
//     placeholder children where none exist; every node descended
//     into is marked to expand by default.
//   - An optional warning level marker followed by whitespace: "- "
//     for none, "+ " for info, "! " for warn, "x " for error. The
//     level is applied through SetLevel and so raises ancestors too.
//   - An optional leading "$name$" icon assignment, where the name
//     uses only lowercase letters, '.', '+' and '-'. It is only
//     recognized when the remaining text is longer than three
//     characters.
//
// Whatever remains, trimmed, becomes the child's name. Text without
// any markup is used as-is, so AddChild doubles as the plain way to
// append a named child.
func (n *Node) AddChild(markup string) *Node {
	indent := 0
	text := markup

	for strings.HasPrefix(text, "\t") {
		indent++
		text = text[1:]
	}
	text = strings.TrimSpace(text)

	level := LevelNone
	if len(text) > 1 {
		marker, size := utf8.DecodeRuneInString(text)
		next, nextSize := utf8.DecodeRuneInString(text[size:])
		if unicode.IsSpace(next) {
			if l, ok := LevelFromMarker(marker); ok {
				level = l
				text = text[size+nextSize:]
			}
		}
	}
	text = strings.TrimSpace(text)

	icon := ""
	if len(text) > 3 && text[0] == '$' {
		if m := iconToken.FindStringSubmatch(text); m != nil {
			icon = m[1]
			text = text[len(icon)+2:]
		}
	}
	text = strings.TrimSpace(text)

	to := n
	for ; indent > 0; indent-- {
		if len(to.children) == 0 {
			node := newNode(to, "")
			to.children = append(to.children, node)
			to = node
		} else {
			to = to.children[len(to.children)-1]
		}
		to.ExpandByDefault = true
	}

	child := newNode(to, text)
	child.SetLevel(level)
	child.IconType = icon
	to.children = append(to.children, child)
	return child
}
