// Package frontmatter provides utilities for parsing and formatting
// YAML frontmatter in markdown files.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNoFrontmatter is returned when the input does not start with a
// "---" delimiter line, or when the closing delimiter is never found.
var ErrNoFrontmatter = errors.New("no frontmatter found")

// ErrInvalidYAML is returned when the frontmatter block exists but does
// not parse as YAML.
var ErrInvalidYAML = errors.New("invalid YAML")

// Parse extracts YAML frontmatter and body content from a reader.
//
// The frontmatter must be delimited by lines containing only "---".
// The content between the delimiters is unmarshaled into a new T, and
// everything after the closing delimiter is returned verbatim as the
// body. CRLF line endings are normalized to LF.
func Parse[T any](r io.Reader) (*T, string, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, "", err
	}

	fm, body, err := split(content)
	if err != nil {
		return nil, "", err
	}

	matter := new(T)
	if err := yaml.Unmarshal(fm, matter); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}

	return matter, body, nil
}

// ParseFile is like Parse but reads from the named file.
func ParseFile[T any](path string) (*T, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	return Parse[T](f)
}

// split separates the raw frontmatter block from the body. Line endings
// are normalized first so the caller never sees CRLF.
func split(content []byte) (fm []byte, body string, err error) {
	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))

	if !bytes.HasPrefix(content, []byte("---\n")) {
		return nil, "", ErrNoFrontmatter
	}
	rest := content[4:]

	// Empty frontmatter: the closing delimiter follows immediately.
	if bytes.HasPrefix(rest, []byte("---\n")) {
		return nil, string(rest[4:]), nil
	}
	if bytes.Equal(rest, []byte("---")) {
		return nil, "", nil
	}

	if i := bytes.Index(rest, []byte("\n---\n")); i >= 0 {
		return rest[:i+1], string(rest[i+5:]), nil
	}
	if bytes.HasSuffix(rest, []byte("\n---")) {
		return rest[:len(rest)-3], "", nil
	}

	// Opening delimiter without a closing one.
	return nil, "", ErrNoFrontmatter
}

// Format formats content with YAML frontmatter.
// The matter struct is serialized to YAML and wrapped in "---" delimiters,
// followed by the body content.
func Format(matter any, body string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("---\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(matter); err != nil {
		return nil, err
	}

	buf.WriteString("---\n")
	if body != "" {
		buf.WriteString("\n")
		buf.WriteString(body)
		if !strings.HasSuffix(body, "\n") {
			buf.WriteString("\n")
		}
	}

	return buf.Bytes(), nil
}
