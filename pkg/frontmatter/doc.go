// Package frontmatter provides generic parsing of YAML frontmatter from
// Markdown files used by the sitrep CLI for outline sources.
//
// Frontmatter is delimited by lines containing only "---" at the start and end.
// The content between delimiters is parsed as YAML and unmarshaled into the
// type parameter T. The remaining content after the closing delimiter is
// returned as the body.
//
// # Basic Usage
//
//	type OutlineMeta struct {
//		Title    string `yaml:"title"`
//		MainText string `yaml:"main_text"`
//	}
//
//	meta, body, err := frontmatter.ParseFile[OutlineMeta]("status.md")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("Report: %s\nLines:\n%s", meta.Title, body)
//
// # Error Handling
//
// The package defines sentinel errors for common failure conditions:
//
//   - [ErrNoFrontmatter]: file doesn't start with "---" delimiter
//   - [ErrInvalidYAML]: frontmatter exists but contains invalid YAML
//
// These can be checked using [errors.Is]:
//
//	meta, body, err := frontmatter.Parse[OutlineMeta](r)
//	if errors.Is(err, frontmatter.ErrNoFrontmatter) {
//		// handle missing frontmatter
//	}
//
// # Supported Formats
//
// The parser supports YAML frontmatter with the standard "---" delimiters.
// Both Unix (LF) and Windows (CRLF) line endings are handled correctly.
package frontmatter
