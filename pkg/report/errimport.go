package report

import (
	"fmt"
	"reflect"
	"strings"
)

// Preformatted marks errors whose Error text is already shaped for
// display. AddError uses the text of such an error verbatim as the
// node name instead of the usual "TypeName: message" label.
//
// The check is a direct type assertion on the error value itself:
// wrapping a Preformatted error hides it.
type Preformatted interface {
	error
	Preformatted()
}

// Preformat returns a Preformatted error with the given display text.
// If cause is non-nil it is reachable through Unwrap and shows up as a
// child node when the error is imported into a tree.
func Preformat(text string, cause error) error {
	return &preformattedError{text: text, cause: cause}
}

type preformattedError struct {
	text  string
	cause error
}

func (e *preformattedError) Error() string { return e.text }

func (e *preformattedError) Unwrap() error { return e.cause }

func (e *preformattedError) Preformatted() {}

// AddError imports an error chain into the tree below this node. Each
// error becomes a child node at LevelError, expanded by default, with
// its causes nested beneath it: joined errors (Unwrap() []error)
// contribute one subtree per member, a single wrapped cause
// (Unwrap() error) one subtree. Multi-line error texts put the first
// line in the node name and feed the remaining lines through AddChild,
// so indent and marker prefixes in later lines still apply.
//
// Error values already imported during this call are skipped, so
// cyclic cause chains terminate. AddError returns the node created for
// err, or the receiver when err is nil.
func (n *Node) AddError(err error) *Node {
	return addError(n, &errorSet{}, err, func(e error) error { return e })
}

// AddCleanedError imports an error chain like AddError, but first
// collapses wrapper errors that add no information of their own: while
// an error's text merely repeats its cause's text or label, the
// wrapper is dropped and the cause imported in its place.
func (n *Node) AddCleanedError(err error) *Node {
	return addError(n, &errorSet{}, err, cleanRedundant)
}

func addError(n *Node, seen *errorSet, err error, filter func(error) error) *Node {
	if err == nil || !seen.add(err) {
		return n
	}

	err = filter(err)
	sub := n.addErrorNode(err)

	if m, ok := err.(interface{ Unwrap() []error }); ok {
		for _, joined := range m.Unwrap() {
			addError(sub, seen, joined, filter)
		}
	} else if u, ok := err.(interface{ Unwrap() error }); ok {
		if cause := u.Unwrap(); cause != nil {
			addError(sub, seen, cause, filter)
		}
	}

	return sub
}

func (n *Node) addErrorNode(err error) *Node {
	var msg string
	if _, ok := err.(Preformatted); ok {
		msg = err.Error()
	} else {
		msg = errorLabel(err)
	}

	lines := splitLines(msg)
	sub := newNode(n, lines[0])
	n.children = append(n.children, sub)
	sub.SetError()
	sub.ExpandByDefault = true

	for _, line := range lines[1:] {
		sub.AddChild(line)
	}
	return sub
}

// cleanRedundant unwraps err while its message merely repeats that of
// its cause, as fmt.Errorf("%w", cause) and friends produce.
func cleanRedundant(err error) error {
	for {
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return err
		}
		cause := u.Unwrap()
		if cause == nil {
			return err
		}

		msg := err.Error()
		if msg == "" {
			msg = typeName(err)
		}
		if msg != cause.Error() && msg != errorLabel(cause) {
			return err
		}
		err = cause
	}
}

// errorLabel shapes an error for display as "TypeName: message", or
// just the type name when the error has no message.
func errorLabel(err error) string {
	msg := err.Error()
	if msg == "" {
		return typeName(err)
	}
	return typeName(err) + ": " + msg
}

// typeName returns the unqualified type name of err's dynamic type,
// without any leading "*".
func typeName(err error) string {
	name := strings.TrimPrefix(fmt.Sprintf("%T", err), "*")
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// splitLines splits on "\n" and drops trailing empty lines, so an
// error text ending in a newline does not produce empty child nodes.
func splitLines(s string) []string {
	lines := strings.Split(s, "\n")
	for len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// errorSet tracks error values by identity during a single import.
// Pointer-backed errors are keyed by address, matching Java-style
// identity exactly. Comparable value errors fall back to an equality
// scan, and values that are not comparable at all are treated as
// always new.
type errorSet struct {
	ptrs   map[uintptr]struct{}
	values []error
}

// add records err and reports whether it was not seen before.
func (s *errorSet) add(err error) bool {
	v := reflect.ValueOf(err)
	switch v.Kind() {
	case reflect.Pointer, reflect.UnsafePointer:
		p := v.Pointer()
		if _, ok := s.ptrs[p]; ok {
			return false
		}
		if s.ptrs == nil {
			s.ptrs = make(map[uintptr]struct{})
		}
		s.ptrs[p] = struct{}{}
		return true
	default:
		if !v.Comparable() {
			return true
		}
		for _, seen := range s.values {
			if seen == err {
				return false
			}
		}
		s.values = append(s.values, err)
		return true
	}
}
