package report

import (
	"sort"
	"strings"

	"github.com/thoreinstein/sitrep/internal/errors"
)

// Node is a single entry in a status tree. Nodes form an ordered tree
// under a Tab root and carry a warning level that aggregates upward:
// a node's level is always at least as severe as every descendant's.
//
// Nodes are created through Tab roots and AddChild rather than
// directly, so the parent chain and level aggregation stay consistent.
type Node struct {
	// Name is the display text of the node.
	Name string

	// IconType identifies the icon a viewer should render for this
	// node. The empty string selects the viewer's default. Values are
	// opaque to this package; decorations may be appended with "+".
	IconType string

	// ExpandByDefault tells viewers to show this node's children
	// without waiting for the user to expand it.
	ExpandByDefault bool

	// Details holds optional extra text for the node. Lines are
	// separated by "\n". An empty string means no details and is
	// encoded as null on the wire.
	Details string

	level    Level
	parent   *Node
	children []*Node
}

func newNode(parent *Node, name string) *Node {
	return &Node{Name: name, parent: parent}
}

// Level reports the maximum warning level of this node and all of its
// descendants.
func (n *Node) Level() Level {
	return n.level
}

// SetLevel raises the node's warning level. Setting the level the node
// already has is a no-op. Raising it first raises every ancestor that
// is below the new level, keeping the aggregate invariant intact.
//
// Lowering a level is not supported: ancestor levels cannot be
// recomputed downward, so attempting it panics.
func (n *Node) SetLevel(level Level) {
	if n.level == level {
		return
	}
	if n.level.IsHigherThan(level) {
		panic(errors.AssertionFailedf("cannot lower a node's warning level from %s to %s", n.level, level))
	}
	if n.parent != nil && level.IsHigherThan(n.parent.level) {
		n.parent.SetLevel(level)
	}
	n.level = level
}

// SetError raises the node's warning level to LevelError.
func (n *Node) SetError() {
	n.SetLevel(LevelError)
}

// SetWarn raises the node's warning level to LevelWarn.
func (n *Node) SetWarn() {
	n.SetLevel(LevelWarn)
}

// SetInfo raises the node's warning level to LevelInfo.
func (n *Node) SetInfo() {
	n.SetLevel(LevelInfo)
}

// Children returns the node's children in display order. The returned
// slice is the node's own; callers must not modify it.
func (n *Node) Children() []*Node {
	return n.children
}

// MoveTo detaches the node from its current parent and appends it to
// newParent's children.
//
// Levels are not re-aggregated: the old parent keeps a level that may
// now be higher than any of its remaining children, and newParent is
// not raised to cover the moved subtree.
func (n *Node) MoveTo(newParent *Node) {
	if n.parent != nil {
		n.parent.removeChild(n)
	}
	n.parent = newParent
	newParent.children = append(newParent.children, n)
}

func (n *Node) removeChild(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

// MergeWithSingleChild merges the node's only child into the node
// itself: the child's name is appended to this node's name with join
// between them, and the child's children are re-parented here in
// order. The child's own icon, level and details are discarded. Does
// nothing unless the node has exactly one child.
func (n *Node) MergeWithSingleChild(join string) {
	if len(n.children) != 1 {
		return
	}

	child := n.children[0]
	n.children = n.children[:0]
	n.Name += join + child.Name

	for _, cc := range child.children {
		cc.parent = n
		n.children = append(n.children, cc)
	}
	child.children = nil
}

// MergeSingleChildFilePath collapses runs of single-entry folders
// under this node into one "a/b/c" label. While the node and its only
// child both carry folderType as their icon, the child is merged in
// with "/" as the join text. Afterwards children are sorted by name
// and the collapse recurses into each of them. Does nothing if the
// node's icon is not folderType.
func (n *Node) MergeSingleChildFilePath(folderType string) {
	if n.IconType != folderType {
		return
	}

	for len(n.children) == 1 && n.children[0].IconType == folderType {
		n.MergeWithSingleChild("/")
	}

	sort.SliceStable(n.children, func(i, j int) bool {
		return n.children[i].Name < n.children[j].Name
	})
	n.MergeChildFilePaths(folderType)
}

// MergeChildFilePaths applies MergeSingleChildFilePath to every child.
// This is the usual entry point on a tab root, whose own icon is not a
// folder.
func (n *Node) MergeChildFilePaths(folderType string) {
	for _, c := range n.children {
		c.MergeSingleChildFilePath(folderType)
	}
}

// FileNode finds or creates the node for a "/"-separated path below
// this node, one child per non-empty segment. Existing children are
// matched by exact name. Whenever a new segment child is created, the
// node it hangs off is tagged with folderType if its icon is still the
// default. The final node is tagged with fileType and returned.
//
// Together with MergeChildFilePaths this turns flat file lists into
// grouped directory trees.
func (n *Node) FileNode(path, folderType, fileType string) *Node {
	fileNode := n

segments:
	for _, s := range strings.Split(path, "/") {
		if s == "" {
			continue
		}

		for _, c := range fileNode.children {
			if c.Name == s {
				fileNode = c
				continue segments
			}
		}

		if fileNode.IconType == IconDefault {
			fileNode.IconType = folderType
		}
		fileNode = fileNode.AddChild(s)
	}

	fileNode.IconType = fileType
	return fileNode
}
