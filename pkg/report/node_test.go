package report

import (
	"testing"
)

// newTestTree returns a tab root for building trees directly.
func newTestTree(t *testing.T, name string) *Node {
	t.Helper()
	return New("test", "").AddTab(name).Root
}

func TestSetLevel_RaisesAncestors(t *testing.T) {
	root := newTestTree(t, "root")
	a := root.AddChild("a")
	b := a.AddChild("b")

	b.SetLevel(LevelWarn)

	if b.Level() != LevelWarn {
		t.Errorf("b.Level() = %s, want warn", b.Level())
	}
	if a.Level() != LevelWarn {
		t.Errorf("a.Level() = %s, want warn (raised by descendant)", a.Level())
	}
	if root.Level() != LevelWarn {
		t.Errorf("root.Level() = %s, want warn (raised by descendant)", root.Level())
	}
}

func TestSetLevel_KeepsHigherAncestors(t *testing.T) {
	root := newTestTree(t, "root")
	failed := root.AddChild("failed")
	failed.SetError()

	ok := root.AddChild("ok")
	ok.SetLevel(LevelInfo)

	if root.Level() != LevelError {
		t.Errorf("root.Level() = %s, want error to survive a lower sibling", root.Level())
	}
	if ok.Level() != LevelInfo {
		t.Errorf("ok.Level() = %s, want info", ok.Level())
	}
}

func TestSetLevel_SameLevelIsNoOp(t *testing.T) {
	root := newTestTree(t, "root")
	root.SetLevel(LevelWarn)
	root.SetLevel(LevelWarn)

	if root.Level() != LevelWarn {
		t.Errorf("root.Level() = %s, want warn", root.Level())
	}
}

func TestSetLevel_LoweringPanics(t *testing.T) {
	root := newTestTree(t, "root")
	root.SetLevel(LevelError)

	defer func() {
		if recover() == nil {
			t.Error("lowering a level should panic")
		}
	}()
	root.SetLevel(LevelInfo)
}

func TestSetLevel_Shorthands(t *testing.T) {
	root := newTestTree(t, "root")

	info := root.AddChild("i")
	info.SetInfo()
	warn := root.AddChild("w")
	warn.SetWarn()
	fail := root.AddChild("e")
	fail.SetError()

	if info.Level() != LevelInfo {
		t.Errorf("SetInfo: got %s", info.Level())
	}
	if warn.Level() != LevelWarn {
		t.Errorf("SetWarn: got %s", warn.Level())
	}
	if fail.Level() != LevelError {
		t.Errorf("SetError: got %s", fail.Level())
	}
	if root.Level() != LevelError {
		t.Errorf("root.Level() = %s, want error", root.Level())
	}
}

func TestChildren_Order(t *testing.T) {
	root := newTestTree(t, "root")
	names := []string{"first", "second", "third"}
	for _, name := range names {
		root.AddChild(name)
	}

	kids := root.Children()
	if len(kids) != len(names) {
		t.Fatalf("got %d children, want %d", len(kids), len(names))
	}
	for i, want := range names {
		if kids[i].Name != want {
			t.Errorf("Children()[%d].Name = %q, want %q", i, kids[i].Name, want)
		}
	}
}

func TestMoveTo(t *testing.T) {
	from := newTestTree(t, "from")
	to := newTestTree(t, "to")

	n := from.AddChild("x crashed")
	if from.Level() != LevelError {
		t.Fatalf("from.Level() = %s, want error", from.Level())
	}

	n.MoveTo(to)

	if len(from.Children()) != 0 {
		t.Errorf("old parent still has %d children", len(from.Children()))
	}
	if len(to.Children()) != 1 || to.Children()[0] != n {
		t.Error("new parent should hold the moved node")
	}

	// Levels stay as they were: the old parent keeps its aggregate and
	// the new parent is not raised.
	if from.Level() != LevelError {
		t.Errorf("from.Level() = %s, want the stale error aggregate", from.Level())
	}
	if to.Level() != LevelNone {
		t.Errorf("to.Level() = %s, want none", to.Level())
	}

	// Raising the moved node now raises the new parent chain.
	n.SetLevel(LevelFatal)
	if to.Level() != LevelFatal {
		t.Errorf("to.Level() = %s, want fatal after raise", to.Level())
	}
}

func TestMergeWithSingleChild(t *testing.T) {
	t.Run("merges name and reparents grandchildren", func(t *testing.T) {
		root := newTestTree(t, "root")
		a := root.AddChild("a")
		b := a.AddChild("b")
		b.AddChild("c1")
		b.AddChild("c2")

		a.MergeWithSingleChild("/")

		if a.Name != "a/b" {
			t.Errorf("Name = %q, want %q", a.Name, "a/b")
		}
		kids := a.Children()
		if len(kids) != 2 || kids[0].Name != "c1" || kids[1].Name != "c2" {
			t.Fatalf("children = %v, want [c1 c2]", kids)
		}

		// Reparented grandchildren still raise through the new parent.
		kids[0].SetWarn()
		if a.Level() != LevelWarn {
			t.Errorf("a.Level() = %s, want warn", a.Level())
		}
	})

	t.Run("no-op without exactly one child", func(t *testing.T) {
		root := newTestTree(t, "root")
		root.AddChild("a")
		root.AddChild("b")

		root.MergeWithSingleChild("/")

		if root.Name != "root" || len(root.Children()) != 2 {
			t.Error("merge should not touch a node with two children")
		}

		leaf := root.Children()[0]
		leaf.MergeWithSingleChild("/")
		if leaf.Name != "a" {
			t.Error("merge should not touch a childless node")
		}
	})
}

func TestFileNode(t *testing.T) {
	root := newTestTree(t, "Files")

	jar := root.FileNode("mods/unloved/broken.jar", IconFolder, IconArchive)
	if jar.Name != "broken.jar" {
		t.Errorf("Name = %q, want %q", jar.Name, "broken.jar")
	}
	if jar.IconType != IconArchive {
		t.Errorf("IconType = %q, want %q", jar.IconType, IconArchive)
	}

	mods := root.Children()[0]
	if mods.Name != "mods" || mods.IconType != IconFolder {
		t.Errorf("intermediate node = %q [%s], want mods [folder]", mods.Name, mods.IconType)
	}

	// A second path under the same directory reuses the existing nodes.
	root.FileNode("mods/good.jar", IconFolder, IconArchive)
	if len(root.Children()) != 1 {
		t.Fatalf("root has %d children, want the shared mods dir only", len(root.Children()))
	}
	if len(mods.Children()) != 2 {
		t.Fatalf("mods has %d children, want 2", len(mods.Children()))
	}

	// Empty segments are skipped.
	cfg := root.FileNode("/config//loader.json", IconFolder, IconJSON)
	if cfg.Name != "loader.json" {
		t.Errorf("Name = %q, want %q", cfg.Name, "loader.json")
	}
	if root.Children()[1].Name != "config" {
		t.Errorf("second root child = %q, want config", root.Children()[1].Name)
	}
}

func TestMergeChildFilePaths(t *testing.T) {
	t.Run("collapses single-entry folder runs", func(t *testing.T) {
		root := newTestTree(t, "Files")
		root.FileNode("a/b/c/file.txt", IconFolder, IconFile)

		root.MergeChildFilePaths(IconFolder)

		kids := root.Children()
		if len(kids) != 1 {
			t.Fatalf("root has %d children, want 1", len(kids))
		}
		if kids[0].Name != "a/b/c" {
			t.Errorf("collapsed name = %q, want %q", kids[0].Name, "a/b/c")
		}
		if len(kids[0].Children()) != 1 || kids[0].Children()[0].Name != "file.txt" {
			t.Error("file should stay a separate child of the collapsed folder")
		}
	})

	t.Run("keeps branching folders and sorts children", func(t *testing.T) {
		root := newTestTree(t, "Files")
		root.FileNode("mods/zebra.jar", IconFolder, IconArchive)
		root.FileNode("mods/alpha/deep.jar", IconFolder, IconArchive)

		root.MergeChildFilePaths(IconFolder)

		mods := root.Children()[0]
		if mods.Name != "mods" {
			t.Fatalf("first child = %q, want mods", mods.Name)
		}
		kids := mods.Children()
		if len(kids) != 2 {
			t.Fatalf("mods has %d children, want 2", len(kids))
		}
		if kids[0].Name != "alpha" || kids[1].Name != "zebra.jar" {
			t.Errorf("children = [%q %q], want sorted [alpha zebra.jar]", kids[0].Name, kids[1].Name)
		}
	})

	t.Run("ignores non-folder nodes", func(t *testing.T) {
		root := newTestTree(t, "Files")
		n := root.AddChild("$archive$ not-a-folder")
		n.AddChild("inner")

		root.MergeChildFilePaths(IconFolder)

		if n.Name != "not-a-folder" || len(n.Children()) != 1 {
			t.Error("merge should leave non-folder nodes alone")
		}
	})
}
