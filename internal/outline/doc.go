// Package outline compiles human-written outline files into status
// reports. An outline names the report, its tabs and their content in
// a form that is easy to author by hand; the result is a
// [report.Report] ready for encoding.
//
// # TOML Form
//
// The .toml form can express everything a report carries:
//
//	title = "Launch Status"
//	main_text = "The loader stopped before the game could start"
//
//	[[tabs]]
//	name = "Mods"
//	filter = "info"
//	group_paths = true
//	lines = [
//	    "+ quilt_base",
//	    "x broken_mod",
//	    "\tCaused by a missing dependency",
//	]
//	files = [
//	    "mods/one.jar",
//	    "mods/sub/two.jar",
//	]
//
//	[[messages]]
//	title = "Crash"
//	icon = "level_error"
//	description = ["The mod broken_mod failed to load."]
//
//	[[buttons]]
//	text = "Continue anyway"
//	kind = "once"
//	continue = true
//
// Tab lines use the node markup of [report.Node.AddChild]: leading tabs
// nest, a leading "-", "+", "!" or "x" sets the warning level, and a
// "$icon$" token sets the icon. Entries under files are "/"-separated
// paths turned into a directory tree; group_paths collapses single-entry
// directory runs into "a/b/c" labels.
//
// Buttons accept kind "once" (default) or "many", plus close, continue
// and clipboard fields.
//
// # Markdown Form
//
// The .md form describes a single tab: YAML frontmatter for the report
// fields, body lines as the tab's markup. Indent with tabs.
//
//	---
//	title: Launch Status
//	tab: Mods
//	filter: warn
//	---
//
//	- quilt_base
//	x broken_mod
//
// Unnamed reports default to "Status Report" and unnamed markdown tabs
// to "Status".
package outline
