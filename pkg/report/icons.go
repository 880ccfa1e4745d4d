package report

// Built-in icon type names understood by viewers. Icon types are
// opaque strings as far as this package is concerned; these constants
// only name the common vocabulary. Viewers may support more, and up to
// two decorations can be appended to a base type with "+".
const (
	// IconDefault selects the viewer's default icon for the node.
	IconDefault = ""

	// IconFolder marks a directory in a grouped file tree.
	IconFolder = "folder"

	// IconFile marks a file of no particular kind.
	IconFile = "file"

	// IconArchive marks an archive file such as a zip.
	IconArchive = "archive"

	// IconJSON marks a JSON file.
	IconJSON = "json"

	// IconPackage marks a package or bundle entry.
	IconPackage = "package"

	// IconTick marks an entry that is known to be good.
	IconTick = "tick"

	// IconLesserCross marks an entry that failed in a way the viewer
	// should render less prominently than an error.
	IconLesserCross = "lesser_cross"
)
