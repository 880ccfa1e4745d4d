// Package paths provides filesystem location helpers for the sitrep CLI.
//
// The package wraps github.com/adrg/xdg for cross-platform XDG Base
// Directory Specification compliance. On Linux and macOS, paths follow
// XDG conventions (~/.config and platform equivalents).
//
// # Configuration Directory
//
// sitrep keeps its own configuration under the XDG config home:
//
//	paths.ConfigDir() // ~/.config/sitrep on Linux
//
// # Directory Creation
//
// Use [EnsureDir] to create directories with private permissions by
// default:
//
//	if err := paths.EnsureDir(paths.ConfigDir(), 0); err != nil {
//	    return err
//	}
package paths
