// Package layout describes the directory skeletons skel creates and
// the locations of its own files.
//
// # Directory Layouts
//
// A layout is an ordered list of directory paths relative to a base
// directory. [DefaultLayout] is the built-in skeleton:
//
//	.config
//	.local/share
//	.local/state
//	.cache
//	bin
//
// [Scaffold] prefixes each entry with the base (the home directory
// when the base is empty) and creates them in order.
//
// # Paths Objects
//
// A paths object maps semantic keys to locations:
//
//	paths:
//	  config_dir: ~/.config/myapp
//	  config_file: ~/.config/myapp/config.yaml
//
// A small fixed set of keys (config_file, credentials_file, env_file,
// log_file) name files; every other key names a directory. [Classify]
// tags each entry with its [Kind], and [DirsForPaths] reduces the
// object to the directories it implies, where file entries count as
// their parent directory.
//
// # XDG Base Directories
//
// The package wraps github.com/adrg/xdg for cross-platform XDG Base
// Directory Specification compliance. skel's own configuration lives
// at [ConfigFile], which resolves to ~/.config/skel/config.yaml on
// Linux.
package layout
