// Package backup manages the timestamped backup copies that skel's
// write protocol leaves next to the files it overwrites.
//
// A backup of /home/u/.config/app.ini is a sibling file named
//
//	/home/u/.config/app.ini.backup-2026-08-24T12-34-56-789Z
//
// where the suffix is a sanitized UTC timestamp with millisecond
// resolution, optionally followed by a numeric disambiguator ("-2")
// when two backups share a stamp. The names sort lexically in creation
// order, and this package is the only reader that interprets them.
//
// # Listing
//
// Use [List] for the backups of one file, newest first, or [ListAll]
// to scan a directory for backups of any file:
//
//	entries, err := backup.List("~/.config/skel/config.yaml")
//	for _, e := range entries {
//	    fmt.Printf("%s  %s\n", e.CreatedAt.Format(time.RFC3339), e.Path)
//	}
//
// # Restoring
//
// [Restore] copies a backup back over its original. The current file
// is backed up first, so a restore is always reversible. Note this
// also means the pre-restore state becomes the newest backup:
//
//	undo, err := backup.Restore(entries[0])
//
// # Retention
//
// [Prune] keeps the most recent backups of a file and removes the
// rest. The default retention is [DefaultRetention] copies per file.
package backup
