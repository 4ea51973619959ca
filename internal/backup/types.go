package backup

import (
	"time"

	"github.com/mthorborn/skel/internal/errors"
)

// DefaultRetention is the default number of backups to retain per file.
const DefaultRetention = 5

// ErrNoBackups indicates no backups exist for the specified file.
var ErrNoBackups = errors.New("no backups found")

// Entry describes one timestamped backup copy on disk.
type Entry struct {
	// Path is the backup file itself.
	Path string

	// Original is the expanded path of the file the backup was taken
	// from.
	Original string

	// CreatedAt is the backup's creation time, parsed from the
	// timestamp suffix in its name.
	CreatedAt time.Time
}
