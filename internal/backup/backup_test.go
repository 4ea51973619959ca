package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mthorborn/skel/internal/errors"
	"github.com/mthorborn/skel/pkg/fileutil"
)

func writeBackupFile(t *testing.T, dir, base, stamp, content string) string {
	t.Helper()
	path := filepath.Join(dir, base+fileutil.BackupMarker+stamp)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestList_NewestFirst(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "app.ini")

	oldest := writeBackupFile(t, dir, "app.ini", "2026-08-24T10-00-00-000Z", "v1")
	middle := writeBackupFile(t, dir, "app.ini", "2026-08-24T11-00-00-000Z", "v2")
	newest := writeBackupFile(t, dir, "app.ini", "2026-08-24T11-00-00-000Z-2", "v3")

	entries, err := List(original)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}

	want := []string{newest, middle, oldest}
	for i, e := range entries {
		if e.Path != want[i] {
			t.Errorf("entries[%d].Path = %q, want %q", i, e.Path, want[i])
		}
		if e.Original != original {
			t.Errorf("entries[%d].Original = %q, want %q", i, e.Original, original)
		}
	}

	wantTime := time.Date(2026, 8, 24, 11, 0, 0, 0, time.UTC)
	if !entries[0].CreatedAt.Equal(wantTime) {
		t.Errorf("entries[0].CreatedAt = %v, want %v", entries[0].CreatedAt, wantTime)
	}
}

func TestList_SkipsUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "app.ini")

	keep := writeBackupFile(t, dir, "app.ini", "2026-08-24T10-00-00-000Z", "v1")

	// Same prefix but no valid stamp, a different original, and a
	// directory that happens to match the pattern.
	if err := os.WriteFile(filepath.Join(dir, "app.ini.backup-garbage"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	writeBackupFile(t, dir, "other.txt", "2026-08-24T10-00-00-000Z", "x")
	if err := os.Mkdir(filepath.Join(dir, "app.ini.backup-2026-08-24T11-00-00-000Z"), 0o755); err != nil {
		t.Fatal(err)
	}

	entries, err := List(original)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Path != keep {
		t.Errorf("entries = %+v, want only %q", entries, keep)
	}
}

func TestList_NoBackups(t *testing.T) {
	dir := t.TempDir()

	_, err := List(filepath.Join(dir, "app.ini"))
	if !errors.Is(err, ErrNoBackups) {
		t.Errorf("error = %v, want ErrNoBackups", err)
	}

	// A missing parent directory means no backups, not an I/O failure.
	_, err = List(filepath.Join(dir, "missing", "app.ini"))
	if !errors.Is(err, ErrNoBackups) {
		t.Errorf("error for missing dir = %v, want ErrNoBackups", err)
	}
}

func TestList_FindsRealBackups(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(original, []byte("a: 1"), 0o600); err != nil {
		t.Fatal(err)
	}

	made, err := fileutil.Backup(original)
	if err != nil {
		t.Fatal(err)
	}

	entries, err := List(original)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Path != made {
		t.Fatalf("entries = %+v, want the backup just made at %q", entries, made)
	}
	if age := time.Since(entries[0].CreatedAt); age < 0 || age > time.Minute {
		t.Errorf("CreatedAt %v is not close to now", entries[0].CreatedAt)
	}
}

func TestListAll(t *testing.T) {
	dir := t.TempDir()

	writeBackupFile(t, dir, "app.ini", "2026-08-24T10-00-00-000Z", "a")
	writeBackupFile(t, dir, "env", "2026-08-24T11-00-00-000Z", "b")
	if err := os.WriteFile(filepath.Join(dir, "app.ini"), []byte("live"), 0o644); err != nil {
		t.Fatal(err)
	}

	entries, err := ListAll(dir)
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Original != filepath.Join(dir, "env") {
		t.Errorf("entries[0].Original = %q, want the env file", entries[0].Original)
	}
	if entries[1].Original != filepath.Join(dir, "app.ini") {
		t.Errorf("entries[1].Original = %q, want app.ini", entries[1].Original)
	}
}

func TestListAll_Empty(t *testing.T) {
	entries, err := ListAll(t.TempDir())
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("got %d entries, want 0", len(entries))
	}

	entries, err = ListAll(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("ListAll() on missing dir error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("missing dir: got %d entries, want 0", len(entries))
	}
}

func TestLatest(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "app.ini")

	writeBackupFile(t, dir, "app.ini", "2026-08-24T10-00-00-000Z", "old")
	newest := writeBackupFile(t, dir, "app.ini", "2026-08-24T12-00-00-000Z", "new")

	got, err := Latest(original)
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if got.Path != newest {
		t.Errorf("Latest().Path = %q, want %q", got.Path, newest)
	}

	if _, err := Latest(filepath.Join(dir, "nothing.txt")); !errors.Is(err, ErrNoBackups) {
		t.Errorf("error = %v, want ErrNoBackups", err)
	}
}

func TestRestore(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "app.ini")
	if err := os.WriteFile(original, []byte("v2"), 0o644); err != nil {
		t.Fatal(err)
	}

	backupPath := filepath.Join(dir, "app.ini"+fileutil.BackupMarker+"2026-08-24T10-00-00-000Z")
	if err := os.WriteFile(backupPath, []byte("v1"), 0o600); err != nil {
		t.Fatal(err)
	}

	entry := Entry{Path: backupPath, Original: original}
	undo, err := Restore(entry)
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}

	got, err := os.ReadFile(original)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "v1" {
		t.Errorf("restored content = %q, want %q", got, "v1")
	}

	info, err := os.Stat(original)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("restored permissions = %o, want the backup's 0600", perm)
	}

	// The pre-restore state was saved so the restore can be undone.
	if undo == "" {
		t.Fatal("expected an undo backup path")
	}
	saved, err := os.ReadFile(undo)
	if err != nil {
		t.Fatal(err)
	}
	if string(saved) != "v2" {
		t.Errorf("undo backup content = %q, want %q", saved, "v2")
	}
}

func TestRestore_MissingOriginal(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "gone.ini")

	backupPath := filepath.Join(dir, "gone.ini"+fileutil.BackupMarker+"2026-08-24T10-00-00-000Z")
	if err := os.WriteFile(backupPath, []byte("v1"), 0o644); err != nil {
		t.Fatal(err)
	}

	undo, err := Restore(Entry{Path: backupPath, Original: original})
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if undo != "" {
		t.Errorf("undo = %q, want empty when the original was missing", undo)
	}

	got, err := os.ReadFile(original)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "v1" {
		t.Errorf("restored content = %q, want %q", got, "v1")
	}
}

func TestPrune(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "app.ini")

	b1 := writeBackupFile(t, dir, "app.ini", "2026-08-24T10-00-00-000Z", "1")
	b2 := writeBackupFile(t, dir, "app.ini", "2026-08-24T11-00-00-000Z", "2")
	b3 := writeBackupFile(t, dir, "app.ini", "2026-08-24T12-00-00-000Z", "3")
	b4 := writeBackupFile(t, dir, "app.ini", "2026-08-24T13-00-00-000Z", "4")

	removed, err := Prune(original, 2)
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}

	// The two oldest go, newest two stay.
	if len(removed) != 2 || removed[0] != b2 || removed[1] != b1 {
		t.Errorf("removed = %v, want [%q %q]", removed, b2, b1)
	}
	for _, path := range []string{b3, b4} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("kept backup %q should still exist: %v", path, err)
		}
	}
	for _, path := range []string{b1, b2} {
		if _, err := os.Stat(path); err == nil {
			t.Errorf("pruned backup %q should be gone", path)
		}
	}
}

func TestPrune_NothingToDo(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "app.ini")

	// No backups at all.
	removed, err := Prune(original, 2)
	if err != nil {
		t.Fatalf("Prune() with no backups error = %v", err)
	}
	if removed != nil {
		t.Errorf("removed = %v, want nil", removed)
	}

	// Fewer backups than the retention count.
	writeBackupFile(t, dir, "app.ini", "2026-08-24T10-00-00-000Z", "1")
	removed, err = Prune(original, 5)
	if err != nil {
		t.Fatalf("Prune() under retention error = %v", err)
	}
	if removed != nil {
		t.Errorf("removed = %v, want nil", removed)
	}
}

func TestPrune_NegativeKeep(t *testing.T) {
	if _, err := Prune("anything", -1); err == nil {
		t.Error("Prune() should reject a negative keep count")
	}
}

func TestParseStamp(t *testing.T) {
	tests := []struct {
		name  string
		stamp string
		want  time.Time
		ok    bool
	}{
		{
			name:  "plain stamp",
			stamp: "2026-08-24T12-34-56-789Z",
			want:  time.Date(2026, 8, 24, 12, 34, 56, 789_000_000, time.UTC),
			ok:    true,
		},
		{
			name:  "disambiguated stamp",
			stamp: "2026-08-24T12-34-56-789Z-2",
			want:  time.Date(2026, 8, 24, 12, 34, 56, 789_000_000, time.UTC),
			ok:    true,
		},
		{
			name:  "multi-digit disambiguator",
			stamp: "2026-08-24T12-34-56-789Z-12",
			want:  time.Date(2026, 8, 24, 12, 34, 56, 789_000_000, time.UTC),
			ok:    true,
		},
		{name: "empty", stamp: "", ok: false},
		{name: "too short", stamp: "2026-08-24", ok: false},
		{name: "not a date", stamp: "aaaa-bb-ccTdd-ee-ff-gggZ", ok: false},
		{name: "bad separator positions", stamp: "2026-08-24T12:34:56.789Z", ok: false},
		{name: "non-numeric disambiguator", stamp: "2026-08-24T12-34-56-789Z-x", ok: false},
		{name: "bare trailing hyphen", stamp: "2026-08-24T12-34-56-789Z-", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseStamp(tt.stamp)
			if ok != tt.ok {
				t.Fatalf("parseStamp(%q) ok = %v, want %v", tt.stamp, ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("parseStamp(%q) = %v, want %v", tt.stamp, got, tt.want)
			}
		})
	}
}
