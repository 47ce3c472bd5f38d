package fs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"syscall"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestCopyFilePreservesContentAndModTime(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")
	writeFile(t, src, "hello")

	stamp := time.Date(2022, 4, 1, 10, 0, 0, 0, time.Local)
	if err := os.Chtimes(src, stamp, stamp); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	if err := (OSFS{}).CopyFile(src, dst); err != nil {
		t.Fatalf("copy: %v", err)
	}

	content, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read dst: %v", err)
	}
	if string(content) != "hello" {
		t.Fatalf("unexpected content: %q", content)
	}

	info, err := os.Stat(dst)
	if err != nil {
		t.Fatalf("stat dst: %v", err)
	}
	if !info.ModTime().Equal(stamp) {
		t.Fatalf("mod time not preserved: %v", info.ModTime())
	}

	if _, err := os.Stat(src); err != nil {
		t.Fatalf("copy must leave the source untouched: %v", err)
	}
}

func TestMoveRenames(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	writeFile(t, src, "content")

	targetDir := filepath.Join(dir, "2023")
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	dst := filepath.Join(targetDir, "a.txt")

	if err := (OSFS{}).Move(src, dst); err != nil {
		t.Fatalf("move: %v", err)
	}
	if _, err := os.Lstat(src); !os.IsNotExist(err) {
		t.Fatalf("source should be gone, got %v", err)
	}
	content, err := os.ReadFile(dst)
	if err != nil || string(content) != "content" {
		t.Fatalf("destination wrong: %q, %v", content, err)
	}
}

func TestCopyDirCopiesTree(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "old")
	if err := os.MkdirAll(filepath.Join(src, "nested"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(src, "top.txt"), "top")
	writeFile(t, filepath.Join(src, "nested", "deep.txt"), "deep")

	dst := filepath.Join(dir, "copy")
	if err := (OSFS{}).CopyDir(src, dst); err != nil {
		t.Fatalf("copydir: %v", err)
	}

	checks := []struct {
		rel  string
		want string
	}{
		{"top.txt", "top"},
		{filepath.Join("nested", "deep.txt"), "deep"},
	}
	for _, check := range checks {
		content, err := os.ReadFile(filepath.Join(dst, check.rel))
		if err != nil || string(content) != check.want {
			t.Fatalf("copied %s wrong: %q, %v", check.rel, content, err)
		}
	}
}

func TestExistsSeesLinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation needs privileges on windows")
	}
	dir := t.TempDir()
	link := filepath.Join(dir, "dangling")
	if err := os.Symlink(filepath.Join(dir, "missing"), link); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	exists, err := (OSFS{}).Exists(link)
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if !exists {
		t.Fatalf("a dangling symlink still occupies its name")
	}

	exists, err = (OSFS{}).Exists(filepath.Join(dir, "missing"))
	if err != nil || exists {
		t.Fatalf("missing path should not exist: %v, %v", exists, err)
	}
}

func TestIsCrossDevice(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix errno")
	}
	linkErr := &os.LinkError{Op: "rename", Old: "a", New: "b", Err: syscall.EXDEV}
	if !isCrossDevice(linkErr) {
		t.Fatalf("EXDEV should trigger the copy fallback")
	}
	if isCrossDevice(errors.New("permission denied")) {
		t.Fatalf("other errors must not trigger the fallback")
	}
}

func TestMkdirAllIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "2024")
	for i := 0; i < 2; i++ {
		if err := (OSFS{}).MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir pass %d: %v", i+1, err)
		}
	}
}

func TestTimestampers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	writeFile(t, path, "x")

	stamp := time.Date(2021, 8, 15, 12, 0, 0, 0, time.Local)
	if err := os.Chtimes(path, stamp, stamp); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	info, err := os.Lstat(path)
	if err != nil {
		t.Fatalf("lstat: %v", err)
	}

	ts, err := ModTimes{}.Timestamp(context.Background(), path, info)
	if err != nil {
		t.Fatalf("modtimes: %v", err)
	}
	if !ts.Equal(stamp) {
		t.Fatalf("unexpected modified time: %v", ts)
	}

	ts, err = BirthTimes{}.Timestamp(context.Background(), path, info)
	if err != nil {
		t.Fatalf("birthtimes: %v", err)
	}
	if ts.IsZero() {
		t.Fatalf("creation time should never be zero for an existing file")
	}
}
