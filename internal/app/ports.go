package app

import (
	"context"
	"io/fs"
	"time"
)

type FileSystem interface {
	ReadDir(path string) ([]fs.DirEntry, error)
	Lstat(path string) (fs.FileInfo, error)
	Stat(path string) (fs.FileInfo, error)
	Exists(path string) (bool, error)
	MkdirAll(path string, perm fs.FileMode) error
	// Move relocates src to dst, falling back to copy-then-delete when a
	// plain rename cannot cross the device boundary.
	Move(src, dst string) error
	CopyFile(src, dst string) error
	CopyDir(src, dst string) error
}

// Timestamper resolves the timestamp that decides an entry's year. The
// fs.FileInfo comes from the planner's lstat so implementations that only
// need the file clock never touch the disk again.
type Timestamper interface {
	Timestamp(ctx context.Context, path string, info fs.FileInfo) (time.Time, error)
}
