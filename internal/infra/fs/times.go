package fs

import (
	"context"
	"io/fs"
	"time"
)

// ModTimes resolves the modified timestamp straight from the lstat result.
type ModTimes struct{}

func (ModTimes) Timestamp(_ context.Context, _ string, info fs.FileInfo) (time.Time, error) {
	return info.ModTime(), nil
}

// BirthTimes resolves the creation timestamp where the platform records one
// (Windows, Darwin). Plain Unix stat has no birth time, so Linux reports
// the inode change time instead, same as st_ctime there.
type BirthTimes struct{}

func (BirthTimes) Timestamp(_ context.Context, path string, info fs.FileInfo) (time.Time, error) {
	return creationTime(path, info)
}
