//go:build darwin

package fs

import (
	"io/fs"
	"time"

	"golang.org/x/sys/unix"
)

func creationTime(path string, _ fs.FileInfo) (time.Time, error) {
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return time.Time{}, err
	}
	return time.Unix(int64(st.Birthtimespec.Sec), int64(st.Birthtimespec.Nsec)), nil
}
