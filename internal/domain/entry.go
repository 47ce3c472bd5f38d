package domain

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// EntryKind classifies a directory child for the sorter.
type EntryKind int

const (
	KindFile EntryKind = iota
	KindDir
	KindLink
)

func (k EntryKind) String() string {
	switch k {
	case KindDir:
		return "directory"
	case KindLink:
		return "link"
	default:
		return "file"
	}
}

// Entry is one immediate child of the source directory.
type Entry struct {
	Path      string
	Name      string
	Kind      EntryKind
	Timestamp time.Time
}

// SuffixedName inserts " (n)" between the stem and the extension, so
// "a.txt" becomes "a (1).txt" and "archive.tar.gz" becomes
// "archive.tar (1).gz".
func SuffixedName(name string, n int) string {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	if stem == "" {
		// dotfiles have no stem to speak of; suffix after the name
		return fmt.Sprintf("%s (%d)", name, n)
	}
	return fmt.Sprintf("%s (%d)%s", stem, n, ext)
}

// IsYearDirName reports whether name looks like a year folder produced by a
// previous run: exactly four ASCII digits. Such folders are never sorted
// into themselves.
func IsYearDirName(name string) bool {
	if len(name) != 4 {
		return false
	}
	for i := 0; i < len(name); i++ {
		if name[i] < '0' || name[i] > '9' {
			return false
		}
	}
	return true
}
