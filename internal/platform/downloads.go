package platform

import (
	"os"
	"path/filepath"
	"runtime"
)

// DefaultDownloadsDir returns the platform's Downloads folder. On Windows
// an OneDrive-redirected Downloads wins over the profile-local one. The
// first existing directory among the candidates is returned; when none
// exists the first candidate comes back so validation can name it in the
// error.
func DefaultDownloadsDir() string {
	home, _ := os.UserHomeDir()

	var candidates []string
	if runtime.GOOS == "windows" {
		if onedrive := os.Getenv("OneDrive"); onedrive != "" {
			candidates = append(candidates, filepath.Join(onedrive, "Downloads"))
		}
		if profile := os.Getenv("USERPROFILE"); profile != "" {
			candidates = append(candidates, filepath.Join(profile, "Downloads"))
		}
		if home != "" {
			candidates = append(candidates,
				filepath.Join(home, "Downloads"),
				filepath.Join(home, "OneDrive", "Downloads"),
			)
		}
	} else if home != "" {
		candidates = append(candidates, filepath.Join(home, "Downloads"))
	}
	if len(candidates) == 0 {
		return ""
	}

	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}
	}
	return candidates[0]
}
