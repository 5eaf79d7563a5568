package platform

import (
	"os"
	"runtime"
)

// MakeExecutable adds execute permission wherever the file grants read
// permission, so a 0644 script becomes 0755 and a 0600 one 0700. On Windows
// this is a no-op because Windows does not support Unix-style permission bits.
func MakeExecutable(path string) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	perm := info.Mode().Perm()
	return os.Chmod(path, perm|(perm&0444)>>2)
}
