//go:build windows

package config

import (
	"os"

	"golang.org/x/sys/windows"
)

// lockFileShared acquires a shared (read) lock
func lockFileShared(f *os.File) error {
	var overlapped windows.Overlapped
	return windows.LockFileEx(windows.Handle(f.Fd()), 0, 0, 1, 0, &overlapped)
}

// unlockFile releases the file lock
func unlockFile(f *os.File) error {
	var overlapped windows.Overlapped
	return windows.UnlockFileEx(windows.Handle(f.Fd()), 0, 1, 0, &overlapped)
}
