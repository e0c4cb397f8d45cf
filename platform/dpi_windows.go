//go:build windows

package platform

import "golang.org/x/sys/windows"

// EnableDPIAwareness opts the process out of bitmap scaling so canvas pixels
// map 1:1 to screen pixels. Best effort.
func EnableDPIAwareness() bool {
	user32 := windows.NewLazySystemDLL("user32.dll")
	proc := user32.NewProc("SetProcessDPIAware")
	if proc.Find() != nil {
		return false
	}
	r1, _, _ := proc.Call()
	return r1 != 0
}
