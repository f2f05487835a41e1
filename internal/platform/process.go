//go:build windows

package platform

import (
	"path/filepath"
	"strings"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var procQueryFullProcessImageNameW = syscall.NewLazyDLL("kernel32.dll").NewProc("QueryFullProcessImageNameW")

// ExecutablePathForProcess resolves the full image path for a process id via
// the OS process-image-name API. Returns "" (not an error) on access
// denial — spec §4.2 and §7's ProcessPathInaccessible: capture succeeds
// with an empty path and matching falls back to class+title.
func ExecutablePathForProcess(pid uint32) string {
	h, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		return ""
	}
	defer windows.CloseHandle(h)

	buf := make([]uint16, windows.MAX_PATH)
	size := uint32(len(buf))
	ret, _, _ := procQueryFullProcessImageNameW.Call(
		uintptr(h),
		0,
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(unsafe.Pointer(&size)),
	)
	if ret == 0 {
		return ""
	}
	return windows.UTF16ToString(buf[:size])
}

// ProcessName returns the lowercased executable base name without its
// extension, e.g. "C:\\Windows\\notepad.exe" -> "notepad".
func ProcessName(executablePath string) string {
	if executablePath == "" {
		return ""
	}
	base := filepath.Base(executablePath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.ToLower(base)
}
