//go:build windows

package osgate

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// mmapAnon obtains a private, anonymous, read-write region of n bytes via
// VirtualAlloc, the Windows analogue of an anonymous mmap. Freshly
// committed pages are zero-filled by the OS.
func mmapAnon(n int) ([]byte, error) {
	addr, err := windows.VirtualAlloc(0, uintptr(n), windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), n), nil //nolint:govet
}

// munmapAnon releases a region previously returned by mmapAnon.
func munmapAnon(addr uintptr, _ uintptr) error {
	return windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
}

func pageSize() uintptr {
	var info windows.SystemInfo
	windows.GetSystemInfo(&info)
	return uintptr(info.PageSize)
}
