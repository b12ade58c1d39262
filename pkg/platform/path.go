// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"strings"
)

// NativePath reports whether p is written in the host platform's path syntax.
//
// On Windows a native path starts with a drive letter and colon (C:\... or
// C:/...; gcc on Windows accepts both separators) or is UNC (\\server\share).
// On POSIX hosts a native path is rooted at '/' and contains no backslash
// separators. Relative paths are never considered native: the probe only
// accepts absolute entries from compiler output.
func NativePath(p string) bool {
	return nativePathFor(p, Windows == hostOS())
}

// hostOS is swappable in tests to exercise both branches on one platform.
var hostOS = func() string {
	if IsWindows() {
		return Windows
	}
	return Linux
}

func nativePathFor(p string, windows bool) bool {
	if p == "" {
		return false
	}
	if windows {
		if strings.HasPrefix(p, `\\`) {
			return true
		}
		if len(p) >= 3 && isDriveLetter(p[0]) && p[1] == ':' && (p[2] == '\\' || p[2] == '/') {
			return true
		}
		return false
	}
	if !strings.HasPrefix(p, "/") {
		return false
	}
	return !strings.Contains(p, `\`)
}

func isDriveLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
