//go:build linux

package platform

import "os"

// libcType distinguishes glibc from musl on Linux, the one axis foojay.io's
// package matrix cares about beyond architecture and OS. Alpine and other
// musl-based distros ship /lib/ld-musl-*; its absence means glibc.
func libcType() string {
	matches, err := filepathGlobMusl()
	if err == nil && len(matches) > 0 {
		return "musl"
	}
	return "glibc"
}

func filepathGlobMusl() ([]string, error) {
	entries, err := os.ReadDir("/lib")
	if err != nil {
		return nil, err
	}
	var matches []string
	for _, e := range entries {
		name := e.Name()
		if len(name) >= len("ld-musl-") && name[:len("ld-musl-")] == "ld-musl-" {
			matches = append(matches, name)
		}
	}
	return matches, nil
}
