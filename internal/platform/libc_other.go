//go:build !linux

package platform

// libcType is empty outside Linux; foojay.io only distinguishes libc on
// Linux packages, and Coordinate/JDK leave the field blank elsewhere.
func libcType() string {
	return ""
}
