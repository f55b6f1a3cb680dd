package platform

import (
	"runtime"
	"strings"
)

// Platform describes the operating system and architecture of the process.
type Platform struct {
	OS   string `yaml:"os" json:"os"`
	Arch string `yaml:"arch" json:"arch"`
}

// CurrentPlatform returns the current platform (OS and architecture)
func CurrentPlatform() Platform {
	goos := runtime.GOOS
	if goos == "" {
		goos = "unknown"
	}

	goarch := runtime.GOARCH
	if goarch == "" {
		goarch = "unknown"
	}

	return Platform{
		OS:   NormalizeOS(goos),
		Arch: strings.ToLower(goarch),
	}
}

// String returns a string representation of the platform
func (p Platform) String() string {
	return p.OS + "/" + p.Arch
}

// NormalizeOS normalizes OS names to a common format
func NormalizeOS(os string) string {
	os = strings.ToLower(os)
	switch {
	case os == "win", strings.HasPrefix(os, "windows"):
		return OSWindows
	case os == "macos", os == "osx":
		return OSDarwin
	default:
		return os
	}
}

// PermissionBitsUnsupported reports whether POSIX permission bits are not
// meaningful on the running system. Scans are no-ops when this is true.
func PermissionBitsUnsupported() bool {
	return IsPermissionBitsUnsupported(runtime.GOOS)
}

// IsPermissionBitsUnsupported is PermissionBitsUnsupported for an arbitrary OS name.
func IsPermissionBitsUnsupported(goos string) bool {
	switch NormalizeOS(goos) {
	case OSWindows, OSPlan9:
		return true
	default:
		return false
	}
}
