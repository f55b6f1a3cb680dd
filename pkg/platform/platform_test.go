package platform

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrentPlatform(t *testing.T) {
	platform := CurrentPlatform()

	assert.NotEmpty(t, platform.OS)
	assert.NotEmpty(t, platform.Arch)
	assert.Equal(t, NormalizeOS(runtime.GOOS), platform.OS)
	assert.Equal(t, platform.OS+"/"+platform.Arch, platform.String())
}

func TestNormalizeOS(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Windows", OSWindows},
		{"win", OSWindows},
		{"windows_nt", OSWindows},
		{"linux", OSLinux},
		{"macOS", OSDarwin},
		{"darwin", OSDarwin},
		{"FreeBSD", OSFreeBSD},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeOS(tt.in), tt.in)
	}
}

func TestIsPermissionBitsUnsupported(t *testing.T) {
	assert.True(t, IsPermissionBitsUnsupported("windows"))
	assert.True(t, IsPermissionBitsUnsupported("WIN"))
	assert.True(t, IsPermissionBitsUnsupported("plan9"))
	assert.False(t, IsPermissionBitsUnsupported("linux"))
	assert.False(t, IsPermissionBitsUnsupported("darwin"))
	assert.False(t, IsPermissionBitsUnsupported("netbsd"))

	assert.Equal(t, runtime.GOOS == OSWindows || runtime.GOOS == OSPlan9, PermissionBitsUnsupported())
}
