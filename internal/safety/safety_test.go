package safety

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheck(t *testing.T) {
	c := NewChecker()

	tests := []struct {
		path string
		want Level
	}{
		{"/System/Library/Caches", Protected},
		{"/usr/local/bin/tool", Protected},
		{"/bin/ls", Protected},
		{"/private/var/db/thing", Protected},
		{"/Users/dev/Library/Keychains/login.keychain", Protected},
		{"/Volumes/Ext/.Spotlight-V100", Protected},
		{"/Users/dev/Library/CoreServices/x", Protected},
		{"/Users/dev/.config", Caution},
		{"/Users/dev/.cache/thing", Safe}, // classification is of the leaf name
		{"/Users/dev/Library/Caches/com.example.app", Safe},
		{"/tmp/build-output", Safe},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Check(tt.path), "Check(%q)", tt.path)
	}
}

func TestCheckPrefixIsPathAware(t *testing.T) {
	c := NewChecker()

	// /usrdata is not under /usr.
	assert.Equal(t, Safe, c.Check("/usrdata/cache"))
	assert.Equal(t, Protected, c.Check("/usr"))
}

func TestIsSafeToDelete(t *testing.T) {
	c := NewChecker()

	assert.True(t, c.IsSafeToDelete("/Users/dev/Library/Caches/app"))
	assert.True(t, c.IsSafeToDelete("/Users/dev/.config"))
	assert.False(t, c.IsSafeToDelete("/System/Library"))
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "Safe", Safe.String())
	assert.Equal(t, "Caution", Caution.String())
	assert.Equal(t, "Protected", Protected.String())
}
