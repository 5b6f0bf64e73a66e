package scanner

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macsweep/macsweep/internal/testutil"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

const agentPlist = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Label</key>
	<string>com.example.sync</string>
	<key>ProgramArguments</key>
	<array>
		<string>/usr/local/bin/sync-agent</string>
		<string>--daemon</string>
	</array>
	<key>RunAtLoad</key>
	<true/>
</dict>
</plist>
`

const bareDaemonPlist = `<?xml version="1.0" encoding="UTF-8"?>
<plist version="1.0">
<dict>
	<key>Program</key>
	<string>/opt/thing/bin/thingd</string>
	<key>Disabled</key>
	<true/>
</dict>
</plist>
`

func TestParseLaunchdPlist(t *testing.T) {
	f := testutil.NewFixture(t)
	f.Dir("agents")
	path := f.Path("agents/com.example.sync.plist")
	writeFile(t, path, agentPlist)

	item, ok := parseLaunchdPlist(path)
	require.True(t, ok)
	assert.Equal(t, "com.example.sync", item.label)
	assert.Equal(t, "/usr/local/bin/sync-agent", item.program)
	assert.True(t, item.runAtLoad)
	assert.False(t, item.disabled)
}

func TestParseLaunchdPlistFallbacks(t *testing.T) {
	f := testutil.NewFixture(t)
	f.Dir("daemons")
	path := f.Path("daemons/org.thing.thingd.plist")
	writeFile(t, path, bareDaemonPlist)

	item, ok := parseLaunchdPlist(path)
	require.True(t, ok)
	// No Label key: falls back to the file stem.
	assert.Equal(t, "org.thing.thingd", item.label)
	assert.Equal(t, "/opt/thing/bin/thingd", item.program)
	assert.False(t, item.runAtLoad)
	assert.True(t, item.disabled)
}

func TestScanStartupDir(t *testing.T) {
	f := testutil.NewFixture(t)
	f.Dir("agents")
	writeFile(t, f.Path("agents/com.example.sync.plist"), agentPlist)
	writeFile(t, f.Path("agents/notes.txt"), "not a plist")
	writeFile(t, f.Path("agents/broken.plist"), "{{{")

	items := scanStartupDir(f.Path("agents"))
	require.Len(t, items, 1)
	assert.Equal(t, "com.example.sync", items[0].label)
}

func TestScanStartupDirMissing(t *testing.T) {
	assert.Empty(t, scanStartupDir("/does/not/exist"))
}
