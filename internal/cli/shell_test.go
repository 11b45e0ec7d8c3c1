package cli

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runShell feeds input to one shell and returns stdout and stderr.
func runShell(t *testing.T, structure, config, input string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	if config != "" {
		writeConfig(t, dir, config)
	}
	out, errOut, err := runCmd(t, input, "--config-dir", dir, structure)
	require.NoError(t, err)
	return out, errOut
}

func TestSplitLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"empty", "", nil},
		{"spaces only", "   ", nil},
		{"empty quotes", `"" ""`, nil},
		{"plain words", "add-train T-04 Comet 250", []string{"add-train", "T-04", "Comet", "250"}},
		{"quoted words", `load T-01 "Steel Beams" Industrial 120`, []string{"load", "T-01", "Steel Beams", "Industrial", "120"}},
		{"repeated spaces", "remove   Hilltop", []string{"remove", "Hilltop"}},
		{"negative number", "load T-01 Ore Bulk -5", []string{"load", "T-01", "Ore", "Bulk", "-5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := splitLine(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFleetShell(t *testing.T) {
	input := strings.Join([]string{
		`add-train T-09 "Coal Runner" 100`,
		`load T-09 Coal Bulk 60`,
		`load T-09 Iron Bulk 50`,
		`show T-09`,
		`unload T-09 Coal`,
		`unload T-09 Coal`,
		`remove-train T-09`,
		`remove-train T-09`,
		`exit`,
	}, "\n")

	out, errOut := runShell(t, "fleet", "seed: false\n", input)

	assert.Contains(t, out, "=== Train Fleet Manager ===")
	assert.Contains(t, out, "[Fleet] Train added: [T-09] Coal Runner (max 100 tons)")
	assert.Contains(t, out, `[Train T-09] [Loaded] "Coal" (Bulk, 60 tons)`)
	assert.Contains(t, out, `[Overweight] cannot load "Iron" onto T-09: would exceed max weight (110/100 tons)`)
	assert.Contains(t, out, "Train: [T-09] Coal Runner | Weight: 60/100 tons | Cargo items: 1")
	assert.Contains(t, out, `[Train T-09] [Unloaded] "Coal"`)
	assert.Contains(t, out, `[Error] train T-09: cargo "Coal": not found`)
	assert.Contains(t, out, "[Fleet] Train removed: [T-09] Coal Runner")
	assert.Contains(t, out, "[Error] train T-09: not found")
	assert.Contains(t, out, "Goodbye!")

	assert.Contains(t, errOut, "command failed")
}

func TestFleetShellSeededDisplay(t *testing.T) {
	out, _ := runShell(t, "fleet", "", "display\n")

	assert.Contains(t, out, "TRAIN FLEET (3 trains)")
	assert.Contains(t, out, "#1 [T-01] Iron Horse | 200/500 tons | 2 cargo items")
	assert.Contains(t, out, "#3 [T-03] Night Owl | 0/400 tons | 0 cargo items")
	assert.Contains(t, out, "Goodbye!", "end of input behaves like exit")
}

func TestFleetShellRejectsBadInput(t *testing.T) {
	input := strings.Join([]string{
		`add-train T-01 Duplicate 100`,
		`add-train T-10 Broken lots`,
		`load T-01 Ore Bulk -5`,
		`load T-01 Ore`,
		`fly-away`,
	}, "\n")

	out, _ := runShell(t, "fleet", "", input)

	assert.Contains(t, out, "[Error] train T-01: duplicate id")
	assert.Contains(t, out, `capacity "lots" is not a number`)
	assert.Contains(t, out, "weight must be positive")
	assert.Contains(t, out, "[Error] accepts 4 arg(s), received 2")
	assert.Contains(t, out, `unknown command "fly-away"`)
	assert.Contains(t, out, "Goodbye!")
}

func TestRouteShell(t *testing.T) {
	input := strings.Join([]string{
		`remove "Central Depot"`,
		`advance`,
		`add Lakeside`,
		`display`,
		`remove Nowhere`,
		`quit`,
	}, "\n")

	out, _ := runShell(t, "route", "", input)

	assert.Contains(t, out, `[Route] Removed station "Central Depot"`)
	assert.Contains(t, out, `[Route] Fleet arrived at: "Hilltop Yard"`)
	assert.Contains(t, out, `[Route] Station added: "Lakeside"`)
	assert.Contains(t, out, "Route Loop (4 stations)")
	assert.Contains(t, out, `(loops back to "Riverside Junction")`)
	assert.Contains(t, out, `[Error] station "Nowhere": not found`)
}

func TestRouteShellEmpty(t *testing.T) {
	input := strings.Join([]string{
		`advance`,
		`add Solo`,
		`advance`,
		`remove Solo`,
		`display`,
	}, "\n")

	out, _ := runShell(t, "route", "seed: false\n", input)

	assert.Contains(t, out, "[Error] route: empty")
	assert.Contains(t, out, `[Route] Fleet arrived at: "Solo"`)
	assert.Contains(t, out, `[Route] Removed last station "Solo". Route is now empty.`)
	assert.Contains(t, out, "[Route] No stations defined.")
}

func TestPlaylistShell(t *testing.T) {
	input := strings.Join([]string{
		`play`,
		`next`,
		`next`,
		`next`,
		`loop`,
		`next`,
		`prev`,
		`loop`,
		`add "Levitating" "Dua Lipa" 3 23`,
		`reverse`,
		`remove "Heat Waves"`,
		`exit`,
	}, "\n")

	out, _ := runShell(t, "playlist", "", input)

	assert.Contains(t, out, `Now playing: "Blinding Lights" by The Weeknd [3:20]`)
	assert.Contains(t, out, `Now playing: "As It Was" by Harry Styles [2:47]`)
	assert.Contains(t, out, `[Error] track "Heat Waves": already at the last entry`)
	assert.Contains(t, out, "Loop ON")
	assert.Contains(t, out, "(Looping back to start)")
	assert.Contains(t, out, "(Looping back to end)")
	assert.Contains(t, out, "Loop OFF")
	assert.Contains(t, out, `Added: "Levitating" by Dua Lipa`)
	assert.Contains(t, out, "Playlist (reversed)")
	assert.Contains(t, out, `Removed: "Heat Waves"`)

	rev := out[strings.Index(out, "Playlist (reversed)"):]
	assert.Less(t, strings.Index(rev, "Levitating"), strings.Index(rev, "Blinding Lights"))
}

func TestPlaylistShellEmpty(t *testing.T) {
	out, _ := runShell(t, "playlist", "seed: false\n", "play\nnext\nprev\ndisplay\n")

	assert.Equal(t, 3, strings.Count(out, "[Error] playlist: empty"))
	assert.Contains(t, out, "Playlist is empty.")
}

func TestHistoryStatsAndExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	input := strings.Join([]string{
		`add Lakeside`,
		`remove Nowhere`,
		`history 1`,
		`stats`,
		`export ` + path,
	}, "\n")

	out, _ := runShell(t, "route", "", input)

	assert.Contains(t, out, "station.added")
	assert.Contains(t, out, "Lakeside")
	assert.Contains(t, out, `trainyard_operations_total{operation="add",result="ok",structure="route"} 1`)
	assert.Contains(t, out, `trainyard_operations_total{operation="remove",result="not_found",structure="route"} 1`)
	assert.Contains(t, out, "trainyard_route_stations 5")
	assert.Contains(t, out, `events{kind="station.added"} 5`)
	assert.Contains(t, out, "Exported 5 events to "+path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	lines := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines++
	}
	assert.Equal(t, 5, lines)
}

func TestJournalDisabled(t *testing.T) {
	out, _ := runShell(t, "playlist", "journal: false\n", "history\nexport x.jsonl\nstats\n")

	assert.Equal(t, 2, strings.Count(out, "[Error] journal is disabled"))
	assert.Contains(t, out, "trainyard_playlist_tracks 3")
	assert.NotContains(t, out, "events{")
}

func TestDebugLoggingGoesToStderr(t *testing.T) {
	out, errOut := runShell(t, "route", "log_level: debug\nlog_format: json\n", "advance\n")

	assert.Contains(t, errOut, `"msg":"command executed"`)
	assert.Contains(t, errOut, `"structure":"route"`)
	assert.Contains(t, errOut, `"argc":1`)
	assert.NotContains(t, out, "command executed")
}
