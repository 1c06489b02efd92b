package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const clickScenario = `name: click-rect
steps:
  - tab: Annotate
  - event:
      type: click
      target: {className: Rect, attrs: {id: r1, name: Rect, draggable: true}}
      evt: {shiftKey: true}
  - event:
      type: dragend
      target: {className: Rect, attrs: {id: r1, name: Rect, x: 150, y: 10, draggable: true}}
`

// setupConfigDir points the CLI at a fresh configuration directory.
func setupConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("ANNOTATE_CONFIG_DIR", dir)
	return dir
}

func writeScenario(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

type replayOutput struct {
	Scenario string `json:"scenario"`
	Session  string `json:"session"`
	Intents  []struct {
		Type    string         `json:"type"`
		Payload map[string]any `json:"payload"`
	} `json:"intents"`
	Unhandled int `json:"unhandled"`
}

func TestInitConfig_CreatesDefaults(t *testing.T) {
	dir := setupConfigDir(t)

	_, err := execute(t, "config", "show")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "config.yaml"))
	assert.DirExists(t, filepath.Join(dir, "scenarios"))
}

func TestConfigShow(t *testing.T) {
	dir := setupConfigDir(t)
	writeScenario(t, dir, "config.yaml", "leave_cursor: draw\n")

	out, err := execute(t, "config", "show")
	require.NoError(t, err)

	assert.Contains(t, out, "leave_cursor: draw")
	assert.Contains(t, out, "annotate_tab: Annotate")
}

func TestConfigShow_InvalidConfig(t *testing.T) {
	dir := setupConfigDir(t)
	writeScenario(t, dir, "config.yaml", "leave_cursor: sideways\n")

	_, err := execute(t, "config", "show")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	dir := setupConfigDir(t)
	good := writeScenario(t, dir, "good.yaml", clickScenario)
	bad := writeScenario(t, dir, "bad.yaml", "name: bad\nsteps: []\n")

	out, err := execute(t, "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ click-rect (3 steps)")

	out, err = execute(t, "validate", "--verbose", good, bad)
	require.Error(t, err)
	assert.Contains(t, out, "✗ "+bad)
	assert.Contains(t, out, "1. tab")
	assert.Contains(t, err.Error(), "1 of 2")
}

func TestScenarioStore(t *testing.T) {
	dir := setupConfigDir(t)
	path := writeScenario(t, t.TempDir(), "click.yaml", clickScenario)

	out, err := execute(t, "scenario", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found.")

	out, err = execute(t, "scenario", "add", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Stored scenario click-rect")
	assert.FileExists(t, filepath.Join(dir, "scenarios", "click-rect.yaml"))

	out, err = execute(t, "scenario", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "click-rect")

	out, err = execute(t, "validate", "click-rect")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ click-rect")

	_, err = execute(t, "scenario", "remove", "click-rect")
	require.NoError(t, err)

	_, err = execute(t, "validate", "click-rect")
	assert.Error(t, err)
}

func TestReplay_JSON(t *testing.T) {
	dir := setupConfigDir(t)
	path := writeScenario(t, dir, "click.yaml", clickScenario)

	out, err := execute(t, "replay", path, "--json", "--filter", `action != "CHANGE_POINTER_ICON"`)
	require.NoError(t, err)

	var results []replayOutput
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)

	res := results[0]
	assert.Equal(t, "click-rect", res.Scenario)
	require.Len(t, res.Intents, 3)
	assert.Equal(t, "SELECT_ANNOTATION", res.Intents[0].Type)
	assert.Equal(t, true, res.Intents[0].Payload["multiple"])
	assert.Equal(t, "SELECT_TOOL", res.Intents[1].Type)
	assert.Equal(t, "SET_ANNOTATION", res.Intents[2].Type)
	assert.Equal(t, 150.0, res.Intents[2].Payload["x"])
}

func TestReplay_Text(t *testing.T) {
	dir := setupConfigDir(t)
	path := writeScenario(t, dir, "click.yaml", clickScenario)

	out, err := execute(t, "replay", path, "--no-color")
	require.NoError(t, err)

	assert.Contains(t, out, "Scenario: click-rect")
	assert.Contains(t, out, "SELECT_ANNOTATION")
	assert.Contains(t, out, "CHANGE_POINTER_ICON")
	assert.NotContains(t, out, colorReset)
}

func TestReplay_Follow(t *testing.T) {
	dir := setupConfigDir(t)
	path := writeScenario(t, dir, "click.yaml", clickScenario)

	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"replay", path, "--follow", "--no-color", "--json", "--filter", `action == "SET_ANNOTATION"`})
	require.NoError(t, cmd.Execute())

	// The stream shows every intent, the result only the filtered ones.
	assert.Contains(t, stderr.String(), "SELECT_ANNOTATION")
	assert.Contains(t, stderr.String(), "SET_ANNOTATION")

	var results []replayOutput
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &results))
	require.Len(t, results[0].Intents, 1)
}

func TestResolveScenarios_KeepsArgumentOrder(t *testing.T) {
	setupConfigDir(t)
	src := t.TempDir()
	stored := writeScenario(t, src, "stored.yaml", strings.Replace(clickScenario, "click-rect", "stored", 1))
	_, err := execute(t, "scenario", "add", stored)
	require.NoError(t, err)

	first := writeScenario(t, src, "first.yaml", strings.Replace(clickScenario, "click-rect", "first", 1))
	last := writeScenario(t, src, "last.yaml", strings.Replace(clickScenario, "click-rect", "last", 1))

	scenarios, err := resolveScenarios([]string{first, "stored", last})
	require.NoError(t, err)
	require.Len(t, scenarios, 3)
	assert.Equal(t, "first", scenarios[0].Name)
	assert.Equal(t, "stored", scenarios[1].Name)
	assert.Equal(t, "last", scenarios[2].Name)
	assert.Equal(t, first, scenarios[0].Path)
}

func TestResolveScenarios_BadFileFails(t *testing.T) {
	setupConfigDir(t)
	src := t.TempDir()
	good := writeScenario(t, src, "good.yaml", clickScenario)
	bad := writeScenario(t, src, "bad.yaml", "steps: [")

	_, err := resolveScenarios([]string{good, bad})
	assert.Error(t, err)
}

func TestReplay_InvalidFilter(t *testing.T) {
	dir := setupConfigDir(t)
	path := writeScenario(t, dir, "click.yaml", clickScenario)

	_, err := execute(t, "replay", path, "--filter", "action ==")
	assert.Error(t, err)
}

func TestReplay_UnknownScenario(t *testing.T) {
	setupConfigDir(t)

	_, err := execute(t, "replay", "does-not-exist")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "neither a file nor a stored scenario")
}

func TestReplay_Journal(t *testing.T) {
	dir := setupConfigDir(t)
	path := writeScenario(t, dir, "click.yaml", clickScenario)

	out, err := execute(t, "replay", path, "--journal", "--json", "--filter", `action == "SET_ANNOTATION"`)
	require.NoError(t, err)

	var results []replayOutput
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	session := results[0].Session
	assert.FileExists(t, filepath.Join(dir, "journal.db"))

	out, err = execute(t, "journal", "list")
	require.NoError(t, err)
	assert.Contains(t, out, session)
	assert.Contains(t, out, "click-rect")

	out, err = execute(t, "journal", "list", "--scenario", "other")
	require.NoError(t, err)
	assert.Contains(t, out, "No sessions found.")

	out, err = execute(t, "journal", "list", session, "--json")
	require.NoError(t, err)

	var entries []struct {
		Seq  int    `json:"seq"`
		Type string `json:"type"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].Seq)
	assert.Equal(t, "SET_ANNOTATION", entries[0].Type)

	_, err = execute(t, "journal", "list", "missing-session")
	assert.Error(t, err)
}

func TestParseSinceFlag(t *testing.T) {
	tests := []struct {
		name      string
		since     string
		wantError bool
		checkFunc func(time.Time) bool
	}{
		{
			name:  "7 days",
			since: "7d",
			checkFunc: func(result time.Time) bool {
				expected := time.Now().AddDate(0, 0, -7)
				return result.Before(time.Now()) && result.After(expected.Add(-1*time.Minute))
			},
		},
		{
			name:  "24 hours",
			since: "24h",
			checkFunc: func(result time.Time) bool {
				expected := time.Now().Add(-24 * time.Hour)
				return result.Before(time.Now()) && result.After(expected.Add(-1*time.Minute))
			},
		},
		{
			name:  "date format",
			since: "2025-01-05",
			checkFunc: func(result time.Time) bool {
				return result.Year() == 2025 && result.Month() == 1 && result.Day() == 5
			},
		},
		{
			name:      "invalid format",
			since:     "invalid",
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parseSinceFlag(tt.since)

			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.checkFunc(result), "Time check failed for %s", tt.since)
		})
	}
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "abcdefgh..", truncateString("abcdefghijklmnop", 10))

	got := truncateString("ünïcödé-ïd-ñame", 10)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "ünïcödé-..", got)
	assert.Equal(t, "ñame", truncateString("ñame", 4))
}
