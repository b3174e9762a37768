package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/secretsanta/internal/models"
	"github.com/mmynk/secretsanta/internal/sharecode"
)

const familyYAML = `
participants:
  - name: Alice
    phone: 555-123-4567
  - name: Bob
  - name: Charlie
  - name: Dana
exclusions:
  Alice: [Bob]
  Charlie: [Dana, Alice]
`

func TestParseRoster(t *testing.T) {
	r, err := parseRoster(strings.NewReader(familyYAML))
	require.NoError(t, err)

	want := []models.Participant{
		{Name: "Alice", Phone: "555-123-4567"},
		{Name: "Bob"},
		{Name: "Charlie"},
		{Name: "Dana"},
	}
	if diff := cmp.Diff(want, r.Participants); diff != "" {
		t.Errorf("participants mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(models.History{"Alice": {"Bob"}, "Charlie": {"Dana", "Alice"}}, r.History); diff != "" {
		t.Errorf("history mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRosterErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"empty", "", "roster is empty"},
		{"unknown field", "people: []", "field people not found"},
		{"missing name", "participants:\n  - phone: 555-123-4567\n", "participant 1 has no name"},
		{"duplicate", "participants:\n  - name: A\n  - name: A\n", `"A" is listed twice`},
		{"bad phone", "participants:\n  - name: A\n    phone: nope\n", "invalid phone"},
		{"self exclusion", "participants:\n  - name: A\n  - name: B\nexclusions:\n  A: [A]\n", "cannot be excluded from themselves"},
		{"unknown receiver", "participants:\n  - name: A\n  - name: B\nexclusions:\n  A: [Z]\n", `"Z" is not a participant`},
		{"unknown giver", "participants:\n  - name: A\n  - name: B\nexclusions:\n  Z: [A]\n", `exclusions for "Z"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseRoster(strings.NewReader(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func writeRoster(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "roster.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}

func TestDrawThenOpen(t *testing.T) {
	path := writeRoster(t, familyYAML)

	token, err := execute(t, "draw", "-f", path, "--title", "Family", "--date", "2024-12-24", "--budget", "30", "--seed", "7", "--format", "token", "--shared")
	require.NoError(t, err)
	token = strings.TrimSpace(token)

	payload, err := sharecode.Decode(token)
	require.NoError(t, err)
	assert.True(t, payload.Shared)
	assert.Equal(t, "Family", payload.Results.Title)
	require.Len(t, payload.Results.Results, 4)
	for _, p := range payload.Results.Results {
		assert.NotEqual(t, p.Giver, p.Receiver)
		assert.False(t, p.Giver == "Alice" && p.Receiver == "Bob", "excluded pair drawn")
		assert.False(t, p.Giver == "Charlie" && (p.Receiver == "Dana" || p.Receiver == "Alice"), "excluded pair drawn")
	}

	text, err := execute(t, "open", "https://santa.example/?r="+token)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "(shared view)\nFamily\nDate: December 24, 2024\nBudget: $30\n\n"), text)

	raw, err := execute(t, "open", token, "--format", "json")
	require.NoError(t, err)
	var decoded sharecode.Payload
	require.NoError(t, json.Unmarshal([]byte(raw), &decoded))
	if diff := cmp.Diff(payload, decoded); diff != "" {
		t.Errorf("json output mismatch (-want +got):\n%s", diff)
	}
}

func TestDrawSameSeedSameResult(t *testing.T) {
	path := writeRoster(t, familyYAML)

	first, err := execute(t, "draw", "-f", path, "--seed", "42", "--format", "csv")
	require.NoError(t, err)
	second, err := execute(t, "draw", "-f", path, "--seed", "42", "--format", "csv")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.True(t, strings.HasPrefix(first, "\xef\xbb\xbfGiver,Receiver\n"))
}

func TestDrawLink(t *testing.T) {
	path := writeRoster(t, familyYAML)

	link, err := execute(t, "draw", "-f", path, "--format", "link", "--base-url", "https://santa.example/app")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, "https://santa.example/app?r="), link)
}

func TestDrawErrors(t *testing.T) {
	stuck := writeRoster(t, "participants:\n  - name: A\n  - name: B\nexclusions:\n  A: [B]\n")
	solo := writeRoster(t, "participants:\n  - name: A\n")
	ok := writeRoster(t, familyYAML)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"infeasible", []string{"draw", "-f", stuck, "--attempts", "5"}, "unable to generate valid Secret Santa pairings"},
		{"too small", []string{"draw", "-f", solo}, "at least two participants"},
		{"bad format", []string{"draw", "-f", ok, "--format", "xml"}, "unknown format"},
		{"bad date", []string{"draw", "-f", ok, "--date", "24/12/2024"}, "--date must be YYYY-MM-DD"},
		{"missing file flag", []string{"draw"}, `"file" not set`},
		{"bad token", []string{"open", "not-a-token!!"}, "invalid share token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
