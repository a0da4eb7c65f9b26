package scenario

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const demoYAML = `
meta:
  title: Demo
steps:
  - cmd: ls
    enter: true
  - desc: two lines, typed but not submitted
    cmd: "echo hi\necho bye"
    enter: false
  - cmd: pwd
`

func TestParse(t *testing.T) {
	s, err := Parse([]byte(demoYAML))
	require.NoError(t, err)

	assert.Equal(t, "Demo", s.Title())
	require.Equal(t, 3, s.Len())

	assert.Equal(t, "ls", s.Step(0).Command)
	assert.True(t, s.Step(0).Submit)

	assert.Equal(t, "echo hi\necho bye", s.Step(1).Command)
	assert.Equal(t, "two lines, typed but not submitted", s.Step(1).Description)
	assert.False(t, s.Step(1).Submit)

	// enter defaults to true
	assert.True(t, s.Step(2).Submit)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{"empty document", "", ErrNoSteps},
		{"no steps key", "meta:\n  title: x\n", ErrNoSteps},
		{"empty steps", "steps: []\n", ErrNoSteps},
		{"missing cmd", "steps:\n  - desc: nothing to run\n", ErrMissingCommand},
		{"broken yaml", "steps: [\n", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestParseEmptyCommandIsAllowed(t *testing.T) {
	s, err := Parse([]byte("steps:\n  - cmd: \"\"\n"))
	require.NoError(t, err)
	assert.Equal(t, "", s.Step(0).Command)
}

func TestTitleDefaults(t *testing.T) {
	assert.Equal(t, DefaultTitle, (&Scenario{}).Title())
	assert.Equal(t, DefaultTitle, (&Scenario{Meta: &Meta{}}).Title())
	assert.Equal(t, "", (&Scenario{}).URL())
	assert.Equal(t, "https://example.org", (&Scenario{Meta: &Meta{URL: "https://example.org"}}).URL())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not open scenario file")
}

func TestWriteAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "example.yaml")
	require.NoError(t, Write(Example(), path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Example(), loaded)

	// second write must not clobber the file
	assert.Error(t, Write(Example(), path))
}

func TestFileLoaderReloadsFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(demoYAML), 0644))

	l := NewFileLoader(path)
	first, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, 3, first.Len())

	require.NoError(t, os.WriteFile(path, []byte("steps:\n  - cmd: whoami\n"), 0644))
	second, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, 1, second.Len())
	assert.Equal(t, 3, first.Len(), "earlier scenario must stay untouched")
}

func TestFindLatestScenario(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		filepath.Join(dir, "a.yaml"),
		filepath.Join(dir, "b.yml"),
		filepath.Join(dir, "c.yaml"),
	}
	for i, f := range files {
		require.NoError(t, os.WriteFile(f, []byte("steps:\n  - cmd: ls\n"), 0644))
		modTime := time.Now().Add(time.Duration(i-len(files)) * time.Hour)
		require.NoError(t, os.Chtimes(f, modTime, modTime))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	latest, err := FindLatestScenario(dir)
	require.NoError(t, err)
	assert.Equal(t, files[len(files)-1], latest)

	resolved, err := ResolvePath(dir)
	require.NoError(t, err)
	assert.Equal(t, latest, resolved)

	_, err = FindLatestScenario(t.TempDir())
	assert.Error(t, err)
}
