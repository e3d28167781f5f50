package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phobologic/pystyle/internal/discover"
)

func init() {
	color.NoColor = true
}

func writeTestFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func createSampleRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeTestFile(t, dir, "b.py", "def Run(Args=[]):\n    pass\n")
	writeTestFile(t, dir, "a.py", "x = 1;  # note\n\n\n\nclass my_class:\n    Count = 0\n")
	writeTestFile(t, dir, "tests.py", "X = 1;\n")
	writeTestFile(t, dir, "notes.txt", "Y = 2;\n")
	return dir
}

func lines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func TestRunDirectory(t *testing.T) {
	t.Parallel()
	dir := createSampleRepo(t)
	a := filepath.Join(dir, "a.py")
	b := filepath.Join(dir, "b.py")

	var stdout, stderr bytes.Buffer
	err := run([]string{dir}, &stdout, &stderr)
	require.NoError(t, err, "stderr: %s", stderr.String())

	want := []string{
		a + ": Line 1: S003 Unnecessary semicolon",
		a + ": Line 5: S006 More than two blank lines used before this line",
		a + ": Line 5: S008 Class name 'my_class' should be written in CamelCase",
		a + ": Line 6: S011 Variable Count should be written in snake_case",
		b + ": Line 1: S009 Function name 'Run' should be written in snake_case",
		b + ": Line 1: S010 Argument name Args should be written in snake_case",
		b + ": Line 1: S012 The default argument value is mutable",
	}
	if diff := cmp.Diff(want, lines(stdout.String())); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, stderr.String())
}

func TestRunSingleFile(t *testing.T) {
	t.Parallel()
	dir := createSampleRepo(t)
	fixture := filepath.Join(dir, discover.FixtureName)

	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{fixture}, &stdout, &stderr))

	assert.Equal(t, []string{
		fixture + ": Line 1: S003 Unnecessary semicolon",
		fixture + ": Line 1: S011 Variable X should be written in snake_case",
	}, lines(stdout.String()))
}

func TestRunNonPythonFile(t *testing.T) {
	t.Parallel()
	dir := createSampleRepo(t)

	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{filepath.Join(dir, "notes.txt")}, &stdout, &stderr))
	assert.Empty(t, stdout.String())
}

func TestRunIdempotent(t *testing.T) {
	t.Parallel()
	dir := createSampleRepo(t)

	var first, second, stderr bytes.Buffer
	require.NoError(t, run([]string{"-j", "1", dir}, &first, &stderr))
	require.NoError(t, run([]string{"--workers", "8", dir}, &second, &stderr))
	assert.Equal(t, first.String(), second.String())
}

func TestRunNoPath(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	err := run(nil, &stdout, &stderr)
	assert.ErrorIs(t, err, errPathNotSpecified)
	assert.Empty(t, stdout.String())
}

func TestRunPathNotFound(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	err := run([]string{filepath.Join(t.TempDir(), "missing")}, &stdout, &stderr)

	var nf *discover.PathNotFoundError
	assert.True(t, errors.As(err, &nf))
	assert.Empty(t, stdout.String())
}

func TestRunTooManyArgs(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	err := run([]string{"a", "b"}, &stdout, &stderr)
	assert.Error(t, err)
}

func TestRunParseErrorIsolated(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	bad := writeTestFile(t, dir, "bad.py", "x = 1;\ndef broken(:\n")
	good := writeTestFile(t, dir, "good.py", "Total = 0\n")

	var stdout, stderr bytes.Buffer
	err := run([]string{dir}, &stdout, &stderr)
	assert.ErrorIs(t, err, errFilesFailed)

	assert.Equal(t, []string{
		bad + ": Line 1: S003 Unnecessary semicolon",
		good + ": Line 1: S011 Variable Total should be written in snake_case",
	}, lines(stdout.String()))
	assert.Contains(t, stderr.String(), bad+": parse error")
}

func TestRunExclude(t *testing.T) {
	t.Parallel()
	dir := createSampleRepo(t)

	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"--exclude", "b.py", dir}, &stdout, &stderr))
	assert.NotContains(t, stdout.String(), "b.py")
	assert.Contains(t, stdout.String(), "a.py")
}

func TestRunConfig(t *testing.T) {
	t.Parallel()
	dir := createSampleRepo(t)
	cfg := writeTestFile(t, t.TempDir(), "cfg.yaml", "workers: 2\nexclude:\n  - a.py\n")

	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"--config", cfg, dir}, &stdout, &stderr))
	assert.NotContains(t, stdout.String(), "a.py")
	assert.Contains(t, stdout.String(), "b.py")
}

func TestRunVerbose(t *testing.T) {
	t.Parallel()
	dir := createSampleRepo(t)

	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"-v", dir}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "discovered files")
	assert.NotContains(t, stdout.String(), "discovered files")
}

func TestRunVersion(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"-V"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "pystyle")
}
